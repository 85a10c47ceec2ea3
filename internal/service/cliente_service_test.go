package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"embarques/internal/dto"
	"embarques/internal/i18n"
	"embarques/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientes_AgregarFilaNueva(t *testing.T) {
	repo := newStubClientes()
	s := NewClienteService(repo)

	c, err := s.Agregar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nuevo cliente", c.NombreCliente)
	assert.Empty(t, c.Contacto)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Len(t, repo.clientes, 1)
}

func TestClientes_EdicionSinCambioNoLlamaAlStore(t *testing.T) {
	c := model.Cliente{ID: uuid.New(), NombreCliente: ptr("Andes"), Giro: ptr("")}
	repo := newStubClientes(c)
	s := NewClienteService(repo)
	ctx := context.Background()

	anterior, _ := json.Marshal("Andes")
	r, err := s.EditarCelda(ctx, c.ID, dto.EditarClienteRequest{Campo: "nombre_cliente", Valor: ptr("Andes"), Anterior: anterior})
	require.NoError(t, err)
	assert.True(t, r.Omitida)

	// Sin valor anterior se compara contra el registro; "" equivale a null.
	r, err = s.EditarCelda(ctx, c.ID, dto.EditarClienteRequest{Campo: "giro", Valor: nil})
	require.NoError(t, err)
	assert.True(t, r.Omitida)
	assert.Zero(t, repo.updates)
}

func TestClientes_EditarCelda(t *testing.T) {
	c := model.Cliente{ID: uuid.New(), NombreCliente: ptr("Andes")}
	repo := newStubClientes(c)
	s := NewClienteService(repo)

	r, err := s.EditarCelda(context.Background(), c.ID, dto.EditarClienteRequest{Campo: "rut_empresa", Valor: ptr("76.123.456-7")})
	require.NoError(t, err)
	assert.False(t, r.Omitida)
	assert.Equal(t, "76.123.456-7", r.Cliente.RutEmpresa)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, "76.123.456-7", *repo.clientes[c.ID].RutEmpresa)
}

func TestClientes_EditarInexistente(t *testing.T) {
	s := NewClienteService(newStubClientes())
	_, err := s.EditarCelda(context.Background(), uuid.New(), dto.EditarClienteRequest{Campo: "giro", Valor: ptr("x")})
	assert.ErrorIs(t, err, ErrClienteNoEncontrado)
}

func TestClientes_Eliminar(t *testing.T) {
	a := model.Cliente{ID: uuid.New()}
	b := model.Cliente{ID: uuid.New()}
	repo := newStubClientes(a, b)
	s := NewClienteService(repo)
	ctx := context.Background()

	_, err := s.Eliminar(ctx, []uuid.UUID{a.ID, b.ID}, false)
	var conf *ConfirmacionRequerida
	require.True(t, errors.As(err, &conf))
	assert.Equal(t, i18n.ConfirmarClientes, conf.Clave)
	assert.Len(t, repo.clientes, 2)

	n, err := s.Eliminar(ctx, []uuid.UUID{a.ID}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Eliminar(ctx, []uuid.UUID{a.ID, b.ID}, true)
	assert.ErrorIs(t, err, ErrClienteNoEncontrado)
	assert.Contains(t, repo.clientes, b.ID)

	_, err = s.Eliminar(ctx, nil, true)
	assert.ErrorIs(t, err, ErrSinSeleccion)
}
