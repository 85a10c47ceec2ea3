package service

import (
	"context"
	"testing"

	"embarques/internal/catalogo"
	"embarques/internal/dto"
	"embarques/internal/grid"
	"embarques/internal/i18n"
	"embarques/internal/wizard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogosReserva() catalogo.Conjunto {
	return catalogo.Conjunto{
		catalogo.Ejecutivos: {{ID: "e1", Nombre: "Ana Pérez"}},
		catalogo.Especies:   {{ID: "s1", Nombre: "CEREZAS"}},
		catalogo.Navieras:   {{ID: "n1", Nombre: "MSC"}},
		catalogo.Naves:      {{ID: "v1", Nombre: "MSC Anna"}, {ID: "v2", Nombre: "MSC Bella"}},
		catalogo.Destinos:   {{ID: "d1", Nombre: "SHANGHAI", Pais: "CHINA"}},
	}
}

func nuevaReserva(cats *stubCatalogos, ops *stubOps) (ReservaService, *grid.Grid) {
	g := grid.New(ops, cats, grid.NewMemoryCache(0))
	return NewReservaService(cats, ops, g), g
}

func TestReservas_ClienteNuevoEnCatalogoVacio(t *testing.T) {
	cats := newStubCatalogos(catalogosReserva())
	s, _ := nuevaReserva(cats, newStubOps())
	ctx := context.Background()

	r, err := s.ResolverCliente(ctx, es, "Frutícola Andes", "")
	require.NoError(t, err)
	assert.True(t, r.Crear)
	assert.Equal(t, "¿Crear el cliente \"Frutícola Andes\"?", r.Pregunta)

	o, err := s.CrearCliente(ctx, "  Frutícola Andes ")
	require.NoError(t, err)
	assert.Equal(t, "Frutícola Andes", o.Nombre)

	again, err := s.CrearCliente(ctx, "frutícola andes")
	require.NoError(t, err)
	assert.Equal(t, o.ID, again.ID)
	assert.Equal(t, 1, cats.creadas)

	_, err = s.CrearCliente(ctx, "   ")
	assert.ErrorIs(t, err, ErrNombreRequerido)
}

func TestReservas_CascadaNavieraNave(t *testing.T) {
	cats := newStubCatalogos(catalogosReserva())
	n1 := uuid.New()
	cats.vinculos[n1.String()] = []catalogo.Opcion{{ID: "v2", Nombre: "MSC Bella"}}
	s, _ := nuevaReserva(cats, newStubOps())
	ctx := context.Background()

	todas, err := s.Naves(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, todas, 2)

	vinculadas, err := s.Naves(ctx, &n1)
	require.NoError(t, err)
	assert.Equal(t, []catalogo.Opcion{{ID: "v2", Nombre: "MSC Bella"}}, vinculadas)

	otra := uuid.New()
	sinVinculos, err := s.Naves(ctx, &otra)
	require.NoError(t, err)
	assert.Len(t, sinVinculos, 2)
}

func formularioCompleto() wizard.Formulario {
	f := wizard.Inicial()
	f.Ejecutivo = "e1"
	f.Cliente = "c1"
	f.Especie = "s1"
	f.Naviera = "n1"
	f.Nave = "v1"
	f.POD = "d1"
	f.ETD = "2024-01-01"
	f.ETA = "2024-01-10"
	f.Booking = "BK1"
	return f
}

func TestReservas_ConfirmarExigePreview(t *testing.T) {
	cats := newStubCatalogos(catalogosReserva())
	ops := newStubOps()
	s, _ := nuevaReserva(cats, ops)
	ctx := context.Background()
	f := formularioCompleto()

	_, err := s.Confirmar(ctx, es, dto.ConfirmarReservaRequest{Formulario: f, Token: ""})
	assert.ErrorIs(t, err, ErrPreviewRequerido)

	p, err := s.Preview(ctx, es, f)
	require.NoError(t, err)

	cambiado := f
	cambiado.Booking = "BK2"
	_, err = s.Confirmar(ctx, es, dto.ConfirmarReservaRequest{Formulario: cambiado, Token: p.Token})
	assert.ErrorIs(t, err, ErrPreviewRequerido)
	assert.Empty(t, ops.ops)

	r, err := s.Confirmar(ctx, es, dto.ConfirmarReservaRequest{Formulario: f, Token: p.Token})
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Equal(t, RedirectRegistros, r.Redirect)
	assert.Equal(t, "CHINA", r.Fila.Pais)
	require.NotNil(t, r.Fila.TT)
	assert.Equal(t, 9, *r.Fila.TT)
	assert.Len(t, ops.ops, 1)
}

func TestReservas_ConfirmarInvalidaLaGrilla(t *testing.T) {
	cats := newStubCatalogos(catalogosReserva())
	ops := newStubOps()
	s, g := nuevaReserva(cats, ops)
	ctx := context.Background()

	antes, err := g.Filas(ctx, false)
	require.NoError(t, err)
	require.Empty(t, antes.Operaciones)

	f := formularioCompleto()
	_, err = s.Confirmar(ctx, es, dto.ConfirmarReservaRequest{Formulario: f, Token: wizard.Token(f)})
	require.NoError(t, err)

	despues, err := g.Filas(ctx, false)
	require.NoError(t, err)
	assert.Len(t, despues.Operaciones, 1)
}

func TestReservas_EstadoYListado(t *testing.T) {
	cats := newStubCatalogos(catalogosReserva())
	a := activaOp(1)
	a.EstadoOperacion = ptr("PENDIENTE")
	b := activaOp(2)
	b.EstadoOperacion = ptr("CONFIRMADO")
	s, _ := nuevaReserva(cats, newStubOps(a, b))

	e := s.Estado(formularioCompleto())
	require.NotNil(t, e.TT)
	assert.Equal(t, 9, *e.TT)

	r, err := s.Listar(context.Background(), i18n.NewSettings(i18n.EN, nil), dto.ReservasQuery{Estado: "PENDIENTE"})
	require.NoError(t, err)
	assert.Len(t, r.Filas, 1)
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, 1, r.FiltrosActivos)
}

func TestReservas_FechaInvalidaNoLlegaAlStore(t *testing.T) {
	cats := newStubCatalogos(catalogosReserva())
	ops := newStubOps()
	s, _ := nuevaReserva(cats, ops)
	ctx := context.Background()
	f := formularioCompleto()
	f.Citacion = "mañana temprano"

	_, err := s.Preview(ctx, es, f)
	assert.ErrorIs(t, err, wizard.ErrValorInvalido)

	_, err = s.Confirmar(ctx, es, dto.ConfirmarReservaRequest{Formulario: f, Token: wizard.Token(f)})
	assert.ErrorIs(t, err, wizard.ErrValorInvalido)
	assert.Empty(t, ops.ops)
}
