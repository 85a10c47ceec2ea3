package service

import (
	"context"
	"encoding/json"
	"errors"

	"embarques/internal/dto"
	"embarques/internal/grid"
	"embarques/internal/i18n"
	"embarques/internal/model"
	"embarques/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NombreClienteNuevo is the placeholder name of a freshly added client row.
const NombreClienteNuevo = "Nuevo cliente"

// ClienteService is the clients grid.
type ClienteService interface {
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Agregar(ctx context.Context) (dto.ClienteResponse, error)
	EditarCelda(ctx context.Context, id uuid.UUID, req dto.EditarClienteRequest) (dto.EdicionClienteResponse, error)
	Eliminar(ctx context.Context, ids []uuid.UUID, confirmado bool) (int64, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func mapCliente(c model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:            c.ID,
		NombreCliente: texto(c.NombreCliente),
		Contacto:      texto(c.Contacto),
		RutEmpresa:    texto(c.RutEmpresa),
		Giro:          texto(c.Giro),
		CreatedAt:     c.CreatedAt,
	}
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, len(clientes))
	for i, c := range clientes {
		out[i] = mapCliente(c)
	}
	return out, nil
}

func (s *clienteService) Agregar(ctx context.Context) (dto.ClienteResponse, error) {
	nombre, vacio := NombreClienteNuevo, ""
	c := &model.Cliente{
		NombreCliente: &nombre,
		Contacto:      &vacio,
		RutEmpresa:    &vacio,
		Giro:          &vacio,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.ClienteResponse{}, err
	}
	return mapCliente(*c), nil
}

// EditarCelda writes one column of a client. When the new value equals the
// previous one the store is not touched.
func (s *clienteService) EditarCelda(ctx context.Context, id uuid.UUID, req dto.EditarClienteRequest) (dto.EdicionClienteResponse, error) {
	nuevo := normalizar(req.Valor)

	if len(req.Anterior) > 0 {
		var anterior *string
		if err := json.Unmarshal(req.Anterior, &anterior); err != nil {
			return dto.EdicionClienteResponse{}, grid.ErrValorInvalido
		}
		if igual(normalizar(anterior), nuevo) {
			return dto.EdicionClienteResponse{Omitida: true}, nil
		}
	}

	actual, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EdicionClienteResponse{}, ErrClienteNoEncontrado
		}
		return dto.EdicionClienteResponse{}, err
	}
	campo := columnaCliente(actual, req.Campo)
	if campo == nil {
		return dto.EdicionClienteResponse{}, grid.ErrColumnaNoEditable
	}
	if igual(normalizar(*campo), nuevo) {
		return dto.EdicionClienteResponse{Cliente: mapCliente(*actual), Omitida: true}, nil
	}

	var valor any
	if nuevo != nil {
		valor = *nuevo
	}
	if err := s.repo.ActualizarCampo(ctx, id, req.Campo, valor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EdicionClienteResponse{}, ErrClienteNoEncontrado
		}
		return dto.EdicionClienteResponse{}, err
	}
	*campo = nuevo
	return dto.EdicionClienteResponse{Cliente: mapCliente(*actual)}, nil
}

// Eliminar deletes clients for good. It needs confirmation.
func (s *clienteService) Eliminar(ctx context.Context, ids []uuid.UUID, confirmado bool) (int64, error) {
	ids = unicos(ids)
	if len(ids) == 0 {
		return 0, ErrSinSeleccion
	}
	if !confirmado {
		return 0, confirmar(i18n.ConfirmarClientes, len(ids))
	}
	if err := s.repo.Delete(ctx, ids); err != nil {
		if errors.Is(err, repository.ErrConteoInconsistente) {
			return 0, ErrClienteNoEncontrado
		}
		return 0, err
	}
	return int64(len(ids)), nil
}

func columnaCliente(c *model.Cliente, campo string) **string {
	switch campo {
	case "nombre_cliente":
		return &c.NombreCliente
	case "contacto":
		return &c.Contacto
	case "rut_empresa":
		return &c.RutEmpresa
	case "giro":
		return &c.Giro
	}
	return nil
}

// normalizar treats an empty string as null.
func normalizar(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func igual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
