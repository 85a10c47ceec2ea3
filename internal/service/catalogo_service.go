package service

import (
	"context"

	"embarques/internal/catalogo"
	"embarques/internal/repository"
)

type CatalogoService interface {
	Opciones(ctx context.Context, tipo, q string) ([]catalogo.Opcion, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
}

func NewCatalogoService(repo repository.CatalogoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

// Opciones returns one catalog, optionally narrowed by a name fragment.
// An unknown tipo yields catalogo.ErrKindDesconocido.
func (s *catalogoService) Opciones(ctx context.Context, tipo, q string) ([]catalogo.Opcion, error) {
	k, err := catalogo.ParseKind(tipo)
	if err != nil {
		return nil, err
	}
	ops, err := s.repo.Opciones(ctx, k)
	if err != nil {
		return nil, err
	}
	return catalogo.Filtrar(ops, q), nil
}
