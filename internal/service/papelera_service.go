package service

import (
	"context"
	"errors"

	"embarques/internal/dto"
	"embarques/internal/i18n"
	"embarques/internal/model"
	"embarques/internal/projection"
	"embarques/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BlobStorage stores document files under a relative path.
type BlobStorage interface {
	Upload(ctx context.Context, ruta string, data []byte) error
	PublicURL(ruta string) string
	Remove(ctx context.Context, rutas ...string) error
}

// Invalidador drops the cached active set after an out-of-band change.
type Invalidador interface {
	Invalidar(ctx context.Context)
}

// PapeleraService moves operations between the trash and the active set and
// purges them for good.
type PapeleraService interface {
	Listar(ctx context.Context, s i18n.Settings) (dto.RegistrosResponse, error)
	Restaurar(ctx context.Context, ids []uuid.UUID) (int64, error)
	Eliminar(ctx context.Context, ids []uuid.UUID, confirmado bool) (int64, error)
	Vaciar(ctx context.Context, confirmado bool) (int64, error)
}

type papeleraService struct {
	ops   repository.OperacionRepository
	docs  repository.DocumentoRepository
	blobs BlobStorage
	cache Invalidador
}

func NewPapeleraService(ops repository.OperacionRepository, docs repository.DocumentoRepository, blobs BlobStorage, cache Invalidador) PapeleraService {
	return &papeleraService{ops: ops, docs: docs, blobs: blobs, cache: cache}
}

func (s *papeleraService) Listar(ctx context.Context, st i18n.Settings) (dto.RegistrosResponse, error) {
	ops, err := s.ops.ListarPapelera(ctx)
	if err != nil {
		return dto.RegistrosResponse{}, err
	}
	return dto.RegistrosResponse{Filas: projection.NuevasFilas(ops, st), Total: len(ops)}, nil
}

// Restaurar brings every id back to the active set, or none of them.
func (s *papeleraService) Restaurar(ctx context.Context, ids []uuid.UUID) (int64, error) {
	ids = unicos(ids)
	if len(ids) == 0 {
		return 0, ErrSinSeleccion
	}
	if err := s.ops.Restaurar(ctx, ids); err != nil {
		if errors.Is(err, repository.ErrConteoInconsistente) {
			return 0, ErrNoEnPapelera
		}
		return 0, err
	}
	s.cache.Invalidar(ctx)
	return int64(len(ids)), nil
}

// Eliminar purges trashed operations and their documents. It needs explicit
// confirmation and fails as a whole when any id is not in the trash.
func (s *papeleraService) Eliminar(ctx context.Context, ids []uuid.UUID, confirmado bool) (int64, error) {
	ids = unicos(ids)
	if len(ids) == 0 {
		return 0, ErrSinSeleccion
	}
	if !confirmado {
		return 0, confirmar(i18n.ConfirmarEliminar, len(ids))
	}

	docs, err := s.docs.ListByOperaciones(ctx, ids)
	if err != nil {
		return 0, err
	}
	if err := s.ops.Purgar(ctx, ids); err != nil {
		if errors.Is(err, repository.ErrConteoInconsistente) {
			return 0, ErrSoloPapelera
		}
		return 0, err
	}
	s.borrarArchivos(ctx, docs)
	return int64(len(ids)), nil
}

// Vaciar purges the whole trash. An empty trash is a no-op that needs no
// confirmation.
func (s *papeleraService) Vaciar(ctx context.Context, confirmado bool) (int64, error) {
	n, err := s.ops.ContarPapelera(ctx)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if !confirmado {
		return 0, confirmar(i18n.ConfirmarVaciar, n)
	}

	docs, err := s.docs.ListEnPapelera(ctx)
	if err != nil {
		return 0, err
	}
	purgadas, err := s.ops.VaciarPapelera(ctx)
	if err != nil {
		return 0, err
	}
	s.borrarArchivos(ctx, docs)
	return purgadas, nil
}

// borrarArchivos removes the blobs of purged documents. The rows are already
// gone, so a failure here only leaves orphan files behind.
func (s *papeleraService) borrarArchivos(ctx context.Context, docs []model.Documento) {
	if len(docs) == 0 {
		return
	}
	rutas := make([]string, len(docs))
	for i, d := range docs {
		rutas[i] = d.Ruta
	}
	if err := s.blobs.Remove(ctx, rutas...); err != nil {
		log.Warn().Err(err).Int("archivos", len(rutas)).Msg("papelera: no se pudieron borrar archivos de documentos")
	}
}
