package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"embarques/internal/catalogo"
	"embarques/internal/dto"
	"embarques/internal/grid"
	"embarques/internal/i18n"
	"embarques/internal/infra"
	"embarques/internal/projection"
	"embarques/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistroService is the operations grid: listing, cell edits, add row, bulk
// trash, vessel options and the exports of the active set.
type RegistroService interface {
	Listar(ctx context.Context, s i18n.Settings, refresh bool) (dto.RegistrosResponse, error)
	AgregarFila(ctx context.Context, s i18n.Settings) (projection.Fila, error)
	EditarCelda(ctx context.Context, s i18n.Settings, id uuid.UUID, req dto.EditarCeldaRequest) (dto.EdicionResponse, error)
	EnviarAPapelera(ctx context.Context, ids []uuid.UUID) (int64, error)
	OpcionesNave(ctx context.Context, naviera string) ([]catalogo.Opcion, error)
	ExportarXLSX(ctx context.Context, s i18n.Settings) ([]byte, error)
	HojaReservaPDF(ctx context.Context, s i18n.Settings, id uuid.UUID) ([]byte, string, error)
}

type registroService struct {
	grid *grid.Grid
	repo repository.OperacionRepository
	now  func() time.Time
}

func NewRegistroService(g *grid.Grid, repo repository.OperacionRepository) RegistroService {
	return &registroService{grid: g, repo: repo, now: time.Now}
}

func (s *registroService) Listar(ctx context.Context, st i18n.Settings, refresh bool) (dto.RegistrosResponse, error) {
	res, err := s.grid.Filas(ctx, refresh)
	if err != nil {
		return dto.RegistrosResponse{}, err
	}
	out := dto.RegistrosResponse{
		Filas: projection.NuevasFilas(res.Operaciones, st),
		Total: len(res.Operaciones),
	}
	if res.Aviso != nil {
		out.Aviso = st.T(i18n.ErrCargaRegistros)
	}
	return out, nil
}

func (s *registroService) AgregarFila(ctx context.Context, st i18n.Settings) (projection.Fila, error) {
	op, err := s.grid.AgregarFila(ctx)
	if err != nil {
		return projection.Fila{}, err
	}
	return projection.NuevaFila(op, st), nil
}

func (s *registroService) EditarCelda(ctx context.Context, st i18n.Settings, id uuid.UUID, req dto.EditarCeldaRequest) (dto.EdicionResponse, error) {
	e := grid.CellEdit{ID: id, Campo: req.Campo, Nuevo: req.Valor}
	if len(req.Anterior) > 0 {
		if err := json.Unmarshal(req.Anterior, &e.Anterior); err != nil {
			return dto.EdicionResponse{}, grid.ErrValorInvalido
		}
		e.ConAnterior = true
	}

	ed, err := s.grid.EditarCelda(ctx, e)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EdicionResponse{}, ErrOperacionNoEncontrada
		}
		return dto.EdicionResponse{}, err
	}
	out := dto.EdicionResponse{Omitida: ed.Omitida}
	if ed.Operacion != nil {
		f := projection.NuevaFila(*ed.Operacion, st)
		out.Fila = &f
	}
	return out, nil
}

func (s *registroService) EnviarAPapelera(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if err := s.grid.EnviarAPapelera(ctx, ids); err != nil {
		if errors.Is(err, repository.ErrConteoInconsistente) {
			return 0, ErrSeleccionActiva
		}
		return 0, err
	}
	return int64(len(unicos(ids))), nil
}

func (s *registroService) OpcionesNave(ctx context.Context, naviera string) ([]catalogo.Opcion, error) {
	return s.grid.OpcionesNave(ctx, naviera)
}

// ExportarXLSX writes the active set, as currently cached, to a workbook.
func (s *registroService) ExportarXLSX(ctx context.Context, st i18n.Settings) ([]byte, error) {
	res, err := s.grid.Filas(ctx, false)
	if err != nil {
		return nil, err
	}
	filas := projection.NuevasFilas(res.Operaciones, st)
	valores := make([][]any, len(filas))
	for i, f := range filas {
		valores[i] = f.Valores()
	}
	return infra.GenerarXLSX(projection.Encabezados(), valores)
}

// HojaReservaPDF renders the booking sheet and returns it with a file name.
func (s *registroService) HojaReservaPDF(ctx context.Context, st i18n.Settings, id uuid.UUID) ([]byte, string, error) {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrOperacionNoEncontrada
		}
		return nil, "", err
	}
	f := projection.NuevaFila(*op, st)
	pdf, err := infra.GenerarHojaReservaPDF(f, s.now().In(st.Zone))
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("reserva_%s.pdf", f.RefASLI), nil
}

func unicos(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
