// Package grid keeps the editable row set of active operations in sync with
// the store: load and refresh, single-cell edits, add row, bulk trash and
// the carrier-dependent vessel options.
//
// The cached row set is only patched after the store accepted a change.
// There is no version column; concurrent editors overwrite each other.
package grid

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"embarques/internal/catalogo"
	"embarques/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrSinSeleccion = errors.New("seleccione al menos un registro")

// Store is the subset of the operaciones repository the grid needs.
type Store interface {
	ListarActivas(ctx context.Context) ([]model.Operacion, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Operacion, error)
	Create(ctx context.Context, op *model.Operacion) error
	ActualizarCampos(ctx context.Context, id uuid.UUID, campos map[string]any) error
	EnviarAPapelera(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

type Catalogos interface {
	Opciones(ctx context.Context, kind catalogo.Kind) ([]catalogo.Opcion, error)
	NavesPorNombreNaviera(ctx context.Context, naviera string) ([]catalogo.Opcion, error)
	PaisDestino(ctx context.Context, nombre string) (string, error)
}

type Grid struct {
	store Store
	cat   Catalogos
	cache Cache
	now   func() time.Time

	// mu serializes read-modify-write of the cached set within the process.
	mu sync.Mutex
}

func New(store Store, cat Catalogos, cache Cache) *Grid {
	return &Grid{store: store, cat: cat, cache: cache, now: time.Now}
}

// Resultado is a row set plus an optional banner error. Aviso is set when a
// refresh failed and the previous rows are being served instead.
type Resultado struct {
	Operaciones []model.Operacion
	Aviso       error
}

// Load fetches every active operation and replaces the cached set. On error
// the cached set is left as it was.
func (g *Grid) Load(ctx context.Context) ([]model.Operacion, error) {
	ops, err := g.store.ListarActivas(ctx)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.cache.Set(ctx, ops); err != nil {
		log.Warn().Err(err).Msg("grid: no se pudo guardar la cache de operaciones")
	}
	return ops, nil
}

// Filas serves the cached set, loading it when empty or when refresh is set.
func (g *Grid) Filas(ctx context.Context, refresh bool) (Resultado, error) {
	prev, ok := g.cached(ctx)
	if ok && !refresh {
		return Resultado{Operaciones: prev}, nil
	}
	ops, err := g.Load(ctx)
	if err != nil {
		if ok {
			return Resultado{Operaciones: prev, Aviso: err}, nil
		}
		return Resultado{}, err
	}
	return Resultado{Operaciones: ops}, nil
}

// CellEdit is one committed cell value. Anterior is the value the editor
// showed before the change; it is only meaningful when ConAnterior is set.
type CellEdit struct {
	ID          uuid.UUID
	Campo       string
	Anterior    any
	ConAnterior bool
	Nuevo       any
}

// Edicion describes the outcome of a cell edit. Omitida means the value did
// not change and the store was not called.
type Edicion struct {
	Operacion *model.Operacion
	Campos    map[string]any
	Omitida   bool
}

// EditarCelda pushes a single-column change of one row to the store. Editing
// the destination also copies the destination's country in the same update.
func (g *Grid) EditarCelda(ctx context.Context, e CellEdit) (Edicion, error) {
	tipo, ok := Editable(e.Campo)
	if !ok {
		return Edicion{}, ErrColumnaNoEditable
	}
	valor, canon, err := Normalizar(tipo, e.Nuevo)
	if err != nil {
		return Edicion{}, err
	}

	actual := g.fila(ctx, e.ID)
	if previo, ok := previo(e, tipo, actual); ok && previo == canon {
		return Edicion{Operacion: actual, Omitida: true}, nil
	}

	campos := map[string]any{e.Campo: valor}
	if e.Campo == "pod" && valor != nil {
		pais, err := g.cat.PaisDestino(ctx, valor.(string))
		if err != nil {
			return Edicion{}, err
		}
		if pais != "" {
			campos["pais"] = pais
		}
	}

	if err := g.store.ActualizarCampos(ctx, e.ID, campos); err != nil {
		return Edicion{}, err
	}

	op := g.patch(ctx, e.ID, campos)
	if op == nil {
		if op, err = g.store.FindByID(ctx, e.ID); err != nil {
			log.Warn().Err(err).Str("id", e.ID.String()).Msg("grid: no se pudo releer la operación editada")
			op = nil
		}
	}
	return Edicion{Operacion: op, Campos: campos}, nil
}

func previo(e CellEdit, tipo Tipo, actual *model.Operacion) (string, bool) {
	if e.ConAnterior {
		if _, c, err := Normalizar(tipo, e.Anterior); err == nil {
			return c, true
		}
	}
	if actual != nil {
		return canonico(actual, e.Campo)
	}
	return "", false
}

// AgregarFila inserts a stub operation and prepends it to the cached set.
func (g *Grid) AgregarFila(ctx context.Context) (model.Operacion, error) {
	op := model.Operacion{
		Ejecutivo:       ptr(""),
		EstadoOperacion: ptr("PENDIENTE"),
		TipoOperacion:   ptr("EXPORTACIÓN"),
		Cliente:         ptr("NUEVO"),
		OrigenRegistro:  ptr("manual"),
	}
	if err := g.store.Create(ctx, &op); err != nil {
		return model.Operacion{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if ops, ok := g.cached(ctx); ok {
		g.guardar(ctx, append([]model.Operacion{op}, ops...))
	}
	return op, nil
}

// EnviarAPapelera trashes every selected row in one atomic update. On any
// failure no row leaves the cached set.
func (g *Grid) EnviarAPapelera(ctx context.Context, ids []uuid.UUID) error {
	ids = unicos(ids)
	if len(ids) == 0 {
		return ErrSinSeleccion
	}
	if err := g.store.EnviarAPapelera(ctx, ids, g.now()); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	ops, ok := g.cached(ctx)
	if !ok {
		return nil
	}
	quitar := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		quitar[id] = true
	}
	quedan := make([]model.Operacion, 0, len(ops))
	for _, op := range ops {
		if !quitar[op.ID] {
			quedan = append(quedan, op)
		}
	}
	g.guardar(ctx, quedan)
	return nil
}

// OpcionesNave lists the vessels selectable for a row whose carrier is
// naviera. Without a carrier, or when none are linked, every vessel is offered.
func (g *Grid) OpcionesNave(ctx context.Context, naviera string) ([]catalogo.Opcion, error) {
	todas, err := g.cat.Opciones(ctx, catalogo.Naves)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(naviera) == "" {
		return todas, nil
	}
	vinculadas, err := g.cat.NavesPorNombreNaviera(ctx, naviera)
	if err != nil {
		return nil, err
	}
	return catalogo.FiltrarNaves(vinculadas, todas), nil
}

// Invalidar drops the cached set so the next read reloads it.
func (g *Grid) Invalidar(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.cache.Delete(ctx); err != nil {
		log.Warn().Err(err).Msg("grid: no se pudo invalidar la cache de operaciones")
	}
}

func (g *Grid) cached(ctx context.Context) ([]model.Operacion, bool) {
	ops, ok, err := g.cache.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("grid: cache de operaciones no disponible")
		return nil, false
	}
	return ops, ok
}

func (g *Grid) guardar(ctx context.Context, ops []model.Operacion) {
	if err := g.cache.Set(ctx, ops); err != nil {
		log.Warn().Err(err).Msg("grid: no se pudo guardar la cache de operaciones")
	}
}

func (g *Grid) fila(ctx context.Context, id uuid.UUID) *model.Operacion {
	ops, ok := g.cached(ctx)
	if !ok {
		return nil
	}
	for i := range ops {
		if ops[i].ID == id {
			return &ops[i]
		}
	}
	return nil
}

// patch applies campos to the cached copy of id and returns it, or nil when
// the row is not cached.
func (g *Grid) patch(ctx context.Context, id uuid.UUID, campos map[string]any) *model.Operacion {
	g.mu.Lock()
	defer g.mu.Unlock()
	ops, ok := g.cached(ctx)
	if !ok {
		return nil
	}
	for i := range ops {
		if ops[i].ID != id {
			continue
		}
		if err := aplicar(&ops[i], campos); err != nil {
			log.Warn().Err(err).Msg("grid: no se pudo aplicar la edición a la cache")
			return nil
		}
		g.guardar(ctx, ops)
		op := ops[i]
		return &op
	}
	return nil
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

func ptr[T any](v T) *T { return &v }
