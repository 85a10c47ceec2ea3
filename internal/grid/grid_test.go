package grid

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"embarques/internal/catalogo"
	"embarques/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubStore struct {
	ops         map[uuid.UUID]*model.Operacion
	seq         int64
	updates     int
	ultimos     map[string]any
	errListar   error
	errUpdate   error
	errPapelera error
}

var _ Store = (*stubStore)(nil)

func newStubStore(ops ...model.Operacion) *stubStore {
	s := &stubStore{ops: make(map[uuid.UUID]*model.Operacion)}
	for i := range ops {
		op := ops[i]
		s.ops[op.ID] = &op
		if op.Correlativo > s.seq {
			s.seq = op.Correlativo
		}
	}
	return s
}

func (s *stubStore) ListarActivas(_ context.Context) ([]model.Operacion, error) {
	if s.errListar != nil {
		return nil, s.errListar
	}
	var out []model.Operacion
	for _, op := range s.ops {
		if op.DeletedAt == nil {
			out = append(out, *op)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Correlativo > out[j].Correlativo })
	return out, nil
}

func (s *stubStore) FindByID(_ context.Context, id uuid.UUID) (*model.Operacion, error) {
	op, ok := s.ops[id]
	if !ok {
		return nil, errors.New("no encontrada")
	}
	c := *op
	return &c, nil
}

func (s *stubStore) Create(_ context.Context, op *model.Operacion) error {
	s.seq++
	op.ID = uuid.New()
	op.Correlativo = s.seq
	c := *op
	s.ops[op.ID] = &c
	return nil
}

func (s *stubStore) ActualizarCampos(_ context.Context, id uuid.UUID, campos map[string]any) error {
	s.updates++
	s.ultimos = campos
	if s.errUpdate != nil {
		return s.errUpdate
	}
	op, ok := s.ops[id]
	if !ok || op.DeletedAt != nil {
		return errors.New("no encontrada")
	}
	return aplicar(op, campos)
}

func (s *stubStore) EnviarAPapelera(_ context.Context, ids []uuid.UUID, at time.Time) error {
	if s.errPapelera != nil {
		return s.errPapelera
	}
	for _, id := range ids {
		if op, ok := s.ops[id]; !ok || op.DeletedAt != nil {
			return errors.New("conteo inconsistente")
		}
	}
	for _, id := range ids {
		s.ops[id].DeletedAt = &at
	}
	return nil
}

func (s *stubStore) restaurar(ids ...uuid.UUID) {
	for _, id := range ids {
		s.ops[id].DeletedAt = nil
	}
}

type stubCatalogos struct {
	naves     []catalogo.Opcion
	porNav    map[string][]catalogo.Opcion
	paises    map[string]string
	errPais   error
	consultas int
}

var _ Catalogos = (*stubCatalogos)(nil)

func (c *stubCatalogos) Opciones(_ context.Context, kind catalogo.Kind) ([]catalogo.Opcion, error) {
	if kind == catalogo.Naves {
		return c.naves, nil
	}
	return nil, nil
}

func (c *stubCatalogos) NavesPorNombreNaviera(_ context.Context, naviera string) ([]catalogo.Opcion, error) {
	return c.porNav[naviera], nil
}

func (c *stubCatalogos) PaisDestino(_ context.Context, nombre string) (string, error) {
	c.consultas++
	if c.errPais != nil {
		return "", c.errPais
	}
	return c.paises[nombre], nil
}

func ptrS(s string) *string { return &s }

func op(correlativo int64, cliente string) model.Operacion {
	return model.Operacion{ID: uuid.New(), Correlativo: correlativo, Cliente: ptrS(cliente)}
}

func buildGrid(ops ...model.Operacion) (*Grid, *stubStore, *stubCatalogos) {
	store := newStubStore(ops...)
	cat := &stubCatalogos{
		naves: []catalogo.Opcion{{ID: "n1", Nombre: "MSC Anna"}, {ID: "n2", Nombre: "Maersk Kobe"}},
		porNav: map[string][]catalogo.Opcion{
			"MSC": {{ID: "n1", Nombre: "MSC Anna"}},
		},
		paises: map[string]string{"SHANGHAI": "CHINA"},
	}
	return New(store, cat, NewMemoryCache(0)), store, cat
}

func ids(ops []model.Operacion) []uuid.UUID {
	out := make([]uuid.UUID, len(ops))
	for i, o := range ops {
		out[i] = o.ID
	}
	return out
}

// ── Load / Filas ─────────────────────────────────────────────────────────────

func TestLoad_OrdenDescendente(t *testing.T) {
	g, _, _ := buildGrid(op(1, "A"), op(3, "C"), op(2, "B"))
	ops, err := g.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{ops[0].Correlativo, ops[1].Correlativo, ops[2].Correlativo})
}

func TestFilas_RefrescoFallidoConservaFilas(t *testing.T) {
	g, store, _ := buildGrid(op(1, "A"), op(2, "B"))
	ctx := context.Background()
	_, err := g.Filas(ctx, false)
	require.NoError(t, err)

	store.errListar = errors.New("timeout")
	res, err := g.Filas(ctx, true)
	require.NoError(t, err)
	assert.Len(t, res.Operaciones, 2)
	assert.EqualError(t, res.Aviso, "timeout")
}

func TestFilas_CacheVencidaRecargaDelStore(t *testing.T) {
	store := newStubStore(op(1, "A"))
	cache := NewMemoryCache(10 * time.Minute)
	ahora := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return ahora }
	g := New(store, &stubCatalogos{}, cache)
	ctx := context.Background()

	res, err := g.Filas(ctx, false)
	require.NoError(t, err)
	require.Len(t, res.Operaciones, 1)

	// Inserted outside the grid, e.g. by an import script.
	nueva := op(2, "B")
	store.ops[nueva.ID] = &nueva

	ahora = ahora.Add(9 * time.Minute)
	res, err = g.Filas(ctx, false)
	require.NoError(t, err)
	assert.Len(t, res.Operaciones, 1, "dentro del plazo se sirve la cache")

	ahora = ahora.Add(time.Minute)
	res, err = g.Filas(ctx, false)
	require.NoError(t, err)
	assert.Len(t, res.Operaciones, 2)
}

func TestFilas_PrimeraCargaFallida(t *testing.T) {
	g, store, _ := buildGrid(op(1, "A"))
	store.errListar = errors.New("sin conexión")
	_, err := g.Filas(context.Background(), false)
	assert.Error(t, err)
}

// ── EditarCelda ──────────────────────────────────────────────────────────────

func TestEditarCelda_MismoValorNoLlamaAlStore(t *testing.T) {
	o := op(1, "Frutas del Sur")
	g, store, _ := buildGrid(o)
	ctx := context.Background()
	_, err := g.Load(ctx)
	require.NoError(t, err)

	ed, err := g.EditarCelda(ctx, CellEdit{ID: o.ID, Campo: "cliente", Nuevo: "Frutas del Sur"})
	require.NoError(t, err)
	assert.True(t, ed.Omitida)
	assert.Equal(t, 0, store.updates)

	ed, err = g.EditarCelda(ctx, CellEdit{ID: o.ID, Campo: "pallets", Anterior: "20", ConAnterior: true, Nuevo: float64(20)})
	require.NoError(t, err)
	assert.True(t, ed.Omitida)
	assert.Equal(t, 0, store.updates)
}

func TestEditarCelda_VacioANuloEsNoOp(t *testing.T) {
	o := op(1, "")
	o.Booking = nil
	g, store, _ := buildGrid(o)
	ctx := context.Background()
	_, _ = g.Load(ctx)

	ed, err := g.EditarCelda(ctx, CellEdit{ID: o.ID, Campo: "booking", Nuevo: "  "})
	require.NoError(t, err)
	assert.True(t, ed.Omitida)
	assert.Equal(t, 0, store.updates)
}

func TestEditarCelda_ActualizaCacheTrasExito(t *testing.T) {
	o := op(1, "A")
	g, store, _ := buildGrid(o)
	ctx := context.Background()
	_, _ = g.Load(ctx)

	ed, err := g.EditarCelda(ctx, CellEdit{ID: o.ID, Campo: "peso_bruto", Nuevo: "1234,5"})
	require.NoError(t, err)
	assert.False(t, ed.Omitida)
	assert.Equal(t, 1, store.updates)
	require.NotNil(t, ed.Operacion)
	assert.True(t, ed.Operacion.PesoBruto.Decimal.Equal(decimal.RequireFromString("1234.5")))

	res, _ := g.Filas(ctx, false)
	assert.True(t, res.Operaciones[0].PesoBruto.Valid)
}

func TestEditarCelda_DestinoPropagaPais(t *testing.T) {
	o := op(1, "A")
	g, store, cat := buildGrid(o)
	ctx := context.Background()
	_, _ = g.Load(ctx)

	ed, err := g.EditarCelda(ctx, CellEdit{ID: o.ID, Campo: "pod", Nuevo: "SHANGHAI"})
	require.NoError(t, err)
	assert.Equal(t, 1, store.updates, "destino y país en una sola actualización")
	assert.Equal(t, map[string]any{"pod": "SHANGHAI", "pais": "CHINA"}, store.ultimos)
	assert.Equal(t, 1, cat.consultas)
	require.NotNil(t, ed.Operacion)
	assert.Equal(t, "CHINA", *ed.Operacion.Pais)
	assert.Equal(t, "SHANGHAI", *ed.Operacion.POD)
}

func TestEditarCelda_DestinoSinPaisSoloActualizaDestino(t *testing.T) {
	o := op(1, "A")
	o.Pais = ptrS("PERÚ")
	g, store, _ := buildGrid(o)
	ctx := context.Background()
	_, _ = g.Load(ctx)

	_, err := g.EditarCelda(ctx, CellEdit{ID: o.ID, Campo: "pod", Nuevo: "DESCONOCIDO"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"pod": "DESCONOCIDO"}, store.ultimos)
}

func TestEditarCelda_FalloNoTocaCache(t *testing.T) {
	o := op(1, "Original")
	g, store, _ := buildGrid(o)
	ctx := context.Background()
	_, _ = g.Load(ctx)

	store.errUpdate = errors.New("violates check constraint")
	_, err := g.EditarCelda(ctx, CellEdit{ID: o.ID, Campo: "cliente", Nuevo: "Otro"})
	assert.EqualError(t, err, "violates check constraint")

	res, _ := g.Filas(ctx, false)
	assert.Equal(t, "Original", *res.Operaciones[0].Cliente)
}

func TestEditarCelda_ColumnaNoEditable(t *testing.T) {
	o := op(1, "A")
	g, store, _ := buildGrid(o)
	for _, c := range []string{"ref_asli", "etd", "deleted_at", "correlativo", "inexistente"} {
		_, err := g.EditarCelda(context.Background(), CellEdit{ID: o.ID, Campo: c, Nuevo: "x"})
		assert.ErrorIs(t, err, ErrColumnaNoEditable, c)
	}
	assert.Equal(t, 0, store.updates)
}

func TestEditarCelda_ValorInvalido(t *testing.T) {
	o := op(1, "A")
	g, store, _ := buildGrid(o)
	_, err := g.EditarCelda(context.Background(), CellEdit{ID: o.ID, Campo: "tt", Nuevo: "nueve"})
	assert.ErrorIs(t, err, ErrValorInvalido)
	assert.Equal(t, 0, store.updates)
}

func TestEditarCelda_SinCacheLlamaAlStore(t *testing.T) {
	o := op(1, "A")
	g, store, _ := buildGrid(o)

	ed, err := g.EditarCelda(context.Background(), CellEdit{ID: o.ID, Campo: "cliente", Nuevo: "A"})
	require.NoError(t, err)
	assert.False(t, ed.Omitida)
	assert.Equal(t, 1, store.updates)
	require.NotNil(t, ed.Operacion)
}

// ── AgregarFila ──────────────────────────────────────────────────────────────

func TestAgregarFila_AnteponeSinRecargar(t *testing.T) {
	g, store, _ := buildGrid(op(1, "A"), op(2, "B"))
	ctx := context.Background()
	_, _ = g.Load(ctx)

	nueva, err := g.AgregarFila(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PENDIENTE", *nueva.EstadoOperacion)
	assert.Equal(t, "NUEVO", *nueva.Cliente)
	assert.Equal(t, "", *nueva.Ejecutivo)
	assert.Equal(t, "manual", *nueva.OrigenRegistro)

	store.errListar = errors.New("no debería recargar")
	res, err := g.Filas(ctx, false)
	require.NoError(t, err)
	require.Len(t, res.Operaciones, 3)
	assert.Equal(t, nueva.ID, res.Operaciones[0].ID)
}

// ── EnviarAPapelera ──────────────────────────────────────────────────────────

func TestEnviarAPapelera_FalloMantieneTodas(t *testing.T) {
	a, b, c := op(1, "A"), op(2, "B"), op(3, "C")
	g, store, _ := buildGrid(a, b, c)
	ctx := context.Background()
	_, _ = g.Load(ctx)

	store.errPapelera = errors.New("network error")
	err := g.EnviarAPapelera(ctx, []uuid.UUID{a.ID, b.ID})
	require.Error(t, err)

	res, _ := g.Filas(ctx, false)
	assert.Len(t, res.Operaciones, 3)
}

func TestEnviarAPapelera_ParcialEsFalloTotal(t *testing.T) {
	a, b := op(1, "A"), op(2, "B")
	g, _, _ := buildGrid(a, b)
	ctx := context.Background()
	_, _ = g.Load(ctx)

	err := g.EnviarAPapelera(ctx, []uuid.UUID{a.ID, uuid.New()})
	require.Error(t, err)
	res, _ := g.Filas(ctx, false)
	assert.Len(t, res.Operaciones, 2)
}

func TestEnviarAPapelera_SinSeleccion(t *testing.T) {
	g, _, _ := buildGrid()
	assert.ErrorIs(t, g.EnviarAPapelera(context.Background(), nil), ErrSinSeleccion)
}

func TestPapeleraYRestaurar_Identidad(t *testing.T) {
	a, b := op(1, "A"), op(2, "B")
	a.Naviera = ptrS("MSC")
	a.PesoNeto = decimal.NewNullDecimal(decimal.NewFromInt(900))
	g, store, _ := buildGrid(a, b)
	ctx := context.Background()

	antes, err := g.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, g.EnviarAPapelera(ctx, []uuid.UUID{a.ID, a.ID}))
	res, _ := g.Filas(ctx, false)
	assert.NotContains(t, ids(res.Operaciones), a.ID)

	store.restaurar(a.ID)
	g.Invalidar(ctx)
	res, err = g.Filas(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, antes, res.Operaciones)
}

// ── OpcionesNave ─────────────────────────────────────────────────────────────

func TestOpcionesNave(t *testing.T) {
	g, _, _ := buildGrid()
	ctx := context.Background()

	naves, err := g.OpcionesNave(ctx, "MSC")
	require.NoError(t, err)
	assert.Len(t, naves, 1)

	naves, err = g.OpcionesNave(ctx, "HAPAG")
	require.NoError(t, err)
	assert.Len(t, naves, 2, "sin naves vinculadas se ofrecen todas")

	naves, err = g.OpcionesNave(ctx, "")
	require.NoError(t, err)
	assert.Len(t, naves, 2)
}
