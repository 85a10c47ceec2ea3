package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"embarques/internal/catalogo"
	"embarques/internal/model"
	"embarques/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory OperacionRepository ────────────────────────────────────────────

type stubOps struct {
	ops      map[uuid.UUID]*model.Operacion
	seq      int64
	updates  []map[string]any
	errCrear error
}

var _ repository.OperacionRepository = (*stubOps)(nil)

func newStubOps(ops ...model.Operacion) *stubOps {
	s := &stubOps{ops: make(map[uuid.UUID]*model.Operacion)}
	for i := range ops {
		op := ops[i]
		if op.ID == uuid.Nil {
			op.ID = uuid.New()
		}
		s.ops[op.ID] = &op
		if op.Correlativo > s.seq {
			s.seq = op.Correlativo
		}
	}
	return s
}

func (s *stubOps) filtrar(f func(*model.Operacion) bool) []model.Operacion {
	out := make([]model.Operacion, 0)
	for _, op := range s.ops {
		if f(op) {
			out = append(out, *op)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Correlativo > out[j].Correlativo })
	return out
}

func activa(op *model.Operacion) bool { return op.DeletedAt == nil }

func (s *stubOps) ListarActivas(_ context.Context) ([]model.Operacion, error) {
	return s.filtrar(activa), nil
}

func (s *stubOps) ListarPapelera(_ context.Context) ([]model.Operacion, error) {
	return s.filtrar(func(op *model.Operacion) bool { return op.DeletedAt != nil }), nil
}

func (s *stubOps) Buscar(_ context.Context, f repository.FiltroOperaciones) ([]model.Operacion, error) {
	q := strings.ToLower(f.Q)
	return s.filtrar(func(op *model.Operacion) bool {
		if !activa(op) {
			return false
		}
		if f.SinFactura && op.NumeroFacturaASLI != nil && *op.NumeroFacturaASLI != "" {
			return false
		}
		return q == "" || strings.Contains(strings.ToLower(texto(op.Cliente)), q) ||
			strings.Contains(strings.ToLower(texto(op.Booking)), q)
	}), nil
}

func (s *stubOps) FindByID(_ context.Context, id uuid.UUID) (*model.Operacion, error) {
	op, ok := s.ops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *op
	return &c, nil
}

func (s *stubOps) Create(_ context.Context, op *model.Operacion) error {
	if s.errCrear != nil {
		return s.errCrear
	}
	s.seq++
	op.ID = uuid.New()
	op.Correlativo = s.seq
	op.CreatedAt = time.Now()
	c := *op
	s.ops[op.ID] = &c
	return nil
}

func (s *stubOps) ActualizarCampos(_ context.Context, id uuid.UUID, campos map[string]any) error {
	op, ok := s.ops[id]
	if !ok || !activa(op) {
		return gorm.ErrRecordNotFound
	}
	s.updates = append(s.updates, campos)
	return nil
}

func (s *stubOps) todos(ids []uuid.UUID, f func(*model.Operacion) bool) bool {
	for _, id := range ids {
		op, ok := s.ops[id]
		if !ok || !f(op) {
			return false
		}
	}
	return true
}

func (s *stubOps) EnviarAPapelera(_ context.Context, ids []uuid.UUID, at time.Time) error {
	if !s.todos(ids, activa) {
		return repository.ErrConteoInconsistente
	}
	for _, id := range ids {
		s.ops[id].DeletedAt = &at
	}
	return nil
}

func (s *stubOps) Restaurar(_ context.Context, ids []uuid.UUID) error {
	if !s.todos(ids, func(op *model.Operacion) bool { return !activa(op) }) {
		return repository.ErrConteoInconsistente
	}
	for _, id := range ids {
		s.ops[id].DeletedAt = nil
	}
	return nil
}

func (s *stubOps) Purgar(_ context.Context, ids []uuid.UUID) error {
	if !s.todos(ids, func(op *model.Operacion) bool { return !activa(op) }) {
		return repository.ErrConteoInconsistente
	}
	for _, id := range ids {
		delete(s.ops, id)
	}
	return nil
}

func (s *stubOps) VaciarPapelera(_ context.Context) (int64, error) {
	var n int64
	for id, op := range s.ops {
		if !activa(op) {
			delete(s.ops, id)
			n++
		}
	}
	return n, nil
}

func (s *stubOps) ContarPapelera(ctx context.Context) (int64, error) {
	ops, _ := s.ListarPapelera(ctx)
	return int64(len(ops)), nil
}

func (s *stubOps) ContarActivas(ctx context.Context) (int64, error) {
	ops, _ := s.ListarActivas(ctx)
	return int64(len(ops)), nil
}

func (s *stubOps) ContarPor(_ context.Context, columna string) ([]repository.Conteo, error) {
	totales := map[string]int64{}
	for _, op := range s.filtrar(activa) {
		switch columna {
		case "estado_operacion":
			totales[texto(op.EstadoOperacion)]++
		case "naviera":
			totales[texto(op.Naviera)]++
		}
	}
	out := make([]repository.Conteo, 0, len(totales))
	for v, n := range totales {
		out = append(out, repository.Conteo{Valor: v, Total: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

func (s *stubOps) ProximosZarpes(_ context.Context, desde, hasta time.Time, limite int) ([]model.Operacion, error) {
	d, h := desde.Format("2006-01-02"), hasta.Format("2006-01-02")
	out := s.filtrar(func(op *model.Operacion) bool {
		return activa(op) && op.ETD != nil && *op.ETD >= d && *op.ETD <= h
	})
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

func (s *stubOps) Recientes(_ context.Context, limite int) ([]model.Operacion, error) {
	out := s.filtrar(activa)
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

// ── In-memory DocumentoRepository ────────────────────────────────────────────

type stubDocs struct {
	docs     map[uuid.UUID]*model.Documento
	ops      *stubOps
	errCrear error
}

var _ repository.DocumentoRepository = (*stubDocs)(nil)

func newStubDocs(ops *stubOps, docs ...model.Documento) *stubDocs {
	s := &stubDocs{docs: make(map[uuid.UUID]*model.Documento), ops: ops}
	for i := range docs {
		d := docs[i]
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		s.docs[d.ID] = &d
	}
	return s
}

func (s *stubDocs) lista(f func(*model.Documento) bool) []model.Documento {
	out := make([]model.Documento, 0)
	for _, d := range s.docs {
		if f(d) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tipo < out[j].Tipo })
	return out
}

func (s *stubDocs) ListByOperacion(_ context.Context, id uuid.UUID) ([]model.Documento, error) {
	return s.lista(func(d *model.Documento) bool { return d.OperacionID == id }), nil
}

func (s *stubDocs) ListByOperaciones(_ context.Context, ids []uuid.UUID) ([]model.Documento, error) {
	set := map[uuid.UUID]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return s.lista(func(d *model.Documento) bool { return set[d.OperacionID] }), nil
}

func (s *stubDocs) ListEnPapelera(_ context.Context) ([]model.Documento, error) {
	return s.lista(func(d *model.Documento) bool {
		op, ok := s.ops.ops[d.OperacionID]
		return ok && op.DeletedAt != nil
	}), nil
}

func (s *stubDocs) FindByID(_ context.Context, id uuid.UUID) (*model.Documento, error) {
	d, ok := s.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *d
	return &c, nil
}

func (s *stubDocs) FindSlot(_ context.Context, opID uuid.UUID, tipo model.TipoDocumento) (*model.Documento, error) {
	for _, d := range s.docs {
		if d.OperacionID == opID && d.Tipo == tipo {
			c := *d
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubDocs) Create(_ context.Context, d *model.Documento) error {
	if s.errCrear != nil {
		return s.errCrear
	}
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	c := *d
	s.docs[d.ID] = &c
	return nil
}

func (s *stubDocs) Reemplazar(ctx context.Context, d *model.Documento) error {
	if s.errCrear != nil {
		return s.errCrear
	}
	for id, x := range s.docs {
		if x.OperacionID == d.OperacionID && x.Tipo == d.Tipo {
			delete(s.docs, id)
		}
	}
	return s.Create(ctx, d)
}

func (s *stubDocs) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.docs, id)
	return nil
}

// ── Blob storage and cache ───────────────────────────────────────────────────

type stubBlobs struct {
	files     map[string][]byte
	removidos []string
}

func newStubBlobs() *stubBlobs { return &stubBlobs{files: map[string][]byte{}} }

func (b *stubBlobs) Upload(_ context.Context, ruta string, data []byte) error {
	b.files[ruta] = data
	return nil
}

func (b *stubBlobs) PublicURL(ruta string) string { return "http://archivos/" + ruta }

func (b *stubBlobs) Remove(_ context.Context, rutas ...string) error {
	for _, r := range rutas {
		delete(b.files, r)
		b.removidos = append(b.removidos, r)
	}
	return nil
}

type stubCache struct{ invalidaciones int }

func (c *stubCache) Invalidar(context.Context) { c.invalidaciones++ }

// ── In-memory CatalogoRepository ─────────────────────────────────────────────

type stubCatalogos struct {
	cats     catalogo.Conjunto
	vinculos map[string][]catalogo.Opcion
	creadas  int
}

var _ repository.CatalogoRepository = (*stubCatalogos)(nil)

func newStubCatalogos(cats catalogo.Conjunto) *stubCatalogos {
	return &stubCatalogos{cats: cats, vinculos: map[string][]catalogo.Opcion{}}
}

func (s *stubCatalogos) Opciones(_ context.Context, k catalogo.Kind) ([]catalogo.Opcion, error) {
	return s.cats[k], nil
}

func (s *stubCatalogos) NavesPorNaviera(_ context.Context, id uuid.UUID) ([]catalogo.Opcion, error) {
	return s.vinculos[id.String()], nil
}

func (s *stubCatalogos) NavesPorNombreNaviera(_ context.Context, naviera string) ([]catalogo.Opcion, error) {
	return s.vinculos[naviera], nil
}

func (s *stubCatalogos) PaisDestino(_ context.Context, nombre string) (string, error) {
	if o, ok := catalogo.BuscarNombre(s.cats[catalogo.Destinos], nombre); ok {
		return o.Pais, nil
	}
	return "", nil
}

func (s *stubCatalogos) CrearEmpresa(_ context.Context, nombre string) (catalogo.Opcion, error) {
	s.creadas++
	o := catalogo.Opcion{ID: uuid.NewString(), Nombre: nombre}
	s.cats[catalogo.Empresas] = catalogo.Insertar(s.cats[catalogo.Empresas], o)
	return o, nil
}

// ── In-memory ClienteRepository ──────────────────────────────────────────────

type stubClientes struct {
	clientes map[uuid.UUID]*model.Cliente
	updates  int
}

var _ repository.ClienteRepository = (*stubClientes)(nil)

func newStubClientes(cs ...model.Cliente) *stubClientes {
	s := &stubClientes{clientes: map[uuid.UUID]*model.Cliente{}}
	for i := range cs {
		c := cs[i]
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		s.clientes[c.ID] = &c
	}
	return s
}

func (s *stubClientes) List(_ context.Context) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(s.clientes))
	for _, c := range s.clientes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return texto(out[i].NombreCliente) < texto(out[j].NombreCliente) })
	return out, nil
}

func (s *stubClientes) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := s.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubClientes) Create(_ context.Context, c *model.Cliente) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	cp := *c
	s.clientes[c.ID] = &cp
	return nil
}

func (s *stubClientes) ActualizarCampo(_ context.Context, id uuid.UUID, columna string, valor any) error {
	c, ok := s.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.updates++
	var v *string
	if str, ok := valor.(string); ok {
		v = &str
	}
	if p := columnaCliente(c, columna); p != nil {
		*p = v
	}
	return nil
}

func (s *stubClientes) Delete(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := s.clientes[id]; !ok {
			return repository.ErrConteoInconsistente
		}
	}
	for _, id := range ids {
		delete(s.clientes, id)
	}
	return nil
}

// ── In-memory UsuarioRepository ──────────────────────────────────────────────

type stubUsuarios struct {
	users map[string]*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarios)(nil)

func newStubUsuarios() *stubUsuarios { return &stubUsuarios{users: map[string]*model.Usuario{}} }

func (r *stubUsuarios) Create(_ context.Context, u *model.Usuario) error {
	u.ID = uuid.New()
	r.users[strings.ToLower(u.Email)] = u
	return nil
}

func (r *stubUsuarios) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	u, ok := r.users[strings.ToLower(email)]
	if !ok || !u.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarios) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarios) ExisteEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[strings.ToLower(email)]
	return ok, nil
}

func (r *stubUsuarios) Update(_ context.Context, u *model.Usuario) error {
	r.users[strings.ToLower(u.Email)] = u
	return nil
}

func ptr[T any](v T) *T { return &v }
