package service

import (
	"context"
	"strings"

	"embarques/internal/catalogo"
	"embarques/internal/dto"
	"embarques/internal/grid"
	"embarques/internal/i18n"
	"embarques/internal/listado"
	"embarques/internal/projection"
	"embarques/internal/repository"
	"embarques/internal/wizard"

	"github.com/google/uuid"
)

// RedirectRegistros is where the user lands after creating a booking.
const RedirectRegistros = "/registros"

// ReservaService backs the booking creation form and the my-bookings listing.
type ReservaService interface {
	Formulario(ctx context.Context) (dto.FormularioResponse, error)
	Naves(ctx context.Context, navieraID *uuid.UUID) ([]catalogo.Opcion, error)
	ResolverCliente(ctx context.Context, s i18n.Settings, input, seleccionado string) (dto.ResolucionClienteResponse, error)
	CrearCliente(ctx context.Context, nombre string) (catalogo.Opcion, error)
	Estado(f wizard.Formulario) dto.EstadoFormularioResponse
	Preview(ctx context.Context, s i18n.Settings, f wizard.Formulario) (wizard.Preview, error)
	Confirmar(ctx context.Context, s i18n.Settings, req dto.ConfirmarReservaRequest) (dto.ReservaCreadaResponse, error)
	Listar(ctx context.Context, s i18n.Settings, q dto.ReservasQuery) (dto.ReservasResponse, error)
}

type reservaService struct {
	cat  repository.CatalogoRepository
	ops  repository.OperacionRepository
	grid *grid.Grid
}

func NewReservaService(cat repository.CatalogoRepository, ops repository.OperacionRepository, g *grid.Grid) ReservaService {
	return &reservaService{cat: cat, ops: ops, grid: g}
}

// conjunto loads every catalog the form offers.
func (s *reservaService) conjunto(ctx context.Context) (catalogo.Conjunto, error) {
	out := make(catalogo.Conjunto, len(catalogo.Kinds))
	for _, k := range catalogo.Kinds {
		ops, err := s.cat.Opciones(ctx, k)
		if err != nil {
			return nil, err
		}
		out[k] = ops
	}
	return out, nil
}

func (s *reservaService) Formulario(ctx context.Context) (dto.FormularioResponse, error) {
	cats, err := s.conjunto(ctx)
	if err != nil {
		return dto.FormularioResponse{}, err
	}
	f := wizard.Inicial()
	return dto.FormularioResponse{Formulario: f, Catalogos: cats, Secciones: f.Estado()}, nil
}

// Naves is the carrier to vessel cascade. Without a carrier, or when the
// carrier has no linked vessels, every vessel is offered.
func (s *reservaService) Naves(ctx context.Context, navieraID *uuid.UUID) ([]catalogo.Opcion, error) {
	todas, err := s.cat.Opciones(ctx, catalogo.Naves)
	if err != nil {
		return nil, err
	}
	if navieraID == nil {
		return todas, nil
	}
	vinculadas, err := s.cat.NavesPorNaviera(ctx, *navieraID)
	if err != nil {
		return nil, err
	}
	return catalogo.FiltrarNaves(vinculadas, todas), nil
}

func (s *reservaService) ResolverCliente(ctx context.Context, st i18n.Settings, input, seleccionado string) (dto.ResolucionClienteResponse, error) {
	clientes, err := s.cat.Opciones(ctx, catalogo.Empresas)
	if err != nil {
		return dto.ResolucionClienteResponse{}, err
	}
	r := wizard.ResolverCliente(input, seleccionado, clientes)
	out := dto.ResolucionClienteResponse{ResolucionCliente: r}
	if r.Crear {
		out.Pregunta = st.T(i18n.CrearCliente, r.Nombre)
	}
	return out, nil
}

// CrearCliente adds a company to the client catalog. An existing entry with
// the same name (ignoring case) is returned instead of a duplicate.
func (s *reservaService) CrearCliente(ctx context.Context, nombre string) (catalogo.Opcion, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return catalogo.Opcion{}, ErrNombreRequerido
	}
	clientes, err := s.cat.Opciones(ctx, catalogo.Empresas)
	if err != nil {
		return catalogo.Opcion{}, err
	}
	if o, ok := catalogo.BuscarNombre(clientes, nombre); ok {
		return o, nil
	}
	return s.cat.CrearEmpresa(ctx, nombre)
}

func (s *reservaService) Estado(f wizard.Formulario) dto.EstadoFormularioResponse {
	return dto.EstadoFormularioResponse{Secciones: f.Estado(), TT: wizard.TransitTime(f.ETD, f.ETA)}
}

func (s *reservaService) Preview(ctx context.Context, st i18n.Settings, f wizard.Formulario) (wizard.Preview, error) {
	cats, err := s.conjunto(ctx)
	if err != nil {
		return wizard.Preview{}, err
	}
	// A form that cannot be inserted gets no token.
	if _, err := wizard.Payload(f, cats, st.Zone); err != nil {
		return wizard.Preview{}, err
	}
	return wizard.NuevoPreview(f, cats, st), nil
}

// Confirmar inserts the booking. The token must match the previewed form, so
// a form changed after its preview has to be previewed again.
func (s *reservaService) Confirmar(ctx context.Context, st i18n.Settings, req dto.ConfirmarReservaRequest) (dto.ReservaCreadaResponse, error) {
	if req.Token == "" || req.Token != wizard.Token(req.Formulario) {
		return dto.ReservaCreadaResponse{}, ErrPreviewRequerido
	}
	cats, err := s.conjunto(ctx)
	if err != nil {
		return dto.ReservaCreadaResponse{}, err
	}
	op, err := wizard.Payload(req.Formulario, cats, st.Zone)
	if err != nil {
		return dto.ReservaCreadaResponse{}, err
	}
	if err := s.ops.Create(ctx, &op); err != nil {
		return dto.ReservaCreadaResponse{}, err
	}
	s.grid.Invalidar(ctx)

	return dto.ReservaCreadaResponse{
		Success:  true,
		Mensaje:  st.T(i18n.ReservaCreada),
		Redirect: RedirectRegistros,
		Fila:     projection.NuevaFila(op, st),
	}, nil
}

// Listar runs the my-bookings search, filters and sort over the active set.
func (s *reservaService) Listar(ctx context.Context, st i18n.Settings, q dto.ReservasQuery) (dto.ReservasResponse, error) {
	res, err := s.grid.Filas(ctx, false)
	if err != nil {
		return dto.ReservasResponse{}, err
	}
	f := listado.Filtros{
		Busqueda: q.Q,
		Estado:   q.Estado,
		Cliente:  q.Cliente,
		Naviera:  q.Naviera,
		Especie:  q.Especie,
	}
	r, err := listado.Aplicar(res.Operaciones, f, listado.Orden{Campo: q.Orden, Desc: q.Desc})
	if err != nil {
		return dto.ReservasResponse{}, err
	}
	out := dto.ReservasResponse{
		Filas:          projection.NuevasFilas(r.Operaciones, st),
		Total:          r.Total,
		FiltrosActivos: f.Activos(),
		Facetas:        r.Facetas,
	}
	if res.Aviso != nil {
		out.Aviso = st.T(i18n.ErrCargaRegistros)
	}
	return out, nil
}
