// Package wizard holds the booking creation form: defaults, per-section
// completeness, transit time, client suggest-or-create, and the preview that
// must be confirmed before the record is inserted.
package wizard

import (
	"strings"
	"time"

	"embarques/internal/catalogo"
	"embarques/internal/projection"
)

// Formulario is the raw form state. Catalog-backed fields hold option ids;
// enumeration fields hold the enumeration value itself. Dates are ISO.
type Formulario struct {
	TipoOperacion   string `json:"tipo_operacion"`
	EstadoOperacion string `json:"estado_operacion"`
	Ejecutivo       string `json:"ejecutivo"`
	Cliente         string `json:"cliente"`
	Consignatario   string `json:"consignatario"`

	Incoterm  string `json:"incoterm"`
	FormaPago string `json:"forma_pago"`

	Especie     string `json:"especie"`
	Temperatura string `json:"temperatura"`
	Ventilacion string `json:"ventilacion"`
	Pallets     string `json:"pallets" validate:"omitempty,numeric"`
	PesoBruto   string `json:"peso_bruto" validate:"omitempty,number"`
	PesoNeto    string `json:"peso_neto" validate:"omitempty,number"`
	TipoUnidad  string `json:"tipo_unidad"`

	Naviera string `json:"naviera"`
	Nave    string `json:"nave"`
	POL     string `json:"pol"`
	POD     string `json:"pod"`
	ETD     string `json:"etd"`
	ETA     string `json:"eta"`
	Booking string `json:"booking" validate:"max=60"`

	PlantaPresentacion string `json:"planta_presentacion"`
	Citacion           string `json:"citacion"`
	InicioStacking     string `json:"inicio_stacking"`
	FinStacking        string `json:"fin_stacking"`
	CorteDocumental    string `json:"corte_documental"`

	Deposito string `json:"deposito"`

	Prioridad        string `json:"prioridad"`
	OperacionCritica bool   `json:"operacion_critica"`
	Observaciones    string `json:"observaciones"`
}

// Inicial returns a blank form with the usual export defaults.
func Inicial() Formulario {
	return Formulario{
		TipoOperacion:   "EXPORTACIÓN",
		EstadoOperacion: "PENDIENTE",
		Incoterm:        "FOB",
		FormaPago:       "PREPAID",
		Ventilacion:     "CERRADO",
		TipoUnidad:      "40RF",
		Prioridad:       "MEDIA",
	}
}

// Seccion is one collapsible group of the form.
type Seccion string

const (
	General       Seccion = "general"
	Comercial     Seccion = "comercial"
	Carga         Seccion = "carga"
	Naviera       Seccion = "naviera"
	Planta        Seccion = "planta"
	Deposito      Seccion = "deposito"
	Observaciones Seccion = "observaciones"
)

var Secciones = []Seccion{General, Comercial, Carga, Naviera, Planta, Deposito, Observaciones}

// Completa reports whether every required field of sec is filled. It is an
// indicator only and never blocks submission.
func (f Formulario) Completa(sec Seccion) bool {
	switch sec {
	case General:
		return lleno(f.TipoOperacion, f.Ejecutivo, f.Cliente)
	case Comercial:
		return lleno(f.Incoterm, f.FormaPago)
	case Carga:
		return lleno(f.Especie, f.TipoUnidad)
	case Naviera:
		return lleno(f.Naviera, f.Nave, f.POL, f.POD, f.ETD, f.Booking)
	case Planta:
		return lleno(f.PlantaPresentacion)
	case Deposito:
		return lleno(f.Deposito)
	case Observaciones:
		return true
	}
	return false
}

// Estado maps every section to its completeness.
func (f Formulario) Estado() map[Seccion]bool {
	out := make(map[Seccion]bool, len(Secciones))
	for _, s := range Secciones {
		out[s] = f.Completa(s)
	}
	return out
}

func lleno(vals ...string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// TransitTime is the calendar-day difference eta - etd. It is nil when a
// date is missing or unparseable, or when eta is before etd.
func TransitTime(etd, eta string) *int {
	if strings.TrimSpace(etd) == "" || strings.TrimSpace(eta) == "" {
		return nil
	}
	d, ok1 := projection.Parse(etd, time.UTC)
	a, ok2 := projection.Parse(eta, time.UTC)
	if !ok1 || !ok2 {
		return nil
	}
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	dias := int(a.Sub(d).Hours() / 24)
	if dias < 0 {
		return nil
	}
	return &dias
}

// ResolucionCliente is the state of the free-text client field.
type ResolucionCliente struct {
	Sugerencias []catalogo.Opcion `json:"sugerencias"`
	Exacta      *catalogo.Opcion  `json:"exacta,omitempty"`
	// Crear asks the user whether Nombre should be added to the catalog.
	Crear  bool   `json:"crear"`
	Nombre string `json:"nombre"`
}

// ResolverCliente evaluates the client field on blur. seleccionado is the id
// already chosen from the suggestions, if any.
func ResolverCliente(input, seleccionado string, clientes []catalogo.Opcion) ResolucionCliente {
	nombre := strings.TrimSpace(input)
	r := ResolucionCliente{
		Sugerencias: catalogo.Filtrar(clientes, nombre),
		Nombre:      nombre,
	}
	if o, ok := catalogo.BuscarNombre(clientes, nombre); ok {
		r.Exacta = &o
	}
	r.Crear = nombre != "" && r.Exacta == nil && seleccionado == ""
	return r
}

// AgregarOpcion adds a freshly created entry to a loaded catalog in name
// order, so the list does not need to be fetched again.
func AgregarOpcion(ops []catalogo.Opcion, nueva catalogo.Opcion) []catalogo.Opcion {
	return catalogo.Insertar(ops, nueva)
}
