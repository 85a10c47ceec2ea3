// Package projection turns stored operation records into display rows.
// Everything here is pure: the same (record, settings) always yields the
// same row.
package projection

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"embarques/internal/i18n"
	"embarques/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Defaults applied when the stored value is null.
const (
	MonedaPorDefecto = "CLP"
	OrigenPorDefecto = "manual"
)

// Fila is the display shape of an operation. Text is never null, numbers
// stay null when unknown, dates are preformatted.
type Fila struct {
	ID          uuid.UUID       `json:"id"`
	Correlativo int64           `json:"correlativo"`
	RefASLI     string          `json:"ref_asli"`
	Ciclo       model.Lifecycle `json:"ciclo"`

	Ingreso         string `json:"ingreso"`
	Semana          *int   `json:"semana"`
	Ejecutivo       string `json:"ejecutivo"`
	EstadoOperacion string `json:"estado_operacion"`
	TipoOperacion   string `json:"tipo_operacion"`
	Cliente         string `json:"cliente"`
	Consignatario   string `json:"consignatario"`

	Incoterm  string `json:"incoterm"`
	FormaPago string `json:"forma_pago"`

	Especie     string              `json:"especie"`
	Pais        string              `json:"pais"`
	Temperatura string              `json:"temperatura"`
	Ventilacion string              `json:"ventilacion"`
	Pallets     *int                `json:"pallets"`
	PesoBruto   decimal.NullDecimal `json:"peso_bruto"`
	PesoNeto    decimal.NullDecimal `json:"peso_neto"`
	TipoUnidad  string              `json:"tipo_unidad"`

	Naviera string `json:"naviera"`
	Nave    string `json:"nave"`
	POL     string `json:"pol"`
	ETD     string `json:"etd"`
	POD     string `json:"pod"`
	ETA     string `json:"eta"`
	TT      *int   `json:"tt"`
	Booking string `json:"booking"`

	AGA                string `json:"aga"`
	DUS                string `json:"dus"`
	SPS                string `json:"sps"`
	NumeroGuiaDespacho string `json:"numero_guia_despacho"`

	PlantaPresentacion string `json:"planta_presentacion"`
	Citacion           string `json:"citacion"`
	LlegadaPlanta      string `json:"llegada_planta"`
	SalidaPlanta       string `json:"salida_planta"`
	InicioStacking     string `json:"inicio_stacking"`
	FinStacking        string `json:"fin_stacking"`
	IngresoStacking    string `json:"ingreso_stacking"`
	CorteDocumental    string `json:"corte_documental"`
	InfLate            string `json:"inf_late"`
	LateInicio         string `json:"late_inicio"`
	LateFin            string `json:"late_fin"`
	XLateInicio        string `json:"xlate_inicio"`
	XLateFin           string `json:"xlate_fin"`

	Deposito           string `json:"deposito"`
	AgendamientoRetiro string `json:"agendamiento_retiro"`
	DevolucionUnidad   string `json:"devolucion_unidad"`

	Transporte      string              `json:"transporte"`
	Chofer          string              `json:"chofer"`
	RutChofer       string              `json:"rut_chofer"`
	TelefonoChofer  string              `json:"telefono_chofer"`
	PatenteCamion   string              `json:"patente_camion"`
	PatenteRemolque string              `json:"patente_remolque"`
	Contenedor      string              `json:"contenedor"`
	Sello           string              `json:"sello"`
	Tara            decimal.NullDecimal `json:"tara"`

	Almacenamiento    decimal.NullDecimal `json:"almacenamiento"`
	Tramo             string              `json:"tramo"`
	ValorTramo        decimal.NullDecimal `json:"valor_tramo"`
	Porteo            bool                `json:"porteo"`
	ValorPorteo       decimal.NullDecimal `json:"valor_porteo"`
	FalsoFlete        bool                `json:"falso_flete"`
	ValorFalsoFlete   decimal.NullDecimal `json:"valor_falso_flete"`
	FacturaTransporte string              `json:"factura_transporte"`

	MontoFacturado    decimal.NullDecimal `json:"monto_facturado"`
	NumeroFacturaASLI string              `json:"numero_factura_asli"`
	ConceptoFacturado string              `json:"concepto_facturado"`
	Moneda            string              `json:"moneda"`
	TipoCambio        decimal.NullDecimal `json:"tipo_cambio"`
	MargenEstimado    decimal.NullDecimal `json:"margen_estimado"`
	MargenReal        decimal.NullDecimal `json:"margen_real"`

	FechaConfirmacionBooking string `json:"fecha_confirmacion_booking"`
	FechaEnvioDocumentacion  string `json:"fecha_envio_documentacion"`
	FechaEntregaBL           string `json:"fecha_entrega_bl"`
	FechaEntregaFactura      string `json:"fecha_entrega_factura"`
	FechaPagoCliente         string `json:"fecha_pago_cliente"`
	FechaPagoTransporte      string `json:"fecha_pago_transporte"`
	FechaCierre              string `json:"fecha_cierre"`

	Prioridad        string `json:"prioridad"`
	OperacionCritica bool   `json:"operacion_critica"`
	OrigenRegistro   string `json:"origen_registro"`
	Observaciones    string `json:"observaciones"`

	CreatedAt string `json:"created_at"`
	DeletedAt string `json:"deleted_at,omitempty"`
}

// RefASLI returns the stored reference, or "A" + correlativo padded to five
// digits when the stored one is empty.
func RefASLI(ref *string, correlativo int64) string {
	if ref != nil && *ref != "" {
		return *ref
	}
	return fmt.Sprintf("A%05d", correlativo)
}

// NuevaFila projects op for display under s.
func NuevaFila(op model.Operacion, s i18n.Settings) Fila {
	z := s.Zone
	fecha := func(p *string) string { return FormatFecha(txt(p), z) }
	fechaHora := func(p *string) string { return FormatFechaHora(txt(p), z) }

	f := Fila{
		ID:          op.ID,
		Correlativo: op.Correlativo,
		RefASLI:     RefASLI(op.RefASLI, op.Correlativo),
		Ciclo:       op.Ciclo(),

		Ingreso:         fechaHora(op.Ingreso),
		Semana:          op.Semana,
		Ejecutivo:       txt(op.Ejecutivo),
		EstadoOperacion: txt(op.EstadoOperacion),
		TipoOperacion:   txt(op.TipoOperacion),
		Cliente:         txt(op.Cliente),
		Consignatario:   txt(op.Consignatario),

		Incoterm:  txt(op.Incoterm),
		FormaPago: txt(op.FormaPago),

		Especie:     txt(op.Especie),
		Pais:        txt(op.Pais),
		Temperatura: txt(op.Temperatura),
		Ventilacion: txt(op.Ventilacion),
		Pallets:     op.Pallets,
		PesoBruto:   op.PesoBruto,
		PesoNeto:    op.PesoNeto,
		TipoUnidad:  txt(op.TipoUnidad),

		Naviera: txt(op.Naviera),
		Nave:    txt(op.Nave),
		POL:     txt(op.POL),
		ETD:     fecha(op.ETD),
		POD:     txt(op.POD),
		ETA:     fecha(op.ETA),
		TT:      op.TT,
		Booking: txt(op.Booking),

		AGA:                txt(op.AGA),
		DUS:                txt(op.DUS),
		SPS:                txt(op.SPS),
		NumeroGuiaDespacho: txt(op.NumeroGuiaDespacho),

		PlantaPresentacion: txt(op.PlantaPresentacion),
		Citacion:           fechaHora(op.Citacion),
		LlegadaPlanta:      fechaHora(op.LlegadaPlanta),
		SalidaPlanta:       fechaHora(op.SalidaPlanta),
		InicioStacking:     fechaHora(op.InicioStacking),
		FinStacking:        fechaHora(op.FinStacking),
		IngresoStacking:    fechaHora(op.IngresoStacking),
		CorteDocumental:    fechaHora(op.CorteDocumental),
		InfLate:            fechaHora(op.InfLate),
		LateInicio:         fechaHora(op.LateInicio),
		LateFin:            fechaHora(op.LateFin),
		XLateInicio:        fechaHora(op.XLateInicio),
		XLateFin:           fechaHora(op.XLateFin),

		Deposito:           txt(op.Deposito),
		AgendamientoRetiro: fechaHora(op.AgendamientoRetiro),
		DevolucionUnidad:   fechaHora(op.DevolucionUnidad),

		Transporte:      txt(op.Transporte),
		Chofer:          txt(op.Chofer),
		RutChofer:       txt(op.RutChofer),
		TelefonoChofer:  txt(op.TelefonoChofer),
		PatenteCamion:   txt(op.PatenteCamion),
		PatenteRemolque: txt(op.PatenteRemolque),
		Contenedor:      txt(op.Contenedor),
		Sello:           txt(op.Sello),
		Tara:            op.Tara,

		Almacenamiento:    op.Almacenamiento,
		Tramo:             txt(op.Tramo),
		ValorTramo:        op.ValorTramo,
		Porteo:            flag(op.Porteo),
		ValorPorteo:       op.ValorPorteo,
		FalsoFlete:        flag(op.FalsoFlete),
		ValorFalsoFlete:   op.ValorFalsoFlete,
		FacturaTransporte: txt(op.FacturaTransporte),

		MontoFacturado:    op.MontoFacturado,
		NumeroFacturaASLI: txt(op.NumeroFacturaASLI),
		ConceptoFacturado: txt(op.ConceptoFacturado),
		Moneda:            txtOr(op.Moneda, MonedaPorDefecto),
		TipoCambio:        op.TipoCambio,
		MargenEstimado:    op.MargenEstimado,
		MargenReal:        op.MargenReal,

		FechaConfirmacionBooking: fecha(op.FechaConfirmacionBooking),
		FechaEnvioDocumentacion:  fecha(op.FechaEnvioDocumentacion),
		FechaEntregaBL:           fecha(op.FechaEntregaBL),
		FechaEntregaFactura:      fecha(op.FechaEntregaFactura),
		FechaPagoCliente:         fecha(op.FechaPagoCliente),
		FechaPagoTransporte:      fecha(op.FechaPagoTransporte),
		FechaCierre:              fecha(op.FechaCierre),

		Prioridad:        txt(op.Prioridad),
		OperacionCritica: flag(op.OperacionCritica),
		OrigenRegistro:   txtOr(op.OrigenRegistro, OrigenPorDefecto),
		Observaciones:    txt(op.Observaciones),
	}
	if !op.CreatedAt.IsZero() {
		f.CreatedAt = op.CreatedAt.In(zoneOr(z)).Format(LayoutFechaHora)
	}
	if op.DeletedAt != nil {
		f.DeletedAt = op.DeletedAt.In(zoneOr(z)).Format(LayoutFechaHora)
	}
	return f
}

// NuevasFilas projects a slice preserving order.
func NuevasFilas(ops []model.Operacion, s i18n.Settings) []Fila {
	out := make([]Fila, 0, len(ops))
	for _, op := range ops {
		out = append(out, NuevaFila(op, s))
	}
	return out
}

func txt(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func txtOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func flag(p *bool) bool { return p != nil && *p }

func zoneOr(z *time.Location) *time.Location {
	if z == nil {
		return time.UTC
	}
	return z
}

// Encabezados lists the json names of Fila in declaration order; used as
// column headers for tabular exports.
func Encabezados() []string {
	t := reflect.TypeOf(Fila{})
	out := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		out = append(out, jsonName(t.Field(i)))
	}
	return out
}

// Valores returns the row cells aligned with Encabezados. Unknown numbers
// become nil so spreadsheets leave the cell blank.
func (f Fila) Valores() []any {
	v := reflect.ValueOf(f)
	out := make([]any, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		switch x := v.Field(i).Interface().(type) {
		case decimal.NullDecimal:
			if x.Valid {
				n, _ := x.Decimal.Float64()
				out = append(out, n)
			} else {
				out = append(out, nil)
			}
		case *int:
			if x != nil {
				out = append(out, *x)
			} else {
				out = append(out, nil)
			}
		case uuid.UUID:
			out = append(out, x.String())
		case model.Lifecycle:
			out = append(out, string(x))
		default:
			out = append(out, x)
		}
	}
	return out
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}
