package wizard

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"embarques/internal/catalogo"
	"embarques/internal/i18n"
	"embarques/internal/model"
	"embarques/internal/projection"

	"github.com/shopspring/decimal"
)

// OrigenReservaWeb marks records created through this form.
const OrigenReservaWeb = "reserva_web"

var ErrValorInvalido = errors.New("valor inválido")

// Item is one read-only line of the preview.
type Item struct {
	Campo string `json:"campo"`
	Valor string `json:"valor"`
}

type Grupo struct {
	Seccion Seccion `json:"seccion"`
	Titulo  string  `json:"titulo"`
	Items   []Item  `json:"items"`
}

// Preview is what the user confirms. Token identifies the exact form that
// was previewed; confirming a different form requires a new preview.
type Preview struct {
	Grupos []Grupo `json:"grupos"`
	TT     *int    `json:"tt"`
	Token  string  `json:"token"`
}

var titulos = map[Seccion]i18n.Key{
	General:       i18n.SeccionGeneral,
	Comercial:     i18n.SeccionComercial,
	Carga:         i18n.SeccionCarga,
	Naviera:       i18n.SeccionNaviera,
	Planta:        i18n.SeccionPlanta,
	Deposito:      i18n.SeccionDeposito,
	Observaciones: i18n.SeccionObservaciones,
}

// NuevoPreview groups every field by section with catalog ids replaced by
// display names. Empty values show as "-".
func NuevoPreview(f Formulario, cats catalogo.Conjunto, s i18n.Settings) Preview {
	nombre := func(k catalogo.Kind, id string) string { return guion(nombreDe(cats, k, id)) }
	fecha := func(v string) string { return guion(projection.FormatFecha(v, s.Zone)) }
	fechaHora := func(v string) string { return guion(projection.FormatFechaHora(v, s.Zone)) }
	siNo := s.T(i18n.ValorNo)
	if f.OperacionCritica {
		siNo = s.T(i18n.ValorSi)
	}
	kg := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "-"
		}
		return v + " kg"
	}
	tt := TransitTime(f.ETD, f.ETA)
	ttTexto := "-"
	if tt != nil {
		ttTexto = s.T(i18n.DiasTransito, *tt)
	}

	grupos := []Grupo{
		{Seccion: General, Items: []Item{
			{"tipo_operacion", guion(f.TipoOperacion)},
			{"estado_operacion", guion(f.EstadoOperacion)},
			{"ejecutivo", nombre(catalogo.Ejecutivos, f.Ejecutivo)},
			{"cliente", nombre(catalogo.Empresas, f.Cliente)},
			{"prioridad", guion(f.Prioridad)},
			{"operacion_critica", siNo},
		}},
		{Seccion: Comercial, Items: []Item{
			{"incoterm", guion(f.Incoterm)},
			{"forma_pago", guion(f.FormaPago)},
			{"consignatario", nombre(catalogo.Consignatarios, f.Consignatario)},
		}},
		{Seccion: Carga, Items: []Item{
			{"especie", nombre(catalogo.Especies, f.Especie)},
			{"temperatura", guion(f.Temperatura)},
			{"ventilacion", guion(f.Ventilacion)},
			{"pallets", guion(f.Pallets)},
			{"peso_bruto", kg(f.PesoBruto)},
			{"peso_neto", kg(f.PesoNeto)},
			{"tipo_unidad", guion(f.TipoUnidad)},
		}},
		{Seccion: Naviera, Items: []Item{
			{"naviera", nombre(catalogo.Navieras, f.Naviera)},
			{"nave", nombre(catalogo.Naves, f.Nave)},
			{"pol", nombre(catalogo.PuertosOrigen, f.POL)},
			{"pod", nombre(catalogo.Destinos, f.POD)},
			{"etd", fecha(f.ETD)},
			{"eta", fecha(f.ETA)},
			{"tt", ttTexto},
			{"booking", guion(f.Booking)},
		}},
		{Seccion: Planta, Items: []Item{
			{"planta_presentacion", nombre(catalogo.Plantas, f.PlantaPresentacion)},
			{"citacion", fechaHora(f.Citacion)},
			{"inicio_stacking", fechaHora(f.InicioStacking)},
			{"fin_stacking", fechaHora(f.FinStacking)},
			{"corte_documental", fechaHora(f.CorteDocumental)},
		}},
		{Seccion: Deposito, Items: []Item{
			{"deposito", nombre(catalogo.Depositos, f.Deposito)},
		}},
	}
	if strings.TrimSpace(f.Observaciones) != "" {
		grupos = append(grupos, Grupo{Seccion: Observaciones, Items: []Item{
			{"observaciones", f.Observaciones},
		}})
	}
	for i := range grupos {
		grupos[i].Titulo = s.T(titulos[grupos[i].Seccion])
	}

	return Preview{Grupos: grupos, TT: tt, Token: Token(f)}
}

// Token is the hex SHA-256 of the form's canonical JSON encoding.
func Token(f Formulario) string {
	b, _ := json.Marshal(f)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Payload builds the record to insert. Catalog ids become names, the
// destination's country is copied and the transit time is derived. Dates and
// plant checkpoints without an offset are read in zone; any value that does
// not parse is ErrValorInvalido.
func Payload(f Formulario, cats catalogo.Conjunto, zone *time.Location) (model.Operacion, error) {
	v := valores{zone: zone}
	pallets := v.entero(f.Pallets)
	bruto := v.numero(f.PesoBruto)
	neto := v.numero(f.PesoNeto)
	etd := v.fecha(f.ETD)
	eta := v.fecha(f.ETA)
	citacion := v.instante(f.Citacion)
	inicioStacking := v.instante(f.InicioStacking)
	finStacking := v.instante(f.FinStacking)
	corte := v.instante(f.CorteDocumental)
	if v.err != nil {
		return model.Operacion{}, v.err
	}

	estado := f.EstadoOperacion
	if strings.TrimSpace(estado) == "" {
		estado = "PENDIENTE"
	}
	nom := func(k catalogo.Kind, id string) *string { return opt(nombreDe(cats, k, id)) }
	var pais *string
	if d, ok := catalogo.Buscar(cats[catalogo.Destinos], f.POD); ok {
		pais = opt(d.Pais)
	}
	critica := f.OperacionCritica

	return model.Operacion{
		TipoOperacion:   opt(f.TipoOperacion),
		EstadoOperacion: &estado,
		Ejecutivo:       nom(catalogo.Ejecutivos, f.Ejecutivo),
		Cliente:         nom(catalogo.Empresas, f.Cliente),
		Consignatario:   nom(catalogo.Consignatarios, f.Consignatario),

		Incoterm:  opt(f.Incoterm),
		FormaPago: opt(f.FormaPago),

		Especie:     nom(catalogo.Especies, f.Especie),
		Pais:        pais,
		Temperatura: opt(f.Temperatura),
		Ventilacion: opt(f.Ventilacion),
		Pallets:     pallets,
		PesoBruto:   bruto,
		PesoNeto:    neto,
		TipoUnidad:  opt(f.TipoUnidad),

		Naviera: nom(catalogo.Navieras, f.Naviera),
		Nave:    nom(catalogo.Naves, f.Nave),
		POL:     nom(catalogo.PuertosOrigen, f.POL),
		POD:     nom(catalogo.Destinos, f.POD),
		ETD:     etd,
		ETA:     eta,
		TT:      TransitTime(f.ETD, f.ETA),
		Booking: opt(f.Booking),

		PlantaPresentacion: nom(catalogo.Plantas, f.PlantaPresentacion),
		Citacion:           citacion,
		InicioStacking:     inicioStacking,
		FinStacking:        finStacking,
		CorteDocumental:    corte,

		Deposito: nom(catalogo.Depositos, f.Deposito),

		Prioridad:        opt(f.Prioridad),
		OperacionCritica: &critica,
		OrigenRegistro:   opt(OrigenReservaWeb),
		Observaciones:    opt(f.Observaciones),
	}, nil
}

func nombreDe(cats catalogo.Conjunto, k catalogo.Kind, id string) string {
	if o, ok := catalogo.Buscar(cats[k], id); ok {
		return o.Nombre
	}
	return ""
}

func guion(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func opt(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// valores converts raw form strings, keeping the first conversion error.
type valores struct {
	zone *time.Location
	err  error
}

func (v *valores) fallo() {
	if v.err == nil {
		v.err = ErrValorInvalido
	}
}

func (v *valores) entero(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v.fallo()
		return nil
	}
	return &n
}

func (v *valores) numero(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		v.fallo()
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// fecha stores a calendar date as yyyy-mm-dd.
func (v *valores) fecha(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	iso := projection.FechaISO(s, v.zone)
	if iso == "" {
		v.fallo()
		return nil
	}
	return &iso
}

// instante stores a timestamp with its offset so the column does not depend
// on the database session zone.
func (v *valores) instante(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, ok := projection.Parse(s, v.zone)
	if !ok {
		v.fallo()
		return nil
	}
	r := t.Format(time.RFC3339)
	return &r
}
