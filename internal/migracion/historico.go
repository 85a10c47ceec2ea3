package migracion

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Fila is one record of the legacy spreadsheet keyed by its column title.
// Values are strings, json.Number, bool or nil.
type Fila map[string]any

// Column titles of the legacy "HOJA DE REGISTROS" export. Some carry a
// trailing space in the source.
const (
	colIngresado     = "INGRESADO"
	colSemana        = "WK IN"
	colRef           = "N°REF ASLI"
	colEjecutivo     = "EJECUTIVO"
	colShipper       = "SHIPPER"
	colBooking       = "BOOKING"
	colCantCont      = "CANT CONT."
	colContenedor    = "CONTENEDOR"
	colWkETD         = "WK ETD"
	colNaviera       = "NAVIERA"
	colNave          = "NAVE INICIAL"
	colEspecie       = "ESPECIE"
	colTemperatura   = "T°"
	colCBM           = "CBM"
	colCT            = "CT"
	colCO2           = "CO2"
	colO2            = "O2"
	colPOL           = "POL"
	colPOD           = "POD"
	colDeposito      = "DEPÓSITO "
	colETD           = "ETD"
	colETA           = "ETA"
	colTT            = "TT"
	colFlete         = "FLETE"
	colEstado        = "ESTADO"
	colRoleada       = "ROLEADA DESDE"
	colIngresoStack  = "INGRESO STACKING"
	colTipoIngreso   = "TIPO INGRESO"
	colBL            = "N° BL "
	colEstadoBL      = "ESTADO BL/SWB"
	colContrato      = "CONTRATO"
	colFacturacion   = "FACTURACION"
	colComentario    = "COMENTARIO"
	colObservacion   = "OBSERVACION"
)

// OrigenImportacion tags the rows loaded from the spreadsheet.
const OrigenImportacion = "importacion_excel"

// ColumnasHistorico is the fixed column list of the historical INSERT.
var ColumnasHistorico = []string{
	"ingreso", "semana", "ejecutivo", "estado_operacion", "tipo_operacion",
	"cliente", "consignatario", "especie", "temperatura", "ventilacion",
	"naviera", "nave", "pol", "pod", "etd", "eta", "tt", "booking",
	"deposito", "contenedor", "forma_pago", "ingreso_stacking",
	"observaciones", "origen_registro",
}

var estados = map[string]string{
	"CONFIRMADA": "CONFIRMADO",
	"CONFIRMADO": "CONFIRMADO",
	"CANCELADA":  "CANCELADO",
	"CANCELADO":  "CANCELADO",
	"PENDIENTE":  "PENDIENTE",
}

// Estado maps the spreadsheet status to the application's vocabulary. Blank
// becomes PENDIENTE; unknown values pass through upper-cased.
func Estado(v any) string {
	s, ok := limpio(v)
	if !ok {
		return "PENDIENTE"
	}
	s = strings.ToUpper(s)
	if e, ok := estados[s]; ok {
		return e
	}
	return s
}

// limpio returns v as trimmed text, or false when it is blank or one of the
// spreadsheet's error markers (#N/A, #REF!, N/A, NaN, undefined).
func limpio(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s = strings.TrimSpace(x)
	case json.Number:
		s = x.String()
	case bool:
		s = strconv.FormatBool(x)
	default:
		s = strings.TrimSpace(fmt.Sprint(x))
	}
	if s == "" || strings.HasPrefix(s, "#") {
		return "", false
	}
	switch s {
	case "N/A", "NaN", "undefined":
		return "", false
	}
	return s, true
}

func textoLimpio(v any) Literal {
	s, _ := limpio(v)
	return Texto(s)
}

// numero parses a cleaned value as a decimal number.
func numero(v any) (decimal.Decimal, bool) {
	s, ok := limpio(v)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func numeroLiteral(v any) Literal {
	d, ok := numero(v)
	if !ok {
		return Null
	}
	return Literal(d.String())
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"01-02-06",
}

// fecha parses an ISO or dd/mm/yyyy text, or an Excel serial day number.
func fecha(v any) (time.Time, bool) {
	s, ok := limpio(v)
	if !ok {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(f, false)
		return t.UTC(), err == nil
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func fechaLiteral(v any) Literal {
	t, ok := fecha(v)
	if !ok {
		return Null
	}
	return Texto(t.Format("2006-01-02"))
}

func instanteLiteral(v any) Literal {
	t, ok := fecha(v)
	if !ok {
		return Null
	}
	return Texto(t.Format("2006-01-02T15:04:05.000Z"))
}

func conDefecto(v any, def string) Literal {
	if s, ok := limpio(v); ok {
		return Texto(s)
	}
	return Texto(def)
}

// Observaciones folds the columns without a home into one " | " joined text.
func Observaciones(f Fila) string {
	var parts []string
	add := func(col, prefijo string, skip ...string) {
		s, ok := limpio(f[col])
		if !ok || slices.Contains(skip, s) {
			return
		}
		parts = append(parts, prefijo+s)
	}
	add(colRef, "Ref ASLI: ")
	if d, ok := numero(f[colCantCont]); ok && d.GreaterThan(decimal.NewFromInt(1)) {
		parts = append(parts, "Cant. Cont: "+d.String())
	}
	add(colCT, "CT: ", "NO")
	add(colCO2, "CO2: ")
	add(colO2, "O2: ")
	add(colRoleada, "Roleada desde: ")
	add(colBL, "BL: ")
	add(colEstadoBL, "Estado BL: ")
	add(colWkETD, "WK ETD: ")
	add(colFacturacion, "Facturación: ", "OK")
	add(colComentario, "")
	add(colObservacion, "")
	return strings.Join(parts, " | ")
}

// Valores renders one spreadsheet row in ColumnasHistorico order.
func Valores(f Fila) []Literal {
	return []Literal{
		instanteLiteral(f[colIngresado]),
		numeroLiteral(f[colSemana]),
		conDefecto(f[colEjecutivo], ""),
		Texto(Estado(f[colEstado])),
		conDefecto(f[colTipoIngreso], "EXPORTACIÓN"),
		conDefecto(f[colShipper], ""),
		textoLimpio(f[colContrato]),
		textoLimpio(f[colEspecie]),
		textoLimpio(f[colTemperatura]),
		textoLimpio(f[colCBM]),
		textoLimpio(f[colNaviera]),
		textoLimpio(f[colNave]),
		textoLimpio(f[colPOL]),
		textoLimpio(f[colPOD]),
		fechaLiteral(f[colETD]),
		fechaLiteral(f[colETA]),
		numeroLiteral(f[colTT]),
		textoLimpio(f[colBooking]),
		textoLimpio(f[colDeposito]),
		textoLimpio(f[colContenedor]),
		textoLimpio(f[colFlete]),
		instanteLiteral(f[colIngresoStack]),
		Texto(Observaciones(f)),
		Texto(OrigenImportacion),
	}
}

func unicos(filas []Fila, col string) []string {
	var out []string
	for _, f := range filas {
		if s, ok := limpio(f[col]); ok && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func citados(vals []string) string {
	q := make([]string, len(vals))
	for i, v := range vals {
		q[i] = string(Texto(v))
	}
	return strings.Join(q, ", ")
}

// HistoricoSQL renders the full historical seed: drop the two check
// constraints, insert every row, and leave their recreation commented out.
func HistoricoSQL(filas []Fila, generado time.Time) string {
	rows := make([][]Literal, len(filas))
	for i, f := range filas {
		rows[i] = Valores(f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- Importación histórico Excel a tabla operaciones\n")
	fmt.Fprintf(&b, "-- Generado: %s\n", generado.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "-- Total registros: %d\n\n", len(filas))
	b.WriteString("-- 1. Eliminar constraints existentes que bloquean la inserción\n")
	b.WriteString("ALTER TABLE " + Tabla + " DROP CONSTRAINT IF EXISTS operaciones_estado_operacion_check;\n")
	b.WriteString("ALTER TABLE " + Tabla + " DROP CONSTRAINT IF EXISTS operaciones_tipo_operacion_check;\n\n")
	b.WriteString("-- 2. Insertar datos del histórico\n")
	b.WriteString(Insert(ColumnasHistorico, rows))
	b.WriteString("\n-- 3. (Opcional) Recrear constraints con los valores del Excel\n")
	estadosExcel := make([]string, 0)
	for _, f := range filas {
		if e := Estado(f[colEstado]); !slices.Contains(estadosExcel, e) {
			estadosExcel = append(estadosExcel, e)
		}
	}
	fmt.Fprintf(&b, "-- ALTER TABLE %s ADD CONSTRAINT operaciones_estado_operacion_check\n", Tabla)
	fmt.Fprintf(&b, "--   CHECK (estado_operacion IN (%s));\n", citados(estadosExcel))
	fmt.Fprintf(&b, "-- ALTER TABLE %s ADD CONSTRAINT operaciones_tipo_operacion_check\n", Tabla)
	fmt.Fprintf(&b, "--   CHECK (tipo_operacion IN (%s));\n", citados(append([]string{"EXPORTACIÓN", "IMPORTACIÓN"}, unicos(filas, colTipoIngreso)...)))
	return b.String()
}

// FilasDeTabla turns spreadsheet rows (header first) into Filas.
func FilasDeTabla(rows [][]string) []Fila {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	out := make([]Fila, 0, len(rows)-1)
	for _, r := range rows[1:] {
		if vacio(r) {
			continue
		}
		f := make(Fila, len(header))
		for i, h := range header {
			if i < len(r) {
				f[h] = r[i]
			}
		}
		out = append(out, f)
	}
	return out
}
