package grid

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"embarques/internal/model"

	"github.com/shopspring/decimal"
)

// Tipo is the storage type of an editable column.
type Tipo int

const (
	Texto Tipo = iota
	Entero
	Decimal
	Booleano
)

var (
	ErrColumnaNoEditable = errors.New("la columna no es editable")
	ErrValorInvalido     = errors.New("valor inválido")
)

// Identity, lifecycle, computed and date columns are not editable in the grid.
var editables = map[string]Tipo{
	"ejecutivo":        Texto,
	"estado_operacion": Texto,
	"tipo_operacion":   Texto,
	"cliente":          Texto,
	"consignatario":    Texto,
	"incoterm":         Texto,
	"forma_pago":       Texto,

	"especie":     Texto,
	"pais":        Texto,
	"temperatura": Texto,
	"ventilacion": Texto,
	"pallets":     Entero,
	"peso_bruto":  Decimal,
	"peso_neto":   Decimal,
	"tipo_unidad": Texto,

	"naviera": Texto,
	"nave":    Texto,
	"pol":     Texto,
	"pod":     Texto,
	"tt":      Entero,
	"booking": Texto,

	"aga":                  Texto,
	"dus":                  Texto,
	"sps":                  Texto,
	"numero_guia_despacho": Texto,
	"planta_presentacion":  Texto,
	"deposito":             Texto,

	"transporte":       Texto,
	"chofer":           Texto,
	"rut_chofer":       Texto,
	"telefono_chofer":  Texto,
	"patente_camion":   Texto,
	"patente_remolque": Texto,
	"contenedor":       Texto,
	"sello":            Texto,
	"tara":             Decimal,

	"almacenamiento":     Decimal,
	"tramo":              Texto,
	"valor_tramo":        Decimal,
	"porteo":             Booleano,
	"valor_porteo":       Decimal,
	"falso_flete":        Booleano,
	"valor_falso_flete":  Decimal,
	"factura_transporte": Texto,

	"monto_facturado":     Decimal,
	"numero_factura_asli": Texto,
	"concepto_facturado":  Texto,
	"moneda":              Texto,
	"tipo_cambio":         Decimal,
	"margen_estimado":     Decimal,
	"margen_real":         Decimal,

	"prioridad":         Texto,
	"operacion_critica": Booleano,
	"observaciones":     Texto,
}

// Editable returns the type of column c and whether the grid may edit it.
func Editable(c string) (Tipo, bool) {
	t, ok := editables[c]
	return t, ok
}

// Normalizar coerces a JSON-decoded cell value to column type t. It returns
// the value to store (nil for NULL) and a canonical string used to detect
// no-op edits.
func Normalizar(t Tipo, raw any) (any, string, error) {
	if raw == nil {
		return nil, "", nil
	}
	switch t {
	case Texto:
		var s string
		switch v := raw.(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(v)
		default:
			return nil, "", ErrValorInvalido
		}
		if strings.TrimSpace(s) == "" {
			return nil, "", nil
		}
		return s, s, nil

	case Entero:
		var n int
		switch v := raw.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, "", ErrValorInvalido
			}
			n = int(v)
		case int:
			n = v
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return nil, "", nil
			}
			i, err := strconv.Atoi(s)
			if err != nil {
				return nil, "", ErrValorInvalido
			}
			n = i
		default:
			return nil, "", ErrValorInvalido
		}
		return n, strconv.Itoa(n), nil

	case Decimal:
		var d decimal.Decimal
		switch v := raw.(type) {
		case float64:
			d = decimal.NewFromFloat(v)
		case decimal.Decimal:
			d = v
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return nil, "", nil
			}
			if !strings.Contains(s, ".") {
				s = strings.ReplaceAll(s, ",", ".")
			}
			parsed, err := decimal.NewFromString(s)
			if err != nil {
				return nil, "", ErrValorInvalido
			}
			d = parsed
		default:
			return nil, "", ErrValorInvalido
		}
		return d, d.String(), nil

	case Booleano:
		var b bool
		switch v := raw.(type) {
		case bool:
			b = v
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "":
				return nil, "", nil
			case "true", "1", "si", "sí":
				b = true
			case "false", "0", "no":
				b = false
			default:
				return nil, "", ErrValorInvalido
			}
		default:
			return nil, "", ErrValorInvalido
		}
		return b, strconv.FormatBool(b), nil
	}
	return nil, "", ErrValorInvalido
}

var (
	tipoDecimal = reflect.TypeOf(decimal.NullDecimal{})
	indice      = columnIndex()
)

// columnIndex maps gorm column names to Operacion field indexes.
func columnIndex() map[string]int {
	t := reflect.TypeOf(model.Operacion{})
	out := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		for _, part := range strings.Split(t.Field(i).Tag.Get("gorm"), ";") {
			if name, ok := strings.CutPrefix(part, "column:"); ok {
				out[name] = i
			}
		}
	}
	return out
}

// canonico returns the canonical string of column c in op, matching what
// Normalizar yields for the same value.
func canonico(op *model.Operacion, c string) (string, bool) {
	i, ok := indice[c]
	if !ok {
		return "", false
	}
	f := reflect.ValueOf(op).Elem().Field(i)
	if f.Type() == tipoDecimal {
		nd := f.Interface().(decimal.NullDecimal)
		if !nd.Valid {
			return "", true
		}
		return nd.Decimal.String(), true
	}
	if f.Kind() != reflect.Pointer {
		return "", false
	}
	if f.IsNil() {
		return "", true
	}
	switch v := f.Elem().Interface().(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", true
		}
		return v, true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// aplicar writes normalized values into op by column name.
func aplicar(op *model.Operacion, campos map[string]any) error {
	v := reflect.ValueOf(op).Elem()
	for c, val := range campos {
		i, ok := indice[c]
		if !ok {
			return fmt.Errorf("columna desconocida: %s", c)
		}
		f := v.Field(i)
		if f.Type() == tipoDecimal {
			nd := decimal.NullDecimal{}
			if d, ok := val.(decimal.Decimal); ok {
				nd = decimal.NewNullDecimal(d)
			}
			f.Set(reflect.ValueOf(nd))
			continue
		}
		if val == nil {
			f.Set(reflect.Zero(f.Type()))
			continue
		}
		rv := reflect.ValueOf(val)
		if f.Kind() != reflect.Pointer || rv.Type() != f.Type().Elem() {
			return fmt.Errorf("tipo incompatible para %s", c)
		}
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		f.Set(p)
	}
	return nil
}
