// Package catalogo defines the closed set of reference lists that feed the
// dropdowns and the helpers to search them.
package catalogo

import (
	"errors"
	"sort"
	"strings"
)

// Kind names one catalog. The set is closed.
type Kind string

const (
	Navieras       Kind = "navieras"
	Naves          Kind = "naves"
	PuertosOrigen  Kind = "puertos_origen"
	Destinos       Kind = "destinos"
	Plantas        Kind = "plantas"
	Depositos      Kind = "depositos"
	Especies       Kind = "especies"
	Consignatarios Kind = "consignatarios"
	Ejecutivos     Kind = "ejecutivos"
	Empresas       Kind = "empresas"

	// Generic enumerations stored in the catalogos table by categoria.
	TiposOperacion   Kind = "tipo_operacion"
	EstadosOperacion Kind = "estado_operacion"
	Incoterms        Kind = "incoterm"
	FormasPago       Kind = "forma_pago"
	Ventilaciones    Kind = "ventilacion"
	TiposUnidad      Kind = "tipo_unidad"
	Prioridades      Kind = "prioridad"
	Monedas          Kind = "moneda"
)

// Kinds lists every catalog.
var Kinds = []Kind{
	Navieras, Naves, PuertosOrigen, Destinos, Plantas, Depositos, Especies,
	Consignatarios, Ejecutivos, Empresas,
	TiposOperacion, EstadosOperacion, Incoterms, FormasPago, Ventilaciones,
	TiposUnidad, Prioridades, Monedas,
}

var ErrKindDesconocido = errors.New("catálogo desconocido")

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrKindDesconocido
}

// Enumeracion reports whether k lives in the catalogos table, where the
// option value is the text itself rather than a row id.
func (k Kind) Enumeracion() bool {
	switch k {
	case TiposOperacion, EstadosOperacion, Incoterms, FormasPago,
		Ventilaciones, TiposUnidad, Prioridades, Monedas:
		return true
	}
	return false
}

// Opcion is one selectable entry.
type Opcion struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	// Pais is only set for destinations.
	Pais string `json:"pais,omitempty"`
}

// Conjunto holds loaded catalogs by kind.
type Conjunto map[Kind][]Opcion

// Buscar finds an option by id.
func Buscar(ops []Opcion, id string) (Opcion, bool) {
	if id == "" {
		return Opcion{}, false
	}
	for _, o := range ops {
		if o.ID == id {
			return o, true
		}
	}
	return Opcion{}, false
}

// BuscarNombre finds an option whose name matches ignoring case and
// surrounding blanks.
func BuscarNombre(ops []Opcion, nombre string) (Opcion, bool) {
	n := strings.TrimSpace(nombre)
	if n == "" {
		return Opcion{}, false
	}
	for _, o := range ops {
		if strings.EqualFold(strings.TrimSpace(o.Nombre), n) {
			return o, true
		}
	}
	return Opcion{}, false
}

// Filtrar returns the options whose name contains q, ignoring case.
func Filtrar(ops []Opcion, q string) []Opcion {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return ops
	}
	out := make([]Opcion, 0)
	for _, o := range ops {
		if strings.Contains(strings.ToLower(o.Nombre), q) {
			out = append(out, o)
		}
	}
	return out
}

// Insertar returns a new slice with o added in name order. ops is not modified.
func Insertar(ops []Opcion, o Opcion) []Opcion {
	out := make([]Opcion, 0, len(ops)+1)
	out = append(out, ops...)
	i := sort.Search(len(out), func(i int) bool {
		return strings.ToLower(out[i].Nombre) > strings.ToLower(o.Nombre)
	})
	out = append(out, Opcion{})
	copy(out[i+1:], out[i:])
	out[i] = o
	return out
}

// FiltrarNaves returns the vessels linked to a carrier, or every vessel when
// none are linked so the dropdown is never empty.
func FiltrarNaves(vinculadas, todas []Opcion) []Opcion {
	if len(vinculadas) == 0 {
		return todas
	}
	return vinculadas
}
