// Package listado filters, sorts and facets an in-memory set of operations
// for the bookings listing.
package listado

import (
	"errors"
	"sort"
	"strings"
	"time"

	"embarques/internal/model"
	"embarques/internal/projection"
)

var ErrCampoOrden = errors.New("campo de orden no soportado")

// Filtros are the listing's search box and the four exact-match filters.
type Filtros struct {
	Busqueda string
	Estado   string
	Cliente  string
	Naviera  string
	Especie  string
}

// Activos counts the exact-match filters in use.
func (f Filtros) Activos() int {
	n := 0
	for _, v := range []string{f.Estado, f.Cliente, f.Naviera, f.Especie} {
		if v != "" {
			n++
		}
	}
	return n
}

type faceta int

const (
	ninguna faceta = iota
	porEstado
	porCliente
	porNaviera
	porEspecie
)

// Orden selects the sort column. An empty Campo keeps the input order.
type Orden struct {
	Campo string
	Desc  bool
}

var camposOrden = map[string]func(model.Operacion) string{
	"ref_asli":         func(o model.Operacion) string { return projection.RefASLI(o.RefASLI, o.Correlativo) },
	"cliente":          func(o model.Operacion) string { return val(o.Cliente) },
	"especie":          func(o model.Operacion) string { return val(o.Especie) },
	"naviera":          func(o model.Operacion) string { return val(o.Naviera) },
	"nave":             func(o model.Operacion) string { return val(o.Nave) },
	"pol":              func(o model.Operacion) string { return val(o.POL) },
	"pod":              func(o model.Operacion) string { return val(o.POD) },
	"booking":          func(o model.Operacion) string { return val(o.Booking) },
	"estado_operacion": func(o model.Operacion) string { return val(o.EstadoOperacion) },
	"etd":              func(o model.Operacion) string { return val(o.ETD) },
	"eta":              func(o model.Operacion) string { return val(o.ETA) },
	"tt":               func(model.Operacion) string { return "" },
}

// Facetas are the distinct values offered by each filter dropdown, computed
// with every other filter applied.
type Facetas struct {
	Estados  []string `json:"estados"`
	Clientes []string `json:"clientes"`
	Navieras []string `json:"navieras"`
	Especies []string `json:"especies"`
}

type Resultado struct {
	Operaciones []model.Operacion
	Total       int
	Facetas     Facetas
}

// Aplicar runs search, filters, facets and sort over ops.
func Aplicar(ops []model.Operacion, f Filtros, o Orden) (Resultado, error) {
	if _, ok := camposOrden[o.Campo]; o.Campo != "" && !ok {
		return Resultado{}, ErrCampoOrden
	}
	out := filtrar(ops, f, ninguna)
	Ordenar(out, o)
	return Resultado{
		Operaciones: out,
		Total:       len(ops),
		Facetas: Facetas{
			Estados:  distintos(filtrar(ops, f, porEstado), func(o model.Operacion) *string { return o.EstadoOperacion }),
			Clientes: distintos(filtrar(ops, f, porCliente), func(o model.Operacion) *string { return o.Cliente }),
			Navieras: distintos(filtrar(ops, f, porNaviera), func(o model.Operacion) *string { return o.Naviera }),
			Especies: distintos(filtrar(ops, f, porEspecie), func(o model.Operacion) *string { return o.Especie }),
		},
	}, nil
}

func filtrar(ops []model.Operacion, f Filtros, excluir faceta) []model.Operacion {
	q := strings.ToLower(strings.TrimSpace(f.Busqueda))
	out := make([]model.Operacion, 0, len(ops))
	for _, o := range ops {
		if q != "" && !coincide(o, q) {
			continue
		}
		if f.Estado != "" && excluir != porEstado && val(o.EstadoOperacion) != f.Estado {
			continue
		}
		if f.Cliente != "" && excluir != porCliente && val(o.Cliente) != f.Cliente {
			continue
		}
		if f.Naviera != "" && excluir != porNaviera && val(o.Naviera) != f.Naviera {
			continue
		}
		if f.Especie != "" && excluir != porEspecie && val(o.Especie) != f.Especie {
			continue
		}
		out = append(out, o)
	}
	return out
}

func coincide(o model.Operacion, q string) bool {
	for _, s := range []string{
		val(o.Cliente), val(o.Booking), val(o.Naviera), val(o.Nave),
		projection.RefASLI(o.RefASLI, o.Correlativo), val(o.Especie),
	} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// Ordenar sorts ops in place. tt sorts numerically with nulls as zero, etd
// and eta chronologically with unparseable dates first, and every other
// column as lowercase text.
func Ordenar(ops []model.Operacion, o Orden) {
	clave, ok := camposOrden[o.Campo]
	if !ok {
		return
	}
	var menor func(a, b model.Operacion) bool
	switch o.Campo {
	case "tt":
		menor = func(a, b model.Operacion) bool { return entero(a.TT) < entero(b.TT) }
	case "etd", "eta":
		menor = func(a, b model.Operacion) bool { return instante(clave(a)) < instante(clave(b)) }
	default:
		menor = func(a, b model.Operacion) bool {
			return strings.ToLower(clave(a)) < strings.ToLower(clave(b))
		}
	}
	sort.SliceStable(ops, func(i, j int) bool {
		if o.Desc {
			return menor(ops[j], ops[i])
		}
		return menor(ops[i], ops[j])
	})
}

func distintos(ops []model.Operacion, campo func(model.Operacion) *string) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, o := range ops {
		v := val(campo(o))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func val(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func entero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func instante(s string) int64 {
	t, ok := projection.Parse(s, time.UTC)
	if !ok {
		return 0
	}
	return t.Unix()
}
