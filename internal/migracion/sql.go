// Package migracion converts legacy spreadsheets and CSV exports into SQL
// seed files for the operaciones table.
package migracion

import (
	"fmt"
	"strings"
	"time"
)

// Tabla is the target of every generated INSERT.
const Tabla = "public.operaciones"

// Literal is an already rendered SQL value.
type Literal string

const Null Literal = "NULL"

// Texto quotes s, doubling single quotes. The empty string becomes NULL.
func Texto(s string) Literal {
	if s == "" {
		return Null
	}
	return Literal("'" + strings.ReplaceAll(s, "'", "''") + "'")
}

// Insert renders one multi-row INSERT. Every row must have len(cols) values.
func Insert(cols []string, rows [][]Literal) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s)\nVALUES\n", Tabla, strings.Join(cols, ", "))
	for i, row := range rows {
		vals := make([]string, len(row))
		for j, v := range row {
			vals[j] = string(v)
		}
		b.WriteString("  (" + strings.Join(vals, ", ") + ")")
		if i < len(rows)-1 {
			b.WriteString(",\n")
		}
	}
	b.WriteString(";\n")
	return b.String()
}

// Timestamp is the migration file prefix, yyyymmddhhmmss in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format("20060102150405")
}
