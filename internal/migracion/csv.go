package migracion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// CSVConfig remaps CSV headers to column names and lists columns to skip.
// Headers absent from ColumnMap are used in snake_case.
type CSVConfig struct {
	ColumnMap map[string]string `yaml:"column_map"`
	Exclude   []string          `yaml:"exclude"`
}

// DefaultExclude are the columns the database fills itself.
var DefaultExclude = []string{"id", "created_at", "updated_at"}

// LoadCSVConfig reads a YAML file. A missing exclude list keeps the defaults.
func LoadCSVConfig(path string) (CSVConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return CSVConfig{}, err
	}
	var cfg CSVConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return CSVConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Exclude == nil {
		cfg.Exclude = DefaultExclude
	}
	return cfg, nil
}

var noSnake = regexp.MustCompile(`[^a-z0-9_]`)
var espacios = regexp.MustCompile(`\s+`)

// SnakeCase lower-cases h, turns whitespace runs into "_" and drops anything
// else outside [a-z0-9_].
func SnakeCase(h string) string {
	s := strings.ToLower(strings.TrimSpace(h))
	s = espacios.ReplaceAllString(s, "_")
	return noSnake.ReplaceAllString(s, "")
}

func (c CSVConfig) columna(header string) string {
	if col, ok := c.ColumnMap[header]; ok {
		return col
	}
	return SnakeCase(header)
}

// Registro is one CSV record keyed by its original header.
type Registro map[string]string

// CSV holds the parsed file in header order.
type CSV struct {
	Headers   []string
	Registros []Registro
}

// LeerCSV parses r with the first line as header. Cells are trimmed, blank
// lines skipped and short rows tolerated.
func LeerCSV(r io.Reader) (CSV, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return CSV{}, nil
	}
	if err != nil {
		return CSV{}, err
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(headers[i], "\ufeff"))
	}

	out := CSV{Headers: headers}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return CSV{}, err
		}
		if vacio(rec) {
			continue
		}
		reg := make(Registro, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				reg[h] = strings.TrimSpace(rec[i])
			}
		}
		out.Registros = append(out.Registros, reg)
	}
	return out, nil
}

func vacio(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// SQL renders the seed for the parsed CSV. Empty cells become NULL.
func (c CSVConfig) SQL(data CSV) string {
	if len(data.Registros) == 0 {
		return ""
	}
	var headers, cols []string
	for _, h := range data.Headers {
		col := c.columna(h)
		if col == "" || slices.Contains(c.Exclude, col) {
			continue
		}
		headers = append(headers, h)
		cols = append(cols, col)
	}

	rows := make([][]Literal, len(data.Registros))
	for i, reg := range data.Registros {
		row := make([]Literal, len(headers))
		for j, h := range headers {
			row[j] = Texto(reg[h])
		}
		rows[i] = row
	}
	return "-- Datos de operaciones desde CSV\n" + Insert(cols, rows)
}
