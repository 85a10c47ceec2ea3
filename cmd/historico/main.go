// Command historico converts the legacy "HOJA DE REGISTROS" spreadsheet,
// exported as a JSON array or read straight from the .xlsx, into a SQL seed
// migration.
//
//	historico [--migrations-dir migrations] "HOJA DE REGISTROS.xlsx"
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"embarques/internal/infra"
	"embarques/internal/migracion"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	migrationsDir := pflag.String("migrations-dir", "migrations", "directorio del SQL generado")
	pflag.Parse()
	if pflag.NArg() != 1 {
		pflag.Usage()
		log.Fatal().Msg("indique el archivo .json o .xlsx")
	}
	path := pflag.Arg(0)

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("archivo", path).Msg("lectura")
	}

	filas, err := leer(path, raw)
	if err != nil {
		log.Fatal().Err(err).Msg("formato")
	}
	log.Info().Int("registros", len(filas)).Msg("registros encontrados")

	if err := os.MkdirAll(*migrationsDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("mkdir")
	}
	now := time.Now()
	sqlPath := filepath.Join(*migrationsDir, migracion.Timestamp(now)+"_seed_operaciones_historico.sql")
	if err := os.WriteFile(sqlPath, []byte(migracion.HistoricoSQL(filas, now)), 0o644); err != nil {
		log.Fatal().Err(err).Msg("write sql")
	}
	log.Info().Str("sql", sqlPath).Msg("SQL generado")
}

func leer(path string, raw []byte) ([]migracion.Fila, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err := infra.LeerXLSX(raw)
		if err != nil {
			return nil, err
		}
		return migracion.FilasDeTabla(rows), nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var filas []migracion.Fila
	if err := dec.Decode(&filas); err != nil {
		return nil, err
	}
	return filas, nil
}
