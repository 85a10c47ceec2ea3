// Command csvimport converts an operations CSV export into a JSON dump and a
// SQL seed migration.
//
//	csvimport [--config columnas.yaml] [--map "Cliente ID=cliente"] [--exclude id,created_at] data/operaciones.csv
package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"embarques/internal/migracion"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	configPath := pflag.String("config", "", "YAML con column_map y exclude")
	columnMap := pflag.StringToString("map", nil, "encabezado CSV=columna (repetible)")
	exclude := pflag.StringSlice("exclude", nil, "columnas a omitir (por defecto id, created_at, updated_at)")
	dataDir := pflag.String("data-dir", "data", "directorio del JSON generado")
	migrationsDir := pflag.String("migrations-dir", "migrations", "directorio del SQL generado")
	pflag.Parse()

	csvPath := filepath.Join(*dataDir, "operaciones.csv")
	if pflag.NArg() > 0 {
		csvPath = pflag.Arg(0)
	}

	cfg := migracion.CSVConfig{Exclude: migracion.DefaultExclude}
	if *configPath != "" {
		var err error
		if cfg, err = migracion.LoadCSVConfig(*configPath); err != nil {
			log.Fatal().Err(err).Msg("config")
		}
	}
	if len(*columnMap) > 0 {
		if cfg.ColumnMap == nil {
			cfg.ColumnMap = map[string]string{}
		}
		for k, v := range *columnMap {
			cfg.ColumnMap[k] = v
		}
	}
	if pflag.CommandLine.Changed("exclude") {
		cfg.Exclude = *exclude
	}

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("archivo", csvPath).Msg("no se encontró el archivo")
	}
	data, err := migracion.LeerCSV(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("csv")
	}

	for _, dir := range []string{*dataDir, *migrationsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("mkdir")
		}
	}

	jsonPath := filepath.Join(*dataDir, "operaciones.json")
	raw, err := json.MarshalIndent(data.Registros, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("json")
	}
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		log.Fatal().Err(err).Msg("write json")
	}

	sqlPath := filepath.Join(*migrationsDir, migracion.Timestamp(time.Now())+"_seed_operaciones.sql")
	if err := os.WriteFile(sqlPath, []byte(cfg.SQL(data)), 0o644); err != nil {
		log.Fatal().Err(err).Msg("write sql")
	}

	log.Info().Str("json", jsonPath).Int("registros", len(data.Registros)).Msg("JSON generado")
	log.Info().Str("sql", sqlPath).Msg("SQL generado")
}
