// Command seeduser creates or updates a staff account.
//
//	seeduser --email ana@asli.cl --password secreta --nombre "Ana Pérez" --rol admin
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"embarques/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	dsn := pflag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	email := pflag.String("email", "", "correo del usuario")
	password := pflag.String("password", "", "contraseña en claro")
	nombre := pflag.String("nombre", "", "nombre visible (por defecto la parte local del correo)")
	rol := pflag.String("rol", model.RolEjecutivo, "ejecutivo | admin | usuario")
	pflag.Parse()

	*email = strings.ToLower(strings.TrimSpace(*email))
	if *dsn == "" || *email == "" || *password == "" {
		pflag.Usage()
		log.Fatal().Msg("--dsn (o DATABASE_URL), --email y --password son obligatorios")
	}
	switch *rol {
	case model.RolEjecutivo, model.RolAdmin, model.RolUsuario:
	default:
		log.Fatal().Str("rol", *rol).Msg("rol desconocido")
	}
	if *nombre == "" {
		*nombre, _, _ = strings.Cut(*email, "@")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	db, err := gorm.Open(postgres.Open(*dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}

	u := model.Usuario{
		Email:        *email,
		Nombre:       *nombre,
		PasswordHash: string(hash),
		Rol:          *rol,
		Activo:       true,
	}
	err = db.WithContext(context.Background()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "nombre", "rol", "activo"}),
	}).Create(&u).Error
	if err != nil {
		log.Fatal().Err(err).Msg("insert")
	}
	log.Info().Str("email", *email).Str("rol", *rol).Msg("usuario creado/actualizado")
}
