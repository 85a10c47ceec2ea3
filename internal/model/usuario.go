package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles. Ejecutivos and admins appear in the executive catalog.
const (
	RolEjecutivo = "ejecutivo"
	RolAdmin     = "admin"
	RolUsuario   = "usuario"
)

// Usuario is an account that can sign in with email and password.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          string    `gorm:"type:varchar(20);not null;default:'usuario'"`
	Activo       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
