package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a row of the client roster. It has no trash state.
type Cliente struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreCliente *string   `gorm:"column:nombre_cliente;index"`
	Contacto      *string   `gorm:"column:contacto"`
	RutEmpresa    *string   `gorm:"column:rut_empresa"`
	Giro          *string   `gorm:"column:giro"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (Cliente) TableName() string { return "clientes" }
