package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type EditarClienteRequest struct {
	Campo    string          `json:"campo" validate:"required,oneof=nombre_cliente contacto rut_empresa giro"`
	Valor    *string         `json:"valor"`
	Anterior json.RawMessage `json:"anterior,omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID            uuid.UUID `json:"id"`
	NombreCliente string    `json:"nombre_cliente"`
	Contacto      string    `json:"contacto"`
	RutEmpresa    string    `json:"rut_empresa"`
	Giro          string    `json:"giro"`
	CreatedAt     time.Time `json:"created_at"`
}

type EdicionClienteResponse struct {
	Cliente ClienteResponse `json:"cliente"`
	Omitida bool            `json:"omitida"`
}
