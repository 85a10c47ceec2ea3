package dto

import (
	"encoding/json"

	"embarques/internal/catalogo"
	"embarques/internal/projection"

	"github.com/google/uuid"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// EditarCeldaRequest commits one cell. Anterior is the value the grid showed
// before editing; when present the no-op check does not need the cache.
type EditarCeldaRequest struct {
	Campo    string          `json:"campo" validate:"required,max=60"`
	Valor    any             `json:"valor"`
	Anterior json.RawMessage `json:"anterior,omitempty"`
}

type SeleccionRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type EliminarRequest struct {
	IDs        []uuid.UUID `json:"ids"`
	Confirmado bool        `json:"confirmado"`
}

type ConfirmacionRequest struct {
	Confirmado bool `json:"confirmado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RegistrosResponse struct {
	Filas []projection.Fila `json:"filas"`
	Total int               `json:"total"`
	// Aviso is set when a refresh failed and the previous rows are shown.
	Aviso string `json:"aviso,omitempty"`
}

type EdicionResponse struct {
	Fila    *projection.Fila `json:"fila"`
	Omitida bool             `json:"omitida"`
}

type LoteResponse struct {
	Afectadas int64  `json:"afectadas"`
	Mensaje   string `json:"mensaje,omitempty"`
}

type OpcionesResponse struct {
	Opciones []catalogo.Opcion `json:"opciones"`
}
