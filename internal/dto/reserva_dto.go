package dto

import (
	"embarques/internal/catalogo"
	"embarques/internal/listado"
	"embarques/internal/projection"
	"embarques/internal/wizard"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre string `json:"nombre" validate:"required,max=200"`
}

type ConfirmarReservaRequest struct {
	Formulario wizard.Formulario `json:"formulario"`
	Token      string            `json:"token" validate:"required,len=64,hexadecimal"`
}

// ReservasQuery are the listing's query-string parameters.
type ReservasQuery struct {
	Q       string `form:"q"`
	Estado  string `form:"estado"`
	Cliente string `form:"cliente"`
	Naviera string `form:"naviera"`
	Especie string `form:"especie"`
	Orden   string `form:"orden"`
	Desc    bool   `form:"desc"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FormularioResponse struct {
	Formulario wizard.Formulario       `json:"formulario"`
	Catalogos  catalogo.Conjunto       `json:"catalogos"`
	Secciones  map[wizard.Seccion]bool `json:"secciones"`
}

type EstadoFormularioResponse struct {
	Secciones map[wizard.Seccion]bool `json:"secciones"`
	TT        *int                    `json:"tt"`
}

type ResolucionClienteResponse struct {
	wizard.ResolucionCliente
	// Pregunta is the create prompt, set only when Crear is true.
	Pregunta string `json:"pregunta,omitempty"`
}

type ReservaCreadaResponse struct {
	Success  bool            `json:"success"`
	Mensaje  string          `json:"mensaje"`
	Redirect string          `json:"redirect"`
	Fila     projection.Fila `json:"fila"`
}

type ReservasResponse struct {
	Filas          []projection.Fila `json:"filas"`
	Total          int               `json:"total"`
	FiltrosActivos int               `json:"filtros_activos"`
	Facetas        listado.Facetas   `json:"facetas"`
	Aviso          string            `json:"aviso,omitempty"`
}
