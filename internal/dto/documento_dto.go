package dto

import (
	"time"

	"embarques/internal/model"

	"github.com/google/uuid"
)

// ─── Response DTOs ───────────────────────────────────────────────────────────

// OperacionResumen is an operation as offered by the selectors of the
// documents, invoicing and trucking pages.
type OperacionResumen struct {
	ID                 uuid.UUID `json:"id"`
	RefASLI            string    `json:"ref_asli"`
	Cliente            string    `json:"cliente"`
	Naviera            string    `json:"naviera"`
	Nave               string    `json:"nave"`
	Booking            string    `json:"booking"`
	POD                string    `json:"pod"`
	ETD                string    `json:"etd"`
	EstadoOperacion    string    `json:"estado_operacion"`
	PlantaPresentacion string    `json:"planta_presentacion,omitempty"`
	NumeroFacturaASLI  string    `json:"numero_factura_asli,omitempty"`
}

type DocumentoResponse struct {
	ID            uuid.UUID           `json:"id"`
	Tipo          model.TipoDocumento `json:"tipo"`
	NombreArchivo string              `json:"nombre_archivo"`
	URL           string              `json:"url"`
	Tamano        int64               `json:"tamano"`
	MimeType      string              `json:"mime_type"`
	CreatedAt     time.Time           `json:"created_at"`
}

// SlotDocumento is one of the fixed document kinds of an operation; Documento
// is nil when nothing was uploaded.
type SlotDocumento struct {
	Tipo      model.TipoDocumento `json:"tipo"`
	Documento *DocumentoResponse  `json:"documento"`
}

type DocumentosOperacionResponse struct {
	Operacion OperacionResumen `json:"operacion"`
	Slots     []SlotDocumento  `json:"slots"`
	Subidos   int              `json:"subidos"`
}

type DocumentoSubidoResponse struct {
	Documento DocumentoResponse `json:"documento"`
	Mensaje   string            `json:"mensaje"`
	Reemplazo bool              `json:"reemplazo"`
}
