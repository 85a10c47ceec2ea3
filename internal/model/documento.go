package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoDocumento is one of the fixed document slots of an operation.
type TipoDocumento string

const (
	DocBooking                  TipoDocumento = "BOOKING"
	DocInstructivoEmbarque      TipoDocumento = "INSTRUCTIVO_EMBARQUE"
	DocFacturaGateOut           TipoDocumento = "FACTURA_GATE_OUT"
	DocFacturaProforma          TipoDocumento = "FACTURA_PROFORMA"
	DocCertificadoFitosanitario TipoDocumento = "CERTIFICADO_FITOSANITARIO"
	DocCertificadoOrigen        TipoDocumento = "CERTIFICADO_ORIGEN"
	DocBLTelexSWBAWB            TipoDocumento = "BL_TELEX_SWB_AWB"
	DocFacturaComercial         TipoDocumento = "FACTURA_COMERCIAL"
	DocDUS                      TipoDocumento = "DUS"
	DocFullset                  TipoDocumento = "FULLSET"
)

// TiposDocumento lists every slot in display order.
var TiposDocumento = []TipoDocumento{
	DocBooking,
	DocInstructivoEmbarque,
	DocFacturaGateOut,
	DocFacturaProforma,
	DocCertificadoFitosanitario,
	DocCertificadoOrigen,
	DocBLTelexSWBAWB,
	DocFacturaComercial,
	DocDUS,
	DocFullset,
}

// Valido reports whether t is one of TiposDocumento.
func (t TipoDocumento) Valido() bool {
	for _, v := range TiposDocumento {
		if v == t {
			return true
		}
	}
	return false
}

// Documento is the single active file of one slot of one operation.
type Documento struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperacionID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_documento_slot"`
	Tipo          TipoDocumento `gorm:"type:varchar(40);not null;uniqueIndex:idx_documento_slot"`
	NombreArchivo string        `gorm:"not null"`
	URL           string        `gorm:"column:url;not null"`
	Ruta          string        `gorm:"not null"`
	Tamano        int64         `gorm:"not null"`
	MimeType      string        `gorm:"not null"`
	CreatedAt     time.Time
}

func (Documento) TableName() string { return "documentos" }
