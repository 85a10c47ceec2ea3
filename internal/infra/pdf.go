package infra

// pdf.go: booking sheet generation using go-pdf/fpdf.
// One A4 page per operation with:
//   - Reference and status header
//   - Client, cargo, carrier, plant and depot blocks as label/value pairs
//   - Observations paragraph (if any)

import (
	"bytes"
	"fmt"
	"time"

	"embarques/internal/projection"

	"github.com/go-pdf/fpdf"
)

type campoPDF struct{ etiqueta, valor string }

// GenerarHojaReservaPDF renders the booking sheet of one projected row.
func GenerarHojaReservaPDF(f projection.Fila, generado time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Hoja de reserva "+f.RefASLI), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Estado: %s   Booking: %s", guion(f.EstadoOperacion), guion(f.Booking))), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Generado: "+generado.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	bloque := func(titulo string, campos []campoPDF) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 236, 245)
		pdf.CellFormat(contentW, 7, tr(titulo), "", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		labelW := contentW * 0.35
		for _, c := range campos {
			pdf.CellFormat(labelW, 6, tr(c.etiqueta), "B", 0, "L", false, 0, "")
			pdf.CellFormat(contentW-labelW, 6, tr(guion(c.valor)), "B", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	bloque("General", []campoPDF{
		{"Tipo de operación", f.TipoOperacion},
		{"Ejecutivo", f.Ejecutivo},
		{"Cliente", f.Cliente},
		{"Consignatario", f.Consignatario},
		{"Incoterm", f.Incoterm},
		{"Forma de pago", f.FormaPago},
	})
	bloque("Carga", []campoPDF{
		{"Especie", f.Especie},
		{"País", f.Pais},
		{"Temperatura", f.Temperatura},
		{"Ventilación", f.Ventilacion},
		{"Pallets", entero(f.Pallets)},
		{"Peso bruto (kg)", decimalTexto(f.PesoBruto.Valid, f.PesoBruto.Decimal.String())},
		{"Peso neto (kg)", decimalTexto(f.PesoNeto.Valid, f.PesoNeto.Decimal.String())},
		{"Tipo de unidad", f.TipoUnidad},
	})
	bloque("Naviera", []campoPDF{
		{"Naviera", f.Naviera},
		{"Nave", f.Nave},
		{"POL", f.POL},
		{"POD", f.POD},
		{"ETD", f.ETD},
		{"ETA", f.ETA},
		{"Tránsito (días)", entero(f.TT)},
		{"Contenedor", f.Contenedor},
	})
	bloque("Planta y depósito", []campoPDF{
		{"Planta de presentación", f.PlantaPresentacion},
		{"Citación", f.Citacion},
		{"Inicio stacking", f.InicioStacking},
		{"Fin stacking", f.FinStacking},
		{"Corte documental", f.CorteDocumental},
		{"Depósito", f.Deposito},
	})

	if f.Observaciones != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 7, "Observaciones", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, tr(f.Observaciones), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

func guion(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func entero(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}

func decimalTexto(ok bool, s string) string {
	if !ok {
		return ""
	}
	return s
}
