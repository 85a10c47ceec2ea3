package infra

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const hojaRegistros = "Registros"

// GenerarXLSX writes one header row plus the data rows into a single-sheet
// workbook. nil cells stay blank.
func GenerarXLSX(encabezados []string, filas [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaRegistros); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(hojaRegistros)
	if err != nil {
		return nil, fmt.Errorf("xlsx: stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	header := make([]any, len(encabezados))
	for i, h := range encabezados {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{Height: 18}); err != nil {
		return nil, err
	}

	for i, fila := range filas {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, fila); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

// LeerXLSX returns the rows of the first sheet of a workbook, header first.
func LeerXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xlsx: open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
