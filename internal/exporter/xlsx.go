package exporter

import (
	"github.com/xuri/excelize/v2"

	"salespulse/internal/errors"
)

// sheetName is the single worksheet every exported workbook contains.
const sheetName = "Data"

// minColumnWidth keeps short-headed columns readable.
const minColumnWidth = 10

// MarshalXLSX renders the table as a single-sheet XLSX workbook with a
// bold, shaded header row and column widths sized to the longer of the
// header label or a fixed minimum.
func MarshalXLSX(t Table) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, errors.NewSerializationError("failed to create header style", err)
	}

	for col, header := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, errors.NewSerializationError("failed to resolve header cell", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, errors.NewSerializationError("failed to write header cell", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, errors.NewSerializationError("failed to style header cell", err)
		}

		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, errors.NewSerializationError("failed to resolve column name", err)
		}
		width := float64(len(header))
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if err := f.SetColWidth(sheetName, colName, colName, width); err != nil {
			return nil, errors.NewSerializationError("failed to set column width", err)
		}
	}

	for rowIdx, row := range t.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, errors.NewSerializationError("failed to resolve data cell", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, errors.NewSerializationError("failed to write data cell", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.NewSerializationError("failed to encode workbook", err)
	}
	return buf.Bytes(), nil
}
