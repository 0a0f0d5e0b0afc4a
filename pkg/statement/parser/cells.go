package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates the requested sheet does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ResolveSheet returns the sheet to parse: the named one, or the first sheet when name is empty.
func ResolveSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrSheetNotFound
	}
	if name == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if strings.EqualFold(s, name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// ExtractRows extracts every row of a sheet, blank ones included, as typed cells.
// Rows keep their 1-based sheet index so later stages can report positions.
func ExtractRows(f *excelize.File, sheetName string) ([]models.RawRow, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	result := make([]models.RawRow, 0, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, cellValue := range row {
			cells[colIdx] = parseValue(cellValue)
		}
		result = append(result, models.RawRow{
			Index: rowIdx + 1, // 1-based row index
			Cells: cells,
		})
	}

	return result, nil
}

// parseValue converts a raw cell string into a typed cell.
// Blank strings become empty cells, numeric strings become numbers.
func parseValue(s string) models.Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return models.Empty()
	}
	// Try integer first
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return models.Cell{Kind: models.CellNumber, Number: float64(i), Text: trimmed}
	}
	// Try float
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return models.Cell{Kind: models.CellNumber, Number: f, Text: trimmed}
	}
	return models.Text(trimmed)
}
