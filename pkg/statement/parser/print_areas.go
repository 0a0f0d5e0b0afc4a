package parser

import (
	"strings"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/xuri/excelize/v2"
)

// PrintAreaName is the defined name Excel uses for print areas.
const PrintAreaName = "_xlnm.Print_Area"

// PrintAreaFor returns the first print area defined for a sheet.
func PrintAreaFor(f *excelize.File, sheetName string) (models.PrintArea, bool) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, PrintAreaName) {
			continue
		}
		sheet, areas := parsePrintAreaReference(dn.RefersTo)
		if sheet == "" {
			sheet = dn.Scope
		}
		if strings.EqualFold(sheet, sheetName) && len(areas) > 0 {
			return areas[0], true
		}
	}
	return models.PrintArea{}, false
}

// ClipToArea keeps the rows inside the area and drops the columns outside it.
// Column indices of the result are relative to the area's first column.
func ClipToArea(rows []models.RawRow, area models.PrintArea) []models.RawRow {
	var out []models.RawRow
	for _, row := range rows {
		if !area.ContainsRow(row.Index) {
			continue
		}
		start, end := area.C1-1, area.C2
		if start > len(row.Cells) {
			start = len(row.Cells)
		}
		if end > len(row.Cells) {
			end = len(row.Cells)
		}
		out = append(out, models.RawRow{Index: row.Index, Cells: row.Cells[start:end]})
	}
	return out
}

// PrintAreaReference formats an area as a defined-name reference, e.g. 'Sheet1'!$A$1:$I$20.
func PrintAreaReference(sheetName string, area models.PrintArea) string {
	start, _ := excelize.CoordinatesToCellName(area.C1, area.R1, true)
	end, _ := excelize.CoordinatesToCellName(area.C2, area.R2, true)
	return "'" + strings.ReplaceAll(sheetName, "'", "''") + "'!" + start + ":" + end
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10, comma separated.
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var (
		areas     []models.PrintArea
		sheetName string
	)
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}

		sheet := strings.ReplaceAll(strings.Trim(part[:idx], "'"), "''", "'")
		if sheetName == "" {
			sheetName = sheet
		}
		if area, ok := parseRangeToArea(part[idx+1:]); ok {
			areas = append(areas, area)
		}
	}
	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10.
func parseRangeToArea(rangeStr string) (models.PrintArea, bool) {
	parts := strings.Split(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if len(parts) != 2 {
		return models.PrintArea{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.PrintArea{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.PrintArea{}, false
	}

	return models.PrintArea{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, true
}
