package output

import (
	"fmt"
	"io"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/focusim/statement-go/pkg/statement/parser"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the Excel report.
const (
	SummarySheet = "Resumen"
	GroupsSheet  = "Grupos"
)

// tableStart is the sheet row of the column headings.
const tableStart = 6

const (
	amountFmt  = "#,##0.00"
	percentFmt = 10 // 0.00%
	paperA4    = 9
)

var columnWidths = []float64{40, 14, 12, 16, 11, 16, 11, 28, 24}

type excelStyles struct {
	title, heading, text, amount, percent int
	totalText, totalAmount, totalPercent   int
}

// WriteExcel writes the statement as an xlsx workbook: a summary sheet with the
// table, landscape A4 page setup and a print area over the table, and a groups
// sheet with a pie chart of group weights.
func WriteExcel(w io.Writer, st *models.Statement, f Formatter) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName(x.GetSheetName(0), SummarySheet); err != nil {
		return err
	}
	styles, err := newExcelStyles(x)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	if err := writeSummary(x, st, f, styles); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := writeGroups(x, st, styles); err != nil {
		return fmt.Errorf("failed to write groups sheet: %w", err)
	}
	x.SetActiveSheet(0)

	return x.Write(w)
}

func writeSummary(x *excelize.File, st *models.Statement, f Formatter, s excelStyles) error {
	sheet := SummarySheet

	header := [][]any{
		{st.Header.Title},
		{"Comitente:", st.Header.Client},
		{"Fecha:", f.Date(st.Header.Date)},
		{"Tipo de cambio (ARS/USD):", st.Valuation.ExchangeRate.InexactFloat64()},
	}
	for i, values := range header {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := x.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	if err := x.MergeCell(sheet, "A1", "I1"); err != nil {
		return err
	}
	if err := x.SetCellStyle(sheet, "A1", "A1", s.title); err != nil {
		return err
	}
	if err := x.SetCellStyle(sheet, "B4", "B4", s.amount); err != nil {
		return err
	}

	headings := make([]any, len(Columns))
	for i, c := range Columns {
		headings[i] = c
	}
	first, _ := excelize.CoordinatesToCellName(1, tableStart)
	last, _ := excelize.CoordinatesToCellName(len(Columns), tableStart)
	if err := x.SetSheetRow(sheet, first, &headings); err != nil {
		return err
	}
	if err := x.SetCellStyle(sheet, first, last, s.heading); err != nil {
		return err
	}

	row := tableStart
	for _, r := range st.Rows {
		row++
		if err := writeRow(x, sheet, row, r, s); err != nil {
			return err
		}
	}

	row++
	total := st.Valuation.TotalUSD
	weight := totalWeight(total)
	if err := writeCells(x, sheet, row, []any{
		"TOTALES", nil, nil,
		total.InexactFloat64(), weight.InexactFloat64(),
		total.InexactFloat64(), weight.InexactFloat64(),
		nil, nil,
	}, []int{s.totalText, s.totalText, s.totalText, s.totalAmount, s.totalPercent, s.totalAmount, s.totalPercent, s.totalText, s.totalText}); err != nil {
		return err
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := x.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	orientation := "landscape"
	size, fit := paperA4, 1
	if err := x.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Size:        &size,
		Orientation: &orientation,
		FitToWidth:  &fit,
	}); err != nil {
		return err
	}

	area := models.PrintArea{R1: 1, C1: 1, R2: row, C2: len(Columns)}
	return x.SetDefinedName(&excelize.DefinedName{
		Name:     parser.PrintAreaName,
		RefersTo: parser.PrintAreaReference(sheet, area),
		Scope:    sheet,
	})
}

func writeRow(x *excelize.File, sheet string, row int, r models.ReportRow, s excelStyles) error {
	if r.Kind == models.RowGroupTotal {
		return writeCells(x, sheet, row, []any{
			r.Name, nil, nil,
			r.AmountUSD.InexactFloat64(), r.Weight.InexactFloat64(),
			r.GroupTotalUSD.InexactFloat64(), r.GroupWeight.InexactFloat64(),
			nil, nil,
		}, []int{s.totalText, s.totalText, s.totalText, s.totalAmount, s.totalPercent, s.totalAmount, s.totalPercent, s.totalText, s.totalText})
	}
	return writeCells(x, sheet, row, []any{
		r.Name,
		r.Nominal.InexactFloat64(),
		r.Price.InexactFloat64(),
		r.AmountUSD.InexactFloat64(),
		r.Weight.InexactFloat64(),
		r.GroupTotalUSD.InexactFloat64(),
		r.GroupWeight.InexactFloat64(),
		r.BenchmarkSpecific,
		r.BenchmarkGeneral,
	}, []int{s.text, s.amount, s.amount, s.amount, s.percent, s.amount, s.percent, s.text, s.text})
}

// writeCells sets one row of values starting at column A, styling each cell.
func writeCells(x *excelize.File, sheet string, row int, values []any, styles []int) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if v != nil {
			if err := x.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		if err := x.SetCellStyle(sheet, cell, cell, styles[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeGroups(x *excelize.File, st *models.Statement, s excelStyles) error {
	sheet := GroupsSheet
	if _, err := x.NewSheet(sheet); err != nil {
		return err
	}

	if err := x.SetSheetRow(sheet, "A1", &[]any{"Grupo", "Monto", "% Grupal", "Instrumentos"}); err != nil {
		return err
	}
	if err := x.SetCellStyle(sheet, "A1", "D1", s.heading); err != nil {
		return err
	}
	for i, g := range st.Valuation.Groups {
		if err := writeCells(x, sheet, i+2, []any{
			groupLabel(g.Group), g.TotalUSD.InexactFloat64(), g.Weight.InexactFloat64(), g.Count,
		}, []int{s.text, s.amount, s.percent, s.text}); err != nil {
			return err
		}
	}
	if err := x.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}

	n := len(st.Valuation.Groups)
	if n == 0 || !st.Valuation.TotalUSD.IsPositive() {
		return nil
	}
	ref := "'" + sheet + "'!"
	return x.AddChart(sheet, "F2", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       ref + "$C$1",
			Categories: fmt.Sprintf("%s$A$2:$A$%d", ref, n+1),
			Values:     fmt.Sprintf("%s$C$2:$C$%d", ref, n+1),
		}},
		Title:    []excelize.RichTextRun{{Text: "% Grupal"}},
		Legend:   excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{ShowPercent: true},
	})
}

// groupLabel names the ungrouped bucket in reports.
func groupLabel(g string) string {
	if g == "" {
		return "Sin grupo"
	}
	return g
}

func newExcelStyles(x *excelize.File) (excelStyles, error) {
	var (
		s   excelStyles
		err error
	)
	amount := amountFmt
	border := []excelize.Border{
		{Type: "left", Color: "#BFBFBF", Style: 1},
		{Type: "right", Color: "#BFBFBF", Style: 1},
		{Type: "top", Color: "#BFBFBF", Style: 1},
		{Type: "bottom", Color: "#BFBFBF", Style: 1},
	}
	totalFill := excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1}

	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}, Alignment: &excelize.Alignment{Horizontal: "center"}}},
		{&s.heading, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F3864"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    border,
		}},
		{&s.text, &excelize.Style{Border: border}},
		{&s.amount, &excelize.Style{Border: border, CustomNumFmt: &amount}},
		{&s.percent, &excelize.Style{Border: border, NumFmt: percentFmt}},
		{&s.totalText, &excelize.Style{Border: border, Fill: totalFill, Font: &excelize.Font{Bold: true}}},
		{&s.totalAmount, &excelize.Style{Border: border, Fill: totalFill, Font: &excelize.Font{Bold: true}, CustomNumFmt: &amount}},
		{&s.totalPercent, &excelize.Style{Border: border, Fill: totalFill, Font: &excelize.Font{Bold: true}, NumFmt: percentFmt}},
	}
	for _, d := range defs {
		if *d.dst, err = x.NewStyle(d.style); err != nil {
			return s, err
		}
	}
	return s, nil
}
