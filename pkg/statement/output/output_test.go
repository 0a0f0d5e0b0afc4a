package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/focusim/statement-go/pkg/statement/parser"
	"github.com/focusim/statement-go/pkg/statement/valuation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testStatement(t *testing.T, placement valuation.TotalsPlacement) *models.Statement {
	t.Helper()
	positions := []models.Position{
		{
			Instrument: models.Instrument{Name: "Bonar 2030", Group: "Bonos Soberanos", Currency: models.ARS, BenchmarkSpecific: "Riesgo País", BenchmarkGeneral: "Merval"},
			Nominal:    decimal.NewFromInt(1000),
			Price:      decimal.NewFromInt(1),
		},
		{
			Instrument: models.Instrument{Name: "Vista Energy", Group: "Acciones", Currency: models.USD, BenchmarkSpecific: "S&P 500"},
			Nominal:    decimal.NewFromInt(5),
			Price:      decimal.NewFromInt(4),
		},
	}
	v := valuation.Compute(positions, decimal.NewFromInt(500), models.PolicyPriceTimesNominal)
	return &models.Statement{
		Header: models.Header{
			Title:  "Resumen de Cuenta",
			Client: "Juan Pérez",
			Date:   time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			Source: "catalog.xlsx",
		},
		Valuation: v,
		Rows:      valuation.Rows(v, placement),
		Missing:   []string{"Unknown"},
	}
}

func TestFormatter_Locales(t *testing.T) {
	d := decimal.RequireFromString("1234.5")

	es, err := NewFormatter("es-AR")
	require.NoError(t, err)
	assert.Equal(t, "1.234.567,50", es.Number(decimal.RequireFromString("1234567.5"), 2))
	assert.Equal(t, "12,34%", es.Percent(decimal.RequireFromString("0.1234")))

	en, err := NewFormatter("en-US")
	require.NoError(t, err)
	assert.Equal(t, "1,234.50", en.Number(d, 2))
	assert.Equal(t, "USD 1,234.50", en.Money(d))
	assert.Equal(t, "100.00%", en.Percent(decimal.NewFromInt(1)))

	assert.Equal(t, "ARS 1,450.50 por USD", en.Rate(decimal.RequireFromString("1450.5")))
	assert.Equal(t, "ARS 1.234.567,50 por USD", es.Rate(decimal.RequireFromString("1234567.5")))

	assert.Equal(t, "19/10/2026", en.Date(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", en.Date(time.Time{}))
}

func TestFormatter_RoundsToMinorUnits(t *testing.T) {
	en, err := NewFormatter("en-US")
	require.NoError(t, err)

	assert.Equal(t, "0.13", en.Amount(decimal.RequireFromString("0.125")))
	assert.Equal(t, "-0.13", en.Amount(decimal.RequireFromString("-0.125")))
	assert.Equal(t, "2.00", en.Amount(decimal.RequireFromString("1.999")))
	assert.Equal(t, "JPY 1,235", en.MoneyIn(decimal.RequireFromString("1234.5"), "JPY"))
	assert.Equal(t, "USD 3.50", en.MoneyIn(decimal.RequireFromString("3.5"), "XXX-unknown"))
}

func TestNewFormatter_InvalidLocale(t *testing.T) {
	_, err := NewFormatter("not a locale!")
	assert.Error(t, err)

	f, err := NewFormatter("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, f.Locale())
}

func TestToJSON(t *testing.T) {
	st := testStatement(t, valuation.TotalsNone)

	data, err := ToJSON(st, true)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")

	var decoded models.Statement
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Juan Pérez", decoded.Header.Client)
	assert.True(t, decoded.Valuation.TotalUSD.Equal(decimal.NewFromInt(22)))
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "Bonar 2030", decoded.Rows[0].Name)

	compact, err := ToJSON(st, false)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")
}

func TestCatalogToJSON(t *testing.T) {
	c := &models.Catalog{Source: "catalog.xlsx", Records: []models.Record{
		{Kind: models.RecordGroup, Group: &models.GroupMarker{Label: "Acciones", Row: 2}},
		{Kind: models.RecordInstrument, Instrument: &models.Instrument{Name: "Vista Energy", Group: "Acciones", Currency: models.USD, Row: 3}},
	}}

	data, err := CatalogToJSON(c, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Acciones"`)
	assert.Contains(t, string(data), `"Vista Energy"`)
}

func TestToMarkdown(t *testing.T) {
	st := testStatement(t, valuation.TotalsAfter)
	f, err := NewFormatter("en-US")
	require.NoError(t, err)

	data, err := ToMarkdown(st, f)
	require.NoError(t, err)
	md := string(data)

	assert.True(t, strings.HasPrefix(md, "# Resumen de Cuenta\n"))
	assert.Contains(t, md, "**Comitente:** Juan Pérez")
	assert.Contains(t, md, "**Fecha:** 19/10/2026")
	assert.Contains(t, md, "**Tipo de cambio:** ARS 500.00 por USD")
	assert.Contains(t, md, "| Activo | Nominales | Precio | Monto |")
	assert.Contains(t, md, "| Bonar 2030 | 1,000.00 | 1.00 | 2.00 | 9.09% | 2.00 | 9.09% | Riesgo País | Merval |")
	assert.Contains(t, md, "| **TOTAL Bonos Soberanos** |")
	assert.Contains(t, md, "| **TOTALES** |  |  | **USD 22.00** | **100.00%** | **USD 22.00** |")
	assert.Contains(t, md, "Unknown")

	// Every table line has one cell per column.
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "| ") {
			assert.Equal(t, len(Columns), strings.Count(line, " |"), line)
		}
	}
}

func TestToMarkdown_EscapesPipes(t *testing.T) {
	st := testStatement(t, valuation.TotalsNone)
	st.Rows[0].Name = "A|B"

	data, err := ToMarkdown(st, DefaultFormatter())
	require.NoError(t, err)
	assert.Contains(t, string(data), `A\|B`)
}

func TestWriteExcel(t *testing.T) {
	st := testStatement(t, valuation.TotalsBefore)

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, st, DefaultFormatter()))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()

	assert.Equal(t, []string{SummarySheet, GroupsSheet}, x.GetSheetList())

	title, err := x.GetCellValue(SummarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Resumen de Cuenta", title)

	client, err := x.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", client)

	heading, err := x.GetCellValue(SummarySheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Activo", heading)

	// Rows: TOTAL Bonos Soberanos, Bonar 2030, TOTAL Acciones, Vista Energy, TOTALES.
	first, err := x.GetCellValue(SummarySheet, "A7")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL Bonos Soberanos", first)

	amount, err := x.GetCellValue(SummarySheet, "D10", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "20", amount)

	footer, err := x.GetCellValue(SummarySheet, "A11")
	require.NoError(t, err)
	assert.Equal(t, "TOTALES", footer)

	area, ok := parser.PrintAreaFor(x, SummarySheet)
	require.True(t, ok)
	assert.Equal(t, models.PrintArea{R1: 1, C1: 1, R2: 11, C2: len(Columns)}, area)

	group, err := x.GetCellValue(GroupsSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Acciones", group)
}

func TestWriteExcel_EmptyStatement(t *testing.T) {
	v := valuation.Compute(nil, decimal.Zero, models.PolicyPriceTimesNominal)
	st := &models.Statement{Header: models.Header{Title: "Vacío"}, Valuation: v}

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, st, DefaultFormatter()))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()

	footer, err := x.GetCellValue(SummarySheet, "A7")
	require.NoError(t, err)
	assert.Equal(t, "TOTALES", footer)
}

func TestWritePDF(t *testing.T) {
	st := testStatement(t, valuation.TotalsAfter)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, st, DefaultFormatter(), PDFOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWritePDF_PageBreak(t *testing.T) {
	var positions []models.Position
	for i := 0; i < 80; i++ {
		positions = append(positions, models.Position{
			Instrument: models.Instrument{Name: strings.Repeat("Instrumento con nombre largo ", 3), Group: "Grupo", Currency: models.USD},
			Nominal:    decimal.NewFromInt(int64(i + 1)),
			Price:      decimal.NewFromInt(1),
		})
	}
	v := valuation.Compute(positions, decimal.NewFromInt(1), models.PolicyPriceTimesNominal)
	st := &models.Statement{Header: models.Header{Title: "Resumen"}, Valuation: v, Rows: valuation.Rows(v, valuation.TotalsBoth)}

	var short, long bytes.Buffer
	require.NoError(t, WritePDF(&long, st, DefaultFormatter(), PDFOptions{}))
	st.Rows = st.Rows[:2]
	require.NoError(t, WritePDF(&short, st, DefaultFormatter(), PDFOptions{}))

	assert.Greater(t, bytes.Count(long.Bytes(), []byte("/Type /Page")), bytes.Count(short.Bytes(), []byte("/Type /Page")))
}

func TestWritePDF_MissingLogo(t *testing.T) {
	st := testStatement(t, valuation.TotalsNone)

	var buf bytes.Buffer
	err := WritePDF(&buf, st, DefaultFormatter(), PDFOptions{Logo: "does-not-exist.png"})
	assert.Error(t, err)
}

func TestLatin1(t *testing.T) {
	assert.Equal(t, "Espec\xedfico", latin1("Específico"))
	assert.Equal(t, "a?b", latin1("a→b"))
}
