package parser

import (
	"errors"
	"strings"
	"unicode"

	"github.com/focusim/statement-go/pkg/statement/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrHeaderNotFound indicates no row looked like a catalog header.
var ErrHeaderNotFound = errors.New("catalog header not found")

// DetectionParams holds parameters for header detection.
type DetectionParams struct {
	// MaxScanRows bounds how many leading rows are inspected.
	MaxScanRows int
	// MinMatches is the number of recognized header cells a row needs.
	MinMatches int
}

// DefaultDetectionParams returns default header detection parameters.
func DefaultDetectionParams() DetectionParams {
	return DetectionParams{
		MaxScanRows: 20,
		MinMatches:  2,
	}
}

// headerAliases maps normalized header text to layout fields.
var headerAliases = map[string]string{
	"activo":               "name",
	"activos":              "name",
	"instrumento":          "name",
	"especie":              "name",
	"nombre":               "name",
	"asset":                "name",
	"instrument":           "name",
	"name":                 "name",
	"ticker":               "ticker",
	"simbolo":              "ticker",
	"symbol":               "ticker",
	"moneda":               "currency",
	"divisa":               "currency",
	"currency":             "currency",
	"benchmark especifico": "benchmark_specific",
	"benchmark specific":   "benchmark_specific",
	"specific benchmark":   "benchmark_specific",
	"benchmark general":    "benchmark_general",
	"general benchmark":    "benchmark_general",
	"nominal":              "nominal",
	"nominales":            "nominal",
	"cantidad":             "nominal",
	"quantity":             "nominal",
	"precio":               "price",
	"price":                "price",
}

// DetectLayout finds the header row among the leading rows and derives a layout from it.
// Group markers are assumed to carry only the name cell.
func DetectLayout(rows []models.RawRow, params DetectionParams) (Layout, error) {
	for i, row := range rows {
		if i >= params.MaxScanRows {
			break
		}

		cols := matchHeader(row)
		if len(cols) < params.MinMatches {
			continue
		}
		name, okName := cols["name"]
		cur, okCur := cols["currency"]
		if !okName || !okCur {
			continue
		}

		layout := Layout{
			HeaderRows:        i + 1,
			Name:              name,
			Currency:          cur,
			Ticker:            columnOr(cols, "ticker"),
			BenchmarkSpecific: columnOr(cols, "benchmark_specific"),
			BenchmarkGeneral:  columnOr(cols, "benchmark_general"),
			Nominal:           columnOr(cols, "nominal"),
			Price:             columnOr(cols, "price"),
			Group:             GroupRule{Label: name},
		}
		return layout, layout.Validate()
	}
	return Layout{}, ErrHeaderNotFound
}

// matchHeader returns field -> column for every recognized header cell.
// The first column wins when a field appears twice.
func matchHeader(row models.RawRow) map[string]int {
	cols := make(map[string]int)
	for col, cell := range row.Cells {
		if cell.Kind != models.CellText {
			continue
		}
		field, ok := headerAliases[normalizeHeader(cell.String())]
		if !ok {
			continue
		}
		if _, seen := cols[field]; !seen {
			cols[field] = col
		}
	}
	return cols
}

func columnOr(cols map[string]int, field string) int {
	if col, ok := cols[field]; ok {
		return col
	}
	return NoColumn
}

// normalizeHeader lowercases, strips accents and collapses spaces.
func normalizeHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
