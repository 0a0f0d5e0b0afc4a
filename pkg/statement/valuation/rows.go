package valuation

import (
	"fmt"
	"strings"

	"github.com/focusim/statement-go/pkg/statement/models"
)

// TotalsPlacement controls where synthetic group total rows are interleaved.
type TotalsPlacement string

const (
	// TotalsNone emits instrument rows only.
	TotalsNone TotalsPlacement = "none"
	// TotalsBefore emits each group's total ahead of its instruments.
	TotalsBefore TotalsPlacement = "before"
	// TotalsAfter emits each group's total after its instruments.
	TotalsAfter TotalsPlacement = "after"
	// TotalsBoth emits the total on both sides.
	TotalsBoth TotalsPlacement = "both"
)

// ParsePlacement maps a configuration value to a placement. Empty selects TotalsNone.
func ParsePlacement(s string) (TotalsPlacement, error) {
	switch p := TotalsPlacement(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return TotalsNone, nil
	case TotalsNone, TotalsBefore, TotalsAfter, TotalsBoth:
		return p, nil
	default:
		return "", fmt.Errorf("invalid totals placement %q (must be none, before, after or both)", s)
	}
}

func (p TotalsPlacement) before() bool { return p == TotalsBefore || p == TotalsBoth }
func (p TotalsPlacement) after() bool  { return p == TotalsAfter || p == TotalsBoth }

// TotalRowName is the name of the synthetic row summarizing a group.
func TotalRowName(group string) string {
	return strings.TrimSpace("TOTAL " + group)
}

// Rows lays the valuation out for rendering: instruments grouped in first-seen
// group order, each carrying its group's subtotal, with optional total rows.
// The group aggregates of v are the only source of the subtotals.
func Rows(v models.Valuation, placement TotalsPlacement) []models.ReportRow {
	var rows []models.ReportRow
	for _, g := range v.Groups {
		if placement.before() {
			rows = append(rows, totalRow(g))
		}
		for _, in := range v.Instruments {
			if in.Group == g.Group {
				rows = append(rows, instrumentRow(in, g))
			}
		}
		if placement.after() {
			rows = append(rows, totalRow(g))
		}
	}
	return rows
}

func instrumentRow(in models.ValuedInstrument, g models.GroupAggregate) models.ReportRow {
	return models.ReportRow{
		Kind:              models.RowInstrument,
		Name:              in.Name,
		Group:             in.Group,
		Currency:          in.Currency,
		Nominal:           in.Nominal,
		Price:             in.Price,
		AmountUSD:         in.AmountUSD,
		Weight:            in.Weight,
		GroupTotalUSD:     g.TotalUSD,
		GroupWeight:       g.Weight,
		BenchmarkSpecific: in.BenchmarkSpecific,
		BenchmarkGeneral:  in.BenchmarkGeneral,
	}
}

// totalRow weighs 100% of its own group, or zero for a group worth nothing.
func totalRow(g models.GroupAggregate) models.ReportRow {
	return models.ReportRow{
		Kind:          models.RowGroupTotal,
		Name:          TotalRowName(g.Group),
		Group:         g.Group,
		AmountUSD:     g.TotalUSD,
		Weight:        share(g.TotalUSD, g.TotalUSD),
		GroupTotalUSD: g.TotalUSD,
		GroupWeight:   g.Weight,
	}
}
