package parser

import (
	"context"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Parse classifies rows into group markers and instruments in a single forward pass.
// Each instrument is tagged with the label of the closest preceding group marker.
// Rows that cannot be coerced into an instrument (blank name, missing currency)
// are skipped without error.
func Parse(ctx context.Context, rows []models.RawRow, layout Layout) ([]models.Record, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Ctx(ctx)

	var (
		records      []models.Record
		currentGroup string
	)
	for i, row := range rows {
		if i < layout.HeaderRows || row.IsBlank() {
			continue
		}

		if layout.Group.Match(row.Populated()) {
			currentGroup = row.At(layout.Group.Label).String()
			records = append(records, models.Record{
				Kind:  models.RecordGroup,
				Group: &models.GroupMarker{Label: currentGroup, Row: row.Index},
			})
			continue
		}

		in, ok := parseInstrument(row, layout)
		if !ok {
			logger.Debug().Int("row", row.Index).Msg("skipping row without name or currency")
			continue
		}
		in.Group = currentGroup
		if !in.Currency.IsKnown() {
			logger.Debug().Int("row", row.Index).Str("currency", in.CurrencyRaw).Msg("unrecognized currency, instrument will value to zero")
		}
		records = append(records, models.Record{Kind: models.RecordInstrument, Instrument: &in})
	}

	return records, nil
}

// parseInstrument maps a row to an instrument by column position.
func parseInstrument(row models.RawRow, layout Layout) (models.Instrument, bool) {
	name := row.At(layout.Name)
	cur := row.At(layout.Currency)
	if name.IsEmpty() || cur.IsEmpty() {
		return models.Instrument{}, false
	}

	return models.Instrument{
		Name:              name.String(),
		Ticker:            row.At(layout.Ticker).String(),
		Currency:          models.ParseCurrency(cur.String()),
		CurrencyRaw:       cur.String(),
		BenchmarkSpecific: row.At(layout.BenchmarkSpecific).String(),
		BenchmarkGeneral:  row.At(layout.BenchmarkGeneral).String(),
		Nominal:           numeric(row.At(layout.Nominal)),
		Price:             numeric(row.At(layout.Price)),
		Row:               row.Index,
	}, true
}

// numeric returns the cell as a decimal, zero for empty or non-numeric cells.
func numeric(c models.Cell) decimal.Decimal {
	if c.Kind != models.CellNumber {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(c.Text); err == nil {
		return d
	}
	return decimal.NewFromFloat(c.Number)
}
