package statement

import (
	"context"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/focusim/statement-go/pkg/statement/valuation"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Build selects the holdings from the catalog, values them and lays out the report rows.
// Degenerate input (empty selection, zero rate, unknown names) yields a valid statement;
// only invalid options are an error.
func Build(ctx context.Context, catalog *models.Catalog, holdings []models.Holding, rate decimal.Decimal, opts Options) (*models.Statement, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Ctx(ctx)

	positions, missing := Select(catalog, holdings)
	for _, name := range missing {
		logger.Warn().Str("instrument", name).Msg("selected instrument not found in catalog")
	}
	if !rate.IsPositive() && hasCurrency(positions, models.ARS) {
		logger.Warn().Str("rate", rate.String()).Msg("exchange rate is not positive, ARS positions value to zero")
	}

	v := valuation.Compute(positions, rate, opts.Policy)
	st := &models.Statement{
		Header: models.Header{
			Title:  opts.title(),
			Client: opts.Client,
			Date:   opts.Date,
			Source: catalog.Source,
		},
		Valuation: v,
		Rows:      valuation.Rows(v, opts.Totals),
		Missing:   missing,
	}

	logger.Info().
		Int("positions", len(v.Instruments)).
		Int("groups", len(v.Groups)).
		Str("total_usd", v.TotalUSD.StringFixed(2)).
		Msg("statement built")
	return st, nil
}

func hasCurrency(positions []models.Position, cur models.Currency) bool {
	for _, p := range positions {
		if p.Currency == cur {
			return true
		}
	}
	return false
}
