package models

import "github.com/shopspring/decimal"

// Policy selects how ARS positions are converted to USD.
type Policy string

const (
	// PolicyPriceTimesNominal values ARS positions as nominal*price/rate.
	PolicyPriceTimesNominal Policy = "price"
	// PolicyNominalOnly values ARS positions as nominal/rate, the nominal being an ARS total.
	PolicyNominalOnly Policy = "nominal"
)

// ValuedInstrument is a position with its USD valuation and weight.
type ValuedInstrument struct {
	Position
	// AmountUSD is the position value in USD.
	AmountUSD decimal.Decimal `json:"amount_usd"`
	// Weight is AmountUSD over the portfolio total (0 when the total is 0).
	Weight decimal.Decimal `json:"weight"`
}

// GroupAggregate is the subtotal of one group.
type GroupAggregate struct {
	// Group is the group label ("" for ungrouped instruments).
	Group string `json:"group"`
	// TotalUSD is the sum of member amounts.
	TotalUSD decimal.Decimal `json:"total_usd"`
	// Weight is TotalUSD over the portfolio total (0 when the total is 0).
	Weight decimal.Decimal `json:"weight"`
	// Count is the number of member instruments.
	Count int `json:"count"`
}

// Valuation is the result of valuing a selection.
type Valuation struct {
	// Instruments holds valued positions in selection order.
	Instruments []ValuedInstrument `json:"instruments"`
	// Groups holds one aggregate per group, in first-seen order.
	Groups []GroupAggregate `json:"groups"`
	// TotalUSD is the portfolio total.
	TotalUSD decimal.Decimal `json:"total_usd"`
	// ExchangeRate is the ARS per USD rate used.
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	// Policy is the ARS conversion rule used.
	Policy Policy `json:"policy"`
}

// Group returns the aggregate for a group label.
func (v Valuation) Group(label string) (GroupAggregate, bool) {
	for _, g := range v.Groups {
		if g.Group == label {
			return g, true
		}
	}
	return GroupAggregate{}, false
}
