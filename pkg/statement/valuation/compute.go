package valuation

import (
	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/shopspring/decimal"
)

// Compute values every position in USD and derives instrument and group weights.
// It is a pure function of its inputs and never fails:
// unknown currencies and ARS positions under a non-positive rate value to zero,
// negative nominals or prices are treated as zero,
// and every weight is zero when the total is zero.
func Compute(positions []models.Position, rate decimal.Decimal, policy models.Policy) models.Valuation {
	if policy == "" {
		policy = DefaultPolicy
	}

	v := models.Valuation{
		Instruments:  make([]models.ValuedInstrument, 0, len(positions)),
		Groups:       []models.GroupAggregate{},
		TotalUSD:     decimal.Zero,
		ExchangeRate: rate,
		Policy:       policy,
	}

	for _, p := range positions {
		p.Nominal = nonNegative(p.Nominal)
		p.Price = nonNegative(p.Price)
		amount := AmountUSD(p, rate, policy)
		v.TotalUSD = v.TotalUSD.Add(amount)
		v.Instruments = append(v.Instruments, models.ValuedInstrument{Position: p, AmountUSD: amount})
	}

	for i := range v.Instruments {
		v.Instruments[i].Weight = share(v.Instruments[i].AmountUSD, v.TotalUSD)
	}
	v.Groups = aggregate(v.Instruments, v.TotalUSD)
	return v
}

// AmountUSD values a single position.
func AmountUSD(p models.Position, rate decimal.Decimal, policy models.Policy) decimal.Decimal {
	switch p.Currency {
	case models.USD:
		return p.Nominal.Mul(p.Price)
	case models.ARS:
		if !rate.IsPositive() {
			return decimal.Zero
		}
		if policy == models.PolicyNominalOnly {
			return p.Nominal.Div(rate)
		}
		return p.Nominal.Mul(p.Price).Div(rate)
	default:
		return decimal.Zero
	}
}

// aggregate partitions instruments by group, keeping first-seen group order.
func aggregate(instruments []models.ValuedInstrument, total decimal.Decimal) []models.GroupAggregate {
	index := make(map[string]int)
	groups := []models.GroupAggregate{}
	for _, in := range instruments {
		i, ok := index[in.Group]
		if !ok {
			i = len(groups)
			index[in.Group] = i
			groups = append(groups, models.GroupAggregate{Group: in.Group, TotalUSD: decimal.Zero})
		}
		groups[i].TotalUSD = groups[i].TotalUSD.Add(in.AmountUSD)
		groups[i].Count++
	}

	for i := range groups {
		groups[i].Weight = share(groups[i].TotalUSD, total)
	}
	return groups
}

// share returns part/total, or zero when total is zero.
func share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
