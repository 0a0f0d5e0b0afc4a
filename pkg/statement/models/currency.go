package models

import "strings"

// Currency is the denomination of an instrument.
type Currency string

const (
	// ARS is the Argentine peso.
	ARS Currency = "ARS"
	// USD is the US dollar, the reporting unit.
	USD Currency = "USD"
	// Unknown is any currency the valuation does not handle.
	Unknown Currency = ""
)

var currencyAliases = map[string]Currency{
	"ARS":     ARS,
	"$":       ARS,
	"PESOS":   ARS,
	"USD":     USD,
	"US$":     USD,
	"U$S":     USD,
	"U$D":     USD,
	"DOLAR":   USD,
	"DÓLAR":   USD,
	"DOLARES": USD,
	"DÓLARES": USD,
}

// ParseCurrency maps a currency cell to a Currency.
// Unrecognized values map to Unknown.
func ParseCurrency(s string) Currency {
	return currencyAliases[strings.ToUpper(strings.TrimSpace(s))]
}

// IsKnown reports whether the currency takes part in valuation.
func (c Currency) IsKnown() bool {
	return c == ARS || c == USD
}
