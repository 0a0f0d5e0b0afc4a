package models

import "github.com/shopspring/decimal"

// Holding is the user input for one selected instrument.
type Holding struct {
	// Name matches Instrument.Name in the catalog.
	Name string `json:"name"`
	// Nominal is the quantity held. Nil falls back to the catalog value.
	Nominal *decimal.Decimal `json:"nominal,omitempty"`
	// Price is the unit price in the instrument currency. Nil falls back to the catalog value.
	Price *decimal.Decimal `json:"price,omitempty"`
}

// Position is a selected instrument with its resolved nominal and price.
type Position struct {
	Instrument
	// Nominal is the quantity held.
	Nominal decimal.Decimal `json:"nominal"`
	// Price is the unit price in the instrument currency.
	Price decimal.Decimal `json:"price"`
}
