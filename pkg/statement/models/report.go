package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RowKind distinguishes instrument rows from synthetic group total rows.
type RowKind string

const (
	// RowInstrument is a valued instrument.
	RowInstrument RowKind = "instrument"
	// RowGroupTotal is a synthetic subtotal row for a group.
	RowGroupTotal RowKind = "group_total"
)

// ReportRow is one line of the rendered statement table.
type ReportRow struct {
	Kind     RowKind  `json:"kind"`
	Name     string   `json:"name"`
	Group    string   `json:"group"`
	Currency Currency `json:"currency,omitempty"`
	// Nominal and Price are zero on group total rows.
	Nominal   decimal.Decimal `json:"nominal"`
	Price     decimal.Decimal `json:"price"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
	// Weight is the share of the portfolio for instruments, 1 for group totals.
	Weight        decimal.Decimal `json:"weight"`
	GroupTotalUSD decimal.Decimal `json:"group_total_usd"`
	GroupWeight   decimal.Decimal `json:"group_weight"`

	BenchmarkSpecific string `json:"benchmark_specific,omitempty"`
	BenchmarkGeneral  string `json:"benchmark_general,omitempty"`
}

// Header holds the statement identification printed above the table.
type Header struct {
	// Title is the report title.
	Title string `json:"title"`
	// Client is the account holder ("comitente").
	Client string `json:"client,omitempty"`
	// Date is the statement date.
	Date time.Time `json:"date"`
	// Source is the catalog the statement was built from.
	Source string `json:"source,omitempty"`
}

// Statement is the complete input of a renderer.
type Statement struct {
	Header    Header      `json:"header"`
	Valuation Valuation   `json:"valuation"`
	Rows      []ReportRow `json:"rows"`
	// Missing lists selected names not found in the catalog.
	Missing []string `json:"missing,omitempty"`
}
