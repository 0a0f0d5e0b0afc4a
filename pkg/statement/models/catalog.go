package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GroupMarker identifies the start of an asset-type group in the catalog sheet.
type GroupMarker struct {
	// Label is the group name, e.g. "Bonos Soberanos".
	Label string `json:"label"`
	// Row is the sheet row of the marker (1-based).
	Row int `json:"row"`
}

// Instrument is one holdable asset parsed from the catalog.
type Instrument struct {
	// Name is the display name of the instrument.
	Name string `json:"name"`
	// Ticker is the market symbol, when the sheet has one.
	Ticker string `json:"ticker,omitempty"`
	// Group is the label of the last group marker seen before this row.
	// Empty means the instrument is ungrouped.
	Group string `json:"group"`
	// Currency is the parsed denomination (Unknown when unrecognized).
	Currency Currency `json:"currency"`
	// CurrencyRaw is the currency cell as written in the sheet.
	CurrencyRaw string `json:"currency_raw"`
	// BenchmarkSpecific is carried through to the report unmodified.
	BenchmarkSpecific string `json:"benchmark_specific,omitempty"`
	// BenchmarkGeneral is carried through to the report unmodified.
	BenchmarkGeneral string `json:"benchmark_general,omitempty"`
	// Nominal is the quantity found in the sheet (zero when absent).
	Nominal decimal.Decimal `json:"nominal"`
	// Price is the unit price found in the sheet (zero when absent).
	Price decimal.Decimal `json:"price"`
	// Row is the sheet row of the instrument (1-based).
	Row int `json:"row"`
}

// RecordKind distinguishes the two kinds of parsed records.
type RecordKind string

const (
	// RecordGroup is a group marker.
	RecordGroup RecordKind = "group"
	// RecordInstrument is an instrument.
	RecordInstrument RecordKind = "instrument"
)

// Record is either a group marker or an instrument, in sheet order.
type Record struct {
	Kind       RecordKind   `json:"kind"`
	Group      *GroupMarker `json:"group,omitempty"`
	Instrument *Instrument  `json:"instrument,omitempty"`
}

// Catalog is the parsed content of a catalog sheet.
type Catalog struct {
	// Source identifies where the workbook came from (file name or URL).
	Source string `json:"source"`
	// Sheet is the parsed sheet name.
	Sheet string `json:"sheet"`
	// Records holds group markers and instruments in sheet order.
	Records []Record `json:"records"`
}

// Instruments returns the instruments of the catalog in sheet order.
func (c *Catalog) Instruments() []Instrument {
	var out []Instrument
	for _, r := range c.Records {
		if r.Kind == RecordInstrument && r.Instrument != nil {
			out = append(out, *r.Instrument)
		}
	}
	return out
}

// Groups returns the distinct group labels carried by instruments, in first-seen order.
func (c *Catalog) Groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, in := range c.Instruments() {
		if seen[in.Group] {
			continue
		}
		seen[in.Group] = true
		out = append(out, in.Group)
	}
	return out
}

// Lookup returns the first instrument whose name matches, ignoring surrounding spaces.
func (c *Catalog) Lookup(name string) (Instrument, bool) {
	name = strings.TrimSpace(name)
	for _, in := range c.Instruments() {
		if strings.TrimSpace(in.Name) == name {
			return in, true
		}
	}
	return Instrument{}, false
}
