// Package output renders statements as JSON, Markdown, Excel and PDF.
package output

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the locale used for numbers when none is configured.
const DefaultLocale = "es-AR"

// DateLayout is the date format printed in statement headers.
const DateLayout = "02/01/2006"

// Columns are the statement table headings, in order.
var Columns = []string{
	"Activo",
	"Nominales",
	"Precio",
	"Monto",
	"% Indiv.",
	"Monto Grupal",
	"% Grupal",
	"Benchmark Específico",
	"Benchmark General",
}

// Formatter formats quantities for a locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	// Currency is the ISO code amounts are expressed in.
	Currency string
}

// NewFormatter returns a formatter for a BCP 47 locale such as "es-AR" or "en-US".
func NewFormatter(locale string) (Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return Formatter{tag: tag, printer: message.NewPrinter(tag), Currency: money.USD}, nil
}

// DefaultFormatter returns the formatter for DefaultLocale.
func DefaultFormatter() Formatter {
	f, _ := NewFormatter(DefaultLocale)
	return f
}

func (f Formatter) Locale() string {
	return f.tag.String()
}

// Number formats d with exactly places fraction digits and locale grouping.
func (f Formatter) Number(d decimal.Decimal, places int) string {
	if f.printer == nil {
		return d.StringFixed(int32(places))
	}
	return f.printer.Sprint(number.Decimal(d.Round(int32(places)).InexactFloat64(), number.Scale(places)))
}

// Amount formats a value in the formatter currency, rounded to the
// currency's minor unit.
func (f Formatter) Amount(d decimal.Decimal) string {
	m := f.money(d, f.Currency)
	return f.Number(majorUnits(m), m.Currency().Fraction)
}

// Money formats a value prefixed with the currency code, e.g. "USD 1.234,50".
func (f Formatter) Money(d decimal.Decimal) string {
	return f.MoneyIn(d, f.Currency)
}

// MoneyIn formats a value in the given ISO currency, e.g. "ARS 1.450,50".
func (f Formatter) MoneyIn(d decimal.Decimal, code string) string {
	m := f.money(d, code)
	return m.Currency().Code + " " + f.Number(majorUnits(m), m.Currency().Fraction)
}

// money converts d to minor units of the currency, rounding half away from zero.
// Unknown codes fall back to USD.
func (f Formatter) money(d decimal.Decimal, code string) *money.Money {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code)
}

func majorUnits(m *money.Money) decimal.Decimal {
	return decimal.New(m.Amount(), -int32(m.Currency().Fraction))
}

// Percent formats a weight (0.1234) as a percentage ("12,34%").
func (f Formatter) Percent(w decimal.Decimal) string {
	return f.Number(w.Shift(2), 2) + "%"
}

// Rate formats the exchange rate as pesos per dollar, e.g. "ARS 1.450,50 por USD".
func (f Formatter) Rate(rate decimal.Decimal) string {
	return f.MoneyIn(rate, money.ARS) + " por " + f.Currency
}

func (f Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// tableRow is a statement row formatted for text renderers.
type tableRow struct {
	Cells []string
	Total bool
}

// table formats the statement rows under Columns.
func (f Formatter) table(st *models.Statement) []tableRow {
	rows := make([]tableRow, 0, len(st.Rows))
	for _, r := range st.Rows {
		if r.Kind == models.RowGroupTotal {
			rows = append(rows, tableRow{Total: true, Cells: []string{
				r.Name, "", "",
				f.Amount(r.AmountUSD), f.Percent(r.Weight),
				f.Amount(r.GroupTotalUSD), f.Percent(r.GroupWeight),
				"", "",
			}})
			continue
		}
		rows = append(rows, tableRow{Cells: []string{
			r.Name,
			f.Number(r.Nominal, 2),
			f.Number(r.Price, 2),
			f.Amount(r.AmountUSD),
			f.Percent(r.Weight),
			f.Amount(r.GroupTotalUSD),
			f.Percent(r.GroupWeight),
			r.BenchmarkSpecific,
			r.BenchmarkGeneral,
		}})
	}
	return rows
}

// footer is the TOTALES line: portfolio total and its share in both amount columns.
func (f Formatter) footer(st *models.Statement) []string {
	total := st.Valuation.TotalUSD
	weight := totalWeight(total)
	return []string{"TOTALES", "", "", f.Money(total), f.Percent(weight), f.Money(total), f.Percent(weight), "", ""}
}

func totalWeight(total decimal.Decimal) decimal.Decimal {
	if total.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}
