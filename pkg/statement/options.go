// Package statement builds account statements from instrument catalog workbooks.
package statement

import (
	"fmt"
	"time"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/focusim/statement-go/pkg/statement/parser"
	"github.com/focusim/statement-go/pkg/statement/valuation"
)

// DefaultTitle is the report title used when none is configured.
const DefaultTitle = "Resumen de Cuenta"

// Options configures catalog parsing and statement assembly.
type Options struct {
	// Layout maps catalog columns. If nil, the layout is detected from the
	// header row, falling back to parser.DefaultLayout.
	Layout *parser.Layout
	// Policy is the ARS conversion rule. Empty selects valuation.DefaultPolicy.
	Policy models.Policy
	// Totals places synthetic group total rows in the report.
	Totals valuation.TotalsPlacement
	// Title, Client and Date fill the statement header.
	Title  string
	Client string
	Date   time.Time
}

// DefaultOptions returns default statement options.
func DefaultOptions() Options {
	return Options{
		Policy: valuation.DefaultPolicy,
		Totals: valuation.TotalsNone,
		Title:  DefaultTitle,
	}
}

// Validate checks the option values that are not enforced by their types.
func (o Options) Validate() error {
	if _, err := valuation.ParsePolicy(string(o.Policy)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if _, err := valuation.ParsePlacement(string(o.Totals)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.Layout != nil {
		return o.Layout.Validate()
	}
	return nil
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}
