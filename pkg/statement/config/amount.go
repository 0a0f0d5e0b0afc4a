package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/focusim/statement-go/pkg/statement"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrInvalidAmount indicates a value that is not a number in any accepted notation.
var ErrInvalidAmount = errors.New("invalid amount")

// DefaultLocale is the locale amounts are read in when none is configured.
const DefaultLocale = "es-AR"

// NumberFormat holds the separators a locale writes numbers with.
type NumberFormat struct {
	Decimal rune
	Group   rune
}

// DefaultNumberFormat is the es-AR notation: 1.234,56.
var DefaultNumberFormat = NumberFormat{Decimal: ',', Group: '.'}

// NumberFormatFor derives the separators of a BCP 47 locale from its CLDR
// number format.
func NumberFormatFor(locale string) (NumberFormat, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return NumberFormat{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	// e.g. "1.234.567,5", "1,234,567.5", "1 234 567,5"
	sample := []rune(message.NewPrinter(tag).Sprint(number.Decimal(1234567.5, number.Scale(1))))
	if len(sample) < 3 {
		return DefaultNumberFormat, nil
	}
	nf := NumberFormat{Decimal: sample[len(sample)-2]}
	for _, r := range sample[:len(sample)-2] {
		if !unicode.IsDigit(r) {
			nf.Group = r
			break
		}
	}
	return nf, nil
}

// ParseAmount parses a number written in the notation of nf.
// When both '.' and ',' appear the last one is the decimal separator
// ("1.234,56" and "1,234.56" read the same everywhere). A lone separator is
// read the way the locale writes it: under es-AR "1.450" is 1450 and
// "1,45" is 1.45, under en-US "1,450" is 1450 and "1.45" is 1.45.
// A separator repeated more than once is always a thousands separator.
func ParseAmount(s string, nf NumberFormat) (decimal.Decimal, error) {
	if nf.Decimal == 0 {
		nf = DefaultNumberFormat
	}
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' || r == ' ' {
			return -1
		}
		if r == nf.Group && r != '.' && r != ',' {
			return -1
		}
		if r == nf.Decimal && r != '.' && r != ',' {
			return '.'
		}
		return r
	}, s)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		clean = lone(clean, ',', nf)
	case lastDot >= 0:
		clean = lone(clean, '.', nf)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// lone resolves a number carrying a single kind of separator into '.' notation.
func lone(s string, sep rune, nf NumberFormat) string {
	if strings.Count(s, string(sep)) > 1 || sep == nf.Group {
		return strings.ReplaceAll(s, string(sep), "")
	}
	return strings.Replace(s, string(sep), ".", 1)
}

// ParseExchangeRate validates the ARS per USD rate entered by the user.
// A value that is not a number is rejected; zero or negative values are
// returned as is, the valuation then prices ARS positions at zero.
func ParseExchangeRate(s string, nf NumberFormat) (decimal.Decimal, error) {
	rate, err := ParseAmount(s, nf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", statement.ErrInvalidExchangeRate, s)
	}
	return rate, nil
}
