package statement

import (
	"errors"
	"fmt"

	"github.com/focusim/statement-go/pkg/statement/parser"
)

// ErrSourceNotFound indicates the catalog file does not exist.
var ErrSourceNotFound = errors.New("source not found")

// ErrSourceTooLarge indicates a remote catalog larger than the loader accepts.
var ErrSourceTooLarge = errors.New("source too large")

// ErrInvalidFormat indicates the source is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInvalidExchangeRate indicates an exchange rate that is not a number.
var ErrInvalidExchangeRate = errors.New("invalid exchange rate")

// ErrInvalidOptions indicates unusable statement options.
var ErrInvalidOptions = errors.New("invalid options")

// Errors raised by the parser, re-exported for callers of this package.
var (
	ErrSheetNotFound  = parser.ErrSheetNotFound
	ErrInvalidLayout  = parser.ErrInvalidLayout
	ErrHeaderNotFound = parser.ErrHeaderNotFound
)

// SourceError represents a failure to acquire or read a catalog.
type SourceError struct {
	Source string
	Stage  string // "fetch", "read", "open", "parse"
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("loading %q (%s): %v", e.Source, e.Stage, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(source, stage string, err error) *SourceError {
	return &SourceError{
		Source: source,
		Stage:  stage,
		Err:    err,
	}
}
