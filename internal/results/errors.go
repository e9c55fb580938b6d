package results

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates text that is not a finite number.
	ErrInvalidInput = errors.New("results: invalid numeric input")

	// ErrNoRows indicates a reading entered before any row exists.
	ErrNoRows = errors.New("results: no rows to add readings to")

	ErrUnknownRow   = errors.New("results: no such row")
	ErrDuplicateRow = errors.New("results: row already exists")
	ErrTableFull    = errors.New("results: table full")
	ErrRowFull      = errors.New("results: row already holds every reading")

	// ErrTooFewPoints indicates fewer than two distinct x values to fit.
	ErrTooFewPoints = errors.New("results: need at least two distinct points")
)

// InputError carries the message shown next to the entry box that held
// the rejected text.
type InputError struct {
	Input   string
	Tip     string
	Wrapped error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %q", e.Wrapped, e.Input)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}
