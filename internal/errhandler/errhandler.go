package errhandler

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/tallybook/tally/internal/model"
)

// Display prints an error in the CLI's house style, keyed by its place in
// the error taxonomy.
func Display(err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		pterm.Error.Println(err)
	case errors.Is(err, model.ErrCurrencyMismatch):
		pterm.Error.Printfln("Currency mismatch: %v", err)
	case errors.Is(err, model.ErrInvariantViolation):
		pterm.Error.Printfln("Rejected: %v", err)
	default:
		pterm.Error.Println(err)
	}
}
