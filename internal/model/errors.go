package model

import (
	"errors"
	"fmt"
)

var (
	ErrCurrencyMismatch   = errors.New("currency mismatch")
	ErrNotFound           = errors.New("record not found")
	ErrInvariantViolation = errors.New("ledger invariant violation")

	ErrUnbalancedTransaction = fmt.Errorf("%w: splits do not sum to zero", ErrInvariantViolation)
	ErrAccountHasSplits      = fmt.Errorf("%w: account still owns splits", ErrInvariantViolation)
	ErrHierarchyCycle        = fmt.Errorf("%w: account hierarchy would contain a cycle", ErrInvariantViolation)
)
