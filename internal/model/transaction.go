package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one atomic economic event: a set of splits dated at one
// instant. Template transactions are recurring blueprints and are excluded
// from balance queries. Exported is cleared and ModifiedAt refreshed
// whenever an owned split changes.
type Transaction struct {
	ID          int64
	UID         string
	Timestamp   time.Time
	Currency    string
	Description string
	Template    bool
	Exported    bool
	ModifiedAt  time.Time
}

// NewTransaction builds a transaction with a fresh UID.
func NewTransaction(timestamp time.Time, currency, description string) *Transaction {
	return &Transaction{
		UID:         uuid.NewString(),
		Timestamp:   timestamp,
		Currency:    currency,
		Description: description,
		ModifiedAt:  time.Now(),
	}
}

// ValidateBalanced checks the double-entry balance law: the signed sum of
// the splits' values (debit positive, credit negative) in the transaction
// currency must be exactly zero. Splits whose value carries a different
// currency fail with ErrCurrencyMismatch before any summing happens.
func ValidateBalanced(currency string, splits []*Split) error {
	if len(splits) == 0 {
		return fmt.Errorf("%w: transaction owns no splits", ErrInvariantViolation)
	}
	total := decimal.Zero
	for _, s := range splits {
		if s.Value.Currency() != currency {
			return fmt.Errorf("split %s holds %s, transaction holds %s: %w",
				s.UID, s.Value.Currency(), currency, ErrCurrencyMismatch)
		}
		total = total.Add(s.SignedValue())
	}
	if !total.IsZero() {
		return fmt.Errorf("%w (off by %s %s)", ErrUnbalancedTransaction, total, currency)
	}
	return nil
}
