package model

import (
	"errors"
	"testing"
	"time"
)

func debitSplit(t *testing.T, amount, currency, accountUID string) *Split {
	t.Helper()
	m, err := ParseMoney(amount, currency)
	if err != nil {
		t.Fatalf("ParseMoney(%q, %s): %v", amount, currency, err)
	}
	return NewSplit(m, accountUID, Debit)
}

func creditSplit(t *testing.T, amount, currency, accountUID string) *Split {
	t.Helper()
	sp := debitSplit(t, amount, currency, accountUID)
	sp.Type = Credit
	return sp
}

func TestValidateBalanced(t *testing.T) {
	tests := []struct {
		name    string
		splits  []*Split
		wantErr error
	}{
		{
			name: "balanced pair",
			splits: []*Split{
				debitSplit(t, "45.99", "USD", "groceries"),
				creditSplit(t, "45.99", "USD", "checking"),
			},
		},
		{
			name: "balanced three-way",
			splits: []*Split{
				debitSplit(t, "30.00", "USD", "groceries"),
				debitSplit(t, "15.99", "USD", "household"),
				creditSplit(t, "45.99", "USD", "checking"),
			},
		},
		{
			name: "unbalanced",
			splits: []*Split{
				debitSplit(t, "45.99", "USD", "groceries"),
				creditSplit(t, "45.98", "USD", "checking"),
			},
			wantErr: ErrUnbalancedTransaction,
		},
		{
			name: "one-sided",
			splits: []*Split{
				debitSplit(t, "45.99", "USD", "groceries"),
			},
			wantErr: ErrUnbalancedTransaction,
		},
		{
			name:    "no splits",
			splits:  nil,
			wantErr: ErrInvariantViolation,
		},
		{
			name: "foreign-currency value",
			splits: []*Split{
				debitSplit(t, "45.99", "EUR", "groceries"),
				creditSplit(t, "45.99", "USD", "checking"),
			},
			wantErr: ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBalanced("USD", tt.splits)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBalanced: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBalanced = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnbalancedErrorIsInvariantViolation(t *testing.T) {
	// The balance law is one of the ledger invariants, so callers matching
	// on the broad class must also catch it.
	if !errors.Is(ErrUnbalancedTransaction, ErrInvariantViolation) {
		t.Error("ErrUnbalancedTransaction should wrap ErrInvariantViolation")
	}
}

func TestSignedValue(t *testing.T) {
	d := debitSplit(t, "10.00", "USD", "a")
	if got := d.SignedValue().String(); got != "10" {
		t.Errorf("debit SignedValue = %s, want 10", got)
	}
	c := creditSplit(t, "10.00", "USD", "a")
	if got := c.SignedValue().String(); got != "-10" {
		t.Errorf("credit SignedValue = %s, want -10", got)
	}
}

func TestNewTransaction(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	tx := NewTransaction(ts, "USD", "coffee")

	if tx.UID == "" {
		t.Error("transaction has no uid")
	}
	if !tx.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", tx.Timestamp, ts)
	}
	if tx.Exported || tx.Template {
		t.Error("new transactions start unexported and non-template")
	}
}
