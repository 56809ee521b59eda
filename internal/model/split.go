package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitType is the direction of a split.
type SplitType string

const (
	Debit  SplitType = "DEBIT"
	Credit SplitType = "CREDIT"
)

func ParseSplitType(s string) (SplitType, error) {
	t := SplitType(strings.ToUpper(strings.TrimSpace(s)))
	if t != Debit && t != Credit {
		return "", fmt.Errorf("invalid split type %q", s)
	}
	return t, nil
}

// Split is one debit or credit line of a transaction. Value is expressed in
// the transaction currency, Quantity in the account currency; both describe
// the same economic movement. A split is exclusively owned by its
// transaction and references its account by UID only.
type Split struct {
	ID             int64
	UID            string
	TransactionUID string
	AccountUID     string
	Type           SplitType
	Value          Money
	Quantity       Money
	Memo           string
	CreatedAt      time.Time
}

// NewSplit builds a split with a fresh UID. Quantity starts out equal to
// value; callers set it separately when the account currency differs.
func NewSplit(value Money, accountUID string, t SplitType) *Split {
	return &Split{
		UID:        uuid.NewString(),
		AccountUID: accountUID,
		Type:       t,
		Value:      value,
		Quantity:   value,
		CreatedAt:  time.Now(),
	}
}

// SignedValue returns the split's value as a signed decimal: debits
// positive, credits negative.
func (s *Split) SignedValue() decimal.Decimal {
	d := s.Value.Decimal()
	if s.Type == Credit {
		return d.Neg()
	}
	return d
}

func (s *Split) Validate() error {
	if strings.TrimSpace(s.UID) == "" {
		return fmt.Errorf("split has no uid")
	}
	if strings.TrimSpace(s.AccountUID) == "" {
		return fmt.Errorf("split references no account")
	}
	if s.Type != Debit && s.Type != Credit {
		return fmt.Errorf("invalid split type %q", s.Type)
	}
	return nil
}
