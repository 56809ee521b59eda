package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AccountType is the closed set of account kinds. Each type carries a fixed
// normal-balance convention, see NormalBalance.
type AccountType string

const (
	AccountAsset      AccountType = "ASSET"
	AccountBank       AccountType = "BANK"
	AccountCash       AccountType = "CASH"
	AccountCredit     AccountType = "CREDIT"
	AccountLiability  AccountType = "LIABILITY"
	AccountEquity     AccountType = "EQUITY"
	AccountIncome     AccountType = "INCOME"
	AccountExpense    AccountType = "EXPENSE"
	AccountReceivable AccountType = "RECEIVABLE"
	AccountPayable    AccountType = "PAYABLE"
	AccountTrading    AccountType = "TRADING"
	AccountCurrency   AccountType = "CURRENCY"
	AccountStock      AccountType = "STOCK"
	AccountMutual     AccountType = "MUTUAL"
	AccountRoot       AccountType = "ROOT"
)

var accountTypes = map[AccountType]bool{
	AccountAsset: true, AccountBank: true, AccountCash: true,
	AccountCredit: true, AccountLiability: true, AccountEquity: true,
	AccountIncome: true, AccountExpense: true, AccountReceivable: true,
	AccountPayable: true, AccountTrading: true, AccountCurrency: true,
	AccountStock: true, AccountMutual: true, AccountRoot: true,
}

func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if !accountTypes[t] {
		return "", fmt.Errorf("invalid account type %q", s)
	}
	return t, nil
}

func (t AccountType) Valid() bool { return accountTypes[t] }

// NormalBalance maps an account type to the split direction under which its
// balance is conventionally reported positive. This mapping is the single
// source of truth; the balance engine and the CLI both consult it.
func NormalBalance(t AccountType) SplitType {
	switch t {
	case AccountLiability, AccountCredit, AccountPayable, AccountIncome, AccountEquity:
		return Credit
	default:
		return Debit
	}
}

// Account is a node in the typed account forest. ParentUID is nil for root
// accounts. Accounts reference their splits by UID only and never own them.
type Account struct {
	ID          int64
	UID         string
	Name        string
	Type        AccountType
	ParentUID   *string
	Currency    string
	Description string
	Hidden      bool
	Placeholder bool
}

// NewAccount builds an account with a fresh UID.
func NewAccount(name string, t AccountType, currency string) *Account {
	return &Account{
		UID:      uuid.NewString(),
		Name:     name,
		Type:     t,
		Currency: currency,
	}
}

func (a *Account) Validate() error {
	if strings.TrimSpace(a.UID) == "" {
		return fmt.Errorf("account has no uid")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("account name is empty")
	}
	if !a.Type.Valid() {
		return fmt.Errorf("invalid account type %q", a.Type)
	}
	if len(a.Currency) != 3 {
		return fmt.Errorf("invalid currency code %q", a.Currency)
	}
	return nil
}
