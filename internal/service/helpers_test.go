package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/store"
	"github.com/tallybook/tally/migrations"
)

// newTestService opens a fresh migrated database in a temp directory and
// wires the full service stack on top of it.
func newTestService(t *testing.T) (*Service, store.Repository) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"), migrations.FS)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return NewService(st, config.NewDefault()), st
}

func createAccount(t *testing.T, svc *Service, name string, accType model.AccountType, currency string) *model.Account {
	t.Helper()

	acc, err := svc.Account.CreateAccount(name, accType, currency, "", nil, false)
	if err != nil {
		t.Fatalf("create account %s: %v", name, err)
	}
	return acc
}

func createChildAccount(t *testing.T, svc *Service, name string, accType model.AccountType, parent *model.Account) *model.Account {
	t.Helper()

	acc, err := svc.Account.CreateAccount(name, accType, "", "", &parent.UID, false)
	if err != nil {
		t.Fatalf("create account %s: %v", name, err)
	}
	return acc
}

func amount(t *testing.T, s, currency string) model.Money {
	t.Helper()

	m, err := model.ParseMoney(s, currency)
	if err != nil {
		t.Fatalf("parse amount %q: %v", s, err)
	}
	return m
}

// postTransaction records a simple two-split transaction moving value into
// debitAcc and out of creditAcc.
func postTransaction(t *testing.T, svc *Service, ts time.Time, amt string, debitAcc, creditAcc *model.Account, description string) *model.Transaction {
	t.Helper()

	m := amount(t, amt, "USD")
	tx := model.NewTransaction(ts, "USD", description)
	splits := []*model.Split{
		model.NewSplit(m, debitAcc.UID, model.Debit),
		model.NewSplit(m, creditAcc.UID, model.Credit),
	}
	if err := svc.Transaction.CreateTransaction(tx, splits); err != nil {
		t.Fatalf("create transaction %q: %v", description, err)
	}
	return tx
}

func assertBalance(t *testing.T, svc *Service, accounts []*model.Account, normal model.SplitType, w Window, want string) {
	t.Helper()

	uids := make([]string, len(accounts))
	for i, a := range accounts {
		uids[i] = a.UID
	}
	got, err := svc.Balance.ComputeBalance(uids, "USD", normal, w)
	if err != nil {
		t.Fatalf("compute balance: %v", err)
	}
	if got.String() != want {
		t.Errorf("balance = %s, want %s", got, want)
	}
}
