package service

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/tallybook/tally/internal/model"
)

func TestCreateAccountCurrencyFallback(t *testing.T) {
	svc, _ := newTestService(t)

	parent := createAccount(t, svc, "Assets", model.AccountAsset, "EUR")

	child := createChildAccount(t, svc, "Girokonto", model.AccountBank, parent)
	if child.Currency != "EUR" {
		t.Errorf("child currency = %s, want parent's EUR", child.Currency)
	}

	orphan := createAccount(t, svc, "Wallet", model.AccountCash, "")
	if orphan.Currency != "USD" {
		t.Errorf("orphan currency = %s, want configured default USD", orphan.Currency)
	}
}

func TestDeleteAccountRefusesWithSplits(t *testing.T) {
	svc, _ := newTestService(t)

	checking := createAccount(t, svc, "Checking", model.AccountBank, "USD")
	opening := createAccount(t, svc, "Opening Balances", model.AccountEquity, "USD")
	tx := postTransaction(t, svc, time.Now(), "100.00", checking, opening, "deposit")

	err := svc.Account.DeleteAccount(checking.UID)
	if !errors.Is(err, model.ErrAccountHasSplits) {
		t.Fatalf("DeleteAccount = %v, want ErrAccountHasSplits", err)
	}

	// Once the splits are gone the account can be removed.
	if err := svc.Transaction.DeleteTransaction(tx.UID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}
	if err := svc.Account.DeleteAccount(checking.UID); err != nil {
		t.Fatalf("DeleteAccount after clearing splits: %v", err)
	}
}

func TestDeleteAccountNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Account.DeleteAccount("no-such-account"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("DeleteAccount = %v, want ErrNotFound", err)
	}
}

func TestUpdateAccountRejectsCycle(t *testing.T) {
	svc, _ := newTestService(t)

	assets := createAccount(t, svc, "Assets", model.AccountAsset, "USD")
	bank := createChildAccount(t, svc, "Bank", model.AccountBank, assets)
	checking := createChildAccount(t, svc, "Checking", model.AccountBank, bank)

	// Reparenting Assets under its own grandchild closes a loop.
	assets.ParentUID = &checking.UID
	if err := svc.Account.UpdateAccount(assets); !errors.Is(err, model.ErrHierarchyCycle) {
		t.Errorf("UpdateAccount = %v, want ErrHierarchyCycle", err)
	}

	// Self-parenting is the smallest loop.
	bank.ParentUID = &bank.UID
	if err := svc.Account.UpdateAccount(bank); !errors.Is(err, model.ErrHierarchyCycle) {
		t.Errorf("UpdateAccount = %v, want ErrHierarchyCycle", err)
	}
}

func TestUpdateAccountReparent(t *testing.T) {
	svc, _ := newTestService(t)

	assets := createAccount(t, svc, "Assets", model.AccountAsset, "USD")
	cash := createAccount(t, svc, "Cash", model.AccountCash, "USD")

	cash.ParentUID = &assets.UID
	if err := svc.Account.UpdateAccount(cash); err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}

	got, err := svc.Account.GetAccountByUID(cash.UID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.ParentUID == nil || *got.ParentUID != assets.UID {
		t.Error("reparent did not persist")
	}
}

func TestDescendantsOf(t *testing.T) {
	svc, _ := newTestService(t)

	assets := createAccount(t, svc, "Assets", model.AccountAsset, "USD")
	bank := createChildAccount(t, svc, "Bank", model.AccountBank, assets)
	checking := createChildAccount(t, svc, "Checking", model.AccountBank, bank)
	cash := createChildAccount(t, svc, "Cash", model.AccountCash, assets)
	createAccount(t, svc, "Unrelated", model.AccountExpense, "USD")

	got, err := svc.Account.DescendantsOf(assets.UID)
	if err != nil {
		t.Fatalf("DescendantsOf: %v", err)
	}

	want := []string{bank.UID, checking.UID, cash.UID}
	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %d descendants, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("descendants[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCreateAccountDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)

	createAccount(t, svc, "Checking", model.AccountBank, "USD")
	if _, err := svc.Account.CreateAccount("Checking", model.AccountBank, "USD", "", nil, false); err == nil {
		t.Error("duplicate account name was accepted")
	}
}
