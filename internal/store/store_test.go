package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open(filepath.Join(t.TempDir(), "ledger.db"), migrations.FS)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func saveAccount(t *testing.T, st *Store, name string, accType model.AccountType) *model.Account {
	t.Helper()

	acc := model.NewAccount(name, accType, "USD")
	if _, err := st.SaveAccount(acc); err != nil {
		t.Fatalf("save account %s: %v", name, err)
	}
	return acc
}

func saveTransactionWithSplits(t *testing.T, st *Store, debitAcc, creditAcc *model.Account, cents int64) *model.Transaction {
	t.Helper()

	tx := model.NewTransaction(time.Now(), "USD", "test movement")
	if _, err := st.SaveTransaction(tx); err != nil {
		t.Fatalf("save transaction: %v", err)
	}

	m := model.MoneyFromMinorUnits(cents, "USD")
	for _, sp := range []*model.Split{
		model.NewSplit(m, debitAcc.UID, model.Debit),
		model.NewSplit(m, creditAcc.UID, model.Credit),
	} {
		sp.TransactionUID = tx.UID
		if _, err := st.SaveSplit(sp); err != nil {
			t.Fatalf("save split: %v", err)
		}
	}
	return tx
}

func TestAccountIDTranslation(t *testing.T) {
	st := newTestStore(t)

	acc := saveAccount(t, st, "Checking", model.AccountBank)
	if acc.ID == 0 {
		t.Fatal("SaveAccount did not assign a row id")
	}

	uid, err := st.AccountUIDFromID(acc.ID)
	if err != nil {
		t.Fatalf("AccountUIDFromID: %v", err)
	}
	if uid != acc.UID {
		t.Errorf("uid = %s, want %s", uid, acc.UID)
	}

	if _, err := st.AccountUIDFromID(99999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("AccountUIDFromID(99999) = %v, want ErrNotFound", err)
	}
}

func TestTransactionIDTranslation(t *testing.T) {
	st := newTestStore(t)

	a := saveAccount(t, st, "A", model.AccountBank)
	b := saveAccount(t, st, "B", model.AccountEquity)
	tx := saveTransactionWithSplits(t, st, a, b, 100)

	id, err := st.TransactionIDFromUID(tx.UID)
	if err != nil {
		t.Fatalf("TransactionIDFromUID: %v", err)
	}
	uid, err := st.TransactionUIDFromID(id)
	if err != nil {
		t.Fatalf("TransactionUIDFromID: %v", err)
	}
	if uid != tx.UID {
		t.Errorf("round trip uid = %s, want %s", uid, tx.UID)
	}

	if _, err := st.TransactionIDFromUID("missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("TransactionIDFromUID = %v, want ErrNotFound", err)
	}
	if _, err := st.TransactionUIDFromID(99999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("TransactionUIDFromID = %v, want ErrNotFound", err)
	}
}

func TestSaveTransactionUpsertKeepsSplits(t *testing.T) {
	st := newTestStore(t)

	a := saveAccount(t, st, "A", model.AccountBank)
	b := saveAccount(t, st, "B", model.AccountEquity)
	tx := saveTransactionWithSplits(t, st, a, b, 100)

	// Re-saving under the same uid must update in place without firing
	// the split cascade.
	tx.Description = "renamed"
	if _, err := st.SaveTransaction(tx); err != nil {
		t.Fatalf("re-save transaction: %v", err)
	}

	got, err := st.GetTransactionByUID(tx.UID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if got.Description != "renamed" {
		t.Errorf("description = %q, want renamed", got.Description)
	}

	splits, err := st.SplitsForTransaction(tx.UID)
	if err != nil {
		t.Fatalf("splits for transaction: %v", err)
	}
	if len(splits) != 2 {
		t.Errorf("upsert dropped splits: got %d, want 2", len(splits))
	}
}

func TestSaveAccountUpsertKeepsSplits(t *testing.T) {
	st := newTestStore(t)

	a := saveAccount(t, st, "A", model.AccountBank)
	b := saveAccount(t, st, "B", model.AccountEquity)
	saveTransactionWithSplits(t, st, a, b, 100)

	a.Name = "A renamed"
	if _, err := st.SaveAccount(a); err != nil {
		t.Fatalf("re-save account: %v", err)
	}

	n, err := st.CountSplitsForAccount(a.UID)
	if err != nil {
		t.Fatalf("count splits: %v", err)
	}
	if n != 1 {
		t.Errorf("upsert dropped splits: got %d, want 1", n)
	}
}

func TestSaveSplitReplacesByUID(t *testing.T) {
	st := newTestStore(t)

	a := saveAccount(t, st, "A", model.AccountBank)
	b := saveAccount(t, st, "B", model.AccountEquity)
	tx := saveTransactionWithSplits(t, st, a, b, 100)

	splits, err := st.SplitsForTransaction(tx.UID)
	if err != nil {
		t.Fatalf("splits for transaction: %v", err)
	}

	edited := splits[0]
	edited.Memo = "edited"
	edited.Value = model.MoneyFromMinorUnits(250, "USD")
	edited.Quantity = edited.Value
	if _, err := st.SaveSplit(edited); err != nil {
		t.Fatalf("re-save split: %v", err)
	}

	got, err := st.GetSplitByUID(edited.UID)
	if err != nil {
		t.Fatalf("get split: %v", err)
	}
	if got.Memo != "edited" || got.Value.Numerator() != 250 {
		t.Errorf("split not replaced: memo=%q value=%d", got.Memo, got.Value.Numerator())
	}

	n, err := st.CountSplitsForTransaction(tx.UID)
	if err != nil {
		t.Fatalf("count splits: %v", err)
	}
	if n != 2 {
		t.Errorf("replace duplicated the split: got %d, want 2", n)
	}
}

func TestExecTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)

	acc := model.NewAccount("Doomed", model.AccountBank, "USD")
	err := st.ExecTx(func(repo Repository) error {
		if _, err := repo.SaveAccount(acc); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	if err == nil {
		t.Fatal("ExecTx swallowed the error")
	}

	if _, err := st.GetAccountByUID(acc.UID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("rolled-back account is visible: %v", err)
	}
}

func TestExecTxRejectsNesting(t *testing.T) {
	st := newTestStore(t)

	err := st.ExecTx(func(repo Repository) error {
		return repo.ExecTx(func(Repository) error { return nil })
	})
	if err == nil {
		t.Error("nested ExecTx was accepted")
	}
}

func TestGetByID(t *testing.T) {
	st := newTestStore(t)

	a := saveAccount(t, st, "A", model.AccountBank)
	b := saveAccount(t, st, "B", model.AccountEquity)
	tx := saveTransactionWithSplits(t, st, a, b, 100)

	gotAcc, err := st.GetAccountByID(a.ID)
	if err != nil {
		t.Fatalf("GetAccountByID: %v", err)
	}
	if gotAcc.UID != a.UID {
		t.Errorf("account uid = %s, want %s", gotAcc.UID, a.UID)
	}

	gotTx, err := st.GetTransactionByID(tx.ID)
	if err != nil {
		t.Fatalf("GetTransactionByID: %v", err)
	}
	if gotTx.UID != tx.UID {
		t.Errorf("transaction uid = %s, want %s", gotTx.UID, tx.UID)
	}

	if _, err := st.GetAccountByID(99999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("GetAccountByID(99999) = %v, want ErrNotFound", err)
	}
	if _, err := st.GetTransactionByID(99999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("GetTransactionByID(99999) = %v, want ErrNotFound", err)
	}
}

func TestSplitsForAccountExcludesTemplates(t *testing.T) {
	st := newTestStore(t)

	a := saveAccount(t, st, "A", model.AccountBank)
	b := saveAccount(t, st, "B", model.AccountEquity)
	saveTransactionWithSplits(t, st, a, b, 100)

	tmpl := model.NewTransaction(time.Now(), "USD", "template")
	tmpl.Template = true
	if _, err := st.SaveTransaction(tmpl); err != nil {
		t.Fatalf("save template: %v", err)
	}
	sp := model.NewSplit(model.MoneyFromMinorUnits(999, "USD"), a.UID, model.Debit)
	sp.TransactionUID = tmpl.UID
	if _, err := st.SaveSplit(sp); err != nil {
		t.Fatalf("save template split: %v", err)
	}

	splits, err := st.SplitsForAccount(a.UID)
	if err != nil {
		t.Fatalf("SplitsForAccount: %v", err)
	}
	if len(splits) != 1 {
		t.Fatalf("got %d splits, want 1 (template excluded)", len(splits))
	}
	if splits[0].Value.Numerator() != 100 {
		t.Errorf("register holds the template split")
	}
}

func TestSplitsForTransactionInAccount(t *testing.T) {
	st := newTestStore(t)

	a := saveAccount(t, st, "A", model.AccountBank)
	b := saveAccount(t, st, "B", model.AccountEquity)
	tx := saveTransactionWithSplits(t, st, a, b, 100)

	splits, err := st.SplitsForTransactionInAccount(tx.UID, a.UID)
	if err != nil {
		t.Fatalf("SplitsForTransactionInAccount: %v", err)
	}
	if len(splits) != 1 {
		t.Fatalf("got %d splits, want 1", len(splits))
	}
	if splits[0].AccountUID != a.UID {
		t.Errorf("split account = %s, want %s", splits[0].AccountUID, a.UID)
	}
}

func TestListTransactionsUnlimited(t *testing.T) {
	st := newTestStore(t)

	a := saveAccount(t, st, "A", model.AccountBank)
	b := saveAccount(t, st, "B", model.AccountEquity)
	for i := 0; i < 5; i++ {
		saveTransactionWithSplits(t, st, a, b, int64(100+i))
	}

	all, err := st.ListTransactions(0)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("ListTransactions(0) = %d rows, want all 5", len(all))
	}

	some, err := st.ListTransactions(2)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(some) != 2 {
		t.Errorf("ListTransactions(2) = %d rows, want 2", len(some))
	}
}
