package service

import (
	"fmt"
	"time"

	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/store"
)

type TransactionService struct {
	repo   store.Repository
	config *config.Config
	now    func() time.Time
}

func NewTransactionService(repo store.Repository, cfg *config.Config) *TransactionService {
	return &TransactionService{repo: repo, config: cfg, now: time.Now}
}

// CreateTransaction validates the balance law and persists the transaction
// together with its initial splits as one atomic unit.
func (ts *TransactionService) CreateTransaction(tx *model.Transaction, splits []*model.Split) error {
	if err := model.ValidateBalanced(tx.Currency, splits); err != nil {
		return err
	}

	for i, sp := range splits {
		if err := ts.validateSplit(tx, sp); err != nil {
			return fmt.Errorf("split #%d: %w", i+1, err)
		}
	}

	return ts.repo.ExecTx(func(repo store.Repository) error {
		if _, err := repo.SaveTransaction(tx); err != nil {
			return err
		}
		for _, sp := range splits {
			sp.TransactionUID = tx.UID
			if _, err := repo.SaveSplit(sp); err != nil {
				return err
			}
		}
		return nil
	})
}

// validateSplit checks the split's references and the value/quantity
// relationship against the owning transaction.
func (ts *TransactionService) validateSplit(tx *model.Transaction, sp *model.Split) error {
	if err := sp.Validate(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvariantViolation, err)
	}

	acc, err := ts.repo.GetAccountByUID(sp.AccountUID)
	if err != nil {
		return err
	}

	// Placeholder accounts structure the tree and never hold splits.
	if acc.Placeholder {
		return fmt.Errorf("%w: account %s is a placeholder", model.ErrInvariantViolation, acc.Name)
	}

	if sp.Value.Currency() != tx.Currency {
		return fmt.Errorf("split value in %s, transaction in %s: %w",
			sp.Value.Currency(), tx.Currency, model.ErrCurrencyMismatch)
	}
	if sp.Quantity.Currency() != acc.Currency {
		return fmt.Errorf("split quantity in %s, account in %s: %w",
			sp.Quantity.Currency(), acc.Currency, model.ErrCurrencyMismatch)
	}

	// Same currency on both sides means value and quantity describe the
	// identical amount.
	if acc.Currency == tx.Currency && !sp.Value.Equal(sp.Quantity) {
		return fmt.Errorf("%w: value %s and quantity %s differ in single-currency split",
			model.ErrInvariantViolation, sp.Value, sp.Quantity)
	}
	return nil
}

// AddSplit records a new or updated split. The persist, the exported-flag
// clear and the modified_at refresh run as one store transaction, so a
// crash can never leave the owning transaction half-updated.
func (ts *TransactionService) AddSplit(sp *model.Split) error {
	tx, err := ts.repo.GetTransactionByUID(sp.TransactionUID)
	if err != nil {
		return err
	}
	if err := ts.validateSplit(tx, sp); err != nil {
		return err
	}

	return ts.repo.ExecTx(func(repo store.Repository) error {
		if _, err := repo.SaveSplit(sp); err != nil {
			return err
		}
		return repo.TouchTransaction(tx.UID, ts.now())
	})
}

// DeleteSplit removes a split. Deleting the last split of a transaction
// removes the transaction itself; deleting any other split counts as an
// edit and clears the transaction's exported flag.
func (ts *TransactionService) DeleteSplit(uid string) error {
	sp, err := ts.repo.GetSplitByUID(uid)
	if err != nil {
		return err
	}

	return ts.repo.ExecTx(func(repo store.Repository) error {
		if err := repo.DeleteSplit(uid); err != nil {
			return err
		}

		remaining, err := repo.CountSplitsForTransaction(sp.TransactionUID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return repo.DeleteTransaction(sp.TransactionUID)
		}
		return repo.TouchTransaction(sp.TransactionUID, ts.now())
	})
}

// DeleteTransaction removes a transaction and, via the store cascade, all
// of its splits.
func (ts *TransactionService) DeleteTransaction(uid string) error {
	if _, err := ts.repo.GetTransactionByUID(uid); err != nil {
		return err
	}
	return ts.repo.DeleteTransaction(uid)
}

// GetTransactionHeader returns the transaction without its splits.
func (ts *TransactionService) GetTransactionHeader(uid string) (*model.Transaction, error) {
	return ts.repo.GetTransactionByUID(uid)
}

func (ts *TransactionService) GetTransaction(uid string) (*model.Transaction, []*model.Split, error) {
	tx, err := ts.repo.GetTransactionByUID(uid)
	if err != nil {
		return nil, nil, err
	}
	splits, err := ts.repo.SplitsForTransaction(uid)
	if err != nil {
		return nil, nil, err
	}
	return tx, splits, nil
}

// SplitsForAccount returns the account's register: its splits, newest
// transaction first, templates excluded.
func (ts *TransactionService) SplitsForAccount(accountUID string) ([]*model.Split, error) {
	return ts.repo.SplitsForAccount(accountUID)
}

// SplitsForTransactionInAccount narrows a transaction's splits to those
// touching one account.
func (ts *TransactionService) SplitsForTransactionInAccount(transactionUID, accountUID string) ([]*model.Split, error) {
	return ts.repo.SplitsForTransactionInAccount(transactionUID, accountUID)
}

func (ts *TransactionService) ListTransactions(limit int) ([]*model.Transaction, error) {
	return ts.repo.ListTransactions(limit)
}

func (ts *TransactionService) TransactionsForAccount(accountUID string, limit int) ([]*model.Transaction, error) {
	return ts.repo.TransactionsForAccount(accountUID, limit)
}
