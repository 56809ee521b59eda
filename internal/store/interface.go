package store

import (
	"time"

	"github.com/tallybook/tally/internal/model"
)

// BalanceRow is one qualifying split returned by the balance query: its
// direction and its exact value fraction in the query currency.
type BalanceRow struct {
	Type       model.SplitType
	ValueNum   int64
	ValueDenom int64
}

type Repository interface {
	// Account operations
	SaveAccount(a *model.Account) (int64, error)
	GetAccountByUID(uid string) (*model.Account, error)
	GetAccountByID(id int64) (*model.Account, error)
	GetAccountByName(name string) (*model.Account, error)
	GetAllAccounts() ([]*model.Account, error)
	ChildAccounts(parentUID string) ([]*model.Account, error)
	DeleteAccount(uid string) error
	AccountUIDFromID(id int64) (string, error)
	CountSplitsForAccount(accountUID string) (int64, error)

	// Transaction operations
	SaveTransaction(tx *model.Transaction) (int64, error)
	GetTransactionByUID(uid string) (*model.Transaction, error)
	GetTransactionByID(id int64) (*model.Transaction, error)
	TransactionIDFromUID(uid string) (int64, error)
	TransactionUIDFromID(id int64) (string, error)
	DeleteTransaction(uid string) error
	TouchTransaction(uid string, modifiedAt time.Time) error
	MarkTransactionsExported() (int64, error)
	ListTransactions(limit int) ([]*model.Transaction, error)
	TransactionsForAccount(accountUID string, limit int) ([]*model.Transaction, error)

	// Split operations
	SaveSplit(s *model.Split) (int64, error)
	GetSplitByUID(uid string) (*model.Split, error)
	DeleteSplit(uid string) error
	SplitsForTransaction(transactionUID string) ([]*model.Split, error)
	SplitsForAccount(accountUID string) ([]*model.Split, error)
	SplitsForTransactionInAccount(transactionUID, accountUID string) ([]*model.Split, error)
	CountSplitsForTransaction(transactionUID string) (int64, error)
	BalanceRows(accountUIDs []string, start, end *time.Time) ([]BalanceRow, error)

	ExecTx(fn func(Repository) error) error
	Close() error
}
