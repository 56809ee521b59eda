package service

import (
	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/store"
)

type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Balance     *BalanceService
}

func NewService(repo store.Repository, cfg *config.Config) *Service {
	return &Service{
		Account:     NewAccountService(repo, cfg),
		Transaction: NewTransactionService(repo, cfg),
		Balance:     NewBalanceService(repo),
	}
}
