package service

import (
	"fmt"

	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/store"
)

type AccountService struct {
	repo   store.Repository
	config *config.Config
}

func NewAccountService(repo store.Repository, cfg *config.Config) *AccountService {
	return &AccountService{repo: repo, config: cfg}
}

// CreateAccount validates and persists a new account. An empty currency
// falls back to the parent's currency, then to the configured default.
// Placeholder accounts structure the hierarchy and refuse splits.
func (as *AccountService) CreateAccount(name string, accType model.AccountType, currency, description string, parentUID *string, placeholder bool) (*model.Account, error) {
	if parentUID != nil {
		parent, err := as.repo.GetAccountByUID(*parentUID)
		if err != nil {
			return nil, fmt.Errorf("parent account: %w", err)
		}
		if currency == "" {
			currency = parent.Currency
		}
	}
	if currency == "" {
		currency = as.config.Defaults.Currency
	}

	acc := model.NewAccount(name, accType, currency)
	acc.Description = description
	acc.ParentUID = parentUID
	acc.Placeholder = placeholder

	if err := acc.Validate(); err != nil {
		return nil, err
	}

	if _, err := as.repo.SaveAccount(acc); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return acc, nil
}

// UpdateAccount persists changes to an existing account. Reparenting is
// refused when the new parent sits inside the account's own subtree.
func (as *AccountService) UpdateAccount(acc *model.Account) error {
	if err := acc.Validate(); err != nil {
		return err
	}
	if _, err := as.repo.GetAccountByUID(acc.UID); err != nil {
		return err
	}

	if acc.ParentUID != nil {
		if err := as.checkNoCycle(acc.UID, *acc.ParentUID); err != nil {
			return err
		}
	}

	_, err := as.repo.SaveAccount(acc)
	return err
}

// checkNoCycle walks up from the proposed parent; hitting the account
// itself means the reparent would close a loop.
func (as *AccountService) checkNoCycle(accountUID, parentUID string) error {
	cur := parentUID
	for {
		if cur == accountUID {
			return fmt.Errorf("account %s cannot become a descendant of itself: %w",
				accountUID, model.ErrHierarchyCycle)
		}
		parent, err := as.repo.GetAccountByUID(cur)
		if err != nil {
			return fmt.Errorf("resolve ancestor %q: %w", cur, err)
		}
		if parent.ParentUID == nil {
			return nil
		}
		cur = *parent.ParentUID
	}
}

// DeleteAccount removes an account. It refuses while the account still owns
// splits; reassigning those is the caller's decision.
func (as *AccountService) DeleteAccount(uid string) error {
	if _, err := as.repo.GetAccountByUID(uid); err != nil {
		return err
	}

	n, err := as.repo.CountSplitsForAccount(uid)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("account %s owns %d splits: %w", uid, n, model.ErrAccountHasSplits)
	}

	return as.repo.DeleteAccount(uid)
}

// DescendantsOf returns the UIDs of every account transitively below the
// given one, the account itself excluded. Callers expand a subtree with
// this before asking for its balance.
func (as *AccountService) DescendantsOf(uid string) ([]string, error) {
	if _, err := as.repo.GetAccountByUID(uid); err != nil {
		return nil, err
	}

	var out []string
	queue := []string{uid}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		children, err := as.repo.ChildAccounts(cur)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			out = append(out, c.UID)
			queue = append(queue, c.UID)
		}
	}
	return out, nil
}

func (as *AccountService) GetAccountByUID(uid string) (*model.Account, error) {
	return as.repo.GetAccountByUID(uid)
}

func (as *AccountService) GetAccountByName(name string) (*model.Account, error) {
	return as.repo.GetAccountByName(name)
}

func (as *AccountService) GetAllAccounts() ([]*model.Account, error) {
	return as.repo.GetAllAccounts()
}
