package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tallybook/tally/internal/model"
)

const accountColumns = "id, uid, name, type, parent_uid, currency, description, hidden, placeholder"

func scanAccount(row interface{ Scan(...any) error }) (*model.Account, error) {
	acc := &model.Account{}
	var accType string
	var parentUID sql.NullString

	err := row.Scan(
		&acc.ID, &acc.UID, &acc.Name, &accType,
		&parentUID, &acc.Currency, &acc.Description,
		&acc.Hidden, &acc.Placeholder,
	)
	if err != nil {
		return nil, err
	}

	acc.Type = model.AccountType(accType)
	if parentUID.Valid {
		acc.ParentUID = &parentUID.String
	}
	return acc, nil
}

// SaveAccount inserts the account or, when its uid already exists, updates
// it in place. The numeric row id is returned.
func (s *Store) SaveAccount(a *model.Account) (int64, error) {
	var parentUID any
	if a.ParentUID != nil {
		parentUID = *a.ParentUID
	}

	_, err := s.db.Exec(`
		INSERT INTO accounts (uid, name, type, parent_uid, currency, description, hidden, placeholder)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			parent_uid = excluded.parent_uid,
			currency = excluded.currency,
			description = excluded.description,
			hidden = excluded.hidden,
			placeholder = excluded.placeholder
	`, a.UID, a.Name, string(a.Type), parentUID, a.Currency, a.Description, a.Hidden, a.Placeholder)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: accounts.name") {
			return 0, fmt.Errorf("account name %q is already taken", a.Name)
		}
		return 0, fmt.Errorf("failed to save account: %w", err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM accounts WHERE uid = ?", a.UID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read back account id: %w", err)
	}
	a.ID = id
	return id, nil
}

func (s *Store) GetAccountByUID(uid string) (*model.Account, error) {
	row := s.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE uid = ?", uid)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %q: %w", uid, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query account %q: %w", uid, err)
	}
	return acc, nil
}

func (s *Store) GetAccountByID(id int64) (*model.Account, error) {
	row := s.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account id %d: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query account id %d: %w", id, err)
	}
	return acc, nil
}

func (s *Store) GetAccountByName(name string) (*model.Account, error) {
	row := s.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE name = ?", name)
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %q: %w", name, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query account %q: %w", name, err)
	}
	return acc, nil
}

func (s *Store) GetAllAccounts() ([]*model.Account, error) {
	rows, err := s.db.Query("SELECT " + accountColumns + " FROM accounts ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (s *Store) ChildAccounts(parentUID string) ([]*model.Account, error) {
	rows, err := s.db.Query("SELECT "+accountColumns+" FROM accounts WHERE parent_uid = ? ORDER BY name", parentUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (s *Store) DeleteAccount(uid string) error {
	result, err := s.db.Exec("DELETE FROM accounts WHERE uid = ?", uid)
	if err != nil {
		return fmt.Errorf("failed to delete account %q: %w", uid, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %q: %w", uid, model.ErrNotFound)
	}
	return nil
}

func (s *Store) AccountUIDFromID(id int64) (string, error) {
	var uid string
	err := s.db.QueryRow("SELECT uid FROM accounts WHERE id = ?", id).Scan(&uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("account id %d: %w", id, model.ErrNotFound)
		}
		return "", fmt.Errorf("failed to resolve account id %d: %w", id, err)
	}
	return uid, nil
}

func (s *Store) CountSplitsForAccount(accountUID string) (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM splits WHERE account_uid = ?", accountUID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count splits for account %q: %w", accountUID, err)
	}
	return n, nil
}
