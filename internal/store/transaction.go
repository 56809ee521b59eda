package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tallybook/tally/internal/model"
)

const transactionColumns = "id, uid, timestamp, currency, description, template, exported, modified_at"

func scanTransaction(row interface{ Scan(...any) error }) (*model.Transaction, error) {
	tx := &model.Transaction{}
	var timestamp, modifiedAt int64

	err := row.Scan(
		&tx.ID, &tx.UID, &timestamp, &tx.Currency,
		&tx.Description, &tx.Template, &tx.Exported, &modifiedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Timestamp = time.Unix(timestamp, 0)
	tx.ModifiedAt = time.Unix(modifiedAt, 0)
	return tx, nil
}

// SaveTransaction inserts the transaction or updates it in place when its
// uid already exists. The numeric row id is returned.
func (s *Store) SaveTransaction(tx *model.Transaction) (int64, error) {
	_, err := s.db.Exec(`
		INSERT INTO transactions (uid, timestamp, currency, description, template, exported, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			timestamp = excluded.timestamp,
			currency = excluded.currency,
			description = excluded.description,
			template = excluded.template,
			exported = excluded.exported,
			modified_at = excluded.modified_at
	`, tx.UID, tx.Timestamp.Unix(), tx.Currency, tx.Description, tx.Template, tx.Exported, tx.ModifiedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to save transaction: %w", err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM transactions WHERE uid = ?", tx.UID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read back transaction id: %w", err)
	}
	tx.ID = id
	return id, nil
}

func (s *Store) GetTransactionByUID(uid string) (*model.Transaction, error) {
	row := s.db.QueryRow("SELECT "+transactionColumns+" FROM transactions WHERE uid = ?", uid)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %q: %w", uid, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction %q: %w", uid, err)
	}
	return tx, nil
}

func (s *Store) GetTransactionByID(id int64) (*model.Transaction, error) {
	row := s.db.QueryRow("SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction id %d: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction id %d: %w", id, err)
	}
	return tx, nil
}

func (s *Store) TransactionIDFromUID(uid string) (int64, error) {
	var id int64
	err := s.db.QueryRow("SELECT id FROM transactions WHERE uid = ?", uid).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("transaction %q: %w", uid, model.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to resolve transaction %q: %w", uid, err)
	}
	return id, nil
}

func (s *Store) TransactionUIDFromID(id int64) (string, error) {
	var uid string
	err := s.db.QueryRow("SELECT uid FROM transactions WHERE id = ?", id).Scan(&uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("transaction id %d: %w", id, model.ErrNotFound)
		}
		return "", fmt.Errorf("failed to resolve transaction id %d: %w", id, err)
	}
	return uid, nil
}

// DeleteTransaction removes the transaction; its splits go with it via the
// foreign-key cascade.
func (s *Store) DeleteTransaction(uid string) error {
	result, err := s.db.Exec("DELETE FROM transactions WHERE uid = ?", uid)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %q: %w", uid, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %q: %w", uid, model.ErrNotFound)
	}
	return nil
}

// TouchTransaction records that one of the transaction's splits changed:
// the exported flag is cleared and modified_at refreshed, in one statement.
func (s *Store) TouchTransaction(uid string, modifiedAt time.Time) error {
	result, err := s.db.Exec(`
		UPDATE transactions
		SET exported = 0, modified_at = ?
		WHERE uid = ?
	`, modifiedAt.Unix(), uid)
	if err != nil {
		return fmt.Errorf("failed to touch transaction %q: %w", uid, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %q: %w", uid, model.ErrNotFound)
	}
	return nil
}

// MarkTransactionsExported flags every non-template transaction as exported
// and reports how many rows changed.
func (s *Store) MarkTransactionsExported() (int64, error) {
	result, err := s.db.Exec("UPDATE transactions SET exported = 1 WHERE template = 0 AND exported = 0")
	if err != nil {
		return 0, fmt.Errorf("failed to mark transactions exported: %w", err)
	}
	return result.RowsAffected()
}

// ListTransactions returns transactions newest first. A non-positive limit
// returns everything (SQLite treats a negative LIMIT as unlimited).
func (s *Store) ListTransactions(limit int) ([]*model.Transaction, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func (s *Store) TransactionsForAccount(accountUID string, limit int) ([]*model.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT DISTINCT t.id, t.uid, t.timestamp, t.currency, t.description, t.template, t.exported, t.modified_at
		FROM transactions t
		INNER JOIN splits s ON t.uid = s.transaction_uid
		WHERE s.account_uid = ?
		ORDER BY t.timestamp DESC, t.id DESC
		LIMIT ?
	`, accountUID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
