package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tallybook/tally/internal/model"
)

// splitColumns selects the split row plus the transaction and account
// currencies needed to rebuild the value/quantity Money pair.
const splitColumns = `s.id, s.uid, s.transaction_uid, s.account_uid, s.type,
	s.value_num, s.value_denom, s.quantity_num, s.quantity_denom,
	s.memo, s.created_at, t.currency, a.currency`

const splitJoins = `splits s
	INNER JOIN transactions t ON s.transaction_uid = t.uid
	INNER JOIN accounts a ON s.account_uid = a.uid`

func scanSplit(row interface{ Scan(...any) error }) (*model.Split, error) {
	var (
		sp                       model.Split
		splitType                string
		valueNum, valueDenom     int64
		qtyNum, qtyDenom         int64
		createdAt                int64
		txCurrency, acctCurrency string
	)

	err := row.Scan(
		&sp.ID, &sp.UID, &sp.TransactionUID, &sp.AccountUID, &splitType,
		&valueNum, &valueDenom, &qtyNum, &qtyDenom,
		&sp.Memo, &createdAt, &txCurrency, &acctCurrency,
	)
	if err != nil {
		return nil, err
	}

	sp.Type = model.SplitType(splitType)
	sp.CreatedAt = time.Unix(createdAt, 0)

	if sp.Value, err = model.NewMoney(valueNum, valueDenom, txCurrency); err != nil {
		return nil, fmt.Errorf("split %s value: %w", sp.UID, err)
	}
	if sp.Quantity, err = model.NewMoney(qtyNum, qtyDenom, acctCurrency); err != nil {
		return nil, fmt.Errorf("split %s quantity: %w", sp.UID, err)
	}
	return &sp, nil
}

// SaveSplit inserts or replaces the split keyed by uid. Splits are not
// referenced by any other table, so REPLACE is safe here.
func (s *Store) SaveSplit(sp *model.Split) (int64, error) {
	_, err := s.db.Exec(`
		REPLACE INTO splits (uid, transaction_uid, account_uid, type,
			value_num, value_denom, quantity_num, quantity_denom, memo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sp.UID, sp.TransactionUID, sp.AccountUID, string(sp.Type),
		sp.Value.Numerator(), sp.Value.Denominator(),
		sp.Quantity.Numerator(), sp.Quantity.Denominator(),
		sp.Memo, sp.CreatedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to save split: %w", err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM splits WHERE uid = ?", sp.UID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read back split id: %w", err)
	}
	sp.ID = id
	return id, nil
}

func (s *Store) GetSplitByUID(uid string) (*model.Split, error) {
	row := s.db.QueryRow("SELECT "+splitColumns+" FROM "+splitJoins+" WHERE s.uid = ?", uid)
	sp, err := scanSplit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("split %q: %w", uid, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query split %q: %w", uid, err)
	}
	return sp, nil
}

func (s *Store) DeleteSplit(uid string) error {
	result, err := s.db.Exec("DELETE FROM splits WHERE uid = ?", uid)
	if err != nil {
		return fmt.Errorf("failed to delete split %q: %w", uid, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("split %q: %w", uid, model.ErrNotFound)
	}
	return nil
}

func (s *Store) querySplits(query string, args ...any) ([]*model.Split, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	var splits []*model.Split
	for rows.Next() {
		sp, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, sp)
	}
	return splits, rows.Err()
}

func (s *Store) SplitsForTransaction(transactionUID string) ([]*model.Split, error) {
	return s.querySplits(
		"SELECT "+splitColumns+" FROM "+splitJoins+" WHERE s.transaction_uid = ? ORDER BY s.id",
		transactionUID)
}

// SplitsForAccount returns the account's splits, newest transaction first.
// Splits of template transactions are excluded.
func (s *Store) SplitsForAccount(accountUID string) ([]*model.Split, error) {
	return s.querySplits(
		"SELECT "+splitColumns+" FROM "+splitJoins+
			" WHERE s.account_uid = ? AND t.template = 0 ORDER BY t.timestamp DESC, s.id",
		accountUID)
}

func (s *Store) SplitsForTransactionInAccount(transactionUID, accountUID string) ([]*model.Split, error) {
	return s.querySplits(
		"SELECT "+splitColumns+" FROM "+splitJoins+
			" WHERE s.transaction_uid = ? AND s.account_uid = ? ORDER BY s.value_num",
		transactionUID, accountUID)
}

func (s *Store) CountSplitsForTransaction(transactionUID string) (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM splits WHERE transaction_uid = ?", transactionUID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count splits for transaction %q: %w", transactionUID, err)
	}
	return n, nil
}

// BalanceRows returns the direction and exact value fraction of every split
// belonging to the given accounts and a non-template transaction, optionally
// filtered by the owning transaction's timestamp (inclusive bounds).
// Summation is deliberately left to the caller so no precision is lost in
// the database.
func (s *Store) BalanceRows(accountUIDs []string, start, end *time.Time) ([]BalanceRow, error) {
	if len(accountUIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(accountUIDs)-1) + "?"
	query := `
		SELECT s.type, s.value_num, s.value_denom
		FROM splits s
		INNER JOIN transactions t ON s.transaction_uid = t.uid
		WHERE s.account_uid IN (` + placeholders + `) AND t.template = 0`

	args := make([]any, 0, len(accountUIDs)+2)
	for _, uid := range accountUIDs {
		args = append(args, uid)
	}

	switch {
	case start != nil && end != nil:
		query += " AND t.timestamp BETWEEN ? AND ?"
		args = append(args, start.Unix(), end.Unix())
	case start != nil:
		query += " AND t.timestamp >= ?"
		args = append(args, start.Unix())
	case end != nil:
		query += " AND t.timestamp <= ?"
		args = append(args, end.Unix())
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance rows: %w", err)
	}
	defer rows.Close()

	var out []BalanceRow
	for rows.Next() {
		var r BalanceRow
		var splitType string
		if err := rows.Scan(&splitType, &r.ValueNum, &r.ValueDenom); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		r.Type = model.SplitType(splitType)
		out = append(out, r)
	}
	return out, rows.Err()
}
