package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tallybook/tally/internal/model"
)

// Ledger is the slice of the store the snapshot writers read from.
type Ledger interface {
	GetAllAccounts() ([]*model.Account, error)
	ListTransactions(limit int) ([]*model.Transaction, error)
	SplitsForTransaction(transactionUID string) ([]*model.Split, error)
}

// CSVExporter writes one row per split, denormalized with its owning
// transaction and account.
type CSVExporter struct {
	ledger Ledger
}

func NewCSVExporter(ledger Ledger) *CSVExporter {
	return &CSVExporter{ledger: ledger}
}

func (e *CSVExporter) Format() Format { return FormatCSV }

func (e *CSVExporter) Generate(w io.Writer) error {
	accounts, err := e.ledger.GetAllAccounts()
	if err != nil {
		return err
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.UID] = a.Name
	}

	transactions, err := e.ledger.ListTransactions(0)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"transaction_uid", "date", "description", "currency",
		"split_uid", "account", "type", "value", "quantity", "memo",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, tx := range transactions {
		if tx.Template {
			continue
		}
		splits, err := e.ledger.SplitsForTransaction(tx.UID)
		if err != nil {
			return err
		}
		for _, sp := range splits {
			record := []string{
				tx.UID,
				tx.Timestamp.Format("2006-01-02 15:04:05"),
				tx.Description,
				tx.Currency,
				sp.UID,
				names[sp.AccountUID],
				string(sp.Type),
				sp.Value.StringFixed(model.MinorUnitDigits(sp.Value.Currency())),
				sp.Quantity.StringFixed(model.MinorUnitDigits(sp.Quantity.Currency())),
				sp.Memo,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
