package export

import (
	"io"
	"time"

	"github.com/tallybook/tally/internal/model"
	"gopkg.in/yaml.v3"
)

type yamlAccount struct {
	UID         string `yaml:"uid"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	ParentUID   string `yaml:"parent_uid,omitempty"`
	Currency    string `yaml:"currency"`
	Description string `yaml:"description,omitempty"`
	Hidden      bool   `yaml:"hidden,omitempty"`
	Placeholder bool   `yaml:"placeholder,omitempty"`
}

type yamlSplit struct {
	UID        string `yaml:"uid"`
	AccountUID string `yaml:"account_uid"`
	Type       string `yaml:"type"`
	Value      string `yaml:"value"`
	Quantity   string `yaml:"quantity"`
	Memo       string `yaml:"memo,omitempty"`
}

type yamlTransaction struct {
	UID         string      `yaml:"uid"`
	Timestamp   time.Time   `yaml:"timestamp"`
	Currency    string      `yaml:"currency"`
	Description string      `yaml:"description,omitempty"`
	Template    bool        `yaml:"template,omitempty"`
	Splits      []yamlSplit `yaml:"splits"`
}

type yamlSnapshot struct {
	ExportedAt   time.Time         `yaml:"exported_at"`
	Accounts     []yamlAccount     `yaml:"accounts"`
	Transactions []yamlTransaction `yaml:"transactions"`
}

// YAMLExporter writes the full ledger snapshot, templates included, as a
// single YAML document. Backups use this format.
type YAMLExporter struct {
	ledger Ledger
}

func NewYAMLExporter(ledger Ledger) *YAMLExporter {
	return &YAMLExporter{ledger: ledger}
}

func (e *YAMLExporter) Format() Format { return FormatYAML }

func (e *YAMLExporter) Generate(w io.Writer) error {
	accounts, err := e.ledger.GetAllAccounts()
	if err != nil {
		return err
	}
	transactions, err := e.ledger.ListTransactions(0)
	if err != nil {
		return err
	}

	snap := yamlSnapshot{ExportedAt: time.Now()}

	for _, a := range accounts {
		ya := yamlAccount{
			UID:         a.UID,
			Name:        a.Name,
			Type:        string(a.Type),
			Currency:    a.Currency,
			Description: a.Description,
			Hidden:      a.Hidden,
			Placeholder: a.Placeholder,
		}
		if a.ParentUID != nil {
			ya.ParentUID = *a.ParentUID
		}
		snap.Accounts = append(snap.Accounts, ya)
	}

	for _, tx := range transactions {
		yt := yamlTransaction{
			UID:         tx.UID,
			Timestamp:   tx.Timestamp,
			Currency:    tx.Currency,
			Description: tx.Description,
			Template:    tx.Template,
		}
		splits, err := e.ledger.SplitsForTransaction(tx.UID)
		if err != nil {
			return err
		}
		for _, sp := range splits {
			yt.Splits = append(yt.Splits, yamlSplit{
				UID:        sp.UID,
				AccountUID: sp.AccountUID,
				Type:       string(sp.Type),
				Value:      sp.Value.StringFixed(model.MinorUnitDigits(sp.Value.Currency())),
				Quantity:   sp.Quantity.StringFixed(model.MinorUnitDigits(sp.Quantity.Currency())),
				Memo:       sp.Memo,
			})
		}
		snap.Transactions = append(snap.Transactions, yt)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&snap)
}
