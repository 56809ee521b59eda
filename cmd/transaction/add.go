package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/service"
)

const dateLayout = "2006-01-02"

func NewAddCmd(svc *service.Service) *cobra.Command {
	var (
		txDate     string
		txDesc     string
		txCurrency string
		debits     []string
		credits    []string
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Long: `Record a balanced transaction. Every --debit and --credit flag names
one split as ACCOUNT=AMOUNT; debits and credits must sum to the same total.

Example:
  tally transaction add -m "Groceries" --debit Groceries=20.00 --credit Checking=20.00`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			timestamp := time.Now()
			if txDate != "" {
				t, err := time.ParseInLocation(dateLayout, txDate, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q (want %s)", txDate, dateLayout)
				}
				timestamp = t
			}

			currency := txCurrency
			if currency == "" {
				// Borrow the currency of the first named account.
				first := debits
				if len(first) == 0 {
					first = credits
				}
				if len(first) == 0 {
					return fmt.Errorf("transaction needs at least one --debit or --credit split")
				}
				name, _, err := parseSplitFlag(first[0])
				if err != nil {
					return err
				}
				acc, err := svc.Account.GetAccountByName(name)
				if err != nil {
					return err
				}
				currency = acc.Currency
			}

			tx := model.NewTransaction(timestamp, currency, txDesc)

			var splits []*model.Split
			for _, flag := range debits {
				sp, err := buildSplit(svc, flag, currency, model.Debit)
				if err != nil {
					return err
				}
				splits = append(splits, sp)
			}
			for _, flag := range credits {
				sp, err := buildSplit(svc, flag, currency, model.Credit)
				if err != nil {
					return err
				}
				splits = append(splits, sp)
			}

			if err := svc.Transaction.CreateTransaction(tx, splits); err != nil {
				return err
			}

			pterm.Success.Printfln("Transaction %s recorded (%d splits)", tx.UID, len(splits))
			return nil
		},
	}

	addCmd.Flags().StringVar(&txDate, "date", "", "Transaction date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVarP(&txDesc, "description", "m", "", "Transaction description")
	addCmd.Flags().StringVar(&txCurrency, "currency", "", "Transaction currency (defaults to the first account's currency)")
	addCmd.Flags().StringArrayVar(&debits, "debit", nil, "Debit split, ACCOUNT=AMOUNT (repeatable)")
	addCmd.Flags().StringArrayVar(&credits, "credit", nil, "Credit split, ACCOUNT=AMOUNT (repeatable)")

	return addCmd
}

func parseSplitFlag(s string) (account, amount string, err error) {
	name, amt, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid split %q, want ACCOUNT=AMOUNT", s)
	}
	return strings.TrimSpace(name), strings.TrimSpace(amt), nil
}

func buildSplit(svc *service.Service, flag, currency string, t model.SplitType) (*model.Split, error) {
	name, amt, err := parseSplitFlag(flag)
	if err != nil {
		return nil, err
	}

	acc, err := svc.Account.GetAccountByName(name)
	if err != nil {
		return nil, err
	}

	value, err := model.ParseMoney(amt, currency)
	if err != nil {
		return nil, err
	}

	sp := model.NewSplit(value, acc.UID, t)
	if acc.Currency != currency {
		quantity, err := model.ParseMoney(amt, acc.Currency)
		if err != nil {
			return nil, err
		}
		sp.Quantity = quantity
	}
	return sp, nil
}
