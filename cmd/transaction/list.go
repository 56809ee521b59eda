package transaction

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/service"
)

func NewListCmd(svc *service.Service) *cobra.Command {
	var (
		limit   int
		account string
	)

	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List recent transactions",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			transactions, err := listTransactions(svc, account, limit)
			if err != nil {
				return err
			}

			tableData := pterm.TableData{{"Date", "Description", "Currency", "Exported", "UID"}}
			for _, tx := range transactions {
				exported := "no"
				if tx.Exported {
					exported = "yes"
				}
				tableData = append(tableData, []string{
					tx.Timestamp.Format(dateLayout),
					tx.Description,
					tx.Currency,
					exported,
					tx.UID,
				})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
		},
	}

	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of transactions shown")
	listCmd.Flags().StringVarP(&account, "account", "a", "", "Only transactions touching this account")

	return listCmd
}

func listTransactions(svc *service.Service, account string, limit int) ([]*model.Transaction, error) {
	if account == "" {
		return svc.Transaction.ListTransactions(limit)
	}

	acc, err := svc.Account.GetAccountByName(account)
	if err != nil {
		return nil, err
	}
	return svc.Transaction.TransactionsForAccount(acc.UID, limit)
}
