package transaction

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/service"
)

func NewShowCmd(svc *service.Service) *cobra.Command {
	var accountFilter string

	showCmd := &cobra.Command{
		Use:          "show <transaction-uid>",
		Short:        "Show a transaction and its splits",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, splits, err := svc.Transaction.GetTransaction(args[0])
			if err != nil {
				return err
			}

			if accountFilter != "" {
				acc, err := svc.Account.GetAccountByName(accountFilter)
				if err != nil {
					return err
				}
				splits, err = svc.Transaction.SplitsForTransactionInAccount(tx.UID, acc.UID)
				if err != nil {
					return err
				}
			}

			header := pterm.TableData{
				{pterm.Blue("UID"), tx.UID},
				{pterm.Blue("Date"), tx.Timestamp.Format("2006-01-02 15:04:05")},
				{pterm.Blue("Description"), tx.Description},
				{pterm.Blue("Currency"), tx.Currency},
				{pterm.Blue("Modified"), tx.ModifiedAt.Format("2006-01-02 15:04:05")},
			}
			pterm.DefaultTable.WithData(header).Render()

			rows := pterm.TableData{{"Type", "Account", "Value", "Quantity", "Memo", "UID"}}
			for _, sp := range splits {
				acc, err := svc.Account.GetAccountByUID(sp.AccountUID)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					string(sp.Type), acc.Name,
					sp.Value.String(), sp.Quantity.String(),
					sp.Memo, sp.UID,
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}

	showCmd.Flags().StringVarP(&accountFilter, "account", "a", "", "Only splits touching this account")

	return showCmd
}
