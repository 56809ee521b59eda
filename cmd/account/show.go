package account

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/service"
)

func NewShowCmd(svc *service.Service) *cobra.Command {
	showCmd := &cobra.Command{
		Use:          "show <name>",
		Short:        "Show an account and its register",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := svc.Account.GetAccountByName(args[0])
			if err != nil {
				return err
			}

			header := pterm.TableData{
				{pterm.Blue("UID"), acc.UID},
				{pterm.Blue("Name"), acc.Name},
				{pterm.Blue("Type"), string(acc.Type)},
				{pterm.Blue("Normal balance"), string(model.NormalBalance(acc.Type))},
				{pterm.Blue("Currency"), acc.Currency},
			}
			pterm.DefaultTable.WithData(header).Render()

			splits, err := svc.Transaction.SplitsForAccount(acc.UID)
			if err != nil {
				return err
			}
			if len(splits) == 0 {
				pterm.Info.Println("No splits recorded for this account")
				return nil
			}

			rows := pterm.TableData{{"Type", "Quantity", "Memo", "Transaction"}}
			for _, sp := range splits {
				rows = append(rows, []string{
					string(sp.Type), sp.Quantity.String(), sp.Memo, sp.TransactionUID,
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}

	return showCmd
}
