package account

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/service"
)

func NewListCmd(svc *service.Service) *cobra.Command {
	var showHidden bool

	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List all accounts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := svc.Account.GetAllAccounts()
			if err != nil {
				return err
			}

			tableData := pterm.TableData{{"Name", "Type", "Currency", "UID"}}
			for _, acc := range accounts {
				if acc.Hidden && !showHidden {
					continue
				}
				tableData = append(tableData, []string{
					acc.Name, string(acc.Type), acc.Currency, acc.UID,
				})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
		},
	}

	listCmd.Flags().BoolVar(&showHidden, "hidden", false, "Include hidden accounts")

	return listCmd
}
