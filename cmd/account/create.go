package account

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/service"
)

func NewCreateCmd(svc *service.Service) *cobra.Command {
	var (
		accType        string
		accParent      string
		accCurrency    string
		accDesc        string
		accPlaceholder bool
	)

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new account",
		Long: `Create a new account in the ledger.

The type decides the account's normal balance: assets, cash, bank and
expense accounts report debit-positive, liabilities, equity and income
report credit-positive.

Example: tally account create Checking -t BANK --currency USD`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseAccountType(accType)
			if err != nil {
				return err
			}

			var parentUID *string
			if accParent != "" {
				parent, err := svc.Account.GetAccountByName(accParent)
				if err != nil {
					return fmt.Errorf("parent account: %w", err)
				}
				parentUID = &parent.UID
			}

			acc, err := svc.Account.CreateAccount(args[0], t, accCurrency, accDesc, parentUID, accPlaceholder)
			if err != nil {
				return err
			}

			tableData := pterm.TableData{
				{pterm.Blue("UID"), acc.UID},
				{pterm.Blue("Name"), acc.Name},
				{pterm.Blue("Type"), string(acc.Type)},
				{pterm.Blue("Normal balance"), string(model.NormalBalance(acc.Type))},
				{pterm.Blue("Currency"), acc.Currency},
			}
			pterm.DefaultTable.WithData(tableData).Render()
			pterm.Success.Println("Account created successfully!")
			return nil
		},
	}

	createCmd.Flags().StringVarP(&accType, "type", "t", "", "Account type (ASSET, BANK, CASH, LIABILITY, EQUITY, INCOME, EXPENSE, ...)")
	createCmd.Flags().StringVarP(&accParent, "parent", "p", "", "Parent account name")
	createCmd.Flags().StringVar(&accCurrency, "currency", "", "Currency code (defaults to parent's currency or config default)")
	createCmd.Flags().StringVarP(&accDesc, "description", "d", "", "Account description (optional)")
	createCmd.Flags().BoolVar(&accPlaceholder, "placeholder", false, "Structural account that refuses splits")
	_ = createCmd.MarkFlagRequired("type")

	return createCmd
}
