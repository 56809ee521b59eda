package account

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/service"
)

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an account",
		Long: `Delete an account by name. Deletion is refused while the account
still owns splits; delete or move those transactions first.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := svc.Account.GetAccountByName(args[0])
			if err != nil {
				return err
			}

			if err := svc.Account.DeleteAccount(acc.UID); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}

			pterm.Success.Printfln("Account %q deleted", acc.Name)
			return nil
		},
	}

	return deleteCmd
}
