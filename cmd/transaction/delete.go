package transaction

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/service"
)

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:          "delete <transaction-uid>",
		Short:        "Delete a transaction",
		Long:         `Delete a transaction and all its splits. This action cannot be undone.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Transaction.DeleteTransaction(args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			pterm.Success.Printfln("Transaction %s deleted", args[0])
			return nil
		},
	}

	return deleteCmd
}
