package transaction

import (
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/service"
)

func NewTransactionCmd(svc *service.Service) *cobra.Command {
	transactionCmd := &cobra.Command{
		Use:   "transaction",
		Short: "Manage transactions",
		Long:  "Manage transactions: record, view, delete, and edit individual splits.",
	}

	transactionCmd.AddCommand(NewAddCmd(svc))
	transactionCmd.AddCommand(NewListCmd(svc))
	transactionCmd.AddCommand(NewShowCmd(svc))
	transactionCmd.AddCommand(NewDeleteCmd(svc))
	transactionCmd.AddCommand(NewSplitCmd(svc))

	return transactionCmd
}
