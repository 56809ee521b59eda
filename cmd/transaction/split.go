package transaction

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/service"
)

// NewSplitCmd groups split-level edits. Adding or removing a split marks
// the owning transaction as modified and clears its exported flag.
func NewSplitCmd(svc *service.Service) *cobra.Command {
	splitCmd := &cobra.Command{
		Use:   "split",
		Short: "Add or remove individual splits",
	}

	splitCmd.AddCommand(newSplitAddCmd(svc))
	splitCmd.AddCommand(newSplitDeleteCmd(svc))

	return splitCmd
}

func newSplitAddCmd(svc *service.Service) *cobra.Command {
	var (
		splitType string
		memo      string
	)

	addCmd := &cobra.Command{
		Use:          "add <transaction-uid> <account>=<amount>",
		Short:        "Add a split to an existing transaction",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseSplitType(splitType)
			if err != nil {
				return err
			}

			tx, err := svc.Transaction.GetTransactionHeader(args[0])
			if err != nil {
				return err
			}

			sp, err := buildSplit(svc, args[1], tx.Currency, t)
			if err != nil {
				return err
			}
			sp.TransactionUID = tx.UID
			sp.Memo = memo

			if err := svc.Transaction.AddSplit(sp); err != nil {
				return err
			}

			pterm.Success.Printfln("Split %s added to transaction %s", sp.UID, tx.UID)
			return nil
		},
	}

	addCmd.Flags().StringVarP(&splitType, "type", "t", "DEBIT", "Split type: DEBIT or CREDIT")
	addCmd.Flags().StringVarP(&memo, "memo", "m", "", "Split memo")

	return addCmd
}

func newSplitDeleteCmd(svc *service.Service) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete <split-uid>",
		Short: "Remove a split",
		Long: `Remove a split by uid. Removing the last split of a transaction
removes the transaction as well.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Transaction.DeleteSplit(args[0]); err != nil {
				return err
			}

			pterm.Success.Printfln("Split %s removed", args[0])
			return nil
		},
	}

	return deleteCmd
}
