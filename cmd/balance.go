package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/service"
)

const dateLayout = "2006-01-02"

func NewBalanceCmd(svc *service.Service) *cobra.Command {
	var (
		accountNames []string
		currency     string
		fromDate     string
		toDate       string
		subtree      bool
	)

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Compute the balance of one or more accounts",
		Long: `Compute the exact balance of a set of accounts, expressed in the
accounts' normal-balance direction. All named accounts must share one
currency. With --subtree, each named account is expanded to include its
descendants.

Example: tally balance -a Checking --from 2026-01-01`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(accountNames) == 0 {
				return fmt.Errorf("name at least one account with --account")
			}

			var (
				uids   []string
				normal model.SplitType
			)
			for i, name := range accountNames {
				acc, err := svc.Account.GetAccountByName(name)
				if err != nil {
					return err
				}
				if currency == "" {
					currency = acc.Currency
				}
				if i == 0 {
					normal = model.NormalBalance(acc.Type)
				}

				uids = append(uids, acc.UID)
				if subtree {
					desc, err := svc.Account.DescendantsOf(acc.UID)
					if err != nil {
						return err
					}
					uids = append(uids, desc...)
				}
			}

			window, err := parseWindow(fromDate, toDate)
			if err != nil {
				return err
			}

			balance, err := svc.Balance.ComputeBalance(uids, currency, normal, window)
			if err != nil {
				return err
			}

			pterm.DefaultBasicText.Printfln("%s (%s-normal)", pterm.Bold.Sprint(balance), normal)
			return nil
		},
	}

	balanceCmd.Flags().StringArrayVarP(&accountNames, "account", "a", nil, "Account name (repeatable)")
	balanceCmd.Flags().StringVar(&currency, "currency", "", "Currency code (defaults to the first account's currency)")
	balanceCmd.Flags().StringVar(&fromDate, "from", "", "Window start (YYYY-MM-DD, inclusive)")
	balanceCmd.Flags().StringVar(&toDate, "to", "", "Window end (YYYY-MM-DD, inclusive)")
	balanceCmd.Flags().BoolVar(&subtree, "subtree", false, "Include each account's descendants")

	return balanceCmd
}

func parseWindow(from, to string) (service.Window, error) {
	var w service.Window
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, time.Local)
		if err != nil {
			return w, fmt.Errorf("invalid --from date %q", from)
		}
		w.Start = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, time.Local)
		if err != nil {
			return w, fmt.Errorf("invalid --to date %q", to)
		}
		// Window bounds are inclusive; stretch the end date to its last
		// second.
		end := t.Add(24*time.Hour - time.Second)
		w.End = &end
	}
	return w, nil
}
