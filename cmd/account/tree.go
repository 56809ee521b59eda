package account

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/service"
)

func NewTreeCmd(svc *service.Service) *cobra.Command {
	treeCmd := &cobra.Command{
		Use:          "tree",
		Short:        "Show the account hierarchy",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := svc.Account.GetAllAccounts()
			if err != nil {
				return err
			}

			children := make(map[string][]*model.Account)
			var roots []*model.Account
			for _, acc := range accounts {
				if acc.ParentUID == nil {
					roots = append(roots, acc)
				} else {
					children[*acc.ParentUID] = append(children[*acc.ParentUID], acc)
				}
			}

			var build func(acc *model.Account) pterm.TreeNode
			build = func(acc *model.Account) pterm.TreeNode {
				node := pterm.TreeNode{Text: acc.Name + " (" + string(acc.Type) + ")"}
				for _, child := range children[acc.UID] {
					node.Children = append(node.Children, build(child))
				}
				return node
			}

			root := pterm.TreeNode{Text: "Accounts"}
			for _, acc := range roots {
				root.Children = append(root.Children, build(acc))
			}
			return pterm.DefaultTree.WithRoot(root).Render()
		},
	}

	return treeCmd
}
