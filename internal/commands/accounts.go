package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cashwatch/cashwatch/internal/render"
)

func newAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			accounts, err := a.accounts.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.AccountTable(accounts, a.cfg.UI.CurrencySymbol))
			return nil
		},
	}

	cmd.AddCommand(newSetBalanceCommand())
	return cmd
}

func newSetBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-balance <account-name> <available> [current]",
		Short: "Record an account's balances for shortfall analysis",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			acct, err := a.accounts.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if acct == nil {
				return fmt.Errorf("unknown account %q", args[0])
			}

			available, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("available balance: %w", err)
			}
			current := available
			if len(args) == 3 {
				current, err = decimal.NewFromString(args[2])
				if err != nil {
					return fmt.Errorf("current balance: %w", err)
				}
			}
			return a.accounts.UpdateBalances(ctx, acct.ID, &available, &current)
		},
	}
}
