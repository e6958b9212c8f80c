package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashwatch/cashwatch/internal/render"
)

func newProjectCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "project",
		Short: "List projected recurring expenses within the horizon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			horizon := days
			if horizon <= 0 {
				horizon = a.cfg.Projection.HorizonDays
			}
			ctx := cmd.Context()
			expenses, err := a.projector.Project(ctx, horizon)
			if err != nil {
				return err
			}
			names, err := a.accountNames(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.ExpenseTable(expenses, names, a.cfg.UI.CurrencySymbol))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "projection horizon in days (default from config)")
	return cmd
}

func newSummarizeCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Total projected outflow and shortfall warnings per account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			horizon := days
			if horizon <= 0 {
				horizon = a.cfg.Projection.HorizonDays
			}
			rep, err := a.projector.Summarize(cmd.Context(), horizon)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Summary(rep, horizon, a.cfg.UI.CurrencySymbol))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "projection horizon in days (default from config)")
	return cmd
}
