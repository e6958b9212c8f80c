package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashwatch/cashwatch/internal/render"
)

func newItemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List detected recurring items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			items, err := a.recurring.List(ctx)
			if err != nil {
				return err
			}
			names, err := a.accountNames(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.ItemTable(items, names, a.cfg.UI.CurrencySymbol))
			return nil
		},
	}

	cmd.AddCommand(
		newItemFlagCommand("confirm", "Mark a recurring item as confirmed", func(ctx context.Context, a *app, id string) error {
			return a.recurring.SetConfirmed(ctx, id, true)
		}),
		newItemFlagCommand("mute", "Deactivate a recurring item (excluded from projections)", func(ctx context.Context, a *app, id string) error {
			return a.recurring.SetActive(ctx, id, false)
		}),
		newItemFlagCommand("unmute", "Reactivate a recurring item", func(ctx context.Context, a *app, id string) error {
			return a.recurring.SetActive(ctx, id, true)
		}),
	)
	return cmd
}

func newItemFlagCommand(name, short string, apply func(context.Context, *app, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <item-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			item, err := a.recurring.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("no recurring item with id %q", args[0])
			}
			return apply(ctx, a, item.ID)
		},
	}
}
