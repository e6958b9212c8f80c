package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashwatch/cashwatch/internal/service"
)

func newDedupeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Mark duplicate transactions so they do not distort detection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			marked, err := a.deduper.MarkDuplicates(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked %d duplicates\n", marked)
			return nil
		},
	}
}

func newDetectCommand() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect recurring charges from transaction history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			var res service.DetectResult
			if account != "" {
				acct, err := a.accounts.GetByName(ctx, account)
				if err != nil {
					return err
				}
				if acct == nil {
					return fmt.Errorf("unknown account %q", account)
				}
				res, err = a.detector.DetectAccount(ctx, acct.ID)
				if err != nil {
					return err
				}
			} else {
				res, err = a.detector.DetectAll(ctx)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"%d merchant groups: %d recurring, %d too few occurrences, %d irregular timing, %d variable amounts\n",
				res.Groups, res.Upserted, res.SkippedEvidence, res.SkippedCadence, res.SkippedAmounts)
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "detect for a single account by name")
	return cmd
}
