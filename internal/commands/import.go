package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a transaction CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			loc, err := time.LoadLocation(a.cfg.UI.Timezone)
			if err != nil {
				loc = time.Local
			}

			res, err := a.ingester.ImportCSV(cmd.Context(), f, account, loc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d duplicates\n", res.Imported, res.Skipped)
			for _, e := range res.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "warn: %v\n", e)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "import every row into this account, ignoring the account column")
	return cmd
}
