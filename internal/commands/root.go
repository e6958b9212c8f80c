package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashwatch/cashwatch/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cashwatch",
		Short:   "Recurring-charge detection and cash-flow projection",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newImportCommand(),
		newDedupeCommand(),
		newDetectCommand(),
		newProjectCommand(),
		newSummarizeCommand(),
		newItemsCommand(),
		newAccountsCommand(),
	)

	return rootCmd
}
