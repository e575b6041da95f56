package commands

import (
	"github.com/spf13/cobra"

	"github.com/swissfort-mfg/entrydesk/internal/buildinfo"
	"github.com/swissfort-mfg/entrydesk/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "entrydesk",
		Short:   "Transaction entry for the shop floor",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", config.FileName, "path to the config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCalcCommand())
	rootCmd.AddCommand(newBatchCommand())

	return rootCmd
}
