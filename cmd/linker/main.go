package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "linker",
		Short: "Eviction to assisted-housing property linkage",
		Long: `Links eviction filings to assisted-housing properties by standardized address,
geocodes what does not match exactly and keeps a reviewable suggestion queue.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createMigrateCmd())
	rootCmd.AddCommand(createIngestCmd())
	rootCmd.AddCommand(createRunCmd())
	rootCmd.AddCommand(createStandardizeCmd())
	rootCmd.AddCommand(createStandardizePropertiesCmd())
	rootCmd.AddCommand(createSuggestionsCmd())
	rootCmd.AddCommand(createDecisionCmd("confirm", "Confirm a suggested match", func(a *app) decision { return a.suggestions.Confirm }))
	rootCmd.AddCommand(createDecisionCmd("reject", "Reject a suggested match", func(a *app) decision { return a.suggestions.Reject }))
	rootCmd.AddCommand(createDecisionCmd("undo", "Undo a manual decision", func(a *app) decision { return a.suggestions.Undo }))
	rootCmd.AddCommand(createHistoryCmd())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
