package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ledgerly",
		Short:        "Ledgerly billing service",
		Long:         "ledgerly serves plan limits, usage and upgrade checkouts for the Ledgerly finance app, and ships the tools to migrate its database and inspect plans and usage.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newPlansCmd(),
		newUsageCmd(),
	)
	return rootCmd
}
