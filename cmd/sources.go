package cmd

import (
	"fmt"

	"leaderboard-payouts/core/config"

	"github.com/spf13/cobra"
)

// sourcesCmd prints the configured sources in processing order.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured leaderboard sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		sources, err := cfg.Payouts.ParseSources()
		if err != nil {
			return err
		}
		for i, s := range sources {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s  %s  -> %sUsers_<timestamp>.csv\n", i+1, s.Prefix, s.ID, s.Prefix)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sourcesCmd)
}
