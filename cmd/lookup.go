package cmd

import (
	"fmt"

	"leaderboard-payouts/core/config"
	"leaderboard-payouts/core/logger"
	"leaderboard-payouts/feature/payouts"
	"leaderboard-payouts/feature/payouts/mee6"

	"github.com/spf13/cobra"
)

// lookupCmd resolves usernames against the mapping workbook without fetching anything.
var lookupCmd = &cobra.Command{
	Use:   "lookup [username...]",
	Short: "Show the payout name a leaderboard username maps to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if mappingPath != "" {
			cfg.Payouts.MappingPath = mappingPath
		}
		// Read the workbook once for all arguments.
		if cfg.Payouts.MappingCacheSeconds <= 0 {
			cfg.Payouts.MappingCacheSeconds = 60
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		svc, err := payouts.NewService(cfg.Payouts, mee6.NewClient(cfg.Leaderboard), l)
		if err != nil {
			return err
		}

		for _, username := range args {
			res, err := svc.Lookup(cmd.Context(), username)
			if err != nil {
				return err
			}
			if res.Matched {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", res.Identifier, res.DisplayName)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> (no match)\n", res.Identifier)
			}
		}
		return nil
	},
}

func init() {
	lookupCmd.Flags().StringVar(&mappingPath, "mapping", "", "Mapping workbook (overrides payouts.mapping_path)")
	RootCmd.AddCommand(lookupCmd)
}
