package cmd

import (
	"fmt"
	"os"

	"leaderboard-payouts/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "leaderboard-payouts",
	Short: "Leaderboard payout reports",
	Long: `Leaderboard Payouts fetches level leaderboards, maps usernames to payout names
through a spreadsheet and writes one CSV per leaderboard plus a workbook of
usernames that have no mapping yet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives ISO8601 timestamps for CLI users.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
