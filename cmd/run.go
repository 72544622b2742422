package cmd

import (
	"bufio"
	"fmt"
	"io"

	"leaderboard-payouts/core/config"
	"leaderboard-payouts/core/logger"
	"leaderboard-payouts/feature/payouts"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the run command
	mappingPath string
	outputDir   string
	pauseOnExit bool
)

// runCmd performs one payout run over every configured source.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch all leaderboards and write payout reports",
	Long: `Fetches every configured leaderboard in order, maps usernames through the
mapping workbook and writes {prefix}Users_{timestamp}.csv per leaderboard.
Usernames without a mapping are collected into NEWNAMES.xlsx.

Examples:
  # Use the configured sources and Usernames.xlsx in the current directory
  run

  # Write reports elsewhere and wait for Enter before exiting
  run --output-dir ./out --pause`,
	RunE: runPayouts,
}

func init() {
	runCmd.Flags().StringVar(&mappingPath, "mapping", "", "Mapping workbook (overrides payouts.mapping_path)")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "Report directory (overrides payouts.output_dir)")
	runCmd.Flags().BoolVar(&pauseOnExit, "pause", false, "Wait for Enter before exiting")

	RootCmd.AddCommand(runCmd)
}

func runPayouts(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if mappingPath != "" {
		cfg.Payouts.MappingPath = mappingPath
	}
	if outputDir != "" {
		cfg.Payouts.OutputDir = outputDir
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	svc, err := buildService(cmd.Context(), cfg, l)
	if err != nil {
		return fmt.Errorf("failed to build payout service: %w", err)
	}

	rep, err := svc.Run(cmd.Context())
	if rep != nil {
		printRunReport(cmd.OutOrStdout(), l, rep)
	}

	if pauseOnExit {
		waitForEnter(cmd.OutOrStdout(), cmd.InOrStdin())
	}
	return err
}

// printRunReport prints the unmatched usernames, or the all-matched confirmation.
func printRunReport(out io.Writer, l *zap.Logger, rep *payouts.RunReport) {
	for _, d := range rep.Diagnostics {
		l.Warn("Recovered failure",
			zap.String("kind", string(d.Kind)),
			zap.String("source", d.Source),
			zap.String("message", d.Message),
		)
	}

	fmt.Fprintf(out, "\n%s\n", rep.Summary)

	if rep.AllMatched() {
		fmt.Fprintln(out, "All usernames have a match in the mapping workbook")
		return
	}

	if rep.UnmatchedReport != "" {
		fmt.Fprintf(out, "Usernames with no match have been saved to %s.\n", rep.UnmatchedReport)
	} else {
		fmt.Fprintln(out, "Usernames with no match (the unmatched workbook could not be written):")
	}
	for _, name := range rep.Unmatched {
		fmt.Fprintln(out, name)
	}
}

func waitForEnter(out io.Writer, in io.Reader) {
	fmt.Fprint(out, "Press Enter to exit...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}

