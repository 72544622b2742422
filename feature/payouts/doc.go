// Package payouts turns leaderboards into payout reports.
//
// A run walks the configured sources strictly in order:
//
//  1. The username mapping workbook is loaded once (feature/payouts/mapping).
//     A broken workbook is recorded and the run continues with an empty mapping.
//  2. Each source's leaderboard is fetched (feature/payouts/mee6). A failed or empty
//     fetch skips the source.
//  3. Records are resolved (core/reconcile) and written to {prefix}Users_{time}.csv
//     (feature/payouts/report). Unmatched identifiers are accumulated even when
//     the CSV could not be written.
//  4. If anything was unmatched, NEWNAMES.xlsx is written with every unmatched
//     identifier in fetch order.
//  5. Optionally, reports are archived to object storage (feature/payouts/publish)
//     and the run is recorded in the database (feature/payouts/history).
//
// Every recovered failure becomes a Diagnostic on the RunReport; none of them stops
// the run.
//
// # HTTP Endpoints
//
//   - POST /payouts/run : Runs all sources and returns the RunReport.
//   - GET /payouts/sources : Lists the configured sources.
//   - GET /payouts/lookup/:username : Resolves one username.
//   - GET /payouts/runs : Lists recent runs (requires history).
package payouts
