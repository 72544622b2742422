// Package history records completed payout runs in a SQL database.
//
// Two tables are used: payout_runs holds one row per run with its counters, and
// payout_unmatched_names holds every unmatched identifier with the prefix of the
// source it came from and its position in the run's accumulation order. The store is
// optional; the batch command only opens it when database.enabled is set.
package history
