// Package publish archives payout reports to S3-compatible object storage.
//
// Reports of one run share the key prefix {report_prefix}/{run_id}/, so a later run
// never overwrites an earlier archive even though NEWNAMES.xlsx keeps its name.
package publish
