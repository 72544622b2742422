package payouts

import "time"

// DiagnosticKind classifies a recovered failure.
type DiagnosticKind string

const (
	// KindMappingLoad means the mapping could not be read; every identifier is unmatched.
	KindMappingLoad DiagnosticKind = "mapping_load"
	// KindFetch means a source's leaderboard could not be fetched; it was skipped.
	KindFetch DiagnosticKind = "fetch"
	// KindWrite means a report file could not be written.
	KindWrite DiagnosticKind = "write"
	// KindPublish means a report could not be archived to object storage.
	KindPublish DiagnosticKind = "publish"
	// KindHistory means the run could not be persisted.
	KindHistory DiagnosticKind = "history"
	// KindCanceled means the run stopped before processing every source.
	KindCanceled DiagnosticKind = "canceled"
)

// Diagnostic is a failure the run recovered from.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Source  string         `json:"source,omitempty"`
	Message string         `json:"message"`
}

// SourceReport describes what happened to one source.
type SourceReport struct {
	Source
	// Skipped is true when the source returned no records.
	Skipped bool `json:"skipped"`
	// Records is the number of leaderboard records fetched.
	Records int `json:"records"`
	// Matched is the number of records resolved through the mapping.
	Matched int `json:"matched"`
	// Unmatched holds this source's unmatched identifiers in order.
	Unmatched []string `json:"unmatched"`
	// ReportPath is the CSV written for the source, empty if none.
	ReportPath string `json:"report_path,omitempty"`
}

// RunSummary aggregates a run.
type RunSummary struct {
	SourcesProcessed int `json:"sources_processed"`
	SourcesSkipped   int `json:"sources_skipped"`
	Records          int `json:"records"`
	Matched          int `json:"matched"`
	Unmatched        int `json:"unmatched"`
}

// RunReport is the result of one payout run.
type RunReport struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// MappingEntries is the size of the mapping used.
	MappingEntries int `json:"mapping_entries"`

	Sources []SourceReport `json:"sources"`

	// Unmatched holds every unmatched identifier across sources in fetch order.
	Unmatched []string `json:"unmatched"`

	// UnmatchedReport is the unmatched workbook path, empty when none was written.
	UnmatchedReport string `json:"unmatched_report,omitempty"`

	// Published holds object keys of archived reports.
	Published []string `json:"published,omitempty"`

	Diagnostics []Diagnostic `json:"diagnostics"`
	Summary     RunSummary   `json:"summary"`
}

// AllMatched reports whether every fetched identifier had a mapping.
func (r *RunReport) AllMatched() bool {
	return len(r.Unmatched) == 0
}

// Files returns every report file written by the run.
func (r *RunReport) Files() []string {
	var files []string
	for _, s := range r.Sources {
		if s.ReportPath != "" {
			files = append(files, s.ReportPath)
		}
	}
	if r.UnmatchedReport != "" {
		files = append(files, r.UnmatchedReport)
	}
	return files
}

// LookupResult is the resolution of a single identifier.
type LookupResult struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"display_name"`
	Matched     bool   `json:"matched"`
}
