package history

import "time"

// Run is one persisted payout run.
type Run struct {
	ID               string          `gorm:"column:id;primaryKey;size:36" json:"id"`
	StartedAt        time.Time       `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt       time.Time       `gorm:"column:finished_at" json:"finished_at"`
	SourcesProcessed int             `gorm:"column:sources_processed" json:"sources_processed"`
	SourcesSkipped   int             `gorm:"column:sources_skipped" json:"sources_skipped"`
	Records          int             `gorm:"column:records" json:"records"`
	UnmatchedCount   int             `gorm:"column:unmatched_count" json:"unmatched_count"`
	UnmatchedNames   []UnmatchedName `gorm:"foreignKey:RunID" json:"unmatched_names,omitempty"`
}

// TableName overrides the GORM table name.
func (Run) TableName() string {
	return "payout_runs"
}

// UnmatchedName is one unmatched identifier of a run, in accumulation order.
type UnmatchedName struct {
	ID           uint   `gorm:"column:id;primaryKey" json:"-"`
	RunID        string `gorm:"column:run_id;size:36;index" json:"run_id"`
	SourcePrefix string `gorm:"column:source_prefix;size:32" json:"source_prefix"`
	Username     string `gorm:"column:username;size:255" json:"username"`
	Position     int    `gorm:"column:position" json:"position"`
}

// TableName overrides the GORM table name.
func (UnmatchedName) TableName() string {
	return "payout_unmatched_names"
}
