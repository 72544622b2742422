package history

import (
	"context"
	"errors"
	"fmt"

	"leaderboard-payouts/core/database"

	"gorm.io/gorm"
)

// ErrHistory marks every failure of the history store.
var ErrHistory = errors.New("run history failed")

var requiredColumns = map[string][]string{
	"payout_runs":            {"id", "started_at", "finished_at", "sources_processed", "sources_skipped", "records", "unmatched_count"},
	"payout_unmatched_names": {"id", "run_id", "source_prefix", "username", "position"},
}

// Store persists payout runs with GORM.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on an open connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the history tables and verifies their columns.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Run{}, &UnmatchedName{}); err != nil {
		return fmt.Errorf("%w: migrate: %w", ErrHistory, err)
	}
	for table, columns := range requiredColumns {
		missing, err := database.MissingColumns(s.db, table, columns)
		if err != nil {
			return fmt.Errorf("%w: inspect %s: %w", ErrHistory, table, err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: table %s is missing columns %v", ErrHistory, table, missing)
		}
	}
	return nil
}

// Save inserts a run together with its unmatched names in one transaction.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("%w: save run %s: %w", ErrHistory, run.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first, without their unmatched names.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	var runs []Run
	err := s.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list runs: %w", ErrHistory, err)
	}
	return runs, nil
}

// Unmatched returns the unmatched names of a run in accumulation order.
func (s *Store) Unmatched(ctx context.Context, runID string) ([]UnmatchedName, error) {
	var names []UnmatchedName
	err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("position ASC").Find(&names).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list unmatched for %s: %w", ErrHistory, runID, err)
	}
	return names, nil
}
