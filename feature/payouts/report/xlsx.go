package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const (
	// UnmatchedSheet is the single sheet of the unmatched report.
	UnmatchedSheet = "New Names"
	// UnmatchedHeader is written to A1 of the unmatched report.
	UnmatchedHeader = "Unmatched Usernames"
	// DefaultUnmatchedFile is the unmatched report name used when none is configured.
	DefaultUnmatchedFile = "NEWNAMES.xlsx"
)

// WriteUnmatchedReport writes the unmatched identifiers to an xlsx workbook in dir,
// one per row starting at A2, in the given order. An existing file is overwritten.
func WriteUnmatchedReport(dir, name string, unmatched []string) (string, error) {
	if name == "" {
		name = DefaultUnmatchedFile
	}
	path := filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, fmt.Errorf("%w: create directory %s: %w", ErrWrite, dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, UnmatchedSheet); err != nil {
		return path, fmt.Errorf("%w: rename sheet: %w", ErrWrite, err)
	}
	if err := f.SetCellStr(UnmatchedSheet, "A1", UnmatchedHeader); err != nil {
		return path, fmt.Errorf("%w: write header: %w", ErrWrite, err)
	}

	for i, username := range unmatched {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return path, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		// SetCellStr keeps identifiers like "007" from becoming numbers.
		if err := f.SetCellStr(UnmatchedSheet, cell, username); err != nil {
			return path, fmt.Errorf("%w: write %s: %w", ErrWrite, cell, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return path, fmt.Errorf("%w: save %s: %w", ErrWrite, path, err)
	}
	return path, nil
}
