package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"leaderboard-payouts/core/reconcile"
)

// ErrWrite marks every failure to write a report file.
var ErrWrite = errors.New("report write failed")

// TimestampLayout is the timestamp embedded in per-source report names.
const TimestampLayout = "2006-01-02_15-04-05"

// SourceReportName returns {prefix}Users_{timestamp}.csv for the given write time.
func SourceReportName(prefix string, now time.Time) string {
	return prefix + "Users_" + now.Format(TimestampLayout) + ".csv"
}

// WriteSourceReport writes one "displayName,score" row per resolved record, without a
// header, into dir. It returns the path written. A file with the same name is
// replaced.
func WriteSourceReport(dir, prefix string, rows []reconcile.Resolved, now time.Time) (string, error) {
	path := filepath.Join(dir, SourceReportName(prefix, now))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, fmt.Errorf("%w: create directory %s: %w", ErrWrite, dir, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return path, fmt.Errorf("%w: open %s: %w", ErrWrite, path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.UseCRLF = true

	for i, row := range rows {
		if err := writer.Write([]string{row.DisplayName, strconv.FormatInt(row.Score, 10)}); err != nil {
			return path, fmt.Errorf("%w: row %d of %s: %w", ErrWrite, i, path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return path, fmt.Errorf("%w: flush %s: %w", ErrWrite, path, err)
	}
	if err := file.Close(); err != nil {
		return path, fmt.Errorf("%w: close %s: %w", ErrWrite, path, err)
	}
	return path, nil
}
