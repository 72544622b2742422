package mapping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leaderboard-payouts/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// ErrLoad marks every failure to read the mapping workbook.
var ErrLoad = errors.New("mapping load failed")

const (
	identifierColumn = 0
	displayColumn    = 1
)

// LoadWorkbook reads the active sheet of an xlsx workbook into a Mapping.
//
// Row 1 is a header and is skipped. Column A holds the leaderboard identifier and
// column B the display name. Cells are read as their stored values, so numbers keep
// all their digits. Both are trimmed; rows where either is empty add no
// entry, so those identifiers stay unmatched. On failure the returned Mapping is
// empty, never nil.
func LoadWorkbook(path string) (reconcile.Mapping, error) {
	m := reconcile.Mapping{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return m, fmt.Errorf("%w: open %s: %w", ErrLoad, path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return m, fmt.Errorf("%w: %s has no active sheet", ErrLoad, path)
	}

	// Raw values keep numeric identifiers as their stored digits instead of the
	// General-format text (3.1738865799476e+17).
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return m, fmt.Errorf("%w: read sheet %q: %w", ErrLoad, sheet, err)
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		identifier := cell(row, identifierColumn)
		display := cell(row, displayColumn)
		if identifier == "" || display == "" {
			continue
		}
		m.Set(identifier, display)
	}

	return m, nil
}

// Load adapts LoadWorkbook to reconcile.LoadFunc.
func Load(ctx context.Context, path string) (reconcile.Mapping, error) {
	if err := ctx.Err(); err != nil {
		return reconcile.Mapping{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return LoadWorkbook(path)
}

// cell returns the trimmed value at idx; excelize omits trailing empty cells.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
