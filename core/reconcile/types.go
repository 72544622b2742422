package reconcile

import "strings"

// ScoreScale converts a leaderboard level into a payout score.
const ScoreScale int64 = 100000

// Record is a single leaderboard entry as returned by a source.
type Record struct {
	// Identifier is the raw username reported by the leaderboard.
	Identifier string `json:"identifier"`

	// Level is the leaderboard level.
	Level int64 `json:"level"`
}

// Resolved is the payout row derived from a Record.
type Resolved struct {
	// DisplayName is the mapped name, or the raw identifier when unmatched.
	DisplayName string `json:"display_name"`

	// Score is Level multiplied by ScoreScale.
	Score int64 `json:"score"`

	// Matched reports whether DisplayName came from the mapping.
	Matched bool `json:"matched"`
}

// Result is the reconciliation output for one source.
type Result struct {
	// Resolved holds one row per input record, in input order.
	Resolved []Resolved `json:"resolved"`

	// Unmatched holds the raw identifiers with no mapping, in input order.
	// Duplicates are kept.
	Unmatched []string `json:"unmatched"`
}

// Mapping maps normalized identifiers to display names.
// It is built once per run and only read afterwards.
type Mapping map[string]string

// NormalizeKey case-folds an identifier for mapping lookups.
func NormalizeKey(identifier string) string {
	return strings.ToLower(identifier)
}

// Set stores a display name under the normalized identifier.
// A later Set for the same identifier wins.
func (m Mapping) Set(identifier, displayName string) {
	m[NormalizeKey(identifier)] = displayName
}

// Lookup returns the display name for identifier, ignoring case.
func (m Mapping) Lookup(identifier string) (string, bool) {
	name, ok := m[NormalizeKey(identifier)]
	return name, ok
}
