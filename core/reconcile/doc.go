// Package reconcile matches leaderboard records against a username mapping.
//
// It is the only place that decides how an identifier becomes a display name:
//
//   - Identifiers are compared case-insensitively (NormalizeKey).
//   - Every record yields exactly one Resolved row; nothing is dropped.
//   - An identifier without a mapping keeps its raw spelling as the display name
//     and is recorded in Result.Unmatched, once per occurrence.
//   - The payout score is Level * ScoreScale, computed in int64.
//
// # Cache
//
// MappingCache keeps loaded mappings for a TTL and uses singleflight so concurrent
// runs in server mode share one workbook read. A zero TTL reloads on every Get,
// which is what the batch command uses.
//
// # Usage Example
//
//	mapping := reconcile.Mapping{}
//	mapping.Set("Alice", "Alice A.")
//	result := reconcile.Resolve(records, mapping)
//	for _, row := range result.Resolved {
//	    fmt.Println(row.DisplayName, row.Score)
//	}
package reconcile
