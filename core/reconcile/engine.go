package reconcile

// Resolve maps every record to exactly one Resolved row.
//
// Records whose identifier has no mapping keep their raw identifier as the display
// name and are appended to Result.Unmatched. The output is aligned index for index
// with records, and Resolve is a pure function of its inputs.
func Resolve(records []Record, mapping Mapping) Result {
	result := Result{
		Resolved:  make([]Resolved, 0, len(records)),
		Unmatched: []string{},
	}

	for _, rec := range records {
		row := Resolved{
			DisplayName: rec.Identifier,
			Score:       rec.Level * ScoreScale,
		}

		if name, ok := mapping.Lookup(rec.Identifier); ok {
			row.DisplayName = name
			row.Matched = true
		} else {
			result.Unmatched = append(result.Unmatched, rec.Identifier)
		}

		result.Resolved = append(result.Resolved, row)
	}

	return result
}

// Summary counts matched and unmatched rows in a Result.
func (r Result) Summary() (matched, unmatched int) {
	for _, row := range r.Resolved {
		if row.Matched {
			matched++
		}
	}
	return matched, len(r.Resolved) - matched
}
