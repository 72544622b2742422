package payouts

import (
	"fmt"
	"strings"
)

// Config holds the payout run settings.
type Config struct {
	// MappingPath is the username mapping workbook.
	MappingPath string `mapstructure:"mapping_path" default:"Usernames.xlsx"`
	// OutputDir is where reports are written.
	OutputDir string `mapstructure:"output_dir" default:"."`
	// UnmatchedFile is the name of the consolidated unmatched report.
	UnmatchedFile string `mapstructure:"unmatched_file" default:"NEWNAMES.xlsx"`
	// Sources is an ordered, comma separated list of sourceID:prefix pairs.
	Sources string `mapstructure:"sources" default:"317388657994760194:ISFL,360525334472556544:DSFL"`
	// MappingCacheSeconds keeps a loaded mapping between runs. Zero reloads every run.
	MappingCacheSeconds int `mapstructure:"mapping_cache_seconds" default:"0"`
}

// Source is one leaderboard processed by a run.
type Source struct {
	// ID is the leaderboard identifier passed to the fetcher.
	ID string `json:"id"`
	// Prefix names the source's report file.
	Prefix string `json:"prefix"`
}

// ParseSources parses Sources, keeping its order.
func (c Config) ParseSources() ([]Source, error) {
	var sources []Source
	seen := make(map[string]struct{})

	for _, part := range strings.Split(c.Sources, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, prefix, ok := strings.Cut(part, ":")
		id, prefix = strings.TrimSpace(id), strings.TrimSpace(prefix)
		if !ok || id == "" || prefix == "" {
			return nil, fmt.Errorf("source %q is not in id:prefix form", part)
		}
		if _, dup := seen[prefix]; dup {
			return nil, fmt.Errorf("prefix %q is used by more than one source", prefix)
		}
		seen[prefix] = struct{}{}
		sources = append(sources, Source{ID: id, Prefix: prefix})
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}
	return sources, nil
}
