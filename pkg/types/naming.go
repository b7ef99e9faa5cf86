package types

import (
	"strconv"
	"strings"
	"time"
)

// NamingConfig controls how artifact names are derived from a table name
// and a year. Prefix and suffix templates may contain the {year}
// placeholder. The format extension is appended by the writer layer, not
// here.
type NamingConfig struct {
	TablePrefix     string `json:"table_prefix" yaml:"table_prefix"`
	TableSuffix     string `json:"table_suffix" yaml:"table_suffix"`
	LowercaseNames  bool   `json:"lowercase_names" yaml:"lowercase_names"`
	ReplaceSpaces   bool   `json:"replace_spaces" yaml:"replace_spaces"`
	SanitizeChars   bool   `json:"sanitize_chars" yaml:"sanitize_chars"`
	TimestampSuffix bool   `json:"timestamp_suffix" yaml:"timestamp_suffix"`
}

// ArtifactName derives the artifact base name for one (table, year) job.
// It is a pure function of its arguments: identical inputs always produce
// identical names, and distinct (table, year) pairs produce distinct names.
// now only matters when TimestampSuffix is set; the orchestrator passes one
// timestamp for the whole run.
func ArtifactName(table string, year int, cfg NamingConfig, now time.Time) string {
	y := strconv.Itoa(year)
	name := table
	if cfg.LowercaseNames {
		name = strings.ToLower(name)
	}

	if cfg.TablePrefix != "" {
		name = strings.ReplaceAll(cfg.TablePrefix, "{year}", y) + name
	} else {
		name = name + "-" + y
	}
	if cfg.TableSuffix != "" {
		name = name + strings.ReplaceAll(cfg.TableSuffix, "{year}", y)
	}
	if cfg.TimestampSuffix {
		name = name + "_" + now.Format("20060102_150405")
	}
	if cfg.ReplaceSpaces {
		name = strings.Join(strings.Fields(name), "_")
	}
	if cfg.SanitizeChars {
		name = SanitizeName(name)
	}
	return name
}

// SanitizeName strips everything outside [A-Za-z0-9_-].
func SanitizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
