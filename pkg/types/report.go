package types

import (
	"fmt"
	"sort"
)

// Conversion statuses used in batch reports.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SupportReport describes which extraction strategies the host environment
// can run, plus a remediation message when none are usable.
type SupportReport struct {
	Supported           bool     `json:"supported"`
	AvailableStrategies []string `json:"available_strategies"`
	Remediation         string   `json:"remediation_message,omitempty"`
}

// TableYearInfo summarizes the temporal partitioning of one table.
// SkippedRows counts rows whose year column failed to parse; they are
// excluded from every partition but surfaced here as a data-quality signal.
// Error is set when the table could not be analyzed at all.
type TableYearInfo struct {
	RowCount       int    `json:"row_count"`
	ColumnCount    int    `json:"column_count"`
	AvailableYears []int  `json:"available_years"`
	YearRange      string `json:"year_range"`
	SkippedRows    int    `json:"skipped_rows,omitempty"`
	Error          string `json:"error,omitempty"`
}

// YearSummary maps each table in a source file to its partition info.
// Computed on demand, never persisted.
type YearSummary struct {
	FilePath   string                   `json:"file_path"`
	FileSizeMB float64                  `json:"file_size_mb"`
	Tables     map[string]TableYearInfo `json:"tables"`
}

// Conversion is the outcome of one (table, year) batch job.
type Conversion struct {
	Status        string `json:"status"`
	Table         string `json:"table"`
	Year          int    `json:"year"`
	RowsConverted int    `json:"rows_converted"`
	Columns       int    `json:"columns"`
	Artifact      string `json:"artifact,omitempty"`
	SizeBytes     int64  `json:"size_bytes,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BatchReport is the consolidated result of a year-partitioned conversion
// run. Conversions holds one entry per enumerated (table, year) pair, keyed
// "{table}_{year}"; an entry is never dropped, even on failure. The
// aggregate totals cover successful jobs only.
type BatchReport struct {
	OutputDirectory    string                `json:"output_directory"`
	TotalTables        int                   `json:"total_tables"`
	Conversions        map[string]Conversion `json:"conversions"`
	TotalRowsConverted int                   `json:"total_rows_converted"`
	TotalFilesCreated  int                   `json:"total_files_created"`
	TotalSizeMB        float64               `json:"total_size_mb"`
}

// JobKey is the stable identifier for one (table, year) pair.
func JobKey(table string, year int) string {
	return fmt.Sprintf("%s_%d", table, year)
}

// YearRange renders a sorted year set as "2008-2011", "2008", or "".
func YearRange(years []int) string {
	if len(years) == 0 {
		return ""
	}
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)
	if sorted[0] == sorted[len(sorted)-1] {
		return fmt.Sprintf("%d", sorted[0])
	}
	return fmt.Sprintf("%d-%d", sorted[0], sorted[len(sorted)-1])
}
