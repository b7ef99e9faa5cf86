package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Read-path errors.
var (
	ErrNotFound          = errors.New("source file not found")
	ErrEmptyFile         = errors.New("source file is empty")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTableNotFound     = errors.New("table not found")
	ErrInvalidTable      = errors.New("invalid table")
)

// Strategy and partition errors.
var (
	ErrStrategyUnavailable = errors.New("extraction strategy unavailable")
	ErrNoTables            = errors.New("no tables could be enumerated")
	ErrMissingYearColumn   = errors.New("year column not present in table")
	ErrNoData              = errors.New("no data for partition")
	ErrWriteFailed         = errors.New("write to destination failed")
)

// RemediationHint tells the operator how to recover when no extraction
// strategy can serve a legacy file. Shown on aggregate extraction failures
// and in unsupported-environment reports.
const RemediationHint = "install mdb-tools (or the Access ODBC driver on Windows), " +
	"or convert the file to CSV/SQLite manually and retry"

// AmbiguousTableError is returned when no table name was supplied and the
// source file contains more than one table. It carries the available names
// so the caller can retry with an explicit choice.
type AmbiguousTableError struct {
	Tables []string
}

func (e *AmbiguousTableError) Error() string {
	return fmt.Sprintf("no table specified; available tables: %s",
		strings.Join(e.Tables, ", "))
}

// ExtractionError is the aggregate failure returned when every strategy in
// the chain failed. Attempts records the per-strategy cause; Last is the
// final underlying error; Hint tells the operator how to recover.
type ExtractionError struct {
	Attempts map[string]error
	Last     error
	Hint     string
}

func (e *ExtractionError) Error() string {
	names := make([]string, 0, len(e.Attempts))
	for n := range e.Attempts {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	fmt.Fprintf(&b, "all extraction strategies failed (%s)", strings.Join(names, ", "))
	if e.Last != nil {
		fmt.Fprintf(&b, ": %v", e.Last)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, ". %s", e.Hint)
	}
	return b.String()
}

// Unwrap exposes the last underlying cause to errors.Is/As.
func (e *ExtractionError) Unwrap() error { return e.Last }
