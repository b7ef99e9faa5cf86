// Package partition discovers the distinct years present in a table's
// year-bearing column and re-extracts the rows belonging to one year.
// Every call re-reads the full table through the extraction chain; the
// engine holds no table cache, so summarize-then-read costs two reads.
package partition

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// TableReader is the extraction surface the engine depends on; the access
// Reader satisfies it.
type TableReader interface {
	Read(ctx context.Context, path, table string) (*types.Table, error)
	ListTables(ctx context.Context, path string) ([]string, error)
}

// Engine projects tables onto their year partitions.
type Engine struct {
	reader     TableReader
	yearColumn string
	log        *slog.Logger
}

// New creates an Engine reading through reader. An empty yearColumn falls
// back to the historical default column.
func New(reader TableReader, yearColumn string) *Engine {
	if yearColumn == "" {
		yearColumn = types.DefaultYearColumn
	}
	return &Engine{
		reader:     reader,
		yearColumn: yearColumn,
		log:        slog.Default().With("component", "partition"),
	}
}

// YearColumn returns the designated year-bearing column name.
func (e *Engine) YearColumn() string { return e.yearColumn }

// Summarize analyzes every table in the file. A table that cannot be
// analyzed gets a per-table error annotation instead of aborting the
// summary; only file-level failures (missing file, no tables listable)
// return an error. Table order in the map follows discovery; iterate a
// sorted key list for stable output.
func (e *Engine) Summarize(ctx context.Context, path string) (types.YearSummary, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.YearSummary{}, fmt.Errorf("%w: %s", types.ErrNotFound, path)
		}
		return types.YearSummary{}, err
	}

	summary := types.YearSummary{
		FilePath:   path,
		FileSizeMB: float64(info.Size()) / (1024 * 1024),
		Tables:     make(map[string]types.TableYearInfo),
	}

	tables, err := e.reader.ListTables(ctx, path)
	if err != nil {
		return types.YearSummary{}, err
	}
	if len(tables) == 0 {
		// An empty listing means no strategy could open the file, not
		// that the file genuinely holds zero tables.
		return types.YearSummary{}, fmt.Errorf("%w from %s. %s",
			types.ErrNoTables, path, types.RemediationHint)
	}
	sort.Strings(tables)

	for _, table := range tables {
		ti, err := e.SummarizeTable(ctx, path, table)
		if err != nil {
			e.log.Warn("table analysis failed", "table", table, "error", err)
			summary.Tables[table] = types.TableYearInfo{Error: err.Error()}
			continue
		}
		summary.Tables[table] = ti
	}
	return summary, nil
}

// SummarizeTable reads one table in full and projects its year column:
// distinct years sorted ascending, plus a count of rows whose year value
// was null or failed to parse. A missing year column is an error.
func (e *Engine) SummarizeTable(ctx context.Context, path, table string) (types.TableYearInfo, error) {
	tbl, err := e.reader.Read(ctx, path, table)
	if err != nil {
		return types.TableYearInfo{}, err
	}

	idx := tbl.ColumnIndex(e.yearColumn)
	if idx < 0 {
		return types.TableYearInfo{}, fmt.Errorf("%w: %s", types.ErrMissingYearColumn, e.yearColumn)
	}

	seen := make(map[int]struct{})
	skipped := 0
	for i := 0; i < tbl.RowCount(); i++ {
		year, ok := tbl.Cell(i, idx).Year()
		if !ok {
			skipped++
			continue
		}
		seen[year] = struct{}{}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)

	return types.TableYearInfo{
		RowCount:       tbl.RowCount(),
		ColumnCount:    tbl.ColumnCount(),
		AvailableYears: years,
		YearRange:      types.YearRange(years),
		SkippedRows:    skipped,
	}, nil
}

// ReadYear re-extracts the table and keeps only the rows whose year column
// equals year. Rows with unparseable year values are excluded, matching
// Summarize. A year with no matching rows yields an empty table, not an
// error; the caller decides whether that is actionable.
func (e *Engine) ReadYear(ctx context.Context, path, table string, year int) (*types.Table, error) {
	tbl, err := e.reader.Read(ctx, path, table)
	if err != nil {
		return nil, err
	}

	idx := tbl.ColumnIndex(e.yearColumn)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrMissingYearColumn, e.yearColumn)
	}

	out, err := types.NewTable(tbl.Columns())
	if err != nil {
		return nil, err
	}
	for i := 0; i < tbl.RowCount(); i++ {
		y, ok := tbl.Cell(i, idx).Year()
		if !ok || y != year {
			continue
		}
		if err := out.AppendRow(tbl.Row(i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
