// Package access implements the multi-strategy reader for legacy Microsoft
// Access files (.mdb, .accdb). No single decoder for the format is reliable
// on every platform, so extraction tries an ordered chain of independent
// strategies until one produces rows:
//
//  1. mdbtools  — shells out to mdb-tables / mdb-export (Unix, macOS)
//  2. odbc      — the Microsoft Access ODBC driver via database/sql (Windows)
//  3. snapshot  — a pre-converted SQLite sidecar next to the source file
//
// Strategy failures caused by the environment (tool missing, driver absent)
// advance the chain; only after every strategy is exhausted does a read fail.
package access

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// Strategy is one extraction mechanism for the legacy format. Every
// strategy can independently list a file's tables and export one table's
// full row set.
type Strategy interface {
	// Name identifies the strategy in support reports and error output.
	Name() string

	// Available reports whether the host environment can run this
	// strategy at all. It must be cheap; per-file problems are reported
	// by ListTables and ReadTable instead.
	Available() bool

	// ListTables enumerates the named tables in the file.
	ListTables(ctx context.Context, path string) ([]string, error)

	// ReadTable exports the named table's full row set as a fresh Table.
	ReadTable(ctx context.Context, path, table string) (*types.Table, error)
}

// readSQLTable drains a database/sql result set into a Table. Shared by the
// odbc and snapshot strategies.
func readSQLTable(rows *sql.Rows) (*types.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	tbl, err := types.NewTable(cols)
	if err != nil {
		return nil, err
	}

	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make([]types.Value, len(cols))
		for i, v := range raw {
			row[i] = valueFromSQL(v)
		}
		if err := tbl.AppendRow(row); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tbl, nil
}

// valueFromSQL maps a database/sql scan result to a typed Value. Text
// cells still run through ParseValue so date-like strings from drivers
// that return everything as text keep their timestamp kind.
func valueFromSQL(v any) types.Value {
	switch t := v.(type) {
	case nil:
		return types.Null()
	case int64:
		return types.Int(t)
	case float64:
		return types.Float(t)
	case bool:
		return types.Bool(t)
	case time.Time:
		return types.Time(t)
	case []byte:
		return types.ParseValue(string(t))
	case string:
		return types.ParseValue(t)
	default:
		return types.Text(fmt.Sprint(t))
	}
}
