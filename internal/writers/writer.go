// Package writers renders extracted tables into the supported output
// formats. Every writer receives a complete destination path (directory,
// artifact name, and extension already decided by the caller) and writes
// one table per artifact.
package writers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// Result describes one completed write.
type Result struct {
	Destination    string
	RowsWritten    int
	ColumnsWritten int
	SizeBytes      int64
}

// Writer renders one table to a destination file. tableName is the logical
// table name used inside container formats (SQL statements, SQLite table,
// Excel sheet); plain formats ignore it.
type Writer interface {
	// Ext returns the file extension without the dot.
	Ext() string
	Write(t *types.Table, destination, tableName string) (Result, error)
}

// For returns the Writer for a format name from types (sql, sqlite, csv,
// json, excel).
func For(format string) (Writer, error) {
	switch format {
	case types.FormatSQL:
		return SQLScript{}, nil
	case types.FormatSQLite:
		return SQLite{}, nil
	case types.FormatCSV:
		return CSV{}, nil
	case types.FormatJSON:
		return JSON{}, nil
	case types.FormatExcel:
		return Excel{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, format)
	}
}

// finish stats the written file and assembles the Result.
func finish(t *types.Table, destination string) (Result, error) {
	info, err := os.Stat(destination)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	return Result{
		Destination:    destination,
		RowsWritten:    t.RowCount(),
		ColumnsWritten: t.ColumnCount(),
		SizeBytes:      info.Size(),
	}, nil
}

// ensureDir creates the destination's parent directory if needed.
func ensureDir(destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	return nil
}
