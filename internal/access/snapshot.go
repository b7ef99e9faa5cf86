package access

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// snapshotStrategy is the generic database-bridge last resort: it reads a
// pre-converted SQLite sidecar sitting next to the source file (AT2.mdb ->
// AT2.mdb.sqlite). Operators without mdbtools or an ODBC driver produce the
// sidecar once on another machine and keep partition extraction working
// here. The driver is pure Go, so the strategy is always loadable; files
// without a sidecar fail per call and surface the remediation hint through
// the chain.
type snapshotStrategy struct{}

func newSnapshotStrategy() snapshotStrategy { return snapshotStrategy{} }

func (snapshotStrategy) Name() string { return "snapshot" }

func (snapshotStrategy) Available() bool { return true }

// SidecarPath returns the SQLite snapshot location for a legacy file.
func SidecarPath(path string) string { return path + ".sqlite" }

func openSnapshot(path string) (*sql.DB, error) {
	sidecar := SidecarPath(path)
	if _, err := os.Stat(sidecar); err != nil {
		return nil, fmt.Errorf("no sqlite snapshot at %s: %w", sidecar, err)
	}
	db, err := sql.Open("sqlite", sidecar)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	return db, nil
}

func (snapshotStrategy) ListTables(ctx context.Context, path string) ([]string, error) {
	db, err := openSnapshot(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list snapshot tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (snapshotStrategy) ReadTable(ctx context.Context, path, table string) (*types.Table, error) {
	db, err := openSnapshot(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrTableNotFound, table, err)
	}
	defer rows.Close()

	return readSQLTable(rows)
}
