//go:build windows

package access

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/alexbrainman/odbc"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// odbcStrategy extracts through the Microsoft Access ODBC driver. Windows
// ships the driver with Office; other platforms use mdbtools or a snapshot
// instead, so this strategy only exists in Windows builds.
type odbcStrategy struct{}

func newODBCStrategy() Strategy { return odbcStrategy{} }

func (odbcStrategy) Name() string { return "odbc" }

// Available is true on Windows; a missing driver shows up as a connect
// error on first use and advances the chain like any other failure.
func (odbcStrategy) Available() bool { return true }

func openAccessDB(path string) (*sql.DB, error) {
	dsn := "Driver={Microsoft Access Driver (*.mdb, *.accdb)};Dbq=" + path + ";"
	db, err := sql.Open("odbc", dsn)
	if err != nil {
		return nil, fmt.Errorf("open odbc: %w", err)
	}
	return db, nil
}

// ListTables queries the MSysObjects catalog for user tables. Access
// installations that lock the catalog down fail here, which advances the
// chain.
func (odbcStrategy) ListTables(ctx context.Context, path string) ([]string, error) {
	db, err := openAccessDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT Name FROM MSysObjects WHERE Type=1 AND Flags=0")
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
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

func (odbcStrategy) ReadTable(ctx context.Context, path, table string) (*types.Table, error) {
	db, err := openAccessDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM [%s]", table))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrTableNotFound, table, err)
	}
	defer rows.Close()

	return readSQLTable(rows)
}
