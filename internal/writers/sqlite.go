package writers

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// SQLite writes the table into a standalone SQLite database file. Rows go
// through a single transaction with one prepared statement; each Write
// opens and closes its own connection, so concurrent jobs never share one.
type SQLite struct{}

// Ext returns "sqlite".
func (SQLite) Ext() string { return "sqlite" }

func (w SQLite) Write(t *types.Table, destination, tableName string) (Result, error) {
	if err := ensureDir(destination); err != nil {
		return Result{}, err
	}

	db, err := sql.Open("sqlite", destination)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	defer db.Close()

	if err := w.load(db, t, tableName); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	if err := db.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	return finish(t, destination)
}

func (w SQLite) load(db *sql.DB, t *types.Table, tableName string) error {
	cols := t.Columns()
	kinds := t.ColumnKinds()

	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(c), sqlType(kinds[i]))
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tableName), strings.Join(defs, ", "))
	if _, err := db.Exec(ddl); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		quoteIdent(tableName), placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for i := 0; i < t.RowCount(); i++ {
		for j, v := range t.Row(i) {
			args[j] = v.Any()
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
