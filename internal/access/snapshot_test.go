package access

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// makeSidecar writes a stand-in legacy file plus a populated SQLite
// snapshot next to it, and returns the legacy file path.
func makeSidecar(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	legacy := filepath.Join(dir, "AT2.mdb")
	require.NoError(t, os.WriteFile(legacy, []byte("placeholder"), 0o644))

	db, err := sql.Open("sqlite", SidecarPath(legacy))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE SALES (ID INTEGER, N_ANIO INTEGER, NOTE TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO SALES VALUES (1, 2008, 'a'), (2, 2009, NULL), (3, 2008, 'c')`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE EMPTYT (ID INTEGER)`)
	require.NoError(t, err)

	return legacy
}

func TestSnapshotStrategy_ListTables(t *testing.T) {
	legacy := makeSidecar(t)
	s := newSnapshotStrategy()

	tables, err := s.ListTables(context.Background(), legacy)
	require.NoError(t, err)
	assert.Equal(t, []string{"EMPTYT", "SALES"}, tables)
}

func TestSnapshotStrategy_ReadTable(t *testing.T) {
	legacy := makeSidecar(t)
	s := newSnapshotStrategy()

	tbl, err := s.ReadTable(context.Background(), legacy, "SALES")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "N_ANIO", "NOTE"}, tbl.Columns())
	require.Equal(t, 3, tbl.RowCount())

	year, ok := tbl.Cell(0, 1).IntVal()
	require.True(t, ok)
	assert.Equal(t, int64(2008), year)
	assert.True(t, tbl.Cell(1, 2).IsNull())
}

func TestSnapshotStrategy_MissingSidecar(t *testing.T) {
	legacy := filepath.Join(t.TempDir(), "orphan.mdb")
	require.NoError(t, os.WriteFile(legacy, []byte("x"), 0o644))

	s := newSnapshotStrategy()
	_, err := s.ListTables(context.Background(), legacy)
	assert.Error(t, err)
}

func TestSnapshotStrategy_MissingTable(t *testing.T) {
	legacy := makeSidecar(t)
	s := newSnapshotStrategy()

	_, err := s.ReadTable(context.Background(), legacy, "NOPE")
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestReader_SnapshotEndToEnd(t *testing.T) {
	// The default chain on a machine with neither mdbtools nor an ODBC
	// driver should still read through the sidecar.
	legacy := makeSidecar(t)
	r := NewReaderWithStrategies(newSnapshotStrategy())

	tbl, err := r.Read(context.Background(), legacy, "SALES")
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.RowCount())
}
