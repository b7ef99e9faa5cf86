package writers

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

func sampleTable(t *testing.T) *types.Table {
	t.Helper()
	tbl, err := types.NewTable([]string{"ID", "N_ANIO", "NOTE", "PRICE", "WHEN"})
	require.NoError(t, err)
	when := time.Date(2009, 3, 14, 10, 30, 0, 0, time.UTC)
	require.NoError(t, tbl.AppendRow([]types.Value{
		types.Int(1), types.Int(2009), types.Text("it's fine"), types.Float(9.5), types.Time(when),
	}))
	require.NoError(t, tbl.AppendRow([]types.Value{
		types.Int(2), types.Int(2009), types.Null(), types.Float(3), types.Null(),
	}))
	return tbl
}

func TestFor(t *testing.T) {
	for _, format := range []string{
		types.FormatSQL, types.FormatSQLite, types.FormatCSV, types.FormatJSON, types.FormatExcel,
	} {
		w, err := For(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, w.Ext())
	}

	_, err := For("parquet")
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestSQLScript_Write(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sales-2009.sql")
	res, err := SQLScript{}.Write(sampleTable(t), dest, "SALES")
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsWritten)
	assert.Equal(t, 5, res.ColumnsWritten)
	assert.Positive(t, res.SizeBytes)

	script, err := os.ReadFile(dest)
	require.NoError(t, err)
	s := string(script)
	assert.Contains(t, s, `CREATE TABLE "SALES"`)
	assert.Contains(t, s, `"N_ANIO" INTEGER`)
	assert.Contains(t, s, `"PRICE" REAL`)
	assert.Contains(t, s, "'it''s fine'", "embedded quote is doubled")
	assert.Contains(t, s, "NULL")
}

func TestSQLScript_BatchesInserts(t *testing.T) {
	tbl, err := types.NewTable([]string{"ID"})
	require.NoError(t, err)
	for i := 0; i < insertBatchSize+1; i++ {
		require.NoError(t, tbl.AppendRow([]types.Value{types.Int(int64(i))}))
	}

	dest := filepath.Join(t.TempDir(), "big.sql")
	_, err = SQLScript{}.Write(tbl, dest, "BIG")
	require.NoError(t, err)

	script, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(script), "INSERT INTO"))
}

func TestSQLite_Write(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sales-2009.sqlite")
	res, err := SQLite{}.Write(sampleTable(t), dest, "SALES")
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsWritten)

	db, err := sql.Open("sqlite", dest)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM SALES`).Scan(&n))
	assert.Equal(t, 2, n)

	var note sql.NullString
	require.NoError(t, db.QueryRow(`SELECT NOTE FROM SALES WHERE ID = 2`).Scan(&note))
	assert.False(t, note.Valid, "null survives the round trip")
}

func TestCSV_Write(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sales-2009.csv")
	res, err := CSV{}.Write(sampleTable(t), dest, "SALES")
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsWritten)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,N_ANIO,NOTE,PRICE,WHEN", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "2,2009,,"), "null renders empty")
}

func TestJSON_Write(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sales-2009.json")
	_, err := JSON{}.Write(sampleTable(t), dest, "SALES")
	require.NoError(t, err)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 2)
	assert.Equal(t, float64(2009), records[0]["N_ANIO"])
	assert.Equal(t, "2009-03-14T10:30:00Z", records[0]["WHEN"])
	assert.Nil(t, records[1]["NOTE"])
}

func TestExcel_Write(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sales-2009.xlsx")
	res, err := Excel{}.Write(sampleTable(t), dest, "SALES")
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsWritten)

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("SALES")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "N_ANIO", "NOTE", "PRICE", "WHEN"}, rows[0])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Equal(t, "SALES", sheetName("SALES"))
	long := strings.Repeat("x", 40)
	assert.Len(t, sheetName(long), 31)
}

func TestWrite_CreatesParentDir(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "deep", "out.csv")
	_, err := CSV{}.Write(sampleTable(t), dest, "")
	require.NoError(t, err)
	_, err = os.Stat(dest)
	assert.NoError(t, err)
}
