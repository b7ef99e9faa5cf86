package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	t.Run("valid columns", func(t *testing.T) {
		tbl, err := NewTable([]string{"ID", "NAME"})
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.ColumnCount())
		assert.Equal(t, 0, tbl.RowCount())
	})

	t.Run("duplicate column rejected", func(t *testing.T) {
		_, err := NewTable([]string{"ID", "ID"})
		assert.ErrorIs(t, err, ErrInvalidTable)
	})

	t.Run("empty column name rejected", func(t *testing.T) {
		_, err := NewTable([]string{"ID", ""})
		assert.ErrorIs(t, err, ErrInvalidTable)
	})
}

func TestTable_AppendRow(t *testing.T) {
	tbl, err := NewTable([]string{"A", "B"})
	require.NoError(t, err)

	require.NoError(t, tbl.AppendRow([]Value{Int(1), Text("x")}))
	assert.Equal(t, 1, tbl.RowCount())

	err = tbl.AppendRow([]Value{Int(1)})
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestTable_ColumnIndex(t *testing.T) {
	tbl, err := NewTable([]string{"ID", "N_ANIO"})
	require.NoError(t, err)

	assert.Equal(t, 1, tbl.ColumnIndex("N_ANIO"))
	assert.Equal(t, -1, tbl.ColumnIndex("MISSING"))
}

func TestTable_ColumnKinds(t *testing.T) {
	tbl, err := NewTable([]string{"ID", "NOTE"})
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow([]Value{Int(1), Null()}))
	require.NoError(t, tbl.AppendRow([]Value{Int(2), Text("a")}))

	kinds := tbl.ColumnKinds()
	assert.Equal(t, KindInt, kinds[0])
	assert.Equal(t, KindText, kinds[1])
}

func TestTable_Anomalies(t *testing.T) {
	tbl, err := NewTable([]string{"CLEAN", "MIXED"})
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow([]Value{Int(1), Int(1)}))
	require.NoError(t, tbl.AppendRow([]Value{Null(), Text("oops")}))

	anomalies := tbl.Anomalies()
	require.Len(t, anomalies, 1)
	assert.Equal(t, "MIXED", anomalies[0].Column)
	assert.Len(t, anomalies[0].Kinds, 2)
}
