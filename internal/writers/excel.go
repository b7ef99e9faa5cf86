package writers

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// Excel writes the table as a single-sheet workbook. The sheet carries the
// logical table name, truncated to Excel's 31-character sheet name limit.
type Excel struct{}

// Ext returns "xlsx".
func (Excel) Ext() string { return "xlsx" }

func (Excel) Write(t *types.Table, destination, tableName string) (Result, error) {
	if err := ensureDir(destination); err != nil {
		return Result{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(tableName)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}

	header := make([]any, t.ColumnCount())
	for i, c := range t.Columns() {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}

	row := make([]any, t.ColumnCount())
	for i := 0; i < t.RowCount(); i++ {
		for j, v := range t.Row(i) {
			row[j] = v.Any()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
		}
	}

	if err := f.SaveAs(destination); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	return finish(t, destination)
}

func sheetName(tableName string) string {
	if tableName == "" {
		return "Sheet1"
	}
	if len(tableName) > 31 {
		return tableName[:31]
	}
	return tableName
}
