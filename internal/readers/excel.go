package readers

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// Excel reads .xlsx workbooks via excelize. The table argument selects a
// sheet by name; when empty the first sheet is read.
type Excel struct{}

// Read parses one worksheet into a Table. The first row is the header.
func (Excel) Read(path, table string) (*types.Table, error) {
	if err := checkSource(path); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := table
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", types.ErrInvalidTable)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", types.ErrTableNotFound, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no header row", types.ErrInvalidTable, sheet)
	}

	tbl, err := types.NewTable(rows[0])
	if err != nil {
		return nil, err
	}
	width := len(rows[0])
	for _, record := range rows[1:] {
		row := make([]types.Value, width)
		for i := 0; i < width; i++ {
			if i < len(record) {
				row[i] = types.ParseValue(record[i])
			} else {
				row[i] = types.Null()
			}
		}
		if err := tbl.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}
