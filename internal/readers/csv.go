package readers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// CSV reads comma-separated files. The first record is the header row.
type CSV struct{}

// Read parses the file into a Table. The table argument is ignored; a CSV
// file holds exactly one table.
func (CSV) Read(path, _ string) (*types.Table, error) {
	if err := checkSource(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCSV(f)
}

// DecodeCSV parses CSV content from r into a Table, inferring cell types
// per value. Also used by the mdbtools extraction strategy to parse
// mdb-export output.
func DecodeCSV(r io.Reader) (*types.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: no header row", types.ErrInvalidTable)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	tbl, err := types.NewTable(header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		row := make([]types.Value, len(header))
		for i := range header {
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
