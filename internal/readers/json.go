package readers

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// JSON reads an array of flat objects. The column set is the sorted union
// of keys across all records; records missing a key get a null cell.
type JSON struct{}

// Read parses the file into a Table. The table argument is ignored.
func (JSON) Read(path, _ string) (*types.Table, error) {
	if err := checkSource(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of objects: %v",
			types.ErrUnsupportedFormat, err)
	}

	columns := unionKeys(records)
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no fields in JSON records", types.ErrInvalidTable)
	}

	tbl, err := types.NewTable(columns)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := make([]types.Value, len(columns))
		for i, col := range columns {
			row[i] = valueFromJSON(rec[col])
		}
		if err := tbl.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func unionKeys(records []map[string]any) []string {
	set := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// valueFromJSON maps a decoded JSON scalar to a typed Value. Integral
// float64 values become integers since encoding/json decodes every number
// as float64.
func valueFromJSON(v any) types.Value {
	switch t := v.(type) {
	case nil:
		return types.Null()
	case bool:
		return types.Bool(t)
	case float64:
		if t == float64(int64(t)) {
			return types.Int(int64(t))
		}
		return types.Float(t)
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return types.Time(ts)
		}
		return types.Text(t)
	default:
		return types.Text(fmt.Sprint(t))
	}
}
