package writers

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// JSON writes the table as an array of flat objects, one per row, with
// column names as keys. Nulls are kept so every object carries the full
// column set. Timestamps render as RFC 3339 strings.
type JSON struct{}

// Ext returns "json".
func (JSON) Ext() string { return "json" }

func (JSON) Write(t *types.Table, destination, _ string) (Result, error) {
	if err := ensureDir(destination); err != nil {
		return Result{}, err
	}
	f, err := os.Create(destination)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	defer f.Close()

	cols := t.Columns()
	records := make([]map[string]any, t.RowCount())
	for i := 0; i < t.RowCount(); i++ {
		rec := make(map[string]any, len(cols))
		for j, v := range t.Row(i) {
			if ts, ok := v.TimeVal(); ok {
				rec[cols[j]] = ts.Format(time.RFC3339)
				continue
			}
			rec[cols[j]] = v.Any()
		}
		records[i] = rec
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	return finish(t, destination)
}
