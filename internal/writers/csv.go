package writers

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// CSV writes the table as a comma-separated file with a header row.
// Null cells render as empty fields.
type CSV struct{}

// Ext returns "csv".
func (CSV) Ext() string { return "csv" }

func (CSV) Write(t *types.Table, destination, _ string) (Result, error) {
	if err := ensureDir(destination); err != nil {
		return Result{}, err
	}
	f, err := os.Create(destination)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns()); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	record := make([]string, t.ColumnCount())
	for i := 0; i < t.RowCount(); i++ {
		for j, v := range t.Row(i) {
			record[j] = v.String()
		}
		if err := w.Write(record); err != nil {
			return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	return finish(t, destination)
}
