package writers

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// insertBatchSize bounds the number of value tuples per INSERT statement so
// the scripts stay loadable by servers with modest packet limits.
const insertBatchSize = 1000

// SQLScript writes a portable SQL script: one CREATE TABLE followed by
// batched multi-row INSERT statements.
type SQLScript struct{}

// Ext returns "sql".
func (SQLScript) Ext() string { return "sql" }

func (w SQLScript) Write(t *types.Table, destination, tableName string) (Result, error) {
	if err := ensureDir(destination); err != nil {
		return Result{}, err
	}
	f, err := os.Create(destination)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if err := w.writeScript(buf, t, tableName); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	if err := buf.Flush(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}
	return finish(t, destination)
}

func (w SQLScript) writeScript(buf *bufio.Writer, t *types.Table, tableName string) error {
	cols := t.Columns()
	kinds := t.ColumnKinds()

	fmt.Fprintf(buf, "CREATE TABLE %s (\n", quoteIdent(tableName))
	for i, c := range cols {
		sep := ","
		if i == len(cols)-1 {
			sep = ""
		}
		fmt.Fprintf(buf, "    %s %s%s\n", quoteIdent(c), sqlType(kinds[i]), sep)
	}
	fmt.Fprintf(buf, ");\n\n")

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	header := fmt.Sprintf("INSERT INTO %s (%s) VALUES",
		quoteIdent(tableName), strings.Join(quoted, ", "))

	for start := 0; start < t.RowCount(); start += insertBatchSize {
		end := start + insertBatchSize
		if end > t.RowCount() {
			end = t.RowCount()
		}
		fmt.Fprintln(buf, header)
		for i := start; i < end; i++ {
			lits := make([]string, len(cols))
			for j, v := range t.Row(i) {
				lits[j] = sqlLiteral(v)
			}
			sep := ","
			if i == end-1 {
				sep = ";"
			}
			fmt.Fprintf(buf, "    (%s)%s\n", strings.Join(lits, ", "), sep)
		}
		fmt.Fprintln(buf)
	}
	return nil
}

// sqlType maps a cell kind to a portable column type.
func sqlType(k types.Kind) string {
	switch k {
	case types.KindInt:
		return "INTEGER"
	case types.KindFloat:
		return "REAL"
	case types.KindBool:
		return "BOOLEAN"
	case types.KindTime:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// sqlLiteral renders a cell as a SQL literal, escaping embedded quotes.
func sqlLiteral(v types.Value) string {
	if v.IsNull() {
		return "NULL"
	}
	switch v.Kind() {
	case types.KindText, types.KindTime:
		return "'" + strings.ReplaceAll(v.String(), "'", "''") + "'"
	case types.KindBool:
		return strings.ToUpper(v.String())
	default:
		return v.String()
	}
}

// quoteIdent double-quotes an identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
