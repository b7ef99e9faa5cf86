package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/mdbconv/internal/writers"
	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// fakeSource scripts partition contents per (table, year).
type fakeSource struct {
	summary  types.YearSummary
	sumErr   error
	rows     map[string]int // JobKey -> row count served by ReadYear
	readErrs map[string]error
}

func (f *fakeSource) Summarize(context.Context, string) (types.YearSummary, error) {
	return f.summary, f.sumErr
}

func (f *fakeSource) ReadYear(_ context.Context, _ string, table string, year int) (*types.Table, error) {
	key := types.JobKey(table, year)
	if err := f.readErrs[key]; err != nil {
		return nil, err
	}
	tbl, err := types.NewTable([]string{"ID", "N_ANIO"})
	if err != nil {
		return nil, err
	}
	for i := 0; i < f.rows[key]; i++ {
		if err := tbl.AppendRow([]types.Value{
			types.Int(int64(i + 1)), types.Int(int64(year)),
		}); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// twoTableSource enumerates SALES (2008, 2009) and ITEMS (2009).
func twoTableSource() *fakeSource {
	return &fakeSource{
		summary: types.YearSummary{Tables: map[string]types.TableYearInfo{
			"SALES": {AvailableYears: []int{2008, 2009}},
			"ITEMS": {AvailableYears: []int{2009}},
		}},
		rows: map[string]int{
			"SALES_2008": 3,
			"SALES_2009": 2,
			"ITEMS_2009": 5,
		},
	}
}

func config(t *testing.T) types.Config {
	t.Helper()
	return types.Config{Format: types.FormatCSV, OutputDir: t.TempDir()}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(twoTableSource(), types.Config{Format: "tsv", OutputDir: "x"})
	assert.ErrorIs(t, err, types.ErrFormatUnknown)

	_, err = New(twoTableSource(), types.Config{Format: types.FormatCSV})
	assert.ErrorIs(t, err, types.ErrOutputDirEmpty)
}

func TestRun_ConvertsEveryPartition(t *testing.T) {
	o, err := New(twoTableSource(), config(t))
	require.NoError(t, err)

	report, err := o.Run(context.Background(), "f.mdb")
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalTables)
	require.Len(t, report.Conversions, 3)
	for _, key := range []string{"SALES_2008", "SALES_2009", "ITEMS_2009"} {
		assert.Equal(t, types.StatusSuccess, report.Conversions[key].Status, key)
		assert.NotEmpty(t, report.Conversions[key].Artifact, key)
	}
	assert.Equal(t, 10, report.TotalRowsConverted)
	assert.Equal(t, 3, report.TotalFilesCreated)
	assert.Positive(t, report.TotalSizeMB)
}

func TestRun_UnenumerableFileFailsRun(t *testing.T) {
	// A file no strategy can enumerate must fail the whole run with the
	// summary's error, never degrade to an empty success report.
	src := twoTableSource()
	src.sumErr = fmt.Errorf("%w from opaque.mdb. %s", types.ErrNoTables, types.RemediationHint)

	o, err := New(src, config(t))
	require.NoError(t, err)

	_, err = o.Run(context.Background(), "opaque.mdb")
	require.ErrorIs(t, err, types.ErrNoTables)
	assert.Contains(t, err.Error(), "convert the file")
}

func TestRun_FailedJobIsIsolated(t *testing.T) {
	src := twoTableSource()
	src.readErrs = map[string]error{
		"SALES_2009": errors.New("extraction crashed"),
	}

	o, err := New(src, config(t))
	require.NoError(t, err)

	report, err := o.Run(context.Background(), "f.mdb")
	require.NoError(t, err)

	require.Len(t, report.Conversions, 3, "failed pair keeps its report entry")
	bad := report.Conversions["SALES_2009"]
	assert.Equal(t, types.StatusError, bad.Status)
	assert.Contains(t, bad.Error, "crashed")

	assert.Equal(t, types.StatusSuccess, report.Conversions["SALES_2008"].Status)
	assert.Equal(t, 8, report.TotalRowsConverted, "totals cover successes only")
	assert.Equal(t, 2, report.TotalFilesCreated)
}

func TestRun_EmptyPartitionIsError(t *testing.T) {
	src := twoTableSource()
	src.rows["SALES_2009"] = 0

	o, err := New(src, config(t))
	require.NoError(t, err)

	report, err := o.Run(context.Background(), "f.mdb")
	require.NoError(t, err)

	empty := report.Conversions["SALES_2009"]
	assert.Equal(t, types.StatusError, empty.Status)
	assert.Contains(t, empty.Error, "no data")
	assert.Empty(t, empty.Artifact)
}

func TestRun_WriterFailureIsolatedPerYear(t *testing.T) {
	o, err := New(twoTableSource(), config(t))
	require.NoError(t, err)
	o.writer = &failingWriter{failKey: "SALES_2009"}

	report, err := o.Run(context.Background(), "f.mdb")
	require.NoError(t, err)

	assert.Equal(t, types.StatusError, report.Conversions["SALES_2009"].Status)
	assert.Contains(t, report.Conversions["SALES_2009"].Error, "disk full")
	assert.Equal(t, types.StatusSuccess, report.Conversions["SALES_2008"].Status)
	assert.Equal(t, types.StatusSuccess, report.Conversions["ITEMS_2009"].Status)
}

func TestRun_UnanalyzableTableSkipped(t *testing.T) {
	src := twoTableSource()
	src.summary.Tables["BROKEN"] = types.TableYearInfo{Error: "year column missing"}

	o, err := New(src, config(t))
	require.NoError(t, err)

	report, err := o.Run(context.Background(), "f.mdb")
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalTables, "broken table is not enumerated")
	assert.Len(t, report.Conversions, 3)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	seqCfg := config(t)
	seq, err := New(twoTableSource(), seqCfg)
	require.NoError(t, err)
	seqReport, err := seq.Run(context.Background(), "f.mdb")
	require.NoError(t, err)

	parCfg := config(t)
	parCfg.Parallel = true
	parCfg.Workers = 3
	par, err := New(twoTableSource(), parCfg)
	require.NoError(t, err)
	parReport, err := par.Run(context.Background(), "f.mdb")
	require.NoError(t, err)

	require.Len(t, parReport.Conversions, len(seqReport.Conversions))
	for key, want := range seqReport.Conversions {
		got := parReport.Conversions[key]
		assert.Equal(t, want.Status, got.Status, key)
		assert.Equal(t, want.RowsConverted, got.RowsConverted, key)
	}
	assert.Equal(t, seqReport.TotalRowsConverted, parReport.TotalRowsConverted)
	assert.Equal(t, seqReport.TotalFilesCreated, parReport.TotalFilesCreated)
}

func TestRun_CanceledContextRecordsEveryJob(t *testing.T) {
	o, err := New(twoTableSource(), config(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := o.Run(ctx, "f.mdb")
	require.NoError(t, err)

	require.Len(t, report.Conversions, 3)
	for key, c := range report.Conversions {
		assert.Equal(t, types.StatusError, c.Status, key)
		assert.Contains(t, c.Error, "canceled", key)
	}
	assert.Zero(t, report.TotalFilesCreated)
}

func TestWorkers(t *testing.T) {
	o := &Orchestrator{cfg: types.Config{Workers: 7}}
	assert.Equal(t, 7, o.workers())

	o = &Orchestrator{}
	assert.LessOrEqual(t, o.workers(), defaultWorkers)
	assert.Positive(t, o.workers())
}

// failingWriter fails writes whose destination embeds failKey's artifact
// name and delegates the rest to the real CSV writer.
type failingWriter struct {
	failKey string
}

func (failingWriter) Ext() string { return "csv" }

func (w *failingWriter) Write(t *types.Table, destination, tableName string) (writers.Result, error) {
	year, _ := t.Cell(0, 1).IntVal()
	if types.JobKey(tableName, int(year)) == w.failKey {
		return writers.Result{}, fmt.Errorf("disk full")
	}
	return writers.CSV{}.Write(t, destination, tableName)
}
