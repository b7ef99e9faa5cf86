// Package batch runs year-partitioned conversions: it enumerates every
// (table, year) pair a source file holds and converts each pair to one
// output artifact, isolating per-job failures so a single bad partition
// never sinks the run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mesh-intelligence/mdbconv/internal/writers"
	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// defaultWorkers caps the parallel pool when the config does not set one.
const defaultWorkers = 4

// YearSource enumerates and extracts year partitions; the partition Engine
// satisfies it.
type YearSource interface {
	Summarize(ctx context.Context, path string) (types.YearSummary, error)
	ReadYear(ctx context.Context, path, table string, year int) (*types.Table, error)
}

// job is one (table, year) unit of work.
type job struct {
	table string
	year  int
}

// Orchestrator converts every year partition of a source file.
type Orchestrator struct {
	source YearSource
	writer writers.Writer
	cfg    types.Config
	log    *slog.Logger
}

// New validates cfg, resolves its output writer, and returns an
// Orchestrator reading partitions from source.
func New(source YearSource, cfg types.Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, err := writers.For(cfg.Format)
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		source: source,
		writer: w,
		cfg:    cfg,
		log:    slog.Default().With("component", "batch"),
	}, nil
}

// Run converts every (table, year) pair in the source file and returns the
// consolidated report. Per-job failures become error entries in the report;
// Run itself fails only when the file cannot be summarized at all. Jobs
// still pending when ctx is canceled are recorded as canceled, never
// dropped.
func (o *Orchestrator) Run(ctx context.Context, path string) (types.BatchReport, error) {
	summary, err := o.source.Summarize(ctx, path)
	if err != nil {
		return types.BatchReport{}, err
	}

	report := types.BatchReport{
		OutputDirectory: o.cfg.OutputDir,
		Conversions:     make(map[string]types.Conversion),
	}

	var jobs []job
	for table, info := range summary.Tables {
		if info.Error != "" {
			o.log.Warn("skipping unanalyzable table", "table", table, "error", info.Error)
			continue
		}
		report.TotalTables++
		for _, year := range info.AvailableYears {
			jobs = append(jobs, job{table: table, year: year})
		}
	}

	// One timestamp per run keeps timestamp-suffixed artifact names
	// consistent across all jobs.
	started := time.Now()

	var mu sync.Mutex
	record := func(key string, c types.Conversion) {
		mu.Lock()
		defer mu.Unlock()
		report.Conversions[key] = c
	}

	if o.cfg.Parallel && len(jobs) > 1 {
		p := pool.New().WithMaxGoroutines(o.workers())
		for _, j := range jobs {
			j := j
			p.Go(func() {
				record(types.JobKey(j.table, j.year), o.runJob(ctx, path, j, started))
			})
		}
		p.Wait()
	} else {
		for _, j := range jobs {
			record(types.JobKey(j.table, j.year), o.runJob(ctx, path, j, started))
		}
	}

	for _, c := range report.Conversions {
		if c.Status != types.StatusSuccess {
			continue
		}
		report.TotalRowsConverted += c.RowsConverted
		report.TotalFilesCreated++
		report.TotalSizeMB += float64(c.SizeBytes) / (1024 * 1024)
	}
	return report, nil
}

// runJob extracts one year partition and writes it. Every failure mode
// returns an error-status Conversion rather than an error, so the caller's
// report keeps one entry per enumerated pair.
func (o *Orchestrator) runJob(ctx context.Context, path string, j job, started time.Time) types.Conversion {
	c := types.Conversion{Table: j.table, Year: j.year}

	if err := ctx.Err(); err != nil {
		c.Status = types.StatusError
		c.Error = fmt.Sprintf("canceled before extraction: %v", err)
		return c
	}

	tbl, err := o.source.ReadYear(ctx, path, j.table, j.year)
	if err != nil {
		c.Status = types.StatusError
		c.Error = err.Error()
		return c
	}
	if tbl.RowCount() == 0 {
		c.Status = types.StatusError
		c.Error = fmt.Sprintf("%v for %s in %d", types.ErrNoData, j.table, j.year)
		return c
	}

	name := types.ArtifactName(j.table, j.year, o.cfg.Naming, started)
	dest := filepath.Join(o.cfg.OutputDir, name+"."+o.writer.Ext())

	res, err := o.writer.Write(tbl, dest, j.table)
	if err != nil {
		c.Status = types.StatusError
		c.Error = err.Error()
		return c
	}

	o.log.Info("partition converted",
		"table", j.table, "year", j.year, "rows", res.RowsWritten, "artifact", res.Destination)

	c.Status = types.StatusSuccess
	c.RowsConverted = res.RowsWritten
	c.Columns = res.ColumnsWritten
	c.Artifact = res.Destination
	c.SizeBytes = res.SizeBytes
	return c
}

// workers returns the pool size: the configured count, else the smaller of
// defaultWorkers and GOMAXPROCS.
func (o *Orchestrator) workers() int {
	if o.cfg.Workers > 0 {
		return o.cfg.Workers
	}
	n := runtime.GOMAXPROCS(0)
	if n > defaultWorkers {
		return defaultWorkers
	}
	return n
}
