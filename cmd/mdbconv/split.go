// Split command runs the year-partitioned batch conversion.
package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mdbconv/internal/batch"
	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

var (
	flagSplitParallel bool
	flagSplitWorkers  int
)

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Convert every (table, year) partition of a file",
	Long: `Split enumerates every table in a legacy Access file, discovers the
distinct years in each table's year column, and converts every (table, year)
pair to its own artifact in the configured format. A failing pair is
reported and skipped; the remaining pairs still convert.

Example:
  mdbconv split AT2008.mdb -f sqlite -o ./converted
  mdbconv split AT2008.mdb -f sql --parallel`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().BoolVar(&flagSplitParallel, "parallel", false, "run conversions concurrently")
	splitCmd.Flags().IntVar(&flagSplitWorkers, "workers", 0, "worker count for --parallel (default: min(4, CPUs))")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if flagSplitParallel {
		cfg.Parallel = true
	}
	if flagSplitWorkers > 0 {
		cfg.Workers = flagSplitWorkers
	}

	_, engine := newEngine(cfg.YearColumn)
	o, err := batch.New(engine, cfg)
	if err != nil {
		return err
	}

	report, err := o.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(report)
	}
	printReport(report)
	return nil
}

func printReport(report types.BatchReport) {
	keys := make([]string, 0, len(report.Conversions))
	for k := range report.Conversions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		c := report.Conversions[k]
		if c.Status == types.StatusSuccess {
			fmt.Printf("  %-24s %6d rows -> %s\n", k, c.RowsConverted, c.Artifact)
			continue
		}
		fmt.Printf("  %-24s FAILED: %s\n", k, c.Error)
	}
	fmt.Printf("%d tables, %d files created, %d rows converted (%.2f MB) in %s\n",
		report.TotalTables, report.TotalFilesCreated, report.TotalRowsConverted,
		report.TotalSizeMB, report.OutputDirectory)
}
