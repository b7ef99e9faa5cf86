// Info command summarizes the year partitions of a legacy file.
package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show the year partitions each table holds",
	Long: `Info reads every table in a legacy Access file and reports its row and
column counts plus the distinct years found in the year column. Tables that
cannot be analyzed are listed with the reason instead of aborting the
summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	_, engine := newEngine(cfg.YearColumn)
	summary, err := engine.Summarize(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(summary)
	}

	fmt.Printf("%s (%.2f MB)\n", summary.FilePath, summary.FileSizeMB)
	names := make([]string, 0, len(summary.Tables))
	for name := range summary.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ti := summary.Tables[name]
		if ti.Error != "" {
			fmt.Printf("  %-24s error: %s\n", name, ti.Error)
			continue
		}
		fmt.Printf("  %-24s %6d rows, %d columns, years %s", name, ti.RowCount, ti.ColumnCount, ti.YearRange)
		if ti.SkippedRows > 0 {
			fmt.Printf(" (%d rows without a usable year)", ti.SkippedRows)
		}
		fmt.Println()
	}
	return nil
}
