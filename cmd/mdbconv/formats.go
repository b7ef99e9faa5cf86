// Formats command lists the supported output formats.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// formatList pairs each format name with its one-line summary, in display
// order.
var formatList = []struct {
	name string
	desc string
}{
	{types.FormatSQL, "portable SQL script (CREATE TABLE + batched INSERTs)"},
	{types.FormatSQLite, "standalone SQLite database file"},
	{types.FormatCSV, "comma-separated values with header row"},
	{types.FormatJSON, "array of flat objects, one per row"},
	{types.FormatExcel, "single-sheet Excel workbook"},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported output formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			names := make([]string, len(formatList))
			for i, f := range formatList {
				names[i] = f.name
			}
			return printJSON(names)
		}
		for _, f := range formatList {
			fmt.Printf("  %-8s %s\n", f.name, f.desc)
		}
		return nil
	},
}
