// Tables command lists the tables in a legacy file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mdbconv/internal/access"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <file>",
	Short: "List the tables in a legacy Access file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := access.NewReader()
		tables, err := reader.ListTables(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(tables)
		}
		if len(tables) == 0 {
			fmt.Println("no tables found (no extraction strategy could enumerate the file)")
			return nil
		}
		for _, t := range tables {
			fmt.Println(t)
		}
		return nil
	},
}
