// Check command probes which extraction strategies the host can run.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mdbconv/internal/access"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check which extraction strategies are available on this host",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := access.NewReader()
		report := reader.CheckSupport()

		if flagJSON {
			return printJSON(report)
		}

		if !report.Supported {
			fmt.Println("no extraction strategy is available")
			fmt.Println(report.Remediation)
			return nil
		}
		fmt.Println("available strategies:")
		for _, s := range report.AvailableStrategies {
			fmt.Printf("  %s\n", s)
		}
		return nil
	},
}
