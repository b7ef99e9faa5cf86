// Root command for the mdbconv CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mdbconv/internal/paths"
)

// Global flag values.
var (
	flagConfigDir  string
	flagOutputDir  string
	flagFormat     string
	flagYearColumn string
	flagJSON       bool
)

// configOutputDir holds the output_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configOutputDir string

var rootCmd = &cobra.Command{
	Use:     "mdbconv",
	Short:   "mdbconv converts legacy Access database files to modern formats",
	Version: version,
	Long: `mdbconv extracts tables from legacy Access (.mdb/.accdb) files and
converts them to SQL scripts, SQLite databases, CSV, JSON, or Excel
workbooks. Conversion is partitioned by year: each table is split on its
year column and every year becomes one output artifact.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		runConfig = cfg
		configOutputDir = cfg.GetString(cfgKeyOutputDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output-dir", "o", "", "artifact output directory (default: $(CWD)/converted)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "output format: sql, sqlite, csv, json, excel (default: sql)")
	rootCmd.PersistentFlags().StringVar(&flagYearColumn, "year-column", "", "year-bearing column used for partitioning (default: N_ANIO)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(formatsCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > MDBCONV_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveOutputDir returns the output directory following the precedence
// chain: --output-dir flag > config.yaml output_dir > MDBCONV_OUTPUT_DIR env
// > default $(CWD)/converted.
func resolveOutputDir() (string, error) {
	return paths.ResolveOutputDir(flagOutputDir, configOutputDir)
}
