// Config loading for the mdbconv CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyOutputDir       = "output_dir"
	cfgKeyFormat          = "format"
	cfgKeyYearColumn      = "year_column"
	cfgKeyParallel        = "parallel"
	cfgKeyWorkers         = "workers"
	cfgKeyTablePrefix     = "naming.table_prefix"
	cfgKeyTableSuffix     = "naming.table_suffix"
	cfgKeyLowercaseNames  = "naming.lowercase_names"
	cfgKeyReplaceSpaces   = "naming.replace_spaces"
	cfgKeySanitizeChars   = "naming.sanitize_chars"
	cfgKeyTimestampSuffix = "naming.timestamp_suffix"
)

// runConfig is the loaded configuration, set by PersistentPreRunE.
var runConfig *viper.Viper

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# mdbconv configuration

# Output format: sql, sqlite, csv, json, excel
format: sql

# Year-bearing column used for partitioning
year_column: N_ANIO

# Artifact output directory (optional; overridable by --output-dir flag)
# output_dir:

# Run (table, year) conversions concurrently
parallel: false
# workers: 4

# Artifact naming
naming:
  replace_spaces: true
  sanitize_chars: true
  # table_prefix: "{year}-"
  # table_suffix: ""
  # lowercase_names: false
  # timestamp_suffix: false
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on first
// run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyFormat, types.FormatSQL)
	v.SetDefault(cfgKeyYearColumn, types.DefaultYearColumn)
	v.SetDefault(cfgKeyParallel, false)
	v.SetDefault(cfgKeyWorkers, 0)
	v.SetDefault(cfgKeyReplaceSpaces, true)
	v.SetDefault(cfgKeySanitizeChars, true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
