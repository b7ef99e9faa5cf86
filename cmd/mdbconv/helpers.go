// Shared helpers for mdbconv CLI commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/mdbconv/internal/access"
	"github.com/mesh-intelligence/mdbconv/internal/partition"
	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// buildConfig assembles the conversion Config from flags and config.yaml.
// Flags win over config.yaml values.
func buildConfig() (types.Config, error) {
	outputDir, err := resolveOutputDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve output dir: %w", err)
	}

	format := flagFormat
	if format == "" {
		format = runConfig.GetString(cfgKeyFormat)
	}
	yearColumn := flagYearColumn
	if yearColumn == "" {
		yearColumn = runConfig.GetString(cfgKeyYearColumn)
	}

	cfg := types.Config{
		Format:     format,
		OutputDir:  outputDir,
		YearColumn: yearColumn,
		Parallel:   runConfig.GetBool(cfgKeyParallel),
		Workers:    runConfig.GetInt(cfgKeyWorkers),
		Naming: types.NamingConfig{
			TablePrefix:     runConfig.GetString(cfgKeyTablePrefix),
			TableSuffix:     runConfig.GetString(cfgKeyTableSuffix),
			LowercaseNames:  runConfig.GetBool(cfgKeyLowercaseNames),
			ReplaceSpaces:   runConfig.GetBool(cfgKeyReplaceSpaces),
			SanitizeChars:   runConfig.GetBool(cfgKeySanitizeChars),
			TimestampSuffix: runConfig.GetBool(cfgKeyTimestampSuffix),
		},
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// newEngine wires the extraction chain into a partition engine.
func newEngine(yearColumn string) (*access.Reader, *partition.Engine) {
	reader := access.NewReader()
	return reader, partition.New(reader, yearColumn)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
