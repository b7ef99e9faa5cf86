package types

import "errors"

// DefaultYearColumn is the year-bearing column of the historical record
// files this tool was built to migrate.
const DefaultYearColumn = "N_ANIO"

// Supported output format names.
const (
	FormatSQL    = "sql"
	FormatSQLite = "sqlite"
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatExcel  = "excel"
)

// Config holds the parameters for a conversion run.
type Config struct {
	Format     string       `json:"format" yaml:"format"`
	OutputDir  string       `json:"output_dir" yaml:"output_dir"`
	YearColumn string       `json:"year_column" yaml:"year_column"`
	Parallel   bool         `json:"parallel" yaml:"parallel"`
	Workers    int          `json:"workers" yaml:"workers"`
	Naming     NamingConfig `json:"naming" yaml:"naming"`
}

// Config validation errors.
var (
	ErrFormatEmpty     = errors.New("output format must not be empty")
	ErrFormatUnknown   = errors.New("unknown output format")
	ErrOutputDirEmpty  = errors.New("output directory must not be empty")
	ErrWorkersNegative = errors.New("worker count must not be negative")
)

// knownFormats lists the formats that Validate accepts.
var knownFormats = map[string]bool{
	FormatSQL:    true,
	FormatSQLite: true,
	FormatCSV:    true,
	FormatJSON:   true,
	FormatExcel:  true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Format == "" {
		return ErrFormatEmpty
	}
	if !knownFormats[c.Format] {
		return ErrFormatUnknown
	}
	if c.OutputDir == "" {
		return ErrOutputDirEmpty
	}
	if c.Workers < 0 {
		return ErrWorkersNegative
	}
	return nil
}

// EffectiveYearColumn returns YearColumn or the historical default.
func (c Config) EffectiveYearColumn() string {
	if c.YearColumn == "" {
		return DefaultYearColumn
	}
	return c.YearColumn
}
