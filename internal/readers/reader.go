// Package readers implements the reader collaborator contract for the
// non-legacy tabular formats: CSV, JSON, and Excel workbooks. Each reader
// turns one source file into a fresh types.Table with per-column inferred
// types. The legacy Access reader lives in internal/access.
package readers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// Reader reads a tabular source file into a Table. table selects a named
// table or sheet for sources that contain more than one; single-table
// formats ignore it.
type Reader interface {
	Read(path, table string) (*types.Table, error)
}

// ForPath returns the reader for the file's extension.
// Returns ErrUnsupportedFormat for extensions with no reader.
func ForPath(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV{}, nil
	case ".json":
		return JSON{}, nil
	case ".xlsx", ".xls":
		return Excel{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// checkSource rejects missing and zero-byte source files before any parse
// is attempted.
func checkSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", types.ErrNotFound, path)
		}
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", types.ErrEmptyFile, path)
	}
	return nil
}
