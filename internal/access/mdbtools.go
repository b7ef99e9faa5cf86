package access

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/mdbconv/internal/readers"
	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// Command timeouts matching the upstream mdbtools defaults for listing and
// export.
const (
	mdbListTimeout   = 30 * time.Second
	mdbExportTimeout = 60 * time.Second
)

// mdbToolsStrategy extracts via the mdbtools command-line suite. It is the
// most reliable mechanism on Unix and macOS.
type mdbToolsStrategy struct {
	// lookPath is a seam for tests; defaults to exec.LookPath.
	lookPath func(string) (string, error)
}

func newMDBToolsStrategy() *mdbToolsStrategy {
	return &mdbToolsStrategy{lookPath: exec.LookPath}
}

func (s *mdbToolsStrategy) Name() string { return "mdbtools" }

// Available reports whether both mdb-tables and mdb-export are on PATH.
func (s *mdbToolsStrategy) Available() bool {
	if _, err := s.lookPath("mdb-tables"); err != nil {
		return false
	}
	_, err := s.lookPath("mdb-export")
	return err == nil
}

// ListTables runs `mdb-tables -1`, one table name per line.
func (s *mdbToolsStrategy) ListTables(ctx context.Context, path string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, mdbListTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "mdb-tables", "-1", path).Output()
	if err != nil {
		return nil, fmt.Errorf("mdb-tables: %w", commandErr(err))
	}

	var tables []string
	for _, line := range strings.Split(string(out), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			tables = append(tables, name)
		}
	}
	return tables, nil
}

// ReadTable exports the table to a uniquely named temporary CSV file and
// parses it through the CSV reader collaborator. The temp file is removed
// on success and failure alike.
func (s *mdbToolsStrategy) ReadTable(ctx context.Context, path, table string) (*types.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, mdbExportTimeout)
	defer cancel()

	tmp := filepath.Join(os.TempDir(), "mdbconv-"+uuid.NewString()+".csv")
	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("create temp export: %w", err)
	}
	defer os.Remove(tmp)

	cmd := exec.CommandContext(ctx, "mdb-export", path, table)
	cmd.Stdout = f
	runErr := cmd.Run()
	closeErr := f.Close()
	if runErr != nil {
		return nil, fmt.Errorf("mdb-export %q: %w", table, commandErr(runErr))
	}
	if closeErr != nil {
		return nil, fmt.Errorf("flush temp export: %w", closeErr)
	}

	return readers.CSV{}.Read(tmp, "")
}

// commandErr surfaces stderr when an external tool exits non-zero.
func commandErr(err error) error {
	if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(ee.Stderr)))
	}
	return err
}
