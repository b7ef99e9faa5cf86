package access

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// Reader drives the extraction strategy chain for one or more legacy files.
// Environment capability does not change during a run, so the availability
// probe is memoized per Reader; Reprobe forces a fresh probe.
type Reader struct {
	strategies []Strategy
	log        *slog.Logger

	mu        sync.Mutex
	probed    bool
	available []string
}

// NewReader creates a Reader with the default strategy chain, ordered most
// portable first.
func NewReader() *Reader {
	return NewReaderWithStrategies(
		newMDBToolsStrategy(),
		newODBCStrategy(),
		newSnapshotStrategy(),
	)
}

// NewReaderWithStrategies creates a Reader over an explicit chain. Used by
// tests and by callers that need to reorder or restrict strategies.
func NewReaderWithStrategies(strategies ...Strategy) *Reader {
	return &Reader{
		strategies: strategies,
		log:        slog.Default().With("component", "access"),
	}
}

// checkSource rejects missing and zero-byte files before any strategy runs.
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

// Read extracts one table's full row set, trying each strategy in order.
//
// When table is empty and the file holds exactly one table, that table is
// read; with more than one table the call fails with AmbiguousTableError
// listing the choices. No strategy silently defaults to "the first table".
//
// A strategy failure advances the chain. An empty-but-valid result also
// advances the chain, because an empty export cannot be distinguished from
// a truncated one; if every remaining strategy fails, the empty result is
// returned as the table's true content.
func (r *Reader) Read(ctx context.Context, path, table string) (*types.Table, error) {
	if err := checkSource(path); err != nil {
		return nil, err
	}

	attempts := make(map[string]error)
	var lastErr error
	var emptyResult *types.Table

	for _, s := range r.strategies {
		if !s.Available() {
			attempts[s.Name()] = types.ErrStrategyUnavailable
			r.log.Debug("strategy unavailable", "strategy", s.Name())
			continue
		}

		tbl, err := r.readWith(ctx, s, path, table)
		if err != nil {
			if _, ok := err.(*types.AmbiguousTableError); ok {
				return nil, err
			}
			attempts[s.Name()] = err
			lastErr = err
			r.log.Warn("strategy failed", "strategy", s.Name(), "error", err)
			continue
		}

		if tbl.RowCount() == 0 {
			// Keep the first structurally valid empty result; another
			// strategy may still produce rows.
			if emptyResult == nil {
				emptyResult = tbl
			}
			attempts[s.Name()] = fmt.Errorf("empty result")
			r.log.Debug("strategy returned empty table", "strategy", s.Name())
			continue
		}

		r.log.Info("extraction succeeded",
			"strategy", s.Name(), "table", table,
			"rows", tbl.RowCount(), "columns", tbl.ColumnCount())
		return tbl, nil
	}

	if emptyResult != nil {
		return emptyResult, nil
	}
	return nil, &types.ExtractionError{
		Attempts: attempts,
		Last:     lastErr,
		Hint:     types.RemediationHint,
	}
}

// readWith runs one strategy end to end, resolving an unspecified table
// name against the strategy's own table listing.
func (r *Reader) readWith(ctx context.Context, s Strategy, path, table string) (*types.Table, error) {
	if table == "" {
		tables, err := s.ListTables(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		switch len(tables) {
		case 0:
			return nil, fmt.Errorf("no tables found")
		case 1:
			table = tables[0]
		default:
			return nil, &types.AmbiguousTableError{Tables: tables}
		}
	}
	return s.ReadTable(ctx, path, table)
}

// ListTables enumerates the file's tables using the first strategy that can.
// Per the discovery contract it returns an empty list, not an error, when no
// mechanism succeeds; callers must treat an empty list as "cannot proceed"
// unless they know the file is genuinely empty. Output order follows the
// winning strategy and is not guaranteed stable.
func (r *Reader) ListTables(ctx context.Context, path string) ([]string, error) {
	if err := checkSource(path); err != nil {
		return nil, err
	}

	for _, s := range r.strategies {
		if !s.Available() {
			continue
		}
		tables, err := s.ListTables(ctx, path)
		if err != nil {
			r.log.Warn("table listing failed", "strategy", s.Name(), "error", err)
			continue
		}
		if len(tables) > 0 {
			return tables, nil
		}
	}
	return nil, nil
}

// CheckSupport probes which strategies the environment can run. The result
// is cached for the Reader's lifetime.
func (r *Reader) CheckSupport() types.SupportReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.probed {
		r.available = nil
		for _, s := range r.strategies {
			if s.Available() {
				r.available = append(r.available, s.Name())
			}
		}
		r.probed = true
	}

	report := types.SupportReport{
		Supported:           len(r.available) > 0,
		AvailableStrategies: append([]string(nil), r.available...),
	}
	if !report.Supported {
		report.Remediation = types.RemediationHint
	}
	return report
}

// Reprobe discards the cached availability probe. The next CheckSupport
// inspects the environment again.
func (r *Reader) Reprobe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probed = false
}
