//go:build !windows

package access

import (
	"context"

	"github.com/mesh-intelligence/mdbconv/pkg/types"
)

// odbcStrategy is a stub outside Windows: the Microsoft Access ODBC driver
// only exists there. Available always reports false, so the chain skips it.
type odbcStrategy struct{}

func newODBCStrategy() Strategy { return odbcStrategy{} }

func (odbcStrategy) Name() string { return "odbc" }

func (odbcStrategy) Available() bool { return false }

func (odbcStrategy) ListTables(context.Context, string) ([]string, error) {
	return nil, types.ErrStrategyUnavailable
}

func (odbcStrategy) ReadTable(context.Context, string, string) (*types.Table, error) {
	return nil, types.ErrStrategyUnavailable
}
