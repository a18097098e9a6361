package iodb

import (
	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
)

// NewOperator returns the operator for the configured dialect.
// The dialect comes from the parsed connection URL, so an unknown value
// cannot reach this point; it is still handled to avoid a nil return.
func NewOperator(dialect config.Dialect) db.Operator {
	switch dialect {
	case config.PostgreSQL:
		return NewPgxOperator()
	default:
		return NewSQLiteOperator()
	}
}
