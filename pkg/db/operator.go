// Package db defines the contract for basic database management
// operations. Implementations live in internal/iodb: one backed by
// pgxpool for PostgreSQL, one backed by database/sql for SQLite.
package db

import (
	"context"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"gorm.io/gorm"
)

// Operator provides connection lifecycle management, raw statement
// execution for DDL, catalog introspection, and an ORM handle for the
// components that work with records rather than statements (the seeder).
//
// Design rationale:
// - Keeps the interface minimal to avoid bloat with mixed semantics
// - DDL and introspection stay on the raw path where dialects differ
// - ORM() lets record-level components share the same underlying pool
type Operator interface {
	// Connect establishes the connection (pool) to the database.
	// Pool sizing comes from SettingsFor and the classified environment.
	Connect(ctx context.Context, cfg *config.Config, settings PoolSettings) error

	// Close releases the connection pool.
	Close() error

	// Dialect reports which engine the operator talks to.
	Dialect() config.Dialect

	// Ping issues a minimal round-trip query. The context deadline bounds
	// the call; a hang must surface as an error, not a stall.
	Ping(ctx context.Context) error

	// Exec runs a single DDL or DML statement without arguments.
	// Provisioning SQL is argument-free by design so it runs unchanged
	// on both dialects.
	Exec(ctx context.Context, sql string) error

	// QueryInt runs an argument-free query returning a single integer,
	// used by existence and referential smoke checks.
	QueryInt(ctx context.Context, sql string) (int64, error)

	// ListTables returns the names of all tables visible to the
	// application (public schema on PostgreSQL).
	ListTables(ctx context.Context) ([]string, error)

	// TableExists checks if a table exists.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// TableInfo returns columns and indexes of a table for diagnostics.
	// Never used by the creation path.
	TableInfo(ctx context.Context, tableName string) (*TableInfo, error)

	// DropAllTables drops every table. Used only by reset, which refuses
	// to run in production.
	DropAllTables(ctx context.Context) error

	// ORM returns a gorm handle sharing the operator's connection.
	ORM() *gorm.DB

	// Stats returns a point-in-time snapshot of the connection pool.
	Stats() PoolStats
}

// TableInfo describes one table for diagnostics and health reports.
type TableInfo struct {
	Name    string
	Columns []ColumnInfo
	Indexes []string
}

// ColumnInfo describes one column of an introspected table.
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
}

// PoolStats is a read-only snapshot of pool usage.
type PoolStats struct {
	MaxConns   int32
	OpenConns  int32
	IdleConns  int32
	InUseConns int32
}
