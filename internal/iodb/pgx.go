// Package iodb implements the db.Operator contract: one operator backed
// by pgxpool for PostgreSQL and one backed by database/sql for SQLite.
// This is an impure I/O package; the contract lives in pkg/db.
package iodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// pgxOperator implements db.Operator using pgxpool for connection
// pooling. The GORM handle shares the pool through pgx's database/sql
// adapter, so the seeder and the DDL path see the same connections.
type pgxOperator struct {
	pool   *pgxpool.Pool
	orm    *gorm.DB
	schema string
}

// NewPgxOperator creates a PostgreSQL operator (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.Config,
	settings db.PoolSettings,
) error {
	dc := cfg.Database

	poolConfig, err := pgxpool.ParseConfig(dc.DSN())
	if err != nil {
		return ConnectionError(target(dc), err)
	}

	poolConfig.MaxConns = settings.MaxConns
	poolConfig.MinConns = settings.MinConns
	poolConfig.MaxConnLifetime = settings.MaxConnLifetime
	poolConfig.MaxConnIdleTime = settings.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = settings.ConnectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = config.AppName
	if dc.SchemaName != "" {
		poolConfig.ConnConfig.RuntimeParams["search_path"] = dc.SchemaName
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(target(dc), err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(target(dc), err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: gormlogger.Discard},
	)
	if err != nil {
		pool.Close()
		return ORMError(err)
	}

	p.pool = pool
	p.orm = gormDB
	p.schema = dc.SchemaName
	if p.schema == "" {
		p.schema = "public"
	}

	slog.Debug("connected to postgresql",
		"host", dc.Host, "database", dc.Database, "schema", p.schema)
	return nil
}

func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
		p.orm = nil
	}
	return nil
}

func (p *pgxOperator) Dialect() config.Dialect {
	return config.PostgreSQL
}

func (p *pgxOperator) Ping(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	if err := p.pool.Ping(ctx); err != nil {
		return PingError(err)
	}
	return nil
}

func (p *pgxOperator) Exec(ctx context.Context, sql string) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	if _, err := p.pool.Exec(ctx, sql); err != nil {
		return QueryError(sql, err)
	}
	return nil
}

func (p *pgxOperator) QueryInt(
	ctx context.Context, sql string,
) (int64, error) {
	if p.pool == nil {
		return 0, NotConnectedError()
	}
	var res int64
	if err := p.pool.QueryRow(ctx, sql).Scan(&res); err != nil {
		return 0, QueryError(sql, err)
	}
	return res, nil
}

func (p *pgxOperator) ListTables(ctx context.Context) ([]string, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = $1
		ORDER BY tablename
	`

	rows, err := p.pool.Query(ctx, query, p.schema)
	if err != nil {
		return nil, IntrospectionError("tables", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, IntrospectionError("tables", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, IntrospectionError("tables", err)
	}

	return tables, nil
}

func (p *pgxOperator) TableExists(
	ctx context.Context, tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = $1
			AND table_name = $2
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, p.schema, tableName).Scan(&exists)
	if err != nil {
		return false, IntrospectionError(tableName, err)
	}

	return exists, nil
}

func (p *pgxOperator) TableInfo(
	ctx context.Context, tableName string,
) (*db.TableInfo, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	res := &db.TableInfo{Name: tableName}

	colQuery := `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := p.pool.Query(ctx, colQuery, p.schema, tableName)
	if err != nil {
		return nil, IntrospectionError(tableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var col db.ColumnInfo
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable); err != nil {
			return nil, IntrospectionError(tableName, err)
		}
		col.Nullable = nullable == "YES"
		res.Columns = append(res.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, IntrospectionError(tableName, err)
	}

	idxQuery := `
		SELECT indexname
		FROM pg_indexes
		WHERE schemaname = $1 AND tablename = $2
		ORDER BY indexname
	`

	idxRows, err := p.pool.Query(ctx, idxQuery, p.schema, tableName)
	if err != nil {
		return nil, IntrospectionError(tableName, err)
	}
	defer idxRows.Close()

	for idxRows.Next() {
		var name string
		if err := idxRows.Scan(&name); err != nil {
			return nil, IntrospectionError(tableName, err)
		}
		res.Indexes = append(res.Indexes, name)
	}
	if err := idxRows.Err(); err != nil {
		return nil, IntrospectionError(tableName, err)
	}

	return res, nil
}

func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	tables, err := p.ListTables(ctx)
	if err != nil {
		return err
	}

	for _, table := range tables {
		dropSQL := fmt.Sprintf(
			"DROP TABLE IF EXISTS %q CASCADE", table)
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}

func (p *pgxOperator) ORM() *gorm.DB {
	return p.orm
}

func (p *pgxOperator) Stats() db.PoolStats {
	if p.pool == nil {
		return db.PoolStats{}
	}
	stat := p.pool.Stat()
	return db.PoolStats{
		MaxConns:   stat.MaxConns(),
		OpenConns:  stat.TotalConns(),
		IdleConns:  stat.IdleConns(),
		InUseConns: stat.AcquiredConns(),
	}
}

func target(dc config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%d/%s", dc.Host, dc.Port, dc.Database)
}
