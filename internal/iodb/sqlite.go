package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// Registers the cgo-free "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// sqliteOperator implements db.Operator using database/sql with the
// modernc driver. GORM rides the same *sql.DB, which keeps the single
// writer connection shared between the DDL path and the seeder.
type sqliteOperator struct {
	sqlDB *sql.DB
	orm   *gorm.DB
	path  string
}

// NewSQLiteOperator creates a SQLite operator (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.Config,
	settings db.PoolSettings,
) error {
	dc := cfg.Database

	if dc.Path != ":memory:" {
		dir := filepath.Dir(dc.Path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return ConnectionError(dc.Path, err)
			}
		}
	}

	sqlDB, err := sql.Open("sqlite", dc.DSN())
	if err != nil {
		return ConnectionError(dc.Path, err)
	}

	// SQLite serializes writers; a single connection avoids
	// SQLITE_BUSY churn under concurrent use.
	sqlDB.SetMaxOpenConns(int(settings.MaxConns))
	sqlDB.SetMaxIdleConns(int(settings.MinConns))
	sqlDB.SetConnMaxLifetime(settings.MaxConnLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, settings.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return ConnectionError(dc.Path, err)
	}

	gormDB, err := gorm.Open(
		sqlite.New(sqlite.Config{Conn: sqlDB}),
		&gorm.Config{Logger: gormlogger.Discard},
	)
	if err != nil {
		sqlDB.Close()
		return ORMError(err)
	}

	s.sqlDB = sqlDB
	s.orm = gormDB
	s.path = dc.Path

	slog.Debug("connected to sqlite", "path", dc.Path)
	return nil
}

func (s *sqliteOperator) Close() error {
	if s.sqlDB != nil {
		err := s.sqlDB.Close()
		s.sqlDB = nil
		s.orm = nil
		return err
	}
	return nil
}

func (s *sqliteOperator) Dialect() config.Dialect {
	return config.SQLite
}

func (s *sqliteOperator) Ping(ctx context.Context) error {
	if s.sqlDB == nil {
		return NotConnectedError()
	}
	if err := s.sqlDB.PingContext(ctx); err != nil {
		return PingError(err)
	}
	return nil
}

func (s *sqliteOperator) Exec(ctx context.Context, sqlStr string) error {
	if s.sqlDB == nil {
		return NotConnectedError()
	}
	if _, err := s.sqlDB.ExecContext(ctx, sqlStr); err != nil {
		return QueryError(sqlStr, err)
	}
	return nil
}

func (s *sqliteOperator) QueryInt(
	ctx context.Context, sqlStr string,
) (int64, error) {
	if s.sqlDB == nil {
		return 0, NotConnectedError()
	}
	var res int64
	if err := s.sqlDB.QueryRowContext(ctx, sqlStr).Scan(&res); err != nil {
		return 0, QueryError(sqlStr, err)
	}
	return res, nil
}

func (s *sqliteOperator) ListTables(ctx context.Context) ([]string, error) {
	if s.sqlDB == nil {
		return nil, NotConnectedError()
	}

	query := `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := s.sqlDB.QueryContext(ctx, query)
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

func (s *sqliteOperator) TableExists(
	ctx context.Context, tableName string,
) (bool, error) {
	if s.sqlDB == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`

	var count int
	err := s.sqlDB.QueryRowContext(ctx, query, tableName).Scan(&count)
	if err != nil {
		return false, IntrospectionError(tableName, err)
	}

	return count > 0, nil
}

func (s *sqliteOperator) TableInfo(
	ctx context.Context, tableName string,
) (*db.TableInfo, error) {
	if s.sqlDB == nil {
		return nil, NotConnectedError()
	}

	res := &db.TableInfo{Name: tableName}

	// PRAGMA does not accept bound parameters; the table name comes
	// from the compiled-in catalog, not from user input.
	colQuery := fmt.Sprintf(
		"PRAGMA table_info(%q)", strings.ReplaceAll(tableName, `"`, ""),
	)

	rows, err := s.sqlDB.QueryContext(ctx, colQuery)
	if err != nil {
		return nil, IntrospectionError(tableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk)
		if err != nil {
			return nil, IntrospectionError(tableName, err)
		}
		res.Columns = append(res.Columns, db.ColumnInfo{
			Name:     name,
			Type:     colType,
			Nullable: notNull == 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, IntrospectionError(tableName, err)
	}

	idxQuery := `
		SELECT name FROM sqlite_master
		WHERE type = 'index' AND tbl_name = ?
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	idxRows, err := s.sqlDB.QueryContext(ctx, idxQuery, tableName)
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

func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	if s.sqlDB == nil {
		return NotConnectedError()
	}

	tables, err := s.ListTables(ctx)
	if err != nil {
		return err
	}

	// Foreign keys would force a dependency-ordered drop; disabling
	// them for the duration keeps reset simple.
	if _, err := s.sqlDB.ExecContext(
		ctx, "PRAGMA foreign_keys = OFF",
	); err != nil {
		return QueryError("PRAGMA foreign_keys = OFF", err)
	}

	for _, table := range tables {
		dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %q", table)
		if _, err := s.sqlDB.ExecContext(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	if _, err := s.sqlDB.ExecContext(
		ctx, "PRAGMA foreign_keys = ON",
	); err != nil {
		return QueryError("PRAGMA foreign_keys = ON", err)
	}

	return nil
}

func (s *sqliteOperator) ORM() *gorm.DB {
	return s.orm
}

func (s *sqliteOperator) Stats() db.PoolStats {
	if s.sqlDB == nil {
		return db.PoolStats{}
	}
	stats := s.sqlDB.Stats()
	return db.PoolStats{
		MaxConns:   int32(stats.MaxOpenConnections),
		OpenConns:  int32(stats.OpenConnections),
		IdleConns:  int32(stats.Idle),
		InUseConns: int32(stats.InUse),
	}
}
