package iodb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pilipandr770/sekretar-sub004/internal/iodb"
	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"github.com/pilipandr770/sekretar-sub004/pkg/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sekretar.db")
	cfg := config.New()
	dc, err := config.ParseDatabaseURL("sqlite:///" + path)
	require.NoError(t, err)
	cfg.Database = dc
	return cfg
}

func connectSQLite(t *testing.T) db.Operator {
	t.Helper()
	cfg := sqliteConfig(t)
	op := iodb.NewSQLiteOperator()
	settings := db.SettingsFor(environment.Testing, config.SQLite)
	err := op.Connect(context.Background(), cfg, settings)
	require.NoError(t, err)
	t.Cleanup(func() { op.Close() })
	return op
}

func TestSQLiteOperator_Connect(t *testing.T) {
	op := connectSQLite(t)

	assert.Equal(t, config.SQLite, op.Dialect())
	assert.NoError(t, op.Ping(context.Background()))
	assert.NotNil(t, op.ORM())
}

func TestSQLiteOperator_NotConnected(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	ctx := context.Background()

	assert.Error(t, op.Ping(ctx))
	assert.Error(t, op.Exec(ctx, "SELECT 1"))
	_, err := op.ListTables(ctx)
	assert.Error(t, err)
}

func TestSQLiteOperator_ExecAndIntrospect(t *testing.T) {
	op := connectSQLite(t)
	ctx := context.Background()

	err := op.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS widgets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		);
	`)
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "widgets")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = op.TableExists(ctx, "gadgets")
	require.NoError(t, err)
	assert.False(t, exists)

	tables, err := op.ListTables(ctx)
	require.NoError(t, err)
	assert.Contains(t, tables, "widgets")

	info, err := op.TableInfo(ctx, "widgets")
	require.NoError(t, err)
	require.Len(t, info.Columns, 2)
	assert.Equal(t, "id", info.Columns[0].Name)
	assert.Equal(t, "name", info.Columns[1].Name)
	assert.False(t, info.Columns[1].Nullable)
}

func TestSQLiteOperator_QueryInt(t *testing.T) {
	op := connectSQLite(t)
	ctx := context.Background()

	require.NoError(t, op.Exec(ctx,
		"CREATE TABLE items (id INTEGER PRIMARY KEY);"))
	require.NoError(t, op.Exec(ctx,
		"INSERT INTO items (id) VALUES (1), (2), (3);"))

	count, err := op.QueryInt(ctx, "SELECT count(*) FROM items")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSQLiteOperator_DropAllTables(t *testing.T) {
	op := connectSQLite(t)
	ctx := context.Background()

	require.NoError(t, op.Exec(ctx,
		"CREATE TABLE parents (id INTEGER PRIMARY KEY);"))
	require.NoError(t, op.Exec(ctx, `
		CREATE TABLE children (
			id INTEGER PRIMARY KEY,
			parent_id INTEGER REFERENCES parents(id)
		);
	`))

	err := op.DropAllTables(ctx)
	require.NoError(t, err)

	tables, err := op.ListTables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestSQLiteOperator_InMemory(t *testing.T) {
	cfg := config.New()
	dc, err := config.ParseDatabaseURL("sqlite://:memory:")
	require.NoError(t, err)
	cfg.Database = dc

	op := iodb.NewSQLiteOperator()
	settings := db.SettingsFor(environment.Testing, config.SQLite)
	err = op.Connect(context.Background(), cfg, settings)
	require.NoError(t, err)
	defer op.Close()

	assert.NoError(t, op.Ping(context.Background()))
}

func TestSQLiteOperator_Stats(t *testing.T) {
	op := connectSQLite(t)

	stats := op.Stats()
	assert.Equal(t, int32(1), stats.MaxConns)
}

func TestNewOperator_Dispatch(t *testing.T) {
	assert.Equal(t, config.SQLite,
		iodb.NewOperator(config.SQLite).Dialect())
	assert.Equal(t, config.PostgreSQL,
		iodb.NewOperator(config.PostgreSQL).Dialect())
}
