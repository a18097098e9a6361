package ioschema_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pilipandr770/sekretar-sub004/internal/iodb"
	"github.com/pilipandr770/sekretar-sub004/internal/ioschema"
	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"github.com/pilipandr770/sekretar-sub004/pkg/environment"
	"github.com/pilipandr770/sekretar-sub004/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectSQLite(t *testing.T) db.Operator {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sekretar.db")
	cfg := config.New()
	dc, err := config.ParseDatabaseURL("sqlite:///" + path)
	require.NoError(t, err)
	cfg.Database = dc

	op := iodb.NewSQLiteOperator()
	settings := db.SettingsFor(environment.Testing, config.SQLite)
	require.NoError(t, op.Connect(context.Background(), cfg, settings))
	t.Cleanup(func() { op.Close() })
	return op
}

func TestMissingTables_EmptyDatabase(t *testing.T) {
	op := connectSQLite(t)
	ensurer := ioschema.NewEnsurer(op)

	missing := ensurer.MissingTables(context.Background())
	assert.Equal(t, schema.TableNames(), missing,
		"empty database should miss the whole catalog in order")
}

func TestEnsureTables_FreshDatabase(t *testing.T) {
	op := connectSQLite(t)
	ensurer := ioschema.NewEnsurer(op)
	ctx := context.Background()

	res := ensurer.EnsureTables(ctx)

	assert.Empty(t, res.Errors)
	assert.Empty(t, res.TablesFailed)
	assert.Equal(t, len(schema.TableNames()), res.TablesChecked)
	assert.Equal(t, schema.TableNames(), res.TablesCreated)

	missing := ensurer.MissingTables(ctx)
	assert.Empty(t, missing)
}

func TestEnsureTables_Idempotent(t *testing.T) {
	op := connectSQLite(t)
	ensurer := ioschema.NewEnsurer(op)
	ctx := context.Background()

	first := ensurer.EnsureTables(ctx)
	require.Empty(t, first.Errors)

	second := ensurer.EnsureTables(ctx)
	assert.Empty(t, second.Errors)
	assert.Empty(t, second.TablesCreated,
		"second run should create nothing")
	assert.Equal(t, len(schema.TableNames()), second.TablesChecked)
}

func TestEnsureTables_PreservesExistingData(t *testing.T) {
	op := connectSQLite(t)
	ensurer := ioschema.NewEnsurer(op)
	ctx := context.Background()

	require.Empty(t, ensurer.EnsureTables(ctx).Errors)

	err := op.Exec(ctx, `
		INSERT INTO tenants (id, name, slug)
		VALUES ('t-1', 'Keep Me', 'keep-me');
	`)
	require.NoError(t, err)

	res := ensurer.EnsureTables(ctx)
	require.Empty(t, res.Errors)

	count, err := op.QueryInt(ctx, "SELECT count(*) FROM tenants")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count,
		"re-ensuring the schema must not touch existing rows")
}

func TestEnsureIndexes(t *testing.T) {
	op := connectSQLite(t)
	ensurer := ioschema.NewEnsurer(op)
	ctx := context.Background()

	require.Empty(t, ensurer.EnsureTables(ctx).Errors)

	res := ensurer.EnsureIndexes(ctx)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.TablesFailed)

	info, err := ensurer.TableInfo(ctx, "users")
	require.NoError(t, err)
	assert.Contains(t, info.Indexes, "idx_users_tenant")
	assert.Contains(t, info.Indexes, "idx_users_email")

	// Re-running is a no-op.
	res = ensurer.EnsureIndexes(ctx)
	assert.Empty(t, res.Errors)
}

// failingOperator wraps a real operator and fails Exec for statements
// matching a substring, to exercise per-table failure isolation.
type failingOperator struct {
	db.Operator
	match string
}

func (f *failingOperator) Exec(ctx context.Context, sql string) error {
	if strings.Contains(sql, f.match) {
		return assert.AnError
	}
	return f.Operator.Exec(ctx, sql)
}

func TestEnsureTables_PartialFailureIsolation(t *testing.T) {
	op := connectSQLite(t)
	failing := &failingOperator{Operator: op, match: "CREATE TABLE IF NOT EXISTS leads"}
	ensurer := ioschema.NewEnsurer(failing)
	ctx := context.Background()

	res := ensurer.EnsureTables(ctx)

	assert.Equal(t, []string{"leads"}, res.TablesFailed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "leads")
	assert.Len(t, res.TablesCreated, len(schema.TableNames())-1,
		"one bad table must not block the rest")
}

func TestEnsurer_ProgressCallback(t *testing.T) {
	op := connectSQLite(t)
	var seen []string
	ensurer := ioschema.NewEnsurer(op, ioschema.WithProgress(
		func(table string) { seen = append(seen, table) },
	))

	ensurer.EnsureTables(context.Background())
	assert.Equal(t, schema.TableNames(), seen)
}

func TestTableInfo_UnknownTable(t *testing.T) {
	op := connectSQLite(t)
	ensurer := ioschema.NewEnsurer(op)

	info, err := ensurer.TableInfo(context.Background(), "no_such_table")
	// PRAGMA table_info on a missing table yields no rows, not an error.
	if err == nil {
		assert.Empty(t, info.Columns)
	}
}
