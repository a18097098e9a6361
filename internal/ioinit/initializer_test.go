package ioinit_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pilipandr770/sekretar-sub004/internal/iodb"
	"github.com/pilipandr770/sekretar-sub004/internal/iohealth"
	"github.com/pilipandr770/sekretar-sub004/internal/ioinit"
	"github.com/pilipandr770/sekretar-sub004/internal/ioschema"
	"github.com/pilipandr770/sekretar-sub004/internal/ioseed"
	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"github.com/pilipandr770/sekretar-sub004/pkg/environment"
	"github.com/pilipandr770/sekretar-sub004/pkg/lifecycle"
	"github.com/pilipandr770/sekretar-sub004/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStack(
	t *testing.T, env string, testingFlag bool,
) (lifecycle.Initializer, db.Operator, *config.Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sekretar.db")
	cfg := config.New()
	dc, err := config.ParseDatabaseURL("sqlite:///" + path)
	require.NoError(t, err)
	cfg.Database = dc
	cfg.Environment = env
	cfg.Testing = testingFlag

	op := iodb.NewSQLiteOperator()
	settings := db.SettingsFor(
		environment.Classify(env, testingFlag), config.SQLite)
	require.NoError(t, op.Connect(context.Background(), cfg, settings))
	t.Cleanup(func() { op.Close() })

	ini := ioinit.New(
		op, cfg,
		ioschema.NewEnsurer(op),
		ioseed.NewSeeder(op, cfg),
		iohealth.NewValidator(op, cfg),
	)
	return ini, op, cfg
}

var allSteps = []lifecycle.Step{
	lifecycle.StepConnectionTest,
	lifecycle.StepSchemaCreation,
	lifecycle.StepMigrationExecution,
	lifecycle.StepDataSeeding,
	lifecycle.StepHealthValidation,
	lifecycle.StepCleanup,
}

func TestInitialize_FreshDatabase(t *testing.T) {
	ini, op, _ := newStack(t, "testing", true)
	ctx := context.Background()

	res := ini.Initialize(ctx, lifecycle.InitOptions{})

	require.Empty(t, res.Errors)
	assert.True(t, res.Success)
	assert.Equal(t, "sqlite", res.DatabaseType)
	assert.Equal(t, allSteps, res.StepsCompleted)
	assert.NotZero(t, res.Duration)

	tables, err := op.ListTables(ctx)
	require.NoError(t, err)
	for _, name := range schema.TableNames() {
		assert.Contains(t, tables, name)
	}

	count, err := op.QueryInt(ctx,
		"SELECT count(*) FROM tenants WHERE is_system = TRUE")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInitialize_Idempotent(t *testing.T) {
	ini, _, _ := newStack(t, "testing", true)
	ctx := context.Background()

	first := ini.Initialize(ctx, lifecycle.InitOptions{})
	require.True(t, first.Success)

	second := ini.Initialize(ctx, lifecycle.InitOptions{})
	assert.True(t, second.Success)
	assert.Equal(t, []lifecycle.Step{
		lifecycle.StepConnectionTest,
		lifecycle.StepHealthValidation,
		lifecycle.StepCleanup,
	}, second.StepsCompleted,
		"complete schema should short-circuit the mutating steps")
	require.NotEmpty(t, second.Warnings)
	assert.Contains(t, second.Warnings[0], "already initialized")
}

func TestInitialize_SchemaWithoutSeedsGetsSeeded(t *testing.T) {
	ini, op, cfg := newStack(t, "testing", true)
	ctx := context.Background()

	ensurer := ioschema.NewEnsurer(op)
	require.Empty(t, ensurer.EnsureTables(ctx).TablesFailed)
	require.Empty(t, ensurer.EnsureIndexes(ctx).TablesFailed)

	res := ini.Initialize(ctx, lifecycle.InitOptions{})

	require.Empty(t, res.Errors)
	assert.True(t, res.Success)
	assert.Equal(t, allSteps, res.StepsCompleted,
		"a complete schema without seeds must not short-circuit seeding")

	count, err := op.QueryInt(ctx,
		"SELECT count(*) FROM tenants WHERE is_system = TRUE")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	hr := iohealth.NewValidator(op, cfg).Check(ctx)
	assert.Equal(t, lifecycle.Healthy, hr.Status)
}

func TestInitialize_ForceRunsAllSteps(t *testing.T) {
	ini, _, _ := newStack(t, "testing", true)
	ctx := context.Background()

	require.True(t, ini.Initialize(ctx, lifecycle.InitOptions{}).Success)

	res := ini.Initialize(ctx, lifecycle.InitOptions{Force: true})
	assert.True(t, res.Success)
	assert.Equal(t, allSteps, res.StepsCompleted)
}

func TestInitialize_SkipSeeding(t *testing.T) {
	ini, op, _ := newStack(t, "development", false)
	ctx := context.Background()

	res := ini.Initialize(ctx, lifecycle.InitOptions{SkipSeeding: true})

	assert.True(t, res.Success)
	count, err := op.QueryInt(ctx, "SELECT count(*) FROM tenants")
	require.NoError(t, err)
	assert.Zero(t, count, "seeding was skipped")
	assert.Contains(t, res.Warnings, "seeding skipped on request")
}

func TestInitialize_UnreachableDatabase(t *testing.T) {
	ini, op, _ := newStack(t, "testing", true)
	require.NoError(t, op.Close())

	res := ini.Initialize(context.Background(), lifecycle.InitOptions{})

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1,
		"an unreachable database should produce a single connectivity error")
	assert.Empty(t, res.StepsCompleted)
}

func TestInitialize_ProductionRefusesSchemaCreation(t *testing.T) {
	ini, op, _ := newStack(t, "production", false)
	ctx := context.Background()

	res := ini.Initialize(ctx, lifecycle.InitOptions{})

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Errors)

	tables, err := op.ListTables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables,
		"production must never create tables on startup")

	// The skipped schema step itself is only a warning; the failure is
	// carried by health validation alone.
	require.Len(t, res.Errors, 1)
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "schema creation disabled") {
			found = true
		}
	}
	assert.True(t, found,
		"disabled schema creation should be reported as a warning")
}

func TestStatus(t *testing.T) {
	ini, _, _ := newStack(t, "testing", true)
	ctx := context.Background()

	before := ini.Status(ctx)
	assert.False(t, before.SchemaExists)
	assert.False(t, before.SeedingComplete)
	assert.Equal(t, schema.TableNames(), before.MissingTables)
	assert.True(t, before.LastInitialization.IsZero())

	require.True(t, ini.Initialize(ctx, lifecycle.InitOptions{}).Success)

	after := ini.Status(ctx)
	assert.True(t, after.SchemaExists)
	assert.True(t, after.MigrationsCurrent)
	assert.True(t, after.SeedingComplete)
	assert.Empty(t, after.MissingTables)
	assert.False(t, after.LastInitialization.IsZero())
}

func TestRepair_HealthyDatabase(t *testing.T) {
	ini, _, _ := newStack(t, "testing", true)
	ctx := context.Background()
	require.True(t, ini.Initialize(ctx, lifecycle.InitOptions{}).Success)

	res := ini.Repair(ctx, lifecycle.RepairOptions{AutoFix: true})
	assert.True(t, res.Success)
	assert.Empty(t, res.RepairsPerformed)
	assert.Empty(t, res.ManualSteps)
}

func TestRepair_WithoutAutoFixOnlyReports(t *testing.T) {
	ini, op, _ := newStack(t, "testing", true)
	ctx := context.Background()
	require.True(t, ini.Initialize(ctx, lifecycle.InitOptions{}).Success)

	require.NoError(t, op.Exec(ctx, "DROP INDEX idx_users_email;"))

	res := ini.Repair(ctx, lifecycle.RepairOptions{})
	assert.True(t, res.Success)
	assert.Empty(t, res.RepairsPerformed)
	require.NotEmpty(t, res.ManualSteps)
	assert.Contains(t, res.ManualSteps[0], "--auto-fix")
}

func TestRepair_AutoFixRestoresIndexes(t *testing.T) {
	ini, op, cfg := newStack(t, "testing", true)
	ctx := context.Background()
	require.True(t, ini.Initialize(ctx, lifecycle.InitOptions{}).Success)

	require.NoError(t, op.Exec(ctx, "DROP INDEX idx_users_email;"))

	res := ini.Repair(ctx, lifecycle.RepairOptions{AutoFix: true})
	assert.True(t, res.Success)
	assert.Contains(t, res.RepairsPerformed, "recreate missing indexes")

	hr := iohealth.NewValidator(op, cfg).Check(ctx)
	assert.Equal(t, lifecycle.Healthy, hr.Status)
}

func TestRepair_DryRunChangesNothing(t *testing.T) {
	ini, op, _ := newStack(t, "testing", true)
	ctx := context.Background()
	require.True(t, ini.Initialize(ctx, lifecycle.InitOptions{}).Success)

	require.NoError(t, op.Exec(ctx, "DROP INDEX idx_users_email;"))

	res := ini.Repair(ctx,
		lifecycle.RepairOptions{AutoFix: true, DryRun: true})
	assert.True(t, res.Success)
	assert.Empty(t, res.RepairsPerformed)

	info, err := op.TableInfo(ctx, "users")
	require.NoError(t, err)
	assert.NotContains(t, info.Indexes, "idx_users_email")
}

func TestReset_RefusedInProduction(t *testing.T) {
	ini, _, _ := newStack(t, "production", false)

	err := ini.Reset(context.Background(), false)
	assert.Error(t, err)
}

func TestReset_DropsAndReinitializes(t *testing.T) {
	ini, op, _ := newStack(t, "testing", true)
	ctx := context.Background()
	require.True(t, ini.Initialize(ctx, lifecycle.InitOptions{}).Success)

	require.NoError(t, op.Exec(ctx, `
		INSERT INTO tenants (id, name, slug)
		VALUES ('t-extra', 'Extra', 'extra');
	`))

	require.NoError(t, ini.Reset(ctx, false))

	count, err := op.QueryInt(ctx,
		"SELECT count(*) FROM tenants WHERE slug = 'extra'")
	require.NoError(t, err)
	assert.Zero(t, count, "reset should drop existing data")

	count, err = op.QueryInt(ctx,
		"SELECT count(*) FROM tenants WHERE is_system = TRUE")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "reset should reseed the baseline")
}

func TestReset_KeepDataPreservesRows(t *testing.T) {
	ini, op, _ := newStack(t, "testing", true)
	ctx := context.Background()
	require.True(t, ini.Initialize(ctx, lifecycle.InitOptions{}).Success)

	require.NoError(t, op.Exec(ctx, `
		INSERT INTO tenants (id, name, slug)
		VALUES ('t-keep', 'Keep', 'keep');
	`))

	require.NoError(t, ini.Reset(ctx, true))

	count, err := op.QueryInt(ctx,
		"SELECT count(*) FROM tenants WHERE slug = 'keep'")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count,
		"keep-data reset must not drop rows")
}

func TestAbortOverride(t *testing.T) {
	// The override only changes the abort decision exposed through the
	// policy; the pipeline itself behaves the same.
	f := false
	cfg := config.New()
	cfg.Environment = "production"
	cfg.AbortOnDBFailure = &f

	env := environment.Classify(cfg.Environment, cfg.Testing)
	policy := environment.DerivePolicy(env).
		ApplyAbortOverride(cfg.AbortOnDBFailure)
	assert.False(t, policy.AbortOnBootstrapFailure)
}
