package lifecycle

import (
	"context"

	"github.com/pilipandr770/sekretar-sub004/pkg/db"
)

// SchemaEnsurer brings the database's table set up to the compiled-in
// catalog. All operations are idempotent: creating an existing table or
// index is a no-op, not an error, which is also what makes concurrent
// invocation from independent worker processes safe.
type SchemaEnsurer interface {
	// MissingTables set-differences the live table catalog against the
	// required catalog. When introspection itself fails (database
	// unreachable) it reports every table as missing instead of failing,
	// so the caller can decide to abort or retry.
	MissingTables(ctx context.Context) []string

	// EnsureTables creates every missing table with dialect-specific
	// CREATE TABLE IF NOT EXISTS. Each table is independently retryable;
	// failures are collected, not short-circuited.
	EnsureTables(ctx context.Context) *SchemaResult

	// EnsureIndexes applies the required indexes of every catalog table,
	// also IF NOT EXISTS. Same isolation semantics as EnsureTables.
	EnsureIndexes(ctx context.Context) *SchemaResult

	// TableInfo exposes columns and indexes for diagnostics. Never used
	// by the creation path.
	TableInfo(ctx context.Context, name string) (*db.TableInfo, error)
}

// Seeder inserts the baseline records the application needs to be usable
// after first initialization: the system tenant, the baseline role set
// and the administrative account. Every insert is preceded by an
// existence check; existing records are skips, not errors.
type Seeder interface {
	Seed(ctx context.Context) *SeedResult
}

// HealthValidator runs the battery of checks that grade database health.
type HealthValidator interface {
	// CheckConnectivity issues a minimal bounded round-trip query.
	// Any failure returns false; nothing escapes this boundary.
	CheckConnectivity(ctx context.Context) bool

	// CheckSchema compares the live table/column/index set against the
	// catalog. Missing required objects are issues; unknown extra tables
	// are warnings only (the schema is additive-tolerant).
	CheckSchema(ctx context.Context) (bool, []string)

	// CheckData runs small referential smoke checks (orphaned rows).
	CheckData(ctx context.Context) (bool, []string)

	// Check runs connectivity, schema and data checks in that order and
	// grades the result. Connectivity failure short-circuits to
	// Unhealthy: the other checks are meaningless without a connection.
	Check(ctx context.Context) *HealthResult

	// CheckPerformance measures round-trip latencies for diagnostics.
	CheckPerformance(ctx context.Context) map[string]float64
}

// InitOptions modify one Initialize call.
type InitOptions struct {
	// Force re-runs initialization even when the schema is complete.
	Force bool

	// SkipSeeding suppresses the data-seeding step regardless of policy.
	SkipSeeding bool
}

// RepairOptions modify one Repair call.
type RepairOptions struct {
	// AutoFix applies the idempotent fixes; without it Repair only
	// reports what it would do.
	AutoFix bool

	// DryRun reports planned repairs without touching the database.
	DryRun bool
}

// Initializer sequences the pipeline and owns the idempotence, force,
// repair and reset entry points.
type Initializer interface {
	// Initialize runs the step pipeline and returns its result. The
	// caller decides abort-vs-degrade from Result.Success and the
	// environment policy. It never panics: unexpected programming errors
	// are converted into a failed Result.
	Initialize(ctx context.Context, opts InitOptions) *Result

	// Status is a read-only snapshot; it never mutates anything.
	Status(ctx context.Context) *Status

	// Repair runs the health validator and applies the idempotent fix
	// for each detected issue. Unfixable issues become ManualSteps.
	Repair(ctx context.Context, opts RepairOptions) *RepairResult

	// Reset drops all tables (unless keepData) and re-initializes.
	// Refuses to run in production regardless of flags.
	Reset(ctx context.Context, keepData bool) error
}
