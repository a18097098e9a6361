// Package ioinit implements the lifecycle.Initializer contract: the
// forward-only step pipeline that brings a database from any state to a
// ready one, plus the status, repair and reset entry points.
package ioinit

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"github.com/pilipandr770/sekretar-sub004/pkg/environment"
	"github.com/pilipandr770/sekretar-sub004/pkg/lifecycle"
	"github.com/pilipandr770/sekretar-sub004/pkg/schema"
)

type initializer struct {
	operator db.Operator
	cfg      *config.Config
	policy   environment.Policy
	ensurer  lifecycle.SchemaEnsurer
	seeder   lifecycle.Seeder
	health   lifecycle.HealthValidator

	mu   sync.Mutex
	last *lifecycle.Result
}

// New creates an Initializer over a connected operator and the pipeline
// components. The policy is derived once from the configuration.
func New(
	op db.Operator,
	cfg *config.Config,
	ensurer lifecycle.SchemaEnsurer,
	seeder lifecycle.Seeder,
	health lifecycle.HealthValidator,
) lifecycle.Initializer {
	env := environment.Classify(cfg.Environment, cfg.Testing)
	policy := environment.DerivePolicy(env).
		ApplyAbortOverride(cfg.AbortOnDBFailure)

	return &initializer{
		operator: op,
		cfg:      cfg,
		policy:   policy,
		ensurer:  ensurer,
		seeder:   seeder,
		health:   health,
	}
}

// Initialize runs the pipeline. Steps are forward-only; a fatal failure
// records its error and stops, a recoverable one records a warning and
// continues. The result is always produced, even on panic.
func (ini *initializer) Initialize(
	ctx context.Context, opts lifecycle.InitOptions,
) (res *lifecycle.Result) {
	start := time.Now()
	res = &lifecycle.Result{
		DatabaseType: string(ini.operator.Dialect()),
		Timestamp:    start,
	}
	defer func() {
		if r := recover(); r != nil {
			err := PanicError(r)
			slog.Error("initialization panicked", "error", err)
			res.Errors = append(res.Errors, err.Error())
		}
		res.Success = len(res.Errors) == 0
		res.Duration = time.Since(start)
		ini.mu.Lock()
		ini.last = res
		ini.mu.Unlock()

		slog.Info("initialization finished",
			"success", res.Success,
			"environment", ini.policy.Environment.String(),
			"database", res.DatabaseType,
			"duration", res.Duration,
			"errors", len(res.Errors),
			"warnings", len(res.Warnings))
	}()

	slog.Info("initialization started",
		"environment", ini.policy.Environment.String(),
		"database", res.DatabaseType,
		"force", opts.Force)

	// CONNECTION_TEST. Nothing else is meaningful without it, so this
	// step is fatal regardless of policy.
	timeout := time.Duration(ini.cfg.Database.ConnectTimeout) * time.Second
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	err := ini.operator.Ping(pingCtx)
	cancel()
	if err != nil {
		res.Errors = append(res.Errors, ConnectivityError(err).Error())
		return res
	}
	res.StepsCompleted = append(res.StepsCompleted,
		lifecycle.StepConnectionTest)

	missing := ini.ensurer.MissingTables(ctx)

	// A complete schema with the baseline records in place means
	// initialization already happened. Skip the mutating steps and just
	// re-validate, unless forced. A schema without seeds still goes
	// through the full pipeline so the seeding step can fill the gap.
	if !opts.Force && len(missing) == 0 && ini.seedingComplete(ctx) {
		slog.Info("schema is complete, skipping creation and seeding")
		res.Warnings = append(res.Warnings,
			"database is already initialized, "+
				"schema creation and seeding skipped")
		ini.validate(ctx, res)
		ini.cleanup(ctx, res)
		return res
	}

	// SCHEMA_CREATION.
	if ini.policy.AutoCreateSchema {
		sr := ini.ensurer.EnsureTables(ctx)
		res.Warnings = append(res.Warnings, sr.Warnings...)

		if len(sr.TablesFailed) > 0 && len(sr.TablesCreated) == 0 &&
			len(missing) > 0 {
			// Nothing could be created at all: the database is unusable.
			res.Errors = append(res.Errors,
				SchemaStepError(sr.TablesFailed).Error())
			ini.cleanup(ctx, res)
			return res
		}
		// Individual failures degrade one feature area each; they are
		// surfaced but do not stop the pipeline.
		res.Warnings = append(res.Warnings, sr.Errors...)
	} else if len(missing) > 0 {
		// Skipping is a warning even under strict validation; the health
		// step grades the incomplete schema and carries the failure.
		res.Warnings = append(res.Warnings,
			SchemaDisabledError(len(missing)).Error())
	}
	res.StepsCompleted = append(res.StepsCompleted,
		lifecycle.StepSchemaCreation)

	// MIGRATION_EXECUTION applies the index set. Index failures never
	// stop startup; queries still work without them.
	if ini.policy.AutoCreateSchema {
		ir := ini.ensurer.EnsureIndexes(ctx)
		res.Warnings = append(res.Warnings, ir.Warnings...)
		res.Warnings = append(res.Warnings, ir.Errors...)
	}
	res.StepsCompleted = append(res.StepsCompleted,
		lifecycle.StepMigrationExecution)

	// DATA_SEEDING.
	switch {
	case opts.SkipSeeding:
		res.Warnings = append(res.Warnings, "seeding skipped on request")
	case !ini.policy.AutoSeedData:
		res.Warnings = append(res.Warnings,
			"seeding is disabled in this environment")
	default:
		seedRes := ini.seeder.Seed(ctx)
		res.Warnings = append(res.Warnings, seedRes.Warnings...)
		if !seedRes.Success {
			err := SeedingError(seedRes.Errors)
			if ini.policy.StrictValidation {
				res.Errors = append(res.Errors, err.Error())
			} else {
				res.Warnings = append(res.Warnings, err.Error())
			}
		}
	}
	res.StepsCompleted = append(res.StepsCompleted,
		lifecycle.StepDataSeeding)

	ini.validate(ctx, res)
	ini.cleanup(ctx, res)
	return res
}

// validate runs the health check battery and folds the grade into the
// result. Unhealthy is fatal only under strict validation.
func (ini *initializer) validate(
	ctx context.Context, res *lifecycle.Result,
) {
	hr := ini.health.Check(ctx)
	switch hr.Status {
	case lifecycle.Unhealthy:
		err := ValidationError(hr.Issues)
		if ini.policy.StrictValidation {
			res.Errors = append(res.Errors, err.Error())
		} else {
			res.Warnings = append(res.Warnings, err.Error())
		}
	case lifecycle.Warning:
		res.Warnings = append(res.Warnings, hr.Issues...)
	}
	res.StepsCompleted = append(res.StepsCompleted,
		lifecycle.StepHealthValidation)
}

// cleanup is best-effort housekeeping; it never produces errors.
func (ini *initializer) cleanup(
	ctx context.Context, res *lifecycle.Result,
) {
	if ini.operator.Dialect() == config.SQLite {
		if err := ini.operator.Exec(ctx, "PRAGMA optimize"); err != nil {
			slog.Debug("optimize pragma failed", "error", err)
		}
	}

	stats := ini.operator.Stats()
	slog.Info("connection pool",
		"max", stats.MaxConns,
		"open", stats.OpenConns,
		"idle", stats.IdleConns,
		"in_use", stats.InUseConns)

	res.StepsCompleted = append(res.StepsCompleted, lifecycle.StepCleanup)
}

// Status reports the database state without mutating anything.
func (ini *initializer) Status(ctx context.Context) *lifecycle.Status {
	res := &lifecycle.Status{}

	missing := ini.ensurer.MissingTables(ctx)
	res.MissingTables = missing
	res.SchemaExists = len(missing) == 0
	res.MigrationsCurrent = res.SchemaExists && ini.indexesCurrent(ctx)
	res.SeedingComplete = res.SchemaExists && ini.seedingComplete(ctx)

	ini.mu.Lock()
	if ini.last != nil {
		res.LastInitialization = ini.last.Timestamp
	}
	ini.mu.Unlock()

	return res
}

func (ini *initializer) indexesCurrent(ctx context.Context) bool {
	for _, spec := range schema.Catalog() {
		if len(spec.Indexes) == 0 {
			continue
		}
		info, err := ini.ensurer.TableInfo(ctx, spec.Name)
		if err != nil {
			return false
		}
		have := make(map[string]bool, len(info.Indexes))
		for _, name := range info.Indexes {
			have[name] = true
		}
		for _, idx := range spec.Indexes {
			if !have[idx.Name] {
				return false
			}
		}
	}
	return true
}

func (ini *initializer) seedingComplete(ctx context.Context) bool {
	queries := []string{
		"SELECT count(*) FROM tenants WHERE is_system = TRUE",
		"SELECT count(*) FROM users WHERE is_admin = TRUE",
	}
	for _, q := range queries {
		n, err := ini.operator.QueryInt(ctx, q)
		if err != nil || n == 0 {
			return false
		}
	}
	return true
}

// Repair maps health issues to idempotent fixes. Without --auto-fix (or
// with --dry-run) it only reports what it would do; issues with no
// automatic fix always land in ManualSteps.
func (ini *initializer) Repair(
	ctx context.Context, opts lifecycle.RepairOptions,
) *lifecycle.RepairResult {
	res := &lifecycle.RepairResult{}
	defer func() { res.Success = len(res.Errors) == 0 }()

	hr := ini.health.Check(ctx)
	if hr.Status == lifecycle.Healthy {
		slog.Info("database is healthy, nothing to repair")
		return res
	}

	var missingTables, missingIndexes, missingSeeds bool
	for _, issue := range hr.Issues {
		switch {
		case strings.Contains(issue, "not reachable"):
			res.Errors = append(res.Errors,
				"database is not reachable, nothing can be repaired")
			return res
		case strings.Contains(issue, "missing column"):
			res.ManualSteps = append(res.ManualSteps,
				issue+": recreate the table or restore from a backup")
		case strings.Contains(issue, "is missing on table"):
			missingIndexes = true
		case strings.HasPrefix(issue, "table ") &&
			strings.Contains(issue, "missing"):
			missingTables = true
		case strings.Contains(issue, "tenant is missing"),
			strings.Contains(issue, "roles are missing"),
			strings.Contains(issue, "account is missing"):
			missingSeeds = true
		case strings.Contains(issue, "orphaned"):
			res.ManualSteps = append(res.ManualSteps,
				issue+": clean up the orphaned rows manually")
		case strings.Contains(issue, "unexpected table"):
			res.ManualSteps = append(res.ManualSteps,
				issue+": drop it manually if it is a leftover")
		}
	}

	apply := opts.AutoFix && !opts.DryRun
	plan := func(action string, run func() []string) {
		if !apply {
			res.ManualSteps = append(res.ManualSteps,
				"run with --auto-fix to "+action)
			return
		}
		if errs := run(); len(errs) > 0 {
			res.Errors = append(res.Errors, errs...)
			return
		}
		slog.Info("repair applied", "action", action)
		res.RepairsPerformed = append(res.RepairsPerformed, action)
	}

	if missingTables {
		plan("create missing tables", func() []string {
			return ini.ensurer.EnsureTables(ctx).Errors
		})
	}
	if missingTables || missingIndexes {
		plan("recreate missing indexes", func() []string {
			return ini.ensurer.EnsureIndexes(ctx).Errors
		})
	}
	// Repair is an explicit operator action, so seeding here is allowed
	// even where startup policy disables it.
	if missingSeeds || missingTables {
		plan("seed the baseline records", func() []string {
			return ini.seeder.Seed(ctx).Errors
		})
	}

	return res
}

// Reset drops all tables and re-initializes. With keepData the drop is
// skipped and initialization is forced over the existing data.
func (ini *initializer) Reset(ctx context.Context, keepData bool) error {
	if ini.policy.Environment == environment.Production {
		return ResetInProductionError()
	}

	if !keepData {
		slog.Warn("dropping all tables",
			"database", string(ini.operator.Dialect()))
		if err := ini.operator.DropAllTables(ctx); err != nil {
			return err
		}
	}

	res := ini.Initialize(ctx, lifecycle.InitOptions{Force: true})
	if !res.Success {
		return ValidationError(res.Errors)
	}
	return nil
}
