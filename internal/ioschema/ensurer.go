// Package ioschema implements the lifecycle.SchemaEnsurer contract.
// It applies the compiled-in table catalog to a live database through
// the db.Operator, one idempotent statement at a time.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"github.com/pilipandr770/sekretar-sub004/pkg/lifecycle"
	"github.com/pilipandr770/sekretar-sub004/pkg/schema"
)

// Option configures the ensurer.
type Option func(*ensurer)

// WithProgress registers a callback invoked once per processed table.
// The CLI uses it to drive a progress bar; the orchestrator leaves it
// unset.
func WithProgress(fn func(table string)) Option {
	return func(e *ensurer) {
		e.progress = fn
	}
}

type ensurer struct {
	operator db.Operator
	progress func(table string)
}

// NewEnsurer creates a SchemaEnsurer over a connected operator.
func NewEnsurer(op db.Operator, opts ...Option) lifecycle.SchemaEnsurer {
	res := &ensurer{operator: op}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// MissingTables returns required tables absent from the database, in
// catalog order. When introspection fails the whole catalog is reported
// missing: the caller sees "nothing exists" rather than a false
// "everything is fine".
func (e *ensurer) MissingTables(ctx context.Context) []string {
	existing, err := e.operator.ListTables(ctx)
	if err != nil {
		slog.Warn("cannot list tables, assuming none exist", "error", err)
		return schema.TableNames()
	}

	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	var missing []string
	for _, name := range schema.TableNames() {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// EnsureTables creates every missing catalog table. A failing CREATE
// marks that table failed and moves on; one bad table must not block
// the rest of the schema.
func (e *ensurer) EnsureTables(ctx context.Context) *lifecycle.SchemaResult {
	res := &lifecycle.SchemaResult{}
	dialect := e.operator.Dialect()

	missing := e.MissingTables(ctx)
	need := make(map[string]bool, len(missing))
	for _, name := range missing {
		need[name] = true
	}

	for _, spec := range schema.Catalog() {
		res.TablesChecked++
		if e.progress != nil {
			e.progress(spec.Name)
		}
		if !need[spec.Name] {
			continue
		}

		if err := e.operator.Exec(ctx, spec.DDL[dialect]); err != nil {
			err = CreateTableError(spec.Name, err)
			slog.Error("cannot create table",
				"table", spec.Name, "error", err)
			res.TablesFailed = append(res.TablesFailed, spec.Name)
			res.Errors = append(res.Errors, err.Error())
			continue
		}

		slog.Info("created table", "table", spec.Name)
		res.TablesCreated = append(res.TablesCreated, spec.Name)
	}

	return res
}

// EnsureIndexes applies the required indexes of every catalog table.
// CREATE INDEX IF NOT EXISTS makes re-runs no-ops on both dialects.
func (e *ensurer) EnsureIndexes(ctx context.Context) *lifecycle.SchemaResult {
	res := &lifecycle.SchemaResult{}

	for _, spec := range schema.Catalog() {
		if len(spec.Indexes) == 0 {
			continue
		}
		res.TablesChecked++
		if e.progress != nil {
			e.progress(spec.Name)
		}

		failed := false
		for _, idx := range spec.Indexes {
			if err := e.operator.Exec(ctx, idx.SQL); err != nil {
				err = CreateIndexError(idx.Name, spec.Name, err)
				slog.Error("cannot create index",
					"index", idx.Name, "table", spec.Name, "error", err)
				res.Errors = append(res.Errors, err.Error())
				failed = true
			}
		}
		if failed {
			res.TablesFailed = append(res.TablesFailed, spec.Name)
		}
	}

	return res
}

// TableInfo exposes operator introspection for diagnostics.
func (e *ensurer) TableInfo(
	ctx context.Context, name string,
) (*db.TableInfo, error) {
	info, err := e.operator.TableInfo(ctx, name)
	if err != nil {
		return nil, TableInfoError(name, err)
	}
	return info, nil
}
