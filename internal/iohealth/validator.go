// Package iohealth implements the lifecycle.HealthValidator contract.
// It grades database health from connectivity, schema and data checks
// and pairs every detected issue with a deterministic suggestion.
package iohealth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"github.com/pilipandr770/sekretar-sub004/pkg/lifecycle"
	"github.com/pilipandr770/sekretar-sub004/pkg/schema"
	"golang.org/x/sync/errgroup"
)

type validator struct {
	operator db.Operator
	cfg      *config.Config
}

// NewValidator creates a HealthValidator over a connected operator.
func NewValidator(op db.Operator, cfg *config.Config) lifecycle.HealthValidator {
	return &validator{operator: op, cfg: cfg}
}

// CheckConnectivity issues a bounded ping. The timeout comes from the
// configuration so a hung server cannot stall startup.
func (v *validator) CheckConnectivity(ctx context.Context) bool {
	timeout := time.Duration(v.cfg.Database.ConnectTimeout) * time.Second
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return v.operator.Ping(pingCtx) == nil
}

// CheckSchema reports missing required tables and columns.
// Missing indexes and unknown extra tables are tolerated here; they
// surface as warnings in Check.
func (v *validator) CheckSchema(ctx context.Context) (bool, []string) {
	report := v.schemaReport(ctx)
	return len(report.issues) == 0, report.issues
}

// CheckData runs referential smoke checks on the seeded baseline.
func (v *validator) CheckData(ctx context.Context) (bool, []string) {
	report := v.dataReport(ctx)
	return len(report.issues) == 0, report.issues
}

// Check runs all checks and grades the result. Connectivity failure
// short-circuits to Unhealthy. Schema issues grade Unhealthy; data
// issues and schema warnings grade Warning.
func (v *validator) Check(ctx context.Context) *lifecycle.HealthResult {
	start := time.Now()
	res := &lifecycle.HealthResult{}
	defer func() { res.Duration = time.Since(start) }()

	if !v.CheckConnectivity(ctx) {
		res.Status = lifecycle.Unhealthy
		res.ChecksFailed = 1
		res.Issues = append(res.Issues, "database is not reachable")
		res.Suggestions = suggestions(res.Issues)
		return res
	}
	res.ChecksPassed = 1

	var schemaRep, dataRep report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		schemaRep = v.schemaReport(gctx)
		return nil
	})
	g.Go(func() error {
		dataRep = v.dataReport(gctx)
		return nil
	})
	// The goroutines never return errors; issues land in the reports.
	_ = g.Wait()

	for _, rep := range []report{schemaRep, dataRep} {
		if len(rep.issues) == 0 {
			res.ChecksPassed++
		} else {
			res.ChecksFailed++
		}
		res.Issues = append(res.Issues, rep.issues...)
	}

	warnings := append(schemaRep.warnings, dataRep.warnings...)

	switch {
	case len(schemaRep.issues) > 0:
		res.Status = lifecycle.Unhealthy
	case len(dataRep.issues) > 0 || len(warnings) > 0:
		res.Status = lifecycle.Warning
	default:
		res.Status = lifecycle.Healthy
	}

	res.Issues = append(res.Issues, warnings...)
	res.Suggestions = suggestions(res.Issues)
	return res
}

// CheckPerformance measures round-trip latencies in milliseconds.
// Failed probes are omitted rather than reported as zero.
func (v *validator) CheckPerformance(ctx context.Context) map[string]float64 {
	res := make(map[string]float64)

	probes := []struct {
		name string
		run  func() error
	}{
		{"ping", func() error {
			return v.operator.Ping(ctx)
		}},
		{"table_list", func() error {
			_, err := v.operator.ListTables(ctx)
			return err
		}},
		{"simple_count", func() error {
			_, err := v.operator.QueryInt(ctx,
				"SELECT count(*) FROM tenants")
			return err
		}},
	}

	for _, probe := range probes {
		start := time.Now()
		if err := probe.run(); err != nil {
			continue
		}
		res[probe.name] = float64(time.Since(start).Microseconds()) / 1000
	}

	return res
}

type report struct {
	issues   []string
	warnings []string
}

func (v *validator) schemaReport(ctx context.Context) report {
	var rep report

	existing, err := v.operator.ListTables(ctx)
	if err != nil {
		rep.issues = append(rep.issues,
			"cannot inspect the database schema")
		return rep
	}

	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	required := make(map[string]bool)
	for _, name := range schema.TableNames() {
		required[name] = true
		if !have[name] {
			rep.issues = append(rep.issues,
				fmt.Sprintf("table %s is missing", name))
		}
	}

	// Extra tables are tolerated; the schema is additive.
	for _, name := range existing {
		if !required[name] {
			rep.warnings = append(rep.warnings,
				fmt.Sprintf("unexpected table %s is present", name))
		}
	}

	for _, spec := range schema.Catalog() {
		if !have[spec.Name] {
			continue
		}
		info, err := v.operator.TableInfo(ctx, spec.Name)
		if err != nil {
			rep.issues = append(rep.issues, fmt.Sprintf(
				"cannot inspect table %s", spec.Name))
			continue
		}

		cols := make(map[string]bool, len(info.Columns))
		for _, col := range info.Columns {
			cols[strings.ToLower(col.Name)] = true
		}
		for _, want := range schema.Columns(spec.Name) {
			if !cols[strings.ToLower(want)] {
				rep.issues = append(rep.issues, fmt.Sprintf(
					"table %s is missing column %s", spec.Name, want))
			}
		}

		idx := make(map[string]bool, len(info.Indexes))
		for _, name := range info.Indexes {
			idx[name] = true
		}
		for _, want := range spec.Indexes {
			if !idx[want.Name] {
				rep.warnings = append(rep.warnings, fmt.Sprintf(
					"index %s is missing on table %s",
					want.Name, spec.Name))
			}
		}
	}

	return rep
}

// dataReport verifies the seeded baseline and referential integrity.
// All queries are argument-free so they run unchanged on both dialects.
func (v *validator) dataReport(ctx context.Context) report {
	var rep report

	checks := []struct {
		sql     string
		wantMin int64
		issue   string
	}{
		{
			sql:     "SELECT count(*) FROM tenants WHERE is_system = TRUE",
			wantMin: 1,
			issue:   "system tenant is missing",
		},
		{
			sql:     "SELECT count(*) FROM roles",
			wantMin: 1,
			issue:   "baseline roles are missing",
		},
		{
			sql:     "SELECT count(*) FROM users WHERE is_admin = TRUE",
			wantMin: 1,
			issue:   "admin account is missing",
		},
	}

	for _, check := range checks {
		count, err := v.operator.QueryInt(ctx, check.sql)
		if err != nil {
			rep.issues = append(rep.issues, check.issue)
			continue
		}
		if count < check.wantMin {
			rep.issues = append(rep.issues, check.issue)
		}
	}

	orphanChecks := []struct {
		sql     string
		warning string
	}{
		{
			sql: `SELECT count(*) FROM users u
				LEFT JOIN tenants t ON u.tenant_id = t.id
				WHERE t.id IS NULL`,
			warning: "orphaned users reference a missing tenant",
		},
		{
			sql: `SELECT count(*) FROM user_roles ur
				LEFT JOIN users u ON ur.user_id = u.id
				WHERE u.id IS NULL`,
			warning: "orphaned role assignments reference a missing user",
		},
		{
			sql: `SELECT count(*) FROM leads l
				LEFT JOIN tenants t ON l.tenant_id = t.id
				WHERE t.id IS NULL`,
			warning: "orphaned leads reference a missing tenant",
		},
		{
			sql: `SELECT count(*) FROM inbox_messages m
				LEFT JOIN threads th ON m.thread_id = th.id
				WHERE m.thread_id IS NOT NULL AND th.id IS NULL`,
			warning: "orphaned messages reference a missing thread",
		},
	}

	for _, check := range orphanChecks {
		count, err := v.operator.QueryInt(ctx, check.sql)
		if err != nil {
			continue
		}
		if count > 0 {
			rep.warnings = append(rep.warnings, check.warning)
		}
	}

	return rep
}

// suggestions maps issues to remedies. The mapping is deterministic:
// the same issues always produce the same suggestions in the same order.
func suggestions(issues []string) []string {
	var res []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			res = append(res, s)
		}
	}

	for _, issue := range issues {
		switch {
		case strings.Contains(issue, "not reachable"):
			add("check that the database server is running and the " +
				"connection URL is correct")
		case strings.Contains(issue, "table") &&
			strings.Contains(issue, "missing column"):
			add("the schema is outdated, recreate the affected tables " +
				"or restore from a backup")
		case strings.Contains(issue, "is missing on table"):
			add("run 'sekretardb repair --auto-fix' to recreate missing " +
				"indexes")
		case strings.HasPrefix(issue, "table") &&
			strings.Contains(issue, "missing"):
			add("run 'sekretardb init' to create missing tables")
		case strings.Contains(issue, "cannot inspect"):
			add("check database permissions for the configured user")
		case strings.Contains(issue, "tenant is missing"),
			strings.Contains(issue, "roles are missing"),
			strings.Contains(issue, "account is missing"):
			add("run 'sekretardb init' to seed the baseline records")
		case strings.Contains(issue, "orphaned"):
			add("inspect and clean up orphaned rows manually")
		case strings.Contains(issue, "unexpected table"):
			add("unexpected tables are ignored, remove them if they are " +
				"leftovers")
		}
	}

	return res
}
