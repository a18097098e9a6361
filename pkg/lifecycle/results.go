package lifecycle

import (
	"time"
)

// Result is the single channel through which the outcome of one
// Initialize call reaches the caller. It is produced exactly once per
// call and never mutated afterwards.
type Result struct {
	Success        bool
	DatabaseType   string
	StepsCompleted []Step
	Errors         []string
	Warnings       []string
	Duration       time.Duration
	Timestamp      time.Time
}

// SchemaResult reports one ensure-tables (or ensure-indexes) run.
// Failures are collected per table, never short-circuited: a single
// malformed statement degrades one feature area instead of blocking
// the whole application from starting.
type SchemaResult struct {
	TablesChecked int
	TablesCreated []string
	TablesFailed  []string
	Errors        []string
	Warnings      []string
}

// SeedResult reports one seeding run. Existing records are not errors;
// they increment RecordsSkipped.
type SeedResult struct {
	Success        bool
	RecordsCreated map[string]int
	RecordsSkipped map[string]int
	Errors         []string
	Warnings       []string
	Duration       time.Duration
}

// HealthStatus grades a comprehensive health check.
type HealthStatus int

const (
	Healthy HealthStatus = iota
	Warning
	Unhealthy
)

func (s HealthStatus) String() string {
	switch s {
	case Warning:
		return "warning"
	case Unhealthy:
		return "unhealthy"
	default:
		return "healthy"
	}
}

// HealthResult aggregates all health checks of one run.
type HealthResult struct {
	Status       HealthStatus
	ChecksPassed int
	ChecksFailed int
	Issues       []string
	Suggestions  []string
	Duration     time.Duration
}

// RepairResult reports what repair_if_needed fixed and what it could
// not. Issues without an automatic fix surface in ManualSteps instead of
// being silently ignored.
type RepairResult struct {
	Success          bool
	RepairsPerformed []string
	Errors           []string
	ManualSteps      []string
}

// Status is a read-only snapshot for CLI and health-endpoint use.
// It never triggers initialization.
type Status struct {
	SchemaExists       bool
	MigrationsCurrent  bool
	SeedingComplete    bool
	MissingTables      []string
	LastInitialization time.Time
}
