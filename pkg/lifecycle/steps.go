// Package lifecycle defines the contracts and result values of the
// database initialization pipeline. Implementations live in the
// internal/io* packages; this package stays pure.
package lifecycle

// Step is one stage of the initialization pipeline. Steps are totally
// ordered; a step only runs when all prior steps succeeded or were
// explicitly skipped by policy.
type Step int

const (
	StepConnectionTest Step = iota
	StepSchemaCreation
	StepMigrationExecution
	StepDataSeeding
	StepHealthValidation
	StepCleanup
)

// String returns the canonical step name used in results and logs.
func (s Step) String() string {
	switch s {
	case StepConnectionTest:
		return "connection_test"
	case StepSchemaCreation:
		return "schema_creation"
	case StepMigrationExecution:
		return "migration_execution"
	case StepDataSeeding:
		return "data_seeding"
	case StepHealthValidation:
		return "health_validation"
	case StepCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}
