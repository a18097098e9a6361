// Package environment classifies the running environment and derives the
// provisioning policy from it. The package is pure: no I/O, no global state,
// and DerivePolicy is a table lookup so the same input always yields the
// same policy.
package environment

import (
	"strings"
)

// Environment is the classified runtime environment.
type Environment int

const (
	Development Environment = iota
	Testing
	Production
)

// String returns the canonical lower-case name of the environment.
func (e Environment) String() string {
	switch e {
	case Testing:
		return "testing"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// Policy describes how the initializer behaves in a given environment.
//
// The source system used a single abort_on_failure flag both for stopping
// process startup and for flagging degraded mode after later health checks.
// These are distinct decisions, so they are distinct fields here:
// AbortOnBootstrapFailure stops startup, DegradeOnHealthFailure only marks
// the process degraded when an ongoing health check fails.
type Policy struct {
	// Environment is the classified environment the policy was derived from.
	Environment Environment

	// AutoCreateSchema allows the initializer to create missing tables.
	// Never true in production: schema changes there are deliberate
	// deploy actions, not startup side effects.
	AutoCreateSchema bool

	// AutoSeedData allows baseline records to be inserted on startup.
	AutoSeedData bool

	// AbortOnBootstrapFailure stops process startup when initialization
	// fails. Testing aborts fast to surface bugs; development keeps going
	// in degraded mode to unblock iteration.
	AbortOnBootstrapFailure bool

	// DegradeOnHealthFailure marks the process degraded when a health
	// check fails after bootstrap. Ongoing failures never abort.
	DegradeOnHealthFailure bool

	// StrictValidation escalates otherwise-recoverable warnings
	// (seeding failures, unhealthy checks) into fatal errors.
	StrictValidation bool
}

// policyTable is the single source of truth for environment policies.
var policyTable = map[Environment]Policy{
	Development: {
		Environment:             Development,
		AutoCreateSchema:        true,
		AutoSeedData:            true,
		AbortOnBootstrapFailure: false,
		DegradeOnHealthFailure:  true,
		StrictValidation:        false,
	},
	Testing: {
		Environment:             Testing,
		AutoCreateSchema:        true,
		AutoSeedData:            true,
		AbortOnBootstrapFailure: true,
		DegradeOnHealthFailure:  true,
		StrictValidation:        true,
	},
	Production: {
		Environment:             Production,
		AutoCreateSchema:        false,
		AutoSeedData:            false,
		AbortOnBootstrapFailure: true,
		DegradeOnHealthFailure:  true,
		StrictValidation:        true,
	},
}

// Classify maps a raw environment name and a testing flag to an
// Environment. The testing flag takes precedence over the name, so test
// runners always get testing policy even with ENVIRONMENT=development set.
// Unknown names classify as development.
func Classify(name string, testingFlag bool) Environment {
	if testingFlag {
		return Testing
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "production", "prod":
		return Production
	case "testing", "test":
		return Testing
	default:
		return Development
	}
}

// DerivePolicy returns the policy for an environment. Pure lookup.
func DerivePolicy(env Environment) Policy {
	res, ok := policyTable[env]
	if !ok {
		res = policyTable[Development]
	}
	return res
}

// ApplyAbortOverride overrides AbortOnBootstrapFailure when the optional
// override variable is set. A nil pointer keeps the table value.
func (p Policy) ApplyAbortOverride(b *bool) Policy {
	if b != nil {
		p.AbortOnBootstrapFailure = *b
	}
	return p
}
