package environment_test

import (
	"testing"

	"github.com/pilipandr770/sekretar-sub004/pkg/environment"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		msg     string
		name    string
		testing bool
		want    environment.Environment
	}{
		{"production", "production", false, environment.Production},
		{"prod alias", "prod", false, environment.Production},
		{"testing", "testing", false, environment.Testing},
		{"test alias", "test", false, environment.Testing},
		{"development", "development", false, environment.Development},
		{"unknown defaults to development", "staging", false, environment.Development},
		{"empty defaults to development", "", false, environment.Development},
		{"whitespace and case", "  PRODUCTION ", false, environment.Production},
		{"testing flag wins over production", "production", true, environment.Testing},
		{"testing flag wins over development", "development", true, environment.Testing},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, environment.Classify(tt.name, tt.testing))
		})
	}
}

func TestDerivePolicy(t *testing.T) {
	tests := []struct {
		env    environment.Environment
		create bool
		seed   bool
		abort  bool
		strict bool
	}{
		{environment.Development, true, true, false, false},
		{environment.Testing, true, true, true, true},
		{environment.Production, false, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.env.String(), func(t *testing.T) {
			p := environment.DerivePolicy(tt.env)
			assert.Equal(t, tt.env, p.Environment)
			assert.Equal(t, tt.create, p.AutoCreateSchema)
			assert.Equal(t, tt.seed, p.AutoSeedData)
			assert.Equal(t, tt.abort, p.AbortOnBootstrapFailure)
			assert.Equal(t, tt.strict, p.StrictValidation)
			// ongoing health failures only degrade, never abort
			assert.True(t, p.DegradeOnHealthFailure)
		})
	}
}

// DerivePolicy is a pure lookup: repeated calls never vary.
func TestDerivePolicyDeterminism(t *testing.T) {
	for _, env := range []environment.Environment{
		environment.Development, environment.Testing, environment.Production,
	} {
		first := environment.DerivePolicy(env)
		for range 10 {
			assert.Equal(t, first, environment.DerivePolicy(env))
		}
	}
}

func TestApplyAbortOverride(t *testing.T) {
	p := environment.DerivePolicy(environment.Development)
	assert.False(t, p.AbortOnBootstrapFailure)

	p2 := p.ApplyAbortOverride(nil)
	assert.False(t, p2.AbortOnBootstrapFailure)

	yes := true
	p3 := p.ApplyAbortOverride(&yes)
	assert.True(t, p3.AbortOnBootstrapFailure)

	no := false
	prod := environment.DerivePolicy(environment.Production)
	p4 := prod.ApplyAbortOverride(&no)
	assert.False(t, p4.AbortOnBootstrapFailure)
	// the rest of the policy is untouched
	assert.True(t, p4.StrictValidation)
}
