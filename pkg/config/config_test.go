package config_test

import (
	"path/filepath"
	"testing"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "sekretar"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "sekretar"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "sekretar", "logs"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "sqlite://sekretar.db", cfg.Database.URL)
		assert.Equal(t, 10, cfg.Database.ConnectTimeout)

		assert.Equal(t, "System", cfg.Seed.TenantName)
		assert.Equal(t, "admin@sekretar.local", cfg.Seed.AdminEmail)
		assert.NotEmpty(t, cfg.Seed.AdminPassword)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, "development", cfg.Environment)
		assert.False(t, cfg.Testing)
		assert.Nil(t, cfg.AbortOnDBFailure)
	})
}

func TestOptionDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid url",
			input:    "postgresql://u:p@db:5432/app",
			expected: "postgresql://u:p@db:5432/app",
		},
		{
			name:     "normalizes postgres scheme",
			input:    "postgres://u:p@db:5432/app",
			expected: "postgresql://u:p@db:5432/app",
		},
		{
			name:     "trims whitespace",
			input:    "  sqlite://app.db  ",
			expected: "sqlite://app.db",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "sqlite://sekretar.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseURL(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.URL)
		})
	}
}

func TestOptionEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets production", "production", "production"},
		{"lowercases", "TESTING", "testing"},
		{"rejects unknown value", "staging", "development"},
		{"rejects empty", "", "development"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptEnvironment(tt.input)})
			assert.Equal(t, tt.expected, cfg.Environment)
		})
	}
}

func TestOptionAbortOverride(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptAbortOnDBFailure(nil)})
	assert.Nil(t, cfg.AbortOnDBFailure)

	yes := true
	cfg.Update([]config.Option{config.OptAbortOnDBFailure(&yes)})
	require.NotNil(t, cfg.AbortOnDBFailure)
	assert.True(t, *cfg.AbortOnDBFailure)
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	yes := true
	cfg.Update([]config.Option{
		config.OptDatabaseURL("postgresql://app:secret@db:6543/sekretar"),
		config.OptEnvironment("production"),
		config.OptTesting(true),
		config.OptAbortOnDBFailure(&yes),
		config.OptSeedAdminEmail("root@example.org"),
		config.OptLogLevel("debug"),
		config.OptHomeDir("/tmp/home"),
	})

	clone := config.New()
	clone.Update(cfg.ToOptions())

	assert.Equal(t, cfg.Database.URL, clone.Database.URL)
	assert.Equal(t, cfg.Environment, clone.Environment)
	assert.Equal(t, cfg.Testing, clone.Testing)
	assert.Equal(t, cfg.Seed.AdminEmail, clone.Seed.AdminEmail)
	assert.Equal(t, cfg.Log.Level, clone.Log.Level)
	require.NotNil(t, clone.AbortOnDBFailure)
	assert.True(t, *clone.AbortOnDBFailure)

	// HomeDir is runtime-only and must not round-trip
	assert.Empty(t, clone.HomeDir)
}
