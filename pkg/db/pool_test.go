package db_test

import (
	"testing"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"github.com/pilipandr770/sekretar-sub004/pkg/environment"
	"github.com/stretchr/testify/assert"
)

func TestSettingsFor(t *testing.T) {
	t.Run("sqlite always single writer", func(t *testing.T) {
		for _, env := range []environment.Environment{
			environment.Development,
			environment.Testing,
			environment.Production,
		} {
			s := db.SettingsFor(env, config.SQLite)
			assert.Equal(t, int32(1), s.MaxConns, env.String())
		}
	})

	t.Run("production is sized for load", func(t *testing.T) {
		s := db.SettingsFor(environment.Production, config.PostgreSQL)
		assert.Equal(t, int32(20), s.MaxConns)
		assert.Equal(t, int32(4), s.MinConns)
		assert.NotZero(t, s.MaxConnLifetime)
	})

	t.Run("testing is minimal and short-lived", func(t *testing.T) {
		s := db.SettingsFor(environment.Testing, config.PostgreSQL)
		assert.Equal(t, int32(2), s.MaxConns)
		assert.Equal(t, int32(0), s.MinConns)
		assert.NotZero(t, s.MaxConnIdleTime)
	})

	t.Run("development sits in between", func(t *testing.T) {
		s := db.SettingsFor(environment.Development, config.PostgreSQL)
		assert.Equal(t, int32(10), s.MaxConns)
	})
}
