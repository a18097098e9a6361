package db

import (
	"time"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/environment"
)

// PoolSettings sizes the connection pool. The values are read-only
// configuration derived from environment and dialect; nothing adjusts
// them at runtime.
type PoolSettings struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// SettingsFor derives pool settings from environment and dialect.
//
// Production pools are sized for concurrent request load. Testing pools
// are minimal and short-lived so connections never leak across tests.
// SQLite always gets a single writer connection: the engine serializes
// writers anyway and WAL readers do not need a pool.
func SettingsFor(
	env environment.Environment,
	dialect config.Dialect,
) PoolSettings {
	if dialect == config.SQLite {
		return PoolSettings{
			MaxConns:        1,
			MinConns:        1,
			MaxConnLifetime: 0,
			MaxConnIdleTime: 0,
			ConnectTimeout:  10 * time.Second,
		}
	}

	switch env {
	case environment.Production:
		return PoolSettings{
			MaxConns:        20,
			MinConns:        4,
			MaxConnLifetime: 30 * time.Minute,
			MaxConnIdleTime: 5 * time.Minute,
			ConnectTimeout:  10 * time.Second,
		}
	case environment.Testing:
		return PoolSettings{
			MaxConns:        2,
			MinConns:        0,
			MaxConnLifetime: time.Minute,
			MaxConnIdleTime: 10 * time.Second,
			ConnectTimeout:  5 * time.Second,
		}
	default:
		return PoolSettings{
			MaxConns:        10,
			MinConns:        2,
			MaxConnLifetime: 0,
			MaxConnIdleTime: 0,
			ConnectTimeout:  10 * time.Second,
		}
	}
}
