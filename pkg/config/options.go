package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseURL sets the database connection URL.
// The postgres:// scheme is normalized to postgresql://.
func OptDatabaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database URL", s) {
			c.Database.URL = normalizeURL(s)
		}
	}
}

// OptDatabaseConnectTimeout sets the connection timeout in seconds.
func OptDatabaseConnectTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Connect Timeout", i) {
			c.Database.ConnectTimeout = i
		}
	}
}

// OptEnvironment sets the raw environment name.
// Valid values: "development", "testing", "production".
func OptEnvironment(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Environment", s) {
			c.Environment = s
		}
	}
}

// OptTesting marks the process as a test run. Takes precedence over
// OptEnvironment during classification.
func OptTesting(b bool) Option {
	return func(c *Config) {
		c.Testing = b
	}
}

// OptAbortOnDBFailure overrides the policy's abort-on-bootstrap-failure
// behavior. Uses a pointer to distinguish between unset (nil) and false.
func OptAbortOnDBFailure(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.AbortOnDBFailure = b
		}
	}
}

// OptSeedTenantName sets the display name of the root system tenant.
func OptSeedTenantName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Seed Tenant Name", s) {
			c.Seed.TenantName = s
		}
	}
}

// OptSeedAdminEmail sets the identifying email of the admin account.
func OptSeedAdminEmail(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Seed Admin Email", s) {
			c.Seed.AdminEmail = s
		}
	}
}

// OptSeedAdminPassword sets the initial admin password.
// Write-only: the value is bcrypt-hashed before storage and never logged.
func OptSeedAdminPassword(s string) Option {
	return func(c *Config) {
		if isValidString("Seed Admin Password", strings.TrimSpace(s)) {
			c.Seed.AdminPassword = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
