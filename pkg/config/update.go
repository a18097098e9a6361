package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string

	s = c.Database.URL
	if s != "" {
		res = append(res, OptDatabaseURL(s))
	}
	if c.Database.ConnectTimeout > 0 {
		res = append(res, OptDatabaseConnectTimeout(c.Database.ConnectTimeout))
	}

	s = c.Environment
	if s != "" {
		res = append(res, OptEnvironment(s))
	}
	if c.Testing {
		res = append(res, OptTesting(true))
	}
	if c.AbortOnDBFailure != nil {
		res = append(res, OptAbortOnDBFailure(c.AbortOnDBFailure))
	}

	s = c.Seed.TenantName
	if s != "" {
		res = append(res, OptSeedTenantName(s))
	}
	s = c.Seed.AdminEmail
	if s != "" {
		res = append(res, OptSeedAdminEmail(s))
	}
	s = c.Seed.AdminPassword
	if s != "" {
		res = append(res, OptSeedAdminPassword(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Environment": {"development": s, "testing": s, "production": s},
		"Log.Level":   {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":  {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s,
			"stderr": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
