package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/pilipandr770/sekretar-sub004/pkg/errcode"
)

// Dialect is the database engine variant. It determines DDL syntax and
// connection option names.
type Dialect string

const (
	SQLite     Dialect = "sqlite"
	PostgreSQL Dialect = "postgresql"
)

// ValidationResult reports configuration validity without raising errors.
type ValidationResult struct {
	Valid  bool
	Issues []string
}

// DetectDialect parses the scheme of a connection URL and returns the
// database dialect. The postgres:// scheme is normalized to postgresql://
// for driver compatibility. Unknown schemes are configuration errors.
func DetectDialect(rawURL string) (Dialect, error) {
	s := strings.TrimSpace(rawURL)
	if isMemoryURL(s) {
		return SQLite, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", urlParseError(rawURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql":
		return PostgreSQL, nil
	default:
		return "", dialectError(u.Scheme)
	}
}

// ParseDatabaseURL derives a complete DatabaseConfig from a connection URL.
// The result is derived once per process and treated as immutable.
// Unparseable URLs produce a configuration error, never a panic.
func ParseDatabaseURL(rawURL string) (DatabaseConfig, error) {
	var res DatabaseConfig

	dialect, err := DetectDialect(rawURL)
	if err != nil {
		return res, err
	}

	res.URL = normalizeURL(rawURL)
	res.Dialect = dialect
	res.ConnectTimeout = 10

	// ":memory:" is not a valid URL authority, handle it before url.Parse.
	if dialect == SQLite && isMemoryURL(strings.TrimSpace(rawURL)) {
		res.Path = ":memory:"
		return res, nil
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return res, urlParseError(rawURL, err)
	}

	if dialect == SQLite {
		res.Path = sqlitePath(u)
		return res, nil
	}

	res.Host = u.Hostname()
	if res.Host == "" {
		res.Host = "localhost"
	}
	res.Port = 5432
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return res, urlParseError(rawURL, err)
		}
		res.Port = port
	}
	if u.User != nil {
		res.User = u.User.Username()
		res.Password, _ = u.User.Password()
	}
	res.Database = strings.TrimPrefix(u.Path, "/")

	q := u.Query()
	res.SSLMode = q.Get("sslmode")
	if res.SSLMode == "" {
		res.SSLMode = "disable"
	}
	res.SchemaName = q.Get("schema")

	return res, nil
}

// Validate checks that all dialect-required fields are present.
// It never errors; problems are itemized in the result.
func (dc DatabaseConfig) Validate() ValidationResult {
	var issues []string

	switch dc.Dialect {
	case SQLite:
		if dc.Path == "" {
			issues = append(issues,
				"sqlite database needs a file path or ':memory:'")
		}
	case PostgreSQL:
		if dc.Host == "" {
			issues = append(issues, "postgresql host is not set")
		}
		if dc.Port <= 0 || dc.Port > 65535 {
			issues = append(issues,
				fmt.Sprintf("postgresql port %d is out of range", dc.Port))
		}
		if dc.User == "" {
			issues = append(issues, "postgresql user is not set")
		}
		if dc.Database == "" {
			issues = append(issues, "postgresql database name is not set")
		}
	default:
		issues = append(issues,
			fmt.Sprintf("unknown dialect %q", string(dc.Dialect)))
	}

	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}

// ConnectionParameters returns dialect-appropriate connect-arg defaults.
// Production favors SSL and keepalives, testing favors minimal overhead.
func (dc DatabaseConfig) ConnectionParameters(
	production bool,
) map[string]string {
	res := make(map[string]string)

	switch dc.Dialect {
	case SQLite:
		res["_journal_mode"] = "WAL"
		res["_busy_timeout"] = "5000"
		res["_foreign_keys"] = "on"
	case PostgreSQL:
		res["connect_timeout"] = strconv.Itoa(dc.ConnectTimeout)
		res["application_name"] = "sekretar"
		if production {
			res["sslmode"] = preferSSL(dc.SSLMode)
			res["keepalives"] = "1"
			res["keepalives_idle"] = "30"
		} else {
			res["sslmode"] = dc.SSLMode
		}
	}

	return res
}

// DSN builds the dialect-specific data source name for drivers.
func (dc DatabaseConfig) DSN() string {
	switch dc.Dialect {
	case SQLite:
		if dc.Path == ":memory:" {
			return "file::memory:?cache=shared"
		}
		return fmt.Sprintf(
			"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
			dc.Path,
		)
	case PostgreSQL:
		return fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			dc.User, dc.Password, dc.Host, dc.Port, dc.Database, dc.SSLMode,
		)
	}
	return ""
}

// normalizeURL rewrites postgres:// to postgresql://.
func normalizeURL(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if strings.HasPrefix(s, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(s, "postgres://")
	}
	return s
}

// sqlitePath extracts a file path from a sqlite URL.
// sqlite://name.db is a relative path (the name parses as a URL host),
// sqlite:///var/lib/name.db is an absolute path.
func sqlitePath(u *url.URL) string {
	if u.Host != "" {
		return u.Host + u.Path
	}
	// sqlite:///tmp/name.db parses with an empty host and the absolute
	// path in u.Path; extra leading slashes would read as a URL authority
	// in the driver DSN, so collapse them.
	if u.Path == "" {
		return ""
	}
	return "/" + strings.TrimLeft(u.Path, "/")
}

func isMemoryURL(s string) bool {
	switch s {
	case "sqlite://:memory:", "sqlite:///:memory:", "sqlite3://:memory:":
		return true
	}
	return false
}

func preferSSL(mode string) string {
	if mode == "" || mode == "disable" {
		return "require"
	}
	return mode
}

func urlParseError(rawURL string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigURLParseError,
		Msg:  "Cannot parse database URL <em>%s</em>",
		Vars: []any{redactURL(rawURL)},
		Err:  fmt.Errorf("cannot parse database url: %w", err),
	}
}

func dialectError(scheme string) error {
	return &gn.Error{
		Code: errcode.ConfigDialectError,
		Msg: "Unknown database scheme <em>%s</em>. " +
			"Supported schemes are sqlite://, postgres:// and postgresql://",
		Vars: []any{scheme},
		Err:  fmt.Errorf("unknown database scheme %q", scheme),
	}
}

// redactURL strips credentials before a URL appears in any message.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	u.User = url.User(u.User.Username())
	return u.String()
}
