package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
)

// sqliteTypeMap rewrites PostgreSQL column types into their SQLite
// equivalents. Replacements are applied longest-first so BIGSERIAL does
// not partially match before SERIAL.
var sqliteTypeMap = []struct {
	pg     string
	sqlite string
}{
	{"BIGSERIAL PRIMARY KEY", "INTEGER PRIMARY KEY AUTOINCREMENT"},
	{"SERIAL PRIMARY KEY", "INTEGER PRIMARY KEY AUTOINCREMENT"},
	{"DOUBLE PRECISION", "REAL"},
	{"TIMESTAMPTZ", "TIMESTAMP"},
	{"JSONB", "TEXT"},
	{"BYTEA", "BLOB"},
	{"now()", "CURRENT_TIMESTAMP"},
}

// generateDDL creates a CREATE TABLE IF NOT EXISTS statement from struct
// tags. The ddl tags are authored in PostgreSQL syntax; the SQLite
// variant is derived by type translation so both dialects always carry
// the same logical column set.
func generateDDL(
	model interface{},
	tableName string,
	dialect config.Dialect,
) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag == "" || ddlTag == "" {
			continue
		}
		if dialect == config.SQLite {
			ddlTag = translateToSQLite(ddlTag)
		}
		columns = append(columns,
			fmt.Sprintf("    %s %s", quoteIdent(dbTag, dialect), ddlTag))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))
}

// translateToSQLite rewrites a PostgreSQL column definition for SQLite.
func translateToSQLite(ddl string) string {
	for _, m := range sqliteTypeMap {
		ddl = strings.ReplaceAll(ddl, m.pg, m.sqlite)
	}
	return ddl
}

// quoteIdent quotes column names that collide with SQL keywords
// ("key", "limit_value" is safe, "key" is not on PostgreSQL).
func quoteIdent(name string, dialect config.Dialect) string {
	switch name {
	case "key", "value", "action", "position":
		return `"` + name + `"`
	}
	_ = dialect
	return name
}

// columnNames returns the declared column set of a model, used by
// schema-integrity validation and the dialect-parity tests.
func columnNames(model interface{}) []string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var res []string
	for i := 0; i < t.NumField(); i++ {
		dbTag := t.Field(i).Tag.Get("db")
		if dbTag != "" {
			res = append(res, dbTag)
		}
	}
	return res
}
