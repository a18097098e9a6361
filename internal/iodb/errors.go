package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/pilipandr770/sekretar-sub004/pkg/errcode"
)

func ConnectionError(target string, err error) error {
	msg := "Cannot connect to database <em>%s</em>"
	vars := []any{target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s: %w",
			fn, target, err),
	}
}

func NotConnectedError() error {
	msg := "Not connected to database"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: not connected to database", fn),
	}
}

func PingError(err error) error {
	msg := "Database did not respond to ping"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBPingError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: ping failed: %w", fn, err),
	}
}

func QueryError(sql string, err error) error {
	msg := "Database query failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: query %q failed: %w", fn, sql, err),
	}
}

func IntrospectionError(what string, err error) error {
	msg := "Cannot inspect database catalog for <em>%s</em>"
	vars := []any{what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBIntrospectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot introspect %s: %w",
			fn, what, err),
	}
}

func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot drop table %s: %w",
			fn, table, err),
	}
}

func ORMError(err error) error {
	msg := "Cannot attach ORM to database connection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBORMError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot attach ORM: %w", fn, err),
	}
}
