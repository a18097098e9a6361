package ioschema

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/pilipandr770/sekretar-sub004/pkg/errcode"
)

func CreateTableError(table string, err error) error {
	msg := "Cannot create table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCreateTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create table %s: %w",
			fn, table, err),
	}
}

func CreateIndexError(index, table string, err error) error {
	msg := "Cannot create index <em>%s</em> on table <em>%s</em>"
	vars := []any{index, table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCreateIndexError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create index %s on %s: %w",
			fn, index, table, err),
	}
}

func TableInfoError(table string, err error) error {
	msg := "Cannot read structure of table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaTableInfoError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read table info for %s: %w",
			fn, table, err),
	}
}
