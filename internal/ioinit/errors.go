package ioinit

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/pilipandr770/sekretar-sub004/pkg/errcode"
)

func ConnectivityError(err error) error {
	msg := "Database connection test failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InitConnectivityError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: connection test failed: %w",
			fn, err),
	}
}

func SchemaStepError(failed []string) error {
	msg := "Cannot create any of the required tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InitSchemaError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: schema creation failed for: %s",
			fn, strings.Join(failed, ", ")),
	}
}

func SchemaDisabledError(missing int) error {
	msg := "Schema is incomplete and automatic creation is disabled " +
		"in this environment"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InitSchemaError,
		Msg:  msg,
		Err: fmt.Errorf(
			"from %s: %d tables missing with schema creation disabled",
			fn, missing),
	}
}

func SeedingError(errs []string) error {
	msg := "Data seeding failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InitSeedingError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: seeding failed: %s",
			fn, strings.Join(errs, "; ")),
	}
}

func ValidationError(issues []string) error {
	msg := "Database failed health validation"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InitValidationError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: health validation failed: %s",
			fn, strings.Join(issues, "; ")),
	}
}

func PanicError(v any) error {
	msg := "Initialization stopped because of an internal error"
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InitPanicError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: panic during initialization: %v", fn, v),
	}
}

func ResetInProductionError() error {
	msg := "Reset is disabled in production. " +
		"Change the environment explicitly if you really mean it"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ResetInProductionError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: reset refused in production", fn),
	}
}
