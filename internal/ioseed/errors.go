package ioseed

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/pilipandr770/sekretar-sub004/pkg/errcode"
)

func RoleCatalogError(err error) error {
	msg := "Cannot parse the embedded role catalog"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeedRoleCatalogError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot parse role catalog: %w",
			fn, err),
	}
}

func TenantError(err error) error {
	msg := "Cannot create the system tenant"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeedTenantError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot seed system tenant: %w",
			fn, err),
	}
}

func RoleError(role string, err error) error {
	msg := "Cannot create role <em>%s</em>"
	vars := []any{role}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeedRoleError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot seed role %s: %w",
			fn, role, err),
	}
}

func AdminError(email string, err error) error {
	msg := "Cannot create admin account <em>%s</em>"
	vars := []any{email}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeedAdminError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot seed admin %s: %w",
			fn, email, err),
	}
}

func PasswordError(err error) error {
	msg := "Cannot hash the admin password"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeedPasswordError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot hash admin password: %w",
			fn, err),
	}
}
