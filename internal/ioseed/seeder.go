// Package ioseed implements the lifecycle.Seeder contract. It creates
// the baseline records a fresh installation needs: the system tenant,
// the role catalog and the administrative account. Every insert is
// preceded by an existence check, so re-running is always safe.
package ioseed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"github.com/pilipandr770/sekretar-sub004/pkg/lifecycle"
	"github.com/pilipandr770/sekretar-sub004/pkg/schema"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed roles.yaml
var rolesYAML []byte

// roleCatalog is the parsed shape of roles.yaml.
type roleCatalog struct {
	Roles []roleEntry `yaml:"roles"`
}

type roleEntry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	System      bool     `yaml:"system"`
	Permissions []string `yaml:"permissions"`
}

type seeder struct {
	operator db.Operator
	cfg      *config.Config
}

// NewSeeder creates a Seeder over a connected operator.
func NewSeeder(op db.Operator, cfg *config.Config) lifecycle.Seeder {
	return &seeder{operator: op, cfg: cfg}
}

// Seed creates the system tenant, the baseline roles and the admin
// account, in that order. Existing records are counted as skips.
// Role failures do not stop the admin account from being attempted.
func (s *seeder) Seed(ctx context.Context) *lifecycle.SeedResult {
	start := time.Now()
	res := &lifecycle.SeedResult{
		RecordsCreated: make(map[string]int),
		RecordsSkipped: make(map[string]int),
	}
	defer func() {
		res.Duration = time.Since(start)
		res.Success = len(res.Errors) == 0
	}()

	orm := s.operator.ORM()
	if orm == nil {
		res.Errors = append(res.Errors, "database is not connected")
		return res
	}
	orm = orm.WithContext(ctx)

	tenant, err := s.ensureSystemTenant(orm, res)
	if err != nil {
		// Everything else hangs off the system tenant.
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	s.ensureRoles(orm, tenant, res)
	s.ensureAdmin(orm, tenant, res)

	return res
}

func (s *seeder) ensureSystemTenant(
	orm *gorm.DB, res *lifecycle.SeedResult,
) (*schema.Tenant, error) {
	var tenant schema.Tenant
	err := orm.Where("is_system = ?", true).First(&tenant).Error
	if err == nil {
		res.RecordsSkipped["tenants"]++
		return &tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, TenantError(err)
	}

	tenant = schema.Tenant{
		ID:       uuid.NewString(),
		Name:     s.cfg.Seed.TenantName,
		Slug:     "system",
		IsSystem: true,
		IsActive: true,
	}
	if err := orm.Create(&tenant).Error; err != nil {
		return nil, TenantError(err)
	}

	slog.Info("created system tenant", "name", tenant.Name)
	res.RecordsCreated["tenants"]++
	return &tenant, nil
}

func (s *seeder) ensureRoles(
	orm *gorm.DB, tenant *schema.Tenant, res *lifecycle.SeedResult,
) {
	var catalog roleCatalog
	if err := yaml.Unmarshal(rolesYAML, &catalog); err != nil {
		res.Errors = append(res.Errors, RoleCatalogError(err).Error())
		return
	}

	for _, entry := range catalog.Roles {
		var role schema.Role
		err := orm.
			Where("tenant_id = ? AND name = ?", tenant.ID, entry.Name).
			First(&role).Error
		if err == nil {
			res.RecordsSkipped["roles"]++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			res.Errors = append(res.Errors,
				RoleError(entry.Name, err).Error())
			continue
		}

		perms, err := json.Marshal(entry.Permissions)
		if err != nil {
			res.Errors = append(res.Errors,
				RoleError(entry.Name, err).Error())
			continue
		}

		role = schema.Role{
			ID:           uuid.NewString(),
			TenantID:     tenant.ID,
			Name:         entry.Name,
			Description:  entry.Description,
			Permissions:  string(perms),
			IsSystemRole: entry.System,
		}
		if err := orm.Create(&role).Error; err != nil {
			res.Errors = append(res.Errors,
				RoleError(entry.Name, err).Error())
			continue
		}

		slog.Info("created role", "role", entry.Name)
		res.RecordsCreated["roles"]++
	}
}

func (s *seeder) ensureAdmin(
	orm *gorm.DB, tenant *schema.Tenant, res *lifecycle.SeedResult,
) {
	email := s.cfg.Seed.AdminEmail

	var user schema.User
	err := orm.Where("email = ?", email).First(&user).Error
	if err == nil {
		res.RecordsSkipped["users"]++
		s.ensureAdminRole(orm, tenant, &user, res)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		res.Errors = append(res.Errors, AdminError(email, err).Error())
		return
	}

	// The clear-text password exists only on this stack frame; it is
	// never logged and never copied into the result.
	hash, err := bcrypt.GenerateFromPassword(
		[]byte(s.cfg.Seed.AdminPassword), bcrypt.DefaultCost,
	)
	if err != nil {
		res.Errors = append(res.Errors, PasswordError(err).Error())
		return
	}

	user = schema.User{
		ID:           uuid.NewString(),
		TenantID:     tenant.ID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "System",
		LastName:     "Administrator",
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := orm.Create(&user).Error; err != nil {
		res.Errors = append(res.Errors, AdminError(email, err).Error())
		return
	}

	slog.Info("created admin account", "email", email)
	res.RecordsCreated["users"]++
	if s.cfg.Seed.AdminPassword == config.New().Seed.AdminPassword {
		res.Warnings = append(res.Warnings,
			"admin account uses the default password, change it after first login")
	}

	s.ensureAdminRole(orm, tenant, &user, res)
}

// ensureAdminRole attaches the admin role to the administrative account.
func (s *seeder) ensureAdminRole(
	orm *gorm.DB,
	tenant *schema.Tenant,
	user *schema.User,
	res *lifecycle.SeedResult,
) {
	var role schema.Role
	err := orm.
		Where("tenant_id = ? AND name = ?", tenant.ID, "admin").
		First(&role).Error
	if err != nil {
		res.Errors = append(res.Errors, RoleError("admin", err).Error())
		return
	}

	var assignment schema.UserRole
	err = orm.
		Where("user_id = ? AND role_id = ?", user.ID, role.ID).
		First(&assignment).Error
	if err == nil {
		res.RecordsSkipped["user_roles"]++
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		res.Errors = append(res.Errors,
			AdminError(user.Email, err).Error())
		return
	}

	assignment = schema.UserRole{
		ID:     uuid.NewString(),
		UserID: user.ID,
		RoleID: role.ID,
	}
	if err := orm.Create(&assignment).Error; err != nil {
		res.Errors = append(res.Errors,
			AdminError(user.Email, err).Error())
		return
	}

	res.RecordsCreated["user_roles"]++
}
