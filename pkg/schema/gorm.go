package schema

// TableName methods pin the GORM table names of the seeded models to the
// catalog names, so the seeder and the DDL catalog can never drift apart.
// Only the models touched by seeding need them; the rest of the catalog is
// written through raw DDL.

func (Tenant) TableName() string   { return "tenants" }
func (User) TableName() string     { return "users" }
func (Role) TableName() string     { return "roles" }
func (UserRole) TableName() string { return "user_roles" }
