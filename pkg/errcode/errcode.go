package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigURLParseError
	ConfigDialectError
	ConfigValidationError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBPingError
	DBQueryError
	DBIntrospectionError
	DBDropTableError
	DBORMError

	// Schema errors
	SchemaCreateTableError
	SchemaCreateIndexError
	SchemaTableInfoError

	// Seeding errors
	SeedRoleCatalogError
	SeedTenantError
	SeedRoleError
	SeedAdminError
	SeedPasswordError

	// Health validation errors
	HealthCheckError

	// Initialization errors
	InitConnectivityError
	InitSchemaError
	InitSeedingError
	InitValidationError
	InitPanicError
	ResetInProductionError
)
