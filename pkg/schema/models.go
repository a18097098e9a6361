// Package schema provides the compiled-in catalog of required tables for
// the sekretar database. The catalog is the single source of truth for
// "what must exist": every table the backend touches is declared here as a
// Go struct whose db/ddl tags generate the per-dialect CREATE statements.
//
// DDL tags are written in PostgreSQL syntax; the SQLite variant is derived
// by type translation in ddl.go so both dialects always share one logical
// column set.
package schema

import (
	"time"
)

// Tenant is the root entity of the multi-tenant model. Every other
// tenant-scoped row references a tenant. Exactly one tenant is marked as
// the system tenant by the seeder.
type Tenant struct {
	// ID is a UUID assigned at creation.
	ID string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`

	// Name is the display name of the tenant.
	Name string `db:"name" ddl:"VARCHAR(255) NOT NULL"`

	// Slug is a unique URL-safe identifier.
	Slug string `db:"slug" ddl:"VARCHAR(80) NOT NULL UNIQUE"`

	// IsSystem marks the root tenant created by seeding.
	IsSystem bool `db:"is_system" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	// IsActive allows suspending a tenant without deleting data.
	IsActive bool `db:"is_active" ddl:"BOOLEAN NOT NULL DEFAULT TRUE"`

	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// User is an account scoped to a tenant. The administrative account
// created by seeding is identified by its email.
type User struct {
	ID       string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`

	// Email identifies the account; unique across the installation.
	Email string `db:"email" ddl:"VARCHAR(255) NOT NULL UNIQUE"`

	// PasswordHash is a bcrypt hash. The clear-text password is write-only
	// and never stored or logged.
	PasswordHash string `db:"password_hash" ddl:"VARCHAR(255) NOT NULL"`

	FirstName string `db:"first_name" ddl:"VARCHAR(100)"`
	LastName  string `db:"last_name" ddl:"VARCHAR(100)"`

	IsActive bool `db:"is_active" ddl:"BOOLEAN NOT NULL DEFAULT TRUE"`
	IsAdmin  bool `db:"is_admin" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Role is a named permission set scoped to a tenant. The baseline set is
// created by seeding from the embedded role catalog.
type Role struct {
	ID       string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`

	Name        string `db:"name" ddl:"VARCHAR(80) NOT NULL"`
	Description string `db:"description" ddl:"TEXT"`

	// Permissions is a JSON-encoded list of permission strings.
	Permissions string `db:"permissions" ddl:"JSONB NOT NULL DEFAULT '[]'"`

	// IsSystemRole marks roles that cannot be deleted by tenants.
	IsSystemRole bool `db:"is_system_role" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// UserRole assigns a role to a user.
type UserRole struct {
	ID        string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	UserID    string `db:"user_id" ddl:"VARCHAR(36) NOT NULL REFERENCES users(id)"`
	RoleID    string `db:"role_id" ddl:"VARCHAR(36) NOT NULL REFERENCES roles(id)"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// TenantSetting is a per-tenant key/value setting.
type TenantSetting struct {
	ID       string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	Key      string `db:"key" ddl:"VARCHAR(120) NOT NULL"`
	Value    string `db:"value" ddl:"JSONB"`
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// AuditLog is an append-only record of privileged actions.
type AuditLog struct {
	ID       int64  `db:"id" ddl:"BIGSERIAL PRIMARY KEY"`
	TenantID string `db:"tenant_id" ddl:"VARCHAR(36) REFERENCES tenants(id)"`
	UserID   string `db:"user_id" ddl:"VARCHAR(36)"`
	Action   string `db:"action" ddl:"VARCHAR(120) NOT NULL"`
	Resource string `db:"resource" ddl:"VARCHAR(120)"`
	Details  string `db:"details" ddl:"JSONB"`
	IP       string `db:"ip" ddl:"VARCHAR(45)"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Channel is an inbound communication channel (telegram, signal, widget).
type Channel struct {
	ID       string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	Kind     string `db:"kind" ddl:"VARCHAR(40) NOT NULL"`
	Name     string `db:"name" ddl:"VARCHAR(255) NOT NULL"`
	Config   string `db:"config" ddl:"JSONB NOT NULL DEFAULT '{}'"`
	IsActive bool   `db:"is_active" ddl:"BOOLEAN NOT NULL DEFAULT TRUE"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Thread groups inbox messages of one conversation.
type Thread struct {
	ID         string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID   string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	ChannelID  string `db:"channel_id" ddl:"VARCHAR(36) REFERENCES channels(id)"`
	ContactID  string `db:"contact_id" ddl:"VARCHAR(36)"`
	Subject    string `db:"subject" ddl:"VARCHAR(255)"`
	Status     string `db:"status" ddl:"VARCHAR(40) NOT NULL DEFAULT 'open'"`
	LastSeenAt time.Time `db:"last_seen_at" ddl:"TIMESTAMPTZ"`
	CreatedAt  time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// InboxMessage is a single inbound or outbound message.
type InboxMessage struct {
	ID        string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID  string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	ThreadID  string `db:"thread_id" ddl:"VARCHAR(36) REFERENCES threads(id)"`
	Direction string `db:"direction" ddl:"VARCHAR(10) NOT NULL"`
	Body      string `db:"body" ddl:"TEXT"`
	Metadata  string `db:"metadata" ddl:"JSONB"`
	SentAt    time.Time `db:"sent_at" ddl:"TIMESTAMPTZ"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// MessageAttachment stores file metadata attached to a message.
type MessageAttachment struct {
	ID        string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	MessageID string `db:"message_id" ddl:"VARCHAR(36) NOT NULL REFERENCES inbox_messages(id)"`
	FileName  string `db:"file_name" ddl:"VARCHAR(255) NOT NULL"`
	MimeType  string `db:"mime_type" ddl:"VARCHAR(120)"`
	SizeBytes int64  `db:"size_bytes" ddl:"BIGINT"`
	StorageKey string `db:"storage_key" ddl:"VARCHAR(512)"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Contact is a CRM person record.
type Contact struct {
	ID        string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID  string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	CompanyID string `db:"company_id" ddl:"VARCHAR(36)"`
	FirstName string `db:"first_name" ddl:"VARCHAR(100)"`
	LastName  string `db:"last_name" ddl:"VARCHAR(100)"`
	Email     string `db:"email" ddl:"VARCHAR(255)"`
	Phone     string `db:"phone" ddl:"VARCHAR(50)"`
	Language  string `db:"language" ddl:"VARCHAR(10)"`
	Tags      string `db:"tags" ddl:"JSONB NOT NULL DEFAULT '[]'"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Company is a CRM organization record.
type Company struct {
	ID       string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	Name     string `db:"name" ddl:"VARCHAR(255) NOT NULL"`
	VatID    string `db:"vat_id" ddl:"VARCHAR(40)"`
	Country  string `db:"country" ddl:"VARCHAR(2)"`
	Website  string `db:"website" ddl:"VARCHAR(255)"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Pipeline is an ordered sales process owned by a tenant.
type Pipeline struct {
	ID        string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID  string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	Name      string `db:"name" ddl:"VARCHAR(255) NOT NULL"`
	IsDefault bool   `db:"is_default" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Stage is one step in a pipeline.
type Stage struct {
	ID         string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	PipelineID string `db:"pipeline_id" ddl:"VARCHAR(36) NOT NULL REFERENCES pipelines(id)"`
	Name       string `db:"name" ddl:"VARCHAR(120) NOT NULL"`
	Position   int    `db:"position" ddl:"INT NOT NULL DEFAULT 0"`
	IsWon      bool   `db:"is_won" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`
	IsLost     bool   `db:"is_lost" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`
}

// Lead is a deal moving through a pipeline.
type Lead struct {
	ID         string    `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID   string    `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	ContactID  string    `db:"contact_id" ddl:"VARCHAR(36) REFERENCES contacts(id)"`
	PipelineID string    `db:"pipeline_id" ddl:"VARCHAR(36) REFERENCES pipelines(id)"`
	StageID    string    `db:"stage_id" ddl:"VARCHAR(36) REFERENCES stages(id)"`
	Title      string    `db:"title" ddl:"VARCHAR(255) NOT NULL"`
	Value      float64   `db:"value" ddl:"DOUBLE PRECISION"`
	Currency   string    `db:"currency" ddl:"VARCHAR(3)"`
	Status     string    `db:"status" ddl:"VARCHAR(40) NOT NULL DEFAULT 'open'"`
	CreatedAt  time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
	UpdatedAt  time.Time `db:"updated_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Task is a to-do attached to a lead or contact.
type Task struct {
	ID         string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID   string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	LeadID     string `db:"lead_id" ddl:"VARCHAR(36) REFERENCES leads(id)"`
	AssigneeID string `db:"assignee_id" ddl:"VARCHAR(36)"`
	Title      string `db:"title" ddl:"VARCHAR(255) NOT NULL"`
	DueAt      time.Time `db:"due_at" ddl:"TIMESTAMPTZ"`
	Status     string `db:"status" ddl:"VARCHAR(40) NOT NULL DEFAULT 'open'"`
	CreatedAt  time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Note is free-form text attached to a CRM record.
type Note struct {
	ID        string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID  string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	LeadID    string `db:"lead_id" ddl:"VARCHAR(36) REFERENCES leads(id)"`
	AuthorID  string `db:"author_id" ddl:"VARCHAR(36)"`
	Body      string `db:"body" ddl:"TEXT NOT NULL"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// KnowledgeSource is a document source for the answer engine.
type KnowledgeSource struct {
	ID        string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID  string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	Kind      string `db:"kind" ddl:"VARCHAR(40) NOT NULL"`
	Name      string `db:"name" ddl:"VARCHAR(255) NOT NULL"`
	SourceURL string `db:"source_url" ddl:"VARCHAR(512)"`
	Status    string `db:"status" ddl:"VARCHAR(40) NOT NULL DEFAULT 'pending'"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// KnowledgeDocument is one ingested document.
type KnowledgeDocument struct {
	ID        string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	SourceID  string `db:"source_id" ddl:"VARCHAR(36) NOT NULL REFERENCES knowledge_sources(id)"`
	Title     string `db:"title" ddl:"VARCHAR(255)"`
	Content   string `db:"content" ddl:"TEXT"`
	TokenCount int   `db:"token_count" ddl:"INT"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// KnowledgeChunk is a retrieval-sized fragment of a document.
type KnowledgeChunk struct {
	ID         string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	DocumentID string `db:"document_id" ddl:"VARCHAR(36) NOT NULL REFERENCES knowledge_documents(id)"`
	Position   int    `db:"position" ddl:"INT NOT NULL DEFAULT 0"`
	Content    string `db:"content" ddl:"TEXT NOT NULL"`
}

// KnowledgeEmbedding stores the vector for one chunk.
type KnowledgeEmbedding struct {
	ID      string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	ChunkID string `db:"chunk_id" ddl:"VARCHAR(36) NOT NULL REFERENCES knowledge_chunks(id)"`
	Model   string `db:"model" ddl:"VARCHAR(120) NOT NULL"`
	Vector  string `db:"vector" ddl:"JSONB NOT NULL"`
}

// CalendarAccount holds an OAuth-linked calendar connection.
type CalendarAccount struct {
	ID           string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID     string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	UserID       string `db:"user_id" ddl:"VARCHAR(36) REFERENCES users(id)"`
	Provider     string `db:"provider" ddl:"VARCHAR(40) NOT NULL"`
	AccountEmail string `db:"account_email" ddl:"VARCHAR(255)"`
	// Tokens are stored encrypted by the application layer.
	Credentials string `db:"credentials" ddl:"JSONB"`
	ExpiresAt   time.Time `db:"expires_at" ddl:"TIMESTAMPTZ"`
	CreatedAt   time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// CalendarEvent mirrors an external calendar event.
type CalendarEvent struct {
	ID         string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	AccountID  string `db:"account_id" ddl:"VARCHAR(36) NOT NULL REFERENCES calendar_accounts(id)"`
	ExternalID string `db:"external_id" ddl:"VARCHAR(255)"`
	Title      string `db:"title" ddl:"VARCHAR(255)"`
	StartsAt   time.Time `db:"starts_at" ddl:"TIMESTAMPTZ"`
	EndsAt     time.Time `db:"ends_at" ddl:"TIMESTAMPTZ"`
	Payload    string `db:"payload" ddl:"JSONB"`
}

// Plan is a billing plan.
type Plan struct {
	ID           string  `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	Code         string  `db:"code" ddl:"VARCHAR(80) NOT NULL UNIQUE"`
	Name         string  `db:"name" ddl:"VARCHAR(255) NOT NULL"`
	PriceMonthly float64 `db:"price_monthly" ddl:"DOUBLE PRECISION"`
	Currency     string  `db:"currency" ddl:"VARCHAR(3)"`
	Features     string  `db:"features" ddl:"JSONB NOT NULL DEFAULT '{}'"`
	IsActive     bool    `db:"is_active" ddl:"BOOLEAN NOT NULL DEFAULT TRUE"`
}

// Subscription links a tenant to a plan.
type Subscription struct {
	ID               string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID         string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	PlanID           string `db:"plan_id" ddl:"VARCHAR(36) REFERENCES plans(id)"`
	Status           string `db:"status" ddl:"VARCHAR(40) NOT NULL DEFAULT 'trialing'"`
	ExternalRef      string `db:"external_ref" ddl:"VARCHAR(255)"`
	CurrentPeriodEnd time.Time `db:"current_period_end" ddl:"TIMESTAMPTZ"`
	CreatedAt        time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Invoice is a billing document issued to a tenant.
type Invoice struct {
	ID             string    `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID       string    `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	SubscriptionID string    `db:"subscription_id" ddl:"VARCHAR(36) REFERENCES subscriptions(id)"`
	Number         string    `db:"number" ddl:"VARCHAR(80)"`
	Amount         float64   `db:"amount" ddl:"DOUBLE PRECISION"`
	Currency       string    `db:"currency" ddl:"VARCHAR(3)"`
	Status         string    `db:"status" ddl:"VARCHAR(40) NOT NULL DEFAULT 'draft'"`
	IssuedAt       time.Time `db:"issued_at" ddl:"TIMESTAMPTZ"`
}

// UsageEvent is an append-only metering record.
type UsageEvent struct {
	ID        int64  `db:"id" ddl:"BIGSERIAL PRIMARY KEY"`
	TenantID  string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	Kind      string `db:"kind" ddl:"VARCHAR(80) NOT NULL"`
	Quantity  int64  `db:"quantity" ddl:"BIGINT NOT NULL DEFAULT 1"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Entitlement caches what a tenant's plan allows.
type Entitlement struct {
	ID       string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	Feature  string `db:"feature" ddl:"VARCHAR(120) NOT NULL"`
	Limit    int64  `db:"limit_value" ddl:"BIGINT"`
	Used     int64  `db:"used_value" ddl:"BIGINT NOT NULL DEFAULT 0"`
}

// Counterparty is a company monitored by the KYB module.
type Counterparty struct {
	ID       string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	Name     string `db:"name" ddl:"VARCHAR(255) NOT NULL"`
	VatID    string `db:"vat_id" ddl:"VARCHAR(40)"`
	Country  string `db:"country" ddl:"VARCHAR(2)"`
	Status   string `db:"status" ddl:"VARCHAR(40) NOT NULL DEFAULT 'active'"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// CounterpartyCheck is one verification run against a registry.
type CounterpartyCheck struct {
	ID             string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	CounterpartyID string `db:"counterparty_id" ddl:"VARCHAR(36) NOT NULL REFERENCES counterparties(id)"`
	Registry       string `db:"registry" ddl:"VARCHAR(80) NOT NULL"`
	Result         string `db:"result" ddl:"VARCHAR(40)"`
	CheckedAt      time.Time `db:"checked_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// CounterpartySnapshot stores raw registry data for diffing.
type CounterpartySnapshot struct {
	ID             string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	CounterpartyID string `db:"counterparty_id" ddl:"VARCHAR(36) NOT NULL REFERENCES counterparties(id)"`
	Data           string `db:"data" ddl:"JSONB NOT NULL"`
	TakenAt        time.Time `db:"taken_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// CounterpartyDiff records a detected change between snapshots.
type CounterpartyDiff struct {
	ID             string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	CounterpartyID string `db:"counterparty_id" ddl:"VARCHAR(36) NOT NULL REFERENCES counterparties(id)"`
	Field          string `db:"field" ddl:"VARCHAR(120) NOT NULL"`
	OldValue       string `db:"old_value" ddl:"TEXT"`
	NewValue       string `db:"new_value" ddl:"TEXT"`
	DetectedAt     time.Time `db:"detected_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// Notification is an in-app or email notification queued for delivery.
type Notification struct {
	ID        string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID  string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	UserID    string `db:"user_id" ddl:"VARCHAR(36)"`
	Kind      string `db:"kind" ddl:"VARCHAR(80) NOT NULL"`
	Payload   string `db:"payload" ddl:"JSONB"`
	ReadAt    time.Time `db:"read_at" ddl:"TIMESTAMPTZ"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// APIKey is a programmatic credential scoped to a tenant.
type APIKey struct {
	ID         string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID   string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	Name       string `db:"name" ddl:"VARCHAR(120) NOT NULL"`
	KeyHash    string `db:"key_hash" ddl:"VARCHAR(255) NOT NULL"`
	LastUsedAt time.Time `db:"last_used_at" ddl:"TIMESTAMPTZ"`
	RevokedAt  time.Time `db:"revoked_at" ddl:"TIMESTAMPTZ"`
	CreatedAt  time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// WebhookEndpoint is an outbound webhook target.
type WebhookEndpoint struct {
	ID       string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY"`
	TenantID string `db:"tenant_id" ddl:"VARCHAR(36) NOT NULL REFERENCES tenants(id)"`
	URL      string `db:"url" ddl:"VARCHAR(512) NOT NULL"`
	Secret   string `db:"secret" ddl:"VARCHAR(255)"`
	Events   string `db:"events" ddl:"JSONB NOT NULL DEFAULT '[]'"`
	IsActive bool   `db:"is_active" ddl:"BOOLEAN NOT NULL DEFAULT TRUE"`
}

// WebhookDelivery records one delivery attempt.
type WebhookDelivery struct {
	ID         int64  `db:"id" ddl:"BIGSERIAL PRIMARY KEY"`
	EndpointID string `db:"endpoint_id" ddl:"VARCHAR(36) NOT NULL REFERENCES webhook_endpoints(id)"`
	Event      string `db:"event" ddl:"VARCHAR(120) NOT NULL"`
	StatusCode int    `db:"status_code" ddl:"INT"`
	Attempts   int    `db:"attempts" ddl:"INT NOT NULL DEFAULT 0"`
	LastError  string `db:"last_error" ddl:"TEXT"`
	CreatedAt  time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}

// DeadLetter stores messages that exhausted their processing retries.
type DeadLetter struct {
	ID        int64  `db:"id" ddl:"BIGSERIAL PRIMARY KEY"`
	TenantID  string `db:"tenant_id" ddl:"VARCHAR(36)"`
	Source    string `db:"source" ddl:"VARCHAR(120) NOT NULL"`
	Payload   string `db:"payload" ddl:"JSONB NOT NULL"`
	Reason    string `db:"reason" ddl:"TEXT"`
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMPTZ NOT NULL DEFAULT now()"`
}
