package schema

import (
	"fmt"
	"sync"

	"github.com/pilipandr770/sekretar-sub004/pkg/config"
)

// TableSpec describes one required table: its name, the per-dialect
// CREATE statement, and the indexes that must exist with it.
// The catalog of TableSpecs is compiled-in configuration and is never
// mutated at runtime.
type TableSpec struct {
	Name    string
	DDL     map[config.Dialect]string
	Indexes []IndexSpec
}

// IndexSpec is one required index. The SQL is identical on both dialects:
// CREATE INDEX IF NOT EXISTS is supported by PostgreSQL and SQLite alike.
type IndexSpec struct {
	Name string
	SQL  string
}

// catalogEntry pairs a model with its table name and required indexes.
// Order matters: root tables (tenants, users, roles) come before tables
// that reference them, so a single forward pass satisfies foreign keys.
type catalogEntry struct {
	name    string
	model   interface{}
	indexes []string
}

var catalogEntries = []catalogEntry{
	{"tenants", Tenant{}, []string{"idx_tenants_slug ON tenants(slug)"}},
	{"users", User{}, []string{
		"idx_users_tenant ON users(tenant_id)",
		"idx_users_email ON users(email)",
	}},
	{"roles", Role{}, []string{"idx_roles_tenant ON roles(tenant_id)"}},
	{"user_roles", UserRole{}, []string{
		"idx_user_roles_user ON user_roles(user_id)",
		"idx_user_roles_role ON user_roles(role_id)",
	}},
	{"tenant_settings", TenantSetting{}, []string{
		`idx_tenant_settings_key ON tenant_settings(tenant_id, "key")`,
	}},
	{"audit_logs", AuditLog{}, []string{
		"idx_audit_logs_tenant ON audit_logs(tenant_id)",
		"idx_audit_logs_created ON audit_logs(created_at)",
	}},
	{"channels", Channel{}, []string{"idx_channels_tenant ON channels(tenant_id)"}},
	{"threads", Thread{}, []string{
		"idx_threads_tenant ON threads(tenant_id)",
		"idx_threads_channel ON threads(channel_id)",
	}},
	{"inbox_messages", InboxMessage{}, []string{
		"idx_inbox_messages_thread ON inbox_messages(thread_id)",
		"idx_inbox_messages_tenant ON inbox_messages(tenant_id)",
	}},
	{"message_attachments", MessageAttachment{}, []string{
		"idx_message_attachments_msg ON message_attachments(message_id)",
	}},
	{"contacts", Contact{}, []string{
		"idx_contacts_tenant ON contacts(tenant_id)",
		"idx_contacts_email ON contacts(email)",
	}},
	{"companies", Company{}, []string{"idx_companies_tenant ON companies(tenant_id)"}},
	{"pipelines", Pipeline{}, []string{"idx_pipelines_tenant ON pipelines(tenant_id)"}},
	{"stages", Stage{}, []string{"idx_stages_pipeline ON stages(pipeline_id)"}},
	{"leads", Lead{}, []string{
		"idx_leads_tenant ON leads(tenant_id)",
		"idx_leads_stage ON leads(stage_id)",
		"idx_leads_contact ON leads(contact_id)",
	}},
	{"tasks", Task{}, []string{
		"idx_tasks_tenant ON tasks(tenant_id)",
		"idx_tasks_lead ON tasks(lead_id)",
	}},
	{"notes", Note{}, []string{"idx_notes_lead ON notes(lead_id)"}},
	{"knowledge_sources", KnowledgeSource{}, []string{
		"idx_knowledge_sources_tenant ON knowledge_sources(tenant_id)",
	}},
	{"knowledge_documents", KnowledgeDocument{}, []string{
		"idx_knowledge_documents_source ON knowledge_documents(source_id)",
	}},
	{"knowledge_chunks", KnowledgeChunk{}, []string{
		"idx_knowledge_chunks_document ON knowledge_chunks(document_id)",
	}},
	{"knowledge_embeddings", KnowledgeEmbedding{}, []string{
		"idx_knowledge_embeddings_chunk ON knowledge_embeddings(chunk_id)",
	}},
	{"calendar_accounts", CalendarAccount{}, []string{
		"idx_calendar_accounts_tenant ON calendar_accounts(tenant_id)",
	}},
	{"calendar_events", CalendarEvent{}, []string{
		"idx_calendar_events_account ON calendar_events(account_id)",
		"idx_calendar_events_starts ON calendar_events(starts_at)",
	}},
	{"plans", Plan{}, nil},
	{"subscriptions", Subscription{}, []string{
		"idx_subscriptions_tenant ON subscriptions(tenant_id)",
	}},
	{"invoices", Invoice{}, []string{
		"idx_invoices_tenant ON invoices(tenant_id)",
	}},
	{"usage_events", UsageEvent{}, []string{
		"idx_usage_events_tenant ON usage_events(tenant_id)",
		"idx_usage_events_created ON usage_events(created_at)",
	}},
	{"entitlements", Entitlement{}, []string{
		"idx_entitlements_tenant ON entitlements(tenant_id)",
	}},
	{"counterparties", Counterparty{}, []string{
		"idx_counterparties_tenant ON counterparties(tenant_id)",
	}},
	{"counterparty_checks", CounterpartyCheck{}, []string{
		"idx_counterparty_checks_cp ON counterparty_checks(counterparty_id)",
	}},
	{"counterparty_snapshots", CounterpartySnapshot{}, []string{
		"idx_counterparty_snapshots_cp ON counterparty_snapshots(counterparty_id)",
	}},
	{"counterparty_diffs", CounterpartyDiff{}, []string{
		"idx_counterparty_diffs_cp ON counterparty_diffs(counterparty_id)",
	}},
	{"notifications", Notification{}, []string{
		"idx_notifications_tenant ON notifications(tenant_id)",
		"idx_notifications_user ON notifications(user_id)",
	}},
	{"api_keys", APIKey{}, []string{"idx_api_keys_tenant ON api_keys(tenant_id)"}},
	{"webhook_endpoints", WebhookEndpoint{}, []string{
		"idx_webhook_endpoints_tenant ON webhook_endpoints(tenant_id)",
	}},
	{"webhook_deliveries", WebhookDelivery{}, []string{
		"idx_webhook_deliveries_ep ON webhook_deliveries(endpoint_id)",
	}},
	{"dead_letters", DeadLetter{}, nil},
}

var (
	catalogOnce sync.Once
	catalog     []TableSpec
)

// Catalog returns the full ordered list of required tables. The result is
// built once and shared; callers must not modify it.
func Catalog() []TableSpec {
	catalogOnce.Do(func() {
		catalog = make([]TableSpec, 0, len(catalogEntries))
		for _, e := range catalogEntries {
			spec := TableSpec{
				Name: e.name,
				DDL: map[config.Dialect]string{
					config.PostgreSQL: generateDDL(e.model, e.name, config.PostgreSQL),
					config.SQLite:     generateDDL(e.model, e.name, config.SQLite),
				},
			}
			for _, idx := range e.indexes {
				spec.Indexes = append(spec.Indexes, IndexSpec{
					Name: idx[:indexNameLen(idx)],
					SQL:  fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s;", idx),
				})
			}
			catalog = append(catalog, spec)
		}
	})
	return catalog
}

// TableNames returns the names of all required tables in catalog order.
func TableNames() []string {
	specs := Catalog()
	res := make([]string, len(specs))
	for i, s := range specs {
		res[i] = s.Name
	}
	return res
}

// Lookup returns the spec for a table name, or nil if the table is not
// part of the required catalog.
func Lookup(name string) *TableSpec {
	specs := Catalog()
	for i := range specs {
		if specs[i].Name == name {
			return &specs[i]
		}
	}
	return nil
}

// Columns returns the declared column names for a required table.
func Columns(name string) []string {
	for _, e := range catalogEntries {
		if e.name == name {
			return columnNames(e.model)
		}
	}
	return nil
}

func indexNameLen(idx string) int {
	for i := 0; i < len(idx); i++ {
		if idx[i] == ' ' {
			return i
		}
	}
	return len(idx)
}
