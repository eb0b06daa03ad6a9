package tenant

import "time"

// Config is a tenant's single configuration record: a reference to the
// stored credential and the project key the tenant last worked on.
type Config struct {
	TenantID          string    `json:"tenant_id"`
	Credential        string    `json:"credential"`
	LastActiveProject string    `json:"last_active_project"`
	UpdatedAt         time.Time `json:"updated_at"`
}
