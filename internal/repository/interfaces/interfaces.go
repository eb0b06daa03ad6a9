package interfaces

import (
	"context"

	"github.com/okabe-h/gridstore/internal/domain/project"
	"github.com/okabe-h/gridstore/internal/domain/tenant"
)

// DocumentStore manages project document persistence. Upsert is a full-row
// overwrite keyed by (tenant, projectID); the row index backing a key is
// stable across its lifetime.
type DocumentStore interface {
	Get(ctx context.Context, tenantID, projectID string) (*project.Document, error)
	Upsert(ctx context.Context, tenantID, projectID string, doc *project.Document) error
	ListKeys(ctx context.Context, tenantID string) ([]string, error)
}

// TenantConfigStore manages the per-tenant configuration record.
type TenantConfigStore interface {
	Get(ctx context.Context, tenantID string) (*tenant.Config, error)
	Put(ctx context.Context, cfg *tenant.Config) error
}
