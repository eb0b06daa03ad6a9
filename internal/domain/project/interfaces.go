package project

import "context"

// Store provides persistence for project documents. Every upsert is a
// full-row overwrite: fields absent from the document are lost unless the
// caller merged them in first.
type Store interface {
	Get(ctx context.Context, tenantID, projectID string) (*Document, error)
	Upsert(ctx context.Context, tenantID, projectID string, doc *Document) error
	ListKeys(ctx context.Context, tenantID string) ([]string, error)
}
