package mocks

import (
	"context"

	"github.com/okabe-h/gridstore/internal/domain/project"
	"github.com/okabe-h/gridstore/internal/domain/tenant"
	"github.com/stretchr/testify/mock"
)

// DocumentStore is a mock for repository.DocumentStore.
type DocumentStore struct {
	mock.Mock
}

func (m *DocumentStore) Get(ctx context.Context, tenantID, projectID string) (*project.Document, error) {
	args := m.Called(ctx, tenantID, projectID)
	if doc, ok := args.Get(0).(*project.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentStore) Upsert(ctx context.Context, tenantID, projectID string, doc *project.Document) error {
	args := m.Called(ctx, tenantID, projectID, doc)
	return args.Error(0)
}

func (m *DocumentStore) ListKeys(ctx context.Context, tenantID string) ([]string, error) {
	args := m.Called(ctx, tenantID)
	if keys, ok := args.Get(0).([]string); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}

// TenantConfigStore is a mock for repository.TenantConfigStore.
type TenantConfigStore struct {
	mock.Mock
}

func (m *TenantConfigStore) Get(ctx context.Context, tenantID string) (*tenant.Config, error) {
	args := m.Called(ctx, tenantID)
	if cfg, ok := args.Get(0).(*tenant.Config); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TenantConfigStore) Put(ctx context.Context, cfg *tenant.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}
