package tenant

import "context"

// ConfigStore provides persistence for tenant configuration records.
type ConfigStore interface {
	Get(ctx context.Context, tenantID string) (*Config, error)
	Put(ctx context.Context, cfg *Config) error
}
