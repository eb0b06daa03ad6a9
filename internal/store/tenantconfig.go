package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/okabe-h/gridstore/internal/domain/tenant"
	"github.com/okabe-h/gridstore/internal/grid"
	"github.com/okabe-h/gridstore/internal/repository"
)

// ConfigTable is the shared table holding one configuration row per tenant.
const ConfigTable = "config"

const (
	colTenantID   = "tenant_id"
	colCredential = "credential"
	colLastActive = "last_active_project"
	colConfigTime = "updated_at"
)

var configColumns = []string{colTenantID, colCredential, colLastActive, colConfigTime}

// TenantConfigs implements repository.TenantConfigStore over the grid
// backend, one row per tenant in a single shared table.
type TenantConfigs struct {
	client grid.Client
	schema *Schema
	logger *slog.Logger
}

// NewTenantConfigs creates a tenant configuration store.
func NewTenantConfigs(client grid.Client, logger *slog.Logger) *TenantConfigs {
	if logger == nil {
		logger = slog.Default()
	}
	return &TenantConfigs{client: client, schema: NewSchema(client), logger: logger}
}

// Get loads a tenant's configuration record.
func (t *TenantConfigs) Get(ctx context.Context, tenantID string) (*tenant.Config, error) {
	header, err := t.client.HeaderRow(ctx, ConfigTable)
	if err != nil {
		if errors.Is(err, grid.ErrNoSuchTable) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("reading config header: %w", err)
	}

	keyCol := columnIndex(header, colTenantID)
	if keyCol < 0 {
		return nil, repository.ErrNotFound
	}

	row, err := t.client.FindRowByKey(ctx, ConfigTable, keyCol, tenantID)
	if err != nil {
		if errors.Is(err, grid.ErrRowNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("locating config of %q: %w", tenantID, err)
	}

	values, err := t.client.ReadRow(ctx, ConfigTable, row)
	if err != nil {
		return nil, fmt.Errorf("reading config row of %q: %w", tenantID, err)
	}

	cfg := &tenant.Config{}
	for i, col := range header {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		switch col {
		case colTenantID:
			cfg.TenantID = value
		case colCredential:
			cfg.Credential = value
		case colLastActive:
			cfg.LastActiveProject = value
		case colConfigTime:
			if value != "" {
				if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
					cfg.UpdatedAt = ts
				}
			}
		}
	}
	return cfg, nil
}

// Put writes a tenant's configuration record, full-row.
func (t *TenantConfigs) Put(ctx context.Context, cfg *tenant.Config) error {
	header, err := t.schema.Ensure(ctx, ConfigTable, configColumns)
	if err != nil {
		return err
	}

	updatedAt := ""
	if !cfg.UpdatedAt.IsZero() {
		updatedAt = cfg.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}

	values := make([]string, len(header))
	for i, col := range header {
		switch col {
		case colTenantID:
			values[i] = cfg.TenantID
		case colCredential:
			values[i] = cfg.Credential
		case colLastActive:
			values[i] = cfg.LastActiveProject
		case colConfigTime:
			values[i] = updatedAt
		}
	}

	limit := t.client.CellLimit()
	for i, v := range values {
		if size := len([]rune(v)); size > limit {
			return &PayloadTooLargeError{Column: header[i], Size: size, Limit: limit}
		}
	}

	keyCol := columnIndex(header, colTenantID)
	row, err := t.client.FindRowByKey(ctx, ConfigTable, keyCol, cfg.TenantID)
	switch {
	case errors.Is(err, grid.ErrRowNotFound):
		if _, err := t.client.AppendRow(ctx, ConfigTable, values); err != nil {
			return fmt.Errorf("appending config of %q: %w", cfg.TenantID, err)
		}
	case err != nil:
		return fmt.Errorf("locating config of %q: %w", cfg.TenantID, err)
	default:
		if err := t.client.OverwriteRow(ctx, ConfigTable, row, values); err != nil {
			return fmt.Errorf("overwriting config of %q: %w", cfg.TenantID, err)
		}
	}
	return nil
}
