package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/okabe-h/gridstore/internal/repository"
)

// Service handles tenant login and configuration. A tenant is created
// implicitly on first successful login and never deleted.
type Service struct {
	allowlist *Allowlist
	configs   ConfigStore
	logger    *slog.Logger
}

// NewService creates a new tenant service.
func NewService(allowlist *Allowlist, configs ConfigStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{allowlist: allowlist, configs: configs, logger: logger}
}

// Login checks the identifier against the allow-list and returns the
// tenant's configuration, creating it on first login. A non-empty
// credential replaces the stored reference.
func (s *Service) Login(ctx context.Context, identifier, credential string) (*Config, error) {
	tenantID, err := s.allowlist.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configs.Get(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading tenant config: %w", err)
		}
		s.logger.Info("first login, creating tenant config", "tenant", tenantID)
		cfg = &Config{TenantID: tenantID}
	}

	if credential != "" {
		cfg.Credential = credential
	}
	cfg.UpdatedAt = time.Now()

	if err := s.configs.Put(ctx, cfg); err != nil {
		return nil, fmt.Errorf("saving tenant config: %w", err)
	}
	return cfg, nil
}

// SetLastActive records the project the tenant last worked on.
func (s *Service) SetLastActive(ctx context.Context, tenantID, projectID string) error {
	cfg, err := s.configs.Get(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("loading tenant config: %w", err)
		}
		cfg = &Config{TenantID: tenantID}
	}

	cfg.LastActiveProject = projectID
	cfg.UpdatedAt = time.Now()

	if err := s.configs.Put(ctx, cfg); err != nil {
		return fmt.Errorf("saving tenant config: %w", err)
	}
	return nil
}
