package tenant_test

import (
	"context"
	"testing"

	"github.com/okabe-h/gridstore/internal/domain/tenant"
	"github.com/okabe-h/gridstore/internal/repository"
	"github.com/okabe-h/gridstore/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAllowlist_Resolve(t *testing.T) {
	list := tenant.NewAllowlist([]string{"alice", " bob ", ""})

	id, err := list.Resolve("alice")
	require.NoError(t, err)
	require.Equal(t, "alice", id)

	id, err = list.Resolve("bob")
	require.NoError(t, err)
	require.Equal(t, "bob", id)

	_, err = list.Resolve("mallory")
	require.ErrorIs(t, err, tenant.ErrUnknownTenant)

	_, err = list.Resolve("")
	require.ErrorIs(t, err, tenant.ErrUnknownTenant)
}

func TestTenantService_FirstLoginCreatesConfig(t *testing.T) {
	ctx := context.Background()

	configs := &mocks.TenantConfigStore{}
	configs.On("Get", ctx, "alice").Return((*tenant.Config)(nil), repository.ErrNotFound)

	var saved *tenant.Config
	configs.On("Put", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*tenant.Config) }).
		Return(nil)

	svc := tenant.NewService(tenant.NewAllowlist([]string{"alice"}), configs, nil)
	cfg, err := svc.Login(ctx, "alice", "cred-ref-1")
	require.NoError(t, err)
	require.Equal(t, "alice", cfg.TenantID)
	require.Equal(t, "cred-ref-1", cfg.Credential)
	require.NotNil(t, saved)
	require.Equal(t, cfg, saved)
}

func TestTenantService_LoginRejectsUnknown(t *testing.T) {
	ctx := context.Background()

	configs := &mocks.TenantConfigStore{}
	svc := tenant.NewService(tenant.NewAllowlist([]string{"alice"}), configs, nil)

	_, err := svc.Login(ctx, "mallory", "whatever")
	require.ErrorIs(t, err, tenant.ErrUnknownTenant)
	configs.AssertNotCalled(t, "Get")
}

func TestTenantService_LoginKeepsStoredCredential(t *testing.T) {
	ctx := context.Background()

	existing := &tenant.Config{TenantID: "alice", Credential: "old-ref", LastActiveProject: "P1"}
	configs := &mocks.TenantConfigStore{}
	configs.On("Get", ctx, "alice").Return(existing, nil)
	configs.On("Put", ctx, mock.Anything).Return(nil)

	svc := tenant.NewService(tenant.NewAllowlist([]string{"alice"}), configs, nil)
	cfg, err := svc.Login(ctx, "alice", "")
	require.NoError(t, err)
	require.Equal(t, "old-ref", cfg.Credential)
	require.Equal(t, "P1", cfg.LastActiveProject)
}

func TestTenantService_SetLastActive(t *testing.T) {
	ctx := context.Background()

	configs := &mocks.TenantConfigStore{}
	configs.On("Get", ctx, "alice").Return(&tenant.Config{TenantID: "alice"}, nil)

	var saved *tenant.Config
	configs.On("Put", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*tenant.Config) }).
		Return(nil)

	svc := tenant.NewService(tenant.NewAllowlist([]string{"alice"}), configs, nil)
	require.NoError(t, svc.SetLastActive(ctx, "alice", "P2"))
	require.NotNil(t, saved)
	require.Equal(t, "P2", saved.LastActiveProject)
}
