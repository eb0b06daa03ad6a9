// Package testserver wires a full server over an in-memory grid backend
// for tests: real store, real services, real MCP tool surface, no I/O.
package testserver

import (
	"context"
	"testing"

	"github.com/okabe-h/gridstore/internal/domain/project"
	"github.com/okabe-h/gridstore/internal/domain/tenant"
	"github.com/okabe-h/gridstore/internal/grid"
	"github.com/okabe-h/gridstore/internal/mcp"
	"github.com/okabe-h/gridstore/internal/store"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestServer exposes a connected MCP client session and the raw backend
// for row-level assertions. Tools run as tenant "default" (stdio mode).
type TestServer struct {
	Session *sdkmcp.ClientSession
	Backend *grid.Memory
}

// New builds the full stack over an in-memory grid and connects a client.
func New(t *testing.T) *TestServer {
	t.Helper()
	ctx := context.Background()

	backend := grid.NewMemory()
	docs := store.New(backend, store.TablePerTenant{Prefix: "projects_"}, nil)
	configs := store.NewTenantConfigs(backend, nil)

	projectSvc := project.NewService(docs, nil)
	allowlist := tenant.NewAllowlist([]string{"default", "alice", "bob"})
	tenantSvc := tenant.NewService(allowlist, configs, nil)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: projectSvc,
			Tenants:  tenantSvc,
		},
		Resolver:      allowlist,
		TransportMode: "stdio",
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "0.0.1",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	return &TestServer{Session: session, Backend: backend}
}
