// Package mcp exposes the document-store operations as MCP tools. Prompt
// construction and text-generation calls live in the client above this
// surface, never here.
package mcp

import (
	"context"
	"log/slog"

	"github.com/okabe-h/gridstore/internal/domain/project"
	"github.com/okabe-h/gridstore/internal/domain/tenant"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `gridstore persists project bibles for an AI
direction assistant: per-tenant project documents with confirmed facts,
open items, strategy, director memos, transcripts, and meeting/chat
history. Call login first when authentication is disabled, then address
projects by ID; omitting the ID targets the tenant's default project.`

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, tenantID string, req project.CreateRequest) (*project.Document, error)
	Get(ctx context.Context, tenantID, id string) (*project.Document, error)
	GetDefault(ctx context.Context, tenantID string) (*project.Document, error)
	List(ctx context.Context, tenantID string) ([]string, error)
	UpdateField(ctx context.Context, tenantID, id string, field project.Field, value string) (*project.Document, error)
	AppendMeeting(ctx context.Context, tenantID, id, content string) (*project.Document, error)
	AppendChat(ctx context.Context, tenantID, id, role, text string) (*project.Document, error)
}

// TenantService defines tenant operations needed by MCP.
type TenantService interface {
	Login(ctx context.Context, identifier, credential string) (*tenant.Config, error)
	SetLastActive(ctx context.Context, tenantID, projectID string) error
}

// Services contains the domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Tenants  TenantService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      TenantResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "gridstore",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	// Stdio is local-only; auth is meaningful on HTTP.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware("default"))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
