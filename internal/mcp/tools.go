package mcp

import (
	"context"
	"fmt"

	"github.com/okabe-h/gridstore/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type loginInput struct {
	Identifier string `json:"identifier" jsonschema:"required,Tenant identifier from the allow-list"`
	Credential string `json:"credential,omitempty" jsonschema:"Credential reference to store (optional)"`
}

type loginOutput struct {
	TenantID          string `json:"tenant_id" jsonschema:"Resolved tenant ID"`
	LastActiveProject string `json:"last_active_project,omitempty" jsonschema:"Project the tenant last worked on"`
}

type listProjectsInput struct{}

type listProjectsOutput struct {
	Projects []string `json:"projects" jsonschema:"Project IDs owned by the tenant"`
}

type getProjectInput struct {
	ID string `json:"id,omitempty" jsonschema:"Project ID (omit for the default project)"`
}

type createProjectInput struct {
	ID        string `json:"id,omitempty" jsonschema:"Project ID (generated if omitted)"`
	Confirmed string `json:"confirmed,omitempty" jsonschema:"Initial confirmed-facts text (scaffold if omitted)"`
	Pending   string `json:"pending,omitempty" jsonschema:"Initial open-items text (scaffold if omitted)"`
}

type updateFieldInput struct {
	ProjectID string `json:"project_id" jsonschema:"required,Project ID"`
	Field     string `json:"field" jsonschema:"required,One of confirmed pending strategy memo transcript"`
	Value     string `json:"value" jsonschema:"required,Replacement text for the field"`
}

type appendMeetingInput struct {
	ProjectID string `json:"project_id" jsonschema:"required,Project ID"`
	Content   string `json:"content" jsonschema:"required,Meeting note text"`
}

type appendChatInput struct {
	ProjectID string `json:"project_id" jsonschema:"required,Project ID"`
	Role      string `json:"role" jsonschema:"required,Speaker role such as user or assistant"`
	Text      string `json:"text" jsonschema:"required,Message text"`
}

type documentOutput struct {
	Document project.Document `json:"document" jsonschema:"The full project document after the operation"`
}

func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "login",
		Description: "Resolve a tenant identifier against the allow-list and load its configuration",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args loginInput) (*sdkmcp.CallToolResult, loginOutput, error) {
		cfg, err := svcs.Tenants.Login(ctx, args.Identifier, args.Credential)
		if err != nil {
			return nil, loginOutput{}, toolError(err)
		}
		return textResult("logged in as " + cfg.TenantID), loginOutput{
			TenantID:          cfg.TenantID,
			LastActiveProject: cfg.LastActiveProject,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List the current tenant's project IDs",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args listProjectsInput) (*sdkmcp.CallToolResult, listProjectsOutput, error) {
		keys, err := svcs.Projects.List(ctx, getTenantID(ctx))
		if err != nil {
			return nil, listProjectsOutput{}, toolError(err)
		}
		return textResult(fmt.Sprintf("%d projects", len(keys))), listProjectsOutput{Projects: keys}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project document, or the default project when no ID is given",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args getProjectInput) (*sdkmcp.CallToolResult, documentOutput, error) {
		tenantID := getTenantID(ctx)

		var doc *project.Document
		var err error
		if args.ID == "" {
			doc, err = svcs.Projects.GetDefault(ctx, tenantID)
		} else {
			doc, err = svcs.Projects.Get(ctx, tenantID, args.ID)
		}
		if err != nil {
			return nil, documentOutput{}, toolError(err)
		}

		if err := svcs.Tenants.SetLastActive(ctx, tenantID, doc.ProjectID); err != nil {
			return nil, documentOutput{}, toolError(err)
		}
		return textResult("project " + doc.ProjectID), documentOutput{Document: *doc}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project document, scaffolded from the bible template",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args createProjectInput) (*sdkmcp.CallToolResult, documentOutput, error) {
		tenantID := getTenantID(ctx)
		doc, err := svcs.Projects.Create(ctx, tenantID, project.CreateRequest{
			ID:        args.ID,
			Confirmed: args.Confirmed,
			Pending:   args.Pending,
		})
		if err != nil {
			return nil, documentOutput{}, toolError(err)
		}
		if err := svcs.Tenants.SetLastActive(ctx, tenantID, doc.ProjectID); err != nil {
			return nil, documentOutput{}, toolError(err)
		}
		return textResult("created project " + doc.ProjectID), documentOutput{Document: *doc}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_field",
		Description: "Replace one scalar field of a project document; other fields are carried through",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args updateFieldInput) (*sdkmcp.CallToolResult, documentOutput, error) {
		doc, err := svcs.Projects.UpdateField(ctx, getTenantID(ctx), args.ProjectID, project.Field(args.Field), args.Value)
		if err != nil {
			return nil, documentOutput{}, toolError(err)
		}
		return textResult("updated " + args.Field), documentOutput{Document: *doc}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "append_meeting",
		Description: "Record a meeting note at the front of the project's meeting history",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args appendMeetingInput) (*sdkmcp.CallToolResult, documentOutput, error) {
		doc, err := svcs.Projects.AppendMeeting(ctx, getTenantID(ctx), args.ProjectID, args.Content)
		if err != nil {
			return nil, documentOutput{}, toolError(err)
		}
		return textResult("meeting recorded"), documentOutput{Document: *doc}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "append_chat",
		Description: "Record one chat turn in the project's display and context histories",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args appendChatInput) (*sdkmcp.CallToolResult, documentOutput, error) {
		doc, err := svcs.Projects.AppendChat(ctx, getTenantID(ctx), args.ProjectID, args.Role, args.Text)
		if err != nil {
			return nil, documentOutput{}, toolError(err)
		}
		return textResult("chat turn recorded"), documentOutput{Document: *doc}, nil
	})
}

func textResult(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}

// toolError prefers the mapped API error so clients see stable codes.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
