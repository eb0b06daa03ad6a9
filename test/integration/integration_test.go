package integration_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/okabe-h/gridstore/internal/testserver"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type documentPayload struct {
	Document struct {
		ProjectID string `json:"project_id"`
		Confirmed string `json:"confirmed"`
		Pending   string `json:"pending"`
		Strategy  string `json:"strategy"`

		MeetingHistory []struct {
			Content string `json:"content"`
		} `json:"meeting_history"`
		ChatHistory []struct {
			Role string `json:"role"`
			Text string `json:"text"`
		} `json:"chat_history"`
	} `json:"document"`
}

func callTool(t *testing.T, ts *testserver.TestServer, name string, args map[string]any) json.RawMessage {
	t.Helper()

	result, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "tool %s returned error: %+v", name, result.Content)

	data, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	return data
}

func TestFirstVisitProvisionsDefaultProject(t *testing.T) {
	ts := testserver.New(t)

	callTool(t, ts, "login", map[string]any{"identifier": "default"})

	var payload documentPayload
	raw := callTool(t, ts, "get_project", map[string]any{})
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "Default Project", payload.Document.ProjectID)
	require.Contains(t, payload.Document.Confirmed, "【基本情報】")

	// Exactly one row was appended to the tenant's table.
	require.Equal(t, 1, ts.Backend.RowCount("projects_default"))

	// A second visit finds the row instead of appending another.
	callTool(t, ts, "get_project", map[string]any{})
	require.Equal(t, 1, ts.Backend.RowCount("projects_default"))
}

func TestEditKeepsOtherFields(t *testing.T) {
	ts := testserver.New(t)

	callTool(t, ts, "get_project", map[string]any{})
	callTool(t, ts, "update_field", map[string]any{
		"project_id": "Default Project",
		"field":      "strategy",
		"value":      "mobile first",
	})

	var payload documentPayload
	raw := callTool(t, ts, "update_field", map[string]any{
		"project_id": "Default Project",
		"field":      "confirmed",
		"value":      "client: Yamada",
	})
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "client: Yamada", payload.Document.Confirmed)
	require.Equal(t, "mobile first", payload.Document.Strategy)
	require.Equal(t, 1, ts.Backend.RowCount("projects_default"))
}

func TestMeetingAndChatHistory(t *testing.T) {
	ts := testserver.New(t)

	callTool(t, ts, "append_meeting", map[string]any{
		"project_id": "P1",
		"content":    "kickoff notes",
	})

	var payload documentPayload
	raw := callTool(t, ts, "append_meeting", map[string]any{
		"project_id": "P1",
		"content":    "second meeting",
	})
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Len(t, payload.Document.MeetingHistory, 2)
	require.Equal(t, "second meeting", payload.Document.MeetingHistory[0].Content)

	raw = callTool(t, ts, "append_chat", map[string]any{
		"project_id": "P1",
		"role":       "user",
		"text":       "is the budget fixed?",
	})
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Len(t, payload.Document.ChatHistory, 1)
	require.Equal(t, "user", payload.Document.ChatHistory[0].Role)

	// Meetings survived the chat write.
	require.Len(t, payload.Document.MeetingHistory, 2)
}

func TestCreateAndList(t *testing.T) {
	ts := testserver.New(t)

	callTool(t, ts, "create_project", map[string]any{"id": "Brand Site"})
	callTool(t, ts, "create_project", map[string]any{"id": "EC Renewal"})

	raw := callTool(t, ts, "list_projects", map[string]any{})
	var listed struct {
		Projects []string `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.ElementsMatch(t, []string{"Brand Site", "EC Renewal"}, listed.Projects)
}

func TestUnknownTenantLoginFails(t *testing.T) {
	ts := testserver.New(t)

	result, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "login",
		Arguments: map[string]any{"identifier": "mallory"},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
}
