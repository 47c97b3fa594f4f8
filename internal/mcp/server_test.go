package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/domain/output"
	"github.com/rpggio/courtroom/internal/sqlite"
)

func newTestClient(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	session, _ := newTestClientWithManager(t)
	return session
}

func newTestClientWithManager(t *testing.T) (*sdkmcp.ClientSession, *court.Manager) {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	events := event.NewService(sqlite.NewEventRepository(db), nil)
	manager := court.NewManager(court.DefaultScenario(), court.DefaultConfig(), nil, court.WithEventSink(events))

	server := NewServer(Config{Services: Services{
		Court:   manager,
		Events:  events,
		Outputs: output.NewService(sqlite.NewOutputRepository(db), nil),
	}})

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
		serverSession.Wait()
		require.NoError(t, manager.Shutdown())
		db.Close()
	})
	return session, manager
}

func callTool[T any](t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) T {
	t.Helper()
	res := callToolRaw(t, session, name, args)
	require.False(t, res.IsError, "tool %s failed: %v", name, res.Content)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func callToolRaw(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func toolErrorText(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_ListTools(t *testing.T) {
	session := newTestClient(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"start_court_session", "court_state", "fix_task", "close_court_session",
		"record_event", "recent_events", "save_output", "list_outputs",
	}, names)
}

func TestServer_CourtFlow(t *testing.T) {
	session := newTestClient(t)

	started := callTool[CourtStateResult](t, session, "start_court_session", nil)
	require.NotEmpty(t, started.SessionID)
	require.Len(t, started.Tasks, 4)
	require.Len(t, started.Feed, 3)
	require.False(t, started.AnyCourt)

	fixed := callTool[FixTaskResult](t, session, "fix_task", map[string]any{"task": "alt"})
	require.Equal(t, started.SessionID, fixed.SessionID)
	require.Equal(t, "fixed", fixed.Task.Status)
	require.NotEmpty(t, fixed.Task.FirstAt)

	state := callTool[CourtStateResult](t, session, "court_state", nil)
	require.Equal(t, "Resolved: Fix alt in img1", state.Feed[0].Text)
	require.Equal(t, "system", state.Feed[0].Source)

	res := callToolRaw(t, session, "fix_task", map[string]any{"task": "cobol"})
	require.Contains(t, toolErrorText(t, res), "UNKNOWN_TASK")

	closed := callTool[CloseCourtSessionResult](t, session, "close_court_session", nil)
	require.True(t, closed.Closed)

	res = callToolRaw(t, session, "court_state", nil)
	require.Contains(t, toolErrorText(t, res), "NO_COURT_SESSION")

	res = callToolRaw(t, session, "court_state", map[string]any{"session_id": started.SessionID})
	require.Contains(t, toolErrorText(t, res), "SESSION_NOT_FOUND")
}

func TestServer_IdleSessionIsUnbound(t *testing.T) {
	session, manager := newTestClientWithManager(t)

	started := callTool[CourtStateResult](t, session, "start_court_session", nil)
	require.Equal(t, []string{started.SessionID}, manager.Reap(time.Now().Add(court.DefaultIdleTimeout)))

	res := callToolRaw(t, session, "court_state", nil)
	require.Contains(t, toolErrorText(t, res), "NO_COURT_SESSION")
}

func TestServer_EventsAndOutputs(t *testing.T) {
	session := newTestClient(t)

	recorded := callTool[EventView](t, session, "record_event", map[string]any{
		"type":    "",
		"payload": map[string]any{"note": "hi"},
	})
	require.Equal(t, event.UnknownType, recorded.Type)
	require.JSONEq(t, `{"note":"hi"}`, recorded.Payload)

	recent := callTool[RecentEventsResult](t, session, "recent_events", nil)
	require.Len(t, recent.Events, 1)
	require.Equal(t, recorded.ID, recent.Events[0].ID)

	res := callToolRaw(t, session, "save_output", map[string]any{"title": "x", "html": ""})
	require.Contains(t, toolErrorText(t, res), "html required")

	saved := callTool[OutputView](t, session, "save_output", map[string]any{"html": "<p>ok</p>"})
	require.Equal(t, output.DefaultTitle, saved.Title)

	listed := callTool[ListOutputsResult](t, session, "list_outputs", nil)
	require.Len(t, listed.Outputs, 1)
	require.Equal(t, saved.ID, listed.Outputs[0].ID)
}

func TestServer_DocResources(t *testing.T) {
	session := newTestClient(t)
	ctx := context.Background()

	list, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list.Resources, len(docResources))

	res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "courtroom://docs/rules"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Equal(t, "text/markdown", res.Contents[0].MIMEType)
	require.Contains(t, res.Contents[0].Text, "Court is final")
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{court.ErrSessionNotFound, "SESSION_NOT_FOUND"},
		{court.ErrSessionClosed, "SESSION_CLOSED"},
		{court.ErrUnknownTask, "UNKNOWN_TASK"},
		{court.ErrTaskInCourt, "TASK_IN_COURT"},
		{output.ErrHTMLRequired, "HTML_REQUIRED"},
		{event.ErrInvalidPayload, "INVALID_PAYLOAD"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			apiErr := MapError(tt.err)
			require.NotNil(t, apiErr)
			require.Equal(t, tt.code, apiErr.Code)
		})
	}

	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(context.Canceled))
}

func TestBindings(t *testing.T) {
	b := newBindings()
	b.bind("client-a", "court-1")
	b.bind("client-b", "court-1")

	require.Equal(t, "court-1", b.resolve("client-a", ""))
	require.Equal(t, "court-2", b.resolve("client-a", "court-2"))

	b.unbind("court-1")
	require.Empty(t, b.resolve("client-a", ""))
	require.Empty(t, b.resolve("client-b", ""))
}
