package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/courtroom/internal/domain/court"
)

type toolHandlers struct {
	services Services
	bindings *bindings
	logger   *slog.Logger
}

func registerTools(server *sdkmcp.Server, services Services, b *bindings, logger *slog.Logger) {
	h := &toolHandlers{services: services, bindings: b, logger: logger}

	// Court room
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_court_session",
		Description: "Start a court room session. Its tasks begin escalating immediately; the session becomes the default for this client.",
	}, h.startCourtSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "court_state",
		Description: "Get tasks, recent feed messages, stopwatch and court status of a court session",
	}, h.courtState)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "fix_task",
		Description: "Fix a task before it escalates to court. Fixing twice is a no-op; tasks in court cannot be fixed.",
	}, h.fixTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_court_session",
		Description: "Stop a court session and its timers",
	}, h.closeCourtSession)

	// Event log
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "record_event",
		Description: "Append an event to the event log",
	}, h.recordEvent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_events",
		Description: "List the 50 most recent events, newest first",
	}, h.recentEvents)

	// Outputs
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_output",
		Description: "Save a rendered HTML output",
	}, h.saveOutput)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_outputs",
		Description: "List saved outputs, newest first",
	}, h.listOutputs)
}

func (h *toolHandlers) startCourtSession(ctx context.Context, _ *sdkmcp.CallToolRequest, _ StartCourtSessionParams) (*sdkmcp.CallToolResult, CourtStateResult, error) {
	sess, err := h.services.Court.Create(ctx)
	if err != nil {
		return nil, CourtStateResult{}, toolError(err)
	}
	h.bindings.bind(getClientSession(ctx), sess.ID())
	h.logger.Debug("court session started over mcp", "court_session", sess.ID())
	return nil, toCourtState(sess.Snapshot()), nil
}

func (h *toolHandlers) courtState(ctx context.Context, _ *sdkmcp.CallToolRequest, in CourtSessionParams) (*sdkmcp.CallToolResult, CourtStateResult, error) {
	sess, err := h.session(ctx, in.SessionID)
	if err != nil {
		return nil, CourtStateResult{}, err
	}
	return nil, toCourtState(sess.Snapshot()), nil
}

func (h *toolHandlers) fixTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in FixTaskParams) (*sdkmcp.CallToolResult, FixTaskResult, error) {
	sess, err := h.session(ctx, in.SessionID)
	if err != nil {
		return nil, FixTaskResult{}, err
	}
	task, err := sess.Fix(ctx, court.TaskKey(in.Task))
	if err != nil {
		return nil, FixTaskResult{}, toolError(err)
	}
	return nil, FixTaskResult{SessionID: sess.ID(), Task: toTaskView(task)}, nil
}

func (h *toolHandlers) closeCourtSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in CourtSessionParams) (*sdkmcp.CallToolResult, CloseCourtSessionResult, error) {
	id := h.bindings.resolve(getClientSession(ctx), in.SessionID)
	if id == "" {
		return nil, CloseCourtSessionResult{}, errNoCourtSession
	}
	if err := h.services.Court.Close(id); err != nil {
		return nil, CloseCourtSessionResult{}, toolError(err)
	}
	return nil, CloseCourtSessionResult{SessionID: id, Closed: true}, nil
}

func (h *toolHandlers) recordEvent(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecordEventParams) (*sdkmcp.CallToolResult, EventView, error) {
	var payload any
	if in.Payload != nil {
		payload = in.Payload
	}
	ev, err := h.services.Events.Append(ctx, in.Type, payload)
	if err != nil {
		return nil, EventView{}, toolError(err)
	}
	return nil, toEventView(*ev), nil
}

func (h *toolHandlers) recentEvents(ctx context.Context, _ *sdkmcp.CallToolRequest, _ RecentEventsParams) (*sdkmcp.CallToolResult, RecentEventsResult, error) {
	events, err := h.services.Events.Recent(ctx)
	if err != nil {
		return nil, RecentEventsResult{}, toolError(err)
	}
	res := RecentEventsResult{Events: make([]EventView, 0, len(events))}
	for _, ev := range events {
		res.Events = append(res.Events, toEventView(ev))
	}
	return nil, res, nil
}

func (h *toolHandlers) saveOutput(ctx context.Context, _ *sdkmcp.CallToolRequest, in SaveOutputParams) (*sdkmcp.CallToolResult, OutputView, error) {
	out, err := h.services.Outputs.Create(ctx, in.Title, in.HTML)
	if err != nil {
		return nil, OutputView{}, toolError(err)
	}
	return nil, toOutputView(*out), nil
}

func (h *toolHandlers) listOutputs(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListOutputsParams) (*sdkmcp.CallToolResult, ListOutputsResult, error) {
	outs, err := h.services.Outputs.List(ctx)
	if err != nil {
		return nil, ListOutputsResult{}, toolError(err)
	}
	res := ListOutputsResult{Outputs: make([]OutputView, 0, len(outs))}
	for _, out := range outs {
		res.Outputs = append(res.Outputs, toOutputView(out))
	}
	return nil, res, nil
}

func (h *toolHandlers) session(ctx context.Context, explicit string) (*court.Session, error) {
	id := h.bindings.resolve(getClientSession(ctx), explicit)
	if id == "" {
		return nil, errNoCourtSession
	}
	sess, err := h.services.Court.Get(id)
	if err != nil {
		return nil, toolError(err)
	}
	return sess, nil
}
