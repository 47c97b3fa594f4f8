package mcp

import (
	"time"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/domain/output"
)

// feedLimit caps the feed entries returned by court tools.
const feedLimit = 20

type StartCourtSessionParams struct{}

type CourtSessionParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"Court session ID (omit to use the session started by this client)"`
}

type FixTaskParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"Court session ID (omit to use the session started by this client)"`
	Task      string `json:"task" jsonschema:"Task key: alt, validation, login or database"`
}

type RecordEventParams struct {
	Type    string         `json:"type" jsonschema:"Event type; empty is stored as unknown"`
	Payload map[string]any `json:"payload,omitempty" jsonschema:"Event payload object"`
}

type RecentEventsParams struct{}

type SaveOutputParams struct {
	Title string `json:"title,omitempty" jsonschema:"Output title; defaults to Untitled"`
	HTML  string `json:"html" jsonschema:"Rendered HTML"`
}

type ListOutputsParams struct{}

type TaskView struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Status   string `json:"status"`
	Law      string `json:"law,omitempty"`
	FirstAt  string `json:"first_at,omitempty"`
	UrgentAt string `json:"urgent_at,omitempty"`
	CourtAt  string `json:"court_at,omitempty"`
}

type FeedView struct {
	At     string `json:"at"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

type SummonsView struct {
	Task  string `json:"task"`
	Label string `json:"label"`
	Note  string `json:"note"`
}

type CourtStateResult struct {
	SessionID string        `json:"session_id"`
	Tasks     []TaskView    `json:"tasks"`
	Feed      []FeedView    `json:"feed"`
	TimerMs   int64         `json:"timer_ms"`
	Timer     string        `json:"timer"`
	Running   bool          `json:"timer_running"`
	AnyCourt  bool          `json:"any_court"`
	Summons   []SummonsView `json:"summons,omitempty"`
}

type FixTaskResult struct {
	SessionID string   `json:"session_id"`
	Task      TaskView `json:"task"`
}

type CloseCourtSessionResult struct {
	SessionID string `json:"session_id"`
	Closed    bool   `json:"closed"`
}

type EventView struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	Type      string `json:"type"`
	Payload   string `json:"payload"`
}

type RecentEventsResult struct {
	Events []EventView `json:"events"`
}

type OutputView struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Title     string `json:"title"`
	HTML      string `json:"html"`
}

type ListOutputsResult struct {
	Outputs []OutputView `json:"outputs"`
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toTaskView(t court.Task) TaskView {
	return TaskView{
		Key:      string(t.Key),
		Label:    t.Label,
		Status:   string(t.Status),
		Law:      t.LawOnFail,
		FirstAt:  formatTime(t.FirstAt),
		UrgentAt: formatTime(t.UrgentAt),
		CourtAt:  formatTime(t.CourtAt),
	}
}

func toCourtState(snap court.Snapshot) CourtStateResult {
	res := CourtStateResult{
		SessionID: snap.ID,
		Tasks:     make([]TaskView, 0, len(snap.Tasks)),
		Feed:      make([]FeedView, 0, min(len(snap.Feed), feedLimit)),
		TimerMs:   snap.Timer.ElapsedMs,
		Timer:     snap.Timer.Display,
		Running:   snap.Timer.Running,
		AnyCourt:  snap.AnyCourt,
	}
	for _, t := range snap.Tasks {
		res.Tasks = append(res.Tasks, toTaskView(t))
	}
	for i, item := range snap.Feed {
		if i == feedLimit {
			break
		}
		res.Feed = append(res.Feed, FeedView{
			At:     formatTime(&item.Timestamp),
			Source: string(item.Source),
			Text:   item.Text,
		})
	}
	for _, s := range snap.Summons {
		res.Summons = append(res.Summons, SummonsView{Task: string(s.Task), Label: s.Label, Note: s.Note})
	}
	return res
}

func toEventView(ev event.Event) EventView {
	return EventView{
		ID:        ev.ID,
		CreatedAt: formatTime(&ev.CreatedAt),
		Type:      ev.Type,
		Payload:   string(ev.Payload),
	}
}

func toOutputView(out output.Output) OutputView {
	return OutputView{
		ID:        out.ID,
		CreatedAt: formatTime(&out.CreatedAt),
		Title:     out.Title,
		HTML:      out.HTML,
	}
}
