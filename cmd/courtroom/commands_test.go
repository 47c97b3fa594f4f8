package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/courtroom/internal/domain/court"
	"github.com/rpggio/courtroom/internal/domain/event"
)

func TestPrintEvents(t *testing.T) {
	events := []event.Event{
		{ID: 2, CreatedAt: time.Now(), Type: "court_fix", Payload: json.RawMessage(`{"task":"alt"}`)},
		{ID: 1, CreatedAt: time.Now(), Type: "court_feed", Payload: json.RawMessage(`{}`)},
	}

	var table bytes.Buffer
	require.NoError(t, printEvents(&table, events, false))
	lines := strings.Split(strings.TrimSpace(table.String()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "ID"))
	require.Contains(t, lines[1], `court_fix`)
	require.Contains(t, lines[1], `{"task":"alt"}`)

	var jsonl bytes.Buffer
	require.NoError(t, printEvents(&jsonl, events, true))
	dec := json.NewDecoder(&jsonl)
	var first event.Event
	require.NoError(t, dec.Decode(&first))
	require.Equal(t, int64(2), first.ID)
}

type failingSink struct {
	mu    sync.Mutex
	types []string
}

func (f *failingSink) Record(_ context.Context, eventType string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, eventType)
	return errors.New("offline")
}

func TestPrintingSink(t *testing.T) {
	var out bytes.Buffer
	next := &failingSink{}
	sink := &printingSink{out: &out, next: next}

	require.NoError(t, (&printingSink{out: &out}).Record(context.Background(), court.EventFeed,
		map[string]any{"source": "boss", "text": "Fix user login"}))
	require.Contains(t, out.String(), "boss")
	require.Contains(t, out.String(), "Fix user login")

	err := sink.Record(context.Background(), court.EventUrgent, map[string]any{"task": "alt"})
	require.Error(t, err)
	require.Equal(t, []string{court.EventUrgent}, next.types)
}

func TestSimulateCommand(t *testing.T) {
	var mu sync.Mutex
	var received []string
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Type string `json:"type"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		received = append(received, body.Type)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(remote.Close)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"simulate",
		"--threshold", "20ms",
		"--tick", "5ms",
		"--message-min", "10ms",
		"--message-max", "20ms",
		"--duration", "200ms",
		"--seed", "7",
		"--server", remote.URL,
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	text := out.String()
	require.Contains(t, text, "Welcome to the sprint")
	require.Contains(t, text, "COURT: You ignored")
	require.Contains(t, text, "Court summons:")

	mu.Lock()
	defer mu.Unlock()
	require.Contains(t, received, court.EventFeed)
	require.Contains(t, received, court.EventCourt)
}
