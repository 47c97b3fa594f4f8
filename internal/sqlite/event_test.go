package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/courtroom/internal/domain/event"
)

func TestEventRepository_AppendRecent(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	now := time.Now().UTC()
	first := &event.Event{Type: "court_feed", Payload: json.RawMessage(`{"source":"boss"}`), CreatedAt: now}
	second := &event.Event{Type: "court_fix", Payload: json.RawMessage(`{"task":"alt"}`), CreatedAt: now}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))
	require.Greater(t, second.ID, first.ID)

	events, err := repo.Recent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "court_fix", events[0].Type)
	require.JSONEq(t, `{"task":"alt"}`, string(events[0].Payload))
	require.Equal(t, "court_feed", events[1].Type)
	require.WithinDuration(t, now, events[1].CreatedAt, time.Second)
}

func TestEventRepository_RecentLimit(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	for i := 0; i < 60; i++ {
		require.NoError(t, repo.Append(ctx, &event.Event{
			Type:      fmt.Sprintf("e%d", i),
			Payload:   json.RawMessage(`{}`),
			CreatedAt: time.Now().UTC(),
		}))
	}

	events, err := repo.Recent(ctx, event.RecentLimit)
	require.NoError(t, err)
	require.Len(t, events, event.RecentLimit)
	require.Equal(t, "e59", events[0].Type)
	require.Equal(t, "e10", events[len(events)-1].Type)
}

func TestEventRepository_RecentEmpty(t *testing.T) {
	db := NewTestDB(t)

	events, err := NewEventRepository(db).Recent(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, events)
	require.Empty(t, events)
}

func TestEventService_WithSQLite(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	svc := event.NewService(NewEventRepository(db), nil)

	require.NoError(t, svc.Record(ctx, "", map[string]any{"n": 3}))
	events, err := svc.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, event.UnknownType, events[0].Type)
	require.JSONEq(t, `{"n":3}`, string(events[0].Payload))
}
