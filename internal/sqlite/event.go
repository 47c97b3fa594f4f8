package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/courtroom/internal/domain/event"
)

var _ event.Repository = (*EventRepository)(nil)

// EventRepository implements event.Repository for SQLite
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Append inserts an event and sets its ID
func (r *EventRepository) Append(ctx context.Context, ev *event.Event) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO events (type, payload, created_at) VALUES (?, ?, ?)`,
		ev.Type, string(ev.Payload), ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read event id: %w", err)
	}
	ev.ID = id
	return nil
}

// Recent returns up to limit events, newest first
func (r *EventRepository) Recent(ctx context.Context, limit int) ([]event.Event, error) {
	query := `SELECT id, type, payload, created_at FROM events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []event.Event{}
	for rows.Next() {
		var ev event.Event
		var payload string
		if err := rows.Scan(&ev.ID, &ev.Type, &payload, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Payload = []byte(payload)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}
