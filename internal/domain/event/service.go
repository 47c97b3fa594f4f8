package event

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Service handles event log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new event service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Record appends an event. An empty type is stored as "unknown" and a nil
// payload as an empty object. Raw JSON payloads are stored as given.
func (s *Service) Record(ctx context.Context, eventType string, payload any) error {
	_, err := s.Append(ctx, eventType, payload)
	return err
}

// Append is Record returning the stored event.
func (s *Service) Append(ctx context.Context, eventType string, payload any) (*Event, error) {
	data, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	if eventType == "" {
		eventType = UnknownType
	}

	ev := &Event{
		CreatedAt: time.Now().UTC(),
		Type:      eventType,
		Payload:   data,
	}
	if err := s.repo.Append(ctx, ev); err != nil {
		return nil, fmt.Errorf("recording event: %w", err)
	}
	s.logger.Debug("event recorded", "id", ev.ID, "type", ev.Type)
	return ev, nil
}

// Recent returns the latest events, newest first.
func (s *Service) Recent(ctx context.Context) ([]Event, error) {
	events, err := s.repo.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

func encodePayload(payload any) (json.RawMessage, error) {
	switch p := payload.(type) {
	case nil:
		return json.RawMessage("{}"), nil
	case json.RawMessage:
		trimmed := bytes.TrimSpace(p)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			return json.RawMessage("{}"), nil
		}
		if !json.Valid(trimmed) {
			return nil, ErrInvalidPayload
		}
		return json.RawMessage(trimmed), nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if bytes.Equal(data, []byte("null")) {
		return json.RawMessage("{}"), nil
	}
	return data, nil
}
