package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/courtroom/internal/domain/event"
	"github.com/rpggio/courtroom/internal/domain/output"
)

// EventRepository is a mock for event.Repository.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Append(ctx context.Context, ev *event.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *EventRepository) Recent(ctx context.Context, limit int) ([]event.Event, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// OutputRepository is a mock for output.Repository.
type OutputRepository struct {
	mock.Mock
}

func (m *OutputRepository) Create(ctx context.Context, out *output.Output) error {
	args := m.Called(ctx, out)
	return args.Error(0)
}

func (m *OutputRepository) Get(ctx context.Context, id string) (*output.Output, error) {
	args := m.Called(ctx, id)
	if out, ok := args.Get(0).(*output.Output); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OutputRepository) List(ctx context.Context) ([]output.Output, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]output.Output); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
