package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/courtroom/internal/repository"
)

// Service handles saved output operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new output service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create saves an HTML output. The title is trimmed and defaults to
// "Untitled"; empty HTML is rejected.
func (s *Service) Create(ctx context.Context, title, html string) (*Output, error) {
	if html == "" {
		return nil, ErrHTMLRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	out := &Output{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Title:     title,
		HTML:      html,
	}
	if err := s.repo.Create(ctx, out); err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	s.logger.Info("output saved", "id", out.ID, "title", out.Title, "bytes", len(html))
	return out, nil
}

// Get fetches an output by ID.
func (s *Service) Get(ctx context.Context, id string) (*Output, error) {
	out, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOutputNotFound
		}
		return nil, fmt.Errorf("getting output: %w", err)
	}
	return out, nil
}

// List returns all outputs, newest first.
func (s *Service) List(ctx context.Context) ([]Output, error) {
	outs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing outputs: %w", err)
	}
	return outs, nil
}
