package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/courtroom/internal/domain/output"
	"github.com/rpggio/courtroom/internal/repository"
)

var _ output.Repository = (*OutputRepository)(nil)

// OutputRepository implements output.Repository for SQLite
type OutputRepository struct {
	db *DB
}

// NewOutputRepository creates a new OutputRepository
func NewOutputRepository(db *DB) *OutputRepository {
	return &OutputRepository{db: db}
}

// Create inserts a new output
func (r *OutputRepository) Create(ctx context.Context, out *output.Output) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO outputs (id, title, html, created_at) VALUES (?, ?, ?, ?)`,
		out.ID, out.Title, out.HTML, out.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("output %s: %w", out.ID, repository.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert output: %w", err)
	}
	return nil
}

// Get retrieves an output by ID
func (r *OutputRepository) Get(ctx context.Context, id string) (*output.Output, error) {
	var out output.Output
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, html, created_at FROM outputs WHERE id = ?`, id,
	).Scan(&out.ID, &out.Title, &out.HTML, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get output: %w", err)
	}
	return &out, nil
}

// List returns all outputs, newest first
func (r *OutputRepository) List(ctx context.Context) ([]output.Output, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, html, created_at FROM outputs ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}
	defer rows.Close()

	outs := []output.Output{}
	for rows.Next() {
		var out output.Output
		if err := rows.Scan(&out.ID, &out.Title, &out.HTML, &out.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan output: %w", err)
		}
		outs = append(outs, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating output rows: %w", err)
	}

	return outs, nil
}
