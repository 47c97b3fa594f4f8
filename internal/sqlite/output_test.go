package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/courtroom/internal/domain/output"
	"github.com/rpggio/courtroom/internal/repository"
)

func TestOutputRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewOutputRepository(db)

	out := &output.Output{ID: "o1", Title: "EscapeRun", HTML: "<p>x</p>", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, out))

	got, err := repo.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, "EscapeRun", got.Title)
	require.Equal(t, "<p>x</p>", got.HTML)
	require.WithinDuration(t, out.CreatedAt, got.CreatedAt, time.Second)
}

func TestOutputRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)

	_, err := NewOutputRepository(db).Get(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOutputRepository_ListNewestFirst(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewOutputRepository(db)

	now := time.Now().UTC()
	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, repo.Create(ctx, &output.Output{ID: id, Title: id, HTML: "<p/>", CreatedAt: now}))
	}

	outs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, outs, 3)
	require.Equal(t, []string{"c", "a", "b"}, []string{outs[0].ID, outs[1].ID, outs[2].ID})
}

func TestOutputRepository_DuplicateID(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewOutputRepository(db)

	out := &output.Output{ID: "dup", Title: "t", HTML: "<p/>", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, out))
	require.ErrorIs(t, repo.Create(ctx, out), repository.ErrAlreadyExists)
}
