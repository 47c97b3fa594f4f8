package output_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/courtroom/internal/domain/output"
	"github.com/rpggio/courtroom/internal/repository"
	"github.com/rpggio/courtroom/internal/repository/mocks"
)

func TestOutputService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.OutputRepository{}
	repo.On("Create", ctx, mock.AnythingOfType("*output.Output")).Return(nil)

	svc := output.NewService(repo, nil)
	out, err := svc.Create(ctx, "  EscapeRun  ", "<p>hi</p>")
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)
	require.Equal(t, "EscapeRun", out.Title)
	require.Equal(t, "<p>hi</p>", out.HTML)
	require.False(t, out.CreatedAt.IsZero())
}

func TestOutputService_CreateDefaultsTitle(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.OutputRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := output.NewService(repo, nil)
	out, err := svc.Create(ctx, "   ", "<p>x</p>")
	require.NoError(t, err)
	require.Equal(t, output.DefaultTitle, out.Title)
}

func TestOutputService_CreateRequiresHTML(t *testing.T) {
	repo := &mocks.OutputRepository{}
	svc := output.NewService(repo, nil)

	_, err := svc.Create(context.Background(), "title", "")
	require.ErrorIs(t, err, output.ErrHTMLRequired)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOutputService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.OutputRepository{}
	repo.On("Get", ctx, "missing").Return((*output.Output)(nil), repository.ErrNotFound)

	svc := output.NewService(repo, nil)
	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, output.ErrOutputNotFound)
}
