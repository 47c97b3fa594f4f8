package output

import "context"

// Repository provides persistence operations for outputs.
type Repository interface {
	Create(ctx context.Context, out *Output) error
	Get(ctx context.Context, id string) (*Output, error)
	List(ctx context.Context) ([]Output, error)
}
