package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelCollectErrors(t *testing.T) {
	sentinel := errors.New("task failed")

	p := NewParallel(WithCollectErrors())
	errs := p.Run(context.Background(),
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return sentinel },
		func(ctx context.Context) error { return nil },
	)

	require.Len(t, errs, 3)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], sentinel)
	assert.NoError(t, errs[2])
}

func TestParallelFailFast(t *testing.T) {
	sentinel := errors.New("task failed")
	started := make(chan struct{})

	p := NewParallel(WithFailFast())
	errs := p.Run(context.Background(),
		func(ctx context.Context) error {
			<-started
			return sentinel
		},
		func(ctx context.Context) error {
			close(started)
			// Honors the shared context, so the first failure settles it.
			<-ctx.Done()
			return ctx.Err()
		},
	)

	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], sentinel)
	assert.ErrorIs(t, errs[1], context.Canceled)
}

func TestParallelFetchesQueries(t *testing.T) {
	client := newTestClient()

	q1 := NewQuery(client,
		func(ctx context.Context, args ...any) (int, error) { return 1, nil },
		WithKey("p1"),
	)
	q2 := NewQuery(client,
		func(ctx context.Context, args ...any) (int, error) { return 2, nil },
		WithKey("p2"),
	)

	errs := NewParallel().Run(context.Background(),
		func(ctx context.Context) error { return q1.Fetch(ctx).Err },
		func(ctx context.Context) error { return q2.Fetch(ctx).Err },
	)

	require.Equal(t, []error{nil, nil}, errs)
	assert.True(t, client.Store().Has("p1"))
	assert.True(t, client.Store().Has("p2"))
}
