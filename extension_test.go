package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExtension struct {
	BaseExtension
	order  int
	events *[]string
}

func (e *recordingExtension) Order() int {
	return e.order
}

func (e *recordingExtension) Wrap(ctx context.Context, next func() (any, error), op *Operation) (any, error) {
	*e.events = append(*e.events, e.Name()+":start:"+string(op.Kind))
	result, err := next()
	*e.events = append(*e.events, e.Name()+":end:"+string(op.Kind))
	return result, err
}

func (e *recordingExtension) OnError(err error, op *Operation, c *Client) {
	*e.events = append(*e.events, e.Name()+":error")
}

func TestExtensionWrapOrder(t *testing.T) {
	var events []string
	outer := &recordingExtension{BaseExtension: NewBaseExtension("outer"), order: 1, events: &events}
	inner := &recordingExtension{BaseExtension: NewBaseExtension("inner"), order: 2, events: &events}

	// Registration order does not matter; Order does.
	client := NewClient(WithStore(NewStore()), WithExtension(inner), WithExtension(outer))

	q := NewQuery(client,
		func(ctx context.Context, args ...any) (int, error) { return 1, nil },
		WithoutCache(),
	)
	q.Fetch(context.Background())

	assert.Equal(t, []string{
		"outer:start:fetch",
		"inner:start:fetch",
		"inner:end:fetch",
		"outer:end:fetch",
	}, events)
}

func TestExtensionOnError(t *testing.T) {
	var events []string
	ext := &recordingExtension{BaseExtension: NewBaseExtension("rec"), order: 1, events: &events}
	client := NewClient(WithStore(NewStore()), WithExtension(ext))

	q := NewQuery(client,
		func(ctx context.Context, args ...any) (int, error) {
			return 0, errors.New("nope")
		},
		WithoutCache(),
	)
	st := q.Fetch(context.Background())

	require.Error(t, st.Err)
	assert.Contains(t, events, "rec:error")
}

func TestExtensionSeesInvalidate(t *testing.T) {
	var events []string
	ext := &recordingExtension{BaseExtension: NewBaseExtension("rec"), order: 1, events: &events}
	store := NewStore()
	client := NewClient(WithStore(store), WithExtension(ext))

	store.Set("k", 1)
	client.Invalidate(context.Background(), "k")

	assert.False(t, store.Has("k"))
	assert.Contains(t, events, "rec:start:invalidate")
}

type initDisposeExtension struct {
	BaseExtension
	initialized bool
	disposed    bool
}

func (e *initDisposeExtension) Init(c *Client) error {
	e.initialized = true
	return nil
}

func (e *initDisposeExtension) Dispose(c *Client) error {
	e.disposed = true
	return nil
}

func TestExtensionInitAndDispose(t *testing.T) {
	ext := &initDisposeExtension{BaseExtension: NewBaseExtension("lifecycle")}
	client := NewClient(WithStore(NewStore()), WithExtension(ext))
	require.True(t, ext.initialized)

	require.NoError(t, client.Dispose())
	assert.True(t, ext.disposed)
}
