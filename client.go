package query

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Client owns the injected result cache and the extension list, and tracks
// the live bindings of every controller created through it. The default
// client shares DefaultStore; tests construct their own client with their
// own store for isolation.
type Client struct {
	mu         sync.RWMutex
	store      *Store
	extensions []Extension
	bindings   map[*Binding]struct{}
}

// ClientOption is a modifier for clients
type ClientOption func(*Client)

// WithStore returns an option that injects a result cache into a client
func WithStore(store *Store) ClientOption {
	return func(c *Client) {
		c.store = store
	}
}

// WithExtension returns an option that registers an extension to a client
func WithExtension(ext Extension) ClientOption {
	return func(c *Client) {
		if err := c.UseExtension(ext); err != nil {
			panic(err)
		}
	}
}

// NewClient creates a new client with optional configuration
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		store:      DefaultStore(),
		extensions: []Extension{},
		bindings:   make(map[*Binding]struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var (
	defaultClientOnce sync.Once
	defaultClient     *Client
)

// Default returns the shared default client backed by DefaultStore.
func Default() *Client {
	defaultClientOnce.Do(func() {
		defaultClient = NewClient()
	})
	return defaultClient
}

// Store returns the client's result cache.
func (c *Client) Store() *Store {
	return c.store
}

// UseExtension registers an extension to the client
func (c *Client) UseExtension(ext Extension) error {
	c.mu.Lock()
	c.extensions = append(c.extensions, ext)
	sort.Slice(c.extensions, func(i, j int) bool {
		return c.extensions[i].Order() < c.extensions[j].Order()
	})
	c.mu.Unlock()

	return ext.Init(c)
}

// Attach creates a lifecycle binding tracked by the client. The binding
// unregisters itself on detach.
func (c *Client) Attach() *Binding {
	b := newBinding()

	c.mu.Lock()
	c.bindings[b] = struct{}{}
	c.mu.Unlock()

	b.OnDetach(func() {
		c.mu.Lock()
		delete(c.bindings, b)
		c.mu.Unlock()
	})

	return b
}

// Invalidate removes entries from the client's cache, routing each removal
// through the extension chain as an OpInvalidate operation.
func (c *Client) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		op := &Operation{
			Kind:   OpInvalidate,
			Key:    key,
			Client: c,
		}
		_, _ = c.wrap(ctx, op, func() (any, error) {
			c.store.InvalidateKey(key)
			return nil, nil
		})
	}
}

// wrap chains extensions around an operation (middleware pattern): last
// registered wraps first, errors are reported to every extension's OnError.
func (c *Client) wrap(ctx context.Context, op *Operation, next func() (any, error)) (any, error) {
	c.mu.RLock()
	exts := make([]Extension, len(c.extensions))
	copy(exts, c.extensions)
	c.mu.RUnlock()

	for i := len(exts) - 1; i >= 0; i-- {
		ext := exts[i]
		currentNext := next
		next = func() (any, error) {
			return ext.Wrap(ctx, currentNext, op)
		}
	}

	result, err := next()
	if err != nil {
		for _, ext := range exts {
			ext.OnError(err, op, c)
		}
	}
	return result, err
}

// Dispose detaches every live binding (running their cleanups) and disposes
// all extensions.
func (c *Client) Dispose() error {
	c.mu.Lock()
	bindings := make([]*Binding, 0, len(c.bindings))
	for b := range c.bindings {
		bindings = append(bindings, b)
	}
	c.mu.Unlock()

	for _, b := range bindings {
		b.Detach()
	}

	c.mu.RLock()
	exts := make([]Extension, len(c.extensions))
	copy(exts, c.extensions)
	c.mu.RUnlock()

	for _, ext := range exts {
		if err := ext.Dispose(c); err != nil {
			return fmt.Errorf("disposing extension %s: %w", ext.Name(), err)
		}
	}

	return nil
}
