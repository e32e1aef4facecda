package query

import (
	"context"
	"sync"
)

// Producer is the caller-supplied function whose result is fetched, cached,
// or mutated. It may block for as long as it likes; there is no cooperative
// cancellation of a running producer beyond what it does with ctx itself.
type Producer[R any] func(ctx context.Context, args ...any) (R, error)

// State is the published execution state of one controller. Data is only
// meaningful when Ok is true; a failed execution leaves Data untouched from
// any prior successful run.
type State[R any] struct {
	Data    R
	Ok      bool
	Loading bool
	Err     error
}

type options struct {
	label        string
	key          string
	args         []any
	useCache     bool
	trackLoading bool
	kind         OperationKind
	onSuccess    func(any)
}

// Option is a modifier for queries, mutations and async wrappers
type Option func(*options)

// WithLabel sets the producer identity used for key derivation. Recommended
// over relying on the function-name fallback, which is unstable across
// refactors.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithKey sets an explicit cache key, used verbatim; structural key
// derivation is skipped entirely.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithArgs fixes the argument list passed to the producer on every fetch.
func WithArgs(args ...any) Option {
	return func(o *options) {
		o.args = args
	}
}

// WithoutCache disables the result cache for this controller: every
// execution invokes the producer and nothing is written through.
func WithoutCache() Option {
	return func(o *options) {
		o.useCache = false
	}
}

// WithOnSuccess registers a callback invoked synchronously with the resolved
// value before the data publication. Mutation variant only: queries, async
// wrappers and suspense queries drop it. Also ignored when the resolved
// value is not of type R.
func WithOnSuccess[R any](fn func(R)) Option {
	return func(o *options) {
		o.onSuccess = func(v any) {
			if typed, ok := v.(R); ok {
				fn(typed)
			}
		}
	}
}

// controller drives one fetch/mutate cycle: cache lookup, producer
// invocation, state publication, error normalization, write-through. Each
// instance exclusively owns its State and its Binding; two controllers
// sharing a cache key share nothing else.
type controller[R any] struct {
	client  *Client
	binding *Binding
	fn      Producer[R]
	opts    options

	mu    sync.Mutex
	state State[R]
	subs  []func(State[R])
}

func newController[R any](c *Client, kind OperationKind, fn Producer[R], opts ...Option) *controller[R] {
	o := options{
		useCache:     true,
		trackLoading: true,
		kind:         kind,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.label == "" {
		o.label = ProducerName(fn)
	}
	// The success callback is a mutation-only contract.
	if o.kind != OpMutate {
		o.onSuccess = nil
	}

	return &controller[R]{
		client:  c,
		binding: c.Attach(),
		fn:      fn,
		opts:    o,
	}
}

func (ct *controller[R]) keyFor(args []any) string {
	if ct.opts.key != "" {
		return ct.opts.key
	}
	return GenerateKey(ct.opts.label, args...)
}

// publish applies a state transition and notifies subscribers. Publications
// after detach are dropped.
func (ct *controller[R]) publish(mutate func(*State[R])) {
	if !ct.binding.Live() {
		return
	}

	ct.mu.Lock()
	mutate(&ct.state)
	snapshot := ct.state
	subs := make([]func(State[R]), len(ct.subs))
	copy(subs, ct.subs)
	ct.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// run executes one cycle and returns the settled state. The returned state is
// computed locally so callers observe the outcome even when the binding
// detached mid-flight and publications were dropped.
func (ct *controller[R]) run(ctx context.Context, args []any) State[R] {
	key := ct.keyFor(args)

	if ct.opts.useCache {
		if cached, ok := ct.client.Store().Get(key); ok {
			if value, err := ValueAs[R](cached); err == nil {
				ct.publish(func(s *State[R]) {
					s.Data = value
					s.Ok = true
					s.Err = nil
					s.Loading = false
				})
				return State[R]{Data: value, Ok: true}
			}
			// Entry of a foreign type under this key: treat as a miss.
		}
	}

	prev := ct.State()

	if ct.opts.trackLoading {
		ct.publish(func(s *State[R]) {
			s.Loading = true
			s.Err = nil
		})
	} else {
		ct.publish(func(s *State[R]) {
			s.Err = nil
		})
	}

	value, err := ct.invoke(ctx, key, args)

	var final State[R]
	if err != nil {
		ct.publish(func(s *State[R]) {
			s.Err = err
		})
		final = State[R]{Data: prev.Data, Ok: prev.Ok, Err: err}
	} else {
		// Write-through happens regardless of liveness: a detached but
		// successful fetch still updates the shared cache.
		if ct.opts.useCache {
			ct.client.Store().Set(key, value)
		}
		if ct.opts.onSuccess != nil {
			ct.opts.onSuccess(value)
		}
		ct.publish(func(s *State[R]) {
			s.Data = value
			s.Ok = true
			s.Err = nil
		})
		final = State[R]{Data: value, Ok: true}
	}

	if ct.opts.trackLoading {
		ct.publish(func(s *State[R]) {
			s.Loading = false
		})
	}

	return final
}

// invoke calls the producer through the extension chain, converting panics
// into the normalized error representation.
func (ct *controller[R]) invoke(ctx context.Context, key string, args []any) (R, error) {
	op := &Operation{
		Kind:   ct.opts.kind,
		Key:    key,
		Client: ct.client,
	}

	result, err := ct.client.wrap(ctx, op, func() (out any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = normalizeRecovered(r)
			}
		}()
		return ct.fn(ctx, args...)
	})
	if err != nil {
		var zero R
		return zero, err
	}

	return ValueAs[R](result)
}

// State returns a snapshot of the current published state.
func (ct *controller[R]) State() State[R] {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.state
}

// Subscribe registers a listener invoked on every publication.
func (ct *controller[R]) Subscribe(fn func(State[R])) {
	ct.mu.Lock()
	ct.subs = append(ct.subs, fn)
	ct.mu.Unlock()
}
