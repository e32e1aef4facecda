package query

import "context"

// Query wraps a producer with fixed arguments behind loading/error/data
// state and a keyed result cache. The argument list and options are fixed at
// setup time; Fetch and Refetch re-enter the same execution cycle.
type Query[R any] struct {
	ctrl *controller[R]
}

// NewQuery creates a query on the given client. Caching defaults to enabled;
// disable it with WithoutCache.
func NewQuery[R any](c *Client, fn Producer[R], opts ...Option) *Query[R] {
	return &Query[R]{ctrl: newController(c, OpFetch, fn, opts...)}
}

// Fetch executes one cycle: cache lookup, producer invocation on a miss,
// state publication, write-through on success. Errors are never returned to
// the caller's control flow; they are captured in the returned state.
func (q *Query[R]) Fetch(ctx context.Context) State[R] {
	return q.ctrl.run(ctx, q.ctrl.opts.args)
}

// Refetch re-executes the query. With caching enabled and a live entry this
// is a cache hit, not a producer invocation; use Reload to force one.
func (q *Query[R]) Refetch(ctx context.Context) State[R] {
	return q.Fetch(ctx)
}

// Go launches Fetch on its own goroutine. Observers follow the published
// state via Subscribe or State.
func (q *Query[R]) Go(ctx context.Context) {
	go q.ctrl.run(ctx, q.ctrl.opts.args)
}

// Reload invalidates this query's cache entry and immediately re-fetches.
func (q *Query[R]) Reload(ctx context.Context) State[R] {
	q.ctrl.client.Invalidate(ctx, q.Key())
	return q.Fetch(ctx)
}

// Peek returns the cached value for this query's key without executing.
func (q *Query[R]) Peek() (R, bool) {
	cached, ok := q.ctrl.client.Store().Get(q.Key())
	if !ok {
		var zero R
		return zero, false
	}
	value, err := ValueAs[R](cached)
	if err != nil {
		var zero R
		return zero, false
	}
	return value, true
}

// Key returns the cache key this query addresses.
func (q *Query[R]) Key() string {
	return q.ctrl.keyFor(q.ctrl.opts.args)
}

// State returns a snapshot of the current published state.
func (q *Query[R]) State() State[R] {
	return q.ctrl.State()
}

// Subscribe registers a listener invoked on every publication.
func (q *Query[R]) Subscribe(fn func(State[R])) {
	q.ctrl.Subscribe(fn)
}

// Binding returns the query's lifecycle guard.
func (q *Query[R]) Binding() *Binding {
	return q.ctrl.binding
}

// Detach tears down the observing context. Later publications are dropped;
// an in-flight producer keeps running and still writes through on success.
func (q *Query[R]) Detach() {
	q.ctrl.binding.Detach()
}

// Mutation wraps a producer whose argument list is supplied per call.
// Caching is an opt-out: successful mutations write through under the key
// derived from the per-call arguments unless WithoutCache is set.
type Mutation[R any] struct {
	ctrl *controller[R]
}

// NewMutation creates a mutation on the given client.
func NewMutation[R any](c *Client, fn Producer[R], opts ...Option) *Mutation[R] {
	return &Mutation[R]{ctrl: newController(c, OpMutate, fn, opts...)}
}

// Mutate executes the producer with the supplied arguments. The optional
// WithOnSuccess callback is invoked synchronously with the resolved value
// before the data publication.
func (m *Mutation[R]) Mutate(ctx context.Context, args ...any) State[R] {
	return m.ctrl.run(ctx, args)
}

// Go launches Mutate on its own goroutine.
func (m *Mutation[R]) Go(ctx context.Context, args ...any) {
	go m.ctrl.run(ctx, args)
}

// State returns a snapshot of the current published state.
func (m *Mutation[R]) State() State[R] {
	return m.ctrl.State()
}

// Subscribe registers a listener invoked on every publication.
func (m *Mutation[R]) Subscribe(fn func(State[R])) {
	m.ctrl.Subscribe(fn)
}

// Binding returns the mutation's lifecycle guard.
func (m *Mutation[R]) Binding() *Binding {
	return m.ctrl.binding
}

// Detach tears down the observing context.
func (m *Mutation[R]) Detach() {
	m.ctrl.binding.Detach()
}

// Async pairs a callable with a co-located, independently observable state
// handle. Call executes the wrapped producer with per-call arguments; State
// is read separately from invoking the callable.
type Async[R any] struct {
	ctrl *controller[R]
}

// NewAsync creates an async wrapper on the given client.
func NewAsync[R any](c *Client, fn Producer[R], opts ...Option) *Async[R] {
	return &Async[R]{ctrl: newController(c, OpFetch, fn, opts...)}
}

// Call executes one cycle with the supplied arguments.
func (a *Async[R]) Call(ctx context.Context, args ...any) State[R] {
	return a.ctrl.run(ctx, args)
}

// Go launches Call on its own goroutine.
func (a *Async[R]) Go(ctx context.Context, args ...any) {
	go a.ctrl.run(ctx, args)
}

// State returns a snapshot of the current published state.
func (a *Async[R]) State() State[R] {
	return a.ctrl.State()
}

// Subscribe registers a listener invoked on every publication.
func (a *Async[R]) Subscribe(fn func(State[R])) {
	a.ctrl.Subscribe(fn)
}

// Detach tears down the observing context.
func (a *Async[R]) Detach() {
	a.ctrl.binding.Detach()
}

// Suspense is the query variant without loading tracking: absence of data
// and absence of error is the implicit pending state. Await blocks until the
// state settles.
type Suspense[R any] struct {
	ctrl *controller[R]
}

// NewSuspense creates a suspense query on the given client.
func NewSuspense[R any](c *Client, fn Producer[R], opts ...Option) *Suspense[R] {
	ctrl := newController(c, OpFetch, fn, opts...)
	ctrl.opts.trackLoading = false
	return &Suspense[R]{ctrl: ctrl}
}

// Await returns the settled result, executing the producer first if the
// state is still pending. The error is the published one; it is not
// propagated anywhere else.
func (s *Suspense[R]) Await(ctx context.Context) (R, error) {
	st := s.ctrl.State()
	if !st.Ok && st.Err == nil {
		st = s.ctrl.run(ctx, s.ctrl.opts.args)
	}
	if st.Err != nil {
		var zero R
		return zero, st.Err
	}
	return st.Data, nil
}

// Refetch re-executes the suspense query.
func (s *Suspense[R]) Refetch(ctx context.Context) (R, error) {
	st := s.ctrl.run(ctx, s.ctrl.opts.args)
	if st.Err != nil {
		var zero R
		return zero, st.Err
	}
	return st.Data, nil
}

// State returns a snapshot of the current published state. Loading is never
// tracked for suspense queries.
func (s *Suspense[R]) State() State[R] {
	return s.ctrl.State()
}

// Key returns the cache key this query addresses.
func (s *Suspense[R]) Key() string {
	return s.ctrl.keyFor(s.ctrl.opts.args)
}

// Detach tears down the observing context.
func (s *Suspense[R]) Detach() {
	s.ctrl.binding.Detach()
}
