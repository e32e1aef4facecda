// Package query provides a client-side data-fetching and lightweight state
// layer: keyed result caching, query/mutation execution with
// loading/error/data state, lifecycle-safe publication, and a minimal
// reactive value container.
//
// # Overview
//
// Query organizes code around four core concepts:
//
//  1. Queries and mutations: producer functions wrapped with execution state
//  2. The store: a process-wide, unbounded cache keyed by derived string keys
//  3. Bindings: lifecycle guards that drop publications after detach
//  4. Cells and atoms: externally settable value containers outside the cache
//
// # Basic Usage
//
// Create a query over a producer function:
//
//	client := query.NewClient()
//
//	users := query.NewQuery(client,
//	    func(ctx context.Context, args ...any) ([]User, error) {
//	        return loadUsers(ctx, args[0].(string))
//	    },
//	    query.WithLabel("users"),
//	    query.WithArgs("team-a"),
//	)
//
//	state := users.Fetch(ctx)
//	if state.Err != nil { ... }
//	fmt.Println(state.Data)
//
// Errors are never returned to the caller's control flow; they are captured
// and published as part of the state.
//
// # Cache Keys
//
// Keys are derived as "{identity}-{json(args)}". The identity is the
// WithLabel value, falling back to the producer's runtime function name.
// Deep-equal argument lists always derive the same key. An explicit
// WithKey value is used verbatim and skips derivation entirely:
//
//	q := query.NewQuery(client, fn, query.WithKey("users:team-a"))
//
// # Caching Semantics
//
// Caching is strictly cache-first: a hit publishes the cached value and never
// invokes the producer. A successful execution writes through, overwriting
// the prior entry; a failed execution never writes. There is no TTL, no
// capacity bound, and no coalescing of concurrent in-flight executions for
// one key: the last settlement wins.
//
//	query.InvalidateKey("users:team-a")
//	query.InvalidateKeys([]string{"a", "b"})
//	query.ClearCache()
//
// # Mutations
//
// Mutations take their arguments per call and support a success callback:
//
//	save := query.NewMutation(client, saveUser,
//	    query.WithOnSuccess(func(u User) { log.Println("saved", u.ID) }),
//	)
//	save.Mutate(ctx, user)
//
// # Lifecycle
//
// Every query owns a Binding. Detach is idempotent and suppresses later
// publications without stopping the producer; a detached but successful
// fetch still writes through to the shared cache:
//
//	users.Go(ctx)
//	users.Detach() // pending resolution publishes nothing
//
// # Suspense
//
// The suspense variant tracks no loading flag; Await blocks until the state
// settles:
//
//	user, err := query.NewSuspense(client, fetchUser).Await(ctx)
//
// # Cells and Atoms
//
// Cells hold non-fetched state; atoms are identity-tagged snapshots:
//
//	count := query.NewCell(0)
//	count.Set(5)
//	snap := count.Atom()     // read-only capture with a unique ID
//	local := query.FromAtom(snap) // independent cell, one-time seed
//	count.Reset()
//
// # Extensions
//
// Extensions provide cross-cutting concerns through lifecycle hooks:
//
//	type LoggingExtension struct {
//	    query.BaseExtension
//	}
//
//	func (e *LoggingExtension) Wrap(ctx context.Context, next func() (any, error), op *query.Operation) (any, error) {
//	    log.Printf("starting %s %s", op.Kind, op.Key)
//	    result, err := next()
//	    log.Printf("finished %s %s", op.Kind, op.Key)
//	    return result, err
//	}
//
//	client := query.NewClient(
//	    query.WithExtension(&LoggingExtension{
//	        BaseExtension: query.NewBaseExtension("logging"),
//	    }),
//	)
//
// # Testing with Stores
//
// The default client shares one process-wide store. Tests construct their
// own for isolation:
//
//	store := query.NewStore()
//	client := query.NewClient(query.WithStore(store))
//
// # Thread Safety
//
// All operations are safe for concurrent use: stores can be accessed from
// multiple goroutines, controllers publish under their own lock, and
// Parallel runs tasks concurrently. No ordering is guaranteed across
// independent controllers sharing a cache key.
package query
