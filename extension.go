package query

import "context"

// Extension provides hooks into the execution lifecycle
type Extension interface {
	// Name returns the extension's name
	Name() string

	// Order determines extension execution order (lower = earlier)
	Order() int

	// Init is called when the extension is registered to a client
	Init(c *Client) error

	// Wrap intercepts operations (fetch, mutate, invalidate)
	Wrap(ctx context.Context, next func() (any, error), op *Operation) (any, error)

	// OnError handles errors during execution
	OnError(err error, op *Operation, c *Client)

	// Dispose is called when the client is disposed
	Dispose(c *Client) error
}

// BaseExtension provides default implementations for Extension methods
type BaseExtension struct {
	name string
}

// NewBaseExtension creates a new base extension with the given name
func NewBaseExtension(name string) BaseExtension {
	return BaseExtension{name: name}
}

func (e *BaseExtension) Name() string {
	return e.name
}

func (e *BaseExtension) Order() int {
	return 100
}

func (e *BaseExtension) Init(c *Client) error {
	return nil
}

func (e *BaseExtension) Wrap(ctx context.Context, next func() (any, error), op *Operation) (any, error) {
	return next()
}

func (e *BaseExtension) OnError(err error, op *Operation, c *Client) {
}

func (e *BaseExtension) Dispose(c *Client) error {
	return nil
}

// Operation describes what operation is happening
type Operation struct {
	Kind   OperationKind
	Key    string
	Client *Client
}

// OperationKind represents the type of operation
type OperationKind string

const (
	// OpFetch indicates a query fetch
	OpFetch OperationKind = "fetch"
	// OpMutate indicates a mutation
	OpMutate OperationKind = "mutate"
	// OpInvalidate indicates a cache invalidation
	OpInvalidate OperationKind = "invalidate"
)
