package extensions

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	query "github.com/pumped-fn/query-go"
)

// LoggingExtension writes one line per operation carrying a sequence number,
// the operation kind and key, the duration, and the outcome. Producers run
// inside the wrapped section, so the duration covers the actual execution,
// not cache hits (those never reach the extension chain).
type LoggingExtension struct {
	query.BaseExtension
	out io.Writer
	seq atomic.Uint64
}

// NewLoggingExtension creates a logging extension writing to stdout.
func NewLoggingExtension() *LoggingExtension {
	return NewLoggingExtensionTo(os.Stdout)
}

// NewLoggingExtensionTo creates a logging extension writing to out.
func NewLoggingExtensionTo(out io.Writer) *LoggingExtension {
	return &LoggingExtension{
		BaseExtension: query.NewBaseExtension("logging"),
		out:           out,
	}
}

// Count returns the number of operations that reached the extension.
func (e *LoggingExtension) Count() uint64 {
	return e.seq.Load()
}

func (e *LoggingExtension) Wrap(ctx context.Context, next func() (any, error), op *query.Operation) (any, error) {
	n := e.seq.Add(1)
	start := time.Now()
	result, err := next()
	elapsed := time.Since(start)

	switch {
	case err != nil:
		fmt.Fprintf(e.out, "[%s] #%d %s %s failed after %v: %v\n", e.Name(), n, op.Kind, op.Key, elapsed, err)
	case op.Kind == query.OpInvalidate:
		fmt.Fprintf(e.out, "[%s] #%d %s %s done in %v\n", e.Name(), n, op.Kind, op.Key, elapsed)
	default:
		fmt.Fprintf(e.out, "[%s] #%d %s %s settled %T in %v\n", e.Name(), n, op.Kind, op.Key, result, elapsed)
	}

	return result, err
}
