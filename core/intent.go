package core

import (
	"context"
	"reflect"
	"runtime"
	"strings"
)

// Operation is the unit of work: an asynchronous callable producing a typed
// result or failing. The engine does not know or care how the operation is
// implemented.
//
// The context passed to the operation is cancelled when the execution deadline
// expires, so cooperative operations can stop early. The engine never waits
// for a timed-out operation to observe the cancellation (see Execute).
type Operation[T any] func(ctx context.Context) (T, error)

// Reply receives the outcome of an asynchronous execution started with
// ExecuteAndReply. It runs on the execution goroutine after the operation has
// fully completed, so it always sees the final result and error.
type Reply[T any] func(result T, err error)

// =============================================================================
// Intent type resolution
// =============================================================================

// resolveIntentType returns the metrics key for an operation. The explicit
// name supplied by the caller wins; otherwise the operation's function name is
// used, falling back to "anonymous".
func resolveIntentType[T any](op Operation[T], explicit string) string {
	if explicit != "" {
		return explicit
	}

	if op == nil {
		return "anonymous"
	}

	v := reflect.ValueOf(op)
	if v.Kind() != reflect.Func {
		return "anonymous"
	}

	pc := v.Pointer()
	if pc == 0 {
		return "anonymous"
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "anonymous"
	}

	name := fn.Name()
	if name == "" {
		return "anonymous"
	}

	// Trim the package path so the key stays readable as a metrics label.
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
