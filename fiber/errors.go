package fiber

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage is wrapped by every usage error. Usage errors are never retried.
	ErrUsage = errors.New("invalid usage")

	// ErrHookOutsideRender indicates a hook was called without an active render
	ErrHookOutsideRender = errors.New("hook called outside of a component render")

	// ErrHookCountChanged indicates a component called a different number of
	// hooks than on its previous render
	ErrHookCountChanged = errors.New("hook count changed between renders")

	// ErrUnsupportedChild indicates a child value reconciliation cannot handle
	ErrUnsupportedChild = errors.New("unsupported child")

	// ErrNoRoot indicates an update was scheduled on a node that is not
	// attached to a root
	ErrNoRoot = errors.New("node is not attached to a root")

	// ErrTooManyNestedUpdates indicates updates kept being scheduled from
	// inside render or commit passes
	ErrTooManyNestedUpdates = errors.New("too many nested updates")

	// ErrFlushDuringPass indicates a synchronous flush was requested from
	// inside a render or commit pass
	ErrFlushDuringPass = errors.New("flush requested during a pass")

	// ErrUnbalancedBatch indicates EndBatch was called more often than
	// StartBatch
	ErrUnbalancedBatch = errors.New("EndBatch without StartBatch")
)

// UsageError is an invariant violation by the caller. It aborts the pass and
// is surfaced as is.
type UsageError struct {
	Err    error
	Detail string
}

func (e *UsageError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %v", ErrUsage, e.Err)
	}
	return fmt.Sprintf("%v: %v: %s", ErrUsage, e.Err, e.Detail)
}

func (e *UsageError) Unwrap() []error {
	return []error{ErrUsage, e.Err}
}

func usageErrorf(err error, format string, args ...any) *UsageError {
	return &UsageError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// RenderError reports a render pass that failed and was abandoned. The
// committed tree is unchanged.
type RenderError struct {
	Attempts int
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render pass failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking component.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic during render: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsUsageError reports whether err is, or wraps, a usage error.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUsage)
}
