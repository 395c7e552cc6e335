package corepool

import "fmt"

// PoolError is the error type raised internally by the core. It wraps an
// optional underlying error and supports errors.Unwrap.
type PoolError struct {
	msg string
	err error
}

func (e *PoolError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("corepool: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("corepool: %s", e.msg)
}

func (e *PoolError) Unwrap() error {
	return e.err
}

var (
	// ErrPoolNotRunning is raised by Submit when the pool's state is not
	// Running (either not yet started or already tearing down).
	ErrPoolNotRunning = &PoolError{msg: "pool is not running"}

	// ErrTaskQueueOverflow is raised when a submission could not find
	// space within the policy-defined backpressure window.
	ErrTaskQueueOverflow = &PoolError{msg: "task queue overflow"}

	// ErrInvalidConfig describes a rejected configuration change. The
	// setters in this package do not return it: a setter invoked outside
	// Init, or on a policy that does not support it, logs a diagnostic
	// and discards the change.
	ErrInvalidConfig = &PoolError{msg: "invalid configuration"}
)
