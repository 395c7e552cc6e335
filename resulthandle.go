package gwpool

// ResultHandle is a submitter-visible, one-shot carrier of a task's
// eventual return value. It becomes ready exactly once: either when the
// worker finishes invoking the wrapped callable, or immediately, holding
// the zero value of R, if the submission itself failed.
type ResultHandle[R any] struct {
	ch chan R
}

func newResultHandle[R any]() *ResultHandle[R] {
	return &ResultHandle[R]{ch: make(chan R, 1)}
}

// readyHandle returns a handle that is already resolved to v — used for
// the facade's PoolNotRunning/TaskQueueOverflow fallback path.
func readyHandle[R any](v R) *ResultHandle[R] {
	h := newResultHandle[R]()
	h.ch <- v
	return h
}

func (h *ResultHandle[R]) deliver(v R) {
	h.ch <- v
}

// Get blocks until the result is available and returns it.
func (h *ResultHandle[R]) Get() R {
	return <-h.ch
}
