package gwpool

import (
	"time"

	"github.com/google/uuid"

	"github.com/corepool/gwpool/corepool"
)

// defaultInitThreadCount is the facade's default initial worker count
// when Start is called with n <= 0.
const defaultInitThreadCount = 4

// Pool is the facade over one of the three scheduling policies. It
// selects Fixed/Cached/Active at construction, forwards configuration
// and lifecycle calls, and boxes typed callables into opaque
// corepool.Task values bound to a ResultHandle.
type Pool[R any] struct {
	mode   Mode
	core   corepool.Pool
	logger Logger
}

// New constructs a Pool backed by the given mode, in Init state. Call
// the Set* methods to configure it, then Start to begin running.
func New[R any](mode Mode, opts ...Option) *Pool[R] {
	o := options{logger: NewStdLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	var core corepool.Pool
	switch mode {
	case Fixed:
		fo := []corepool.FixedOption{corepool.WithFixedLogger(o.logger)}
		if o.panicHandler != nil {
			fo = append(fo, corepool.WithFixedPanicHandler(o.panicHandler))
		}
		core = corepool.NewFixedPool(fo...)
	case Cached:
		co := []corepool.CachedOption{corepool.WithCachedLogger(o.logger)}
		if o.panicHandler != nil {
			co = append(co, corepool.WithCachedPanicHandler(o.panicHandler))
		}
		core = corepool.NewCachedPool(co...)
	case Active:
		ao := []corepool.ActiveOption{corepool.WithActiveLogger(o.logger)}
		if o.panicHandler != nil {
			ao = append(ao, corepool.WithActivePanicHandler(o.panicHandler))
		}
		core = corepool.NewActivePool(ao...)
	default:
		panic("gwpool: unknown mode")
	}

	return &Pool[R]{mode: mode, core: core, logger: o.logger}
}

// SetTaskMaxCount overrides the soft capacity of the pool's queue(s).
// Rejected (diagnostic only) outside Init.
func (p *Pool[R]) SetTaskMaxCount(n int) {
	p.core.SetTaskMaxCount(n)
}

// SetThreadMaxCount overrides the elastic worker ceiling. Only
// meaningful for Cached pools; silently refused (diagnostic only) on
// Fixed and Active, and rejected outside Init on all of them.
func (p *Pool[R]) SetThreadMaxCount(n int) {
	p.core.SetThreadMaxCount(n)
}

// SetThreadIdleTimeout overrides how long an elastically grown worker
// may idle before self-retiring. Only meaningful for Cached pools.
func (p *Pool[R]) SetThreadIdleTimeout(d time.Duration) {
	p.core.SetThreadIdleTimeout(d)
}

// Start transitions the pool to Running and launches initThreadCount
// workers. initThreadCount <= 0 defaults to 4.
func (p *Pool[R]) Start(initThreadCount int) {
	if initThreadCount <= 0 {
		initThreadCount = defaultInitThreadCount
	}
	p.core.Start(initThreadCount)
}

// Stop initiates shutdown and blocks until every worker has exited.
func (p *Pool[R]) Stop() {
	p.core.Stop()
}

// State reports the pool's current lifecycle state.
func (p *Pool[R]) State() corepool.State {
	return p.core.State()
}

// Submit binds fn into an opaque work item and forwards it to the
// underlying pool. If the underlying pool raises ErrPoolNotRunning or
// ErrTaskQueueOverflow, the failure is logged with a correlation id and
// Submit returns a ready handle holding the zero value of R — callers
// never see an in-band error for these two conditions.
func (p *Pool[R]) Submit(fn func() R) *ResultHandle[R] {
	h := newResultHandle[R]()

	task := corepool.Task(func() {
		h.deliver(fn())
	})

	if err := p.core.Submit(task); err != nil {
		id := uuid.NewString()
		p.logger.Errorf("submit rejected (correlation=%s, mode=%s): %v", id, p.mode, err)
		var zero R
		return readyHandle[R](zero)
	}

	return h
}
