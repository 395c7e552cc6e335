package corepool

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultActiveTaskMaxCount is the per-worker static queue capacity
// used when no option overrides it.
const DefaultActiveTaskMaxCount = 500001

// activeWorker owns two FIFO queues, public and private, whose roles
// (not identities) swap when the private side drains. Each queue has
// its own spinlock and atomic counter so a submitter writing the public
// queue never contends with the owning worker draining the private one
// except during the swap itself.
type activeWorker struct {
	id int

	pubLock Spinlock
	pubQ    []Task
	pubCnt  atomic.Int64

	priLock Spinlock
	priQ    []Task
	priCnt  atomic.Int64
}

// giveTask appends to the public queue. This is the only operation a
// submitter performs on a worker; it is O(1) under the public spinlock.
func (w *activeWorker) giveTask(t Task) {
	w.pubLock.Lock()
	w.pubQ = append(w.pubQ, t)
	w.pubCnt.Add(1)
	w.pubLock.Unlock()
}

// trySwapQ swaps the public and private queues' roles once the private
// queue has drained dry, so the worker can keep draining without ever
// touching the queue submitters write to. It returns 0 if the private
// queue still has work, 1 if a swap happened, -1 if both queues are
// empty and the worker should park. Lock order is always pubLock then
// priLock, never reversed anywhere else in this file.
func (w *activeWorker) trySwapQ() int {
	if w.priCnt.Load() > 0 {
		return 0
	}
	if w.pubCnt.Load() == 0 {
		return -1
	}

	w.pubLock.Lock()
	w.priLock.Lock()
	w.pubQ, w.priQ = w.priQ, w.pubQ
	tmp := w.pubCnt.Load()
	w.pubCnt.Store(w.priCnt.Load())
	w.priCnt.Store(tmp)
	w.priLock.Unlock()
	w.pubLock.Unlock()
	return 1
}

// drain runs every task currently in the private queue to completion.
// The private spinlock is held across invocation here — deliberately,
// unlike every other lock in this package — because the private queue
// is touched by exactly one goroutine (this worker's own loop calling
// trySwapQ and drain in strict sequence), so there is never real
// contention to wait out.
func (w *activeWorker) drain() {
	w.priLock.Lock()
	defer w.priLock.Unlock()
	for len(w.priQ) > 0 {
		t := w.priQ[0]
		w.priQ = w.priQ[1:]
		w.priCnt.Add(-1)
		t()
	}
}

func (w *activeWorker) publicTaskCount() int64  { return w.pubCnt.Load() }
func (w *activeWorker) privateTaskCount() int64 { return w.priCnt.Load() }
func (w *activeWorker) taskCount() int64        { return w.pubCnt.Load() + w.priCnt.Load() }

// ActiveOptions configures an ActivePool. Only meaningful in Init.
type ActiveOptions struct {
	TaskMaxCount int
	Logger       Logger
	PanicHandler func(interface{})
}

// ActiveOption mutates an ActiveOptions during construction.
type ActiveOption func(*ActiveOptions)

func WithActiveTaskMaxCount(n int) ActiveOption {
	return func(o *ActiveOptions) { o.TaskMaxCount = n }
}

func WithActiveLogger(l Logger) ActiveOption {
	return func(o *ActiveOptions) { o.Logger = l }
}

func WithActivePanicHandler(h func(interface{})) ActiveOption {
	return func(o *ActiveOptions) { o.PanicHandler = h }
}

// ActivePool dispatches per worker instead of through a central queue:
// submit picks the least-loaded worker's public queue; each worker
// drains its own private queue and swaps roles when it runs dry. There
// is no elastic growth here — the worker count is fixed at Start.
type ActivePool struct {
	lifecycle
	unsupportedSetters

	cfgMu        sync.Mutex
	taskMaxCount int

	initThreadCount int
	workers         []*activeWorker

	mu       sync.Mutex
	notEmpty *sync.Cond

	wg sync.WaitGroup

	logger       Logger
	panicHandler func(interface{})
}

// NewActivePool constructs an ActivePool in Init state.
func NewActivePool(opts ...ActiveOption) *ActivePool {
	o := ActiveOptions{TaskMaxCount: DefaultActiveTaskMaxCount, Logger: NewStdLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	p := &ActivePool{
		taskMaxCount: o.TaskMaxCount,
		logger:       o.Logger,
		panicHandler: o.PanicHandler,
	}
	p.unsupportedSetters = unsupportedSetters{logger: p.logger}
	p.notEmpty = sync.NewCond(&p.mu)
	return p
}

// SetTaskMaxCount overrides the per-worker static queue capacity,
// freezing the value before Start like every other policy's setters.
func (p *ActivePool) SetTaskMaxCount(n int) {
	if !p.canConfigure() {
		p.logger.Errorf("SetTaskMaxCount: cannot configure after start, ignored")
		return
	}
	p.cfgMu.Lock()
	p.taskMaxCount = n
	p.cfgMu.Unlock()
}

// Start transitions to Running and creates initThreadCount workers,
// each with its own pair of queues.
func (p *ActivePool) Start(initThreadCount int) {
	if initThreadCount <= 0 {
		initThreadCount = 4
	}
	p.initThreadCount = initThreadCount
	p.workers = make([]*activeWorker, initThreadCount)

	for i := 0; i < initThreadCount; i++ {
		w := NewWorker()
		aw := &activeWorker{id: w.ID()}
		p.workers[i] = aw
		p.wg.Add(1)
		w.Start(func(id int) { p.workerLoop(aw) })
	}
	p.setState(Running)
}

// Submit dispatches to the worker with the smallest public queue,
// scanning left to right and keeping the first minimum on ties. If the
// minimum is already at capacity, it sleeps 1s, warns, and retries
// once before reporting ErrTaskQueueOverflow.
func (p *ActivePool) Submit(t Task) error {
	if p.State() != Running {
		return ErrPoolNotRunning
	}

	if p.trySubmit(t) {
		p.wakeAll()
		p.logger.Debugf("task submitted")
		return nil
	}

	time.Sleep(time.Second)
	p.logger.Errorf("active pool is busy, retrying after 1s backoff")

	if p.trySubmit(t) {
		p.wakeAll()
		p.logger.Debugf("task submitted")
		return nil
	}

	return ErrTaskQueueOverflow
}

func (p *ActivePool) trySubmit(t Task) bool {
	if len(p.workers) == 0 {
		return false
	}

	minIdx := 0
	minCount := p.workers[0].publicTaskCount()
	for i := 1; i < len(p.workers); i++ {
		c := p.workers[i].publicTaskCount()
		if c < minCount {
			minCount = c
			minIdx = i
		}
	}

	p.cfgMu.Lock()
	taskMax := int64(p.taskMaxCount)
	p.cfgMu.Unlock()

	if minCount >= taskMax {
		return false
	}

	p.workers[minIdx].giveTask(t)
	return true
}

func (p *ActivePool) wakeAll() {
	p.mu.Lock()
	p.notEmpty.Broadcast()
	p.mu.Unlock()
}

func (p *ActivePool) workerLoop(w *activeWorker) {
	defer p.wg.Done()

	for {
		if p.State() == Running && w.trySwapQ() == -1 {
			p.mu.Lock()
			for w.publicTaskCount() == 0 && p.State() != Exiting {
				p.notEmpty.Wait()
			}
			p.mu.Unlock()
		}

		if p.State() == Exiting {
			return
		}

		p.drainWithRecover(w)
	}
}

// drainWithRecover isolates a panicking task the same way Fixed/Cached
// do, without holding the private spinlock across the recover itself
// (the recover wraps the whole drain call, not each task, since drain
// already invokes tasks one at a time under priLock).
func (p *ActivePool) drainWithRecover(w *activeWorker) {
	defer func() {
		if r := recover(); r != nil {
			if p.panicHandler != nil {
				p.panicHandler(r)
			} else {
				p.logger.Errorf("worker %d: task panicked: %v", w.id, r)
			}
		}
	}()
	w.drain()
}

// Stop transitions to Exiting, wakes every parked worker, and blocks
// until all have returned from their loop.
func (p *ActivePool) Stop() {
	p.setState(Exiting)
	p.wakeAll()
	p.wg.Wait()
}

// WorkerCount, PublicTaskCount and TotalTaskCount expose per-worker load
// for tests and diagnostics.
func (p *ActivePool) WorkerCount() int { return len(p.workers) }

func (p *ActivePool) PublicTaskCount(i int) int64 { return p.workers[i].publicTaskCount() }

func (p *ActivePool) TotalTaskCount() int64 {
	var total int64
	for _, w := range p.workers {
		total += w.taskCount()
	}
	return total
}
