package corepool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Defaults for CachedPool.
const (
	DefaultCachedTaskMaxCount   = 1000001
	DefaultCachedMaxThreadCount = 16
	DefaultCachedIdleTimeout    = 30 * time.Second
)

// CachedOptions configures a CachedPool. Only meaningful in Init.
type CachedOptions struct {
	TaskMaxCount     int
	MaxThreadCount   int
	ThreadMaxIdleSec time.Duration
	Logger           Logger
	PanicHandler     func(interface{})
}

// CachedOption mutates a CachedOptions during construction.
type CachedOption func(*CachedOptions)

func WithCachedTaskMaxCount(n int) CachedOption {
	return func(o *CachedOptions) { o.TaskMaxCount = n }
}

func WithCachedMaxThreadCount(n int) CachedOption {
	return func(o *CachedOptions) { o.MaxThreadCount = n }
}

func WithCachedThreadIdleTimeout(d time.Duration) CachedOption {
	return func(o *CachedOptions) { o.ThreadMaxIdleSec = d }
}

func WithCachedLogger(l Logger) CachedOption {
	return func(o *CachedOptions) { o.Logger = l }
}

func WithCachedPanicHandler(h func(interface{})) CachedOption {
	return func(o *CachedOptions) { o.PanicHandler = h }
}

// CachedPool extends the Fixed Pool's shared-queue model with elastic
// worker growth (triggered from inside Submit once the queue backs up)
// and idle-timeout shrink back down to initThreadCount.
type CachedPool struct {
	lifecycle

	cfgMu            sync.Mutex
	taskMaxCount     int
	maxThreadCount   int
	threadMaxIdleSec time.Duration

	queue chan Task

	initThreadCount int
	idleThreadCount atomic.Int64
	curThreadCount  atomic.Int64
	taskCount       atomic.Int64

	growthMu  sync.Mutex // serializes the grow-on-submit and idle-retire decisions
	workersMu sync.Mutex
	workers   map[int]*Worker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger       Logger
	panicHandler func(interface{})
}

// NewCachedPool constructs a CachedPool in Init state.
func NewCachedPool(opts ...CachedOption) *CachedPool {
	o := CachedOptions{
		TaskMaxCount:     DefaultCachedTaskMaxCount,
		MaxThreadCount:   DefaultCachedMaxThreadCount,
		ThreadMaxIdleSec: DefaultCachedIdleTimeout,
		Logger:           NewStdLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &CachedPool{
		taskMaxCount:     o.TaskMaxCount,
		maxThreadCount:   o.MaxThreadCount,
		threadMaxIdleSec: o.ThreadMaxIdleSec,
		logger:           o.Logger,
		panicHandler:     o.PanicHandler,
		workers:          make(map[int]*Worker),
	}
}

func (p *CachedPool) SetTaskMaxCount(n int) {
	if !p.canConfigure() {
		p.logger.Errorf("SetTaskMaxCount: cannot configure after start, ignored")
		return
	}
	p.cfgMu.Lock()
	p.taskMaxCount = n
	p.cfgMu.Unlock()
}

func (p *CachedPool) SetThreadMaxCount(n int) {
	if !p.canConfigure() {
		p.logger.Errorf("SetThreadMaxCount: cannot configure after start, ignored")
		return
	}
	p.cfgMu.Lock()
	p.maxThreadCount = n
	p.cfgMu.Unlock()
}

func (p *CachedPool) SetThreadIdleTimeout(d time.Duration) {
	if !p.canConfigure() {
		p.logger.Errorf("SetThreadIdleTimeout: cannot configure after start, ignored")
		return
	}
	p.cfgMu.Lock()
	p.threadMaxIdleSec = d
	p.cfgMu.Unlock()
}

// Start transitions to Running and launches min(initThreadCount,
// maxThreadCount) workers, matching the original source's clamp.
func (p *CachedPool) Start(initThreadCount int) {
	if initThreadCount <= 0 {
		initThreadCount = 4
	}

	p.cfgMu.Lock()
	taskMax := p.taskMaxCount
	maxThreads := p.maxThreadCount
	p.cfgMu.Unlock()

	if initThreadCount > maxThreads {
		initThreadCount = maxThreads
	}

	p.initThreadCount = initThreadCount
	p.queue = make(chan Task, taskMax)
	p.ctx, p.cancel = context.WithCancel(context.Background())

	for i := 0; i < initThreadCount; i++ {
		p.spawn()
	}
	p.setState(Running)
}

func (p *CachedPool) spawn() *Worker {
	w := NewWorker()
	p.workersMu.Lock()
	p.workers[w.ID()] = w
	p.workersMu.Unlock()
	p.curThreadCount.Add(1)
	p.idleThreadCount.Add(1)
	p.wg.Add(1)
	w.Start(p.workerLoop)
	return w
}

// Submit enqueues a task with the same 1s backpressure wait as Fixed
// Pool, then checks whether the backlog warrants growing the pool.
func (p *CachedPool) Submit(t Task) error {
	if p.State() != Running {
		return ErrPoolNotRunning
	}

	timer := time.NewTimer(submitWait)
	defer timer.Stop()

	select {
	case p.queue <- t:
		p.taskCount.Add(1)
		p.logger.Debugf("task submitted")
	case <-timer.C:
		return ErrTaskQueueOverflow
	}

	p.maybeGrow()
	return nil
}

// maybeGrow implements the cached-mode growth trigger: if there's more
// queued work than idle capacity and room under maxThreadCount, spin up
// one more worker. growthMu serializes concurrent submitters' growth
// decisions so a submission burst doesn't overshoot maxThreadCount.
func (p *CachedPool) maybeGrow() {
	p.growthMu.Lock()
	defer p.growthMu.Unlock()

	p.cfgMu.Lock()
	maxThreads := p.maxThreadCount
	p.cfgMu.Unlock()

	if p.taskCount.Load() > p.idleThreadCount.Load() && p.curThreadCount.Load() < int64(maxThreads) {
		p.spawn()
	}
}

func (p *CachedPool) workerLoop(id int) {
	defer p.wg.Done()
	lastActive := time.Now()

	for {
		p.cfgMu.Lock()
		idleTimeout := p.threadMaxIdleSec
		p.cfgMu.Unlock()

		timer := time.NewTimer(idleTimeout)
		select {
		case <-p.ctx.Done():
			timer.Stop()
			p.retire(id)
			return
		case task := <-p.queue:
			timer.Stop()
			p.runTask(id, task)
			lastActive = time.Now()
		case <-timer.C:
			// Decide and retire under growthMu so workers timing out
			// together cannot all pass the check and drop below
			// initThreadCount.
			p.growthMu.Lock()
			shrink := p.curThreadCount.Load() > int64(p.initThreadCount) && time.Since(lastActive) > idleTimeout
			if shrink {
				p.retire(id)
			}
			p.growthMu.Unlock()
			if shrink {
				return
			}
		}
	}
}

func (p *CachedPool) runTask(id int, task Task) {
	p.idleThreadCount.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			if p.panicHandler != nil {
				p.panicHandler(r)
			} else {
				p.logger.Errorf("worker %d: task panicked: %v", id, r)
			}
		}
		p.taskCount.Add(-1)
		p.idleThreadCount.Add(1)
	}()
	task()
}

func (p *CachedPool) retire(id int) {
	p.workersMu.Lock()
	delete(p.workers, id)
	p.workersMu.Unlock()
	p.curThreadCount.Add(-1)
	p.idleThreadCount.Add(-1)
}

// Stop transitions to Exiting and blocks until every worker — initial
// and elastically grown alike — has retired.
func (p *CachedPool) Stop() {
	p.setState(Exiting)
	p.cancel()
	p.wg.Wait()
}

func (p *CachedPool) CurThreadCount() int64  { return p.curThreadCount.Load() }
func (p *CachedPool) IdleThreadCount() int64 { return p.idleThreadCount.Load() }
func (p *CachedPool) TaskCount() int64       { return p.taskCount.Load() }
