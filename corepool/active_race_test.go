package corepool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestActiveWorker_RaceConditions hammers giveTask, trySwapQ and drain
// from many goroutines at once. It exists to be run under -race: the
// per-role spinlocks and the pubCnt/priCnt atomics are the one place in
// this package where a lock-ordering mistake would show up as silent
// data corruption rather than a deadlock.
func TestActiveWorker_RaceConditions(t *testing.T) {
	w := &activeWorker{}

	t.Run("ConcurrentGiveTask", func(t *testing.T) {
		var counter int64
		var wg sync.WaitGroup

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 200; j++ {
					w.giveTask(func() { atomic.AddInt64(&counter, 1) })
				}
			}()
		}
		wg.Wait()

		if got := w.publicTaskCount(); got != 2000 {
			t.Errorf("publicTaskCount() = %d, want 2000", got)
		}
	})

	t.Run("ConcurrentSwapAndDrainAgainstGiveTask", func(t *testing.T) {
		w := &activeWorker{}
		stop := make(chan struct{})
		var producers sync.WaitGroup
		var produced int64

		for i := 0; i < 4; i++ {
			producers.Add(1)
			go func() {
				defer producers.Done()
				for {
					select {
					case <-stop:
						return
					default:
						w.giveTask(func() {})
						atomic.AddInt64(&produced, 1)
					}
				}
			}()
		}

		var drained int64
		done := make(chan struct{})
		go func() {
			defer close(done)
			deadline := time.Now().Add(200 * time.Millisecond)
			for time.Now().Before(deadline) {
				switch w.trySwapQ() {
				case 1:
					w.priLock.Lock()
					n := int64(len(w.priQ))
					w.priLock.Unlock()
					w.drain()
					atomic.AddInt64(&drained, n)
				default:
					time.Sleep(time.Millisecond)
				}
			}
		}()

		<-done
		close(stop)
		producers.Wait()

		// Drain whatever is left after producers stop.
		for {
			if w.trySwapQ() != 1 {
				break
			}
			w.priLock.Lock()
			n := int64(len(w.priQ))
			w.priLock.Unlock()
			w.drain()
			atomic.AddInt64(&drained, n)
		}

		if drained != produced {
			t.Errorf("drained %d tasks, produced %d (tasks lost or double-counted under concurrent swap/drain)", drained, produced)
		}
	})
}

// TestActivePool_StopRace starts and stops an ActivePool repeatedly
// while tasks are in flight, the way TestAsyncWorkerPool_StopRace does
// for the async pool.
func TestActivePool_StopRace(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := NewActivePool()
		p.Start(4)

		var wg sync.WaitGroup
		for j := 0; j < 50; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Submit(func() {})
			}()
		}

		wg.Wait()
		p.Stop()
	}
}

// TestActivePool_HighConcurrency submits from many goroutines at once
// against a small worker count.
func TestActivePool_HighConcurrency(t *testing.T) {
	p := NewActivePool(WithActiveTaskMaxCount(10000))
	p.Start(4)
	defer p.Stop()

	const submitters = 20
	const perSubmitter = 100

	var completed int64
	var wg sync.WaitGroup
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perSubmitter; j++ {
				var inner sync.WaitGroup
				inner.Add(1)
				err := p.Submit(func() {
					defer inner.Done()
					atomic.AddInt64(&completed, 1)
				})
				if err != nil {
					inner.Done()
					continue
				}
				inner.Wait()
			}
		}()
	}
	wg.Wait()

	want := int64(submitters * perSubmitter)
	if completed != want {
		t.Errorf("completed %d tasks, want %d", completed, want)
	}
}
