package gwpool

import (
	"testing"
	"time"
)

func TestFixedPoolEcho(t *testing.T) {
	p := New[int](Fixed)
	p.Start(4)
	defer p.Stop()

	h := p.Submit(func() int { return 42 })
	if got := h.Get(); got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
}

func TestCachedPoolElastic(t *testing.T) {
	p := New[string](Cached)
	p.SetThreadMaxCount(8)
	p.SetThreadIdleTimeout(200 * time.Millisecond)
	p.Start(1)
	defer p.Stop()

	handles := make([]*ResultHandle[string], 20)
	for i := range handles {
		i := i
		handles[i] = p.Submit(func() string {
			if i == 0 {
				time.Sleep(50 * time.Millisecond)
			}
			return "ok"
		})
	}

	for i, h := range handles {
		if got := h.Get(); got != "ok" {
			t.Errorf("handle %d Get() = %q, want %q", i, got, "ok")
		}
	}
}

func TestActivePoolDispatch(t *testing.T) {
	p := New[int](Active)
	p.Start(4)
	defer p.Stop()

	const n = 100
	handles := make([]*ResultHandle[int], n)
	for i := range handles {
		i := i
		handles[i] = p.Submit(func() int { return i * i })
	}
	for i, h := range handles {
		if got := h.Get(); got != i*i {
			t.Errorf("handle %d Get() = %d, want %d", i, got, i*i)
		}
	}
}

func TestSubmitBeforeStartReturnsReadyZeroHandle(t *testing.T) {
	p := New[int](Fixed)
	// never started

	h := p.Submit(func() int { return 7 })

	done := make(chan int, 1)
	go func() { done <- h.Get() }()

	select {
	case got := <-done:
		if got != 0 {
			t.Errorf("Get() on a not-running pool's handle = %d, want zero value 0", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Get() on a not-running pool's handle blocked, want an immediately ready zero handle")
	}
}

func TestOverflowReturnsReadyZeroHandle(t *testing.T) {
	p := New[int](Fixed, WithPanicHandler(func(interface{}) {}))
	p.SetTaskMaxCount(1)
	p.Start(1)
	defer p.Stop()

	block := make(chan struct{})
	p.Submit(func() int { <-block; return 1 })
	p.Submit(func() int { return 1 }) // fills the one-slot queue

	start := time.Now()
	h := p.Submit(func() int { return 1 })
	elapsed := time.Since(start)
	close(block)

	if got := h.Get(); got != 0 {
		t.Errorf("Get() on an overflowed submission = %d, want zero value 0", got)
	}
	if elapsed < 900*time.Millisecond {
		t.Errorf("Submit() returned after %v, want ~1s backpressure wait before overflow", elapsed)
	}
}

func TestShutdownDrainsWithinFiveSeconds(t *testing.T) {
	p := New[int](Cached)
	p.Start(4)

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not return within 5s")
	}
}

func TestPolicyMismatchSetterIsADiagnosticNoop(t *testing.T) {
	p := New[int](Fixed)
	// SetThreadMaxCount is meaningless for Fixed; it must not panic and
	// must not block construction/start.
	p.SetThreadMaxCount(99)
	p.Start(2)
	defer p.Stop()

	h := p.Submit(func() int { return 1 })
	if got := h.Get(); got != 1 {
		t.Errorf("Get() = %d, want 1", got)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Fixed, "fixed"},
		{Cached, "cached"},
		{Active, "active"},
		{Mode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
