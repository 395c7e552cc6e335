// Package gwpool is a general-purpose, in-process task execution pool.
// It offers three interchangeable scheduling policies — Fixed, Cached
// (elastic) and Active (per-worker dual-queue dispatch) — behind a
// single typed Submit that returns a ResultHandle for the eventual
// result of each submitted callable.
//
// The concurrency core — lifecycle state, the queue structures, worker
// creation/idle-reaping/shutdown, and the active pool's dual-queue swap
// protocol — lives in the corepool subpackage. This package is the thin
// facade: it selects a policy at construction, binds typed callables
// into opaque work items, and converts lifecycle/overflow failures into
// a logged diagnostic plus a ready zero-value handle so Submit never
// surprises a caller with an in-band error.
//
//	p := gwpool.New[int](gwpool.Fixed)
//	p.Start(4)
//	defer p.Stop()
//	h := p.Submit(func() int { return 42 })
//	fmt.Println(h.Get())
package gwpool
