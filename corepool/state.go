// Package corepool implements the concurrency core shared by every pool
// policy: lifecycle state, the opaque task contract, the spinlock, the
// worker abstraction, and the three scheduling policies themselves
// (fixed, cached, active). Nothing in this package inspects a task body;
// it only dispatches and executes it.
package corepool

import "sync/atomic"

// State is the lifecycle of a pool. Transitions are strictly
// Init -> Running -> Exiting; there are no reverse transitions.
type State int32

const (
	Init State = iota
	Running
	Exiting
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Running:
		return "running"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// lifecycle is embedded by every pool policy. It centralizes the atomic
// state word and the Init-only setter guard so fixed/cached/active don't
// each reimplement checkSetPermission.
type lifecycle struct {
	state atomic.Int32
}

func (l *lifecycle) State() State {
	return State(l.state.Load())
}

func (l *lifecycle) setState(s State) {
	l.state.Store(int32(s))
}

// canConfigure reports whether a setter may still take effect. Setters
// called outside Init are rejected; callers log a diagnostic and discard
// the change.
func (l *lifecycle) canConfigure() bool {
	return l.State() == Init
}
