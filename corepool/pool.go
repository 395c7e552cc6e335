package corepool

import "time"

// Pool is the contract every scheduling policy satisfies. The root
// gwpool package's facade selects one implementation at construction and
// forwards every call to it.
type Pool interface {
	State() State

	SetTaskMaxCount(n int)
	SetThreadMaxCount(n int)
	SetThreadIdleTimeout(d time.Duration)

	Start(initThreadCount int)
	Submit(t Task) error
	Stop()
}

// unsupportedSetters backs the policy-mismatch diagnostics BasePool
// gives by default in the original source: SetThreadMaxCount and
// SetThreadIdleTimeout only mean something in the elastic (cached)
// policy. Fixed and Active embed this to get the same "logged and
// discarded" behavior without repeating it.
type unsupportedSetters struct {
	logger Logger
}

func (u unsupportedSetters) SetThreadMaxCount(n int) {
	u.logger.Errorf("Unsupported operation!")
}

func (u unsupportedSetters) SetThreadIdleTimeout(d time.Duration) {
	u.logger.Errorf("Unsupported operation!")
}
