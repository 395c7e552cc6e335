package gwpool

import "github.com/corepool/gwpool/corepool"

// Mode selects which scheduling policy a Pool is backed by.
type Mode int

const (
	// Fixed is a shared-queue pool with a constant worker count.
	Fixed Mode = iota
	// Cached is a shared-queue pool with elastic worker growth and
	// idle-timeout shrink.
	Cached
	// Active is a per-worker dual-queue pool; submitters target the
	// least-loaded worker.
	Active
)

func (m Mode) String() string {
	switch m {
	case Fixed:
		return "fixed"
	case Cached:
		return "cached"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Logger is the diagnostic sink used by the facade and the underlying
// pool for rejected setters, overload warnings and panic isolation.
type Logger = corepool.Logger

// NewStdLogger returns a Logger backed by the standard library's log
// package, writing to stderr.
func NewStdLogger() Logger {
	return corepool.NewStdLogger()
}

// options holds construction-time facade configuration. TaskMaxCount,
// ThreadMaxCount and ThreadIdleTimeout are deliberately not here — they
// are set via the Pool's own SetTaskMaxCount/SetThreadMaxCount/
// SetThreadIdleTimeout methods post-construction instead, so they can
// be reconfigured (while still Init) without rebuilding the Pool.
type options struct {
	logger       Logger
	panicHandler func(interface{})
}

// Option configures a Pool at construction time.
type Option func(*options)

// WithLogger overrides the default stderr logger.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPanicHandler installs a handler invoked when a submitted task
// panics, instead of the default behavior of logging the panic and
// keeping the worker alive.
func WithPanicHandler(h func(interface{})) Option {
	return func(o *options) { o.panicHandler = h }
}
