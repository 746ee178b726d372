package dispatchz

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Option customises a Dispatcher.
type Option func(*options)

type options struct {
	logger    Logger
	clock     clockz.Clock
	panicHook func(record Record, r interface{})
	id        string
	config    Config
}

// WithCapacity sets the maximum number of outstanding records.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.config.Capacity = capacity
	}
}

// WithWarningInterval sets the minimum time between overflow warnings.
func WithWarningInterval(interval time.Duration) Option {
	return func(o *options) {
		o.config.WarningInterval = interval
	}
}

// WithDrainOnStop makes Stop deliver every queued record before returning.
func WithDrainOnStop(drain bool) Option {
	return func(o *options) {
		o.config.DrainOnStop = drain
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock sets the clock used to rate-limit warnings.
// Enables clock injection for deterministic testing.
func WithClock(clock clockz.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithPanicHook sets a function called when the consumer panics.
// It runs on the dispatcher goroutine after the panic has been logged.
func WithPanicHook(hook func(record Record, r interface{})) Option {
	return func(o *options) {
		o.panicHook = hook
	}
}

// WithID sets the identifier attached to log messages.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}
