package dispatchz

import (
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
)

// Warner decides whether an overflow warning may be emitted now.
// It grants at most one warning per interval, regardless of how many
// goroutines ask. Safe for concurrent use.
type Warner struct {
	epoch      time.Time
	clock      clockz.Clock
	interval   int64
	next       atomic.Int64 // Nanoseconds since epoch when the next grant is allowed.
	suppressed atomic.Uint64
}

// NewWarner creates a warner with the given minimum interval between grants.
// A zero interval grants every call. A nil clock uses the real clock.
func NewWarner(interval time.Duration, clock clockz.Clock) *Warner {
	if clock == nil {
		clock = clockz.RealClock
	}
	if interval < 0 {
		interval = 0
	}
	return &Warner{
		epoch:    clock.Now(),
		clock:    clock,
		interval: int64(interval),
	}
}

// ShouldWarnNow reports whether the caller may log a warning.
// The marker only moves forward when a warning is granted.
func (w *Warner) ShouldWarnNow() bool {
	now := int64(w.clock.Since(w.epoch))
	for {
		next := w.next.Load()
		if now < next {
			w.suppressed.Add(1)
			return false
		}
		if w.next.CompareAndSwap(next, now+w.interval) {
			return true
		}
		// Another goroutine won the grant; re-check against its marker.
	}
}

// Suppressed returns the number of denied calls since the last reset.
func (w *Warner) Suppressed() uint64 {
	return w.suppressed.Load()
}

// takeSuppressed returns the denied count and resets it.
// Called by the holder of a grant to summarise skipped warnings.
func (w *Warner) takeSuppressed() uint64 {
	return w.suppressed.Swap(0)
}

// Interval returns the configured minimum interval.
func (w *Warner) Interval() time.Duration {
	return time.Duration(w.interval)
}
