package game

import (
	"time"
)

// spinWindow is how close to a deadline Wait stops sleeping and spins.
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces a render loop to a fixed frame rate.
type FPSLimiter struct {
	limit int
	next  time.Time
}

// NewFPSLimiter creates a limiter for limit frames per second. A limit of
// zero or less disables waiting.
func NewFPSLimiter(limit int) *FPSLimiter {
	return &FPSLimiter{limit: limit}
}

// Limit returns the configured frame cap.
func (f *FPSLimiter) Limit() int {
	return f.limit
}

// Reset drops the current schedule; the next Wait starts a fresh one.
func (f *FPSLimiter) Reset() {
	f.next = time.Time{}
}

// Wait blocks until the next frame deadline. Deadlines advance by a fixed
// period so short frames do not accumulate drift.
func (f *FPSLimiter) Wait() {
	if f.limit <= 0 {
		f.Reset()
		return
	}
	period := time.Second / time.Duration(f.limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(period)
	} else {
		f.next = f.next.Add(period)
	}

	for remaining := time.Until(f.next); remaining > 0; remaining = time.Until(f.next) {
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// more than a whole frame late: reschedule from now instead of bursting
	if -time.Until(f.next) > period {
		f.next = time.Now().Add(period)
	}
}
