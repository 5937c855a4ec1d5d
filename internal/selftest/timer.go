package selftest

import "time"

// Clock supplies the current time. Injected into the session machine so
// timing behavior is testable without real timers.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock used outside tests.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Countdown tracks a whole-session time limit in whole seconds.
// Remaining time is derived from the start instant on every tick rather
// than decremented, so missed or duplicated ticks cannot drift it.
// Expiry latches: Tick reports it exactly once per countdown.
type Countdown struct {
	limit     time.Duration
	startedAt time.Time
	remaining int
	expired   bool
	cancelled bool
}

// NewCountdown starts a countdown at now. A non-positive limit produces a
// disabled countdown that never expires.
func NewCountdown(limit time.Duration, now time.Time) *Countdown {
	c := &Countdown{limit: limit, startedAt: now}
	if limit > 0 {
		c.remaining = int(limit / time.Second)
	}
	return c
}

// Enabled reports whether a time limit is in force.
func (c *Countdown) Enabled() bool {
	return c != nil && c.limit > 0
}

// Remaining returns the whole seconds left. 0 for disabled countdowns.
func (c *Countdown) Remaining() int {
	if !c.Enabled() {
		return 0
	}
	return c.remaining
}

// Tick recomputes remaining time as of now and reports true exactly once,
// on the tick where remaining first reaches zero. Cancelled or already
// expired countdowns never report expiry again.
func (c *Countdown) Tick(now time.Time) bool {
	if !c.Enabled() || c.cancelled || c.expired {
		return false
	}
	left := c.limit - now.Sub(c.startedAt)
	c.remaining = int(left / time.Second)
	if c.remaining < 0 {
		c.remaining = 0
	}
	if left > 0 {
		return false
	}
	c.expired = true
	return true
}

// Expired reports whether the countdown has fired.
func (c *Countdown) Expired() bool {
	return c != nil && c.expired
}

// Cancel stops the countdown so a dangling tick cannot fire expiry into a
// phase that already left testing.
func (c *Countdown) Cancel() {
	if c != nil {
		c.cancelled = true
	}
}

// Stopwatch attributes elapsed wall time to whatever is current between
// laps. There is no pause: time keeps accruing from the last mark.
type Stopwatch struct {
	mark time.Time
}

// StartStopwatch marks now as the measurement start.
func StartStopwatch(now time.Time) Stopwatch {
	return Stopwatch{mark: now}
}

// Lap returns the time accrued since the last mark and re-marks at now.
func (w *Stopwatch) Lap(now time.Time) time.Duration {
	d := now.Sub(w.mark)
	if d < 0 {
		d = 0
	}
	w.mark = now
	return d
}

// Elapsed returns the time accrued since the last mark without re-marking.
func (w *Stopwatch) Elapsed(now time.Time) time.Duration {
	d := now.Sub(w.mark)
	if d < 0 {
		d = 0
	}
	return d
}
