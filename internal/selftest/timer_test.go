package selftest

import (
	"testing"
	"time"
)

// fakeClock is the injected clock for timing tests. Time moves only when
// Advance is called.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestCountdown_FiresOnceExactlyAtZero(t *testing.T) {
	clock := newFakeClock()
	cd := NewCountdown(3*time.Second, clock.Now())

	if !cd.Enabled() {
		t.Fatal("expected countdown with a limit to be enabled")
	}
	if cd.Remaining() != 3 {
		t.Errorf("Remaining = %d, want 3", cd.Remaining())
	}

	for i, wantRemaining := range []int{2, 1} {
		clock.Advance(time.Second)
		if cd.Tick(clock.Now()) {
			t.Fatalf("tick %d: expired before reaching zero", i+1)
		}
		if cd.Remaining() != wantRemaining {
			t.Errorf("tick %d: Remaining = %d, want %d", i+1, cd.Remaining(), wantRemaining)
		}
	}

	clock.Advance(time.Second)
	if !cd.Tick(clock.Now()) {
		t.Error("expected expiry on the tick where remaining reaches zero")
	}
	if cd.Remaining() != 0 {
		t.Errorf("Remaining after expiry = %d, want 0", cd.Remaining())
	}

	clock.Advance(time.Second)
	if cd.Tick(clock.Now()) {
		t.Error("expected expiry to latch: second expiry reported")
	}
}

func TestCountdown_LateTicksDoNotDrift(t *testing.T) {
	clock := newFakeClock()
	cd := NewCountdown(10*time.Second, clock.Now())

	// A delayed tick covers several seconds at once; remaining time is
	// derived from the start instant, not decremented per call.
	clock.Advance(3500 * time.Millisecond)
	if cd.Tick(clock.Now()) {
		t.Fatal("expired too early")
	}
	if cd.Remaining() != 6 {
		t.Errorf("Remaining = %d, want 6", cd.Remaining())
	}

	clock.Advance(7 * time.Second)
	if !cd.Tick(clock.Now()) {
		t.Error("expected expiry once the limit is exceeded")
	}
}

func TestCountdown_CancelStopsExpiry(t *testing.T) {
	clock := newFakeClock()
	cd := NewCountdown(2*time.Second, clock.Now())

	cd.Cancel()
	clock.Advance(5 * time.Second)
	if cd.Tick(clock.Now()) {
		t.Error("cancelled countdown reported expiry")
	}
}

func TestCountdown_UnlimitedNeverExpires(t *testing.T) {
	clock := newFakeClock()
	cd := NewCountdown(0, clock.Now())

	if cd.Enabled() {
		t.Error("expected zero limit to disable the countdown")
	}
	clock.Advance(24 * time.Hour)
	if cd.Tick(clock.Now()) {
		t.Error("disabled countdown reported expiry")
	}
	if cd.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0 for unlimited", cd.Remaining())
	}
}

func TestStopwatch_LapsAccumulateSeparately(t *testing.T) {
	clock := newFakeClock()
	w := StartStopwatch(clock.Now())

	clock.Advance(2 * time.Second)
	if got := w.Lap(clock.Now()); got != 2*time.Second {
		t.Errorf("first lap = %v, want 2s", got)
	}

	clock.Advance(3 * time.Second)
	if got := w.Lap(clock.Now()); got != 3*time.Second {
		t.Errorf("second lap = %v, want 3s", got)
	}
}

func TestStopwatch_ElapsedDoesNotReMark(t *testing.T) {
	clock := newFakeClock()
	w := StartStopwatch(clock.Now())

	clock.Advance(time.Second)
	if got := w.Elapsed(clock.Now()); got != time.Second {
		t.Errorf("Elapsed = %v, want 1s", got)
	}
	clock.Advance(time.Second)
	if got := w.Lap(clock.Now()); got != 2*time.Second {
		t.Errorf("Lap after Elapsed = %v, want 2s (Elapsed must not re-mark)", got)
	}
}
