package buildtree

import "time"

// Timer is the round countdown. It is driven by explicit timestamps so that
// tests can run it on a fake clock.
type Timer struct {
	budget    time.Duration
	remaining time.Duration
	start     time.Time
	last      time.Time
}

// Reset starts a fresh countdown at now.
func (t *Timer) Reset(now time.Time, budget time.Duration) {
	t.budget = budget
	t.remaining = budget
	t.start = now
	t.last = now
}

// Sample subtracts the wall time since the previous sample and reports
// whether the countdown has run out. Remaining time never drops below zero.
func (t *Timer) Sample(now time.Time) bool {
	if d := now.Sub(t.last); d > 0 {
		t.remaining -= d
	}
	t.last = now
	if t.remaining <= 0 {
		t.remaining = 0
		return true
	}
	return false
}

// Add grants extra time.
func (t *Timer) Add(d time.Duration) {
	t.remaining += d
}

// Remaining returns the time left on the clock.
func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// Budget returns the time the countdown started with.
func (t *Timer) Budget() time.Duration {
	return t.budget
}

// Elapsed returns the wall time since Reset.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	if t.start.IsZero() {
		return 0
	}
	return now.Sub(t.start)
}

// Fraction returns remaining/budget clamped to [0, 1].
func (t *Timer) Fraction() float64 {
	if t.budget <= 0 {
		return 0
	}
	f := float64(t.remaining) / float64(t.budget)
	return min(max(f, 0), 1)
}
