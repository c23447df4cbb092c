package ports

import "time"

// Clock supplies the current time to the timer subsystem. Injected so tests
// can drive time deterministically instead of sleeping.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to a Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}
