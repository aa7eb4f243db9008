package clock

import "time"

// Clock supplies the current time. Snapshot timestamps and move ages are
// computed against it so tests can pin them.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

// Ensure SystemClock implements Clock
var _ Clock = SystemClock{}

// New returns the system clock
func New() SystemClock {
	return SystemClock{}
}

// Now returns the current UTC time
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the time elapsed on c since t
func Since(c Clock, t time.Time) time.Duration {
	return c.Now().Sub(t)
}
