// Package clock is the single source of "now" for booking rules and
// timestamps, so tests can pin the wall clock.
package clock

import (
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() time.Time
}

// CourtNow reads c in the court's wall-clock location.
func CourtNow(c Clock, loc *time.Location) time.Time {
	return c.Now().In(loc)
}

type systemClock struct{}

func NewRealClock() Clock {
	return systemClock{}
}

// Now is truncated to microseconds so values survive a round trip through timestamptz.
func (systemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// MockClock is a settable clock, safe for use from concurrent handlers.
type MockClock struct {
	now atomic.Pointer[time.Time]
}

func NewMockClock(t time.Time) *MockClock {
	c := &MockClock{}
	c.Set(t)
	return c
}

func (c *MockClock) Now() time.Time {
	return *c.now.Load()
}

func (c *MockClock) Set(t time.Time) {
	c.now.Store(&t)
}

// Add advances the clock. Concurrent Add calls may lose an update.
func (c *MockClock) Add(d time.Duration) {
	c.Set(c.Now().Add(d))
}
