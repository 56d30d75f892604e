package game

import (
	"time"
)

// DefaultTickInterval is the wall-clock spacing between simulation steps.
const DefaultTickInterval = 64 * time.Millisecond

// TimeProvider supplies the current time to the frame loop.
type TimeProvider interface {
	Now() time.Time
}

// SystemTimeProvider reads the wall clock.
type SystemTimeProvider struct{}

func (SystemTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualTimeProvider provides a controllable time source for testing
type ManualTimeProvider struct {
	currentTime time.Time
}

func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{currentTime: start}
}

func (m *ManualTimeProvider) Now() time.Time {
	return m.currentTime
}

// Advance advances the current time by the given duration
func (m *ManualTimeProvider) Advance(d time.Duration) {
	m.currentTime = m.currentTime.Add(d)
}

// SimulationClock gates simulation steps to a fixed interval, independent of
// how often frames are drawn.
type SimulationClock struct {
	interval time.Duration
	last     time.Time
}

func NewSimulationClock(interval time.Duration, start time.Time) *SimulationClock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &SimulationClock{interval: interval, last: start}
}

// Due reports whether a full interval has elapsed since the last step.
func (c *SimulationClock) Due(now time.Time) bool {
	return now.Sub(c.last) >= c.interval
}

// Advance marks now as the time of the last step.
func (c *SimulationClock) Advance(now time.Time) {
	c.last = now
}

func (c *SimulationClock) Interval() time.Duration {
	return c.interval
}

func (c *SimulationClock) LastTick() time.Time {
	return c.last
}
