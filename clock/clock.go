// Package clock tracks simulated time, adapted from the reference
// implementation's clock/clock.go with its SUBLOOP sub-stepping and RPC
// service removed: every tick here is exactly one second, with nothing to
// synchronize against an external co-simulation process.
package clock

import "fmt"

// DT is the fixed duration of one simulation tick, in seconds.
const DT = 1.0

// Clock tracks how many ticks have elapsed and the corresponding
// simulated time of day.
type Clock struct {
	Step int
	T    float64
}

// New returns a clock starting at tick 0.
func New() *Clock {
	return &Clock{}
}

// Advance moves the clock forward by one tick.
func (c *Clock) Advance() {
	c.Step++
	c.T = float64(c.Step) * DT
}

// String formats the clock's current time as HH:MM:SS.
func (c *Clock) String() string {
	h, m, s := c.HourMinuteSecond()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, int(s))
}

// HourMinuteSecond splits the clock's current time into hour, minute and
// (possibly fractional) second components.
func (c *Clock) HourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}
