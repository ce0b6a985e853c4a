// SPDX-License-Identifier: EPL-2.0

package audiotest

// Clock is a manual audio clock.
type Clock struct {
	t float64
}

func NewClock(start float64) *Clock { return &Clock{t: start} }

func (c *Clock) Now() float64 { return c.t }

// Advance moves the clock forward by d seconds.
func (c *Clock) Advance(d float64) { c.t += d }

func (c *Clock) Set(t float64) { c.t = t }
