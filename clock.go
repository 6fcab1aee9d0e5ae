package boidswarm

import (
	"context"
	"time"
)

// A Stepper advances a simulation by a time step.
type Stepper interface {
	Step(dt float64)
}

// DefaultMaxCatchup is the default maximum number of steps run by a single
// call to Clock.Catchup.
const DefaultMaxCatchup = 8

// A Clock drives a Stepper with a fixed time step.
// It keeps simulation time independent from the rate at which a display
// is refreshed.
type Clock struct {
	Dt         float64 // duration of a step, unit: time
	Tick       uint64  // number of steps run so far
	MaxCatchup int     // maximum number of steps per Catchup call

	sim Stepper
	acc float64 // wall time not yet simulated, unit: time
}

// NewClock returns a clock stepping sim by dt.
func NewClock(sim Stepper, dt float64) *Clock {
	return &Clock{Dt: dt, MaxCatchup: DefaultMaxCatchup, sim: sim}
}

// Time returns the simulated time.
func (c *Clock) Time() float64 {
	return float64(c.Tick) * c.Dt
}

// Advance runs a single step.
func (c *Clock) Advance() {
	c.sim.Step(c.Dt)
	c.Tick++
}

// Catchup runs as many steps as fit in the wall time elapsed since the
// previous call and returns that number. Time that would require more than
// MaxCatchup steps is dropped so that a slow display cannot fall further
// and further behind.
func (c *Clock) Catchup(elapsed time.Duration) int {
	c.acc += elapsed.Seconds()
	n := 0
	for c.acc >= c.Dt {
		if c.MaxCatchup > 0 && n >= c.MaxCatchup {
			c.acc = 0
			break
		}
		c.Advance()
		c.acc -= c.Dt
		n++
	}
	return n
}

// Run runs n steps, or steps until ctx is done if n <= 0.
func (c *Clock) Run(ctx context.Context, n int) error {
	for i := 0; n <= 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Advance()
	}
	return nil
}
