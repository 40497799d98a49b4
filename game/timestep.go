package game

import "time"

const (
	// targetFrameTime is the 60fps reference frame all speeds are tuned against
	targetFrameTime = 16670 * time.Microsecond

	// minFrameTime and maxFrameTime clamp the measured delta before scaling
	minFrameTime = 8300 * time.Microsecond
	maxFrameTime = 33300 * time.Microsecond

	// resetThreshold marks a gap long enough to treat the next frame as a
	// fresh start (tab hidden, window dragged, debugger pause)
	resetThreshold = 100 * time.Millisecond

	// multMin and multMax bound the simulation multiplier
	multMin = 0.5
	multMax = 2.0

	// touchScale slows the whole simulation a notch on touch devices
	touchScale = 0.9
)

// Step is one simulation step's worth of time. Mult is the factor every
// per-frame speed and timer gets multiplied by this frame.
type Step struct {
	Delta time.Duration
	Mult  float64

	// Fresh is set when the step follows a long stall and the delta was
	// discarded instead of being compensated for.
	Fresh bool
}

// Timestep measures real frame time and converts it into clamped
// simulation steps so entities cover the same distance per wall-clock
// second regardless of the display's refresh rate.
type Timestep struct {
	last  time.Time
	touch bool
}

// NewTimestep returns a timestep that treats its first Tick as a fresh start
func NewTimestep(touch bool) *Timestep {
	return &Timestep{touch: touch}
}

// Tick consumes the time elapsed since the previous call and returns the
// step the simulation should advance by. Gaps beyond the reset threshold
// yield one nominal-length step instead of a compensating jump.
func (t *Timestep) Tick(now time.Time) Step {
	if t.last.IsZero() || now.Sub(t.last) > resetThreshold {
		t.last = now
		return Step{Delta: targetFrameTime, Mult: t.scaled(1.0), Fresh: true}
	}

	delta := now.Sub(t.last)
	t.last = now

	if delta < minFrameTime {
		delta = minFrameTime
	}
	if delta > maxFrameTime {
		delta = maxFrameTime
	}

	mult := float64(delta) / float64(targetFrameTime)
	if mult < multMin {
		mult = multMin
	}
	if mult > multMax {
		mult = multMax
	}

	return Step{Delta: delta, Mult: t.scaled(mult)}
}

// Reset forgets the previous tick so the next one reads as a fresh start.
// Called when leaving pause so the frozen stretch is not simulated.
func (t *Timestep) Reset() {
	t.last = time.Time{}
}

// SetTouch switches the touch slowdown on or off at run time
func (t *Timestep) SetTouch(on bool) {
	t.touch = on
}

func (t *Timestep) scaled(mult float64) float64 {
	if t.touch {
		return mult * touchScale
	}
	return mult
}

// FixedStep returns the step a steady display at the given refresh rate
// would produce. Batch runs and tests drive the simulation with it.
func FixedStep(fps float64) Step {
	delta := time.Duration(float64(time.Second) / fps)
	if delta < minFrameTime {
		delta = minFrameTime
	}
	if delta > maxFrameTime {
		delta = maxFrameTime
	}
	mult := float64(delta) / float64(targetFrameTime)
	if mult < multMin {
		mult = multMin
	}
	if mult > multMax {
		mult = multMax
	}
	return Step{Delta: delta, Mult: mult}
}
