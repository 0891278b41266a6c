package core

import "time"

type Clock struct {
	startTime time.Time
	elapsed   time.Duration
	last      time.Time
}

func NewClock() *Clock {
	return &Clock{}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = time.Since(c.startTime)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = time.Now()
	c.last = c.startTime
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

// Elapsed returns the time since Start in seconds, as of the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed.Seconds()
}

// Tick returns the seconds passed since the previous Tick (or Start).
func (c *Clock) Tick() float64 {
	if c.startTime.IsZero() {
		return 0
	}
	now := time.Now()
	delta := now.Sub(c.last)
	c.last = now
	return delta.Seconds()
}
