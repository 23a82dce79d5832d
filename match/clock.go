package match

import "time"

// now is swapped out by tests that need a controllable wall clock.
var now = time.Now

// Clock is one side's game clock. It implements engine.GameClock while a
// turn is running.
type Clock struct {
	remaining time.Duration
	increment time.Duration
	limited   bool

	turnStart time.Time
	running   bool
}

// NewClock returns a clock with duration on it. A duration of zero or less
// gives a clock that never runs out.
func NewClock(duration, increment time.Duration) *Clock {
	return &Clock{
		remaining: duration,
		increment: increment,
		limited:   duration > 0,
	}
}

func (c *Clock) Limited() bool { return c.limited }

func (c *Clock) StartTurn() {
	c.turnStart = now()
	c.running = true
}

func (c *Clock) ElapsedThisTurn() time.Duration {
	if !c.running {
		return 0
	}
	return now().Sub(c.turnStart)
}

// Remaining is the time left on the clock, counting the running turn.
func (c *Clock) Remaining() time.Duration {
	r := c.remaining - c.ElapsedThisTurn()
	if r < 0 {
		return 0
	}
	return r
}

func (c *Clock) Increment() time.Duration { return c.increment }

// StopTurn charges the running turn to the clock and adds the increment.
// It returns false when the flag fell during the turn.
func (c *Clock) StopTurn() bool {
	elapsed := c.ElapsedThisTurn()
	c.running = false
	if !c.limited {
		return true
	}
	c.remaining -= elapsed
	if c.remaining <= 0 {
		c.remaining = 0
		return false
	}
	c.remaining += c.increment
	return true
}
