package glide

// PauseClock keeps simulated animation time, which only advances while the
// animation is running, and applies scheduled pause events.
//
// Pauses trigger on simulated time but resume against the wall clock: a pause
// taken at simulated time t with duration d ends once the wall clock reads
// t+d. Both readings are in seconds.
type PauseClock struct {
	time     float64
	paused   bool
	pausedAt float64
	duration float64
	pending  []PauseEvent
}

// NewPauseClock returns a running clock at time zero with the given events
// pending, in order.
func NewPauseClock(events []PauseEvent) *PauseClock {
	return &PauseClock{pending: append([]PauseEvent(nil), events...)}
}

// Time returns the simulated animation time.
func (c *PauseClock) Time() float64 { return c.time }

// Paused reports whether the animation is frozen.
func (c *PauseClock) Paused() bool { return c.paused }

// Pending returns the events that have not fired yet.
func (c *PauseClock) Pending() []PauseEvent { return c.pending }

// ResumeAt returns the wall-clock reading at which the current pause ends.
func (c *PauseClock) ResumeAt() float64 { return c.pausedAt + c.duration }

// Advance adds dt to simulated time. It does nothing while paused or when dt
// is not positive.
func (c *PauseClock) Advance(dt float64) {
	if c.paused || !(dt > 0) {
		return
	}
	c.time += dt
}

// TriggerPause fires the first pending event whose time has been reached and
// removes it. At most one event fires per call.
func (c *PauseClock) TriggerPause() (PauseEvent, bool) {
	if c.paused {
		return PauseEvent{}, false
	}
	for i, e := range c.pending {
		if c.time < e.At {
			continue
		}
		c.pending = append(c.pending[:i:i], c.pending[i+1:]...)
		c.paused = true
		c.pausedAt = c.time
		c.duration = e.Duration
		return e, true
	}
	return PauseEvent{}, false
}

// TryResume ends the current pause once wall has reached ResumeAt.
func (c *PauseClock) TryResume(wall float64) bool {
	if !c.paused || wall < c.ResumeAt() {
		return false
	}
	c.paused = false
	c.pausedAt = 0
	c.duration = 0
	return true
}
