package core

import "time"

// Clock reports monotonic wall time elapsed since some fixed origin.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration { return time.Since(c.start) }

// ManualClock only moves when told to. Used by headless runs and tests.
type ManualClock struct {
	now time.Duration
}

// Now returns the accumulated time.
func (c *ManualClock) Now() time.Duration { return c.now }

// Advance moves the clock forward by d. Negative values are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// FrameTimer turns successive Clock readings into Frames.
type FrameTimer struct {
	clock Clock
	last  time.Duration
}

// NewFrameTimer constructs a timer reading from the given clock.
func NewFrameTimer(c Clock) *FrameTimer {
	if c == nil {
		c = NewSystemClock()
	}
	return &FrameTimer{clock: c}
}

// Next reads the clock and returns the frame since the previous call. The
// first call reports the time since the clock origin as its delta.
func (t *FrameTimer) Next() Frame {
	now := t.clock.Now()
	delta := now - t.last
	if delta < 0 {
		delta = 0
	}
	t.last = now
	return Frame{Delta: delta.Seconds(), Wall: now.Seconds()}
}

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	clock       Clock
	step        time.Duration
	accumulator time.Duration
	last        time.Duration
	started     bool
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(c Clock, tps int) *FixedStep {
	if c == nil {
		c = NewSystemClock()
	}
	fs := &FixedStep{clock: c}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the configured tick length.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.clock.Now()
	if !f.started {
		f.started = true
		f.last = now
	}
	delta := now - f.last
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
