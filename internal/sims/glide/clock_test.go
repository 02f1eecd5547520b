package glide

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPauseClockFiresOnceAndWaitsWallDuration(t *testing.T) {
	c := NewPauseClock([]PauseEvent{{At: 5.0, Duration: 2.0}})
	wall := 0.0
	fired := 0
	for i := 0; i < 10; i++ {
		wall += 0.5
		c.Advance(0.5)
		if _, ok := c.TriggerPause(); ok {
			fired++
		}
	}
	require.Equal(t, 1, fired)
	require.True(t, c.Paused())
	assert.Equal(t, 5.0, c.Time())
	assert.Equal(t, 7.0, c.ResumeAt())
	assert.Empty(t, c.Pending())

	for wall < 7.0 {
		assert.False(t, c.TryResume(wall), "resumed early at wall=%g", wall)
		c.Advance(0.5)
		assert.Equal(t, 5.0, c.Time(), "simulated time must not advance while paused")
		wall += 0.25
	}
	require.True(t, c.TryResume(wall))
	assert.False(t, c.Paused())

	for i := 0; i < 20; i++ {
		c.Advance(0.5)
		_, ok := c.TriggerPause()
		require.False(t, ok, "event fired twice")
	}
}

func TestPauseClockFirstMatchWins(t *testing.T) {
	c := NewPauseClock([]PauseEvent{{At: 3, Duration: 1}, {At: 1, Duration: 4}, {At: 9, Duration: 1}})
	c.Advance(4)

	e, ok := c.TriggerPause()
	require.True(t, ok)
	assert.Equal(t, PauseEvent{At: 3, Duration: 1}, e)
	_, ok = c.TriggerPause()
	assert.False(t, ok, "only one event may fire while paused")

	require.True(t, c.TryResume(5))
	e, ok = c.TriggerPause()
	require.True(t, ok)
	assert.Equal(t, PauseEvent{At: 1, Duration: 4}, e)
	assert.Equal(t, []PauseEvent{{At: 9, Duration: 1}}, c.Pending())
}

func TestPauseClockMixesSimulatedAndWallTime(t *testing.T) {
	c := NewPauseClock([]PauseEvent{{At: 2, Duration: 3}})
	c.Advance(2)
	_, ok := c.TriggerPause()
	require.True(t, ok)

	// The resume threshold is simulated pause time plus duration on the wall
	// clock, so a wall clock already ahead of simulated time resumes sooner.
	assert.False(t, c.TryResume(4.99))
	assert.True(t, c.TryResume(5))
}

func TestPauseClockCopiesEvents(t *testing.T) {
	events := []PauseEvent{{At: 1, Duration: 1}}
	c := NewPauseClock(events)
	c.Advance(1)
	c.TriggerPause()
	assert.Equal(t, PauseEvent{At: 1, Duration: 1}, events[0])
}

func TestPauseClockIgnoresNonPositiveDelta(t *testing.T) {
	c := NewPauseClock(nil)
	c.Advance(0.5)
	c.Advance(-0.4)
	c.Advance(0)
	c.Advance(math.NaN())
	assert.Equal(t, 0.5, c.Time())
}
