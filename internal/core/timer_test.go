package core

import (
	"testing"
	"time"
)

func TestFrameTimerReportsDeltaAndWall(t *testing.T) {
	clock := &ManualClock{}
	timer := NewFrameTimer(clock)

	clock.Advance(500 * time.Millisecond)
	f := timer.Next()
	if f.Delta != 0.5 || f.Wall != 0.5 {
		t.Fatalf("first frame %+v, expected delta 0.5 wall 0.5", f)
	}

	clock.Advance(250 * time.Millisecond)
	f = timer.Next()
	if f.Delta != 0.25 || f.Wall != 0.75 {
		t.Fatalf("second frame %+v, expected delta 0.25 wall 0.75", f)
	}

	f = timer.Next()
	if f.Delta != 0 || f.Wall != 0.75 {
		t.Fatalf("idle frame %+v, expected zero delta", f)
	}
}

func TestManualClockIgnoresNegative(t *testing.T) {
	clock := &ManualClock{}
	clock.Advance(time.Second)
	clock.Advance(-time.Second)
	if clock.Now() != time.Second {
		t.Fatalf("clock at %v, expected 1s", clock.Now())
	}
}

func TestFixedStepPacesTicks(t *testing.T) {
	clock := &ManualClock{}
	fs := NewFixedStep(clock, 4)
	if fs.Step() != 250*time.Millisecond {
		t.Fatalf("step %v, expected 250ms", fs.Step())
	}
	if !fs.ShouldStep() {
		t.Fatal("first call should step immediately")
	}
	clock.Advance(100 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("stepped before a full tick elapsed")
	}
	clock.Advance(150 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step once a full tick accumulated")
	}
	if fs.ShouldStep() {
		t.Fatal("accumulator should be drained")
	}

	fs.SetTPS(0)
	if fs.Step() != time.Second/60 {
		t.Fatalf("non-positive TPS should fall back to 60, got %v", fs.Step())
	}
}

func TestSystemClockAdvances(t *testing.T) {
	c := NewSystemClock()
	if c.Now() < 0 {
		t.Fatal("system clock went negative")
	}
}
