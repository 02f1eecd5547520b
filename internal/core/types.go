package core

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Segment is a directed line between two points in scene space.
type Segment struct {
	From mgl64.Vec3
	To   mgl64.Vec3
}

// Vector returns To - From.
func (s Segment) Vector() mgl64.Vec3 { return s.To.Sub(s.From) }

// Translate returns the segment shifted by d.
func (s Segment) Translate(d mgl64.Vec3) Segment {
	return Segment{From: s.From.Add(d), To: s.To.Add(d)}
}

// Sphere is a renderable atom: a centre plus a palette index.
type Sphere struct {
	Center mgl64.Vec3
	Kind   uint8
}

// Bounds is an axis-aligned box in scene space.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl64.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Frame carries one tick's timing: the simulated delta and the wall-clock
// reading since process start, both in seconds.
type Frame struct {
	Delta float64
	Wall  float64
}

// Sim defines the minimal contract a frame-driven simulation implements.
type Sim interface {
	Name() string
	Bounds() Bounds
	Reset() error
	Tick(f Frame)
	Finished() bool
}

// SceneProvider exposes the primitives a renderer draws between ticks. The
// returned slices are snapshots owned by the caller.
type SceneProvider interface {
	Spheres() []Sphere
	Segments() []Segment
	Indicator() Segment
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Lookup builds the named simulation.
func Lookup(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		names := make([]string, 0, len(sims))
		for n := range sims {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown sim %q (available: %v)", name, names)
	}
	return f(cfg)
}
