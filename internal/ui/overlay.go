//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"burgers/internal/core"
	"burgers/internal/render"
)

type glidePlaneProvider interface {
	GlidePlane() float64
}

// Overlay draws the glide plane outline and the lattice axes over the scene.
type Overlay struct {
	sim core.Sim
}

// NewOverlay constructs an overlay for sim.
func NewOverlay(sim core.Sim) *Overlay {
	return &Overlay{sim: sim}
}

var axisColors = [3]color.RGBA{
	{R: 230, G: 80, B: 80, A: 255},
	{R: 80, G: 230, B: 80, A: 255},
	{R: 80, G: 120, B: 240, A: 255},
}

// Draw renders the guides through cam.
func (o *Overlay) Draw(screen *ebiten.Image, cam render.Camera) {
	b := o.sim.Bounds()
	if provider, ok := o.sim.(glidePlaneProvider); ok {
		segs := planeOutline(b, provider.GlidePlane(), 1)
		drawLines(screen, render.Lines(cam, segs, color.RGBA{R: 240, G: 240, B: 120, A: 160}))
	}
	for i, seg := range axes(b.Min.Sub(b.Max.Sub(b.Min).Mul(0.1)), 2) {
		drawLines(screen, render.Lines(cam, []core.Segment{seg}, axisColors[i]))
	}
}

func drawLines(dst *ebiten.Image, lines []render.Line) {
	for _, l := range lines {
		vector.StrokeLine(dst, float32(l.From.X), float32(l.From.Y), float32(l.To.X), float32(l.To.Y), 1, l.Color, true)
	}
}
