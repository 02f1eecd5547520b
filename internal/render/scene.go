package render

import (
	"image/color"
	"sort"

	"burgers/internal/core"
)

// Disc is a sphere flattened to screen space.
type Disc struct {
	Point
	Radius float64
	Color  color.RGBA
}

// Line is a segment flattened to screen space.
type Line struct {
	From, To Point
	Color    color.RGBA
}

// Style holds the colours a scene is painted with.
type Style struct {
	Palette    []color.RGBA
	Bond       color.RGBA
	Indicator  color.RGBA
	AtomRadius float64
}

// paletteColor returns the palette entry for kind, clamping to the last
// entry. An empty palette yields transparent black.
func paletteColor(palette []color.RGBA, kind uint8) color.RGBA {
	if len(palette) == 0 {
		return color.RGBA{}
	}
	idx := int(kind)
	if last := len(palette) - 1; idx > last {
		idx = last
	}
	return palette[idx]
}

// Discs projects spheres and orders them back to front. Spheres behind the
// camera are dropped.
func Discs(cam Camera, spheres []core.Sphere, st Style) []Disc {
	out := make([]Disc, 0, len(spheres))
	for _, s := range spheres {
		p, ok := cam.Project(s.Center)
		if !ok {
			continue
		}
		out = append(out, Disc{
			Point:  p,
			Radius: cam.Radius(st.AtomRadius, p.Depth),
			Color:  paletteColor(st.Palette, s.Kind),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

// Lines projects segments. A segment with either end behind the camera is
// dropped.
func Lines(cam Camera, segs []core.Segment, col color.RGBA) []Line {
	out := make([]Line, 0, len(segs))
	for _, s := range segs {
		a, ok := cam.Project(s.From)
		if !ok {
			continue
		}
		b, ok := cam.Project(s.To)
		if !ok {
			continue
		}
		out = append(out, Line{From: a, To: b, Color: col})
	}
	return out
}
