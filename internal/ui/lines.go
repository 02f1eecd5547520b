package ui

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"burgers/internal/core"
)

// panelLines flattens the parameter snapshot and status of sim into the text
// rows the HUD prints, top to bottom.
func panelLines(sim core.Sim) []string {
	if sim == nil {
		return nil
	}
	lines := []string{strings.ToUpper(sim.Name())}
	if provider, ok := sim.(core.StatusProvider); ok {
		lines = append(lines, "")
		lines = append(lines, provider.Status()...)
	}
	if provider, ok := sim.(core.ParameterProvider); ok {
		for _, group := range provider.Parameters().Groups {
			lines = append(lines, "", group.Name)
			if group.Summary != "" {
				lines = append(lines, "  "+group.Summary)
			}
			for _, p := range group.Params {
				label := p.Label
				if label == "" {
					label = p.Key
				}
				lines = append(lines, fmt.Sprintf("  %-12s %s", label, p.Value))
			}
		}
	}
	return lines
}

// planeOutline returns the rectangle where the plane y=plane cuts b, padded
// by pad on the x and z sides.
func planeOutline(b core.Bounds, plane, pad float64) []core.Segment {
	x0, x1 := b.Min.X()-pad, b.Max.X()+pad
	z0, z1 := b.Min.Z()-pad, b.Max.Z()+pad
	corners := []mgl64.Vec3{
		{x0, plane, z0},
		{x1, plane, z0},
		{x1, plane, z1},
		{x0, plane, z1},
	}
	segs := make([]core.Segment, len(corners))
	for i := range corners {
		segs[i] = core.Segment{From: corners[i], To: corners[(i+1)%len(corners)]}
	}
	return segs
}

// axes returns unit-direction segments of length n rooted at origin, in
// x, y, z order.
func axes(origin mgl64.Vec3, n float64) [3]core.Segment {
	var out [3]core.Segment
	for i := range out {
		var d mgl64.Vec3
		d[i] = n
		out[i] = core.Segment{From: origin, To: origin.Add(d)}
	}
	return out
}
