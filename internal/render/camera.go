package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"burgers/internal/core"
)

// Camera orbits a target point and projects scene coordinates to screen
// pixels with a perspective transform. Yaw and Pitch are in degrees.
type Camera struct {
	Target   mgl64.Vec3
	Yaw      float64
	Pitch    float64
	Distance float64
	FovY     float64
	Width    int
	Height   int
}

// NewCamera frames b in a width x height viewport.
func NewCamera(b core.Bounds, width, height int) Camera {
	diag := b.Max.Sub(b.Min).Len()
	if diag <= 0 {
		diag = 1
	}
	return Camera{
		Target:   b.Center(),
		Yaw:      35,
		Pitch:    25,
		Distance: diag * 1.6,
		FovY:     45,
		Width:    max(width, 1),
		Height:   max(height, 1),
	}
}

// Eye returns the camera position.
func (c Camera) Eye() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	pitch := mgl64.DegToRad(c.Pitch)
	dir := mgl64.Vec3{
		math.Cos(pitch) * math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch) * math.Cos(yaw),
	}
	return c.Target.Add(dir.Mul(c.Distance))
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the viewport.
func (c Camera) Projection() mgl64.Mat4 {
	aspect := float64(c.Width) / float64(c.Height)
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, 0.1, 1000)
}

// focal is the pixel distance from the eye to the image plane.
func (c Camera) focal() float64 {
	return float64(c.Height) / 2 / math.Tan(mgl64.DegToRad(c.FovY)/2)
}

// Point is a projected scene point. Depth is the distance along the view
// direction; larger is farther.
type Point struct {
	X, Y  float64
	Depth float64
}

// Project maps p to screen pixels with y growing downward. ok is false when
// p lies behind the near plane.
func (c Camera) Project(p mgl64.Vec3) (Point, bool) {
	view := c.View()
	depth := -view.Mul4x1(p.Vec4(1)).Z()
	if depth <= 0.1 {
		return Point{}, false
	}
	win := mgl64.Project(p, view, c.Projection(), 0, 0, c.Width, c.Height)
	return Point{X: win.X(), Y: float64(c.Height) - win.Y(), Depth: depth}, true
}

// Radius returns the on-screen radius of a sphere of scene radius r at depth.
func (c Camera) Radius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r * c.focal() / depth
}
