//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"burgers/internal/core"
)

// ScenePainter draws bonds, the indicator and atoms onto an ebiten image.
type ScenePainter struct {
	style      Style
	background color.RGBA
}

// NewScenePainter returns a painter using st.
func NewScenePainter(st Style) *ScenePainter {
	return &ScenePainter{style: st, background: color.RGBA{R: 12, G: 12, B: 16, A: 255}}
}

// Draw paints scene as seen through cam.
func (p *ScenePainter) Draw(dst *ebiten.Image, cam Camera, scene core.SceneProvider) {
	dst.Fill(p.background)
	for _, l := range Lines(cam, scene.Segments(), p.style.Bond) {
		strokeLine(dst, l, 1)
	}
	for _, d := range Discs(cam, scene.Spheres(), p.style) {
		r := float32(d.Radius)
		if r < 1 {
			r = 1
		}
		vector.DrawFilledCircle(dst, float32(d.X), float32(d.Y), r, d.Color, true)
	}
	for _, l := range Lines(cam, []core.Segment{scene.Indicator()}, p.style.Indicator) {
		strokeLine(dst, l, 3)
	}
}

func strokeLine(dst *ebiten.Image, l Line, width float32) {
	vector.StrokeLine(dst, float32(l.From.X), float32(l.From.Y), float32(l.To.X), float32(l.To.Y), width, l.Color, true)
}
