package app

import (
	"image/color"

	"burgers/internal/core"
	"burgers/internal/render"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type bondColorProvider interface {
	BondColor() color.RGBA
	IndicatorColor() color.RGBA
}

// atomRadius is the drawn sphere radius in scene units.
const atomRadius = 0.35

func styleFor(sim core.Sim) render.Style {
	st := render.Style{
		Palette:    []color.RGBA{{R: 200, G: 200, B: 200, A: 255}},
		Bond:       color.RGBA{R: 150, G: 150, B: 150, A: 255},
		Indicator:  color.RGBA{R: 255, G: 0, B: 0, A: 255},
		AtomRadius: atomRadius,
	}
	if p, ok := sim.(paletteProvider); ok {
		st.Palette = p.Palette()
	}
	if p, ok := sim.(bondColorProvider); ok {
		st.Bond = p.BondColor()
		st.Indicator = p.IndicatorColor()
	}
	return st
}
