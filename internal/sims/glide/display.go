package glide

import "image/color"

var glidePalette = buildGlidePalette()

// Palette exposes the sphere colours, indexed by AtomState.
func (w *World) Palette() []color.RGBA {
	return glidePalette
}

// BondColor is the colour of bond segments.
func (w *World) BondColor() color.RGBA { return color.RGBA{R: 170, G: 170, B: 180, A: 255} }

// IndicatorColor is the colour of the Burgers indicator.
func (w *World) IndicatorColor() color.RGBA { return color.RGBA{R: 230, G: 60, B: 60, A: 255} }

func buildGlidePalette() []color.RGBA {
	palette := make([]color.RGBA, StateTranslated+1)
	for s := range palette {
		palette[s] = toRGBA(stateColor(AtomState(s)))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func stateColor(s AtomState) color.NRGBA {
	switch s {
	case StatePending:
		return blendColors(stateColor(StateStatic), color.NRGBA{R: 120, G: 170, B: 255, A: 255}, 0.35)
	case StateTranslating:
		return color.NRGBA{R: 250, G: 200, B: 60, A: 255}
	case StateTranslated:
		return color.NRGBA{R: 80, G: 200, B: 120, A: 255}
	case StateStatic:
		fallthrough
	default:
		return color.NRGBA{R: 90, G: 110, B: 200, A: 255}
	}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}
