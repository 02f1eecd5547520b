//go:build ebiten

package app

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"burgers/internal/core"
	"burgers/internal/render"
	"burgers/internal/ui"
)

type scene interface {
	core.Sim
	core.SceneProvider
}

// Game adapts a frame-driven simulation to the ebiten.Game interface. The
// simulation is ticked once per Update with the measured frame delta.
type Game struct {
	sim     scene
	timer   *core.FrameTimer
	camera  render.Camera
	painter *render.ScenePainter
	overlay *ui.Overlay
	hud     *ui.HUD
	view    *ebiten.Image

	width, height int
}

// New constructs a Game for sim using the window geometry in cfg. sim must
// also provide a scene to draw.
func New(sim core.Sim, cfg *Config) (*Game, error) {
	sc, ok := sim.(scene)
	if !ok {
		return nil, fmt.Errorf("sim %q does not provide a scene", sim.Name())
	}
	cam := render.NewCamera(sim.Bounds(), cfg.Width, cfg.Height)
	cam.Yaw = cfg.Yaw
	cam.Pitch = cfg.Pitch
	return &Game{
		sim:     sc,
		timer:   core.NewFrameTimer(core.NewSystemClock()),
		camera:  cam,
		painter: render.NewScenePainter(styleFor(sim)),
		overlay: ui.NewOverlay(sim),
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		width:   cfg.Width,
		height:  cfg.Height,
	}, nil
}

// Size returns the full window size including the HUD panel.
func (g *Game) Size() (int, int) { return g.width + g.hud.Width(), g.height }

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.sim.Tick(g.timer.Next())
	g.hud.Update()
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.view == nil {
		g.view = ebiten.NewImage(g.width, g.height)
	}
	g.painter.Draw(g.view, g.camera, g.sim)
	g.overlay.Draw(g.view, g.camera)
	screen.DrawImage(g.view, nil)
	g.hud.Draw(screen, g.width, g.height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}
