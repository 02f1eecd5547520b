package glide

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"burgers/internal/core"
)

type harness struct {
	world *World
	clock *core.ManualClock
	timer *core.FrameTimer
	dt    time.Duration
}

func newHarness(t *testing.T, cfg Config, dt time.Duration, opts ...Option) *harness {
	t.Helper()
	w, err := New(cfg, opts...)
	require.NoError(t, err)
	clock := &core.ManualClock{}
	return &harness{world: w, clock: clock, timer: core.NewFrameTimer(clock), dt: dt}
}

func (h *harness) tick() {
	h.clock.Advance(h.dt)
	h.world.Tick(h.timer.Next())
}

func TestEndToEndSmallLattice(t *testing.T) {
	cfg := testConfig(4)
	h := newHarness(t, cfg, 250*time.Millisecond)
	w := h.world

	require.Len(t, w.Spheres(), 27)
	require.Len(t, w.Segments(), 54)
	assert.Equal(t, core.Segment{From: mgl64.Vec3{4, 3, -2}, To: mgl64.Vec3{4, 3, 6}}, w.Indicator())

	for w.Clock().Time() < 3.5 {
		h.tick()
	}
	require.Equal(t, Active, w.Scheduler().State())
	require.Equal(t, 0, w.Scheduler().Phase())

	for _, a := range w.Lattice().Atoms {
		dz := a.Pos.Z() - a.Start.Z()
		if a.Start.X() == 4 && a.Start.Y() > 2 {
			assert.Greater(t, dz, 0.0, "atom from %v", a.Start)
			assert.LessOrEqual(t, dz, 2.0, "atom from %v", a.Start)
			assert.Equal(t, StateTranslating, a.State, "atom from %v", a.Start)
			continue
		}
		assert.Zero(t, dz, "atom from %v should not have moved", a.Start)
	}
	requireBondInvariants(t, w.Lattice())
}

func TestEndToEndRunsToCompletion(t *testing.T) {
	for _, size := range []int{4, 6} {
		cfg := testConfig(size)
		cfg.Params.StartDelay = 0.5
		h := newHarness(t, cfg, 125*time.Millisecond)
		w := h.world

		for i := 0; i < 1000 && !w.Finished(); i++ {
			h.tick()
			requireBondInvariants(t, w.Lattice())
		}
		require.True(t, w.Finished(), "size %d", size)

		var translated int
		for _, a := range w.Lattice().Atoms {
			if a.Upper() {
				require.Equal(t, StateTranslated, a.State)
				require.Equal(t, a.Start.Add(mgl64.Vec3{0, 0, 2}), a.Pos)
				translated++
			}
		}
		side := size/2 + 1
		upper := 0
		for y := 0; y <= size; y += 2 {
			if y > size/2 {
				upper++
			}
		}
		require.Equal(t, side*side*upper, translated, "size %d", size)

		positions := w.Spheres()
		bonds := w.Lattice().Bonds.Len()
		indicator := w.Indicator()
		for i := 0; i < 20; i++ {
			h.tick()
		}
		assert.Equal(t, positions, w.Spheres(), "no mutation after finish")
		assert.Equal(t, bonds, w.Lattice().Bonds.Len())
		assert.Equal(t, indicator, w.Indicator())
	}
}

func TestEndToEndFinalBondCount(t *testing.T) {
	cfg := testConfig(4)
	cfg.Params.StartDelay = 0
	h := newHarness(t, cfg, 250*time.Millisecond)
	for i := 0; i < 100 && !h.world.Finished(); i++ {
		h.tick()
	}
	require.True(t, h.world.Finished())
	// Nine static-to-upper +y bonds are cut; six reform where a static atom
	// sits below a glided atom. The far z row glides off the static layer.
	assert.Equal(t, 54-9+6, h.world.Lattice().Bonds.Len())
}

func TestEndToEndRebondsMidGlide(t *testing.T) {
	cfg := testConfig(6)
	cfg.Params.StartDelay = 0
	cfg.Params.Speed = 2
	cfg.Params.MoveDist = 2
	h := newHarness(t, cfg, 250*time.Millisecond)
	l := h.world.Lattice()

	mover := atomFrom(t, l, [3]int{3, 2, 0})
	below := atomFrom(t, l, [3]int{3, 1, 1})
	require.False(t, l.Bonds.Has(below, mover))

	var sawBond, sawRelease bool
	prev := make([]float64, len(l.Atoms))
	for i := 0; i < 400 && !h.world.Finished(); i++ {
		h.tick()
		requireBondInvariants(t, l)
		for j, a := range l.Atoms {
			require.GreaterOrEqual(t, a.Offset, prev[j], "atom %d went backwards", j)
			prev[j] = a.Offset
		}
		offset := l.Atoms[mover].Offset
		switch {
		case offset == Spacing:
			assert.True(t, l.Bonds.Has(below, mover), "passing a lattice point should bond to the static atom below")
			sawBond = true
		case sawBond && offset > Spacing && !sawRelease:
			assert.False(t, l.Bonds.Has(below, mover), "the transient bond should go once the atom moves on")
			sawRelease = true
		}
	}
	require.True(t, h.world.Finished())
	assert.True(t, sawBond)
	assert.True(t, sawRelease)
	assert.Equal(t, 2*Spacing, l.Atoms[mover].Offset)
	// Sixteen sub-plane +y bonds are cut; eight reform where the atoms land
	// two cells further along z and still have a static atom below.
	assert.Equal(t, 144-16+8, l.Bonds.Len())
}

func TestWorldIgnoresNonPositiveDelta(t *testing.T) {
	cfg := testConfig(4)
	cfg.Params.StartDelay = 0
	w, err := New(cfg)
	require.NoError(t, err)

	w.Tick(core.Frame{Delta: 0.5, Wall: 0.5})
	spheres := w.Spheres()
	segments := w.Segments()
	indicator := w.Indicator()
	require.NotEqual(t, 0.0, w.Lattice().Atoms[atomFrom(t, w.Lattice(), [3]int{2, 2, 0})].Offset)

	for _, d := range []float64{-0.4, 0, math.NaN()} {
		w.Tick(core.Frame{Delta: d, Wall: 0.6})
		assert.Equal(t, 0.5, w.Clock().Time(), "delta %g", d)
		assert.Equal(t, spheres, w.Spheres(), "delta %g moved atoms", d)
		assert.Equal(t, segments, w.Segments(), "delta %g changed bonds", d)
		assert.Equal(t, indicator, w.Indicator(), "delta %g moved the indicator", d)
		assert.Zero(t, w.LastMoves())
	}
}

func TestWorldPausesAndResumes(t *testing.T) {
	cfg := testConfig(4)
	cfg.Params.Pauses = []PauseEvent{{At: 3.5, Duration: 2.0}}
	h := newHarness(t, cfg, 250*time.Millisecond)
	w := h.world

	for !w.Clock().Paused() {
		h.tick()
		require.Less(t, w.Ticks(), 100)
	}
	require.Equal(t, 3.5, w.Clock().Time())
	wallAtPause := h.clock.Now()
	frozen := w.Spheres()
	indicator := w.Indicator()

	for w.Clock().Paused() {
		h.tick()
		require.Equal(t, frozen, w.Spheres(), "atoms moved while paused")
		require.Equal(t, indicator, w.Indicator())
		require.Equal(t, 3.5, w.Clock().Time())
		require.Less(t, w.Ticks(), 100)
	}
	assert.Equal(t, 2*time.Second, h.clock.Now()-wallAtPause)

	h.tick()
	assert.Equal(t, 3.75, w.Clock().Time())
	assert.NotEqual(t, frozen, w.Spheres())
}

func TestWorldLogsLifecycleOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cfg := testConfig(2)
	cfg.Params.StartDelay = 0.25
	cfg.Params.Pauses = []PauseEvent{{At: 0.5, Duration: 0.25}}
	h := newHarness(t, cfg, 250*time.Millisecond, WithLogger(logger))

	for i := 0; i < 200 && !h.world.Finished(); i++ {
		h.tick()
	}
	for i := 0; i < 10; i++ {
		h.tick()
	}
	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "glide started"))
	assert.Equal(t, 1, strings.Count(out, "animation paused"))
	assert.Equal(t, 1, strings.Count(out, "animation resumed"))
	assert.Equal(t, 1, strings.Count(out, "glide finished"))
}

func TestWorldResetRewinds(t *testing.T) {
	cfg := testConfig(4)
	cfg.Params.StartDelay = 0
	h := newHarness(t, cfg, 500*time.Millisecond)
	initial := h.world.Spheres()
	for i := 0; i < 6; i++ {
		h.tick()
	}
	require.NotEqual(t, initial, h.world.Spheres())

	require.NoError(t, h.world.Reset())
	assert.Equal(t, initial, h.world.Spheres())
	assert.Equal(t, 0.0, h.world.Clock().Time())
	assert.Equal(t, Dormant, h.world.Scheduler().State())
	assert.Equal(t, 0, h.world.Ticks())
}

func TestRegistryBuildsGlide(t *testing.T) {
	sim, err := core.Lookup("glide", map[string]string{"size": "4", "pauses": "none"})
	require.NoError(t, err)
	assert.Equal(t, "glide", sim.Name())
	scene, ok := sim.(core.SceneProvider)
	require.True(t, ok)
	assert.Len(t, scene.Spheres(), 27)

	_, err = core.Lookup("glide", map[string]string{"size": "5"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	path := filepath.Join(t.TempDir(), "glide.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: 6\n"), 0o644))
	sim, err = core.Lookup("glide", map[string]string{"config": path, "speed": "2"})
	require.NoError(t, err)
	assert.Equal(t, 6, sim.(*World).Config().Size)
	assert.Equal(t, 2.0, sim.(*World).Config().Params.Speed)

	_, err = core.Lookup("nope", nil)
	assert.Error(t, err)
}

func TestParametersAndStatus(t *testing.T) {
	w, err := New(testConfig(4))
	require.NoError(t, err)
	snap := w.Parameters()
	require.Len(t, snap.Groups, 2)
	assert.Equal(t, "size", snap.Groups[0].Params[0].Key)
	assert.Equal(t, "4", snap.Groups[0].Params[0].Value)
	assert.Contains(t, snap.Groups[0].Summary, "27 atoms")
	assert.Equal(t, "none", snap.Groups[1].Params[3].Value)

	status := w.Status()
	require.NotEmpty(t, status)
	assert.Contains(t, status[0], "dormant")
	assert.Len(t, w.Palette(), int(StateTranslated)+1)
}
