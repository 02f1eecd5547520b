package glide

import (
	"io"
	"log/slog"

	"burgers/internal/core"
)

// World drives one dislocation glide run. It is not safe for concurrent use;
// renderers must read between ticks.
type World struct {
	cfg Config
	log *slog.Logger

	lat   *Lattice
	sched *Scheduler
	clock *PauseClock

	ticks     int
	announced SchedulerState
	lastMoves int
}

// Option configures a World.
type Option func(*World)

// WithLogger routes lifecycle logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// New builds the lattice for cfg and returns a World ready to tick.
func New(cfg Config, opts ...Option) (*World, error) {
	w := &World{
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.Reset(); err != nil {
		return nil, err
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "glide" }

// Config returns the configuration in use.
func (w *World) Config() Config { return w.cfg }

// Bounds reports the extent of the initial lattice.
func (w *World) Bounds() core.Bounds { return w.lat.Bounds() }

// GlidePlane returns the y coordinate of the glide plane.
func (w *World) GlidePlane() float64 { return w.lat.GlidePlane() }

// Lattice exposes the owned lattice state.
func (w *World) Lattice() *Lattice { return w.lat }

// Scheduler exposes the animation scheduler.
func (w *World) Scheduler() *Scheduler { return w.sched }

// Clock exposes the pause clock.
func (w *World) Clock() *PauseClock { return w.clock }

// Ticks returns the number of ticks processed since the last reset.
func (w *World) Ticks() int { return w.ticks }

// LastMoves returns how many atoms moved during the most recent tick.
func (w *World) LastMoves() int { return w.lastMoves }

// Finished reports whether the glide has completed.
func (w *World) Finished() bool { return w.sched.State() == Finished }

// Reset rebuilds the lattice and rewinds the clock and scheduler.
func (w *World) Reset() error {
	lat, err := Build(w.cfg)
	if err != nil {
		return err
	}
	w.lat = lat
	w.sched = NewScheduler(lat)
	w.clock = NewPauseClock(w.cfg.Params.Pauses)
	w.ticks = 0
	w.lastMoves = 0
	w.announced = Dormant
	w.log.Debug("lattice built",
		slog.Int("size", w.cfg.Size),
		slog.Int("atoms", len(lat.Atoms)),
		slog.Int("bonds", lat.Bonds.Len()),
		slog.Float64("glide_plane", lat.GlidePlane()),
	)
	return nil
}

// Tick advances the run by one frame. While paused it only checks whether the
// pause has ended. Otherwise it advances simulated time, steps the scheduler,
// reconciles bonds against the atoms moved in this same tick, and finally
// scans for a pause event.
func (w *World) Tick(f core.Frame) {
	w.ticks++
	w.lastMoves = 0
	if w.clock.Paused() {
		if w.clock.TryResume(f.Wall) {
			w.log.Info("animation resumed", slog.Float64("wall", f.Wall), slog.Float64("time", w.clock.Time()))
		}
		return
	}

	w.clock.Advance(f.Delta)
	if w.sched.State() != Finished {
		moves := w.sched.Step(w.clock.Time(), f.Delta, w.lat)
		w.lastMoves = len(moves)
		w.lat.Bonds.Reconcile(w.lat, moves)
		w.announce()
	}

	if e, ok := w.clock.TriggerPause(); ok {
		w.log.Info("animation paused",
			slog.Float64("time", w.clock.Time()),
			slog.Float64("duration", e.Duration),
			slog.Float64("resume_at", w.clock.ResumeAt()),
		)
	}
}

func (w *World) announce() {
	state := w.sched.State()
	if state == w.announced {
		return
	}
	w.announced = state
	switch state {
	case Active:
		w.log.Info("glide started", slog.Float64("time", w.clock.Time()))
	case Finished:
		w.log.Info("glide finished",
			slog.Float64("time", w.clock.Time()),
			slog.Int("ticks", w.ticks),
			slog.Int("bonds", w.lat.Bonds.Len()),
		)
	}
}

// Spheres returns one sphere per atom, coloured by translation state.
func (w *World) Spheres() []core.Sphere {
	out := make([]core.Sphere, len(w.lat.Atoms))
	for i := range w.lat.Atoms {
		a := &w.lat.Atoms[i]
		out[i] = core.Sphere{Center: a.Pos, Kind: uint8(a.State)}
	}
	return out
}

// Segments returns the rendered segment of every live bond.
func (w *World) Segments() []core.Segment {
	bonds := w.lat.Bonds.Bonds()
	out := make([]core.Segment, len(bonds))
	for i, b := range bonds {
		out[i] = b.Seg
	}
	return out
}

// Indicator returns the Burgers indicator segment.
func (w *World) Indicator() core.Segment { return w.lat.Indicator }

// init registers the glide factory. The "config" key names an optional YAML
// file; the remaining keys override it. Lifecycle events go to slog.Default.
func init() {
	core.Register("glide", func(cfg map[string]string) (core.Sim, error) {
		c, err := Resolve(cfg["config"], cfg)
		if err != nil {
			return nil, err
		}
		w, err := New(c, WithLogger(slog.Default()))
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
