package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"burgers/internal/core"
	"burgers/internal/sims/glide"
	"burgers/internal/trace"
)

type options struct {
	Config   glide.Config
	DT       float64
	MaxTicks int
	Out      string
	Every    int
	Realtime bool
	TPS      int
	Logger   *slog.Logger
}

func defaultOptions() options {
	return options{Config: glide.DefaultConfig(), DT: 1.0 / 60, MaxTicks: 100000, TPS: 60}
}

func (o *options) resolve(path string, overrides map[string]string) error {
	cfg, err := glide.Resolve(path, overrides)
	if err != nil {
		return err
	}
	o.Config = cfg
	return nil
}

type summary struct {
	RunID      string
	Ticks      int
	SimTime    float64
	Wall       float64
	Finished   bool
	Bonds      int
	Translated int
	Atoms      int
	Out        string
}

func (s summary) print(w io.Writer) {
	state := "finished"
	if !s.Finished {
		state = "stopped"
	}
	fmt.Fprintf(w, "run %s %s after %d ticks (sim %.2fs, wall %.2fs)\n", s.RunID, state, s.Ticks, s.SimTime, s.Wall)
	fmt.Fprintf(w, "atoms %d, translated %d, bonds %d\n", s.Atoms, s.Translated, s.Bonds)
	if s.Out != "" {
		fmt.Fprintf(w, "trace written to %s\n", s.Out)
	}
}

// run ticks a glide world until it finishes or MaxTicks is reached. Without
// Realtime the wall clock is simulated and advances exactly DT per tick.
func run(opts options) (summary, error) {
	if opts.DT <= 0 {
		return summary{}, fmt.Errorf("dt must be positive, got %g", opts.DT)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	world, err := glide.New(opts.Config, glide.WithLogger(logger))
	if err != nil {
		return summary{}, err
	}

	sum := summary{RunID: trace.NewRunID(), Atoms: len(world.Lattice().Atoms), Out: opts.Out}

	var tw *trace.Writer
	if opts.Out != "" {
		tw, err = trace.Create(opts.Out)
		if err != nil {
			return sum, err
		}
		defer tw.Close()
		hdr := trace.Header{
			RunID:   sum.RunID,
			Sim:     world.Name(),
			Params:  paramsOf(world),
			Atoms:   sum.Atoms,
			Bonds:   world.Lattice().Bonds.Len(),
			Started: time.Now().UTC().Format(time.RFC3339),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return sum, err
		}
	}

	step := time.Duration(opts.DT * float64(time.Second))
	var (
		timer  *core.FrameTimer
		manual *core.ManualClock
		pacer  *core.FixedStep
		last   core.Frame
	)
	if opts.Realtime {
		clock := core.NewSystemClock()
		timer = core.NewFrameTimer(clock)
		pacer = core.NewFixedStep(clock, opts.TPS)
	} else {
		manual = &core.ManualClock{}
		timer = core.NewFrameTimer(manual)
	}

	logger.Info("run started", slog.String("run_id", sum.RunID), slog.Int("atoms", sum.Atoms))
	for sum.Ticks < opts.MaxTicks && !world.Finished() {
		if pacer != nil {
			if !pacer.ShouldStep() {
				time.Sleep(pacer.Step() / 4)
				continue
			}
		} else {
			manual.Advance(step)
		}
		last = timer.Next()
		world.Tick(last)
		sum.Ticks++

		if tw != nil {
			withAtoms := opts.Every > 0 && sum.Ticks%opts.Every == 0
			if err := tw.WriteFrame(frameOf(world, last, withAtoms)); err != nil {
				return sum, err
			}
		}
	}

	sum.SimTime = world.Clock().Time()
	sum.Wall = last.Wall
	sum.Finished = world.Finished()
	sum.Bonds = world.Lattice().Bonds.Len()
	for i := range world.Lattice().Atoms {
		if world.Lattice().Atoms[i].State == glide.StateTranslated {
			sum.Translated++
		}
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func paramsOf(w *glide.World) map[string]any {
	out := map[string]any{}
	for _, g := range w.Parameters().Groups {
		for _, p := range g.Params {
			out[p.Key] = p.Value
		}
	}
	return out
}

func frameOf(w *glide.World, f core.Frame, withAtoms bool) trace.Frame {
	lat := w.Lattice()
	ind := w.Indicator()
	rec := trace.Frame{
		Tick:      w.Ticks(),
		Time:      w.Clock().Time(),
		Wall:      f.Wall,
		State:     w.Scheduler().State().String(),
		Phase:     w.Scheduler().Phase(),
		Paused:    w.Clock().Paused(),
		Moved:     w.LastMoves(),
		Bonds:     lat.Bonds.Len(),
		Indicator: [2][3]float64{ind.From, ind.To},
	}
	if withAtoms {
		rec.Atoms = make([]trace.Atom, len(lat.Atoms))
		for i := range lat.Atoms {
			a := &lat.Atoms[i]
			rec.Atoms[i] = trace.Atom{Index: i, Pos: a.Pos, State: a.State.String()}
		}
	}
	return rec
}
