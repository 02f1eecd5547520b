package glide

import "math"

// SchedulerState is the lifecycle of the glide animation.
type SchedulerState uint8

const (
	Dormant SchedulerState = iota
	Active
	Finished
)

func (s SchedulerState) String() string {
	switch s {
	case Dormant:
		return "dormant"
	case Active:
		return "active"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// bandWidth is the number of x layers a fully formed dislocation line spans.
const bandWidth = 3

// Scheduler decides, per tick, which x layers of the upper half-crystal may
// translate and advances their atoms toward the glided position.
//
// Layers are numbered from the highest x downward. Phase k enables layers
// k-2..k, clipped to the lattice, so the band widens over the first two
// phases, slides one layer per phase, and narrows over the last two.
type Scheduler struct {
	delay    float64
	speed    float64
	target   float64
	layers   int
	state    SchedulerState
	phase    int
	movers   []int
	maxLayer int
}

// NewScheduler prepares a scheduler for the translating atoms of l.
func NewScheduler(l *Lattice) *Scheduler {
	p := l.Config().Params
	s := &Scheduler{
		delay:    p.StartDelay,
		speed:    p.Speed,
		target:   Spacing * float64(p.MoveDist),
		layers:   l.Layers()[AxisX],
		phase:    -1,
		maxLayer: l.Layers()[AxisX] - 1,
	}
	for i := range l.Atoms {
		if l.Atoms[i].Upper() {
			s.movers = append(s.movers, i)
		}
	}
	return s
}

// State returns the current lifecycle state.
func (s *Scheduler) State() SchedulerState { return s.state }

// Phase returns the most recent phase, or -1 before activation.
func (s *Scheduler) Phase() int { return s.phase }

// LastPhase is the final phase that still enables a layer.
func (s *Scheduler) LastPhase() int { return s.layers + 1 }

// Target is the total displacement each translating atom travels.
func (s *Scheduler) Target() float64 { return s.target }

// Band returns the inclusive range of layers enabled in phase k. ok is false
// when no layer is enabled.
func (s *Scheduler) Band(k int) (lo, hi int, ok bool) {
	lo = max(k-(bandWidth-1), 0)
	hi = min(k, s.maxLayer)
	if k < 0 || lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// layerOf maps an atom's x cell to its layer number.
func (s *Scheduler) layerOf(a *Atom) int { return s.maxLayer - a.Cell[AxisX] }

// Step advances the animation to simulated time now, dt seconds after the
// previous step, and returns the atoms that moved. It also drags the Burgers
// indicator while the scheduler is active. A non-positive or NaN dt still
// updates the phase but moves nothing.
func (s *Scheduler) Step(now, dt float64, l *Lattice) []Move {
	switch s.state {
	case Finished:
		return nil
	case Dormant:
		if now < s.delay {
			return nil
		}
		s.state = Active
	}

	s.phase = int(math.Floor(now - s.delay))
	if s.phase > s.LastPhase() {
		s.state = Finished
		return nil
	}
	if !(dt > 0) {
		return nil
	}
	lo, hi, ok := s.Band(s.phase)

	var moves []Move
	if ok {
		step := s.speed * dt
		for _, idx := range s.movers {
			a := &l.Atoms[idx]
			if a.State == StateTranslated {
				continue
			}
			if layer := s.layerOf(a); layer < lo || layer > hi {
				continue
			}
			next, state := a.Offset+step, StateTranslating
			if next >= s.target {
				next, state = s.target, StateTranslated
			}
			if next == a.Offset {
				continue
			}
			a.State = state
			moves = append(moves, l.setOffset(idx, next))
		}
	}

	l.Indicator = l.Indicator.Translate(indicatorAxis.Mul(2 * s.speed * dt))
	return moves
}
