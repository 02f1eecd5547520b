package glide

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"burgers/internal/core"
)

// AtomState is the visual translation role of an atom.
type AtomState uint8

const (
	StateStatic AtomState = iota
	StatePending
	StateTranslating
	StateTranslated
)

func (s AtomState) String() string {
	switch s {
	case StateStatic:
		return "static"
	case StatePending:
		return "pending"
	case StateTranslating:
		return "translating"
	case StateTranslated:
		return "translated"
	default:
		return "unknown"
	}
}

// Axis names one of the three lattice directions.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) unit() mgl64.Vec3 {
	var v mgl64.Vec3
	v[a] = 1
	return v
}

var (
	moveAxis      = AxisZ.unit()
	indicatorAxis = AxisX.unit().Mul(-1)
)

// Atom is a lattice point. Cell is its integer lattice coordinate at build
// time; Offset is the distance travelled along the glide direction.
type Atom struct {
	Cell   [3]int
	Start  mgl64.Vec3
	Pos    mgl64.Vec3
	Offset float64
	State  AtomState
}

// Upper reports whether the atom belongs to the half-crystal above the glide
// plane.
func (a *Atom) Upper() bool { return a.State != StateStatic }

// onLattice reports whether the atom currently sits exactly on a lattice
// point, and which cell that is.
func (a *Atom) onLattice() ([3]int, bool) {
	steps := a.Offset / Spacing
	if steps != math.Trunc(steps) {
		return [3]int{}, false
	}
	c := a.Cell
	c[AxisZ] += int(steps)
	return c, true
}

// Lattice owns the atom arena, the bond index, the Burgers indicator and
// the occupancy of lattice cells.
type Lattice struct {
	cfg   Config
	plane float64
	n     [3]int

	Atoms     []Atom
	Bonds     *BondIndex
	Indicator core.Segment

	occ *core.CellIndex
}

// Build generates every atom on the cubic grid, the nearest-neighbour bonds
// and the Burgers indicator. It fails on configurations that do not describe
// a whole number of lattice steps.
func Build(cfg Config) (*Lattice, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.Layers()
	l := &Lattice{
		cfg:   cfg,
		plane: cfg.GlidePlane(),
		n:     n,
		Atoms: make([]Atom, 0, n[0]*n[1]*n[2]),
		// Translated atoms can land up to MoveDist cells past the far z face.
		occ: core.NewCellIndex(n[0], n[1], n[2]+cfg.Params.MoveDist),
	}
	start := mgl64.Vec3(cfg.Start)
	for i := 0; i < n[0]; i++ {
		for j := 0; j < n[1]; j++ {
			for k := 0; k < n[2]; k++ {
				pos := start.Add(mgl64.Vec3{float64(i), float64(j), float64(k)}.Mul(Spacing))
				state := StateStatic
				if pos.Y() > l.plane {
					state = StatePending
				}
				l.occ.Set(i, j, k, len(l.Atoms))
				l.Atoms = append(l.Atoms, Atom{Cell: [3]int{i, j, k}, Start: pos, Pos: pos, State: state})
			}
		}
	}

	l.Bonds = NewBondIndex(l.plane)
	for idx := range l.Atoms {
		c := l.Atoms[idx].Cell
		for axis := AxisX; axis <= AxisZ; axis++ {
			nc := c
			nc[axis]++
			if nc[axis] >= n[axis] {
				continue
			}
			if to, ok := l.occ.Get(nc[0], nc[1], nc[2]); ok {
				l.Bonds.Add(l, idx, to, axis)
			}
		}
	}

	size := float64(cfg.Size)
	half := float64(cfg.Size/2) + 1
	l.Indicator = core.Segment{
		From: mgl64.Vec3{size, half, -Spacing},
		To:   mgl64.Vec3{size, half, size + Spacing},
	}
	return l, nil
}

// Config returns the configuration the lattice was built from.
func (l *Lattice) Config() Config { return l.cfg }

// GlidePlane returns the y coordinate of the glide plane.
func (l *Lattice) GlidePlane() float64 { return l.plane }

// Layers returns the number of lattice points along each axis.
func (l *Lattice) Layers() [3]int { return l.n }

// Bounds returns the box spanned by the initial lattice.
func (l *Lattice) Bounds() core.Bounds {
	size := float64(l.cfg.Size)
	return core.Bounds{Min: mgl64.Vec3(l.cfg.Start), Max: mgl64.Vec3{size, size, size}}
}

// AtomAt returns the atom currently sitting on lattice cell c.
func (l *Lattice) AtomAt(c [3]int) (int, bool) {
	if c[AxisY] < 0 || c[AxisY] >= l.n[AxisY] {
		return -1, false
	}
	return l.occ.Get(c[0], c[1], c[2])
}

// setOffset moves atom idx to the given displacement along the glide
// direction and keeps the occupancy index in step.
func (l *Lattice) setOffset(idx int, offset float64) Move {
	a := &l.Atoms[idx]
	m := Move{Atom: idx, Prev: a.Pos}
	if c, ok := a.onLattice(); ok {
		l.occ.Vacate(c[0], c[1], c[2], idx)
	}
	a.Offset = offset
	a.Pos = a.Start.Add(moveAxis.Mul(offset))
	if c, ok := a.onLattice(); ok {
		l.occ.Set(c[0], c[1], c[2], idx)
	}
	m.Next = a.Pos
	return m
}

// Move is one atom's position change within a tick.
type Move struct {
	Atom int
	Prev mgl64.Vec3
	Next mgl64.Vec3
}
