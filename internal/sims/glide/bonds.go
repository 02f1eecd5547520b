package glide

import (
	"burgers/internal/core"
)

// Bond joins two atoms one lattice step apart. From is the origin and To the
// endpoint; Seg caches the rendered endpoints.
type Bond struct {
	From int
	To   int
	Axis Axis
	Seg  core.Segment
}

type bondKey struct{ from, to int }

// BondIndex stores bonds by atom index and tracks which bonds touch each
// atom, so reconciliation only visits bonds incident to moved atoms.
//
// Bonds whose origin lies at or below the glide plane are churned: they are
// removed and recreated as atoms cross lattice points. Bonds whose origin lies
// above the plane are followers whose cached segment tracks their atoms.
type BondIndex struct {
	plane    float64
	bonds    []Bond
	slot     map[bondKey]int
	incident map[int][]bondKey
}

// NewBondIndex returns an empty index for a lattice with the given glide plane.
func NewBondIndex(plane float64) *BondIndex {
	return &BondIndex{
		plane:    plane,
		slot:     make(map[bondKey]int),
		incident: make(map[int][]bondKey),
	}
}

// Len returns the number of live bonds.
func (b *BondIndex) Len() int { return len(b.bonds) }

// Bonds exposes the live bonds. Callers must not retain the slice across a
// reconciliation.
func (b *BondIndex) Bonds() []Bond { return b.bonds }

// Has reports whether a bond from -> to exists.
func (b *BondIndex) Has(from, to int) bool {
	_, ok := b.slot[bondKey{from, to}]
	return ok
}

// Incident returns the bonds touching atom idx.
func (b *BondIndex) Incident(idx int) []Bond {
	keys := b.incident[idx]
	out := make([]Bond, 0, len(keys))
	for _, k := range keys {
		out = append(out, b.bonds[b.slot[k]])
	}
	return out
}

// Add inserts a bond from -> to using the atoms' current positions. Duplicate
// pairs and out-of-range indices are ignored.
func (b *BondIndex) Add(l *Lattice, from, to int, axis Axis) bool {
	if from < 0 || to < 0 || from >= len(l.Atoms) || to >= len(l.Atoms) || from == to {
		return false
	}
	k := bondKey{from, to}
	if _, ok := b.slot[k]; ok {
		return false
	}
	b.slot[k] = len(b.bonds)
	b.bonds = append(b.bonds, Bond{
		From: from,
		To:   to,
		Axis: axis,
		Seg:  core.Segment{From: l.Atoms[from].Pos, To: l.Atoms[to].Pos},
	})
	b.incident[from] = append(b.incident[from], k)
	b.incident[to] = append(b.incident[to], k)
	return true
}

// Remove deletes the bond from -> to if present.
func (b *BondIndex) Remove(from, to int) bool {
	k := bondKey{from, to}
	i, ok := b.slot[k]
	if !ok {
		return false
	}
	last := len(b.bonds) - 1
	if i != last {
		moved := b.bonds[last]
		b.bonds[i] = moved
		b.slot[bondKey{moved.From, moved.To}] = i
	}
	b.bonds = b.bonds[:last]
	delete(b.slot, k)
	b.unlink(from, k)
	b.unlink(to, k)
	return true
}

func (b *BondIndex) unlink(atom int, k bondKey) {
	keys := b.incident[atom]
	for i, kk := range keys {
		if kk == k {
			keys[i] = keys[len(keys)-1]
			keys = keys[:len(keys)-1]
			break
		}
	}
	if len(keys) == 0 {
		delete(b.incident, atom)
		return
	}
	b.incident[atom] = keys
}

// follower reports whether a bond's origin lies strictly above the plane.
func (b *BondIndex) follower(l *Lattice, bond Bond) bool {
	return l.Atoms[bond.From].Pos.Y() > b.plane
}

// Reconcile brings the bond set in line with this tick's atom moves:
//
//  1. sub-plane +y bonds touching a moved atom are removed;
//  2. a moved atom that lands on a lattice point is bonded along y to the
//     atoms now directly above and below it;
//  3. follower bonds touching a moved atom have that endpoint replaced by
//     the atom's new position.
//
// Moves naming unknown atoms are skipped.
func (b *BondIndex) Reconcile(l *Lattice, moves []Move) {
	if len(moves) == 0 {
		return
	}

	var doomed []bondKey
	for _, m := range moves {
		for _, k := range b.incident[m.Atom] {
			bond := b.bonds[b.slot[k]]
			if bond.Axis != AxisY || b.follower(l, bond) {
				continue
			}
			if l.Atoms[bond.To].Start.Y() <= l.Atoms[bond.From].Start.Y() {
				continue
			}
			doomed = append(doomed, k)
		}
	}
	for _, k := range doomed {
		b.Remove(k.from, k.to)
	}

	for _, m := range moves {
		if m.Atom < 0 || m.Atom >= len(l.Atoms) {
			continue
		}
		c, ok := l.Atoms[m.Atom].onLattice()
		if !ok {
			continue
		}
		up, down := c, c
		up[AxisY]++
		down[AxisY]--
		if above, ok := l.AtomAt(up); ok {
			b.Add(l, m.Atom, above, AxisY)
		}
		if below, ok := l.AtomAt(down); ok {
			b.Add(l, below, m.Atom, AxisY)
		}
	}

	for _, m := range moves {
		for _, k := range b.incident[m.Atom] {
			i := b.slot[k]
			bond := &b.bonds[i]
			if !b.follower(l, *bond) {
				continue
			}
			if bond.From == m.Atom {
				bond.Seg.From = m.Next
			}
			if bond.To == m.Atom {
				bond.Seg.To = m.Next
			}
		}
	}
}
