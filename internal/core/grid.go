package core

// CellIndex maps integer lattice cells in a W×H×D box to occupant ids.
// Cells outside the box are never occupied.
type CellIndex struct {
	W, H, D int
	data    []int32
}

// NewCellIndex allocates an empty index with the given dimensions.
func NewCellIndex(w, h, d int) *CellIndex {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if d <= 0 {
		d = 1
	}
	g := &CellIndex{W: w, H: h, D: d, data: make([]int32, w*h*d)}
	g.Clear()
	return g
}

// Index returns the linear slice index for cell (x, y, z).
func (g *CellIndex) Index(x, y, z int) int { return (z*g.H+y)*g.W + x }

// InBounds reports whether the cell lies inside the box.
func (g *CellIndex) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H && z >= 0 && z < g.D
}

// Get returns the occupant of a cell.
func (g *CellIndex) Get(x, y, z int) (int, bool) {
	if !g.InBounds(x, y, z) {
		return -1, false
	}
	id := g.data[g.Index(x, y, z)]
	if id < 0 {
		return -1, false
	}
	return int(id), true
}

// Set records id as the occupant of a cell. Out-of-box cells are ignored.
func (g *CellIndex) Set(x, y, z, id int) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.data[g.Index(x, y, z)] = int32(id)
}

// Vacate clears a cell if it is currently held by id.
func (g *CellIndex) Vacate(x, y, z, id int) {
	if !g.InBounds(x, y, z) {
		return
	}
	i := g.Index(x, y, z)
	if g.data[i] == int32(id) {
		g.data[i] = -1
	}
}

// Clear empties every cell.
func (g *CellIndex) Clear() {
	for i := range g.data {
		g.data[i] = -1
	}
}
