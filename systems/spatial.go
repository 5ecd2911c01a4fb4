package systems

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// cellKey addresses one cube of the grid.
type cellKey struct {
	X, Y, Z int
}

// SpatialGrid buckets node indices into cubes for neighbor queries. The grid
// is unbounded; only occupied cells are stored.
type SpatialGrid struct {
	cellSize float64
	cells    map[cellKey][]int
}

// NewSpatialGrid creates a grid with the given cube edge.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

// CellSize returns the cube edge.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// Reset clears the grid and sets a new cube edge.
func (g *SpatialGrid) Reset(cellSize float64) {
	if cellSize > 0 {
		g.cellSize = cellSize
	}
	clear(g.cells)
}

// Insert adds index i at position p.
func (g *SpatialGrid) Insert(i int, p r3.Vec) {
	k := g.key(p)
	g.cells[k] = append(g.cells[k], i)
}

// Rebuild clears the grid and inserts every position by index.
func (g *SpatialGrid) Rebuild(positions []r3.Vec) {
	clear(g.cells)
	for i, p := range positions {
		g.Insert(i, p)
	}
}

// QueryInto appends the indices of every cell overlapping the cube of
// half-width radius around p, sorted ascending. Candidates may lie farther
// than radius; callers filter by exact distance.
func (g *SpatialGrid) QueryInto(dst []int, p r3.Vec, radius float64) []int {
	lo := g.key(r3.Sub(p, r3.Vec{X: radius, Y: radius, Z: radius}))
	hi := g.key(r3.Add(p, r3.Vec{X: radius, Y: radius, Z: radius}))

	start := len(dst)
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				dst = append(dst, g.cells[cellKey{x, y, z}]...)
			}
		}
	}
	slices.Sort(dst[start:])
	return dst
}

func (g *SpatialGrid) key(p r3.Vec) cellKey {
	return cellKey{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
		Z: int(math.Floor(p.Z / g.cellSize)),
	}
}
