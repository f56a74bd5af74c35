// Package broadphase finds overlapping shapes among many with a uniform
// spatial hash grid over their bounding boxes, then confirms each candidate
// with the exact geometry test.
package broadphase

import (
	"sort"

	"geomkit/internal/geometry"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultCellSize is the grid spacing used when none is given.
const DefaultCellSize float32 = 5.0

// MaxCellsPerShape caps how many cells one shape may occupy. Shapes that
// span more cells are tested against everything instead.
const MaxCellsPerShape = 512

// maxCellCoord bounds the cell coordinates the grid will index so that
// conversions to int and the cell-count product cannot overflow.
const maxCellCoord = 1 << 30

// CellKey is the integer coordinate of a grid cell.
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3, cellSize float32) CellKey {
	return CellKey{
		X: int(math32.Floor(pos.X / cellSize)),
		Y: int(math32.Floor(pos.Y / cellSize)),
		Z: int(math32.Floor(pos.Z / cellSize)),
	}
}

// Pair holds the indices of two shapes, A < B.
type Pair struct {
	A, B int
}

func makePair(a, b int) Pair {
	if a > b {
		return Pair{A: b, B: a}
	}
	return Pair{A: a, B: b}
}

// Grid is a spatial hash of shape indices. It is rebuilt from scratch by
// Build and is not safe for concurrent use.
type Grid struct {
	CellSize float32
	cells    map[CellKey][]int
	bounds   []geometry.AABB
	global   []int // unbounded or oversized shapes
}

// NewGrid returns an empty grid. A cellSize <= 0 uses DefaultCellSize.
func NewGrid(cellSize float32) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{CellSize: cellSize, cells: make(map[CellKey][]int)}
}

// Build clears and repopulates the grid with shapes, indexed by position in
// the slice.
func (g *Grid) Build(shapes []geometry.Shape) {
	for k := range g.cells {
		delete(g.cells, k)
	}
	g.bounds = g.bounds[:0]
	g.global = g.global[:0]

	for i, s := range shapes {
		c, ok := s.(geometry.Convex)
		if !ok {
			g.bounds = append(g.bounds, geometry.AABB{})
			g.global = append(g.global, i)
			continue
		}
		b := c.Bounds()
		g.bounds = append(g.bounds, b)
		lo, hi, ok := g.cellRange(b)
		if !ok {
			g.global = append(g.global, i)
			continue
		}
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for z := lo.Z; z <= hi.Z; z++ {
					key := CellKey{x, y, z}
					g.cells[key] = append(g.cells[key], i)
				}
			}
		}
	}
}

// cellRange returns the cells covered by b. ok is false when b spans more
// than MaxCellsPerShape cells, lies outside the indexable range or is not
// finite.
func (g *Grid) cellRange(b geometry.AABB) (lo, hi CellKey, ok bool) {
	min, max := b.Min(), b.Max()
	for _, v := range [...]float32{min.X, min.Y, min.Z, max.X, max.Y, max.Z} {
		if !(math32.Abs(v/g.CellSize) < maxCellCoord) {
			return lo, hi, false
		}
	}
	lo, hi = posToCell(min, g.CellSize), posToCell(max, g.CellSize)
	count := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1) * (hi.Z - lo.Z + 1)
	if hi.X-lo.X >= MaxCellsPerShape || hi.Y-lo.Y >= MaxCellsPerShape ||
		hi.Z-lo.Z >= MaxCellsPerShape || count > MaxCellsPerShape {
		return lo, hi, false
	}
	return lo, hi, true
}

// Candidates returns every pair sharing a cell whose bounding boxes touch,
// plus every pair involving an unbounded or oversized shape, sorted.
func (g *Grid) Candidates() []Pair {
	seen := make(map[Pair]bool)
	isGlobal := make(map[int]bool, len(g.global))
	for _, i := range g.global {
		isGlobal[i] = true
	}
	for _, members := range g.cells {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i], members[j]
				if g.bounds[a].IntersectsAABB(g.bounds[b]) {
					seen[makePair(a, b)] = true
				}
			}
		}
	}
	for _, a := range g.global {
		for b := range g.bounds {
			if a != b {
				seen[makePair(a, b)] = true
			}
		}
	}

	pairs := make([]Pair, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sortPairs(pairs)
	return pairs
}

// Overlapping builds the grid over shapes and returns the pairs that
// geometry.Intersects confirms.
func (g *Grid) Overlapping(shapes []geometry.Shape) []Pair {
	g.Build(shapes)
	var out []Pair
	for _, p := range g.Candidates() {
		if geometry.Intersects(shapes[p.A], shapes[p.B]) {
			out = append(out, p)
		}
	}
	return out
}

// BruteForce tests every pair, for reference and small inputs.
func BruteForce(shapes []geometry.Shape) []Pair {
	var out []Pair
	for i := 0; i < len(shapes); i++ {
		for j := i + 1; j < len(shapes); j++ {
			if geometry.Intersects(shapes[i], shapes[j]) {
				out = append(out, Pair{A: i, B: j})
			}
		}
	}
	return out
}

func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
}
