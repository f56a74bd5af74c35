package broadphase

import (
	"math/rand"
	"sort"
	"testing"

	"geomkit/internal/geometry"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVec(rng *rand.Rand, spread float32) rl.Vector3 {
	return rl.Vector3{
		X: (rng.Float32()*2 - 1) * spread,
		Y: (rng.Float32()*2 - 1) * spread,
		Z: (rng.Float32()*2 - 1) * spread,
	}
}

// boundedShapes returns shapes whose exact tests never report a hit outside
// their bounding boxes.
func boundedShapes(rng *rand.Rand, n int, spread float32) []geometry.Shape {
	shapes := make([]geometry.Shape, n)
	for i := range shapes {
		c := randomVec(rng, spread)
		size := 0.5 + rng.Float32()*3
		switch i % 4 {
		case 0:
			shapes[i] = geometry.NewSphere(c, size/2)
		case 1:
			shapes[i] = geometry.NewAABBFromCenter(c, rl.Vector3{X: size, Y: size * 0.5, Z: size})
		case 2:
			shapes[i] = geometry.NewCapsule(c, rl.Vector3Add(c, randomVec(rng, size)), size/4)
		default:
			rot := rl.Vector3{X: rng.Float32() * 360, Y: rng.Float32() * 360, Z: rng.Float32() * 360}
			shapes[i] = geometry.NewOBB(c, rl.Vector3{X: size, Y: size, Z: size * 0.5}, rot)
		}
	}
	return shapes
}

func TestGridMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{0, 1, 10, 100, 400} {
		shapes := boundedShapes(rng, n, 20)
		grid := NewGrid(DefaultCellSize)
		got := grid.Overlapping(shapes)
		want := BruteForce(shapes)
		assert.Equal(t, len(want), len(got), "pair count for %d shapes", n)
		assert.Equal(t, want, got, "pairs for %d shapes", n)
	}
}

func TestGridCellSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	shapes := boundedShapes(rng, 200, 15)
	want := BruteForce(shapes)

	// Tiny cells push most shapes past MaxCellsPerShape into the global list.
	for _, size := range []float32{0.1, 1, 5, 50} {
		grid := NewGrid(size)
		assert.Equal(t, want, grid.Overlapping(shapes), "cell size %v", size)
	}
}

func TestNewGridDefault(t *testing.T) {
	assert.Equal(t, DefaultCellSize, NewGrid(0).CellSize)
	assert.Equal(t, DefaultCellSize, NewGrid(-3).CellSize)
	assert.Equal(t, float32(2), NewGrid(2).CellSize)
}

func TestCandidatesSortedAndUnique(t *testing.T) {
	// Both boxes span several shared cells.
	shapes := []geometry.Shape{
		geometry.NewAABBFromMinMax(rl.Vector3{}, rl.Vector3{X: 12, Y: 12, Z: 12}),
		geometry.NewAABBFromMinMax(rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{X: 11, Y: 11, Z: 11}),
		geometry.NewSphere(rl.Vector3{X: 100}, 1),
		geometry.NewSphere(rl.Vector3{X: 101}, 1),
	}
	grid := NewGrid(DefaultCellSize)
	grid.Build(shapes)
	pairs := grid.Candidates()

	assert.Equal(t, []Pair{{A: 0, B: 1}, {A: 2, B: 3}}, pairs)
	assert.True(t, sort.SliceIsSorted(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	}))
}

func TestGridHandlesUnboundedShapes(t *testing.T) {
	shapes := []geometry.Shape{
		geometry.NewPlane(rl.Vector3{Y: 1}, 0),
		geometry.NewSphere(rl.Vector3{Y: 0.5}, 1),
		geometry.NewSphere(rl.Vector3{Y: 10}, 1),
		geometry.NewAABBFromMinMax(rl.Vector3{X: -5000, Y: -1, Z: -5000}, rl.Vector3{X: 5000, Y: -0.25, Z: 5000}),
	}
	grid := NewGrid(1)
	grid.Build(shapes)

	candidates := grid.Candidates()
	assert.Contains(t, candidates, Pair{A: 0, B: 2}, "the plane pairs with everything")
	assert.Contains(t, candidates, Pair{A: 2, B: 3}, "the oversized box pairs with everything")

	got := grid.Overlapping(shapes)
	require.Equal(t, BruteForce(shapes), got)
	assert.Equal(t, []Pair{{A: 0, B: 1}, {A: 1, B: 3}}, got)
}

func TestGridHandlesHugeAndFarBounds(t *testing.T) {
	shapes := []geometry.Shape{
		geometry.NewSphere(rl.Vector3{}, 1),
		geometry.NewAABB(rl.Vector3{}, rl.Vector3{X: 1e35, Y: 1e35, Z: 1e35}),
		geometry.NewAABB(rl.Vector3{X: 1e30}, rl.Vector3{X: 1, Y: 1, Z: 1}),
		geometry.NewSphere(rl.Vector3{X: 1.5}, 1),
	}
	grid := NewGrid(DefaultCellSize)

	for i, s := range shapes[1:3] {
		_, _, ok := grid.cellRange(s.(geometry.Convex).Bounds())
		assert.False(t, ok, "shape %d should not be indexed by cell", i+1)
	}
	_, _, ok := grid.cellRange(geometry.NewAABB(rl.Vector3{X: math32.NaN()}, rl.Vector3{X: 1, Y: 1, Z: 1}))
	assert.False(t, ok, "non-finite bounds")
	lo, hi, ok := grid.cellRange(shapes[0].(geometry.Convex).Bounds())
	require.True(t, ok)
	assert.Equal(t, CellKey{-1, -1, -1}, lo)
	assert.Equal(t, CellKey{0, 0, 0}, hi)

	got := grid.Overlapping(shapes)
	assert.Equal(t, BruteForce(shapes), got)
	assert.Contains(t, got, Pair{A: 0, B: 3})
	assert.Contains(t, got, Pair{A: 1, B: 2})
}

func TestGridRebuild(t *testing.T) {
	grid := NewGrid(DefaultCellSize)
	a := []geometry.Shape{geometry.NewSphere(rl.Vector3{}, 1), geometry.NewSphere(rl.Vector3{X: 1}, 1)}
	require.Len(t, grid.Overlapping(a), 1)

	b := []geometry.Shape{geometry.NewSphere(rl.Vector3{}, 1), geometry.NewSphere(rl.Vector3{X: 30}, 1)}
	assert.Empty(t, grid.Overlapping(b), "stale cells from the previous build must not leak")
}

func BenchmarkGridOverlapping(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	shapes := boundedShapes(rng, 2000, 60)
	grid := NewGrid(DefaultCellSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		grid.Overlapping(shapes)
	}
}

func BenchmarkBruteForce(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	shapes := boundedShapes(rng, 2000, 60)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BruteForce(shapes)
	}
}
