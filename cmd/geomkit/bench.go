package main

import (
	"fmt"
	"math/rand"
	"time"

	"geomkit/internal/broadphase"
	"geomkit/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

// benchKinds are the kinds the stress test spawns. Planes and frustums are
// unbounded or huge and would put every pair in the global list.
var benchKinds = []geometry.Kind{
	geometry.KindSphere,
	geometry.KindCapsule,
	geometry.KindCylinder,
	geometry.KindCone,
	geometry.KindAABB,
	geometry.KindOBB,
	geometry.KindTriangle,
}

type benchOptions struct {
	counts     []int
	seed       int64
	iterations int
	cellSize   float32
	pairs      bool
}

func newBenchCmd(a *app) *cobra.Command {
	opts := benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Stress test the broad phase and the pairwise predicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.iterations < 1 {
				return fmt.Errorf("iterations must be positive, got %d", opts.iterations)
			}
			if opts.pairs {
				a.benchPairs(opts)
				fmt.Fprintln(a.out)
			}
			for _, count := range opts.counts {
				if err := a.benchBroadPhase(count, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&opts.counts, "count", []int{100, 500, 1000, 2000}, "shape counts to test")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "random seed")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 5, "timed iterations per count")
	cmd.Flags().Float32Var(&opts.cellSize, "cell", broadphase.DefaultCellSize, "grid cell size")
	cmd.Flags().BoolVar(&opts.pairs, "pairs", false, "also time Intersects for every kind pair")
	return cmd
}

// randomShape spawns a shape of the given kind inside a cube of side size.
func randomShape(rng *rand.Rand, kind geometry.Kind, size float32) geometry.Shape {
	pos := func() rl.Vector3 {
		return rl.Vector3{
			X: rng.Float32()*size - size/2,
			Y: rng.Float32()*size - size/2,
			Z: rng.Float32()*size - size/2,
		}
	}
	offset := func() rl.Vector3 {
		return rl.Vector3{X: rng.Float32()*2 - 1, Y: rng.Float32()*2 - 1, Z: rng.Float32()*2 - 1}
	}
	radius := 0.25 + rng.Float32()*0.5 // 0.25 to 0.75
	c := pos()

	switch kind {
	case geometry.KindSphere:
		return geometry.NewSphere(c, radius)
	case geometry.KindCapsule:
		return geometry.NewCapsule(c, rl.Vector3Add(c, offset()), radius)
	case geometry.KindCylinder:
		return geometry.NewCylinder(c, rl.Vector3Add(c, offset()), radius)
	case geometry.KindCone:
		return geometry.NewConeFromPoints(c, rl.Vector3Add(c, offset()), radius)
	case geometry.KindAABB:
		return geometry.NewAABB(c, rl.Vector3{X: radius, Y: radius * 1.5, Z: radius})
	case geometry.KindOBB:
		rot := rl.Vector3{X: rng.Float32() * 360, Y: rng.Float32() * 360, Z: rng.Float32() * 360}
		return geometry.NewOBB(c, rl.Vector3{X: 1, Y: 0.5, Z: 1.5}, rot)
	default:
		return geometry.NewTriangle(c, rl.Vector3Add(c, offset()), rl.Vector3Add(c, offset()))
	}
}

func randomShapes(rng *rand.Rand, count int) []geometry.Shape {
	// Spawn volume grows with count to keep density reasonable.
	size := float32(20.0) + float32(count)/20.0
	shapes := make([]geometry.Shape, count)
	for i := range shapes {
		shapes[i] = randomShape(rng, benchKinds[rng.Intn(len(benchKinds))], size)
	}
	return shapes
}

func (a *app) benchBroadPhase(count int, opts benchOptions) error {
	if count < 2 {
		return fmt.Errorf("count must be at least 2, got %d", count)
	}
	rng := rand.New(rand.NewSource(opts.seed))
	shapes := randomShapes(rng, count)
	grid := broadphase.NewGrid(opts.cellSize)

	// Warm up
	grid.Overlapping(shapes)

	gridStart := time.Now()
	var gridPairs []broadphase.Pair
	for i := 0; i < opts.iterations; i++ {
		gridPairs = grid.Overlapping(shapes)
	}
	gridTime := time.Since(gridStart) / time.Duration(opts.iterations)

	bruteStart := time.Now()
	var brutePairs []broadphase.Pair
	for i := 0; i < opts.iterations; i++ {
		brutePairs = broadphase.BruteForce(shapes)
	}
	bruteTime := time.Since(bruteStart) / time.Duration(opts.iterations)

	speedup := float64(bruteTime) / float64(max(gridTime, 1))
	fmt.Fprintf(a.out, "%5d shapes: grid %9v (%5d pairs) | brute %10v (%5d pairs) | %.1fx speedup\n",
		count, gridTime.Round(time.Microsecond), len(gridPairs),
		bruteTime.Round(time.Microsecond), len(brutePairs), speedup)

	if len(gridPairs) != len(brutePairs) {
		a.log.Warn("broad phase disagrees with brute force",
			"count", count, "grid", len(gridPairs), "brute", len(brutePairs))
	}
	return nil
}

// benchPairs times geometry.Intersects for every ordered pair of kinds.
func (a *app) benchPairs(opts benchOptions) {
	const samples = 256
	rng := rand.New(rand.NewSource(opts.seed))

	pool := make(map[geometry.Kind][]geometry.Shape, len(benchKinds))
	for _, k := range benchKinds {
		for i := 0; i < samples; i++ {
			// A small volume so roughly half of the pairs touch.
			pool[k] = append(pool[k], randomShape(rng, k, 3))
		}
	}

	fmt.Fprintf(a.out, "%-10s %-10s %10s %8s\n", "a", "b", "ns/op", "hit%")
	for _, ka := range benchKinds {
		for _, kb := range benchKinds {
			hits := 0
			start := time.Now()
			for it := 0; it < opts.iterations; it++ {
				for i := 0; i < samples; i++ {
					if geometry.Intersects(pool[ka][i], pool[kb][(i*7+it)%samples]) {
						hits++
					}
				}
			}
			n := opts.iterations * samples
			perOp := float64(time.Since(start).Nanoseconds()) / float64(n)
			fmt.Fprintf(a.out, "%-10s %-10s %10.1f %7.1f%%\n", ka, kb, perOp, 100*float64(hits)/float64(n))
		}
	}
}

func fmtVec(v rl.Vector3) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v.X, v.Y, v.Z)
}
