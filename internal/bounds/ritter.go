package bounds

import (
	"geomkit/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Ritter returns an approximate enclosing sphere in two passes: a sphere on
// the diameter between two far-apart points, grown to take in each point
// left outside. The result is at most a few percent larger than Compute's.
func Ritter(points []rl.Vector3) geometry.Sphere {
	if len(points) == 0 {
		return geometry.Sphere{}
	}
	y := farthestFrom(points[0], points)
	z := farthestFrom(y, points)
	s := sphere2(y, z)
	for _, p := range points {
		s = ExpandToInclude(s, p)
	}
	return s
}

func farthestFrom(from rl.Vector3, points []rl.Vector3) rl.Vector3 {
	best := points[0]
	var bestD float32 = -1
	for _, p := range points {
		d := rl.Vector3Subtract(p, from)
		if l := rl.Vector3DotProduct(d, d); l > bestD {
			best, bestD = p, l
		}
	}
	return best
}
