// Package bounds computes bounding volumes for point sets: the exact minimal
// enclosing sphere, a fast approximate sphere and the tight AABB.
package bounds

import (
	"math/rand/v2"

	"geomkit/internal/geometry"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Seeds of the default shuffle, fixed so results repeat across runs.
const (
	DefaultSeed1 uint64 = 0x9e3779b97f4a7c15
	DefaultSeed2 uint64 = 0xbf58476d1ce4e5b9
)

// Tolerance is the slack allowed when deciding whether a point already lies
// inside a candidate sphere.
const Tolerance float32 = 1e-5

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewShuffler returns a deterministic shuffler seeded with seed.
func NewShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, DefaultSeed2))
}

// Compute returns the minimal sphere enclosing points using a fresh shuffler
// seeded with the default seeds. Empty input yields a zero sphere at the
// origin.
func Compute(points []rl.Vector3) geometry.Sphere {
	return ComputeWith(points, rand.New(rand.NewPCG(DefaultSeed1, DefaultSeed2)))
}

// ComputeWith returns the minimal sphere enclosing points, shuffling a copy
// of the input with rng. The caller's slice is never reordered.
//
// The boundary-set recursion of Welzl's algorithm is unrolled into four
// nested loops, one per possible support point, so stack depth is constant.
func ComputeWith(points []rl.Vector3, rng Shuffler) geometry.Sphere {
	n := len(points)
	if n == 0 {
		return geometry.Sphere{}
	}
	p := make([]rl.Vector3, n)
	copy(p, points)
	if rng != nil {
		rng.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	}

	s := geometry.Sphere{Center: p[0]}
	for i := 1; i < n; i++ {
		if encloses(s, p[i]) {
			continue
		}
		s = geometry.Sphere{Center: p[i]}
		for j := 0; j < i; j++ {
			if encloses(s, p[j]) {
				continue
			}
			s = sphere2(p[i], p[j])
			for k := 0; k < j; k++ {
				if encloses(s, p[k]) {
					continue
				}
				s = sphere3(p[i], p[j], p[k])
				for l := 0; l < k; l++ {
					if encloses(s, p[l]) {
						continue
					}
					s = sphere4(p[i], p[j], p[k], p[l])
				}
			}
		}
	}
	return s
}

// encloses reports whether p lies inside s within Tolerance, scaled by the
// sphere's size.
func encloses(s geometry.Sphere, p rl.Vector3) bool {
	r := s.Radius + Tolerance*math32.Max(1, s.Radius)
	d := rl.Vector3Subtract(p, s.Center)
	return rl.Vector3DotProduct(d, d) <= r*r
}

// sphere2 is the smallest sphere through a and b.
func sphere2(a, b rl.Vector3) geometry.Sphere {
	return geometry.Sphere{
		Center: rl.Vector3Lerp(a, b, 0.5),
		Radius: rl.Vector3Distance(a, b) * 0.5,
	}
}

// sphere3 is the smallest sphere through a, b and c: centered on their
// circumcenter. Collinear points fall back to the sphere through a and b
// grown to include c.
func sphere3(a, b, c rl.Vector3) geometry.Sphere {
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	n := rl.Vector3CrossProduct(ab, ac)
	n2 := rl.Vector3DotProduct(n, n)
	scale := rl.Vector3DotProduct(ab, ab) * rl.Vector3DotProduct(ac, ac)
	if n2 <= geometry.Epsilon*scale || n2 < geometry.BarycentricEpsilon {
		return ExpandToInclude(sphere2(a, b), c)
	}
	num := rl.Vector3Add(
		rl.Vector3Scale(rl.Vector3CrossProduct(n, ab), rl.Vector3DotProduct(ac, ac)),
		rl.Vector3Scale(rl.Vector3CrossProduct(ac, n), rl.Vector3DotProduct(ab, ab)),
	)
	center := rl.Vector3Add(a, rl.Vector3Scale(num, 1/(2*n2)))
	return geometry.Sphere{Center: center, Radius: farthest(center, a, b, c)}
}

// sphere4 is the sphere through a, b, c and d, solved with Cramer's rule on
// the three bisector planes through a. Coplanar points fall back to the
// sphere through a, b and c grown to include d.
func sphere4(a, b, c, d rl.Vector3) geometry.Sphere {
	u := rl.Vector3Subtract(b, a)
	v := rl.Vector3Subtract(c, a)
	w := rl.Vector3Subtract(d, a)
	vw := rl.Vector3CrossProduct(v, w)
	det := 2 * rl.Vector3DotProduct(u, vw)
	size := rl.Vector3Length(u) * rl.Vector3Length(v) * rl.Vector3Length(w)
	if math32.Abs(det) <= geometry.Epsilon*size || math32.Abs(det) < geometry.BarycentricEpsilon {
		return ExpandToInclude(sphere3(a, b, c), d)
	}
	num := rl.Vector3Scale(vw, rl.Vector3DotProduct(u, u))
	num = rl.Vector3Add(num, rl.Vector3Scale(rl.Vector3CrossProduct(w, u), rl.Vector3DotProduct(v, v)))
	num = rl.Vector3Add(num, rl.Vector3Scale(rl.Vector3CrossProduct(u, v), rl.Vector3DotProduct(w, w)))
	center := rl.Vector3Add(a, rl.Vector3Scale(num, 1/det))
	return geometry.Sphere{Center: center, Radius: farthest(center, a, b, c, d)}
}

// farthest returns the largest distance from center to any of pts, which
// absorbs rounding in the circumcenter.
func farthest(center rl.Vector3, pts ...rl.Vector3) float32 {
	var r float32
	for _, p := range pts {
		r = math32.Max(r, rl.Vector3Distance(center, p))
	}
	return r
}
