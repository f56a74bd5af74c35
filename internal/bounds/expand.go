package bounds

import (
	"geomkit/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ExpandToInclude returns the smallest sphere containing s that also touches
// p: the radius becomes (r + dist)/2 and the center moves toward p by the
// growth. s is returned unchanged when it already contains p.
func ExpandToInclude(s geometry.Sphere, p rl.Vector3) geometry.Sphere {
	d := rl.Vector3Subtract(p, s.Center)
	dist := rl.Vector3Length(d)
	if dist <= s.Radius {
		return s
	}
	newRadius := (s.Radius + dist) / 2
	dir := rl.Vector3Scale(d, 1/dist)
	return geometry.Sphere{
		Center: rl.Vector3Add(s.Center, rl.Vector3Scale(dir, newRadius-s.Radius)),
		Radius: newRadius,
	}
}

// ExpandToIncludeSphere returns the smallest sphere containing both s and b.
func ExpandToIncludeSphere(s, b geometry.Sphere) geometry.Sphere {
	if s.ContainsSphere(b) {
		return s
	}
	if b.ContainsSphere(s) {
		return b
	}
	d := rl.Vector3Subtract(b.Center, s.Center)
	dist := rl.Vector3Length(d)
	newRadius := (dist + s.Radius + b.Radius) / 2
	dir := rl.Vector3Scale(d, 1/dist)
	return geometry.Sphere{
		Center: rl.Vector3Add(s.Center, rl.Vector3Scale(dir, newRadius-s.Radius)),
		Radius: newRadius,
	}
}

// AABBFromPoints returns the tight box around points, or a zero box at the
// origin for empty input.
func AABBFromPoints(points []rl.Vector3) geometry.AABB {
	if len(points) == 0 {
		return geometry.AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = rl.Vector3Min(min, p)
		max = rl.Vector3Max(max, p)
	}
	return geometry.NewAABBFromMinMax(min, max)
}
