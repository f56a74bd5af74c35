package geometry

import rl "github.com/gen2brain/raylib-go/raylib"

// Point is a single position treated as a shape.
type Point rl.Vector3

// Vector returns the point as a raylib vector.
func (p Point) Vector() rl.Vector3 { return rl.Vector3(p) }

// Kind implements Shape.
func (p Point) Kind() Kind { return KindPoint }

// ContainsPoint reports whether q coincides with p.
func (p Point) ContainsPoint(q rl.Vector3) bool {
	return NearlyEqual(p.Vector(), q, Epsilon)
}

// Bounds returns a zero-size box at the point.
func (p Point) Bounds() AABB {
	return AABB{Center: p.Vector()}
}

// Extent returns dot(dir, p).
func (p Point) Extent(dir rl.Vector3) float32 {
	return dot(dir, p.Vector())
}
