package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Separating-axis tests for triangles against boxes and other triangles.
// Every candidate axis is normalized before use; axes that collapse to zero
// (parallel edges, degenerate triangles) are skipped rather than treated as
// separating.

// triangleInterval projects the three vertices onto axis.
func triangleInterval(v [3]rl.Vector3, axis rl.Vector3) (float32, float32) {
	p0, p1, p2 := dot(v[0], axis), dot(v[1], axis), dot(v[2], axis)
	return math32.Min(p0, math32.Min(p1, p2)), math32.Max(p0, math32.Max(p1, p2))
}

// triangleSeparatedFromBox reports whether axis separates the triangle v,
// given in the box frame, from the box centered at the origin with half
// extents e.
func triangleSeparatedFromBox(v [3]rl.Vector3, e, axis rl.Vector3) bool {
	axis = SafeNormalize(axis)
	if IsZero(axis) {
		return false
	}
	r := e.X*(math32.Abs(axis.X)+SATEpsilon) +
		e.Y*(math32.Abs(axis.Y)+SATEpsilon) +
		e.Z*(math32.Abs(axis.Z)+SATEpsilon)
	lo, hi := triangleInterval(v, axis)
	return hi < -r || lo > r
}

// triangleOverlapsLocalBox runs the 13-axis test: three box normals, the
// triangle normal and the nine edge cross products.
func triangleOverlapsLocalBox(v [3]rl.Vector3, e rl.Vector3) bool {
	for _, axis := range worldAxes {
		if triangleSeparatedFromBox(v, e, axis) {
			return false
		}
	}
	edges := [3]rl.Vector3{sub(v[1], v[0]), sub(v[2], v[1]), sub(v[0], v[2])}
	if triangleSeparatedFromBox(v, e, cross(edges[0], edges[1])) {
		return false
	}
	for _, axis := range worldAxes {
		for _, edge := range edges {
			if triangleSeparatedFromBox(v, e, cross(axis, edge)) {
				return false
			}
		}
	}
	return true
}

// IntersectsAABB tests the triangle against an axis-aligned box with the
// separating-axis theorem.
func (t Triangle) IntersectsAABB(b AABB) bool {
	v := [3]rl.Vector3{sub(t.A, b.Center), sub(t.B, b.Center), sub(t.C, b.Center)}
	return triangleOverlapsLocalBox(v, b.Extents)
}

// IntersectsOBB tests the triangle against an oriented box with the
// separating-axis theorem, working in the box frame.
func (t Triangle) IntersectsOBB(o OBB) bool {
	v := [3]rl.Vector3{o.ToLocal(t.A), o.ToLocal(t.B), o.ToLocal(t.C)}
	return triangleOverlapsLocalBox(v, o.Extents)
}

// IntersectsTriangle tests two triangles with the separating-axis theorem.
// Besides both normals and the nine edge cross products it tries each
// edge's in-plane normal and the edge directions themselves, which covers
// coplanar and degenerate triangles.
func (t Triangle) IntersectsTriangle(u Triangle) bool {
	a, b := t.Vertices(), u.Vertices()
	ea := [3]rl.Vector3{sub(a[1], a[0]), sub(a[2], a[1]), sub(a[0], a[2])}
	eb := [3]rl.Vector3{sub(b[1], b[0]), sub(b[2], b[1]), sub(b[0], b[2])}
	na := cross(ea[0], ea[1])
	nb := cross(eb[0], eb[1])

	if IsZero(na) && IsZero(nb) {
		// Both collapse to segments, which have no usable face axis.
		p0, q0 := t.longestEdge()
		p1, q1 := u.longestEdge()
		return SegmentSegmentDistanceSquared(p0, q0, p1, q1) <= Epsilon*Epsilon
	}

	separated := func(axis rl.Vector3) bool {
		axis = SafeNormalize(axis)
		if IsZero(axis) {
			return false
		}
		aMin, aMax := triangleInterval(a, axis)
		bMin, bMax := triangleInterval(b, axis)
		return aMax < bMin-Epsilon || bMax < aMin-Epsilon
	}

	if separated(na) || separated(nb) {
		return false
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if separated(cross(ea[i], eb[j])) {
				return false
			}
		}
	}
	for _, n := range [2]rl.Vector3{na, nb} {
		for i := 0; i < 3; i++ {
			if separated(cross(n, ea[i])) || separated(cross(n, eb[i])) {
				return false
			}
		}
	}
	for i := 0; i < 3; i++ {
		if separated(ea[i]) || separated(eb[i]) {
			return false
		}
	}
	return true
}

// longestEdge returns the endpoints of the triangle's longest edge.
func (t Triangle) longestEdge() (rl.Vector3, rl.Vector3) {
	la, lb, lc := edgeLengths(t.A, t.B, t.C)
	switch {
	case la >= lb && la >= lc:
		return t.B, t.C
	case lb >= lc:
		return t.C, t.A
	default:
		return t.A, t.B
	}
}
