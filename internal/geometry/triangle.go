package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle is a triangle made of three vertices.
type Triangle struct {
	A rl.Vector3
	B rl.Vector3
	C rl.Vector3
}

// NewTriangle returns a new Triangle.
func NewTriangle(a, b, c rl.Vector3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// ClosestPointOnTriangle returns the point of triangle abc nearest to p,
// testing the vertex, edge and face Voronoi regions in turn with dot
// products only. A fully degenerate triangle (a=b=c) returns a.
func ClosestPointOnTriangle(p, a, b, c rl.Vector3) rl.Vector3 {
	ab := sub(b, a)
	ac := sub(c, a)
	ap := sub(p, a)

	// Vertex region A
	d1 := dot(ab, ap)
	d2 := dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	// Vertex region B
	bp := sub(p, b)
	d3 := dot(ab, bp)
	d4 := dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	// Edge region AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 && d1-d3 > 0 {
		return madd(a, ab, d1/(d1-d3))
	}

	// Vertex region C
	cp := sub(p, c)
	d5 := dot(ab, cp)
	d6 := dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	// Edge region AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 && d2-d6 > 0 {
		return madd(a, ac, d2/(d2-d6))
	}

	// Edge region BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 && (d4-d3)+(d5-d6) > 0 {
		return madd(b, sub(c, b), (d4-d3)/((d4-d3)+(d5-d6)))
	}

	// Face region
	denom := va + vb + vc
	if math32.Abs(denom) < BarycentricEpsilon {
		// Collinear vertices that slipped past the region tests.
		return closestPointOnTriangleEdges(p, a, b, c)
	}
	inv := 1 / denom
	v := vb * inv
	w := vc * inv
	return add(a, add(scale(ab, v), scale(ac, w)))
}

func closestPointOnTriangleEdges(p, a, b, c rl.Vector3) rl.Vector3 {
	best := ClosestPointOnSegment(a, b, p)
	bestD := distanceSq(best, p)
	if q := ClosestPointOnSegment(b, c, p); distanceSq(q, p) < bestD {
		best, bestD = q, distanceSq(q, p)
	}
	if q := ClosestPointOnSegment(c, a, p); distanceSq(q, p) < bestD {
		best = q
	}
	return best
}

// Barycentric returns the weights (u,v,w) of a, b and c such that
// p = u*a + v*b + w*c for the projection of p onto the triangle's plane.
// A degenerate triangle returns (1,0,0).
func Barycentric(p, a, b, c rl.Vector3) (u, v, w float32) {
	v0 := sub(b, a)
	v1 := sub(c, a)
	v2 := sub(p, a)
	d00 := dot(v0, v0)
	d01 := dot(v0, v1)
	d11 := dot(v1, v1)
	d20 := dot(v2, v0)
	d21 := dot(v2, v1)
	denom := d00*d11 - d01*d01
	if math32.Abs(denom) < BarycentricEpsilon {
		return 1, 0, 0
	}
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w
	return u, v, w
}

// PointInTriangle reports whether p, projected onto the triangle's plane,
// falls inside triangle abc (edges included).
func PointInTriangle(p, a, b, c rl.Vector3) bool {
	if IsDegenerate(a, b, c, Epsilon) {
		return false
	}
	u, v, w := Barycentric(p, a, b, c)
	return u >= -Epsilon && v >= -Epsilon && w >= -Epsilon
}

// TriangleNormal returns the unit normal of abc (counter-clockwise winding),
// or the zero vector when the triangle is degenerate.
func TriangleNormal(a, b, c rl.Vector3) rl.Vector3 {
	return SafeNormalize(cross(sub(b, a), sub(c, a)))
}

// TriangleArea returns the area of abc.
func TriangleArea(a, b, c rl.Vector3) float32 {
	return rl.Vector3Length(cross(sub(b, a), sub(c, a))) * 0.5
}

// IsDegenerate reports whether twice the area of abc is below eps.
func IsDegenerate(a, b, c rl.Vector3, eps float32) bool {
	return rl.Vector3Length(cross(sub(b, a), sub(c, a))) < eps
}

// Centroid returns the average of the three vertices.
func Centroid(a, b, c rl.Vector3) rl.Vector3 {
	return scale(add(add(a, b), c), float32(1)/3)
}

func edgeLengths(a, b, c rl.Vector3) (la, lb, lc float32) {
	// Each length is named after the vertex opposite the edge.
	return rl.Vector3Distance(b, c), rl.Vector3Distance(c, a), rl.Vector3Distance(a, b)
}

// Perimeter returns the sum of the edge lengths.
func Perimeter(a, b, c rl.Vector3) float32 {
	la, lb, lc := edgeLengths(a, b, c)
	return la + lb + lc
}

// Incenter returns the center of the inscribed circle. A triangle with zero
// perimeter returns a.
func Incenter(a, b, c rl.Vector3) rl.Vector3 {
	la, lb, lc := edgeLengths(a, b, c)
	p := la + lb + lc
	if p < Epsilon {
		return a
	}
	sum := add(add(scale(a, la), scale(b, lb)), scale(c, lc))
	return scale(sum, 1/p)
}

// Inradius returns the radius of the inscribed circle, 0 when degenerate.
func Inradius(a, b, c rl.Vector3) float32 {
	p := Perimeter(a, b, c)
	if p < Epsilon {
		return 0
	}
	return 2 * TriangleArea(a, b, c) / p
}

// Circumcenter returns the center of the circle through a, b and c. For a
// degenerate triangle it falls back to the midpoint of the longest edge.
func Circumcenter(a, b, c rl.Vector3) rl.Vector3 {
	ab := sub(b, a)
	ac := sub(c, a)
	n := cross(ab, ac)
	n2 := lengthSq(n)
	if n2 < Epsilon*Epsilon {
		return longestEdgeMidpoint(a, b, c)
	}
	num := add(scale(cross(n, ab), lengthSq(ac)), scale(cross(ac, n), lengthSq(ab)))
	return madd(a, num, 1/(2*n2))
}

// Circumradius returns the radius of the circle through a, b and c, or half
// the longest edge for a degenerate triangle.
func Circumradius(a, b, c rl.Vector3) float32 {
	return rl.Vector3Distance(Circumcenter(a, b, c), a)
}

func longestEdgeMidpoint(a, b, c rl.Vector3) rl.Vector3 {
	p, q := Triangle{A: a, B: b, C: c}.longestEdge()
	return rl.Vector3Lerp(p, q, 0.5)
}

// AspectRatio returns the longest edge divided by the shortest altitude.
// A degenerate triangle returns +Inf.
func AspectRatio(a, b, c rl.Vector3) float32 {
	la, lb, lc := edgeLengths(a, b, c)
	longest := math32.Max(la, math32.Max(lb, lc))
	twiceArea := 2 * TriangleArea(a, b, c)
	if twiceArea < Epsilon || longest < Epsilon {
		return math32.Inf(1)
	}
	// The shortest altitude is the one dropped onto the longest edge.
	return longest * longest / twiceArea
}

// Quality returns 2*inradius/circumradius: 1 for an equilateral triangle,
// approaching 0 as the triangle flattens.
func Quality(a, b, c rl.Vector3) float32 {
	if IsDegenerate(a, b, c, Epsilon) {
		return 0
	}
	r := Circumradius(a, b, c)
	if r < Epsilon {
		return 0
	}
	return 2 * Inradius(a, b, c) / r
}

// ClosestPoint returns the point of t nearest to p.
func (t Triangle) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return ClosestPointOnTriangle(p, t.A, t.B, t.C)
}

// Barycentric returns the barycentric weights of p.
func (t Triangle) Barycentric(p rl.Vector3) (u, v, w float32) {
	return Barycentric(p, t.A, t.B, t.C)
}

// Normal returns the unit normal, zero when degenerate.
func (t Triangle) Normal() rl.Vector3 {
	return TriangleNormal(t.A, t.B, t.C)
}

// Area returns the triangle's area.
func (t Triangle) Area() float32 {
	return TriangleArea(t.A, t.B, t.C)
}

// IsDegenerate reports whether twice the area is below eps.
func (t Triangle) IsDegenerate(eps float32) bool {
	return IsDegenerate(t.A, t.B, t.C, eps)
}

// Centroid returns the vertex average.
func (t Triangle) Centroid() rl.Vector3 {
	return Centroid(t.A, t.B, t.C)
}

// Plane returns the plane through the triangle.
func (t Triangle) Plane() Plane {
	return NewPlaneFromPoints(t.A, t.B, t.C)
}

// Bounds returns the tight axis-aligned box around the vertices.
func (t Triangle) Bounds() AABB {
	return NewAABBFromMinMax(
		rl.Vector3Min(t.A, rl.Vector3Min(t.B, t.C)),
		rl.Vector3Max(t.A, rl.Vector3Max(t.B, t.C)),
	)
}

// Kind implements Shape.
func (t Triangle) Kind() Kind { return KindTriangle }

// ContainsPoint reports whether p lies on the triangle.
func (t Triangle) ContainsPoint(p rl.Vector3) bool {
	return distanceSq(t.ClosestPoint(p), p) <= Epsilon*Epsilon
}

// Extent returns the largest value of dot(dir, x) over the vertices.
func (t Triangle) Extent(dir rl.Vector3) float32 {
	return math32.Max(dot(dir, t.A), math32.Max(dot(dir, t.B), dot(dir, t.C)))
}

// Vertices returns A, B and C.
func (t Triangle) Vertices() [3]rl.Vector3 {
	return [3]rl.Vector3{t.A, t.B, t.C}
}
