package geometry

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind identifies one of the closed set of shape types.
type Kind int

const (
	KindPoint Kind = iota
	KindSphere
	KindCapsule
	KindCylinder
	KindCone
	KindAABB
	KindOBB
	KindTriangle
	KindPlane
	KindFrustum
	kindCount
)

var kindNames = [kindCount]string{
	KindPoint:    "point",
	KindSphere:   "sphere",
	KindCapsule:  "capsule",
	KindCylinder: "cylinder",
	KindCone:     "cone",
	KindAABB:     "aabb",
	KindOBB:      "obb",
	KindTriangle: "triangle",
	KindPlane:    "plane",
	KindFrustum:  "frustum",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every shape kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind returns the kind with the given lower-case name.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Shape is implemented by Point, Sphere, Capsule, Cylinder, Cone, AABB, OBB,
// Triangle, Plane and Frustum. Contains and Intersects dispatch on Kind, so
// other implementations are not supported.
type Shape interface {
	Kind() Kind
	ContainsPoint(p rl.Vector3) bool
}

// Convex is a bounded shape that can report its support extent. Every
// shape except Plane implements it.
type Convex interface {
	Shape
	Bounds() AABB
	// Extent returns the largest value of dot(dir, x) over the shape.
	Extent(dir rl.Vector3) float32
}

// interval returns the shape's projection [min, max] onto dir.
func interval(s Convex, dir rl.Vector3) (float32, float32) {
	return -s.Extent(scale(dir, -1)), s.Extent(dir)
}

// separatedOn reports whether a and b project to disjoint intervals on axis.
func separatedOn(a, b Convex, axis rl.Vector3) bool {
	if IsZero(axis) {
		return false
	}
	aMin, aMax := interval(a, axis)
	bMin, bMax := interval(b, axis)
	tol := Epsilon * rl.Vector3Length(axis)
	return aMax < bMin-tol || bMax < aMin-tol
}

// straddles reports whether the convex shape touches or crosses plane p.
func straddles(s Convex, p Plane) bool {
	lo, hi := interval(s, p.Normal)
	return lo+p.Distance <= Epsilon && hi+p.Distance >= -Epsilon
}
