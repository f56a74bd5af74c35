package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum plane indices.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum represents the 6 planes of a view frustum. Normals point into the
// volume, so a point is inside when every signed distance is non-negative.
//
// The constructors cache the corners; a Frustum assembled by hand computes
// them on demand instead.
type Frustum struct {
	Planes [6]Plane // left, right, bottom, top, near, far

	pts    [8]rl.Vector3
	closed bool // pts are the true corners
	cached bool
}

// withCorners returns f with its corners cached.
func (f Frustum) withCorners() Frustum {
	f.cached = false
	f.pts, f.closed = f.corners()
	f.cached = true
	return f
}

// NewFrustum creates a frustum from six planes ordered left, right, bottom,
// top, near, far. Each plane is normalized.
func NewFrustum(planes [6]Plane) Frustum {
	var f Frustum
	for i, p := range planes {
		f.Planes[i] = p.Normalize()
	}
	return f.withCorners()
}

// FrustumFromMatrix extracts frustum planes from a view-projection matrix
// built as rl.MatrixMultiply(view, proj).
// Uses the Gribb/Hartmann method for plane extraction
func FrustumFromMatrix(vp rl.Matrix) Frustum {
	var f Frustum

	// Left plane: row4 + row1
	f.Planes[PlaneLeft] = NewPlane(rl.Vector3{
		X: vp.M3 + vp.M0,
		Y: vp.M7 + vp.M4,
		Z: vp.M11 + vp.M8,
	}, vp.M15+vp.M12)

	// Right plane: row4 - row1
	f.Planes[PlaneRight] = NewPlane(rl.Vector3{
		X: vp.M3 - vp.M0,
		Y: vp.M7 - vp.M4,
		Z: vp.M11 - vp.M8,
	}, vp.M15-vp.M12)

	// Bottom plane: row4 + row2
	f.Planes[PlaneBottom] = NewPlane(rl.Vector3{
		X: vp.M3 + vp.M1,
		Y: vp.M7 + vp.M5,
		Z: vp.M11 + vp.M9,
	}, vp.M15+vp.M13)

	// Top plane: row4 - row2
	f.Planes[PlaneTop] = NewPlane(rl.Vector3{
		X: vp.M3 - vp.M1,
		Y: vp.M7 - vp.M5,
		Z: vp.M11 - vp.M9,
	}, vp.M15-vp.M13)

	// Near plane: row4 + row3
	f.Planes[PlaneNear] = NewPlane(rl.Vector3{
		X: vp.M3 + vp.M2,
		Y: vp.M7 + vp.M6,
		Z: vp.M11 + vp.M10,
	}, vp.M15+vp.M14)

	// Far plane: row4 - row3
	f.Planes[PlaneFar] = NewPlane(rl.Vector3{
		X: vp.M3 - vp.M2,
		Y: vp.M7 - vp.M6,
		Z: vp.M11 - vp.M10,
	}, vp.M15-vp.M14)

	return f.withCorners()
}

// FrustumFromPerspective builds the frustum of a perspective camera.
// fovy is the vertical field of view in degrees.
func FrustumFromPerspective(eye, target, up rl.Vector3, fovy, aspect, near, far float32) Frustum {
	view := rl.MatrixLookAt(eye, target, up)
	proj := rl.MatrixPerspective(fovy, aspect, near, far)
	return FrustumFromMatrix(rl.MatrixMultiply(view, proj))
}

// FrustumFromOrthographic builds the box-shaped frustum of an orthographic
// camera whose view is height units tall.
func FrustumFromOrthographic(eye, target, up rl.Vector3, height, aspect, near, far float32) Frustum {
	halfH := height / 2.0
	halfW := halfH * aspect
	view := rl.MatrixLookAt(eye, target, up)
	proj := rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, near, far)
	return FrustumFromMatrix(rl.MatrixMultiply(view, proj))
}

// Kind implements Shape.
func (f Frustum) Kind() Kind { return KindFrustum }

// IsValid reports whether every plane has a unit normal and the six planes
// enclose a region with well-defined corners.
func (f Frustum) IsValid() bool {
	for _, p := range f.Planes {
		if !p.IsValid() {
			return false
		}
	}
	_, ok := f.corners()
	return ok
}

// Corners returns the eight corners: bit 0 of the index selects the right
// plane over the left, bit 1 top over bottom and bit 2 far over near.
// Corners whose planes do not meet are left at the origin.
func (f Frustum) Corners() [8]rl.Vector3 {
	c, _ := f.corners()
	return c
}

func (f Frustum) corners() ([8]rl.Vector3, bool) {
	if f.cached {
		return f.pts, f.closed
	}
	var out [8]rl.Vector3
	ok := true
	for i := range out {
		x, y, z := f.Planes[PlaneLeft], f.Planes[PlaneBottom], f.Planes[PlaneNear]
		if i&1 != 0 {
			x = f.Planes[PlaneRight]
		}
		if i&2 != 0 {
			y = f.Planes[PlaneTop]
		}
		if i&4 != 0 {
			z = f.Planes[PlaneFar]
		}
		p, hit := intersectPlanes(x, y, z)
		if !hit {
			ok = false
		}
		out[i] = p
	}
	return out, ok
}

// Extent returns the largest value of dot(dir, x) over the frustum, which is
// reached at one of its corners.
func (f Frustum) Extent(dir rl.Vector3) float32 {
	corners := f.Corners()
	best := -float32(math32.MaxFloat32)
	for _, c := range corners {
		best = math32.Max(best, dot(dir, c))
	}
	return best
}

// Bounds returns the axis-aligned box around the corners.
func (f Frustum) Bounds() AABB {
	corners := f.Corners()
	min, max := corners[0], corners[0]
	for _, c := range corners[1:] {
		min = rl.Vector3Min(min, c)
		max = rl.Vector3Max(max, c)
	}
	return NewAABBFromMinMax(min, max)
}

// ContainsPoint tests if a point is inside the frustum
func (f Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := 0; i < 6; i++ {
		if f.Planes[i].SignedDistance(point) < -Epsilon {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if a sphere is inside or intersects the frustum.
// Spheres near a corner but outside the volume may still report true.
func (f Frustum) IntersectsSphere(s Sphere) bool {
	for i := 0; i < 6; i++ {
		// If sphere is completely behind any plane, it's outside
		if f.Planes[i].SignedDistance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// containsConvex reports whether the convex set with support function
// extent lies inside every plane.
func (f Frustum) containsConvex(extent func(rl.Vector3) float32) bool {
	for _, p := range f.Planes {
		// Smallest signed distance over the shape.
		if -extent(scale(p.Normal, -1))+p.Distance < -Epsilon {
			return false
		}
	}
	return true
}

// overlapsConvex reports whether the convex set with support function
// extent is not entirely behind any plane.
func (f Frustum) overlapsConvex(extent func(rl.Vector3) float32) bool {
	for _, p := range f.Planes {
		if extent(p.Normal)+p.Distance < -Epsilon {
			return false
		}
	}
	return true
}
