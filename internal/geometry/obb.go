package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var worldAxes = [3]rl.Vector3{vecX, vecY, vecZ}

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center  rl.Vector3    // World-space center
	Extents rl.Vector3    // Half-extents along local axes
	Axes    [3]rl.Vector3 // Local right, up and forward axes, orthonormal
}

// NewOBB creates an OBB from center, full size, and euler rotation (degrees)
func NewOBB(center, size, rotation rl.Vector3) OBB {
	rotX := rl.MatrixRotateX(rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotation.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	// Extract rotated axes
	axes := [3]rl.Vector3{
		rl.Vector3Normalize(rl.Vector3{X: rotMatrix.M0, Y: rotMatrix.M1, Z: rotMatrix.M2}),
		rl.Vector3Normalize(rl.Vector3{X: rotMatrix.M4, Y: rotMatrix.M5, Z: rotMatrix.M6}),
		rl.Vector3Normalize(rl.Vector3{X: rotMatrix.M8, Y: rotMatrix.M9, Z: rotMatrix.M10}),
	}
	return OBB{Center: center, Extents: scale(size, 0.5), Axes: axes}
}

// NewOBBFromBox creates an OBB from center, size, rotation, and scale
func NewOBBFromBox(center, size, rotation, scl rl.Vector3) OBB {
	return NewOBB(center, rl.Vector3Multiply(size, scl), rotation)
}

// NewOBBFromAxes creates an OBB from half-size extents and explicit local
// axes. The axes are used as given and must be orthonormal.
func NewOBBFromAxes(center, extents, right, up, forward rl.Vector3) OBB {
	return OBB{Center: center, Extents: extents, Axes: [3]rl.Vector3{right, up, forward}}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation)
func NewAABBasOBB(center, size rl.Vector3) OBB {
	return OBB{Center: center, Extents: scale(size, 0.5), Axes: worldAxes}
}

// Kind implements Shape.
func (o OBB) Kind() Kind { return KindOBB }

// Right returns the local X axis.
func (o OBB) Right() rl.Vector3 { return o.Axes[0] }

// Up returns the local Y axis.
func (o OBB) Up() rl.Vector3 { return o.Axes[1] }

// Forward returns the local Z axis.
func (o OBB) Forward() rl.Vector3 { return o.Axes[2] }

// IsValid reports whether the extents are non-negative and the axes are
// orthonormal within a small tolerance.
func (o OBB) IsValid() bool {
	const tol = 1e-3
	if o.Extents.X < 0 || o.Extents.Y < 0 || o.Extents.Z < 0 {
		return false
	}
	for i := 0; i < 3; i++ {
		if math32.Abs(lengthSq(o.Axes[i])-1) > tol {
			return false
		}
		if math32.Abs(dot(o.Axes[i], o.Axes[(i+1)%3])) > tol {
			return false
		}
	}
	return true
}

// ToLocal expresses the world point p in the box frame.
func (o OBB) ToLocal(p rl.Vector3) rl.Vector3 {
	d := sub(p, o.Center)
	return rl.Vector3{X: dot(d, o.Axes[0]), Y: dot(d, o.Axes[1]), Z: dot(d, o.Axes[2])}
}

// ToWorld maps a point in the box frame back to world space.
func (o OBB) ToWorld(local rl.Vector3) rl.Vector3 {
	result := o.Center
	result = madd(result, o.Axes[0], local.X)
	result = madd(result, o.Axes[1], local.Y)
	result = madd(result, o.Axes[2], local.Z)
	return result
}

// toLocalDir expresses a world direction in the box frame.
func (o OBB) toLocalDir(d rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: dot(d, o.Axes[0]), Y: dot(d, o.Axes[1]), Z: dot(d, o.Axes[2])}
}

// Corners returns the eight world-space corners.
func (o OBB) Corners() [8]rl.Vector3 {
	local := AABB{Extents: o.Extents}.Corners()
	var out [8]rl.Vector3
	for i, c := range local {
		out[i] = o.ToWorld(c)
	}
	return out
}

// projectedRadius returns the half-length of the box's projection onto axis.
func (o OBB) projectedRadius(axis rl.Vector3) float32 {
	return o.Extents.X*math32.Abs(dot(o.Axes[0], axis)) +
		o.Extents.Y*math32.Abs(dot(o.Axes[1], axis)) +
		o.Extents.Z*math32.Abs(dot(o.Axes[2], axis))
}

// Extent returns the largest value of dot(dir, x) over the box.
func (o OBB) Extent(dir rl.Vector3) float32 {
	return dot(dir, o.Center) + o.projectedRadius(dir)
}

// Bounds returns the tight axis-aligned box around the OBB.
func (o OBB) Bounds() AABB {
	return AABB{
		Center: o.Center,
		Extents: rl.Vector3{
			X: o.projectedRadius(vecX),
			Y: o.projectedRadius(vecY),
			Z: o.projectedRadius(vecZ),
		},
	}
}

// ContainsPoint reports whether p lies inside or on the box.
func (o OBB) ContainsPoint(p rl.Vector3) bool {
	return AABB{Extents: o.Extents}.ContainsPoint(o.ToLocal(p))
}

// ClosestPoint returns the point of the OBB nearest to the given point.
func (o OBB) ClosestPoint(point rl.Vector3) rl.Vector3 {
	// Clamp in the box frame, then transform back to world space
	local := AABB{Extents: o.Extents}.ClosestPoint(o.ToLocal(point))
	return o.ToWorld(local)
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(s Sphere) bool {
	return distanceSq(o.ClosestPoint(s.Center), s.Center) <= s.Radius*s.Radius
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	// Vector from A's center to B's center
	t := sub(b.Center, a.Center)

	// We need to test 15 axes:
	// - 3 face normals from A
	// - 3 face normals from B
	// - 9 cross products of edges (A's edges x B's edges)

	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := cross(a.Axes[i], b.Axes[j])
			// Skip near-zero axes (parallel edges)
			if lengthSq(axis) < ParallelEpsilon {
				continue
			}
			if !overlapOnAxis(a, b, rl.Vector3Normalize(axis), t) {
				return false
			}
		}
	}
	return true
}

// biasedRadius is projectedRadius with SATEpsilon added to every
// absolute-dot term.
func (o OBB) biasedRadius(axis rl.Vector3) float32 {
	return o.Extents.X*(math32.Abs(dot(o.Axes[0], axis))+SATEpsilon) +
		o.Extents.Y*(math32.Abs(dot(o.Axes[1], axis))+SATEpsilon) +
		o.Extents.Z*(math32.Abs(dot(o.Axes[2], axis))+SATEpsilon)
}

// overlapOnAxis checks if two OBBs overlap when projected onto a given axis
func overlapOnAxis(a, b OBB, axis, t rl.Vector3) bool {
	distance := math32.Abs(dot(t, axis))
	// If the distance is greater than the sum of projections, there's a separating axis
	return distance <= a.biasedRadius(axis)+b.biasedRadius(axis)
}

// IntersectsAABB tests the OBB against an axis-aligned box.
func (o OBB) IntersectsAABB(b AABB) bool {
	return o.IntersectsOBB(b.ToOBB())
}

// Resolve returns the minimum translation vector to push 'a' out of 'b'
// Returns zero vector if no overlap
func (a OBB) Resolve(b OBB) rl.Vector3 {
	if !a.IntersectsOBB(b) {
		return rl.Vector3Zero()
	}

	t := sub(b.Center, a.Center)
	minPenetration := float32(math32.MaxFloat32)
	var mtv rl.Vector3

	// Test all 15 axes and find the one with minimum penetration
	testAxis := func(axis rl.Vector3) {
		if lengthSq(axis) < ParallelEpsilon {
			return
		}
		axis = rl.Vector3Normalize(axis)

		dist := dot(t, axis)
		penetration := a.projectedRadius(axis) + b.projectedRadius(axis) - math32.Abs(dist)
		if penetration < minPenetration {
			minPenetration = penetration
			// Push in the direction away from B
			if dist < 0 {
				mtv = scale(axis, penetration)
			} else {
				mtv = scale(axis, -penetration)
			}
		}
	}

	for i := 0; i < 3; i++ {
		testAxis(a.Axes[i])
	}
	for i := 0; i < 3; i++ {
		testAxis(b.Axes[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testAxis(cross(a.Axes[i], b.Axes[j]))
		}
	}

	if minPenetration < 0 {
		// Only the bias kept the boxes overlapping.
		return rl.Vector3Zero()
	}
	return mtv
}
