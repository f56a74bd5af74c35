package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFrustum() Frustum {
	// Looks down -Z with a 90 degree field of view, so the side planes are
	// at 45 degrees and the near plane is a 2x2 square at z=-1.
	return FrustumFromPerspective(vec(0, 0, 0), vec(0, 0, -1), vec(0, 1, 0), 90, 1, 1, 10)
}

func TestContains(t *testing.T) {
	rotated := NewOBB(vec(0, 0, 0), vec(2, 2, 2), vec(0, 0, 45))

	tests := []struct {
		name         string
		outer, inner Shape
		want         bool
	}{
		{"sphere in sphere", NewSphere(vec(0, 0, 0), 5), NewSphere(vec(1, 0, 0), 2), true},
		{"sphere poking out of sphere", NewSphere(vec(0, 0, 0), 5), NewSphere(vec(4, 0, 0), 2), false},
		{"box in sphere", NewSphere(vec(0, 0, 0), 2), NewAABB(vec(0, 0, 0), vec(1, 1, 1)), true},
		{"box corners outside sphere", NewSphere(vec(0, 0, 0), 1.5), NewAABB(vec(0, 0, 0), vec(1, 1, 1)), false},
		{"cylinder in sphere", NewSphere(vec(0, 0, 0), 1.5), NewCylinder(vec(0, -1, 0), vec(0, 1, 0), 1), true},
		{"cylinder rim outside sphere", NewSphere(vec(0, 0, 0), 1.4), NewCylinder(vec(0, -1, 0), vec(0, 1, 0), 1), false},
		{"capsule in sphere", NewSphere(vec(0, 0, 0), 3), NewCapsule(vec(-1, 0, 0), vec(1, 0, 0), 1), true},
		{"cone in sphere", NewSphere(vec(0, 0, 0), 3), NewCone(vec(0, -1, 0), vec(0, 1, 0), 2, 1), true},

		{"sphere in box", NewAABB(vec(0, 0, 0), vec(2, 2, 2)), NewSphere(vec(0.5, 0, 0), 1), true},
		{"sphere crossing box face", NewAABB(vec(0, 0, 0), vec(2, 2, 2)), NewSphere(vec(1.5, 0, 0), 1), false},
		{"tilted cylinder in box", NewAABB(vec(0, 0, 0), vec(2, 2, 2)), NewCylinder(vec(-1, -1, 0), vec(1, 1, 0), 0.5), true},
		{"box in itself", NewAABB(vec(1, 2, 3), vec(1, 1, 1)), NewAABB(vec(1, 2, 3), vec(1, 1, 1)), true},

		{"sphere in rotated box", rotated, NewSphere(vec(0, 0, 0), 1), true},
		{"point at rotated corner", rotated, Point(vec(1.2, 0, 0)), true},
		{"box outside rotated box", rotated, NewAABB(vec(0, 0, 0), vec(1, 1, 1)), false},

		{"sphere in frustum", testFrustum(), NewSphere(vec(0, 0, -5), 1), true},
		{"sphere crossing frustum sides", testFrustum(), NewSphere(vec(0, 0, -5), 4), false},
		{"sphere behind near plane", testFrustum(), NewSphere(vec(0, 0, -1.2), 0.5), false},

		{"cylinder in capsule", NewCapsule(vec(0, -2, 0), vec(0, 2, 0), 2), NewCylinder(vec(0, -1, 0), vec(0, 1, 0), 1), true},
		{"cylinder in cylinder", NewCylinder(vec(0, -2, 0), vec(0, 2, 0), 2), NewCylinder(vec(0, -1, 0), vec(0, 1, 0), 1), true},
		{"wide cylinder in cylinder", NewCylinder(vec(0, -2, 0), vec(0, 2, 0), 2), NewCylinder(vec(0, -1, 0), vec(0, 1, 0), 2.5), false},
		{"capsule past cylinder cap", NewCylinder(vec(0, -2, 0), vec(0, 2, 0), 2), NewCapsule(vec(0, 0, 0), vec(0, 1.5, 0), 1), false},
		{"sphere in cone", NewCone(vec(0, 0, 0), vec(0, 1, 0), 4, 2), NewSphere(vec(0, 3, 0), 0.5), true},
		{"sphere through cone base", NewCone(vec(0, 0, 0), vec(0, 1, 0), 4, 2), NewSphere(vec(0, 3, 0), 1.2), false},
		{"sphere through cone side", NewCone(vec(0, 0, 0), vec(0, 1, 0), 4, 2), NewSphere(vec(0.9, 2, 0), 0.5), false},

		{"triangle on plane", NewPlane(vec(0, 1, 0), 0), NewTriangle(vec(0, 0, 0), vec(5, 0, 0), vec(0, 0, 5)), true},
		{"triangle off plane", NewPlane(vec(0, 1, 0), 0), NewTriangle(vec(0, 0, 0), vec(5, 1, 0), vec(0, 0, 5)), false},
		{"flipped plane", NewPlane(vec(0, 1, 0), -2), NewPlane(vec(0, -3, 0), 6), true},
		{"parallel plane", NewPlane(vec(0, 1, 0), -2), NewPlane(vec(0, 1, 0), -3), false},
		{"sphere in plane", NewPlane(vec(0, 1, 0), 0), NewSphere(vec(0, 0, 0), 1), false},

		{"edge capsule in triangle", NewTriangle(vec(0, 0, 0), vec(4, 0, 0), vec(0, 4, 0)), NewCapsule(vec(1, 0, 0), vec(3, 0, 0), 0), true},
		{"same point", Point(vec(1, 1, 1)), Point(vec(1, 1, 1)), true},
		{"zero sphere at point", Point(vec(1, 1, 1)), NewSphere(vec(1, 1, 1), 0), true},
		{"sphere at point", Point(vec(1, 1, 1)), NewSphere(vec(1, 1, 1), 0.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.outer, tt.inner))
		})
	}
}

func TestContainsSelf(t *testing.T) {
	shapes := []Shape{
		NewSphere(vec(1, 2, 3), 2),
		NewCapsule(vec(0, 0, 0), vec(1, 2, 0), 0.5),
		NewCylinder(vec(0, 0, 0), vec(0, 0, 3), 1),
		NewAABB(vec(0, 0, 0), vec(1, 2, 3)),
		NewOBB(vec(0, 0, 0), vec(1, 2, 3), vec(30, 0, 0)),
		NewTriangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0)),
		Point(vec(3, 3, 3)),
	}
	for _, s := range shapes {
		assert.True(t, Contains(s, s), "%s should contain itself", s.Kind())
	}
}

func TestContainsImpliesIntersects(t *testing.T) {
	for i, pair := range [][2]Shape{
		{NewSphere(vec(0, 0, 0), 5), NewCone(vec(0, 0, 0), vec(1, 0, 0), 1, 0.5)},
		{NewAABB(vec(0, 0, 0), vec(3, 3, 3)), NewCylinder(vec(0, 0, 0), vec(0, 1, 0), 1)},
		{testFrustum(), NewOBB(vec(0, 0, -6), vec(1, 1, 1), vec(10, 20, 30))},
		{NewCapsule(vec(0, 0, 0), vec(0, 5, 0), 2), NewTriangle(vec(0, 1, 0), vec(1, 2, 0), vec(0, 3, 1))},
	} {
		outer, inner := pair[0], pair[1]
		if !Contains(outer, inner) {
			t.Errorf("case %d: expected %s to contain %s", i, outer.Kind(), inner.Kind())
		}
		if !Intersects(outer, inner) || !Intersects(inner, outer) {
			t.Errorf("case %d: containment should imply intersection both ways", i)
		}
	}
}
