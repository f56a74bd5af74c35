package geometry

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	unit := NewAABB(vec(0, 0, 0), vec(1, 1, 1))

	tests := []struct {
		name string
		a, b Shape
		want rl.Vector3
	}{
		{"sphere out of sphere", NewSphere(vec(1.5, 0, 0), 1), NewSphere(vec(0, 0, 0), 1), vec(0.5, 0, 0)},
		{"coincident spheres", NewSphere(vec(0, 0, 0), 1), NewSphere(vec(0, 0, 0), 1), vec(0, 2, 0)},
		{"separate spheres", NewSphere(vec(3, 0, 0), 1), NewSphere(vec(0, 0, 0), 1), vec(0, 0, 0)},
		{"sphere out of box", NewSphere(vec(1.5, 0, 0), 1), unit, vec(0.5, 0, 0)},
		{"box out of sphere", unit, NewSphere(vec(1.5, 0, 0), 1), vec(-0.5, 0, 0)},
		{"sphere center inside box", NewSphere(vec(0.8, 0, 0), 0.5), unit, vec(0.7, 0, 0)},
		{"box out of box", unit, NewAABB(vec(1.5, 0, 0), vec(1, 1, 1)), vec(-0.5, 0, 0)},
		{"obb out of obb", NewAABBasOBB(vec(0, 0, 0), vec(2, 2, 2)), NewAABBasOBB(vec(0, 1.5, 0), vec(2, 2, 2)), vec(0, -0.5, 0)},
		{"box out of obb", unit, NewAABBasOBB(vec(0, 0, -1.5), vec(2, 2, 2)), vec(0, 0, 0.5)},
		{"separate boxes", unit, NewAABB(vec(3, 0, 0), vec(1, 1, 1)), vec(0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.a, tt.b)
			require.True(t, ok)
			assertVec(t, tt.want, got, 1e-5)
		})
	}
}

func TestResolveSeparates(t *testing.T) {
	a := NewOBB(vec(0, 0, 0), vec(2, 1, 1), vec(0, 30, 0))
	b := NewOBB(vec(1, 0.3, 0), vec(1, 1, 1), vec(10, 0, 20))
	require.True(t, Intersects(a, b))

	mtv := a.Resolve(b)
	require.NotEqual(t, rl.Vector3{}, mtv)

	// Pushing slightly past the vector leaves the boxes apart.
	a.Center = rl.Vector3Add(a.Center, rl.Vector3Scale(mtv, 1.01))
	assert.False(t, a.IntersectsOBB(b))
}

func TestResolveUnsupportedPair(t *testing.T) {
	_, ok := Resolve(NewCapsule(vec(0, 0, 0), vec(1, 0, 0), 1), NewSphere(vec(0, 0, 0), 1))
	assert.False(t, ok)
}
