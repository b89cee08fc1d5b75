package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestQuatAngleAxisUnitNorm(t *testing.T) {
	axes := []Vec3{
		NewVec3XAxis(),
		NewVec3YAxis(),
		NewVec3ZAxis(),
		NewVec3(1, 2, 3).Normalized(),
		NewVec3(-0.3, 0.1, -0.8).Normalized(),
	}
	angles := []float32{0, 15, 45, 90, 180, 270, -33.5, 720}
	for _, axis := range axes {
		for _, angle := range angles {
			q := QuatAngleAxis(angle, axis)
			assert.InDelta(t, 1, q.Length(), 1e-6, "angle %v axis %v", angle, axis)
		}
	}
}

func TestQuatAngleAxisComponents(t *testing.T) {
	h := math32.Sqrt(0.5)
	q := QuatAngleAxis(90, NewVec3ZAxis())
	assert.True(t, q.Compare(Quaternion{0, 0, h, h}, tol), "%v", q)

	// the axis is used as given, not normalized
	q = QuatAngleAxis(180, NewVec3(0, 2, 0))
	assert.InDelta(t, 2, q.Y, 1e-6)
	assert.InDelta(t, 0, q.W, 1e-6)
}

func TestQuatMul(t *testing.T) {
	id := NewQuatIdentity()
	q := QuatAngleAxis(30, NewVec3(1, 2, 3).Normalized())
	assert.True(t, QuatMul(id, q).Compare(q, tol))
	assert.True(t, QuatMul(q, id).Compare(q, tol))

	// two quarter turns about Z make a half turn
	z90 := QuatAngleAxis(90, NewVec3ZAxis())
	assert.True(t, z90.Mul(z90).Compare(QuatAngleAxis(180, NewVec3ZAxis()), tol))

	// q * conj(q) is the identity for unit quaternions
	assert.True(t, q.Mul(q.Conjugate()).Compare(id, tol))

	// Hamilton basis: i*j = k
	i := Quaternion{1, 0, 0, 0}
	j := Quaternion{0, 1, 0, 0}
	assert.Equal(t, Quaternion{0, 0, 1, 0}, QuatMul(i, j))
	assert.Equal(t, Quaternion{0, 0, -1, 0}, QuatMul(j, i))
}

func TestQuatFromRotationOrder(t *testing.T) {
	assert.True(t, QuatFromRotation(NewVec3Zero()).Compare(NewQuatIdentity(), tol))
	assert.True(t, QuatFromRotation(NewVec3(90, 0, 0)).Compare(QuatAngleAxis(90, NewVec3XAxis()), tol))

	x := QuatAngleAxis(90, NewVec3XAxis())
	y := QuatAngleAxis(90, NewVec3YAxis())
	z := QuatAngleAxis(90, NewVec3ZAxis())

	got := QuatFromRotation(NewVec3(90, 90, 90))
	assert.True(t, got.Compare(z.Mul(y.Mul(x)), tol), "X first, then Y, then Z")
	assert.False(t, got.Compare(x.Mul(y.Mul(z)), tol), "reverse order must differ")
}

func TestQuatRotateVec3(t *testing.T) {
	v := QuatAngleAxis(90, NewVec3ZAxis()).RotateVec3(NewVec3XAxis())
	assert.True(t, v.Compare(NewVec3YAxis(), tol), "%v", v)

	// X is applied before Y: x-axis -> (X90) x-axis -> (Y90) -z
	v = QuatFromRotation(NewVec3(90, 90, 0)).RotateVec3(NewVec3XAxis())
	assert.True(t, v.Compare(NewVec3(0, 0, -1), tol), "%v", v)
}
