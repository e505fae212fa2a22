package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3Operations(t *testing.T) {
	v := Vec3(1, 2, 3)
	w := Vec3(4, -5, 6)

	assert.Equal(t, Vec3(5, -3, 9), v.Add(w))
	assert.Equal(t, Vec3(-3, 7, -3), v.Sub(w))
	assert.Equal(t, Vec3(2, 4, 6), v.MulScalar(2))
	assert.Equal(t, float64(12), v.Dot(w))
	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
	assert.InDelta(t, 5.0, Vec3(3, 4, 0).Norm(), 1e-12)
}

func TestVector3Normalized(t *testing.T) {
	n := Vec3(0, 3, 4).Normalized()
	assert.InDelta(t, 1.0, n.Norm(), 1e-12)
	assert.InDelta(t, 0.6, n.Y, 1e-12)

	// The zero vector has no direction and is returned unchanged.
	assert.Equal(t, Vec3(0, 0, 0), Vec3(0, 0, 0).Normalized())
}

func TestVector3fUnitOrthogonal(t *testing.T) {
	vectors := []Vector3f{
		Vec3f(1, 0, 0),
		Vec3f(0, 1, 0),
		Vec3f(0, 0, 1),
		Vec3f(1, 2, 3),
		Vec3f(-4, 0.5, 2),
	}

	for _, v := range vectors {
		u := v.UnitOrthogonal()
		assert.InDelta(t, 1.0, float64(u.Norm()), 1e-6)
		assert.InDelta(t, 0.0, float64(u.Dot(v.Normalized())), 1e-6)
	}
}

func TestQuaternionRotate(t *testing.T) {
	rotZ90 := QuaternionFromAxisAngle(Vec3(0, 0, 1), ToRadians(90))

	v := rotZ90.Rotate(Vec3(1, 0, 0))
	assert.InDelta(t, 0.0, v.X, 1e-12)
	assert.InDelta(t, 1.0, v.Y, 1e-12)

	// The conjugate undoes the rotation.
	back := rotZ90.Conjugate().Rotate(v)
	assert.InDelta(t, 1.0, back.X, 1e-12)
	assert.InDelta(t, 0.0, back.Y, 1e-12)
}

func TestQuaternionMulComposesRightToLeft(t *testing.T) {
	rotX90 := QuaternionFromAxisAngle(Vec3(1, 0, 0), ToRadians(90))
	rotZ90 := QuaternionFromAxisAngle(Vec3(0, 0, 1), ToRadians(90))

	// Apply rotZ90 first, then rotX90: X -> Y -> Z.
	v := rotX90.Mul(rotZ90).Rotate(Vec3(1, 0, 0))
	assert.InDelta(t, 0.0, v.X, 1e-12)
	assert.InDelta(t, 0.0, v.Y, 1e-12)
	assert.InDelta(t, 1.0, v.Z, 1e-12)
}

func TestMatrix4FromQuaternionMatchesRotate(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3(0, 1, 0), ToRadians(37)).ToQuaternionf()
	m := Matrix4FromQuaternion(q)

	v := Vec3f(0.3, -1.2, 2.5)
	want := q.Rotate(v)
	x, y, z, w := m.MulVec4(v.X, v.Y, v.Z, 0)

	assert.InDelta(t, float64(want.X), float64(x), 1e-6)
	assert.InDelta(t, float64(want.Y), float64(y), 1e-6)
	assert.InDelta(t, float64(want.Z), float64(z), 1e-6)
	assert.Equal(t, float32(0), w)
}

func TestMatrix4MulAndTranslation(t *testing.T) {
	translate := Matrix4Translation(Vec3f(1, 2, 3))

	x, y, z, w := translate.MulVec4(0, 0, 0, 1)
	assert.Equal(t, [4]float32{1, 2, 3, 1}, [4]float32{x, y, z, w})

	// Composition applies the right-hand matrix first.
	rot := Matrix4FromQuaternion(
		QuaternionFromAxisAngle(Vec3(0, 0, 1), ToRadians(90)).ToQuaternionf())
	m := translate.Mul(rot)
	x, y, _, _ = m.MulVec4(1, 0, 0, 1)
	assert.InDelta(t, 1.0, float64(x), 1e-6)
	assert.InDelta(t, 3.0, float64(y), 1e-6)

	assert.Equal(t, Matrix4Identity(), Matrix4Identity().Mul(Matrix4Identity()))
}

func TestMatrix4TransposeInvertsRotations(t *testing.T) {
	rot := Matrix4FromQuaternion(
		QuaternionFromAxisAngle(Vec3(1, 2, 2).Normalized(), ToRadians(50)).ToQuaternionf())

	composed := rot.Transpose().Mul(rot)
	identity := Matrix4Identity()
	for i := range composed {
		assert.InDelta(t, float64(identity[i]), float64(composed[i]), 1e-6)
	}
}
