// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"math"

	"github.com/chewxy/math32"
)

// Vector3 is a double-precision 3D vector. World-space positions span an
// enormous range of scale (meters to hundreds of astronomical units), so
// positions and camera-relative offsets are always carried at double
// precision and only converted to single precision once they are expressed
// relative to the camera.
type Vector3 struct {
	X, Y, Z float64
}

// Vec3 returns a new Vector3 with the given components.
func Vec3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns the component-wise difference v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// MulScalar returns v scaled by s.
func (v Vector3) MulScalar(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and w.
func (v Vector3) Dot(w Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vector3) Normalized() Vector3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.MulScalar(1 / n)
}

// ToVector3f converts v to single precision. Only safe once the vector is
// expressed relative to the camera.
func (v Vector3) ToVector3f() Vector3f {
	return Vector3f{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Vector3f is a single-precision 3D vector used for camera-space work.
type Vector3f struct {
	X, Y, Z float32
}

// Vec3f returns a new Vector3f with the given components.
func Vec3f(x, y, z float32) Vector3f {
	return Vector3f{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum v + w.
func (v Vector3f) Add(w Vector3f) Vector3f {
	return Vector3f{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns the component-wise difference v - w.
func (v Vector3f) Sub(w Vector3f) Vector3f {
	return Vector3f{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// MulScalar returns v scaled by s.
func (v Vector3f) MulScalar(s float32) Vector3f {
	return Vector3f{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and w.
func (v Vector3f) Dot(w Vector3f) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vector3f) Cross(w Vector3f) Vector3f {
	return Vector3f{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vector3f) Norm() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vector3f) Normalized() Vector3f {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.MulScalar(1 / n)
}

// UnitOrthogonal returns a unit vector orthogonal to v, built by crossing v
// with the axis along which v has its smallest component.
func (v Vector3f) UnitOrthogonal() Vector3f {
	ax, ay, az := math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)
	var other Vector3f
	switch {
	case ax <= ay && ax <= az:
		other = Vector3f{X: 1}
	case ay <= az:
		other = Vector3f{Y: 1}
	default:
		other = Vector3f{Z: 1}
	}
	return v.Cross(other).Normalized()
}

// Quaternion is a double-precision rotation quaternion (W + Xi + Yj + Zk).
type Quaternion struct {
	W, X, Y, Z float64
}

// QuaternionIdentity returns the identity rotation.
func QuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAxisAngle builds a rotation of angle radians about the given
// axis. The axis must be normalized.
func QuaternionFromAxisAngle(axis Vector3, angle float64) Quaternion {
	s, c := math.Sincos(angle * 0.5)
	return Quaternion{W: c, X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// Mul returns the composed rotation q * r (r applied first).
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conjugate returns the inverse rotation (for unit quaternions).
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Rotate applies the rotation to v.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	u := Vector3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}

// ToQuaternionf converts q to single precision.
func (q Quaternion) ToQuaternionf() Quaternionf {
	return Quaternionf{W: float32(q.W), X: float32(q.X), Y: float32(q.Y), Z: float32(q.Z)}
}

// Quaternionf is a single-precision rotation quaternion used for model
// orientations once positions have been reduced to camera-relative
// coordinates.
type Quaternionf struct {
	W, X, Y, Z float32
}

// QuaternionfIdentity returns the identity rotation.
func QuaternionfIdentity() Quaternionf {
	return Quaternionf{W: 1}
}

// Conjugate returns the inverse rotation (for unit quaternions).
func (q Quaternionf) Conjugate() Quaternionf {
	return Quaternionf{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Rotate applies the rotation to v.
func (q Quaternionf) Rotate(v Vector3f) Vector3f {
	u := Vector3f{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}

// Matrix4 is a 4x4 single-precision matrix stored in column-major order
// (OpenGL/WebGPU convention): element (row, col) is at index col*4 + row.
type Matrix4 [16]float32

// Matrix4Identity returns the identity matrix.
func Matrix4Identity() Matrix4 {
	var m Matrix4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Mul returns the matrix product m * n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 4; i++ { // column of n
		for j := 0; j < 4; j++ { // row of m
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += m[k*4+j] * n[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// MulVec4 transforms the homogeneous coordinate (x, y, z, w).
func (m Matrix4) MulVec4(x, y, z, w float32) (float32, float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12]*w,
		m[1]*x + m[5]*y + m[9]*z + m[13]*w,
		m[2]*x + m[6]*y + m[10]*z + m[14]*w,
		m[3]*x + m[7]*y + m[11]*z + m[15]*w
}

// Matrix4FromQuaternion builds the rotation matrix for q.
func Matrix4FromQuaternion(q Quaternionf) Matrix4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, yy, zz := q.X*x2, q.Y*y2, q.Z*z2
	xy, xz, yz := q.X*y2, q.X*z2, q.Y*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	m := Matrix4Identity()
	m[0] = 1 - (yy + zz)
	m[1] = xy + wz
	m[2] = xz - wy
	m[4] = xy - wz
	m[5] = 1 - (xx + zz)
	m[6] = yz + wx
	m[8] = xz + wy
	m[9] = yz - wx
	m[10] = 1 - (xx + yy)
	return m
}

// Matrix4Translation builds a translation matrix for t.
func Matrix4Translation(t Vector3f) Matrix4 {
	m := Matrix4Identity()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Transpose returns the transpose of m. For a pure rotation this is the
// inverse.
func (m Matrix4) Transpose() Matrix4 {
	var t Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			t[row*4+col] = m[col*4+row]
		}
	}
	return t
}

// ToRadians converts degrees to radians.
func ToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
