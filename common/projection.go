package common

import (
	"github.com/chewxy/math32"
)

// ProjectionType identifies the kind of planar projection.
type ProjectionType int

const (
	// ProjectionPerspective is equivalent to an OpenGL glFrustum projection.
	ProjectionPerspective ProjectionType = iota

	// ProjectionOrthographic is equivalent to an OpenGL glOrtho projection.
	ProjectionOrthographic
)

// Chirality identifies the handedness of a projection. Geometry is authored
// for right-handed projections; a left-handed projection requires reversing
// the triangle winding order when drawing.
type Chirality int

const (
	// LeftHanded marks a mirrored projection (used for cube map faces).
	LeftHanded Chirality = iota

	// RightHanded is the ordinary projection handedness.
	RightHanded
)

// PlanarProjection describes a perspective or orthographic projection via
// its six clipping plane coordinates. It is a plain value type; deriving the
// projection matrix or culling frustum is cheap enough to do per use.
type PlanarProjection struct {
	projType     ProjectionType
	left         float32
	right        float32
	bottom       float32
	top          float32
	nearDistance float32
	farDistance  float32
}

// NewPlanarProjection creates a projection from explicit clipping plane
// coordinates, matching glFrustum for perspective and glOrtho for
// orthographic projections.
//
// Parameters:
//   - projType: ProjectionPerspective or ProjectionOrthographic
//   - left, right: coordinates of the vertical clipping planes
//   - bottom, top: coordinates of the horizontal clipping planes
//   - nearDistance, farDistance: distances to the depth clipping planes (positive)
//
// Returns:
//   - PlanarProjection: the projection value
func NewPlanarProjection(projType ProjectionType, left, right, bottom, top, nearDistance, farDistance float32) PlanarProjection {
	return PlanarProjection{
		projType:     projType,
		left:         left,
		right:        right,
		bottom:       bottom,
		top:          top,
		nearDistance: nearDistance,
		farDistance:  farDistance,
	}
}

// CreatePerspective creates a right-handed symmetric perspective projection,
// equivalent to gluPerspective(fovY, aspectRatio, near, far).
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspectRatio: ratio of width to height
//   - nearDistance, farDistance: distances to the depth clipping planes
//
// Returns:
//   - PlanarProjection: the projection value
func CreatePerspective(fovY, aspectRatio, nearDistance, farDistance float32) PlanarProjection {
	y := math32.Tan(0.5*fovY) * nearDistance
	x := y * aspectRatio
	return NewPlanarProjection(ProjectionPerspective, -x, x, -y, y, nearDistance, farDistance)
}

// CreatePerspectiveLH creates a left-handed symmetric perspective
// projection. Used when drawing into cube map faces.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspectRatio: ratio of width to height
//   - nearDistance, farDistance: distances to the depth clipping planes
//
// Returns:
//   - PlanarProjection: the projection value
func CreatePerspectiveLH(fovY, aspectRatio, nearDistance, farDistance float32) PlanarProjection {
	p := CreatePerspective(fovY, aspectRatio, nearDistance, farDistance)
	p.left, p.right = -p.left, -p.right
	return p
}

// CreateOrthographic creates an orthographic projection, equivalent to
// glOrtho(left, right, bottom, top, near, far).
func CreateOrthographic(left, right, bottom, top, nearDistance, farDistance float32) PlanarProjection {
	return NewPlanarProjection(ProjectionOrthographic, left, right, bottom, top, nearDistance, farDistance)
}

// Type returns the projection type.
func (p PlanarProjection) Type() ProjectionType {
	return p.projType
}

// NearDistance returns the distance to the front clipping plane.
func (p PlanarProjection) NearDistance() float32 {
	return p.nearDistance
}

// FarDistance returns the distance to the rear clipping plane.
func (p PlanarProjection) FarDistance() float32 {
	return p.farDistance
}

// AspectRatio returns the ratio of width to height.
func (p PlanarProjection) AspectRatio() float32 {
	return (p.right - p.left) / (p.top - p.bottom)
}

// FovY returns the vertical field of view in radians.
func (p PlanarProjection) FovY() float32 {
	return math32.Atan(math32.Abs(p.top-p.bottom)*0.5/p.nearDistance) * 2
}

// Chirality returns the handedness of the projection.
func (p PlanarProjection) Chirality() Chirality {
	if (p.right < p.left) != (p.top < p.bottom) {
		return LeftHanded
	}
	return RightHanded
}

// Matrix returns the 4x4 matrix applying the projection to a homogeneous
// coordinate.
func (p PlanarProjection) Matrix() Matrix4 {
	x := p.right - p.left
	y := p.top - p.bottom
	z := p.farDistance - p.nearDistance

	var m Matrix4
	switch p.projType {
	case ProjectionPerspective:
		near2 := p.nearDistance * 2
		m[0] = near2 / x
		m[5] = near2 / y
		m[8] = (p.right + p.left) / x
		m[9] = (p.top + p.bottom) / y
		m[10] = -(p.farDistance + p.nearDistance) / z
		m[11] = -1
		m[14] = -(2 * p.farDistance * p.nearDistance) / z

	case ProjectionOrthographic:
		m[0] = 2 / x
		m[5] = 2 / y
		m[10] = -2 / z
		m[12] = -(p.right + p.left) / x
		m[13] = -(p.top + p.bottom) / y
		m[14] = -(p.farDistance + p.nearDistance) / z
		m[15] = 1
	}
	return m
}

// Frustum returns the camera-space culling volume for this projection: a box
// for orthographic projections, a truncated pyramid for perspective ones.
func (p PlanarProjection) Frustum() Frustum {
	return FrustumFromMatrix(p.Matrix())
}

// Slice returns a projection identical to p except for the near and far
// planes. For perspective projections the side planes are rescaled so the
// field of view is preserved at the new near distance.
//
// Parameters:
//   - nearDistance, farDistance: the new depth clipping plane distances
//
// Returns:
//   - PlanarProjection: the sliced projection
func (p PlanarProjection) Slice(nearDistance, farDistance float32) PlanarProjection {
	if p.projType == ProjectionOrthographic {
		return NewPlanarProjection(p.projType, p.left, p.right, p.bottom, p.top, nearDistance, farDistance)
	}

	nearRatio := float64(nearDistance) / float64(p.nearDistance)
	return NewPlanarProjection(p.projType,
		float32(float64(p.left)*nearRatio), float32(float64(p.right)*nearRatio),
		float32(float64(p.bottom)*nearRatio), float32(float64(p.top)*nearRatio),
		nearDistance, farDistance)
}
