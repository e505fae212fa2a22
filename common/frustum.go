package common

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   Vector3f
	Distance float32
}

// SignedDistance returns the signed distance from p to the point. Positive
// values lie on the side the normal points toward.
func (p Plane) SignedDistance(point Vector3f) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// FrustumFromMatrix extracts frustum planes from a projection or combined
// view-projection matrix using the Gribb/Hartmann method. When given a bare
// projection matrix the resulting planes are in camera space, which is the
// space the renderer does all of its culling in.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - m: the projection (or view-projection) matrix, column-major
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func FrustumFromMatrix(m Matrix4) Frustum {
	var f Frustum

	// For column-major matrix M, element M[row][col] is at index col*4 + row.
	row := func(r int) (float32, float32, float32, float32) {
		return m[r], m[4+r], m[8+r], m[12+r]
	}
	x0, y0, z0, w0 := row(0)
	x1, y1, z1, w1 := row(1)
	x2, y2, z2, w2 := row(2)
	x3, y3, z3, w3 := row(3)

	// Left: row3 + row0, Right: row3 - row0
	f.Planes[FrustumLeft] = Plane{Normal: Vec3f(x3+x0, y3+y0, z3+z0), Distance: w3 + w0}
	f.Planes[FrustumRight] = Plane{Normal: Vec3f(x3-x0, y3-y0, z3-z0), Distance: w3 - w0}
	// Bottom: row3 + row1, Top: row3 - row1
	f.Planes[FrustumBottom] = Plane{Normal: Vec3f(x3+x1, y3+y1, z3+z1), Distance: w3 + w1}
	f.Planes[FrustumTop] = Plane{Normal: Vec3f(x3-x1, y3-y1, z3-z1), Distance: w3 - w1}
	// Near: row3 + row2, Far: row3 - row2
	f.Planes[FrustumNear] = Plane{Normal: Vec3f(x3+x2, y3+y2, z3+z2), Distance: w3 + w2}
	f.Planes[FrustumFar] = Plane{Normal: Vec3f(x3-x2, y3-y2, z3-z2), Distance: w3 - w2}

	for i := range f.Planes {
		f.normalizePlane(i)
	}

	return f
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := p.Normal.Norm()
	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.MulScalar(invLen)
		p.Distance *= invLen
	}
}

// IntersectsSphere reports whether the sphere touches the frustum volume.
// The sphere must be expressed in the same space as the frustum planes.
func (f *Frustum) IntersectsSphere(sphere BoundingSphere) bool {
	if sphere.IsEmpty() {
		return false
	}
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(sphere.Center) < -sphere.Radius {
			return false
		}
	}
	return true
}

// BoundingSphere is a spherical bounding volume. A negative radius marks a
// null sphere, distinct from a valid zero-radius sphere.
type BoundingSphere struct {
	Center Vector3f
	Radius float32
}

// EmptyBoundingSphere returns a null bounding sphere.
func EmptyBoundingSphere() BoundingSphere {
	return BoundingSphere{Radius: -1}
}

// IsEmpty reports whether the sphere is null.
func (s BoundingSphere) IsEmpty() bool {
	return s.Radius < 0
}

// Merged returns the minimum-radius sphere containing both s and other.
func (s BoundingSphere) Merged(other BoundingSphere) BoundingSphere {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}

	d := other.Center.Sub(s.Center)
	dist := d.Norm()

	// One sphere contains the other.
	if dist+other.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= other.Radius {
		return other
	}

	radius := (dist + s.Radius + other.Radius) * 0.5
	center := s.Center
	if dist > 0 {
		center = s.Center.Add(d.MulScalar((radius - s.Radius) / dist))
	}
	return BoundingSphere{Center: center, Radius: radius}
}
