package geometry

import (
	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/universe"
)

// SphereGeometryBuilderOption is a functional option for configuring a
// SphereGeometry during its creation.
type SphereGeometryBuilderOption func(*sphereGeometryImpl)

// WithSphereColor sets the surface color.
//
// Parameters:
//   - color: the surface color
//
// Returns:
//   - SphereGeometryBuilderOption: the option function
func WithSphereColor(color common.Spectrum) SphereGeometryBuilderOption {
	return func(s *sphereGeometryImpl) {
		s.color = color
	}
}

// WithOpaque controls whether the sphere is drawn in the opaque pass.
//
// Parameters:
//   - opaque: true for opaque, false for translucent
//
// Returns:
//   - SphereGeometryBuilderOption: the option function
func WithOpaque(opaque bool) SphereGeometryBuilderOption {
	return func(s *sphereGeometryImpl) {
		s.opaque = opaque
	}
}

// WithShadowCasting controls whether the sphere casts shadows.
//
// Parameters:
//   - casts: true to cast shadows
//
// Returns:
//   - SphereGeometryBuilderOption: the option function
func WithShadowCasting(casts bool) SphereGeometryBuilderOption {
	return func(s *sphereGeometryImpl) {
		s.castsShadows = casts
	}
}

// WithShadowReceiving controls whether the sphere receives shadows.
//
// Parameters:
//   - receives: true to receive shadows
//
// Returns:
//   - SphereGeometryBuilderOption: the option function
func WithShadowReceiving(receives bool) SphereGeometryBuilderOption {
	return func(s *sphereGeometryImpl) {
		s.receivesShadows = receives
	}
}

// WithClippingPolicy sets how the renderer may adjust clipping planes for
// the sphere.
//
// Parameters:
//   - policy: the clipping policy
//
// Returns:
//   - SphereGeometryBuilderOption: the option function
func WithClippingPolicy(policy universe.ClippingPolicy) SphereGeometryBuilderOption {
	return func(s *sphereGeometryImpl) {
		s.clippingPolicy = policy
	}
}
