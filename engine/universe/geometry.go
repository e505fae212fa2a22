package universe

import (
	"github.com/JohnVV/cosmographia/common"
)

// ClippingPolicy tells the renderer how to place the near clipping plane for
// a piece of geometry when partitioning the depth buffer.
type ClippingPolicy int

const (
	// PreserveDepthPrecision keeps the near plane at a fixed fraction of the
	// geometry's bounding diameter. Parts of the geometry closer than the
	// near plane may be clipped; in exchange the depth buffer retains enough
	// precision for surface detail. The right choice for solid bodies.
	PreserveDepthPrecision ClippingPolicy = iota

	// PreventClipping pushes the near plane as close to the camera as the
	// renderer allows so the geometry is never cut off, at the cost of depth
	// precision.
	PreventClipping

	// SplitToPreventClipping prevents clipping for geometry spanning a huge
	// depth range (orbital paths, plane grids) by drawing it once into every
	// depth buffer span it overlaps.
	SplitToPreventClipping
)

// Geometry is anything an entity can show on screen: a mesh, a ring system,
// a trajectory plot, a label. The renderer never inspects the actual shape;
// it works entirely from the bounding sphere, the clipping policy, and the
// opacity and shadow flags reported here.
type Geometry interface {
	// BoundingSphereRadius returns the radius of an origin-centered sphere
	// large enough to contain the geometry.
	//
	// Returns:
	//   - float32: the bounding sphere radius in world units
	BoundingSphereRadius() float32

	// NearPlaneDistance returns the distance from the camera to the nearest
	// point of the geometry. The default for a solid body is the distance to
	// the bounding sphere surface; flat or sparse geometry can report a
	// larger value to win back depth precision.
	//
	// Parameters:
	//   - cameraPosition: position of the camera in the geometry's own frame
	//
	// Returns:
	//   - float32: distance to the nearest point, in world units
	NearPlaneDistance(cameraPosition common.Vector3f) float32

	// ClippingPolicy returns how the renderer should treat the near plane
	// for this geometry.
	//
	// Returns:
	//   - ClippingPolicy: the clipping policy
	ClippingPolicy() ClippingPolicy

	// IsOpaque returns whether the geometry is fully opaque. Opaque geometry
	// is drawn in the first pass of each depth span; translucent geometry is
	// drawn afterward over it.
	//
	// Returns:
	//   - bool: true if the geometry has no translucent parts
	IsOpaque() bool

	// IsShadowCaster returns whether the geometry should be drawn into
	// shadow maps.
	//
	// Returns:
	//   - bool: true if the geometry casts shadows
	IsShadowCaster() bool

	// IsShadowReceiver returns whether shadow maps should be bound when the
	// geometry is drawn.
	//
	// Returns:
	//   - bool: true if shadows may fall on the geometry
	IsShadowReceiver() bool

	// Render draws the geometry with the current state of the render
	// context.
	//
	// Parameters:
	//   - rc: the render context to draw into
	//   - t: time in seconds, for time-driven animation
	Render(rc RenderContext, t float64)

	// RenderShadow draws the geometry into a shadow map. Implementations
	// that have no special depth-only path should call Render.
	//
	// Parameters:
	//   - rc: the render context, configured for a depth-only pass
	//   - t: time in seconds, for time-driven animation
	RenderShadow(rc RenderContext, t float64)
}
