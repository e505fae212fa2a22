package universe

import (
	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/framebuffer"
)

// RenderPass identifies which of the two per-span passes is active.
type RenderPass int

const (
	// OpaquePass draws fully opaque geometry with depth writes enabled.
	OpaquePass RenderPass = iota

	// TranslucentPass draws translucent geometry over the opaque pass.
	TranslucentPass
)

// RendererOutput selects what fragment shading writes to the color target.
type RendererOutput int

const (
	// FragmentColorOutput is ordinary shaded color output.
	FragmentColorOutput RendererOutput = iota

	// CameraDistanceOutput writes the distance from the camera to the
	// fragment into the red channel. Used for omnidirectional shadow maps.
	CameraDistanceOutput
)

// ContextLightType identifies the kind of light bound to a light slot.
type ContextLightType int

const (
	// DirectionalContextLight has a direction but no position or falloff.
	DirectionalContextLight ContextLightType = iota

	// PointContextLight has a position and quadratic distance attenuation.
	PointContextLight
)

// ContextLight is a light bound to one of the context's light slots for the
// current item. For directional lights Position holds the direction toward
// the light.
type ContextLight struct {
	Type        ContextLightType
	Position    common.Vector3f
	Color       common.Spectrum
	Attenuation float32
}

// CullFace identifies which triangle faces are discarded during
// rasterization.
type CullFace int

const (
	// CullNone disables face culling.
	CullNone CullFace = iota

	// CullBack discards back faces.
	CullBack

	// CullFront discards front faces. Shadow passes cull front faces to
	// reduce self-shadowing artifacts.
	CullFront
)

// Winding identifies which vertex order makes a triangle front facing.
type Winding int

const (
	// CounterClockwise is the ordinary front face winding.
	CounterClockwise Winding = iota

	// Clockwise front faces are used when drawing through a left-handed
	// projection, which mirrors the winding of all geometry.
	Clockwise
)

// RenderContext is the drawing surface handed to geometry, visualizers and
// sky layers. It carries the transform stacks, the camera and lighting state
// for the item being drawn, the shadow map bindings, and the small set of
// rasterizer state the renderer manipulates between passes.
//
// The renderer mutates context state freely while traversing the scene and
// is responsible for restoring whatever it changed; geometry implementations
// should treat everything except the modelview stack as read-only.
type RenderContext interface {
	// PushModelView pushes a copy of the current modelview matrix.
	PushModelView()

	// PopModelView restores the modelview matrix saved by the matching
	// PushModelView.
	PopModelView()

	// SetModelView replaces the current modelview matrix.
	//
	// Parameters:
	//   - m: the new modelview matrix
	SetModelView(m common.Matrix4)

	// ModelView returns the current modelview matrix.
	//
	// Returns:
	//   - common.Matrix4: the modelview matrix
	ModelView() common.Matrix4

	// TranslateModelView post-multiplies the modelview by a translation.
	//
	// Parameters:
	//   - v: the translation vector
	TranslateModelView(v common.Vector3f)

	// RotateModelView post-multiplies the modelview by a rotation.
	//
	// Parameters:
	//   - q: the rotation quaternion
	RotateModelView(q common.Quaternionf)

	// SetModelTranslation sets the double precision camera-relative model
	// position used to position shading in large scenes, where a float32
	// modelview translation loses too much precision.
	//
	// Parameters:
	//   - v: the model position relative to the camera, in world units
	SetModelTranslation(v common.Vector3)

	// PushProjection pushes a copy of the current projection.
	PushProjection()

	// PopProjection restores the projection saved by the matching
	// PushProjection.
	PopProjection()

	// SetProjection replaces the current projection. Left-handed projections
	// flip the effective front face winding.
	//
	// Parameters:
	//   - p: the new projection
	SetProjection(p common.PlanarProjection)

	// Frustum returns the camera-space view volume of the current
	// projection.
	//
	// Returns:
	//   - common.Frustum: the view frustum
	Frustum() common.Frustum

	// SetCameraOrientation sets the orientation of the camera in world
	// space. Geometry that billboards toward the viewer reads this back.
	//
	// Parameters:
	//   - q: the camera orientation
	SetCameraOrientation(q common.Quaternionf)

	// CameraOrientation returns the current world space camera orientation.
	//
	// Returns:
	//   - common.Quaternionf: the camera orientation
	CameraOrientation() common.Quaternionf

	// SetPixelSize sets the angular size of one pixel at the center of the
	// view, in radians.
	//
	// Parameters:
	//   - s: the pixel angular size
	SetPixelSize(s float32)

	// PixelSize returns the angular size of one pixel at the center of the
	// view, in radians.
	//
	// Returns:
	//   - float32: the pixel angular size
	PixelSize() float32

	// SetViewportSize records the dimensions of the surface being drawn to.
	//
	// Parameters:
	//   - width, height: viewport dimensions in pixels
	SetViewportSize(width, height int)

	// SetViewport sets the rectangle of the target surface being drawn to.
	//
	// Parameters:
	//   - x, y: lower-left corner in pixels
	//   - width, height: dimensions in pixels
	SetViewport(x, y, width, height int)

	// Viewport returns the current viewport rectangle.
	//
	// Returns:
	//   - x, y, width, height: the viewport rectangle in pixels
	Viewport() (x, y, width, height int)

	// SetAmbientLight sets the ambient term added to all shaded geometry.
	//
	// Parameters:
	//   - c: the ambient light color
	SetAmbientLight(c common.Spectrum)

	// SetActiveLightCount sets how many light slots affect the next draw.
	//
	// Parameters:
	//   - n: the number of active lights
	SetActiveLightCount(n int)

	// SetLight binds a light to one of the context's light slots.
	//
	// Parameters:
	//   - index: the slot to bind
	//   - light: the light parameters
	SetLight(index int, light ContextLight)

	// SetShadowMapCount sets how many directional shadow maps affect the
	// next draw.
	//
	// Parameters:
	//   - n: the number of bound shadow maps
	SetShadowMapCount(n int)

	// SetShadowMap binds a directional shadow map to a slot.
	//
	// Parameters:
	//   - index: the slot to bind
	//   - shadowMap: the depth map to sample
	SetShadowMap(index int, shadowMap framebuffer.Framebuffer)

	// SetShadowMapMatrix sets the transform from camera space to the texture
	// space of a bound directional shadow map.
	//
	// Parameters:
	//   - index: the shadow map slot
	//   - m: the shadow texture transform
	SetShadowMapMatrix(index int, m common.Matrix4)

	// SetOmniShadowMapCount sets how many omnidirectional shadow maps affect
	// the next draw.
	//
	// Parameters:
	//   - n: the number of bound cube shadow maps
	SetOmniShadowMapCount(n int)

	// SetOmniShadowMap binds an omnidirectional shadow cube map to a slot.
	//
	// Parameters:
	//   - index: the slot to bind
	//   - shadowMap: the cube distance map to sample
	SetOmniShadowMap(index int, shadowMap framebuffer.CubeMapFramebuffer)

	// SetPass selects the opaque or translucent pass for subsequent draws.
	//
	// Parameters:
	//   - pass: the pass to select
	SetPass(pass RenderPass)

	// Pass returns the currently selected pass.
	//
	// Returns:
	//   - RenderPass: the active pass
	Pass() RenderPass

	// SetRendererOutput selects color or camera-distance fragment output.
	//
	// Parameters:
	//   - output: the output mode
	SetRendererOutput(output RendererOutput)

	// SetDepthRange maps normalized device depth onto a slice of the depth
	// buffer. The full buffer is the range [0, 1].
	//
	// Parameters:
	//   - near, far: the depth buffer slice bounds
	SetDepthRange(near, far float32)

	// SetDepthTest enables or disables depth testing.
	//
	// Parameters:
	//   - enabled: true to test fragments against the depth buffer
	SetDepthTest(enabled bool)

	// SetDepthWrite enables or disables depth buffer writes.
	//
	// Parameters:
	//   - enabled: true to write fragment depth
	SetDepthWrite(enabled bool)

	// SetColorMask enables or disables writes to the color channels.
	// Depth-only shadow passes disable all four.
	//
	// Parameters:
	//   - r, g, b, a: true to write the corresponding channel
	SetColorMask(r, g, b, a bool)

	// SetCullFace selects which triangle faces are discarded.
	//
	// Parameters:
	//   - mode: the cull mode
	SetCullFace(mode CullFace)

	// SetFrontFace selects the front face winding.
	//
	// Parameters:
	//   - winding: the winding that counts as front facing
	SetFrontFace(winding Winding)

	// BindFramebuffer redirects drawing into an offscreen depth map.
	//
	// Parameters:
	//   - fb: the framebuffer to draw into
	BindFramebuffer(fb framebuffer.Framebuffer)

	// BindCubeMapFace redirects drawing into one face of a cube map.
	//
	// Parameters:
	//   - fb: the cube map framebuffer
	//   - face: the face index, 0 through 5
	BindCubeMapFace(fb framebuffer.CubeMapFramebuffer, face int)

	// UnbindFramebuffer restores drawing to the default surface.
	UnbindFramebuffer()

	// ClearDepth clears the depth attachment of the bound framebuffer.
	ClearDepth()

	// ClearColor clears the color attachment of the bound framebuffer.
	//
	// Parameters:
	//   - r, g, b, a: the clear color
	ClearColor(r, g, b, a float32)

	// UnbindShader releases any shader program bound by geometry rendering.
	UnbindShader()

	// MaxTextureSize returns the largest texture dimension the device
	// supports. Shadow map allocation is clamped to this value.
	//
	// Returns:
	//   - int: the maximum texture dimension in pixels
	MaxTextureSize() int

	// MaxCubeMapSize returns the largest cube map face dimension the device
	// supports.
	//
	// Returns:
	//   - int: the maximum cube face dimension in pixels
	MaxCubeMapSize() int

	// CreateDepthFramebuffer allocates a depth-only framebuffer on the
	// context's device, suitable for directional shadow maps.
	//
	// Parameters:
	//   - width, height: framebuffer dimensions in pixels
	//
	// Returns:
	//   - framebuffer.Framebuffer: the new framebuffer
	//   - error: an error if allocation failed
	CreateDepthFramebuffer(width, height int) (framebuffer.Framebuffer, error)

	// CreateCubeMapFramebuffer allocates a six-face distance cube map on the
	// context's device, suitable for omnidirectional shadow maps.
	//
	// Parameters:
	//   - size: dimension of each square face in pixels
	//
	// Returns:
	//   - framebuffer.CubeMapFramebuffer: the new cube map framebuffer
	//   - error: an error if allocation failed
	CreateCubeMapFramebuffer(size int) (framebuffer.CubeMapFramebuffer, error)
}
