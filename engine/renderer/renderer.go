// Package renderer draws universes: it determines which entities are
// visible each frame, partitions the enormous depth range of space scenes
// into spans the depth buffer can resolve, selects the lights affecting each
// view, and orchestrates directional and omnidirectional shadow map passes.
package renderer

import (
	"math"

	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/framebuffer"
	"github.com/JohnVV/cosmographia/engine/universe"
)

const (
	// MaxShadowMaps is the most directional shadow maps the renderer will
	// allocate.
	MaxShadowMaps = 3

	// MaxOmniShadowMaps is the most omnidirectional shadow cube maps the
	// renderer will allocate.
	MaxOmniShadowMaps = 3

	// MinimumNearDistance is the closest usable near plane distance,
	// one centimeter at the renderer's kilometer scale.
	MinimumNearDistance = 0.00001

	// MaximumFarDistance is the farthest usable far plane distance,
	// one trillion kilometers (about 6700 AU).
	MaximumFarDistance = 1.0e12
)

const (
	minimumNearPlaneDistance = 0.00001
	maximumFarPlaneDistance  = 1.0e12

	// minimumNearFarRatio bounds an individual item's near distance to a
	// fraction of its bounding diameter.
	minimumNearFarRatio = 0.001

	// preferredNearFarRatio is the near/far ratio below which adjacent depth
	// spans are no longer coalesced.
	preferredNearFarRatio = 0.002
)

// UniverseRenderer draws views of a universe. Rendering happens inside a
// view set: BeginViewSet fixes the simulation time and gathers per-frame
// state shared by all views, any number of views are rendered, and
// EndViewSet releases the universe.
//
// The renderer is not safe for concurrent use; all methods must be called
// from the goroutine that owns the graphics context.
type UniverseRenderer interface {
	// InitializeGraphics attaches a render context to the renderer. The
	// renderer cannot draw until this has been called successfully. Calling
	// it again after success is a no-op.
	//
	// Parameters:
	//   - rc: the render context to draw through
	//
	// Returns:
	//   - bool: true if the renderer is ready to draw
	InitializeGraphics(rc universe.RenderContext) bool

	// ShadowsSupported reports whether directional shadow mapping can be
	// used with the attached context.
	//
	// Returns:
	//   - bool: true if shadows are supported
	ShadowsSupported() bool

	// OmniShadowsSupported reports whether omnidirectional shadow mapping
	// can be used with the attached context.
	//
	// Returns:
	//   - bool: true if omnidirectional shadows are supported
	OmniShadowsSupported() bool

	// InitializeShadowMaps allocates the directional shadow map pool. The
	// requested count is clamped to MaxShadowMaps and the size to the
	// largest texture dimension the device supports. On any allocation
	// failure the pool is cleared and false is returned.
	//
	// Parameters:
	//   - shadowMapSize: dimension of each square shadow map in pixels
	//   - shadowMapCount: number of maps; bounds the shadows cast on any one body
	//
	// Returns:
	//   - bool: true if the pool was allocated
	InitializeShadowMaps(shadowMapSize, shadowMapCount int) bool

	// InitializeOmniShadowMaps allocates the omnidirectional shadow cube map
	// pool. The requested count is clamped to MaxOmniShadowMaps and the size
	// to the largest cube face the device supports. On any allocation
	// failure the pool is cleared and false is returned.
	//
	// Parameters:
	//   - shadowMapSize: dimension of each cube face in pixels
	//   - shadowMapCount: number of cube maps
	//
	// Returns:
	//   - bool: true if the pool was allocated
	InitializeOmniShadowMaps(shadowMapSize, shadowMapCount int) bool

	// SetShadowsEnabled turns shadow rendering on or off. Enabling only
	// takes effect once InitializeShadowMaps has allocated a valid pool.
	//
	// Parameters:
	//   - enabled: true to draw shadows
	SetShadowsEnabled(enabled bool)

	// ShadowsEnabled reports whether shadow rendering is active.
	//
	// Returns:
	//   - bool: true if shadows are drawn
	ShadowsEnabled() bool

	// SetVisualizersEnabled turns drawing of entity visualizers on or off.
	//
	// Parameters:
	//   - enabled: true to draw visualizers
	SetVisualizersEnabled(enabled bool)

	// VisualizersEnabled reports whether visualizers are drawn.
	//
	// Returns:
	//   - bool: true if visualizers are drawn
	VisualizersEnabled() bool

	// SetSkyLayersEnabled turns drawing of sky layers on or off. A layer is
	// drawn only when layers are enabled here and the layer itself is
	// visible.
	//
	// Parameters:
	//   - enabled: true to draw sky layers
	SetSkyLayersEnabled(enabled bool)

	// SkyLayersEnabled reports whether sky layers are drawn.
	//
	// Returns:
	//   - bool: true if sky layers are drawn
	SkyLayersEnabled() bool

	// SetDefaultSunEnabled controls whether a directional sun light at the
	// universe origin is added to every view set.
	//
	// Parameters:
	//   - enabled: true to add the default sun
	SetDefaultSunEnabled(enabled bool)

	// SetAmbientLight sets the fill light added to all shaded geometry.
	// Black, the default, is realistic for space scenes; a small ambient
	// term can make visualizations clearer.
	//
	// Parameters:
	//   - light: the ambient color
	SetAmbientLight(light common.Spectrum)

	// AmbientLight returns the current ambient fill light.
	//
	// Returns:
	//   - common.Spectrum: the ambient color
	AmbientLight() common.Spectrum

	// BeginViewSet prepares the renderer to draw one or more views of a
	// universe at a single simulation time. Scene state must not change
	// between BeginViewSet and EndViewSet; renders that mutate the scene in
	// between belong in separate view sets.
	//
	// Parameters:
	//   - u: the universe to draw
	//   - t: simulation time in seconds
	//
	// Returns:
	//   - RenderStatus: RenderOk, or RendererUninitialized before
	//     InitializeGraphics, RendererBadParameter for a nil universe,
	//     RenderViewSetAlreadyStarted if a view set is already open
	BeginViewSet(u universe.Universe, t float64) RenderStatus

	// EndViewSet closes the current view set.
	//
	// Returns:
	//   - RenderStatus: RenderOk, or RenderNoViewSet if no view set is open
	EndViewSet() RenderStatus

	// RenderView draws one view of the current view set's universe.
	//
	// Parameters:
	//   - cameraPosition: world position of the camera
	//   - cameraOrientation: world orientation of the camera
	//   - projection: the camera projection
	//   - viewport: region of the target surface to draw into
	//   - renderSurface: target framebuffer; nil draws to the default surface
	//
	// Returns:
	//   - RenderStatus: RenderOk, or RenderNoViewSet if no view set is open
	RenderView(cameraPosition common.Vector3, cameraOrientation common.Quaternion,
		projection common.PlanarProjection, viewport Viewport,
		renderSurface framebuffer.Framebuffer) RenderStatus

	// RenderObserverView draws a view from an observer's position and
	// orientation using a perspective projection spanning the renderer's
	// full usable depth range.
	//
	// Parameters:
	//   - observer: the viewpoint
	//   - fieldOfView: vertical field of view in radians
	//   - viewportWidth, viewportHeight: target dimensions in pixels
	//
	// Returns:
	//   - RenderStatus: RenderOk, or RenderNoViewSet if no view set is open
	RenderObserverView(observer universe.Observer, fieldOfView float64,
		viewportWidth, viewportHeight int) RenderStatus

	// RenderCubeMap draws six views into the faces of a cube map from a
	// position. Views point along the world axes unless a rotation is given.
	// For reflection use the rotation should be identity and nearDistance
	// can be raised to cull nearby geometry.
	//
	// Parameters:
	//   - position: world position of the cube map camera
	//   - cubeMap: the target cube map framebuffer
	//   - nearDistance, farDistance: depth clipping plane distances
	//   - rotation: extra rotation applied to every face camera
	//
	// Returns:
	//   - RenderStatus: RenderOk, or the status of the first failing face
	RenderCubeMap(position common.Vector3, cubeMap framebuffer.CubeMapFramebuffer,
		nearDistance, farDistance float32, rotation common.Quaternion) RenderStatus

	// RenderShadowCubeMap draws six camera-distance views into the faces of
	// a shadow cube map from a light's position.
	//
	// Parameters:
	//   - position: world position of the light
	//   - cubeMap: the target cube map framebuffer
	//
	// Returns:
	//   - RenderStatus: RenderOk, or the status of the first failing face
	RenderShadowCubeMap(position common.Vector3, cubeMap framebuffer.CubeMapFramebuffer) RenderStatus
}

type universeRendererImpl struct {
	rc universe.RenderContext

	universe    universe.Universe
	currentTime float64

	shadowsEnabled     bool
	visualizersEnabled bool
	skyLayersEnabled   bool
	defaultSunEnabled  bool
	diagnostics        bool

	ambientLight common.Spectrum

	shadowMaps     []framebuffer.Framebuffer
	omniShadowMaps []framebuffer.CubeMapFramebuffer

	// Per view set.
	lightSources []lightSourceItem

	// Per view.
	visibleItems           []visibleItem
	splittableItems        []visibleItem
	visibleLightSources    []visibleLightSourceItem
	depthBufferSpans       []depthBufferSpan
	mergedDepthBufferSpans []depthBufferSpan
	viewFrustum            common.Frustum

	renderSurface   framebuffer.Framebuffer
	renderViewport  Viewport
	renderColorMask [4]bool
	depthRangeFront float32
	depthRangeBack  float32
}

var _ UniverseRenderer = &universeRendererImpl{}

// NewUniverseRenderer creates a renderer with shadows disabled, visualizers
// and sky layers enabled, the default sun enabled, and black ambient light,
// with any provided options applied. The renderer cannot draw until
// InitializeGraphics is called.
//
// Parameters:
//   - opts: variadic list of UniverseRendererBuilderOption functions to configure the renderer
//
// Returns:
//   - UniverseRenderer: a new UniverseRenderer instance
func NewUniverseRenderer(opts ...UniverseRendererBuilderOption) UniverseRenderer {
	r := &universeRendererImpl{
		visualizersEnabled: true,
		skyLayersEnabled:   true,
		defaultSunEnabled:  true,
		renderViewport:     NewViewport(1, 1),
		depthRangeBack:     1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *universeRendererImpl) InitializeGraphics(rc universe.RenderContext) bool {
	if r.rc != nil {
		// Already initialized.
		return true
	}
	r.rc = rc
	return r.rc != nil
}

func (r *universeRendererImpl) ShadowsSupported() bool {
	return r.rc != nil
}

func (r *universeRendererImpl) OmniShadowsSupported() bool {
	return r.rc != nil
}

func (r *universeRendererImpl) InitializeShadowMaps(shadowMapSize, shadowMapCount int) bool {
	if r.rc == nil {
		Logger().Warn("InitializeShadowMaps called before InitializeGraphics")
		return false
	}
	if !r.ShadowsSupported() {
		Logger().Info("shadows not supported by the graphics device")
		return false
	}

	if shadowMapCount > MaxShadowMaps {
		Logger().Warn("too many shadow maps requested", "requested", shadowMapCount, "limit", MaxShadowMaps)
		shadowMapCount = MaxShadowMaps
	}

	if maxSize := r.rc.MaxTextureSize(); shadowMapSize > maxSize {
		shadowMapSize = maxSize
	}

	r.shadowsEnabled = false
	r.releaseShadowMaps()

	for i := 0; i < shadowMapCount; i++ {
		shadowMap, err := r.rc.CreateDepthFramebuffer(shadowMapSize, shadowMapSize)
		if err != nil {
			Logger().Warn("failed to create shadow buffer, shadows not enabled", "index", i, "error", err)
			r.releaseShadowMaps()
			return false
		}
		r.shadowMaps = append(r.shadowMaps, shadowMap)
	}

	Logger().Info("created shadow buffers", "count", shadowMapCount, "size", shadowMapSize)
	return true
}

func (r *universeRendererImpl) InitializeOmniShadowMaps(shadowMapSize, shadowMapCount int) bool {
	if r.rc == nil {
		Logger().Warn("InitializeOmniShadowMaps called before InitializeGraphics")
		return false
	}
	if !r.OmniShadowsSupported() {
		Logger().Info("omnidirectional shadows not supported by the graphics device")
		return false
	}

	if shadowMapCount > MaxOmniShadowMaps {
		Logger().Warn("too many shadow maps requested", "requested", shadowMapCount, "limit", MaxOmniShadowMaps)
		shadowMapCount = MaxOmniShadowMaps
	}

	if maxSize := r.rc.MaxCubeMapSize(); shadowMapSize > maxSize {
		shadowMapSize = maxSize
	}

	r.releaseOmniShadowMaps()

	// Omnidirectional shadows are cube maps with the camera to fragment
	// distance stored in the red channel, at 32-bit float precision.
	for i := 0; i < shadowMapCount; i++ {
		shadowMap, err := r.rc.CreateCubeMapFramebuffer(shadowMapSize)
		if err != nil {
			Logger().Warn("failed to create omni shadow buffer, omni shadows not enabled", "index", i, "error", err)
			r.releaseOmniShadowMaps()
			return false
		}
		r.omniShadowMaps = append(r.omniShadowMaps, shadowMap)
	}

	Logger().Info("created cube map shadow buffers", "count", shadowMapCount, "size", shadowMapSize)
	return true
}

func (r *universeRendererImpl) SetShadowsEnabled(enabled bool) {
	if len(r.shadowMaps) > 0 && r.shadowMaps[0] != nil && r.shadowMaps[0].IsValid() {
		r.shadowsEnabled = enabled
	}
}

func (r *universeRendererImpl) ShadowsEnabled() bool {
	return r.shadowsEnabled
}

func (r *universeRendererImpl) SetVisualizersEnabled(enabled bool) {
	r.visualizersEnabled = enabled
}

func (r *universeRendererImpl) VisualizersEnabled() bool {
	return r.visualizersEnabled
}

func (r *universeRendererImpl) SetSkyLayersEnabled(enabled bool) {
	r.skyLayersEnabled = enabled
}

func (r *universeRendererImpl) SkyLayersEnabled() bool {
	return r.skyLayersEnabled
}

func (r *universeRendererImpl) SetDefaultSunEnabled(enabled bool) {
	r.defaultSunEnabled = enabled
}

func (r *universeRendererImpl) SetAmbientLight(light common.Spectrum) {
	r.ambientLight = light
}

func (r *universeRendererImpl) AmbientLight() common.Spectrum {
	return r.ambientLight
}

func (r *universeRendererImpl) BeginViewSet(u universe.Universe, t float64) RenderStatus {
	if r.rc == nil {
		return RendererUninitialized
	}
	if u == nil {
		return RendererBadParameter
	}
	if r.universe != nil {
		return RenderViewSetAlreadyStarted
	}

	r.universe = u
	r.currentTime = t
	r.lightSources = buildLightSourceList(u, t, r.defaultSunEnabled)

	return RenderOk
}

func (r *universeRendererImpl) EndViewSet() RenderStatus {
	if r.universe == nil {
		return RenderNoViewSet
	}
	r.universe = nil
	return RenderOk
}

func (r *universeRendererImpl) RenderView(cameraPosition common.Vector3, cameraOrientation common.Quaternion,
	projection common.PlanarProjection, viewport Viewport,
	renderSurface framebuffer.Framebuffer) RenderStatus {

	if r.universe == nil {
		return RenderNoViewSet
	}

	// The viewport and render surface are saved so they can be restored
	// after shadow passes redirect rendering.
	r.renderSurface = renderSurface
	r.renderViewport = viewport
	r.renderColorMask = [4]bool{true, true, true, true}

	r.rc.SetViewport(viewport.X, viewport.Y, viewport.Width, viewport.Height)

	aspectRatio := viewport.AspectRatio()
	fieldOfView := projection.FovY()

	// All geometry assumes a right-handed projection; a left-handed one
	// mirrors the winding order.
	if projection.Chirality() == common.LeftHanded {
		r.rc.SetFrontFace(universe.Clockwise)
	}
	r.rc.SetCullFace(universe.CullBack)

	r.rc.SetCameraOrientation(cameraOrientation.ToQuaternionf())
	r.rc.SetPixelSize(float32(2 * math.Tan(float64(fieldOfView)/2) / float64(viewport.Height)))
	r.rc.SetViewportSize(viewport.Width, viewport.Height)

	r.rc.PushModelView()
	r.rc.RotateModelView(cameraOrientation.Conjugate().ToQuaternionf())

	// Sky layers draw first, with the depth buffer untouched.
	r.rc.SetDepthWrite(false)
	r.rc.SetDepthTest(false)
	r.rc.SetProjection(projection.Slice(0.1, 1.0))

	if r.skyLayersEnabled {
		for _, layer := range r.universe.Layers() {
			if layer.IsVisible() {
				layer.Render(r.rc)
			}
		}
	}

	r.rc.SetDepthTest(true)
	r.rc.SetDepthWrite(true)

	r.rc.SetActiveLightCount(1)
	r.rc.SetAmbientLight(r.ambientLight)

	r.viewFrustum = projection.Frustum()

	// This adjustment keeps the view frustum near plane from intersecting
	// body geometry near the screen edges.
	nearPlaneFovAdjustment := float32(math.Cos(float64(fieldOfView)/2) / math.Sqrt(1+float64(aspectRatio)*float64(aspectRatio)))

	r.visibleLightSources = buildVisibleLightSourceList(r.lightSources, cameraPosition,
		cameraOrientation, r.viewFrustum, r.rc.PixelSize())

	collector := visibilityCollector{
		viewFrustum: r.viewFrustum,
		pixelSize:   r.rc.PixelSize(),
		nearAdjust:  nearPlaneFovAdjustment,
	}

	// A linear scan over all entities. A bounding sphere hierarchy would
	// help with very large universes.
	toCameraSpace := cameraOrientation.Conjugate()
	for _, entity := range r.universe.Entities() {
		collector.collectEntity(entity, cameraPosition, toCameraSpace, r.currentTime, r.visualizersEnabled)
	}
	collector.sortByFarDistance()

	r.visibleItems = collector.visibleItems
	r.splittableItems = collector.splittableItems

	r.depthBufferSpans = splitDepthBuffer(r.visibleItems)
	r.mergedDepthBufferSpans = coalesceDepthBuffer(r.depthBufferSpans)

	// Splittable geometry may extend beyond the occupied spans; grow the
	// span list so it isn't clipped.
	if len(r.splittableItems) > 0 {
		r.mergedDepthBufferSpans = extendSpansForSplittables(
			r.mergedDepthBufferSpans, r.splittableItems,
			projection.NearDistance(), projection.FarDistance())
	}

	if r.diagnostics {
		r.logDepthSpans()
	}

	// Draw the spans from back to front, each in its own slice of the depth
	// buffer. The nearest span gets the slice starting at zero.
	spanCount := len(r.mergedDepthBufferSpans)
	spanRange := float32(1)
	if spanCount > 0 {
		spanRange /= float32(spanCount)
	}

	for i, span := range r.mergedDepthBufferSpans {
		spanIndex := spanCount - 1 - i
		r.setDepthRange(float32(spanIndex)*spanRange, float32(spanIndex+1)*spanRange)
		r.renderDepthBufferSpan(span, projection)
	}
	r.setDepthRange(0, 1)

	r.rc.PopModelView()

	r.rc.UnbindShader()
	r.rc.SetFrontFace(universe.CounterClockwise)

	return RenderOk
}

func (r *universeRendererImpl) RenderObserverView(observer universe.Observer, fieldOfView float64,
	viewportWidth, viewportHeight int) RenderStatus {

	if observer == nil {
		return RendererBadParameter
	}

	viewport := NewViewport(viewportWidth, viewportHeight)
	return r.RenderView(
		observer.AbsolutePosition(r.currentTime),
		observer.AbsoluteOrientation(r.currentTime),
		common.CreatePerspective(float32(fieldOfView), viewport.AspectRatio(),
			minimumNearPlaneDistance, maximumFarPlaneDistance),
		viewport,
		nil)
}

func (r *universeRendererImpl) RenderCubeMap(position common.Vector3, cubeMap framebuffer.CubeMapFramebuffer,
	nearDistance, farDistance float32, rotation common.Quaternion) RenderStatus {

	if r.rc == nil {
		return RendererUninitialized
	}
	if cubeMap == nil {
		return RendererBadParameter
	}

	viewport := NewViewport(cubeMap.Size(), cubeMap.Size())
	faceProjection := common.CreatePerspectiveLH(float32(common.ToRadians(90)), 1, nearDistance, farDistance)

	for face := 0; face < 6; face++ {
		r.rc.BindCubeMapFace(cubeMap, face)
		r.rc.SetDepthWrite(true)
		r.rc.ClearColor(0, 0, 0, 0)
		r.rc.ClearDepth()

		status := r.RenderView(position, rotation.Mul(cubeFaceCameraRotations[face]),
			faceProjection, viewport, nil)
		if status != RenderOk {
			r.rc.UnbindFramebuffer()
			return status
		}
	}

	r.rc.UnbindFramebuffer()
	return RenderOk
}

func (r *universeRendererImpl) RenderShadowCubeMap(position common.Vector3, cubeMap framebuffer.CubeMapFramebuffer) RenderStatus {
	if r.rc == nil {
		return RendererUninitialized
	}
	if cubeMap == nil {
		return RendererBadParameter
	}

	status := RenderOk
	viewport := NewViewport(cubeMap.Size(), cubeMap.Size())
	faceProjection := common.CreatePerspectiveLH(float32(common.ToRadians(90)), 1,
		minimumNearPlaneDistance, maximumFarPlaneDistance)

	r.rc.SetRendererOutput(universe.CameraDistanceOutput)

	for face := 0; face < 6; face++ {
		r.rc.BindCubeMapFace(cubeMap, face)
		r.rc.SetDepthWrite(true)
		r.rc.ClearColor(1.0e15, 0, 0, 0)
		r.rc.ClearDepth()

		status = r.RenderView(position, cubeFaceCameraRotations[face], faceProjection, viewport, nil)
		if status != RenderOk {
			break
		}
	}

	r.rc.UnbindFramebuffer()
	r.rc.SetRendererOutput(universe.FragmentColorOutput)

	return status
}

// setDepthRange records and applies the depth buffer slice used for the
// span being drawn; shadow passes restore it from the recorded values.
func (r *universeRendererImpl) setDepthRange(front, back float32) {
	r.depthRangeFront = front
	r.depthRangeBack = back
	r.rc.SetDepthRange(front, back)
}

// renderDepthBufferSpan draws all of the items in one depth buffer span,
// rendering shadow maps for the span first, then the items in two passes:
// opaque and translucent.
func (r *universeRendererImpl) renderDepthBufferSpan(span depthBufferSpan, projection common.PlanarProjection) {
	if span.itemCount == 0 && len(r.splittableItems) == 0 {
		return
	}

	// Enforce the projection's depth limits.
	nearDistance := max32(projection.NearDistance(), span.nearDistance)
	farDistance := min32(projection.FarDistance(), span.farDistance)
	if farDistance <= nearDistance {
		// The entire span lies in front of or behind the view frustum.
		return
	}

	shadowsOn := false
	omniShadowCount := 0
	if r.shadowsEnabled && len(r.visibleLightSources) > 0 {
		// Shadows from the sun, which is always the first light source.
		shadowsOn = r.renderSpanShadows(0, span, r.visibleLightSources[0].cameraRelativePosition)

		for i := 1; i < len(r.visibleLightSources) && omniShadowCount < len(r.omniShadowMaps); i++ {
			light := r.visibleLightSources[i]
			if light.lightSource.CastsShadows() {
				r.renderSpanOmniShadows(omniShadowCount, span, light.lightSource, light.cameraRelativePosition)
				omniShadowCount++
			}
		}
	}

	// Lift the far plane slightly so small objects at the back of the span
	// aren't clipped by roundoff. The factor must exceed one ulp of a
	// float32 while staying small enough not to visibly overlap spans.
	safeFarDistance := farDistance * (1 + 1.0e-6)

	r.rc.SetProjection(projection.Slice(nearDistance, safeFarDistance))

	// Translucent items are order dependent; drawing opaque items first
	// eliminates the worst artifacts.
	for _, pass := range []universe.RenderPass{universe.OpaquePass, universe.TranslucentPass} {
		r.rc.SetPass(pass)

		for i := 0; i < span.itemCount; i++ {
			item := r.visibleItems[span.backItemIndex-i]

			if pass == universe.OpaquePass || !item.geometry.IsOpaque() {
				if shadowsOn && item.geometry.IsShadowReceiver() {
					r.rc.SetShadowMapCount(1)
				} else {
					r.rc.SetShadowMapCount(0)
				}

				if item.geometry.IsShadowReceiver() {
					r.rc.SetOmniShadowMapCount(omniShadowCount)
				} else {
					r.rc.SetOmniShadowMapCount(0)
				}

				r.drawItem(item)
			}
		}

		r.rc.SetShadowMapCount(0)
		r.rc.SetOmniShadowMapCount(0)

		// Splittable items are drawn into every span they overlap.
		for i := len(r.splittableItems) - 1; i >= 0; i-- {
			item := r.splittableItems[i]
			if item.nearDistance < span.farDistance && item.farDistance > span.nearDistance {
				if pass == universe.OpaquePass || !item.geometry.IsOpaque() {
					r.drawItem(item)
				}
			}
		}
	}
}

// drawItem binds the lights affecting one visible item and renders its
// geometry. Items flagged as outside the view frustum still reach this point
// for shadow bookkeeping, but their geometry draw is skipped.
func (r *universeRendererImpl) drawItem(item visibleItem) {
	// The model position is expressed in camera space at double precision;
	// shaders split it to recover precision lost in the float32 modelview.
	mv := r.rc.ModelView()
	r.rc.SetModelTranslation(rotateByUpper3x3(mv, item.cameraRelativePosition))

	lightCount := 0
	for _, light := range r.visibleLightSources {
		if light.lightSource == nil {
			// The sun: directional, white, no attenuation.
			r.rc.SetLight(0, universe.ContextLight{
				Type:        universe.DirectionalContextLight,
				Position:    light.cameraRelativePosition.ToVector3f(),
				Color:       common.NewSpectrum(1, 1, 1),
				Attenuation: 1,
			})
			lightCount++
			continue
		}

		lightPosition := light.position.Sub(item.position).ToVector3f()
		distanceToLight := lightPosition.Norm() - item.boundingRadius
		attenuation := 1 / (256 * light.lightSource.Range() * light.lightSource.Range())
		if distanceToLight < light.lightSource.Range() {
			r.rc.SetLight(lightCount, universe.ContextLight{
				Type:        universe.PointContextLight,
				Position:    light.cameraRelativePosition.ToVector3f(),
				Color:       light.lightSource.Color(),
				Attenuation: attenuation,
			})
			lightCount++
		}
	}
	r.rc.SetActiveLightCount(lightCount)

	r.rc.PushModelView()
	r.rc.TranslateModelView(item.cameraRelativePosition.ToVector3f())
	r.rc.RotateModelView(item.orientation)

	if !item.outsideFrustum {
		item.geometry.Render(r.rc, r.currentTime)
	}

	r.rc.PopModelView()
}

// rotateByUpper3x3 applies the rotation part of a modelview matrix to a
// double precision vector, keeping the computation at double precision.
func rotateByUpper3x3(m common.Matrix4, v common.Vector3) common.Vector3 {
	return common.Vec3(
		float64(m[0])*v.X+float64(m[4])*v.Y+float64(m[8])*v.Z,
		float64(m[1])*v.X+float64(m[5])*v.Y+float64(m[9])*v.Z,
		float64(m[2])*v.X+float64(m[6])*v.Y+float64(m[10])*v.Z,
	)
}

func (r *universeRendererImpl) logDepthSpans() {
	spans := make([][2]float32, len(r.mergedDepthBufferSpans))
	for i, span := range r.mergedDepthBufferSpans {
		spans[i] = [2]float32{span.nearDistance, span.farDistance}
	}
	Logger().Debug("depth buffer spans",
		"split", len(r.depthBufferSpans),
		"merged", len(r.mergedDepthBufferSpans),
		"spans", spans)
}

func (r *universeRendererImpl) releaseShadowMaps() {
	for _, m := range r.shadowMaps {
		if m != nil {
			m.Release()
		}
	}
	r.shadowMaps = nil
}

func (r *universeRendererImpl) releaseOmniShadowMaps() {
	for _, m := range r.omniShadowMaps {
		if m != nil {
			m.Release()
		}
	}
	r.omniShadowMaps = nil
}
