package renderer

import (
	"math"
	"testing"

	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererDefaults(t *testing.T) {
	r := NewUniverseRenderer()

	assert.False(t, r.ShadowsEnabled())
	assert.True(t, r.VisualizersEnabled())
	assert.True(t, r.SkyLayersEnabled())
	assert.Equal(t, common.Spectrum{}, r.AmbientLight())
}

func TestRendererOptions(t *testing.T) {
	ambient := common.NewSpectrum(0.1, 0.2, 0.3)
	r := NewUniverseRenderer(
		WithAmbientLight(ambient),
		WithVisualizersEnabled(false),
		WithSkyLayersEnabled(false))

	assert.Equal(t, ambient, r.AmbientLight())
	assert.False(t, r.VisualizersEnabled())
	assert.False(t, r.SkyLayersEnabled())
}

func TestViewSetStateMachine(t *testing.T) {
	r := NewUniverseRenderer()
	u := universe.NewUniverse()

	// Nothing works before InitializeGraphics.
	require.Equal(t, RendererUninitialized, r.BeginViewSet(u, 0))
	assert.False(t, r.ShadowsSupported())
	assert.False(t, r.InitializeShadowMaps(1024, 1))

	require.True(t, r.InitializeGraphics(newRecordingContext()))
	assert.True(t, r.ShadowsSupported())
	assert.True(t, r.OmniShadowsSupported())

	require.Equal(t, RendererBadParameter, r.BeginViewSet(nil, 0))
	require.Equal(t, RenderNoViewSet, r.EndViewSet())

	require.Equal(t, RenderOk, r.BeginViewSet(u, 0))
	require.Equal(t, RenderViewSetAlreadyStarted, r.BeginViewSet(u, 0))
	require.Equal(t, RenderOk, r.EndViewSet())
	require.Equal(t, RenderNoViewSet, r.EndViewSet())
}

func TestRenderViewRequiresViewSet(t *testing.T) {
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(newRecordingContext()))

	status := r.RenderView(common.Vec3(0, 0, 0), common.QuaternionIdentity(),
		common.CreatePerspective(1, 1, 1, 100), NewViewport(100, 100), nil)

	assert.Equal(t, RenderNoViewSet, status)
}

func TestRenderObserverViewNilObserver(t *testing.T) {
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(newRecordingContext()))

	assert.Equal(t, RendererBadParameter, r.RenderObserverView(nil, 1, 100, 100))
}

func TestRenderCubeMapNilTarget(t *testing.T) {
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(newRecordingContext()))

	assert.Equal(t, RendererBadParameter,
		r.RenderCubeMap(common.Vec3(0, 0, 0), nil, 1, 100, common.QuaternionIdentity()))
	assert.Equal(t, RendererBadParameter,
		r.RenderShadowCubeMap(common.Vec3(0, 0, 0), nil))
}

func TestRenderCubeMapBeforeInitializeGraphics(t *testing.T) {
	r := NewUniverseRenderer()
	cubeMap := &fakeCubeMap{size: 16, valid: true}

	assert.Equal(t, RendererUninitialized,
		r.RenderCubeMap(common.Vec3(0, 0, 0), cubeMap, 1, 100, common.QuaternionIdentity()))
	assert.Equal(t, RendererUninitialized,
		r.RenderShadowCubeMap(common.Vec3(0, 0, 0), cubeMap))
}

func TestRenderStatusString(t *testing.T) {
	assert.Equal(t, "ok", RenderOk.String())
	assert.Equal(t, "no view set", RenderNoViewSet.String())
	assert.Equal(t, "view set already started", RenderViewSetAlreadyStarted.String())
	assert.Equal(t, "renderer uninitialized", RendererUninitialized.String())
	assert.Equal(t, "bad parameter", RendererBadParameter.String())
	assert.Equal(t, "unknown", RenderStatus(99).String())
}

func TestInitializeShadowMapsClampsCountAndSize(t *testing.T) {
	rc := newRecordingContext()
	rc.maxTextureSize = 1024
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(rc))

	require.True(t, r.InitializeShadowMaps(4096, MaxShadowMaps+2))

	// The count is clamped to the pool limit and the size to the device
	// limit.
	require.Len(t, rc.createdDepthBuffers, MaxShadowMaps)
	for _, fb := range rc.createdDepthBuffers {
		assert.Equal(t, 1024, fb.width)
		assert.Equal(t, 1024, fb.height)
	}
}

func TestInitializeShadowMapsFailureClearsPool(t *testing.T) {
	rc := newRecordingContext()
	rc.failDepthCreateAt = 2
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(rc))

	require.False(t, r.InitializeShadowMaps(512, 2))

	// The map created before the failure was released, and shadows cannot
	// be enabled against the empty pool.
	require.Len(t, rc.createdDepthBuffers, 1)
	assert.False(t, rc.createdDepthBuffers[0].valid)

	r.SetShadowsEnabled(true)
	assert.False(t, r.ShadowsEnabled())
}

func TestInitializeOmniShadowMaps(t *testing.T) {
	rc := newRecordingContext()
	rc.maxCubeMapSize = 512
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(rc))

	require.True(t, r.InitializeOmniShadowMaps(2048, MaxOmniShadowMaps+1))

	require.Len(t, rc.createdCubeBuffers, MaxOmniShadowMaps)
	for _, fb := range rc.createdCubeBuffers {
		assert.Equal(t, 512, fb.size)
	}
}

func TestInitializeOmniShadowMapsFailureClearsPool(t *testing.T) {
	rc := newRecordingContext()
	rc.failCubeCreateAt = 2
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(rc))

	require.False(t, r.InitializeOmniShadowMaps(256, 3))
	require.Len(t, rc.createdCubeBuffers, 1)
	assert.False(t, rc.createdCubeBuffers[0].valid)
}

func TestSetShadowsEnabledRequiresValidPool(t *testing.T) {
	rc := newRecordingContext()
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(rc))

	r.SetShadowsEnabled(true)
	assert.False(t, r.ShadowsEnabled())

	require.True(t, r.InitializeShadowMaps(512, 1))
	r.SetShadowsEnabled(true)
	assert.True(t, r.ShadowsEnabled())

	r.SetShadowsEnabled(false)
	assert.False(t, r.ShadowsEnabled())
}

// TestRenderViewDepthSpans drives a full view through the renderer with two
// bodies separated by a depth gap too wide for one depth buffer slice, and
// checks the partitioning and the back to front draw order.
func TestRenderViewDepthSpans(t *testing.T) {
	rc := newRecordingContext()
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(rc))

	var renderLog []string
	near := newTestGeometry("near", 1)
	near.renderLog = &renderLog
	far := newTestGeometry("far", 200)
	far.renderLog = &renderLog

	u := universe.NewUniverse()
	u.AddEntity(universe.NewEntity("near body",
		universe.WithStaticPosition(common.Vec3(0, 0, -10)),
		universe.WithGeometry(near)))
	u.AddEntity(universe.NewEntity("far body",
		universe.WithStaticPosition(common.Vec3(0, 0, -10100)),
		universe.WithGeometry(far)))

	require.Equal(t, RenderOk, r.BeginViewSet(u, 0))
	defer r.EndViewSet()

	projection := common.CreatePerspective(float32(math.Pi/2), 1, 1, 1e6)
	status := r.RenderView(common.Vec3(0, 0, 0), common.QuaternionIdentity(),
		projection, NewViewport(100, 100), nil)
	require.Equal(t, RenderOk, status)

	// Farthest body first, then the near one.
	assert.Equal(t, []string{"far", "near"}, renderLog)

	// The gap between the bodies forces three depth spans (the middle one
	// is the empty gap). Each span gets its own slice of the depth buffer,
	// assigned back to front, and the full range is restored at the end.
	third := float32(1) / 3
	assert.Equal(t, [][2]float32{
		{2 * third, 3 * third},
		{1 * third, 2 * third},
		{0, 1 * third},
		{0, 1},
	}, rc.depthRanges)

	// The sun was bound as a directional light for each drawn item.
	assert.Equal(t, universe.DirectionalContextLight, rc.lights[0].Type)
	assert.Equal(t, 1, rc.lightCount)

	// Winding and shader bindings are reset at the end of the view.
	assert.Equal(t, universe.CounterClockwise, rc.frontFace)
	assert.True(t, rc.called("UnbindShader"))
}

func TestRenderViewCoalescesNearbyBodies(t *testing.T) {
	rc := newRecordingContext()
	r := NewUniverseRenderer()
	require.True(t, r.InitializeGraphics(rc))

	var renderLog []string
	a := newTestGeometry("a", 1)
	a.renderLog = &renderLog
	b := newTestGeometry("b", 1)
	b.renderLog = &renderLog

	u := universe.NewUniverse()
	u.AddEntity(universe.NewEntity("a body",
		universe.WithStaticPosition(common.Vec3(0, 0, -10)),
		universe.WithGeometry(a)))
	u.AddEntity(universe.NewEntity("b body",
		universe.WithStaticPosition(common.Vec3(0, 0, -14)),
		universe.WithGeometry(b)))

	require.Equal(t, RenderOk, r.BeginViewSet(u, 0))
	defer r.EndViewSet()

	projection := common.CreatePerspective(float32(math.Pi/2), 1, 1, 1e6)
	require.Equal(t, RenderOk, r.RenderView(common.Vec3(0, 0, 0), common.QuaternionIdentity(),
		projection, NewViewport(100, 100), nil))

	// Both bodies share one span, so the whole depth buffer is used.
	assert.Equal(t, [][2]float32{{0, 1}, {0, 1}}, rc.depthRanges)
	assert.Equal(t, []string{"b", "a"}, renderLog)
}

func TestDrawItemLightBinding(t *testing.T) {
	rc := newRecordingContext()
	lamp := universe.NewLightSource(100)

	r := &universeRendererImpl{
		rc: rc,
		visibleLightSources: []visibleLightSourceItem{
			{lightSource: nil, cameraRelativePosition: common.Vec3(1e8, 0, 0)},
			{lightSource: lamp, position: common.Vec3(0, 0, -50), cameraRelativePosition: common.Vec3(0, 0, -50)},
		},
	}

	var renderLog []string
	geometry := newTestGeometry("body", 1)
	geometry.renderLog = &renderLog

	item := visibleItem{
		geometry:               geometry,
		position:               common.Vec3(0, 0, -10),
		cameraRelativePosition: common.Vec3(0, 0, -10),
		orientation:            common.QuaternionfIdentity(),
		boundingRadius:         1,
	}

	r.drawItem(item)

	// Sun in slot 0, the point light in range in slot 1.
	assert.Equal(t, 2, rc.lightCount)
	assert.Equal(t, universe.DirectionalContextLight, rc.lights[0].Type)
	assert.Equal(t, universe.PointContextLight, rc.lights[1].Type)
	assert.InDelta(t, 1.0/(256*100*100), float64(rc.lights[1].Attenuation), 1e-12)
	assert.Equal(t, []string{"body"}, renderLog)
}

func TestDrawItemSkipsOutOfRangeLights(t *testing.T) {
	rc := newRecordingContext()
	lamp := universe.NewLightSource(5)

	r := &universeRendererImpl{
		rc: rc,
		visibleLightSources: []visibleLightSourceItem{
			{lightSource: lamp, position: common.Vec3(0, 0, -100), cameraRelativePosition: common.Vec3(0, 0, -100)},
		},
	}

	geometry := newTestGeometry("body", 1)
	item := visibleItem{
		geometry:               geometry,
		position:               common.Vec3(0, 0, -10),
		cameraRelativePosition: common.Vec3(0, 0, -10),
		orientation:            common.QuaternionfIdentity(),
		boundingRadius:         1,
	}

	r.drawItem(item)

	// The lamp is 90 units from the body but reaches only 5.
	assert.Equal(t, 0, rc.lightCount)
}

func TestDrawItemSkipsGeometryOutsideFrustum(t *testing.T) {
	rc := newRecordingContext()
	r := &universeRendererImpl{rc: rc}

	var renderLog []string
	geometry := newTestGeometry("body", 1)
	geometry.renderLog = &renderLog

	r.drawItem(visibleItem{
		geometry:               geometry,
		cameraRelativePosition: common.Vec3(0, 0, -10),
		orientation:            common.QuaternionfIdentity(),
		outsideFrustum:         true,
	})

	// The modelview stack is still balanced even though nothing was drawn.
	assert.Empty(t, renderLog)
	assert.Equal(t, common.Matrix4Identity(), rc.ModelView())
}

func TestRotateByUpper3x3(t *testing.T) {
	rotZ90 := common.Matrix4FromQuaternion(
		common.QuaternionFromAxisAngle(common.Vec3(0, 0, 1), common.ToRadians(90)).ToQuaternionf())

	v := rotateByUpper3x3(rotZ90, common.Vec3(1, 0, 0))

	assert.InDelta(t, 0.0, v.X, 1e-6)
	assert.InDelta(t, 1.0, v.Y, 1e-6)
	assert.InDelta(t, 0.0, v.Z, 1e-6)
}

func TestViewportAspectRatio(t *testing.T) {
	assert.Equal(t, float32(2), NewViewport(200, 100).AspectRatio())
	assert.Equal(t, float32(1), NewViewport(64, 64).AspectRatio())
}
