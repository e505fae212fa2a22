package renderer

import (
	"fmt"

	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/framebuffer"
	"github.com/JohnVV/cosmographia/engine/universe"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeFramebuffer stands in for a GPU depth target in tests.
type fakeFramebuffer struct {
	width  int
	height int
	valid  bool
}

var _ framebuffer.Framebuffer = &fakeFramebuffer{}

func (f *fakeFramebuffer) Width() int                   { return f.width }
func (f *fakeFramebuffer) Height() int                  { return f.height }
func (f *fakeFramebuffer) IsValid() bool                { return f.valid }
func (f *fakeFramebuffer) DepthView() *wgpu.TextureView { return nil }
func (f *fakeFramebuffer) Release()                     { f.valid = false }

// fakeCubeMap stands in for a GPU distance cube map in tests.
type fakeCubeMap struct {
	size  int
	valid bool
}

var _ framebuffer.CubeMapFramebuffer = &fakeCubeMap{}

func (f *fakeCubeMap) Size() int                                { return f.size }
func (f *fakeCubeMap) IsValid() bool                            { return f.valid }
func (f *fakeCubeMap) ColorView() *wgpu.TextureView             { return nil }
func (f *fakeCubeMap) FaceColorView(face int) *wgpu.TextureView { return nil }
func (f *fakeCubeMap) FaceDepthView() *wgpu.TextureView         { return nil }
func (f *fakeCubeMap) Release()                                 { f.valid = false }

// recordingContext is an in-memory render context. It keeps real transform
// stacks so the renderer's push/pop discipline holds up, records every state
// mutation by name, and exposes the final state for assertions.
type recordingContext struct {
	calls []string

	modelViewStack  []common.Matrix4
	projectionStack []common.PlanarProjection

	cameraOrientation common.Quaternionf
	pixelSize         float32
	modelTranslation  common.Vector3

	viewportX      int
	viewportY      int
	viewportWidth  int
	viewportHeight int

	ambientLight common.Spectrum
	lights       [maxContextLights]universe.ContextLight
	lightCount   int

	shadowMapCount     int
	omniShadowMapCount int
	boundShadowMaps    [MaxShadowMaps]framebuffer.Framebuffer
	shadowMatrices     [MaxShadowMaps]common.Matrix4
	boundOmniMaps      [MaxOmniShadowMaps]framebuffer.CubeMapFramebuffer

	pass        universe.RenderPass
	output      universe.RendererOutput
	depthRanges [][2]float32
	depthTest   bool
	depthWrite  bool
	colorMask   [4]bool
	cullFace    universe.CullFace
	frontFace   universe.Winding

	boundFramebuffer framebuffer.Framebuffer
	boundCubeFace    int

	maxTextureSize int
	maxCubeMapSize int

	createdDepthBuffers []*fakeFramebuffer
	createdCubeBuffers  []*fakeCubeMap
	depthCreateCalls    int
	cubeCreateCalls     int

	// failDepthCreateAt and failCubeCreateAt make the Nth allocation fail
	// (1-based). Zero never fails.
	failDepthCreateAt int
	failCubeCreateAt  int
}

var _ universe.RenderContext = &recordingContext{}

func newRecordingContext() *recordingContext {
	return &recordingContext{
		modelViewStack:  []common.Matrix4{common.Matrix4Identity()},
		projectionStack: []common.PlanarProjection{common.CreatePerspective(1, 1, 1, 100)},
		colorMask:       [4]bool{true, true, true, true},
		depthTest:       true,
		depthWrite:      true,
		maxTextureSize:  2048,
		maxCubeMapSize:  2048,
	}
}

func (c *recordingContext) record(name string) {
	c.calls = append(c.calls, name)
}

func (c *recordingContext) called(name string) bool {
	for _, call := range c.calls {
		if call == name {
			return true
		}
	}
	return false
}

func (c *recordingContext) lastDepthRange() [2]float32 {
	if len(c.depthRanges) == 0 {
		return [2]float32{0, 1}
	}
	return c.depthRanges[len(c.depthRanges)-1]
}

func (c *recordingContext) PushModelView() {
	c.record("PushModelView")
	c.modelViewStack = append(c.modelViewStack, c.modelViewStack[len(c.modelViewStack)-1])
}

func (c *recordingContext) PopModelView() {
	c.record("PopModelView")
	if len(c.modelViewStack) > 1 {
		c.modelViewStack = c.modelViewStack[:len(c.modelViewStack)-1]
	}
}

func (c *recordingContext) SetModelView(m common.Matrix4) {
	c.record("SetModelView")
	c.modelViewStack[len(c.modelViewStack)-1] = m
}

func (c *recordingContext) ModelView() common.Matrix4 {
	return c.modelViewStack[len(c.modelViewStack)-1]
}

func (c *recordingContext) TranslateModelView(v common.Vector3f) {
	c.record("TranslateModelView")
	top := len(c.modelViewStack) - 1
	c.modelViewStack[top] = c.modelViewStack[top].Mul(common.Matrix4Translation(v))
}

func (c *recordingContext) RotateModelView(q common.Quaternionf) {
	c.record("RotateModelView")
	top := len(c.modelViewStack) - 1
	c.modelViewStack[top] = c.modelViewStack[top].Mul(common.Matrix4FromQuaternion(q))
}

func (c *recordingContext) SetModelTranslation(v common.Vector3) {
	c.record("SetModelTranslation")
	c.modelTranslation = v
}

func (c *recordingContext) PushProjection() {
	c.record("PushProjection")
	c.projectionStack = append(c.projectionStack, c.projectionStack[len(c.projectionStack)-1])
}

func (c *recordingContext) PopProjection() {
	c.record("PopProjection")
	if len(c.projectionStack) > 1 {
		c.projectionStack = c.projectionStack[:len(c.projectionStack)-1]
	}
}

func (c *recordingContext) SetProjection(p common.PlanarProjection) {
	c.record("SetProjection")
	c.projectionStack[len(c.projectionStack)-1] = p
}

func (c *recordingContext) Frustum() common.Frustum {
	return c.projectionStack[len(c.projectionStack)-1].Frustum()
}

func (c *recordingContext) SetCameraOrientation(q common.Quaternionf) {
	c.record("SetCameraOrientation")
	c.cameraOrientation = q
}

func (c *recordingContext) CameraOrientation() common.Quaternionf {
	return c.cameraOrientation
}

func (c *recordingContext) SetPixelSize(s float32) {
	c.record("SetPixelSize")
	c.pixelSize = s
}

func (c *recordingContext) PixelSize() float32 {
	return c.pixelSize
}

func (c *recordingContext) SetViewportSize(width, height int) {
	c.record("SetViewportSize")
	c.viewportWidth = width
	c.viewportHeight = height
}

func (c *recordingContext) SetViewport(x, y, width, height int) {
	c.record("SetViewport")
	c.viewportX = x
	c.viewportY = y
	c.viewportWidth = width
	c.viewportHeight = height
}

func (c *recordingContext) Viewport() (x, y, width, height int) {
	return c.viewportX, c.viewportY, c.viewportWidth, c.viewportHeight
}

func (c *recordingContext) SetAmbientLight(light common.Spectrum) {
	c.record("SetAmbientLight")
	c.ambientLight = light
}

func (c *recordingContext) SetActiveLightCount(n int) {
	c.record("SetActiveLightCount")
	c.lightCount = n
}

func (c *recordingContext) SetLight(index int, light universe.ContextLight) {
	c.record(fmt.Sprintf("SetLight(%d)", index))
	c.lights[index] = light
}

func (c *recordingContext) SetShadowMapCount(n int) {
	c.record("SetShadowMapCount")
	c.shadowMapCount = n
}

func (c *recordingContext) SetShadowMap(index int, shadowMap framebuffer.Framebuffer) {
	c.record(fmt.Sprintf("SetShadowMap(%d)", index))
	c.boundShadowMaps[index] = shadowMap
}

func (c *recordingContext) SetShadowMapMatrix(index int, m common.Matrix4) {
	c.record(fmt.Sprintf("SetShadowMapMatrix(%d)", index))
	c.shadowMatrices[index] = m
}

func (c *recordingContext) SetOmniShadowMapCount(n int) {
	c.record("SetOmniShadowMapCount")
	c.omniShadowMapCount = n
}

func (c *recordingContext) SetOmniShadowMap(index int, shadowMap framebuffer.CubeMapFramebuffer) {
	c.record(fmt.Sprintf("SetOmniShadowMap(%d)", index))
	c.boundOmniMaps[index] = shadowMap
}

func (c *recordingContext) SetPass(pass universe.RenderPass) {
	c.record("SetPass")
	c.pass = pass
}

func (c *recordingContext) Pass() universe.RenderPass {
	return c.pass
}

func (c *recordingContext) SetRendererOutput(output universe.RendererOutput) {
	c.record("SetRendererOutput")
	c.output = output
}

func (c *recordingContext) SetDepthRange(near, far float32) {
	c.record("SetDepthRange")
	c.depthRanges = append(c.depthRanges, [2]float32{near, far})
}

func (c *recordingContext) SetDepthTest(enabled bool) {
	c.record("SetDepthTest")
	c.depthTest = enabled
}

func (c *recordingContext) SetDepthWrite(enabled bool) {
	c.record("SetDepthWrite")
	c.depthWrite = enabled
}

func (c *recordingContext) SetColorMask(r, g, b, a bool) {
	c.record("SetColorMask")
	c.colorMask = [4]bool{r, g, b, a}
}

func (c *recordingContext) SetCullFace(mode universe.CullFace) {
	c.record("SetCullFace")
	c.cullFace = mode
}

func (c *recordingContext) SetFrontFace(winding universe.Winding) {
	c.record("SetFrontFace")
	c.frontFace = winding
}

func (c *recordingContext) BindFramebuffer(fb framebuffer.Framebuffer) {
	c.record("BindFramebuffer")
	c.boundFramebuffer = fb
}

func (c *recordingContext) BindCubeMapFace(fb framebuffer.CubeMapFramebuffer, face int) {
	c.record(fmt.Sprintf("BindCubeMapFace(%d)", face))
	c.boundCubeFace = face
}

func (c *recordingContext) UnbindFramebuffer() {
	c.record("UnbindFramebuffer")
	c.boundFramebuffer = nil
}

func (c *recordingContext) ClearDepth() {
	c.record("ClearDepth")
}

func (c *recordingContext) ClearColor(r, g, b, a float32) {
	c.record("ClearColor")
}

func (c *recordingContext) UnbindShader() {
	c.record("UnbindShader")
}

func (c *recordingContext) MaxTextureSize() int {
	return c.maxTextureSize
}

func (c *recordingContext) MaxCubeMapSize() int {
	return c.maxCubeMapSize
}

func (c *recordingContext) CreateDepthFramebuffer(width, height int) (framebuffer.Framebuffer, error) {
	c.depthCreateCalls++
	if c.failDepthCreateAt > 0 && c.depthCreateCalls == c.failDepthCreateAt {
		return nil, fmt.Errorf("simulated allocation failure")
	}
	fb := &fakeFramebuffer{width: width, height: height, valid: true}
	c.createdDepthBuffers = append(c.createdDepthBuffers, fb)
	return fb, nil
}

func (c *recordingContext) CreateCubeMapFramebuffer(size int) (framebuffer.CubeMapFramebuffer, error) {
	c.cubeCreateCalls++
	if c.failCubeCreateAt > 0 && c.cubeCreateCalls == c.failCubeCreateAt {
		return nil, fmt.Errorf("simulated allocation failure")
	}
	fb := &fakeCubeMap{size: size, valid: true}
	c.createdCubeBuffers = append(c.createdCubeBuffers, fb)
	return fb, nil
}

// testGeometry is a configurable geometry stub. Draw calls append the
// geometry's name to the shared logs so tests can assert draw order.
type testGeometry struct {
	name     string
	radius   float32
	policy   universe.ClippingPolicy
	opaque   bool
	caster   bool
	receiver bool

	// nearFunc overrides the default near plane distance of
	// norm(cameraPosition) - radius.
	nearFunc func(cameraPosition common.Vector3f) float32

	renderLog       *[]string
	shadowRenderLog *[]string
}

var _ universe.Geometry = &testGeometry{}

func newTestGeometry(name string, radius float32) *testGeometry {
	return &testGeometry{
		name:     name,
		radius:   radius,
		opaque:   true,
		caster:   true,
		receiver: true,
	}
}

func (g *testGeometry) BoundingSphereRadius() float32 {
	return g.radius
}

func (g *testGeometry) NearPlaneDistance(cameraPosition common.Vector3f) float32 {
	if g.nearFunc != nil {
		return g.nearFunc(cameraPosition)
	}
	return cameraPosition.Norm() - g.radius
}

func (g *testGeometry) ClippingPolicy() universe.ClippingPolicy {
	return g.policy
}

func (g *testGeometry) IsOpaque() bool {
	return g.opaque
}

func (g *testGeometry) IsShadowCaster() bool {
	return g.caster
}

func (g *testGeometry) IsShadowReceiver() bool {
	return g.receiver
}

func (g *testGeometry) Render(rc universe.RenderContext, t float64) {
	if g.renderLog != nil {
		*g.renderLog = append(*g.renderLog, g.name)
	}
}

func (g *testGeometry) RenderShadow(rc universe.RenderContext, t float64) {
	if g.shadowRenderLog != nil {
		*g.shadowRenderLog = append(*g.shadowRenderLog, g.name)
	}
}
