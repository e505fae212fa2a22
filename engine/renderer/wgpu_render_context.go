package renderer

import (
	"runtime"

	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/framebuffer"
	"github.com/JohnVV/cosmographia/engine/universe"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// frameStateSlotSize is the bound size of one frame state slot: the
	// state block followed by the light array.
	frameStateSlotSize = 384 + maxContextLights*32

	// frameStateStride is the slot size rounded up to the 256-byte dynamic
	// offset alignment WebGPU requires.
	frameStateStride = 768

	// maxDrawsPerFrame bounds the frame state ring buffer. Draws beyond it
	// reuse the final slot.
	maxDrawsPerFrame = 4096

	surfaceDepthFormat   = wgpu.TextureFormatDepth24Plus
	offscreenDepthFormat = wgpu.TextureFormatDepth32Float
	distanceColorFormat  = wgpu.TextureFormatR32Float
)

type wgpuRenderContextImpl struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	sampleCount   MSAASampleCount
	limits        wgpu.Limits

	surfaceWidth  int
	surfaceHeight int

	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// Offscreen target bound in place of the display surface. A nil
	// boundDepthView means the default surface is the target.
	boundColorView *wgpu.TextureView
	boundDepthView *wgpu.TextureView
	boundFormats   TargetFormats
	boundWidth     int
	boundHeight    int

	clearColorPending bool
	clearDepthPending bool
	clearValue        wgpu.Color

	frameStateBuffer *wgpu.Buffer
	frameStateLayout *wgpu.BindGroupLayout
	frameStateGroup  *wgpu.BindGroup
	frameStateSlot   int

	comparisonSampler *wgpu.Sampler

	modelViewStack   []common.Matrix4
	projectionStack  []common.PlanarProjection
	modelTranslation common.Vector3

	cameraOrientation common.Quaternionf
	pixelSize         float32

	viewportX      int
	viewportY      int
	viewportWidth  int
	viewportHeight int
	surfaceExtentW int
	surfaceExtentH int

	ambientLight     common.Spectrum
	lights           [maxContextLights]universe.ContextLight
	activeLightCount int

	shadowMapCount     int
	omniShadowMapCount int
	shadowMatrices     [MaxShadowMaps]common.Matrix4
	shadowMapViews     [MaxShadowMaps]*wgpu.TextureView
	omniShadowMapViews [MaxOmniShadowMaps]*wgpu.TextureView

	pass   universe.RenderPass
	output universe.RendererOutput

	depthRangeNear float32
	depthRangeFar  float32
	depthTest      bool
	depthWrite     bool
	colorMask      [4]bool
	cullFace       universe.CullFace
	frontFace      universe.Winding
}

// NewWGPURenderContext creates a WebGPU render context for the given surface.
// Panics if no suitable adapter or device is available.
//
// Parameters:
//   - surfaceDescriptor: platform surface to present to
//   - opts: variadic list of WGPURenderContextBuilderOption functions to configure the context
//
// Returns:
//   - WGPURenderContext: the new context
func NewWGPURenderContext(surfaceDescriptor *wgpu.SurfaceDescriptor, opts ...WGPURenderContextBuilderOption) WGPURenderContext {
	runtime.LockOSThread()

	cfg := wgpuContextConfig{
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: MSAAOff,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &wgpuRenderContextImpl{
		instance:        wgpu.CreateInstance(nil),
		presentMode:     cfg.presentMode,
		sampleCount:     cfg.sampleCount,
		limits:          wgpu.DefaultLimits(),
		depthRangeFar:   1,
		depthTest:       true,
		depthWrite:      true,
		colorMask:       [4]bool{true, true, true, true},
		modelViewStack:  []common.Matrix4{common.Matrix4Identity()},
		projectionStack: []common.PlanarProjection{common.CreatePerspective(1, 1, minimumNearPlaneDistance, maximumFarPlaneDistance)},
	}
	c.surface = c.instance.CreateSurface(surfaceDescriptor)

	a, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: cfg.forceFallbackAdapter,
		CompatibleSurface:    c.surface,
	})
	if err != nil {
		panic(err)
	}
	c.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Universe Render Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: c.limits,
		},
	})
	if err != nil {
		panic(err)
	}
	c.device = d
	c.queue = d.GetQueue()

	c.initFrameState()
	return c
}

// initFrameState creates the frame state ring buffer, its bind group layout
// and the comparison sampler used for shadow map lookups.
func (c *wgpuRenderContextImpl) initFrameState() {
	buf, err := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame State",
		Size:  uint64(maxDrawsPerFrame * frameStateStride),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	c.frameStateBuffer = buf

	layout, err := c.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame State Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   frameStateSlotSize,
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	c.frameStateLayout = layout

	group, err := c.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame State",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    frameStateSlotSize,
			},
		},
	})
	if err != nil {
		panic(err)
	}
	c.frameStateGroup = group

	sampler, err := c.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   1,
		Compare:       wgpu.CompareFunctionLessEqual,
		MaxAnisotropy: 1,
	})
	if err != nil {
		panic(err)
	}
	c.comparisonSampler = sampler
}

func (c *wgpuRenderContextImpl) Device() *wgpu.Device {
	return c.device
}

func (c *wgpuRenderContextImpl) Queue() *wgpu.Queue {
	return c.queue
}

func (c *wgpuRenderContextImpl) SetPresentMode(mode PresentMode) {
	switch mode {
	case PresentModeVSync:
		c.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		c.presentMode = wgpu.PresentModeImmediate
	}
}

func (c *wgpuRenderContextImpl) ConfigureSurface(width, height int) {
	capabilities := c.surface.GetCapabilities(c.adapter)
	c.surfaceFormat = capabilities.Formats[0]

	c.surface.Configure(c.adapter, c.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: c.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	c.surfaceWidth = width
	c.surfaceHeight = height

	if c.msaaTextureView != nil {
		c.msaaTextureView.Release()
		c.msaaTexture.Release()
		c.msaaTextureView = nil
		c.msaaTexture = nil
	}
	if c.sampleCount > 1 {
		msaaTexture, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Color",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   uint32(c.sampleCount),
			Dimension:     wgpu.TextureDimension2D,
			Format:        c.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		view, err := msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
		c.msaaTexture = msaaTexture
		c.msaaTextureView = view
	}

	if c.depthTextureView != nil {
		c.depthTextureView.Release()
		c.depthTexture.Release()
	}
	depthTexture, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Surface Depth",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   uint32(c.sampleCount),
		Dimension:     wgpu.TextureDimension2D,
		Format:        surfaceDepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	view, err := depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	c.depthTexture = depthTexture
	c.depthTextureView = view
}

func (c *wgpuRenderContextImpl) BeginFrame() error {
	surfaceTexture, err := c.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := c.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	c.frameSurface = surfaceTexture
	c.frameView = view
	c.frameEncoder = encoder
	c.frameStateSlot = 0

	// The first pass of the frame clears the surface.
	c.clearValue = wgpu.Color{}
	c.clearColorPending = true
	c.clearDepthPending = true

	return nil
}

func (c *wgpuRenderContextImpl) EndFrame() {
	c.endPass()
	if c.frameEncoder == nil {
		return
	}

	commandBuffer, err := c.frameEncoder.Finish(nil)
	if err == nil {
		c.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}
	c.frameEncoder.Release()
	c.frameEncoder = nil
}

func (c *wgpuRenderContextImpl) Present() {
	if c.frameSurface == nil {
		return
	}

	c.surface.Present()

	c.frameView.Release()
	c.frameSurface.Release()
	c.frameView = nil
	c.frameSurface = nil
}

func (c *wgpuRenderContextImpl) Release() {
	c.endPass()
	if c.frameEncoder != nil {
		c.frameEncoder.Release()
		c.frameEncoder = nil
	}
	if c.comparisonSampler != nil {
		c.comparisonSampler.Release()
	}
	if c.frameStateGroup != nil {
		c.frameStateGroup.Release()
	}
	if c.frameStateLayout != nil {
		c.frameStateLayout.Release()
	}
	if c.frameStateBuffer != nil {
		c.frameStateBuffer.Release()
	}
	if c.msaaTextureView != nil {
		c.msaaTextureView.Release()
		c.msaaTexture.Release()
	}
	if c.depthTextureView != nil {
		c.depthTextureView.Release()
		c.depthTexture.Release()
	}
	if c.device != nil {
		c.device.Release()
	}
}

// endPass closes the active render pass, if any. The frame's command encoder
// stays open so further passes append to the same submission.
func (c *wgpuRenderContextImpl) endPass() {
	if c.framePass != nil {
		c.framePass.End()
		c.framePass = nil
	}
}

// targetViews resolves the color and depth attachment views of the current
// render target.
func (c *wgpuRenderContextImpl) targetViews() (color, depth *wgpu.TextureView) {
	if c.boundDepthView != nil {
		return c.boundColorView, c.boundDepthView
	}
	color = c.frameView
	if c.msaaTextureView != nil {
		color = c.msaaTextureView
	}
	return color, c.depthTextureView
}

// ensurePass opens a render pass on the current target if none is active,
// honoring pending clears.
func (c *wgpuRenderContextImpl) ensurePass() {
	if c.framePass != nil {
		return
	}
	if c.frameEncoder == nil {
		encoder, err := c.device.CreateCommandEncoder(nil)
		if err != nil {
			panic(err)
		}
		c.frameEncoder = encoder
	}

	colorView, depthView := c.targetViews()
	if colorView == nil && depthView == nil {
		panic("no render target bound; call BeginFrame or bind a framebuffer")
	}

	var colorAttachments []wgpu.RenderPassColorAttachment
	if colorView != nil {
		loadOp := wgpu.LoadOpLoad
		if c.clearColorPending {
			loadOp = wgpu.LoadOpClear
		}
		attachment := wgpu.RenderPassColorAttachment{
			View:       colorView,
			LoadOp:     loadOp,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: c.clearValue,
		}
		if c.boundDepthView == nil && c.msaaTextureView != nil {
			attachment.ResolveTarget = c.frameView
		}
		colorAttachments = append(colorAttachments, attachment)
	}

	var depthAttachment *wgpu.RenderPassDepthStencilAttachment
	if depthView != nil {
		depthLoadOp := wgpu.LoadOpLoad
		if c.clearDepthPending {
			depthLoadOp = wgpu.LoadOpClear
		}
		depthAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     depthLoadOp,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		}
	}

	c.framePass = c.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments:       colorAttachments,
		DepthStencilAttachment: depthAttachment,
	})
	c.clearColorPending = false
	c.clearDepthPending = false

	c.applyViewport()
}

// applyViewport pushes the viewport rectangle and depth range slice onto the
// active pass.
func (c *wgpuRenderContextImpl) applyViewport() {
	if c.framePass == nil {
		return
	}
	x, y := c.viewportX, c.viewportY
	w, h := c.viewportWidth, c.viewportHeight
	if w <= 0 || h <= 0 {
		return
	}
	c.framePass.SetViewport(float32(x), float32(y), float32(w), float32(h),
		c.depthRangeNear, c.depthRangeFar)
}

func (c *wgpuRenderContextImpl) RenderPass() *wgpu.RenderPassEncoder {
	c.ensurePass()
	offset := c.uploadFrameState()
	c.framePass.SetBindGroup(0, c.frameStateGroup, []uint32{offset})
	return c.framePass
}

// uploadFrameState writes the current transforms, lights and shadow bindings
// into the next ring buffer slot and returns its dynamic offset.
func (c *wgpuRenderContextImpl) uploadFrameState() uint32 {
	state := GPUFrameState{
		ModelView:          [16]float32(c.ModelView()),
		Projection:         [16]float32(c.projectionStack[len(c.projectionStack)-1].Matrix()),
		LightCount:         uint32(c.activeLightCount),
		OutputMode:         uint32(c.output),
		AmbientColor:       [3]float32{c.ambientLight.R, c.ambientLight.G, c.ambientLight.B},
		ShadowMapCount:     uint32(c.shadowMapCount),
		PixelSize:          [3]float32{c.pixelSize, 0, 0},
		OmniShadowMapCount: uint32(c.omniShadowMapCount),
	}
	for i := 0; i < MaxShadowMaps; i++ {
		state.ShadowMatrices[i] = [16]float32(c.shadowMatrices[i])
	}
	state.ModelTranslationHigh, state.ModelTranslationLow = splitDouble(c.modelTranslation)

	data := make([]byte, 0, frameStateSlotSize)
	data = append(data, state.Marshal()...)

	// Lights are uploaded in view space so shaders can shade without
	// knowing the camera rotation.
	toView := c.cameraOrientation.Conjugate()
	for i := 0; i < maxContextLights; i++ {
		bound := c.lights[i]
		bound.Position = toView.Rotate(bound.Position)
		light := stateToGPULight(bound)
		data = append(data, light.Marshal()...)
	}

	slot := c.frameStateSlot
	if slot >= maxDrawsPerFrame {
		slot = maxDrawsPerFrame - 1
	} else {
		c.frameStateSlot++
	}

	offset := uint32(slot * frameStateStride)
	c.queue.WriteBuffer(c.frameStateBuffer, uint64(offset), data)
	return offset
}

func (c *wgpuRenderContextImpl) FrameStateLayout() *wgpu.BindGroupLayout {
	return c.frameStateLayout
}

func (c *wgpuRenderContextImpl) RasterState() RasterState {
	return RasterState{
		CullFace:   c.cullFace,
		FrontFace:  c.frontFace,
		ColorMask:  c.colorMask,
		DepthTest:  c.depthTest,
		DepthWrite: c.depthWrite,
		Output:     c.output,
		Pass:       c.pass,
	}
}

func (c *wgpuRenderContextImpl) TargetFormats() TargetFormats {
	if c.boundDepthView != nil {
		return c.boundFormats
	}
	return TargetFormats{
		ColorFormat: c.surfaceFormat,
		DepthFormat: surfaceDepthFormat,
		SampleCount: uint32(c.sampleCount),
	}
}

func (c *wgpuRenderContextImpl) PushModelView() {
	c.modelViewStack = append(c.modelViewStack, c.ModelView())
}

func (c *wgpuRenderContextImpl) PopModelView() {
	if len(c.modelViewStack) > 1 {
		c.modelViewStack = c.modelViewStack[:len(c.modelViewStack)-1]
	}
}

func (c *wgpuRenderContextImpl) SetModelView(m common.Matrix4) {
	c.modelViewStack[len(c.modelViewStack)-1] = m
}

func (c *wgpuRenderContextImpl) ModelView() common.Matrix4 {
	return c.modelViewStack[len(c.modelViewStack)-1]
}

func (c *wgpuRenderContextImpl) TranslateModelView(v common.Vector3f) {
	c.SetModelView(c.ModelView().Mul(common.Matrix4Translation(v)))
}

func (c *wgpuRenderContextImpl) RotateModelView(q common.Quaternionf) {
	c.SetModelView(c.ModelView().Mul(common.Matrix4FromQuaternion(q)))
}

func (c *wgpuRenderContextImpl) SetModelTranslation(v common.Vector3) {
	c.modelTranslation = v
}

func (c *wgpuRenderContextImpl) PushProjection() {
	c.projectionStack = append(c.projectionStack, c.projectionStack[len(c.projectionStack)-1])
}

func (c *wgpuRenderContextImpl) PopProjection() {
	if len(c.projectionStack) > 1 {
		c.projectionStack = c.projectionStack[:len(c.projectionStack)-1]
	}
}

func (c *wgpuRenderContextImpl) SetProjection(p common.PlanarProjection) {
	c.projectionStack[len(c.projectionStack)-1] = p
}

func (c *wgpuRenderContextImpl) Frustum() common.Frustum {
	return c.projectionStack[len(c.projectionStack)-1].Frustum()
}

func (c *wgpuRenderContextImpl) SetCameraOrientation(q common.Quaternionf) {
	c.cameraOrientation = q
}

func (c *wgpuRenderContextImpl) CameraOrientation() common.Quaternionf {
	return c.cameraOrientation
}

func (c *wgpuRenderContextImpl) SetPixelSize(s float32) {
	c.pixelSize = s
}

func (c *wgpuRenderContextImpl) PixelSize() float32 {
	return c.pixelSize
}

func (c *wgpuRenderContextImpl) SetViewportSize(width, height int) {
	c.surfaceExtentW = width
	c.surfaceExtentH = height
}

func (c *wgpuRenderContextImpl) SetViewport(x, y, width, height int) {
	c.viewportX = x
	c.viewportY = y
	c.viewportWidth = width
	c.viewportHeight = height
	c.applyViewport()
}

func (c *wgpuRenderContextImpl) Viewport() (x, y, width, height int) {
	return c.viewportX, c.viewportY, c.viewportWidth, c.viewportHeight
}

func (c *wgpuRenderContextImpl) SetAmbientLight(light common.Spectrum) {
	c.ambientLight = light
}

func (c *wgpuRenderContextImpl) SetActiveLightCount(n int) {
	if n > maxContextLights {
		n = maxContextLights
	}
	c.activeLightCount = n
}

func (c *wgpuRenderContextImpl) SetLight(index int, light universe.ContextLight) {
	if index >= 0 && index < maxContextLights {
		c.lights[index] = light
	}
}

func (c *wgpuRenderContextImpl) SetShadowMapCount(n int) {
	c.shadowMapCount = n
}

func (c *wgpuRenderContextImpl) SetShadowMap(index int, shadowMap framebuffer.Framebuffer) {
	if index >= 0 && index < MaxShadowMaps {
		c.shadowMapViews[index] = shadowMap.DepthView()
	}
}

func (c *wgpuRenderContextImpl) SetShadowMapMatrix(index int, m common.Matrix4) {
	if index >= 0 && index < MaxShadowMaps {
		c.shadowMatrices[index] = m
	}
}

func (c *wgpuRenderContextImpl) SetOmniShadowMapCount(n int) {
	c.omniShadowMapCount = n
}

func (c *wgpuRenderContextImpl) SetOmniShadowMap(index int, shadowMap framebuffer.CubeMapFramebuffer) {
	if index >= 0 && index < MaxOmniShadowMaps {
		c.omniShadowMapViews[index] = shadowMap.ColorView()
	}
}

func (c *wgpuRenderContextImpl) SetPass(pass universe.RenderPass) {
	c.pass = pass
}

func (c *wgpuRenderContextImpl) Pass() universe.RenderPass {
	return c.pass
}

func (c *wgpuRenderContextImpl) SetRendererOutput(output universe.RendererOutput) {
	c.output = output
}

func (c *wgpuRenderContextImpl) SetDepthRange(near, far float32) {
	c.depthRangeNear = near
	c.depthRangeFar = far
	c.applyViewport()
}

func (c *wgpuRenderContextImpl) SetDepthTest(enabled bool) {
	c.depthTest = enabled
}

func (c *wgpuRenderContextImpl) SetDepthWrite(enabled bool) {
	c.depthWrite = enabled
}

func (c *wgpuRenderContextImpl) SetColorMask(r, g, b, a bool) {
	c.colorMask = [4]bool{r, g, b, a}
}

func (c *wgpuRenderContextImpl) SetCullFace(mode universe.CullFace) {
	c.cullFace = mode
}

func (c *wgpuRenderContextImpl) SetFrontFace(winding universe.Winding) {
	c.frontFace = winding
}

func (c *wgpuRenderContextImpl) BindFramebuffer(fb framebuffer.Framebuffer) {
	c.endPass()
	c.boundColorView = nil
	c.boundDepthView = fb.DepthView()
	c.boundFormats = TargetFormats{
		ColorFormat: wgpu.TextureFormatUndefined,
		DepthFormat: offscreenDepthFormat,
		SampleCount: 1,
	}
	c.boundWidth = fb.Width()
	c.boundHeight = fb.Height()
}

func (c *wgpuRenderContextImpl) BindCubeMapFace(fb framebuffer.CubeMapFramebuffer, face int) {
	c.endPass()
	c.boundColorView = fb.FaceColorView(face)
	c.boundDepthView = fb.FaceDepthView()
	c.boundFormats = TargetFormats{
		ColorFormat: distanceColorFormat,
		DepthFormat: offscreenDepthFormat,
		SampleCount: 1,
	}
	c.boundWidth = fb.Size()
	c.boundHeight = fb.Size()
}

func (c *wgpuRenderContextImpl) UnbindFramebuffer() {
	c.endPass()
	c.boundColorView = nil
	c.boundDepthView = nil
	c.boundWidth = 0
	c.boundHeight = 0

	// Offscreen work recorded outside a frame has no EndFrame to submit it.
	if c.frameSurface == nil && c.frameEncoder != nil {
		commandBuffer, err := c.frameEncoder.Finish(nil)
		if err == nil {
			c.queue.Submit(commandBuffer)
			commandBuffer.Release()
		}
		c.frameEncoder.Release()
		c.frameEncoder = nil
	}
}

func (c *wgpuRenderContextImpl) ClearDepth() {
	c.endPass()
	c.clearDepthPending = true
}

func (c *wgpuRenderContextImpl) ClearColor(r, g, b, a float32) {
	c.endPass()
	c.clearValue = wgpu.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
	c.clearColorPending = true
}

func (c *wgpuRenderContextImpl) UnbindShader() {
	// WebGPU binds pipelines per draw; there is no persistent shader state
	// to release between views.
}

func (c *wgpuRenderContextImpl) MaxTextureSize() int {
	return int(c.limits.MaxTextureDimension2D)
}

func (c *wgpuRenderContextImpl) MaxCubeMapSize() int {
	// Cube faces are 2D textures; the same dimension limit applies.
	return int(c.limits.MaxTextureDimension2D)
}

func (c *wgpuRenderContextImpl) ShadowMapView(index int) *wgpu.TextureView {
	if index < 0 || index >= MaxShadowMaps {
		return nil
	}
	return c.shadowMapViews[index]
}

func (c *wgpuRenderContextImpl) OmniShadowMapView(index int) *wgpu.TextureView {
	if index < 0 || index >= MaxOmniShadowMaps {
		return nil
	}
	return c.omniShadowMapViews[index]
}

func (c *wgpuRenderContextImpl) ComparisonSampler() *wgpu.Sampler {
	return c.comparisonSampler
}

func (c *wgpuRenderContextImpl) CreateDepthFramebuffer(width, height int) (framebuffer.Framebuffer, error) {
	return framebuffer.NewDepthFramebuffer(c.device, width, height)
}

func (c *wgpuRenderContextImpl) CreateCubeMapFramebuffer(size int) (framebuffer.CubeMapFramebuffer, error) {
	return framebuffer.NewCubeMapFramebuffer(c.device, size)
}
