package renderer

import (
	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/universe"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA)
// on the default surface. Offscreen shadow targets are never multisampled. WebGPU guarantees
// support for 1 (off) and 4; higher values (8, 16) are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is the default;
	// point-like bodies against black space gain little from MSAA.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8x multisample anti-aliasing. Adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16x multisample anti-aliasing. Adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// RasterState is the rasterizer configuration in effect for the next draw.
// Geometry implementations key their pipeline caches on it.
type RasterState struct {
	CullFace   universe.CullFace
	FrontFace  universe.Winding
	ColorMask  [4]bool
	DepthTest  bool
	DepthWrite bool
	Output     universe.RendererOutput
	Pass       universe.RenderPass
}

// TargetFormats describes the attachments of the currently bound render
// target. ColorFormat is TextureFormatUndefined for depth-only targets.
type TargetFormats struct {
	ColorFormat wgpu.TextureFormat
	DepthFormat wgpu.TextureFormat
	SampleCount uint32
}

// WGPURenderContext is the WebGPU implementation of the render context. It
// adds the device access, frame lifecycle and pipeline plumbing that concrete
// geometry needs to issue draws.
type WGPURenderContext interface {
	universe.RenderContext

	// Device returns the WebGPU device.
	//
	// Returns:
	//   - *wgpu.Device: the device
	Device() *wgpu.Device

	// Queue returns the WebGPU queue.
	//
	// Returns:
	//   - *wgpu.Queue: the queue
	Queue() *wgpu.Queue

	// ConfigureSurface configures or reconfigures the display surface,
	// recreating the depth attachment. Must be called before the first frame
	// and whenever the window is resized.
	//
	// Parameters:
	//   - width, height: surface dimensions in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode selects how finished frames are presented. Takes effect
	// on the next ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the next surface texture and opens a command
	// encoder for the frame.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame() error

	// EndFrame closes any open render pass and submits the frame's commands.
	EndFrame()

	// Present presents the frame acquired by BeginFrame to the display.
	Present()

	// RenderPass returns the render pass encoder for the current target,
	// opening a pass if none is active, with the frame state for the pending
	// draw uploaded and bound at group 0.
	//
	// Returns:
	//   - *wgpu.RenderPassEncoder: the active pass
	RenderPass() *wgpu.RenderPassEncoder

	// FrameStateLayout returns the bind group layout for the frame state
	// uniform block at group 0. Geometry pipeline layouts start with it.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the group 0 layout
	FrameStateLayout() *wgpu.BindGroupLayout

	// RasterState returns the rasterizer configuration for the next draw.
	//
	// Returns:
	//   - RasterState: the current raster state
	RasterState() RasterState

	// TargetFormats returns the attachment formats of the bound target.
	//
	// Returns:
	//   - TargetFormats: the attachment formats
	TargetFormats() TargetFormats

	// ShadowMapView returns the depth view of a bound directional shadow
	// map, for sampling in receiver shaders.
	//
	// Parameters:
	//   - index: the shadow map slot
	//
	// Returns:
	//   - *wgpu.TextureView: the depth view, or nil if the slot is unbound
	ShadowMapView(index int) *wgpu.TextureView

	// OmniShadowMapView returns the cube view of a bound omnidirectional
	// shadow map, for sampling in receiver shaders.
	//
	// Parameters:
	//   - index: the cube shadow map slot
	//
	// Returns:
	//   - *wgpu.TextureView: the cube view, or nil if the slot is unbound
	OmniShadowMapView(index int) *wgpu.TextureView

	// ComparisonSampler returns the less-equal comparison sampler used for
	// directional shadow map lookups.
	//
	// Returns:
	//   - *wgpu.Sampler: the comparison sampler
	ComparisonSampler() *wgpu.Sampler

	// Release frees the context's GPU resources.
	Release()
}

// ensure the implementation satisfies both views of the context.
var (
	_ WGPURenderContext      = &wgpuRenderContextImpl{}
	_ universe.RenderContext = &wgpuRenderContextImpl{}
)

// stateToGPULight converts a bound context light to its GPU representation.
func stateToGPULight(light universe.ContextLight) GPUContextLight {
	return GPUContextLight{
		Position:    [3]float32{light.Position.X, light.Position.Y, light.Position.Z},
		LightType:   uint32(light.Type),
		Color:       [3]float32{light.Color.R, light.Color.G, light.Color.B},
		Attenuation: light.Attenuation,
	}
}

// splitDouble splits a double precision vector into a high float32 part and
// a float32 residual, recovering most of the precision a single float32
// modelview translation would lose.
func splitDouble(v common.Vector3) (high, low [3]float32) {
	hx, hy, hz := float32(v.X), float32(v.Y), float32(v.Z)
	high = [3]float32{hx, hy, hz}
	low = [3]float32{
		float32(v.X - float64(hx)),
		float32(v.Y - float64(hy)),
		float32(v.Z - float64(hz)),
	}
	return high, low
}
