// Package geometry provides concrete geometry implementations for universe
// entities.
package geometry

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/renderer"
	"github.com/JohnVV/cosmographia/engine/universe"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/sphere.wgsl
var sphereShaderSource string

const (
	sphereStacks = 32
	sphereSlices = 48
)

// SphereGeometry is a lit sphere of fixed radius, the body geometry used for
// stars, planets and moons.
type SphereGeometry interface {
	universe.Geometry

	// SetColor sets the surface color.
	//
	// Parameters:
	//   - color: the surface color
	SetColor(color common.Spectrum)

	// Color returns the surface color.
	//
	// Returns:
	//   - common.Spectrum: the surface color
	Color() common.Spectrum
}

type sphereGeometryImpl struct {
	radius float32
	color  common.Spectrum

	opaque          bool
	castsShadows    bool
	receivesShadows bool
	clippingPolicy  universe.ClippingPolicy

	vertexBuffer  *wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	indexCount    uint32
	shaderModule  *wgpu.ShaderModule
	materialGroup *wgpu.BindGroup
	layout        *wgpu.PipelineLayout
	pipelines     map[spherePipelineKey]*wgpu.RenderPipeline
}

var _ SphereGeometry = &sphereGeometryImpl{}

// spherePipelineKey captures everything a pipeline depends on: the target
// attachments and the rasterizer state in effect when the draw is issued.
type spherePipelineKey struct {
	formats renderer.TargetFormats
	raster  renderer.RasterState
}

// NewSphereGeometry creates a sphere of the given radius. Panics if the
// radius is not positive. GPU resources are created lazily on first render.
//
// Parameters:
//   - radius: sphere radius in world units
//   - opts: variadic list of SphereGeometryBuilderOption functions to configure the sphere
//
// Returns:
//   - SphereGeometry: the new sphere
func NewSphereGeometry(radius float32, opts ...SphereGeometryBuilderOption) SphereGeometry {
	if radius <= 0 {
		panic("sphere radius must be positive")
	}
	s := &sphereGeometryImpl{
		radius:          radius,
		color:           common.NewSpectrum(1, 1, 1),
		opaque:          true,
		castsShadows:    true,
		receivesShadows: true,
		pipelines:       make(map[spherePipelineKey]*wgpu.RenderPipeline),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sphereGeometryImpl) SetColor(color common.Spectrum) {
	s.color = color
}

func (s *sphereGeometryImpl) Color() common.Spectrum {
	return s.color
}

func (s *sphereGeometryImpl) BoundingSphereRadius() float32 {
	return s.radius
}

func (s *sphereGeometryImpl) NearPlaneDistance(cameraPosition common.Vector3f) float32 {
	return cameraPosition.Norm() - s.radius
}

func (s *sphereGeometryImpl) ClippingPolicy() universe.ClippingPolicy {
	return s.clippingPolicy
}

func (s *sphereGeometryImpl) IsOpaque() bool {
	return s.opaque
}

func (s *sphereGeometryImpl) IsShadowCaster() bool {
	return s.castsShadows
}

func (s *sphereGeometryImpl) IsShadowReceiver() bool {
	return s.receivesShadows
}

func (s *sphereGeometryImpl) Render(rc universe.RenderContext, t float64) {
	s.draw(rc)
}

func (s *sphereGeometryImpl) RenderShadow(rc universe.RenderContext, t float64) {
	s.draw(rc)
}

func (s *sphereGeometryImpl) draw(rc universe.RenderContext) {
	wc, ok := rc.(renderer.WGPURenderContext)
	if !ok {
		return
	}
	if s.vertexBuffer == nil {
		if err := s.initResources(wc); err != nil {
			renderer.Logger().Warn("failed to create sphere resources", "error", err)
			return
		}
	}

	pipeline, err := s.pipelineFor(wc)
	if err != nil {
		renderer.Logger().Warn("failed to create sphere pipeline", "error", err)
		return
	}

	pass := wc.RenderPass()
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(1, s.materialGroup, nil)
	pass.SetVertexBuffer(0, s.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(s.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(s.indexCount, 1, 0, 0, 0)
}

// initResources creates the mesh buffers, shader module, material bind group
// and pipeline layout on first use.
func (s *sphereGeometryImpl) initResources(wc renderer.WGPURenderContext) error {
	device := wc.Device()

	vertexData, indexData := buildSphereMesh(s.radius, sphereStacks, sphereSlices)
	s.indexCount = uint32(len(indexData) / 4)

	vb, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Sphere Vertices",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	wc.Queue().WriteBuffer(vb, 0, vertexData)
	s.vertexBuffer = vb

	ib, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Sphere Indices",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	wc.Queue().WriteBuffer(ib, 0, indexData)
	s.indexBuffer = ib

	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Sphere Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: sphereShaderSource,
		},
	})
	if err != nil {
		return err
	}
	s.shaderModule = module

	materialLayout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Sphere Material Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 16,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	materialBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Sphere Material",
		Size:  16,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	materialData := make([]byte, 16)
	binary.LittleEndian.PutUint32(materialData[0:4], math.Float32bits(s.color.R))
	binary.LittleEndian.PutUint32(materialData[4:8], math.Float32bits(s.color.G))
	binary.LittleEndian.PutUint32(materialData[8:12], math.Float32bits(s.color.B))
	wc.Queue().WriteBuffer(materialBuffer, 0, materialData)

	materialGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Sphere Material",
		Layout: materialLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  materialBuffer,
				Offset:  0,
				Size:    16,
			},
		},
	})
	if err != nil {
		return err
	}
	s.materialGroup = materialGroup

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Sphere Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{wc.FrameStateLayout(), materialLayout},
	})
	if err != nil {
		return err
	}
	s.layout = layout

	return nil
}

// pipelineFor returns a render pipeline matching the context's current
// target and rasterizer state, creating and caching it on first use.
func (s *sphereGeometryImpl) pipelineFor(wc renderer.WGPURenderContext) (*wgpu.RenderPipeline, error) {
	key := spherePipelineKey{
		formats: wc.TargetFormats(),
		raster:  wc.RasterState(),
	}
	if pipeline, ok := s.pipelines[key]; ok {
		return pipeline, nil
	}

	var fragment *wgpu.FragmentState
	if key.formats.ColorFormat != wgpu.TextureFormatUndefined {
		fragment = &wgpu.FragmentState{
			Module:     s.shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    key.formats.ColorFormat,
					WriteMask: colorWriteMask(key.raster.ColorMask),
				},
			},
		}
	}

	depthCompare := wgpu.CompareFunctionLessEqual
	if !key.raster.DepthTest {
		depthCompare = wgpu.CompareFunctionAlways
	}

	pipeline, err := wc.Device().CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Sphere Render Pipeline",
		Layout: s.layout,
		Vertex: wgpu.VertexState{
			Module:     s.shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 24,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: fragment,
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: frontFace(key.raster.FrontFace),
			CullMode:  cullMode(key.raster.CullFace),
		},
		Multisample: wgpu.MultisampleState{
			Count: key.formats.SampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            key.formats.DepthFormat,
			DepthWriteEnabled: key.raster.DepthWrite,
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	s.pipelines[key] = pipeline
	return pipeline, nil
}

func colorWriteMask(mask [4]bool) wgpu.ColorWriteMask {
	var m wgpu.ColorWriteMask
	if mask[0] {
		m |= wgpu.ColorWriteMaskRed
	}
	if mask[1] {
		m |= wgpu.ColorWriteMaskGreen
	}
	if mask[2] {
		m |= wgpu.ColorWriteMaskBlue
	}
	if mask[3] {
		m |= wgpu.ColorWriteMaskAlpha
	}
	return m
}

func frontFace(winding universe.Winding) wgpu.FrontFace {
	if winding == universe.Clockwise {
		return wgpu.FrontFaceCW
	}
	return wgpu.FrontFaceCCW
}

func cullMode(mode universe.CullFace) wgpu.CullMode {
	switch mode {
	case universe.CullFront:
		return wgpu.CullModeFront
	case universe.CullBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

// buildSphereMesh generates an interleaved position and normal mesh for a
// latitude and longitude sphere, with uint32 triangle list indices.
func buildSphereMesh(radius float32, stacks, slices int) (vertexData, indexData []byte) {
	vertexCount := (stacks + 1) * (slices + 1)
	vertexData = make([]byte, 0, vertexCount*24)

	putF32 := func(buf []byte, v float32) []byte {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		return append(buf, b[:]...)
	}

	for stack := 0; stack <= stacks; stack++ {
		phi := math.Pi * float64(stack) / float64(stacks)
		sinPhi, cosPhi := math.Sincos(phi)
		for slice := 0; slice <= slices; slice++ {
			theta := 2 * math.Pi * float64(slice) / float64(slices)
			sinTheta, cosTheta := math.Sincos(theta)

			nx := float32(sinPhi * cosTheta)
			ny := float32(sinPhi * sinTheta)
			nz := float32(cosPhi)

			vertexData = putF32(vertexData, nx*radius)
			vertexData = putF32(vertexData, ny*radius)
			vertexData = putF32(vertexData, nz*radius)
			vertexData = putF32(vertexData, nx)
			vertexData = putF32(vertexData, ny)
			vertexData = putF32(vertexData, nz)
		}
	}

	indexData = make([]byte, 0, stacks*slices*6*4)
	putU32 := func(buf []byte, v uint32) []byte {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		return append(buf, b[:]...)
	}

	rowStride := uint32(slices + 1)
	for stack := 0; stack < stacks; stack++ {
		for slice := 0; slice < slices; slice++ {
			a := uint32(stack)*rowStride + uint32(slice)
			b := a + rowStride

			indexData = putU32(indexData, a)
			indexData = putU32(indexData, b)
			indexData = putU32(indexData, a+1)
			indexData = putU32(indexData, a+1)
			indexData = putU32(indexData, b)
			indexData = putU32(indexData, b+1)
		}
	}

	return vertexData, indexData
}
