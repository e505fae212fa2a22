// Package framebuffer provides offscreen render targets for shadow map
// generation: flat depth-only maps for directional shadows and cube maps of
// camera distances for omnidirectional shadows.
package framebuffer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Framebuffer is a depth-only offscreen render target. Directional shadow
// passes draw casters into it and lit passes sample it as a texture.
type Framebuffer interface {
	// Width returns the width of the target in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the height of the target in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// IsValid reports whether the underlying GPU resources were created
	// successfully and have not been released.
	//
	// Returns:
	//   - bool: true if the target is usable
	IsValid() bool

	// DepthView returns the texture view of the depth attachment, for use as
	// a render attachment or a sampled shader binding.
	//
	// Returns:
	//   - *wgpu.TextureView: the depth texture view
	DepthView() *wgpu.TextureView

	// Release frees the GPU resources. The framebuffer is invalid afterward.
	Release()
}

// CubeMapFramebuffer is a six-face offscreen render target whose color
// attachment stores camera distance in the red channel. Omnidirectional
// shadow passes draw casters into each face and lit passes sample the cube.
type CubeMapFramebuffer interface {
	// Size returns the edge length of each face in pixels.
	//
	// Returns:
	//   - int: face size in pixels
	Size() int

	// IsValid reports whether the underlying GPU resources were created
	// successfully and have not been released.
	//
	// Returns:
	//   - bool: true if the target is usable
	IsValid() bool

	// ColorView returns the cube texture view of the distance attachment,
	// for sampling during lit passes.
	//
	// Returns:
	//   - *wgpu.TextureView: the cube map view
	ColorView() *wgpu.TextureView

	// FaceColorView returns the render attachment view for one face of the
	// distance cube.
	//
	// Parameters:
	//   - face: face index, 0 through 5
	//
	// Returns:
	//   - *wgpu.TextureView: the face view
	FaceColorView(face int) *wgpu.TextureView

	// FaceDepthView returns the depth attachment view shared by face passes.
	//
	// Returns:
	//   - *wgpu.TextureView: the depth view
	FaceDepthView() *wgpu.TextureView

	// Release frees the GPU resources. The framebuffer is invalid afterward.
	Release()
}

type depthFramebuffer struct {
	width   int
	height  int
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

var _ Framebuffer = &depthFramebuffer{}

// NewDepthFramebuffer creates a depth-only render target of the given size.
//
// Parameters:
//   - device: the GPU device to allocate on
//   - width, height: target dimensions in pixels
//
// Returns:
//   - Framebuffer: the new target
//   - error: non-nil if texture allocation failed
func NewDepthFramebuffer(device *wgpu.Device, width, height int) (Framebuffer, error) {
	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Shadow Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shadow depth texture: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("failed to create shadow depth view: %w", err)
	}
	return &depthFramebuffer{
		width:   width,
		height:  height,
		texture: texture,
		view:    view,
	}, nil
}

func (f *depthFramebuffer) Width() int {
	return f.width
}

func (f *depthFramebuffer) Height() int {
	return f.height
}

func (f *depthFramebuffer) IsValid() bool {
	return f.view != nil
}

func (f *depthFramebuffer) DepthView() *wgpu.TextureView {
	return f.view
}

func (f *depthFramebuffer) Release() {
	if f.view != nil {
		f.view.Release()
		f.view = nil
	}
	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}

type cubeMapFramebuffer struct {
	size         int
	colorTexture *wgpu.Texture
	cubeView     *wgpu.TextureView
	faceViews    [6]*wgpu.TextureView
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
}

var _ CubeMapFramebuffer = &cubeMapFramebuffer{}

// NewCubeMapFramebuffer creates a six-face distance cube render target. The
// color faces are R32Float; a single shared Depth32Float attachment is
// reused across faces.
//
// Parameters:
//   - device: the GPU device to allocate on
//   - size: edge length of each face in pixels
//
// Returns:
//   - CubeMapFramebuffer: the new target
//   - error: non-nil if texture allocation failed
func NewCubeMapFramebuffer(device *wgpu.Device, size int) (CubeMapFramebuffer, error) {
	colorTexture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Omni Shadow Cube Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(size),
			Height:             uint32(size),
			DepthOrArrayLayers: 6,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatR32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create omni shadow cube texture: %w", err)
	}

	fb := &cubeMapFramebuffer{
		size:         size,
		colorTexture: colorTexture,
	}

	fb.cubeView, err = colorTexture.CreateView(&wgpu.TextureViewDescriptor{
		Label:           "Omni Shadow Cube View",
		Format:          wgpu.TextureFormatR32Float,
		Dimension:       wgpu.TextureViewDimensionCube,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 6,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		fb.Release()
		return nil, fmt.Errorf("failed to create omni shadow cube view: %w", err)
	}

	for face := 0; face < 6; face++ {
		fb.faceViews[face], err = colorTexture.CreateView(&wgpu.TextureViewDescriptor{
			Label:           "Omni Shadow Face View",
			Format:          wgpu.TextureFormatR32Float,
			Dimension:       wgpu.TextureViewDimension2D,
			BaseMipLevel:    0,
			MipLevelCount:   1,
			BaseArrayLayer:  uint32(face),
			ArrayLayerCount: 1,
			Aspect:          wgpu.TextureAspectAll,
		})
		if err != nil {
			fb.Release()
			return nil, fmt.Errorf("failed to create omni shadow face view: %w", err)
		}
	}

	fb.depthTexture, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Omni Shadow Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(size),
			Height:             uint32(size),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		fb.Release()
		return nil, fmt.Errorf("failed to create omni shadow depth texture: %w", err)
	}
	fb.depthView, err = fb.depthTexture.CreateView(nil)
	if err != nil {
		fb.Release()
		return nil, fmt.Errorf("failed to create omni shadow depth view: %w", err)
	}

	return fb, nil
}

func (f *cubeMapFramebuffer) Size() int {
	return f.size
}

func (f *cubeMapFramebuffer) IsValid() bool {
	return f.cubeView != nil && f.depthView != nil
}

func (f *cubeMapFramebuffer) ColorView() *wgpu.TextureView {
	return f.cubeView
}

func (f *cubeMapFramebuffer) FaceColorView(face int) *wgpu.TextureView {
	return f.faceViews[face]
}

func (f *cubeMapFramebuffer) FaceDepthView() *wgpu.TextureView {
	return f.depthView
}

func (f *cubeMapFramebuffer) Release() {
	for i, v := range f.faceViews {
		if v != nil {
			v.Release()
			f.faceViews[i] = nil
		}
	}
	if f.cubeView != nil {
		f.cubeView.Release()
		f.cubeView = nil
	}
	if f.colorTexture != nil {
		f.colorTexture.Release()
		f.colorTexture = nil
	}
	if f.depthView != nil {
		f.depthView.Release()
		f.depthView = nil
	}
	if f.depthTexture != nil {
		f.depthTexture.Release()
		f.depthTexture = nil
	}
}
