package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// maxContextLights is the number of GPU light slots available per draw. The
// renderer binds only the lights whose falloff reaches the item being drawn.
const maxContextLights = 8

// GPUContextUniformsSource is the canonical WGSL definition of the FrameState
// and Light structs. Matches GPUFrameState and GPUContextLight exactly.
//
//go:embed assets/context_uniforms.wgsl
var GPUContextUniformsSource string

// GPUContextLight is the GPU-aligned representation of one bound light.
// For directional lights Position holds the direction toward the light.
// Size: 32 bytes (WGSL aligned).
type GPUContextLight struct {
	Position    [3]float32 // offset  0: camera-space position or direction
	LightType   uint32     // offset 12: 0 = directional, 1 = point
	Color       [3]float32 // offset 16: RGB color
	Attenuation float32    // offset 28: quadratic falloff coefficient
}

// Size returns the size of the GPUContextLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUContextLight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUContextLight struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPUContextLight) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Attenuation))
	return buf
}

// GPUFrameState is the GPU-aligned per-draw state block: transforms, the
// double precision model translation split into high and low float32 parts,
// ambient light, and the shadow map bindings for the item being drawn.
// Matches the WGSL FrameState struct layout exactly (see
// GPUContextUniformsSource). Size: 384 bytes (WGSL aligned).
type GPUFrameState struct {
	ModelView            [16]float32                // offset   0: column-major modelview matrix
	Projection           [16]float32                // offset  64: column-major projection matrix
	ShadowMatrices       [MaxShadowMaps][16]float32 // offset 128: camera space to shadow texture space
	ModelTranslationHigh [3]float32                 // offset 320: high float32 part of the camera-relative model position
	LightCount           uint32                     // offset 332: number of active lights
	ModelTranslationLow  [3]float32                 // offset 336: residual of the double precision model position
	OutputMode           uint32                     // offset 348: 0 = fragment color, 1 = camera distance
	AmbientColor         [3]float32                 // offset 352: ambient RGB added to all shading
	ShadowMapCount       uint32                     // offset 364: directional shadow maps bound for this draw
	PixelSize            [3]float32                 // offset 368: angular pixel size in x, padding in y and z
	OmniShadowMapCount   uint32                     // offset 380: cube shadow maps bound for this draw
}

// Size returns the size of the GPUFrameState struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (384)
func (g *GPUFrameState) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameState struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 384-byte buffer ready for GPU upload
func (g *GPUFrameState) Marshal() []byte {
	buf := make([]byte, 384)
	putMat4(buf[0:64], g.ModelView)
	putMat4(buf[64:128], g.Projection)
	for i := 0; i < MaxShadowMaps; i++ {
		putMat4(buf[128+i*64:192+i*64], g.ShadowMatrices[i])
	}
	putVec3(buf[320:332], g.ModelTranslationHigh)
	binary.LittleEndian.PutUint32(buf[332:336], g.LightCount)
	putVec3(buf[336:348], g.ModelTranslationLow)
	binary.LittleEndian.PutUint32(buf[348:352], g.OutputMode)
	putVec3(buf[352:364], g.AmbientColor)
	binary.LittleEndian.PutUint32(buf[364:368], g.ShadowMapCount)
	putVec3(buf[368:380], g.PixelSize)
	binary.LittleEndian.PutUint32(buf[380:384], g.OmniShadowMapCount)
	return buf
}

func putMat4(buf []byte, m [16]float32) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}
