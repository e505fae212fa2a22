package geometry

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/universe"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSphereGeometryPanicsOnBadRadius(t *testing.T) {
	assert.Panics(t, func() { NewSphereGeometry(0) })
	assert.Panics(t, func() { NewSphereGeometry(-1) })
}

func TestSphereGeometryDefaults(t *testing.T) {
	s := NewSphereGeometry(6371)

	assert.Equal(t, float32(6371), s.BoundingSphereRadius())
	assert.Equal(t, common.NewSpectrum(1, 1, 1), s.Color())
	assert.True(t, s.IsOpaque())
	assert.True(t, s.IsShadowCaster())
	assert.True(t, s.IsShadowReceiver())
	assert.Equal(t, universe.PreserveDepthPrecision, s.ClippingPolicy())
}

func TestSphereGeometryOptions(t *testing.T) {
	s := NewSphereGeometry(1,
		WithSphereColor(common.NewSpectrum(0.8, 0.2, 0.1)),
		WithOpaque(false),
		WithShadowCasting(false),
		WithShadowReceiving(false),
		WithClippingPolicy(universe.SplitToPreventClipping))

	assert.Equal(t, common.NewSpectrum(0.8, 0.2, 0.1), s.Color())
	assert.False(t, s.IsOpaque())
	assert.False(t, s.IsShadowCaster())
	assert.False(t, s.IsShadowReceiver())
	assert.Equal(t, universe.SplitToPreventClipping, s.ClippingPolicy())
}

func TestSphereGeometrySetColor(t *testing.T) {
	s := NewSphereGeometry(1)
	s.SetColor(common.NewSpectrum(0, 1, 0))
	assert.Equal(t, common.NewSpectrum(0, 1, 0), s.Color())
}

func TestSphereNearPlaneDistance(t *testing.T) {
	s := NewSphereGeometry(2)
	assert.InDelta(t, 8.0, s.NearPlaneDistance(common.Vec3f(0, 0, 10)), 1e-6)
	assert.InDelta(t, 3.0, s.NearPlaneDistance(common.Vec3f(3, 4, 0)), 1e-6)
}

func TestSphereRenderIgnoresForeignContext(t *testing.T) {
	s := NewSphereGeometry(1)

	// A context without a GPU backing leaves the geometry untouched.
	assert.NotPanics(t, func() { s.Render(nil, 0) })
	assert.NotPanics(t, func() { s.RenderShadow(nil, 0) })
}

func TestBuildSphereMesh(t *testing.T) {
	const stacks, slices = 4, 6
	vertexData, indexData := buildSphereMesh(10, stacks, slices)

	require.Len(t, vertexData, (stacks+1)*(slices+1)*24)
	require.Len(t, indexData, stacks*slices*6*4)

	f32 := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(vertexData[offset : offset+4]))
	}

	// The first vertex is the pole along +Z with a matching unit normal.
	assert.InDelta(t, 0, f32(0), 1e-6)
	assert.InDelta(t, 0, f32(4), 1e-6)
	assert.InDelta(t, 10, f32(8), 1e-6)
	assert.InDelta(t, 0, f32(12), 1e-6)
	assert.InDelta(t, 0, f32(16), 1e-6)
	assert.InDelta(t, 1, f32(20), 1e-6)

	// Every position sits on the sphere and every normal is unit length.
	for i := 0; i < len(vertexData); i += 24 {
		px, py, pz := f32(i), f32(i+4), f32(i+8)
		nx, ny, nz := f32(i+12), f32(i+16), f32(i+20)
		assert.InDelta(t, 100, float64(px*px+py*py+pz*pz), 1e-3)
		assert.InDelta(t, 1, float64(nx*nx+ny*ny+nz*nz), 1e-5)
	}

	// Indices stay within the vertex range.
	vertexCount := uint32((stacks + 1) * (slices + 1))
	for i := 0; i < len(indexData); i += 4 {
		assert.Less(t, binary.LittleEndian.Uint32(indexData[i:i+4]), vertexCount)
	}
}

func TestColorWriteMask(t *testing.T) {
	tests := []struct {
		name string
		mask [4]bool
		want wgpu.ColorWriteMask
	}{
		{"all channels", [4]bool{true, true, true, true}, wgpu.ColorWriteMaskAll},
		{"none", [4]bool{}, wgpu.ColorWriteMask(0)},
		{"red and alpha", [4]bool{true, false, false, true}, wgpu.ColorWriteMaskRed | wgpu.ColorWriteMaskAlpha},
		{"green and blue", [4]bool{false, true, true, false}, wgpu.ColorWriteMaskGreen | wgpu.ColorWriteMaskBlue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, colorWriteMask(tt.mask))
		})
	}
}

func TestFrontFaceMapping(t *testing.T) {
	assert.Equal(t, wgpu.FrontFaceCCW, frontFace(universe.CounterClockwise))
	assert.Equal(t, wgpu.FrontFaceCW, frontFace(universe.Clockwise))
}

func TestCullModeMapping(t *testing.T) {
	assert.Equal(t, wgpu.CullModeBack, cullMode(universe.CullBack))
	assert.Equal(t, wgpu.CullModeFront, cullMode(universe.CullFront))
	assert.Equal(t, wgpu.CullModeNone, cullMode(universe.CullNone))
}
