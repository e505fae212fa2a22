package universe

import (
	"testing"

	"github.com/JohnVV/cosmographia/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGeometry is the minimal geometry used to exercise entities and
// visualizers.
type stubGeometry struct {
	radius float32
}

var _ Geometry = &stubGeometry{}

func (g *stubGeometry) BoundingSphereRadius() float32 { return g.radius }
func (g *stubGeometry) NearPlaneDistance(cameraPosition common.Vector3f) float32 {
	return cameraPosition.Norm() - g.radius
}
func (g *stubGeometry) ClippingPolicy() ClippingPolicy           { return PreserveDepthPrecision }
func (g *stubGeometry) IsOpaque() bool                           { return true }
func (g *stubGeometry) IsShadowCaster() bool                     { return true }
func (g *stubGeometry) IsShadowReceiver() bool                   { return true }
func (g *stubGeometry) Render(rc RenderContext, t float64)       {}
func (g *stubGeometry) RenderShadow(rc RenderContext, t float64) {}

func TestNewEntityDefaults(t *testing.T) {
	e := NewEntity("probe")

	assert.Equal(t, "probe", e.Name())
	assert.True(t, e.IsVisible(0))
	assert.Equal(t, common.Vec3(0, 0, 0), e.Position(0))
	assert.Equal(t, common.QuaternionIdentity(), e.Orientation(0))
	assert.Nil(t, e.Geometry())
	assert.Nil(t, e.LightSource())
	assert.False(t, e.HasVisualizers())
}

func TestEntityOptions(t *testing.T) {
	geometry := &stubGeometry{radius: 2}
	light := NewLightSource(50)
	e := NewEntity("moon",
		WithPositionFunc(func(t float64) common.Vector3 { return common.Vec3(t, 0, 0) }),
		WithStaticOrientation(common.QuaternionFromAxisAngle(common.Vec3(0, 0, 1), 1)),
		WithGeometry(geometry),
		WithLightSource(light),
		WithVisible(false))

	assert.Equal(t, common.Vec3(7, 0, 0), e.Position(7))
	assert.Equal(t, Geometry(geometry), e.Geometry())
	assert.Equal(t, LightSource(light), e.LightSource())
	assert.False(t, e.IsVisible(0))
}

func TestEntityVisualizerTable(t *testing.T) {
	e := NewEntity("probe")
	v := NewVisualizer(&stubGeometry{radius: 1})

	e.SetVisualizer("axes", v)
	assert.True(t, e.HasVisualizers())
	assert.Equal(t, Visualizer(v), e.Visualizer("axes"))
	assert.Nil(t, e.Visualizer("missing"))

	e.RemoveVisualizer("axes")
	assert.False(t, e.HasVisualizers())
}

func TestUniverseEntities(t *testing.T) {
	u := NewUniverse()
	a := NewEntity("a")
	b := NewEntity("b")

	u.AddEntity(a)
	u.AddEntity(b)
	assert.Len(t, u.Entities(), 2)
	assert.Equal(t, Entity(b), u.FindEntity("b"))
	assert.Nil(t, u.FindEntity("c"))

	u.RemoveEntity(a)
	require.Len(t, u.Entities(), 1)
	assert.Equal(t, Entity(b), u.Entities()[0])
}

func TestUniverseLayersSortedByDrawOrder(t *testing.T) {
	u := NewUniverse()
	assert.False(t, u.HasLayers())

	var drawn []string
	layer := func(name string, order int) SkyLayer {
		l := NewSkyLayer(func(rc RenderContext) { drawn = append(drawn, name) })
		l.SetDrawOrder(order)
		return l
	}

	u.SetLayer("grid", layer("grid", 10))
	u.SetLayer("stars", layer("stars", -5))
	u.SetLayer("milky way", layer("milky way", 0))

	require.True(t, u.HasLayers())
	for _, l := range u.Layers() {
		l.Render(nil)
	}
	assert.Equal(t, []string{"stars", "milky way", "grid"}, drawn)

	u.RemoveLayer("grid")
	assert.Len(t, u.Layers(), 2)
}

func TestNewSkyLayerPanicsOnNilRender(t *testing.T) {
	assert.Panics(t, func() { NewSkyLayer(nil) })
}

func TestNewVisualizerPanicsOnNilGeometry(t *testing.T) {
	assert.Panics(t, func() { NewVisualizer(nil) })
}

func TestVisualizerDefaultOrientationTracksParent(t *testing.T) {
	orientation := common.QuaternionFromAxisAngle(common.Vec3(0, 1, 0), 0.5)
	parent := NewEntity("body", WithStaticOrientation(orientation))
	v := NewVisualizer(&stubGeometry{radius: 1})

	assert.Equal(t, orientation, v.Orientation(parent, 0))
	assert.True(t, v.IsVisible())
	assert.Equal(t, NoAdjustment, v.DepthAdjustment())
}

func TestVisualizerOrientationOverride(t *testing.T) {
	fixed := common.QuaternionFromAxisAngle(common.Vec3(1, 0, 0), 1.2)
	v := NewVisualizer(&stubGeometry{radius: 1},
		WithVisualizerOrientation(func(parent Entity, t float64) common.Quaternion {
			return fixed
		}),
		WithDepthAdjustment(AdjustToFront))

	assert.Equal(t, fixed, v.Orientation(NewEntity("any"), 0))
	assert.Equal(t, AdjustToFront, v.DepthAdjustment())
}

func TestNewObserver(t *testing.T) {
	assert.Panics(t, func() { NewObserver(nil) })

	center := NewEntity("planet",
		WithPositionFunc(func(t float64) common.Vector3 { return common.Vec3(t, 0, 0) }))
	o := NewObserver(center)
	o.SetPosition(common.Vec3(0, 0, 5))

	// The observer follows its center entity.
	assert.Equal(t, common.Vec3(3, 0, 5), o.AbsolutePosition(3))
	assert.Equal(t, common.QuaternionIdentity(), o.AbsoluteOrientation(3))

	q := common.QuaternionFromAxisAngle(common.Vec3(0, 1, 0), 0.3)
	o.SetOrientation(q)
	assert.Equal(t, q, o.AbsoluteOrientation(3))
}

func TestLightSourceDefaults(t *testing.T) {
	l := NewLightSource(100)

	assert.Equal(t, float32(100), l.Range())
	assert.Equal(t, common.NewSpectrum(1, 1, 1), l.Color())
	assert.Equal(t, float32(1), l.Luminosity())
	assert.False(t, l.CastsShadows())

	l2 := NewLightSource(10,
		WithLightColor(common.NewSpectrum(1, 0.5, 0)),
		WithLuminosity(3),
		WithShadowCasting(true))
	assert.Equal(t, common.NewSpectrum(1, 0.5, 0), l2.Color())
	assert.Equal(t, float32(3), l2.Luminosity())
	assert.True(t, l2.CastsShadows())
}
