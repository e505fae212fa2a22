package renderer

import (
	"math"
	"testing"

	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLightSourceList(t *testing.T) {
	u := universe.NewUniverse()

	lamp := universe.NewEntity("lamp",
		universe.WithStaticPosition(common.Vec3(5, 0, 0)),
		universe.WithLightSource(universe.NewLightSource(100)))
	hidden := universe.NewEntity("hidden lamp",
		universe.WithLightSource(universe.NewLightSource(100)),
		universe.WithVisible(false))
	dark := universe.NewEntity("rock")

	u.AddEntity(lamp)
	u.AddEntity(hidden)
	u.AddEntity(dark)

	t.Run("default sun prepended", func(t *testing.T) {
		lights := buildLightSourceList(u, 0, true)

		require.Len(t, lights, 2)
		assert.Nil(t, lights[0].lightSource)
		assert.Equal(t, common.Vec3(0, 0, 0), lights[0].position)
		assert.NotNil(t, lights[1].lightSource)
		assert.Equal(t, common.Vec3(5, 0, 0), lights[1].position)
	})

	t.Run("sun disabled", func(t *testing.T) {
		lights := buildLightSourceList(u, 0, false)

		require.Len(t, lights, 1)
		assert.NotNil(t, lights[0].lightSource)
	})
}

func TestBuildVisibleLightSourceList(t *testing.T) {
	projection := common.CreatePerspective(float32(math.Pi/2), 1, 1, 1e6)
	frustum := projection.Frustum()
	cameraPosition := common.Vec3(0, 0, 0)
	cameraOrientation := common.QuaternionIdentity()

	inView := lightSourceItem{
		lightSource: universe.NewLightSource(10),
		position:    common.Vec3(0, 0, -10),
	}
	subPixel := lightSourceItem{
		lightSource: universe.NewLightSource(0.001),
		position:    common.Vec3(0, 0, -10),
	}
	behindCamera := lightSourceItem{
		lightSource: universe.NewLightSource(1),
		position:    common.Vec3(0, 0, 300),
	}
	sun := lightSourceItem{}

	tests := []struct {
		name      string
		lights    []lightSourceItem
		pixelSize float32
		wantCount int
	}{
		{
			name:      "light in view survives",
			lights:    []lightSourceItem{inView},
			pixelSize: 0.02,
			wantCount: 1,
		},
		{
			name:      "sub-pixel sphere of influence is culled",
			lights:    []lightSourceItem{subPixel},
			pixelSize: 0.02,
			wantCount: 0,
		},
		{
			name:      "light outside the frustum is culled",
			lights:    []lightSourceItem{behindCamera},
			pixelSize: 0.0001,
			wantCount: 0,
		},
		{
			name:      "default sun is never culled",
			lights:    []lightSourceItem{sun},
			pixelSize: 0.02,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := buildVisibleLightSourceList(tt.lights, cameraPosition,
				cameraOrientation, frustum, tt.pixelSize)
			assert.Len(t, visible, tt.wantCount)
		})
	}
}

func TestVisibleLightsCameraRelativePosition(t *testing.T) {
	projection := common.CreatePerspective(float32(math.Pi/2), 1, 1, 1e6)
	lights := []lightSourceItem{
		{lightSource: universe.NewLightSource(50), position: common.Vec3(0, 0, -10)},
	}

	visible := buildVisibleLightSourceList(lights, common.Vec3(3, 0, 0),
		common.QuaternionIdentity(), projection.Frustum(), 0.02)

	require.Len(t, visible, 1)
	assert.Equal(t, common.Vec3(-3, 0, -10), visible[0].cameraRelativePosition)
}

func TestVisibleLightsShadowCastersFirst(t *testing.T) {
	projection := common.CreatePerspective(float32(math.Pi/2), 1, 1, 1e6)
	frustum := projection.Frustum()

	plain := universe.NewLightSource(10)
	caster := universe.NewLightSource(10, universe.WithShadowCasting(true))
	lights := []lightSourceItem{
		{lightSource: plain, position: common.Vec3(0, 0, -10)},
		{},
		{lightSource: caster, position: common.Vec3(1, 0, -10)},
	}

	visible := buildVisibleLightSourceList(lights, common.Vec3(0, 0, 0),
		common.QuaternionIdentity(), frustum, 0.02)

	require.Len(t, visible, 3)
	// Shadow casting lights lead; the sort is stable, so the sun keeps its
	// place ahead of the later caster and the plain light falls to the back.
	assert.Nil(t, visible[0].lightSource)
	assert.Equal(t, universe.LightSource(caster), visible[1].lightSource)
	assert.Equal(t, universe.LightSource(plain), visible[2].lightSource)
}
