package renderer

import (
	"sort"

	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/universe"
)

// lightSourceItem is a light gathered for a view set. A nil lightSource is
// the default sun: a directional light at the solar system barycenter that
// is never culled and always casts shadows.
type lightSourceItem struct {
	lightSource universe.LightSource
	position    common.Vector3
}

// visibleLightSourceItem is a light that survived per-view culling.
type visibleLightSourceItem struct {
	lightSource            universe.LightSource
	position               common.Vector3
	cameraRelativePosition common.Vector3
}

// buildLightSourceList walks the universe once per view set and gathers the
// lights attached to visible entities. When sunEnabled is true the default
// sun is prepended.
func buildLightSourceList(u universe.Universe, t float64, sunEnabled bool) []lightSourceItem {
	var lights []lightSourceItem

	if sunEnabled {
		lights = append(lights, lightSourceItem{})
	}

	for _, entity := range u.Entities() {
		light := entity.LightSource()
		if light != nil && entity.IsVisible(t) {
			lights = append(lights, lightSourceItem{
				lightSource: light,
				position:    entity.Position(t),
			})
		}
	}

	return lights
}

// buildVisibleLightSourceList filters the view set's lights down to the ones
// that can affect geometry in this view: a light is dropped when its sphere
// of influence projects to less than one pixel or lies entirely outside the
// view frustum. The default sun is never culled.
//
// The result is sorted so shadow casting lights come first; shadow map slots
// are assigned in list order.
func buildVisibleLightSourceList(lights []lightSourceItem, cameraPosition common.Vector3,
	cameraOrientation common.Quaternion, viewFrustum common.Frustum, pixelSize float32) []visibleLightSourceItem {

	toCameraSpace := cameraOrientation.Conjugate()

	var visible []visibleLightSourceItem
	for _, lsi := range lights {
		cameraRelativePosition := lsi.position.Sub(cameraPosition)

		cull := false
		if lsi.lightSource != nil {
			projectedSize := (lsi.lightSource.Range() / float32(cameraRelativePosition.Norm())) / pixelSize
			if projectedSize < 1.0 {
				// The light may be in view, but the region it affects
				// occupies less than a pixel on screen.
				cull = true
			} else {
				cameraSpacePosition := toCameraSpace.Rotate(cameraRelativePosition).ToVector3f()
				if !viewFrustum.IntersectsSphere(common.BoundingSphere{
					Center: cameraSpacePosition,
					Radius: lsi.lightSource.Range(),
				}) {
					cull = true
				}
			}
		}

		if !cull {
			visible = append(visible, visibleLightSourceItem{
				lightSource:            lsi.lightSource,
				position:               lsi.position,
				cameraRelativePosition: cameraRelativePosition,
			})
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return lightShadowRank(visible[i]) > lightShadowRank(visible[j])
	})

	return visible
}

// lightShadowRank orders lights for shadow slot assignment. The default sun
// has a nil source but always casts shadows.
func lightShadowRank(light visibleLightSourceItem) int {
	if light.lightSource == nil || light.lightSource.CastsShadows() {
		return 1
	}
	return 0
}
