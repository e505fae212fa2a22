package renderer

import (
	"sort"

	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/universe"
)

// visibleItem is geometry that survived visibility determination for one
// view: an entity's own geometry or an attached visualizer's. Positions
// relative to the camera are kept at double precision; everything the
// rasterizer consumes is single precision.
type visibleItem struct {
	entity                 universe.Entity
	geometry               universe.Geometry
	position               common.Vector3
	cameraRelativePosition common.Vector3
	orientation            common.Quaternionf
	boundingRadius         float32
	nearDistance           float32
	farDistance            float32
	outsideFrustum         bool
}

// visibilityCollector scans universe entities and produces the per-view
// lists of visible and splittable items, sorted by ascending far distance.
type visibilityCollector struct {
	viewFrustum common.Frustum
	pixelSize   float32

	// nearAdjust shrinks per-item near distances so the view frustum's near
	// plane cannot intersect geometry near the screen edges, where the
	// distance to the plane is shorter than the distance to the camera.
	nearAdjust float32

	visibleItems    []visibleItem
	splittableItems []visibleItem
}

// collectEntity runs the visibility tests for one entity and its attached
// visualizers at time t, appending the survivors to the item lists.
//
// An entity's geometry is culled when it projects to less than half a pixel.
// Visualizer sizes are unrelated to the entity's physical size, so
// visualizers are never size culled. Entities without geometry contribute
// visualizers only.
func (c *visibilityCollector) collectEntity(entity universe.Entity, cameraPosition common.Vector3, toCameraSpace common.Quaternion, t float64, visualizersEnabled bool) {
	if !entity.IsVisible(t) {
		return
	}

	position := entity.Position(t)

	// The camera-relative difference is computed at double precision; only
	// the remaining work drops to single precision.
	cameraRelativePosition := position.Sub(cameraPosition)
	cameraSpacePosition := toCameraSpace.Rotate(cameraRelativePosition).ToVector3f()

	sizeCull := true
	if geometry := entity.Geometry(); geometry != nil {
		projectedSize := (geometry.BoundingSphereRadius() / float32(cameraRelativePosition.Norm())) / c.pixelSize
		sizeCull = projectedSize < 0.5
	}

	if !sizeCull {
		c.addItem(entity, entity.Geometry(),
			position, cameraRelativePosition, cameraSpacePosition,
			entity.Orientation(t).ToQuaternionf())
	}

	if entity.HasVisualizers() && visualizersEnabled {
		// Visualizers are collected in name order so that identical frames
		// produce identical draw order for items with equal far distances.
		visualizers := entity.Visualizers()
		names := make([]string, 0, len(visualizers))
		for name := range visualizers {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			visualizer := visualizers[name]
			if !visualizer.IsVisible() {
				continue
			}

			adjustedPosition := cameraRelativePosition
			adjustedCameraSpacePosition := cameraSpacePosition

			if visualizer.DepthAdjustment() == universe.AdjustToFront && entity.Geometry() != nil {
				// Slide the visualizer toward the camera so it is drawn in
				// front of the geometry it is attached to.
				z := -cameraSpacePosition.Z - entity.Geometry().BoundingSphereRadius()
				f := z / -cameraSpacePosition.Z
				adjustedPosition = cameraRelativePosition.MulScalar(float64(f))
				adjustedCameraSpacePosition = cameraSpacePosition.MulScalar(f)
			}

			c.addItem(entity, visualizer.Geometry(),
				position, adjustedPosition, adjustedCameraSpacePosition,
				visualizer.Orientation(entity, t).ToQuaternionf())
		}
	}
}

// addItem computes the depth extent of one piece of geometry and appends it
// to the visible or splittable list if any part of it lies in front of the
// camera.
func (c *visibilityCollector) addItem(entity universe.Entity, geometry universe.Geometry,
	position, cameraRelativePosition common.Vector3, cameraSpacePosition common.Vector3f,
	orientation common.Quaternionf) {

	// Signed distance from the camera plane to the most distant part of the
	// geometry. A value < 0 means it lies completely behind the camera.
	boundingRadius := geometry.BoundingSphereRadius()
	farDistance := -cameraSpacePosition.Z + boundingRadius

	// Ask the geometry for a near distance that's as far from the camera as
	// possible, then enforce the clipping policy's lower bound. Geometry
	// that must never be clipped is either pinned to the global minimum or
	// marked splittable so it can be drawn into several depth spans.
	objectSpaceCamera := orientation.Conjugate().Rotate(cameraRelativePosition.MulScalar(-1).ToVector3f())
	nearDistance := geometry.NearPlaneDistance(objectSpaceCamera)

	switch geometry.ClippingPolicy() {
	case universe.PreserveDepthPrecision:
		nearDistance = max32(nearDistance, boundingRadius*minimumNearFarRatio*2)
	case universe.PreventClipping, universe.SplitToPreventClipping:
		nearDistance = max32(nearDistance, minimumNearPlaneDistance)
	}

	nearDistance *= c.nearAdjust

	intersectsFrustum := c.viewFrustum.IntersectsSphere(common.BoundingSphere{
		Center: cameraSpacePosition,
		Radius: boundingRadius,
	})

	// Items outside the frustum are kept in the lists. They may still cast
	// shadows into the view, and dropping them here makes visualizers
	// flicker when their entity leaves the frustum; only their own geometry
	// draw is skipped later.

	if farDistance > 0 && nearDistance < farDistance {
		item := visibleItem{
			entity:                 entity,
			geometry:               geometry,
			position:               position,
			cameraRelativePosition: cameraRelativePosition,
			orientation:            orientation,
			boundingRadius:         boundingRadius,
			nearDistance:           nearDistance,
			farDistance:            farDistance,
			outsideFrustum:         !intersectsFrustum,
		}

		if geometry.ClippingPolicy() == universe.SplitToPreventClipping {
			c.splittableItems = append(c.splittableItems, item)
		} else {
			c.visibleItems = append(c.visibleItems, item)
		}
	}
}

// sortByFarDistance depth sorts both item lists, nearest far plane first.
// Span partitioning depends on this ordering.
func (c *visibilityCollector) sortByFarDistance() {
	sort.SliceStable(c.visibleItems, func(i, j int) bool {
		return c.visibleItems[i].farDistance < c.visibleItems[j].farDistance
	})
	sort.SliceStable(c.splittableItems, func(i, j int) bool {
		return c.splittableItems[i].farDistance < c.splittableItems[j].farDistance
	})
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
