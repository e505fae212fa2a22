package renderer

import (
	"github.com/JohnVV/cosmographia/common"
	"github.com/JohnVV/cosmographia/engine/framebuffer"
	"github.com/JohnVV/cosmographia/engine/universe"
)

// z180 composes with the face rotations so cube map faces come out with the
// orientation cube sampling expects.
var z180 = common.QuaternionFromAxisAngle(common.Vec3(0, 0, 1), common.ToRadians(180))

// cubeFaceCameraRotations are the camera orientations used for drawing the
// six faces of a cube map, in face order +X, -X, +Y, -Y, +Z, -Z.
var cubeFaceCameraRotations = [6]common.Quaternion{
	common.QuaternionFromAxisAngle(common.Vec3(0, 1, 0), common.ToRadians(-90)).Mul(z180),
	common.QuaternionFromAxisAngle(common.Vec3(0, 1, 0), common.ToRadians(90)).Mul(z180),
	common.QuaternionFromAxisAngle(common.Vec3(1, 0, 0), common.ToRadians(90)).Mul(z180),
	common.QuaternionFromAxisAngle(common.Vec3(1, 0, 0), common.ToRadians(-90)).Mul(z180),
	common.QuaternionFromAxisAngle(common.Vec3(0, 1, 0), common.ToRadians(0)).Mul(z180),
	common.QuaternionFromAxisAngle(common.Vec3(0, 1, 0), common.ToRadians(180)).Mul(z180),
}

// shadowViewMatrix builds a view matrix for drawing the scene from the point
// of view of a directional light.
func shadowViewMatrix(lightDirection common.Vector3f) common.Matrix4 {
	u := lightDirection.UnitOrthogonal()
	v := u.Cross(lightDirection)

	var m common.Matrix4
	m[0], m[4], m[8] = v.X, v.Y, v.Z
	m[1], m[5], m[9] = u.X, u.Y, u.Z
	m[2], m[6], m[10] = lightDirection.X, lightDirection.Y, lightDirection.Z
	m[15] = 1
	return m
}

// shadowBiasMatrix maps clip space onto a unit cube with one corner at the
// origin, since texture coordinates are in [0, 1] instead of [-1, 1].
func shadowBiasMatrix() common.Matrix4 {
	var m common.Matrix4
	m[0], m[5], m[10] = 0.5, 0.5, 0.5
	m[12], m[13], m[14] = 0.5, 0.5, 0.5
	m[15] = 1
	return m
}

// beginShadowRendering switches the context into depth-only rendering.
// Drawing the back faces moves self-shadowing artifacts to the unilluminated
// side of objects, where they are less visible.
func (r *universeRendererImpl) beginShadowRendering() {
	r.rc.SetColorMask(false, false, false, false)
	r.rc.SetDepthWrite(true)
	r.rc.SetDepthTest(true)
	r.rc.SetCullFace(universe.CullFront)
}

// beginCubicShadowRendering switches the context into distance-only
// rendering: only the red channel, which holds camera distance, is written.
func (r *universeRendererImpl) beginCubicShadowRendering() {
	r.rc.SetColorMask(true, false, false, false)
	r.rc.SetDepthWrite(true)
	r.rc.SetDepthTest(true)
	r.rc.SetCullFace(universe.CullFront)
}

// finishShadowRendering restores the render target, color mask and culling
// state mutated by a shadow pass.
func (r *universeRendererImpl) finishShadowRendering() {
	if r.renderSurface != nil {
		r.rc.BindFramebuffer(r.renderSurface)
	} else {
		r.rc.UnbindFramebuffer()
	}

	mask := r.renderColorMask
	r.rc.SetColorMask(mask[0], mask[1], mask[2], mask[3])
	r.rc.SetCullFace(universe.CullBack)
}

// setupShadowRendering binds the shadow map and configures an orthographic
// projection sized to the shadow group, looking along the light direction.
// It returns the matrix that converts shadow group space coordinates to
// shadow texture space. The projection and modelview pushed here are popped
// by the caller.
func (r *universeRendererImpl) setupShadowRendering(shadowMap framebuffer.Framebuffer, lightDirection common.Vector3f, shadowGroupSize float32) common.Matrix4 {
	if !shadowMap.IsValid() {
		return common.Matrix4Identity()
	}

	r.rc.BindFramebuffer(shadowMap)

	shadowProjection := common.CreateOrthographic(
		-shadowGroupSize, shadowGroupSize,
		-shadowGroupSize, shadowGroupSize,
		-shadowGroupSize, shadowGroupSize)
	modelView := shadowViewMatrix(lightDirection)

	r.rc.ClearDepth()

	r.rc.PushProjection()
	r.rc.SetProjection(shadowProjection)
	r.rc.PushModelView()
	r.rc.SetModelView(modelView)

	r.rc.SetViewport(0, 0, shadowMap.Width(), shadowMap.Height())
	r.rc.SetDepthRange(0, 1)

	return shadowBiasMatrix().Mul(shadowProjection.Matrix()).Mul(modelView)
}

// spanShadowBounds merges the bounding spheres of every shadow receiver in a
// span and reports whether the span contains any shadow casters. The bounds
// are camera relative so they stay well conditioned far from the origin.
func (r *universeRendererImpl) spanShadowBounds(span depthBufferSpan) (common.BoundingSphere, bool) {
	receiverBounds := common.EmptyBoundingSphere()
	castersPresent := false

	for i := 0; i < span.itemCount; i++ {
		item := r.visibleItems[span.backItemIndex-i]

		if item.geometry.IsShadowReceiver() {
			receiverBounds = receiverBounds.Merged(common.BoundingSphere{
				Center: item.cameraRelativePosition.ToVector3f(),
				Radius: item.boundingRadius,
			})
		}
		if item.geometry.IsShadowCaster() {
			castersPresent = true
		}
	}

	return receiverBounds, castersPresent
}

// renderSpanShadows draws every shadow caster in a span into a directional
// shadow map, lit from the given camera-relative light position. It reports
// whether any shadows were drawn; when it returns false no shadow state has
// been touched.
func (r *universeRendererImpl) renderSpanShadows(shadowIndex int, span depthBufferSpan, lightPosition common.Vector3) bool {
	if !r.shadowsEnabled {
		return false
	}
	if shadowIndex >= len(r.shadowMaps) || r.shadowMaps[shadowIndex] == nil || !r.shadowMaps[shadowIndex].IsValid() {
		return false
	}

	receiverBounds, castersPresent := r.spanShadowBounds(span)
	if !castersPresent || receiverBounds.IsEmpty() {
		return false
	}

	r.rc.SetDepthRange(0, 1)
	r.beginShadowRendering()

	shadowGroupCenter := receiverBounds.Center
	shadowGroupRadius := receiverBounds.Radius

	// All objects in the shadow group are assumed far enough from the light
	// that the rays are nearly parallel and the direction is effectively
	// constant across the group.
	lightDirection := lightPosition.Add(common.Vec3(
		float64(shadowGroupCenter.X),
		float64(shadowGroupCenter.Y),
		float64(shadowGroupCenter.Z))).ToVector3f().Normalized()

	// The shadow transform converts coordinates from shadow group space
	// (world-aligned axes, origin at the center of the mutually shadowing
	// objects) to shadow texture space.
	shadowMap := r.shadowMaps[shadowIndex]
	invCameraTransform := r.rc.ModelView().Transpose()
	shadowTransform := r.setupShadowRendering(shadowMap, lightDirection, shadowGroupRadius)
	shadowTransform = shadowTransform.
		Mul(common.Matrix4Translation(shadowGroupCenter.MulScalar(-1))).
		Mul(invCameraTransform)

	for i := 0; i < span.itemCount; i++ {
		item := r.visibleItems[span.backItemIndex-i]
		if !item.geometry.IsShadowCaster() {
			continue
		}

		itemPosition := item.cameraRelativePosition.ToVector3f()
		r.rc.PushModelView()
		r.rc.TranslateModelView(itemPosition.Sub(shadowGroupCenter))
		r.rc.RotateModelView(item.orientation)
		item.geometry.RenderShadow(r.rc, r.currentTime)
		r.rc.PopModelView()
	}

	// Pop the matrices pushed in setupShadowRendering.
	r.rc.PopProjection()
	r.rc.PopModelView()

	r.finishShadowRendering()

	r.rc.SetDepthRange(r.depthRangeFront, r.depthRangeBack)
	r.rc.SetViewport(r.renderViewport.X, r.renderViewport.Y, r.renderViewport.Width, r.renderViewport.Height)

	r.rc.SetShadowMapMatrix(shadowIndex, shadowTransform)
	r.rc.SetShadowMap(shadowIndex, shadowMap)

	return true
}

// renderSpanOmniShadows draws every shadow caster in a span into the six
// faces of an omnidirectional shadow cube map for a point light. Camera
// distance is written into the red channel, cleared to a huge value so
// unoccluded directions read as unshadowed.
func (r *universeRendererImpl) renderSpanOmniShadows(shadowIndex int, span depthBufferSpan, light universe.LightSource, lightPosition common.Vector3) bool {
	if !r.shadowsEnabled {
		return false
	}
	if shadowIndex >= len(r.omniShadowMaps) || r.omniShadowMaps[shadowIndex] == nil || !r.omniShadowMaps[shadowIndex].IsValid() {
		return false
	}

	receiverBounds, castersPresent := r.spanShadowBounds(span)
	if !castersPresent || receiverBounds.IsEmpty() {
		return false
	}

	shadowMap := r.omniShadowMaps[shadowIndex]

	r.rc.SetViewport(0, 0, shadowMap.Size(), shadowMap.Size())
	r.rc.SetDepthRange(0, 1)

	// Cube faces use a left-handed projection, which mirrors triangle
	// winding, so the front face is reversed for the duration of the pass.
	r.beginCubicShadowRendering()
	r.rc.SetFrontFace(universe.Clockwise)
	r.rc.SetRendererOutput(universe.CameraDistanceOutput)

	r.rc.PushProjection()

	faceProjection := common.CreatePerspectiveLH(
		float32(common.ToRadians(90)), 1,
		light.Range()*0.0001, light.Range())
	faceFrustum := faceProjection.Frustum()

	for face := 0; face < 6; face++ {
		r.rc.BindCubeMapFace(shadowMap, face)
		r.rc.SetDepthWrite(true)
		r.rc.ClearColor(1.0e15, 0, 0, 0)
		r.rc.ClearDepth()

		cameraOrientation := cubeFaceCameraRotations[face]
		toCameraSpace := cameraOrientation.Conjugate()

		r.rc.PushModelView()
		r.rc.SetModelView(common.Matrix4Identity())
		r.rc.RotateModelView(toCameraSpace.ToQuaternionf())

		// The camera orientation is held separately from the modelview;
		// save it so it can be restored after all faces are drawn.
		savedCamera := r.rc.CameraOrientation()
		r.rc.SetCameraOrientation(cameraOrientation.ToQuaternionf())

		r.rc.SetProjection(faceProjection)

		for i := 0; i < span.itemCount; i++ {
			item := r.visibleItems[span.backItemIndex-i]
			if !item.geometry.IsShadowCaster() {
				continue
			}

			itemPosition := item.cameraRelativePosition.Sub(lightPosition).ToVector3f()
			cameraSpacePosition := toCameraSpace.Rotate(item.cameraRelativePosition.Sub(lightPosition)).ToVector3f()

			// Cull casters against this face's frustum to avoid redrawing
			// everything six times.
			if !faceFrustum.IntersectsSphere(common.BoundingSphere{
				Center: cameraSpacePosition,
				Radius: light.Range(),
			}) {
				continue
			}

			r.rc.PushModelView()
			r.rc.TranslateModelView(itemPosition)
			r.rc.RotateModelView(item.orientation)
			item.geometry.RenderShadow(r.rc, r.currentTime)
			r.rc.PopModelView()
		}

		r.rc.PopModelView()
		r.rc.SetCameraOrientation(savedCamera)
	}

	r.rc.PopProjection()

	r.rc.SetRendererOutput(universe.FragmentColorOutput)
	r.finishShadowRendering()
	r.rc.SetFrontFace(universe.CounterClockwise)

	r.rc.SetDepthRange(r.depthRangeFront, r.depthRangeBack)
	r.rc.SetViewport(r.renderViewport.X, r.renderViewport.Y, r.renderViewport.Width, r.renderViewport.Height)

	r.rc.SetOmniShadowMap(shadowIndex, shadowMap)

	return true
}
