package renderer

// RenderStatus reports the outcome of a rendering operation.
type RenderStatus int

const (
	// RenderOk means the operation completed successfully.
	RenderOk RenderStatus = iota

	// RenderNoViewSet means a view was rendered or a view set ended without
	// a matching BeginViewSet.
	RenderNoViewSet

	// RenderViewSetAlreadyStarted means BeginViewSet was called while a
	// previous view set was still open.
	RenderViewSetAlreadyStarted

	// RendererUninitialized means the renderer was used before
	// InitializeGraphics.
	RendererUninitialized

	// RendererBadParameter means a required argument was nil or out of
	// range.
	RendererBadParameter
)

// String returns a human readable name for the status.
func (s RenderStatus) String() string {
	switch s {
	case RenderOk:
		return "ok"
	case RenderNoViewSet:
		return "no view set"
	case RenderViewSetAlreadyStarted:
		return "view set already started"
	case RendererUninitialized:
		return "renderer uninitialized"
	case RendererBadParameter:
		return "bad parameter"
	default:
		return "unknown"
	}
}
