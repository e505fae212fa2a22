package renderer

// Viewport is a rectangular region of a rendering surface, with the origin
// at the lower left corner.
type Viewport struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewViewport creates a viewport covering a surface of the given dimensions.
//
// Parameters:
//   - width, height: surface dimensions in pixels
//
// Returns:
//   - Viewport: the viewport
func NewViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height}
}

// AspectRatio returns the ratio of width to height.
//
// Returns:
//   - float32: the aspect ratio
func (v Viewport) AspectRatio() float32 {
	return float32(v.Width) / float32(v.Height)
}
