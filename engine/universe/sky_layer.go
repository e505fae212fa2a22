package universe

// SkyLayer is a backdrop drawn behind all entities with depth testing and
// depth writes disabled: star fields, constellation figures, coordinate
// grids. Layers are drawn in ascending draw order.
type SkyLayer interface {
	// IsVisible reports whether the layer should be drawn.
	//
	// Returns:
	//   - bool: true if visible
	IsVisible() bool

	// SetVisible shows or hides the layer.
	//
	// Parameters:
	//   - visible: true to show
	SetVisible(visible bool)

	// DrawOrder returns the layer's sort key. Lower values draw first.
	//
	// Returns:
	//   - int: the draw order
	DrawOrder() int

	// SetDrawOrder sets the layer's sort key.
	//
	// Parameters:
	//   - order: the draw order
	SetDrawOrder(order int)

	// Render draws the layer with the current state of the render context.
	//
	// Parameters:
	//   - rc: the render context to draw into
	Render(rc RenderContext)
}

// SkyLayerRenderFunc adapts a function to the drawing part of SkyLayer.
type SkyLayerRenderFunc func(rc RenderContext)

type skyLayerImpl struct {
	visible   bool
	drawOrder int
	render    SkyLayerRenderFunc
}

var _ SkyLayer = &skyLayerImpl{}

// NewSkyLayer creates a visible sky layer with draw order zero that draws by
// calling the given function. Panics if render is nil.
//
// Parameters:
//   - render: the layer's drawing function
//
// Returns:
//   - SkyLayer: a new SkyLayer instance
func NewSkyLayer(render SkyLayerRenderFunc) SkyLayer {
	if render == nil {
		panic("sky layer render function cannot be nil")
	}
	return &skyLayerImpl{
		visible: true,
		render:  render,
	}
}

func (s *skyLayerImpl) IsVisible() bool {
	return s.visible
}

func (s *skyLayerImpl) SetVisible(visible bool) {
	s.visible = visible
}

func (s *skyLayerImpl) DrawOrder() int {
	return s.drawOrder
}

func (s *skyLayerImpl) SetDrawOrder(order int) {
	s.drawOrder = order
}

func (s *skyLayerImpl) Render(rc RenderContext) {
	s.render(rc)
}
