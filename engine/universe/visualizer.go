package universe

import "github.com/JohnVV/cosmographia/common"

// DepthAdjustment controls where a visualizer is placed relative to the
// entity it annotates.
type DepthAdjustment int

const (
	// NoAdjustment draws the visualizer at the entity's position.
	NoAdjustment DepthAdjustment = iota

	// AdjustToFront slides the visualizer toward the camera so it is drawn
	// in front of the entity's geometry. Used for labels and markers that
	// must not be occluded by the body they annotate.
	AdjustToFront
)

// VisualizerOrientationFunc computes the world orientation of a visualizer
// attached to an entity at a time.
type VisualizerOrientationFunc func(parent Entity, t float64) common.Quaternion

// Visualizer is an annotation attached to an entity: axes, direction
// arrows, labels, sensor footprints. A visualizer's screen size is usually
// unrelated to the entity's physical size, so the renderer never size-culls
// it.
type Visualizer interface {
	// IsVisible reports whether the visualizer should be drawn.
	//
	// Returns:
	//   - bool: true if visible
	IsVisible() bool

	// SetVisible shows or hides the visualizer.
	//
	// Parameters:
	//   - visible: true to show
	SetVisible(visible bool)

	// Geometry returns the geometry drawn for the visualizer. Never nil.
	//
	// Returns:
	//   - Geometry: the visualizer geometry
	Geometry() Geometry

	// Orientation returns the world orientation of the visualizer when
	// attached to an entity. Many visualizers track the entity's own
	// orientation; others face the camera or a reference direction.
	//
	// Parameters:
	//   - parent: the entity the visualizer is attached to
	//   - t: time in seconds
	//
	// Returns:
	//   - common.Quaternion: the world orientation
	Orientation(parent Entity, t float64) common.Quaternion

	// DepthAdjustment returns how the visualizer is placed in depth relative
	// to its entity.
	//
	// Returns:
	//   - DepthAdjustment: the depth adjustment mode
	DepthAdjustment() DepthAdjustment
}

type visualizerImpl struct {
	visible         bool
	geometry        Geometry
	orientation     VisualizerOrientationFunc
	depthAdjustment DepthAdjustment
}

var _ Visualizer = &visualizerImpl{}

// NewVisualizer creates a visible visualizer drawing the given geometry with
// any provided options applied. Panics if geometry is nil.
//
// Parameters:
//   - geometry: the geometry to draw
//   - opts: variadic list of VisualizerBuilderOption functions to configure the visualizer
//
// Returns:
//   - Visualizer: a new Visualizer instance
func NewVisualizer(geometry Geometry, opts ...VisualizerBuilderOption) Visualizer {
	if geometry == nil {
		panic("visualizer geometry cannot be nil")
	}
	v := &visualizerImpl{
		visible:  true,
		geometry: geometry,
		orientation: func(parent Entity, t float64) common.Quaternion {
			return parent.Orientation(t)
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *visualizerImpl) IsVisible() bool {
	return v.visible
}

func (v *visualizerImpl) SetVisible(visible bool) {
	v.visible = visible
}

func (v *visualizerImpl) Geometry() Geometry {
	return v.geometry
}

func (v *visualizerImpl) Orientation(parent Entity, t float64) common.Quaternion {
	return v.orientation(parent, t)
}

func (v *visualizerImpl) DepthAdjustment() DepthAdjustment {
	return v.depthAdjustment
}

// VisualizerBuilderOption is a function that configures a Visualizer instance during construction.
type VisualizerBuilderOption func(*visualizerImpl)

// WithVisualizerOrientation is an option builder that sets how the
// visualizer's world orientation is computed.
//
// Parameters:
//   - orientation: function from parent entity and time to world orientation
//
// Returns:
//   - VisualizerBuilderOption: a function that applies the orientation option to a visualizerImpl
func WithVisualizerOrientation(orientation VisualizerOrientationFunc) VisualizerBuilderOption {
	return func(v *visualizerImpl) {
		v.orientation = orientation
	}
}

// WithDepthAdjustment is an option builder that sets the visualizer's depth
// placement relative to its entity.
//
// Parameters:
//   - adjustment: the depth adjustment mode
//
// Returns:
//   - VisualizerBuilderOption: a function that applies the depth adjustment option to a visualizerImpl
func WithDepthAdjustment(adjustment DepthAdjustment) VisualizerBuilderOption {
	return func(v *visualizerImpl) {
		v.depthAdjustment = adjustment
	}
}
