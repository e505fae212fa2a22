package universe

import "github.com/JohnVV/cosmographia/common"

// EntityBuilderOption is a function that configures an Entity instance during construction.
type EntityBuilderOption func(*entityImpl)

// WithStaticPosition is an option builder that fixes the entity at a world
// position for all times.
//
// Parameters:
//   - position: the world position
//
// Returns:
//   - EntityBuilderOption: a function that applies the position option to an entityImpl
func WithStaticPosition(position common.Vector3) EntityBuilderOption {
	return func(e *entityImpl) {
		e.position = func(t float64) common.Vector3 { return position }
	}
}

// WithPositionFunc is an option builder that sets a time-dependent world
// position for the entity.
//
// Parameters:
//   - position: function from time in seconds to world position
//
// Returns:
//   - EntityBuilderOption: a function that applies the position option to an entityImpl
func WithPositionFunc(position PositionFunc) EntityBuilderOption {
	return func(e *entityImpl) {
		e.position = position
	}
}

// WithStaticOrientation is an option builder that fixes the entity's world
// orientation for all times.
//
// Parameters:
//   - orientation: the world orientation
//
// Returns:
//   - EntityBuilderOption: a function that applies the orientation option to an entityImpl
func WithStaticOrientation(orientation common.Quaternion) EntityBuilderOption {
	return func(e *entityImpl) {
		e.orientation = func(t float64) common.Quaternion { return orientation }
	}
}

// WithOrientationFunc is an option builder that sets a time-dependent world
// orientation for the entity.
//
// Parameters:
//   - orientation: function from time in seconds to world orientation
//
// Returns:
//   - EntityBuilderOption: a function that applies the orientation option to an entityImpl
func WithOrientationFunc(orientation OrientationFunc) EntityBuilderOption {
	return func(e *entityImpl) {
		e.orientation = orientation
	}
}

// WithGeometry is an option builder that attaches geometry to the entity.
//
// Parameters:
//   - geometry: the geometry to attach
//
// Returns:
//   - EntityBuilderOption: a function that applies the geometry option to an entityImpl
func WithGeometry(geometry Geometry) EntityBuilderOption {
	return func(e *entityImpl) {
		e.geometry = geometry
	}
}

// WithLightSource is an option builder that attaches a light source to the
// entity.
//
// Parameters:
//   - light: the light source to attach
//
// Returns:
//   - EntityBuilderOption: a function that applies the light source option to an entityImpl
func WithLightSource(light LightSource) EntityBuilderOption {
	return func(e *entityImpl) {
		e.lightSource = light
	}
}

// WithVisible is an option builder that sets the entity's initial
// visibility.
//
// Parameters:
//   - visible: true to show the entity
//
// Returns:
//   - EntityBuilderOption: a function that applies the visibility option to an entityImpl
func WithVisible(visible bool) EntityBuilderOption {
	return func(e *entityImpl) {
		e.visible = visible
	}
}

// WithVisualizer is an option builder that attaches a named visualizer to
// the entity.
//
// Parameters:
//   - name: the visualizer's name
//   - visualizer: the visualizer to attach
//
// Returns:
//   - EntityBuilderOption: a function that applies the visualizer option to an entityImpl
func WithVisualizer(name string, visualizer Visualizer) EntityBuilderOption {
	return func(e *entityImpl) {
		if e.visualizers == nil {
			e.visualizers = make(map[string]Visualizer)
		}
		e.visualizers[name] = visualizer
	}
}
