package universe

import (
	"github.com/JohnVV/cosmographia/common"
)

// PositionFunc returns a world position for a time in seconds.
type PositionFunc func(t float64) common.Vector3

// OrientationFunc returns a world orientation for a time in seconds.
type OrientationFunc func(t float64) common.Quaternion

// Entity is a body in the universe: something with a time-dependent position
// and orientation that may carry geometry, attached visualizers, and a light
// source.
type Entity interface {
	// Name returns the entity's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetName sets the entity's display name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Position returns the entity's world position at a time.
	//
	// Parameters:
	//   - t: time in seconds
	//
	// Returns:
	//   - common.Vector3: the world position
	Position(t float64) common.Vector3

	// Orientation returns the entity's world orientation at a time.
	//
	// Parameters:
	//   - t: time in seconds
	//
	// Returns:
	//   - common.Quaternion: the world orientation
	Orientation(t float64) common.Quaternion

	// IsVisible reports whether the entity should be considered for drawing
	// at a time. Invisible entities contribute neither geometry nor light.
	//
	// Parameters:
	//   - t: time in seconds
	//
	// Returns:
	//   - bool: true if the entity is visible
	IsVisible(t float64) bool

	// SetVisible shows or hides the entity.
	//
	// Parameters:
	//   - visible: true to show
	SetVisible(visible bool)

	// Geometry returns the entity's geometry, or nil if it has none.
	//
	// Returns:
	//   - Geometry: the geometry, possibly nil
	Geometry() Geometry

	// SetGeometry sets the entity's geometry. Nil clears it.
	//
	// Parameters:
	//   - geometry: the geometry to attach
	SetGeometry(geometry Geometry)

	// LightSource returns the light emitted by this entity, or nil if the
	// entity is not a light.
	//
	// Returns:
	//   - LightSource: the light source, possibly nil
	LightSource() LightSource

	// SetLightSource attaches a light source to the entity. Nil clears it.
	//
	// Parameters:
	//   - light: the light source
	SetLightSource(light LightSource)

	// SetVisualizer attaches a named visualizer, replacing any visualizer
	// already stored under the name.
	//
	// Parameters:
	//   - name: the visualizer's name
	//   - visualizer: the visualizer to attach
	SetVisualizer(name string, visualizer Visualizer)

	// Visualizer returns the visualizer stored under a name, or nil.
	//
	// Parameters:
	//   - name: the visualizer's name
	//
	// Returns:
	//   - Visualizer: the visualizer, possibly nil
	Visualizer(name string) Visualizer

	// RemoveVisualizer detaches the visualizer stored under a name.
	//
	// Parameters:
	//   - name: the visualizer's name
	RemoveVisualizer(name string)

	// HasVisualizers reports whether any visualizers are attached.
	//
	// Returns:
	//   - bool: true if at least one visualizer is attached
	HasVisualizers() bool

	// Visualizers returns the attached visualizers keyed by name. The
	// returned map is the entity's own table and must not be mutated.
	//
	// Returns:
	//   - map[string]Visualizer: the visualizer table
	Visualizers() map[string]Visualizer
}

type entityImpl struct {
	name        string
	position    PositionFunc
	orientation OrientationFunc
	visible     bool
	geometry    Geometry
	lightSource LightSource
	visualizers map[string]Visualizer
}

var _ Entity = &entityImpl{}

// NewEntity creates an entity at the origin with identity orientation,
// visible, with any provided options applied.
//
// Parameters:
//   - name: the entity's display name
//   - opts: variadic list of EntityBuilderOption functions to configure the entity
//
// Returns:
//   - Entity: a new Entity instance
func NewEntity(name string, opts ...EntityBuilderOption) Entity {
	e := &entityImpl{
		name:        name,
		position:    func(t float64) common.Vector3 { return common.Vector3{} },
		orientation: func(t float64) common.Quaternion { return common.QuaternionIdentity() },
		visible:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *entityImpl) Name() string {
	return e.name
}

func (e *entityImpl) SetName(name string) {
	e.name = name
}

func (e *entityImpl) Position(t float64) common.Vector3 {
	return e.position(t)
}

func (e *entityImpl) Orientation(t float64) common.Quaternion {
	return e.orientation(t)
}

func (e *entityImpl) IsVisible(t float64) bool {
	return e.visible
}

func (e *entityImpl) SetVisible(visible bool) {
	e.visible = visible
}

func (e *entityImpl) Geometry() Geometry {
	return e.geometry
}

func (e *entityImpl) SetGeometry(geometry Geometry) {
	e.geometry = geometry
}

func (e *entityImpl) LightSource() LightSource {
	return e.lightSource
}

func (e *entityImpl) SetLightSource(light LightSource) {
	e.lightSource = light
}

func (e *entityImpl) SetVisualizer(name string, visualizer Visualizer) {
	if e.visualizers == nil {
		e.visualizers = make(map[string]Visualizer)
	}
	e.visualizers[name] = visualizer
}

func (e *entityImpl) Visualizer(name string) Visualizer {
	return e.visualizers[name]
}

func (e *entityImpl) RemoveVisualizer(name string) {
	delete(e.visualizers, name)
}

func (e *entityImpl) HasVisualizers() bool {
	return len(e.visualizers) > 0
}

func (e *entityImpl) Visualizers() map[string]Visualizer {
	return e.visualizers
}
