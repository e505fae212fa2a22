package universe

import "github.com/JohnVV/cosmographia/common"

// Observer is a viewpoint defined relative to a center entity: a position
// offset in the center's frame plus a world orientation. It supplies the
// absolute camera state for observer-based rendering.
type Observer interface {
	// Center returns the entity the observer is attached to.
	//
	// Returns:
	//   - Entity: the center entity
	Center() Entity

	// AbsolutePosition returns the observer's world position at a time.
	//
	// Parameters:
	//   - t: time in seconds
	//
	// Returns:
	//   - common.Vector3: the world position
	AbsolutePosition(t float64) common.Vector3

	// AbsoluteOrientation returns the observer's world orientation at a
	// time.
	//
	// Parameters:
	//   - t: time in seconds
	//
	// Returns:
	//   - common.Quaternion: the world orientation
	AbsoluteOrientation(t float64) common.Quaternion

	// SetPosition sets the observer's offset from the center entity.
	//
	// Parameters:
	//   - position: the offset in world units
	SetPosition(position common.Vector3)

	// SetOrientation sets the observer's world orientation.
	//
	// Parameters:
	//   - orientation: the orientation
	SetOrientation(orientation common.Quaternion)
}

type observerImpl struct {
	center      Entity
	position    common.Vector3
	orientation common.Quaternion
}

var _ Observer = &observerImpl{}

// NewObserver creates an observer attached to a center entity with zero
// offset and identity orientation. Panics if center is nil.
//
// Parameters:
//   - center: the entity the observer is attached to
//
// Returns:
//   - Observer: a new Observer instance
func NewObserver(center Entity) Observer {
	if center == nil {
		panic("observer center cannot be nil")
	}
	return &observerImpl{
		center:      center,
		orientation: common.QuaternionIdentity(),
	}
}

func (o *observerImpl) Center() Entity {
	return o.center
}

func (o *observerImpl) AbsolutePosition(t float64) common.Vector3 {
	return o.center.Position(t).Add(o.position)
}

func (o *observerImpl) AbsoluteOrientation(t float64) common.Quaternion {
	return o.orientation
}

func (o *observerImpl) SetPosition(position common.Vector3) {
	o.position = position
}

func (o *observerImpl) SetOrientation(orientation common.Quaternion) {
	o.orientation = orientation
}
