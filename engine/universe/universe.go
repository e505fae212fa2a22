// Package universe holds the scene model consumed by the renderer: entities
// with time-dependent state, their geometry, attached visualizers, light
// sources, background sky layers, and observers.
package universe

import "sort"

// Universe is the collection of entities and sky layers making up a scene.
// It performs no spatial indexing; the renderer scans all entities each
// frame.
type Universe interface {
	// AddEntity appends an entity to the universe. Duplicates are not
	// detected.
	//
	// Parameters:
	//   - entity: the entity to add
	AddEntity(entity Entity)

	// RemoveEntity removes the first occurrence of an entity.
	//
	// Parameters:
	//   - entity: the entity to remove
	RemoveEntity(entity Entity)

	// Entities returns all entities in insertion order. The returned slice
	// is the universe's own storage and must not be mutated.
	//
	// Returns:
	//   - []Entity: the entities
	Entities() []Entity

	// FindEntity returns the first entity with the given name, or nil.
	//
	// Parameters:
	//   - name: the entity name to look up
	//
	// Returns:
	//   - Entity: the entity, possibly nil
	FindEntity(name string) Entity

	// SetLayer stores a named sky layer, replacing any layer already stored
	// under the name.
	//
	// Parameters:
	//   - name: the layer's name
	//   - layer: the sky layer
	SetLayer(name string, layer SkyLayer)

	// Layer returns the sky layer stored under a name, or nil.
	//
	// Parameters:
	//   - name: the layer's name
	//
	// Returns:
	//   - SkyLayer: the layer, possibly nil
	Layer(name string) SkyLayer

	// RemoveLayer removes the sky layer stored under a name.
	//
	// Parameters:
	//   - name: the layer's name
	RemoveLayer(name string)

	// HasLayers reports whether any sky layers are stored.
	//
	// Returns:
	//   - bool: true if at least one layer is stored
	HasLayers() bool

	// Layers returns all sky layers sorted by ascending draw order.
	//
	// Returns:
	//   - []SkyLayer: the layers in drawing order
	Layers() []SkyLayer
}

type universeImpl struct {
	entities []Entity
	layers   map[string]SkyLayer
}

var _ Universe = &universeImpl{}

// NewUniverse creates an empty universe.
//
// Returns:
//   - Universe: a new Universe instance
func NewUniverse() Universe {
	return &universeImpl{
		layers: make(map[string]SkyLayer),
	}
}

func (u *universeImpl) AddEntity(entity Entity) {
	u.entities = append(u.entities, entity)
}

func (u *universeImpl) RemoveEntity(entity Entity) {
	for i, e := range u.entities {
		if e == entity {
			u.entities = append(u.entities[:i], u.entities[i+1:]...)
			return
		}
	}
}

func (u *universeImpl) Entities() []Entity {
	return u.entities
}

func (u *universeImpl) FindEntity(name string) Entity {
	for _, e := range u.entities {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

func (u *universeImpl) SetLayer(name string, layer SkyLayer) {
	u.layers[name] = layer
}

func (u *universeImpl) Layer(name string) SkyLayer {
	return u.layers[name]
}

func (u *universeImpl) RemoveLayer(name string) {
	delete(u.layers, name)
}

func (u *universeImpl) HasLayers() bool {
	return len(u.layers) > 0
}

func (u *universeImpl) Layers() []SkyLayer {
	layers := make([]SkyLayer, 0, len(u.layers))
	for _, layer := range u.layers {
		layers = append(layers, layer)
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].DrawOrder() < layers[j].DrawOrder()
	})
	return layers
}
