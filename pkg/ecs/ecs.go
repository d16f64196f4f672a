// Package ecs is a small entity registry: entities are ids, components live
// in typed stores keyed by entity, and systems are registered under stable
// names and run in registration order.
package ecs

import (
	"errors"
	"fmt"
)

// Entity identifies a game object. The zero value is never issued.
type Entity uint32

// SystemID is the stable name a system is registered under.
type SystemID string

// System updates the entities it cares about once per frame.
type System interface {
	Update(dt float64) error
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(dt float64) error

// Update calls f(dt).
func (f SystemFunc) Update(dt float64) error { return f(dt) }

// ErrDuplicateSystem is returned when a SystemID is registered twice.
var ErrDuplicateSystem = errors.New("duplicate system")

// Component is the part of a Store a query needs.
type Component interface {
	Has(e Entity) bool
	Remove(e Entity)
}

// Registry issues entities and owns the system list. Component stores are
// created with NewStore and attached with Attach so destroying an entity
// clears its components everywhere.
type Registry struct {
	next     Entity
	entities []Entity
	alive    map[Entity]int // entity -> index in entities

	stores  []Component
	systems map[SystemID]System
	order   []SystemID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		alive:   make(map[Entity]int),
		systems: make(map[SystemID]System),
	}
}

// Create issues a new entity.
func (r *Registry) Create() Entity {
	r.next++
	e := r.next
	r.alive[e] = len(r.entities)
	r.entities = append(r.entities, e)
	return e
}

// Alive reports whether e was created and not destroyed.
func (r *Registry) Alive(e Entity) bool {
	_, ok := r.alive[e]
	return ok
}

// Destroy removes e and all of its components from attached stores.
func (r *Registry) Destroy(e Entity) {
	i, ok := r.alive[e]
	if !ok {
		return
	}
	for _, s := range r.stores {
		s.Remove(e)
	}

	last := len(r.entities) - 1
	r.entities[i] = r.entities[last]
	r.alive[r.entities[i]] = i
	r.entities = r.entities[:last]
	delete(r.alive, e)
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Attach registers a component store for cleanup on Destroy.
func (r *Registry) Attach(stores ...Component) {
	r.stores = append(r.stores, stores...)
}

// Query returns the live entities present in every given store, in
// creation order when nothing has been destroyed.
func (r *Registry) Query(required ...Component) []Entity {
	var out []Entity
	for _, e := range r.entities {
		if hasAll(e, required) {
			out = append(out, e)
		}
	}
	return out
}

func hasAll(e Entity, required []Component) bool {
	for _, c := range required {
		if !c.Has(e) {
			return false
		}
	}
	return true
}

// AddSystem registers s under id. Systems run in the order they are added.
func (r *Registry) AddSystem(id SystemID, s System) error {
	if _, ok := r.systems[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSystem, id)
	}
	r.systems[id] = s
	r.order = append(r.order, id)
	return nil
}

// System returns the system registered under id.
func (r *Registry) System(id SystemID) (System, bool) {
	s, ok := r.systems[id]
	return s, ok
}

// Systems returns the registered ids in run order.
func (r *Registry) Systems() []SystemID {
	return append([]SystemID(nil), r.order...)
}

// Update runs every system once. The first error stops the frame.
func (r *Registry) Update(dt float64) error {
	for _, id := range r.order {
		if err := r.systems[id].Update(dt); err != nil {
			return fmt.Errorf("system %s: %w", id, err)
		}
	}
	return nil
}
