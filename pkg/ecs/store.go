package ecs

// Store holds one component value per entity in a dense slice.
type Store[T any] struct {
	values []T
	owners []Entity
	index  map[Entity]int
}

// NewStore creates an empty component store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{index: make(map[Entity]int)}
}

// Set adds or replaces the component of e.
func (s *Store[T]) Set(e Entity, v T) {
	if i, ok := s.index[e]; ok {
		s.values[i] = v
		return
	}
	s.index[e] = len(s.values)
	s.values = append(s.values, v)
	s.owners = append(s.owners, e)
}

// Get returns a pointer to the component of e, valid until the next Set or
// Remove on this store.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	i, ok := s.index[e]
	if !ok {
		return nil, false
	}
	return &s.values[i], true
}

// Has reports whether e has a component in this store.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Remove deletes the component of e, if any.
func (s *Store[T]) Remove(e Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.values) - 1
	s.values[i] = s.values[last]
	s.owners[i] = s.owners[last]
	s.index[s.owners[i]] = i

	var zero T
	s.values[last] = zero
	s.values = s.values[:last]
	s.owners = s.owners[:last]
	delete(s.index, e)
}

// Len returns the number of components stored.
func (s *Store[T]) Len() int {
	return len(s.values)
}

// Each calls fn for every component in storage order.
func (s *Store[T]) Each(fn func(e Entity, v *T)) {
	for i := range s.values {
		fn(s.owners[i], &s.values[i])
	}
}
