package ecs

import "iter"

// Active yields every enabled T in packed order. When no T has ever been
// attached the sequence is empty.
func Active[T any](s *Scene) iter.Seq[*T] {
	p, ok := lookupPool[T](s.registry)
	if !ok {
		return func(func(*T) bool) {}
	}
	return p.Active()
}

// ActiveEntities is Active with the owning entity.
func ActiveEntities[T any](s *Scene) iter.Seq2[Entity, *T] {
	p, ok := lookupPool[T](s.registry)
	if !ok {
		return func(func(Entity, *T) bool) {}
	}
	return p.ActiveEntities()
}

// Each calls fn for every enabled T.
func Each[T any](s *Scene, fn func(Entity, *T)) {
	if p, ok := lookupPool[T](s.registry); ok {
		p.Each(fn)
	}
}

// CountActive is the number of enabled T components.
func CountActive[T any](s *Scene) int {
	if p, ok := lookupPool[T](s.registry); ok {
		return p.ActiveLen()
	}
	return 0
}
