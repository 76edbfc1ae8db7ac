package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// Scene is the top-level ECS container. It owns the entity allocator, the
// pool registry, and a deferred deletion queue flushed by the cleanup system
// at the end of each frame.
type Scene struct {
	entities    *EntityAllocator
	registry    *Registry
	alive       []bool
	deleteQueue []Entity
	log         *zap.Logger
}

func NewScene(log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		entities:    NewEntityAllocator(),
		registry:    NewRegistry(),
		alive:       make([]bool, 0, 256),
		deleteQueue: make([]Entity, 0, 64),
		log:         log,
	}
}

func (s *Scene) Entities() *EntityAllocator { return s.entities }

// Spawn allocates an entity id, recycling the most recently deleted one first.
func (s *Scene) Spawn() Entity {
	recycled := s.entities.Recycling()
	e := s.entities.Allocate()
	for len(s.alive) <= int(e) {
		s.alive = append(s.alive, false)
	}
	s.alive[e] = true
	if recycled {
		s.log.Debug("recycling entity", zap.Stringer("entity", e))
	} else {
		s.log.Debug("generating entity", zap.Stringer("entity", e), zap.Stringer("next", s.entities.Next()))
	}
	return e
}

func (s *Scene) Alive(e Entity) bool {
	return int(e) < len(s.alive) && s.alive[e]
}

// EntityCount is the number of live entities.
func (s *Scene) EntityCount() int { return s.entities.Len() }

// PoolCount is the number of component types ever attached.
func (s *Scene) PoolCount() int { return s.registry.Len() }

// Delete returns e to the allocator and removes its components from every
// pool. Deleting an entity that is not alive fails without touching the
// allocator, so an id is never released twice.
func (s *Scene) Delete(e Entity) error {
	if !s.Alive(e) {
		return fmt.Errorf("delete entity %d: %w", e, ErrEntityNotAlive)
	}
	s.log.Debug("deleting entity", zap.Stringer("entity", e))
	s.alive[e] = false
	s.entities.Release(e)
	s.registry.RemoveAll(e, s.log)
	return nil
}

// MarkForDeletion queues e for end-of-frame deletion.
func (s *Scene) MarkForDeletion(e Entity) {
	s.deleteQueue = append(s.deleteQueue, e)
}

// FlushDeleteQueue deletes every queued entity. Entities queued twice, or
// deleted directly in the meantime, are skipped.
func (s *Scene) FlushDeleteQueue() int {
	n := 0
	for _, e := range s.deleteQueue {
		if err := s.Delete(e); err != nil {
			s.log.Debug("skip queued delete", zap.Error(err))
			continue
		}
		n++
	}
	s.deleteQueue = s.deleteQueue[:0]
	return n
}

// Pending is the number of entities waiting in the deletion queue.
func (s *Scene) Pending() int { return len(s.deleteQueue) }

// EnableAll enables e in every pool that stores a component for it.
func (s *Scene) EnableAll(e Entity) {
	s.registry.holding(e, func(p pool) { _ = p.Enable(e) })
}

// DisableAll disables e in every pool that stores a component for it.
func (s *Scene) DisableAll(e Entity) {
	s.registry.holding(e, func(p pool) { _ = p.Disable(e) })
}

// Attach stores v as e's T component, creating the pool for T on first use.
func Attach[T any](s *Scene, e Entity, v T) {
	if p, ok := lookupPool[T](s.registry); ok {
		p.Attach(e, v)
		return
	}
	p := NewPoolWith(e, v)
	s.registry.Register(p)
	s.log.Debug("created component pool", zap.Stringer("type", p.componentType()))
}

// Take removes and returns e's T component.
func Take[T any](s *Scene, e Entity) (T, error) {
	p, ok := lookupPool[T](s.registry)
	if !ok {
		var zero T
		return zero, &EntityNotBoundError{Type: typeOf[T]().String(), Entity: e}
	}
	return p.Take(e)
}

// Detach is Take without the value.
func Detach[T any](s *Scene, e Entity) error {
	_, err := Take[T](s, e)
	return err
}

// PoolOf returns the pool for T, or false if nothing ever attached a T.
func PoolOf[T any](s *Scene) (*ComponentPool[T], bool) {
	return lookupPool[T](s.registry)
}

// HasComponent reports whether a pool for T exists. Use Exists on the pool
// to ask about a specific entity.
func HasComponent[T any](s *Scene) bool {
	_, ok := s.registry.lookup(typeOf[T]())
	return ok
}

func Enable[T any](s *Scene, e Entity) error {
	p, ok := lookupPool[T](s.registry)
	if !ok {
		return fmt.Errorf("enable %s: %w", typeOf[T](), ErrNoPool)
	}
	return p.Enable(e)
}

func Disable[T any](s *Scene, e Entity) error {
	p, ok := lookupPool[T](s.registry)
	if !ok {
		return fmt.Errorf("disable %s: %w", typeOf[T](), ErrNoPool)
	}
	return p.Disable(e)
}

// Get returns a pointer to e's T component.
func Get[T any](s *Scene, e Entity) (*T, bool) {
	p, ok := lookupPool[T](s.registry)
	if !ok {
		return nil, false
	}
	return p.Get(e)
}
