package ecs

import (
	"reflect"

	"go.uber.org/zap"
)

// pool is the type-erased face every *ComponentPool[T] shows the Registry so
// entity-wide operations can fan out without knowing T.
type pool interface {
	componentType() reflect.Type
	DeleteEntity(e Entity, log *zap.Logger) bool
	Exists(e Entity) bool
	Enable(e Entity) error
	Disable(e Entity) error
}

// Registry maps component types to their pools. At most one pool exists per
// type.
type Registry struct {
	byType map[reflect.Type]pool
	pools  []pool
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]pool, 16),
		pools:  make([]pool, 0, 16),
	}
}

// Register adds p under its component type. A second pool for the same type
// is ignored.
func (r *Registry) Register(p pool) bool {
	t := p.componentType()
	if _, ok := r.byType[t]; ok {
		return false
	}
	r.byType[t] = p
	r.pools = append(r.pools, p)
	return true
}

func (r *Registry) lookup(t reflect.Type) (pool, bool) {
	p, ok := r.byType[t]
	return p, ok
}

// RemoveAll clears e from every registered pool and reports how many pools
// actually held it.
func (r *Registry) RemoveAll(e Entity, log *zap.Logger) int {
	n := 0
	for _, p := range r.pools {
		if p.DeleteEntity(e, log) {
			n++
		}
	}
	return n
}

// holding calls fn for every pool that stores a component for e.
func (r *Registry) holding(e Entity, fn func(pool)) {
	for _, p := range r.pools {
		if p.Exists(e) {
			fn(p)
		}
	}
}

func (r *Registry) Len() int { return len(r.pools) }

// lookupPool returns the typed pool for T.
func lookupPool[T any](r *Registry) (*ComponentPool[T], bool) {
	p, ok := r.lookup(typeOf[T]())
	if !ok {
		return nil, false
	}
	return p.(*ComponentPool[T]), true
}
