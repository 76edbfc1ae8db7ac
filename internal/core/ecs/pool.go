package ecs

import (
	"iter"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

const absent = -1

// ComponentPool is a sparse set holding every component of type T.
//
// sparse is indexed by entity and holds either absent or an index into the
// packed/dense pair. packed[i] owns dense[i]. Entries in [0, active) are
// enabled, entries in [active, len) are stored but disabled.
type ComponentPool[T any] struct {
	typ    reflect.Type
	sparse []int
	packed []Entity
	dense  []T
	active int
}

func NewComponentPool[T any]() *ComponentPool[T] {
	return &ComponentPool[T]{
		typ:    typeOf[T](),
		packed: make([]Entity, 0, 16),
		dense:  make([]T, 0, 16),
	}
}

// NewPoolWith creates a pool whose single, enabled entry is (e, v).
func NewPoolWith[T any](e Entity, v T) *ComponentPool[T] {
	p := NewComponentPool[T]()
	p.Attach(e, v)
	return p
}

// Attach adds v for e as an enabled component. The sparse array grows to
// cover e when needed. If e already has a component it is overwritten in
// place and keeps its enabled state.
func (p *ComponentPool[T]) Attach(e Entity, v T) {
	if i, ok := p.index(e); ok {
		p.dense[i] = v
		return
	}
	p.sparse = bindSparse(p.sparse, e, len(p.packed))
	p.packed = append(p.packed, e)
	p.dense = append(p.dense, v)
	// A disabled suffix sits between the boundary and the new tail.
	p.SwapIndices(len(p.packed)-1, p.active)
	p.active++
}

// Take removes e's component, enabled or not, and returns it.
func (p *ComponentPool[T]) Take(e Entity) (T, error) {
	i, ok := p.index(e)
	if !ok {
		var zero T
		return zero, p.notBound(e)
	}
	if i < p.active {
		p.active--
		p.SwapIndices(i, p.active)
		i = p.active
	}
	last := len(p.packed) - 1
	p.SwapIndices(i, last)

	v := p.dense[last]
	var zero T
	p.dense[last] = zero
	p.dense = p.dense[:last]
	p.packed = p.packed[:last]
	p.sparse[e] = absent
	return v, nil
}

// DeleteEntity removes e's component if there is one. A missing component
// is logged and otherwise ignored.
func (p *ComponentPool[T]) DeleteEntity(e Entity, log *zap.Logger) bool {
	if _, err := p.Take(e); err != nil {
		if log != nil {
			log.Warn("delete entity", zap.Error(err))
		}
		return false
	}
	return true
}

// Enable moves e into the active prefix. Enabling an enabled entity is a no-op.
func (p *ComponentPool[T]) Enable(e Entity) error {
	i, ok := p.index(e)
	if !ok {
		return p.notBound(e)
	}
	if i < p.active {
		return nil
	}
	p.SwapIndices(i, p.active)
	p.active++
	return nil
}

// Disable moves e into the disabled suffix. Disabling a disabled entity is a no-op.
func (p *ComponentPool[T]) Disable(e Entity) error {
	i, ok := p.index(e)
	if !ok {
		return p.notBound(e)
	}
	if i >= p.active {
		return nil
	}
	p.active--
	p.SwapIndices(i, p.active)
	return nil
}

// SwapEntities exchanges the packed slots of two entities.
func (p *ComponentPool[T]) SwapEntities(a, b Entity) error {
	i, ok := p.index(a)
	if !ok {
		return p.notBound(a)
	}
	j, ok := p.index(b)
	if !ok {
		return p.notBound(b)
	}
	p.SwapIndices(i, j)
	return nil
}

// SwapIndices exchanges two packed slots, fixing up sparse for both owners.
// Indices must be in range.
func (p *ComponentPool[T]) SwapIndices(i, j int) {
	if i == j {
		return
	}
	a, b := p.packed[i], p.packed[j]
	p.sparse[a], p.sparse[b] = j, i
	p.packed[i], p.packed[j] = b, a
	p.dense[i], p.dense[j] = p.dense[j], p.dense[i]
}

// Active yields pointers to the enabled components in packed order. Each call
// starts over from the current state of the pool.
func (p *ComponentPool[T]) Active() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := 0; i < p.active; i++ {
			if !yield(&p.dense[i]) {
				return
			}
		}
	}
}

// ActiveEntities is Active with the owning entity alongside each component.
func (p *ComponentPool[T]) ActiveEntities() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i := 0; i < p.active; i++ {
			if !yield(p.packed[i], &p.dense[i]) {
				return
			}
		}
	}
}

func (p *ComponentPool[T]) Each(fn func(Entity, *T)) {
	for i := 0; i < p.active; i++ {
		fn(p.packed[i], &p.dense[i])
	}
}

// Values returns the enabled prefix of the dense array. The slice aliases the
// pool and is only valid until the next mutation.
func (p *ComponentPool[T]) Values() []T {
	return p.dense[:p.active:p.active]
}

func (p *ComponentPool[T]) Get(e Entity) (*T, bool) {
	i, ok := p.index(e)
	if !ok {
		return nil, false
	}
	return &p.dense[i], true
}

func (p *ComponentPool[T]) Exists(e Entity) bool {
	_, ok := p.index(e)
	return ok
}

func (p *ComponentPool[T]) Enabled(e Entity) bool {
	i, ok := p.index(e)
	return ok && i < p.active
}

// Len counts every stored component, enabled or disabled.
func (p *ComponentPool[T]) Len() int { return len(p.packed) }

func (p *ComponentPool[T]) ActiveLen() int { return p.active }

// PoolState is a detached copy of a pool's arrays.
type PoolState[T any] struct {
	Active int
	Sparse []int
	Packed []Entity
	Dense  []T
}

func (p *ComponentPool[T]) Snapshot() PoolState[T] {
	return PoolState[T]{
		Active: p.active,
		Sparse: append([]int{}, p.sparse...),
		Packed: append([]Entity{}, p.packed...),
		Dense:  append([]T{}, p.dense...),
	}
}

func (p *ComponentPool[T]) componentType() reflect.Type { return p.typ }

func (p *ComponentPool[T]) index(e Entity) (int, bool) {
	if int(e) >= len(p.sparse) {
		return absent, false
	}
	i := p.sparse[e]
	return i, i != absent
}

func (p *ComponentPool[T]) notBound(e Entity) error {
	return &EntityNotBoundError{Type: p.typ.String(), Entity: e}
}

// bindSparse points sparse[e] at index, prolonging sparse with absent slots
// up to e+1 first. It never shrinks.
func bindSparse(sparse []int, e Entity, index int) []int {
	sparse = prolongSparse(sparse, e)
	sparse[e] = index
	return sparse
}

func prolongSparse(sparse []int, e Entity) []int {
	n := int(e) + 1 - len(sparse)
	if n <= 0 {
		return sparse
	}
	start := len(sparse)
	sparse = slices.Grow(sparse, n)[:start+n]
	for i := start; i < len(sparse); i++ {
		sparse[i] = absent
	}
	return sparse
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
