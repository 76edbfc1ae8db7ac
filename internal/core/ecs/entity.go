package ecs

import (
	"math"
	"strconv"
)

// Entity is a bare integer handle. It carries no generation: once an id is
// recycled the old handle and the new one are the same value.
type Entity uint32

func (e Entity) String() string { return strconv.FormatUint(uint64(e), 10) }

// EntityAllocator hands out fresh ids from a monotonic counter and recycles
// released ids in LIFO order.
type EntityAllocator struct {
	next uint32
	free []Entity
}

func NewEntityAllocator() *EntityAllocator {
	return &EntityAllocator{
		free: make([]Entity, 0, 256),
	}
}

// Allocate pops the most recently released id, or mints a fresh one when the
// free stack is empty. Running out of 32-bit ids is fatal.
func (a *EntityAllocator) Allocate() Entity {
	if n := len(a.free); n > 0 {
		e := a.free[n-1]
		a.free = a.free[:n-1]
		return e
	}
	if a.next == math.MaxUint32 {
		panic("ecs: entity id space exhausted")
	}
	e := Entity(a.next)
	a.next++
	return e
}

// Recycling reports whether the next Allocate will reuse a released id.
func (a *EntityAllocator) Recycling() bool { return len(a.free) > 0 }

// Release pushes e onto the free stack. It does not touch component pools,
// and releasing the same id twice without an Allocate in between corrupts
// the allocator; Scene guards against that.
func (a *EntityAllocator) Release(e Entity) {
	a.free = append(a.free, e)
}

// Next is the id the counter will mint once the free stack is drained.
func (a *EntityAllocator) Next() Entity { return Entity(a.next) }

// Free is the depth of the recycle stack.
func (a *EntityAllocator) Free() int { return len(a.free) }

// Len is the number of ids currently handed out.
func (a *EntityAllocator) Len() int { return int(a.next) - len(a.free) }
