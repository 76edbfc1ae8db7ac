package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrEntityNotBound is matched by every EntityNotBoundError.
	ErrEntityNotBound = errors.New("entity not bound to component")
	ErrEntityNotAlive = errors.New("entity not alive")
	ErrNoPool         = errors.New("no component pool")
)

// EntityNotBoundError is returned when an operation targets an entity that
// has no component in the pool it was sent to.
type EntityNotBoundError struct {
	Type   string
	Entity Entity
}

func (e *EntityNotBoundError) Error() string {
	return fmt.Sprintf("entity (%d) not bound to component %s", e.Entity, e.Type)
}

func (e *EntityNotBoundError) Unwrap() error { return ErrEntityNotBound }
