package ecs

// EntityBuilder chains component attachment onto a freshly spawned entity:
//
//	e := ecs.With(ecs.With(scene.NewEntity(), shape), label).Build()
type EntityBuilder struct {
	scene  *Scene
	entity Entity
	built  bool
}

// NewEntity spawns an entity and returns a builder for it. The id is live
// immediately; components are attached as With is called.
func (s *Scene) NewEntity() *EntityBuilder {
	return &EntityBuilder{scene: s, entity: s.Spawn()}
}

// With attaches v to the entity being built. Panics after Build.
func With[T any](b *EntityBuilder, v T) *EntityBuilder {
	if b.built {
		panic("ecs: entity already built")
	}
	Attach(b.scene, b.entity, v)
	return b
}

// Disabled disables every component attached so far.
func (b *EntityBuilder) Disabled() *EntityBuilder {
	b.scene.DisableAll(b.entity)
	return b
}

func (b *EntityBuilder) Entity() Entity { return b.entity }

func (b *EntityBuilder) Build() Entity {
	b.built = true
	return b.entity
}
