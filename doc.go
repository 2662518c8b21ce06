/*
Package stratum is an archetype-based Entity-Component-System data engine.

Entities are opaque (index, generation) handles carrying no data of their
own. Every distinct set of component types forms an archetype, backed by a
columnar ArchetypeStorage; inserting or removing a component migrates an
entity's row into the archetype for its new type set, identified by XORing
TypeHash values rather than walking a type-set comparison.

Core Concepts:

  - EntityId: an opaque handle; stale after Despawn.
  - ArchetypeStorage: columnar storage for every entity sharing one exact
    component-type set.
  - World: owns every archetype, the entity index and the resource map.
  - Query: statically-derived read/write access to one or more component
    types, bound fresh against the live world on every stage run.
  - Commands: a per-system deferred-mutation buffer, drained into the world
    once the whole stage finishes.
  - Stage: an ordered batch of systems; non-conflicting systems run
    concurrently, conflicting ones preserve declaration order.

Basic Usage:

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	w := stratum.NewWorld()
	id := w.Spawn()
	stratum.InsertComponent(w, id, Position{})
	stratum.InsertComponent(w, id, Velocity{X: 1})

	move := stratum.System1(
		"move",
		stratum.NewQuery2[Position, Velocity](
			stratum.Write[Position](), stratum.Read[Velocity](), nil,
		),
		func(q *stratum.Query2[Position, Velocity]) {
			for q.Next() {
				v := q.Get1().Value()
				p := q.Get0Mut()
				cur := p.Value()
				p.Set(Position{X: cur.X + v.X, Y: cur.Y + v.Y})
			}
		},
	)

	stage := stratum.NewStage().Add(move)
	_ = w.RunStage(stage)

stratum is a standalone data engine; it has no rendering, physics or asset
pipeline of its own.
*/
package stratum
