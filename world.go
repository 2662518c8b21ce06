package stratum

import (
	"reflect"
	"sort"

	"github.com/TheBitDrifter/bark"
)

// World owns every archetype (keyed by ArchetypeHash), the entity index,
// the resource map, and the command-buffer plumbing systems drain into
// (spec.md §3/§4.4). Multiple Worlds may coexist and share nothing.
type World struct {
	archetypes   map[ArchetypeHash]*ArchetypeStorage
	registry     *componentRegistry
	index        *entityIndex
	resources    resources
	events       WorldEvents
	locked       bool
	archetypeGen uint64
	planCache    *queryPlanCache
}

// NewWorld constructs a World already containing the empty archetype.
// Events, if given, wires the optional lifecycle hooks from config.go.
func NewWorld(events ...WorldEvents) *World {
	var ev WorldEvents
	if len(events) > 0 {
		ev = events[0]
	}
	registry := newComponentRegistry()
	w := &World{
		archetypes: make(map[ArchetypeHash]*ArchetypeStorage),
		registry:   registry,
		index:      newEntityIndex(),
		resources:  newResources(),
		events:     ev,
		planCache:  newQueryPlanCache(),
	}
	w.archetypes[emptyArchetypeHash] = newEmptyArchetype(registry)
	return w
}

// Locked reports whether the world is mid-stage; direct mutation methods
// refuse while locked and callers should route through Commands instead.
func (w *World) Locked() bool { return w.locked }

func (w *World) lock()   { w.locked = true }
func (w *World) unlock() { w.locked = false }

// Archetypes returns every archetype currently tracked by the world, sorted
// by ArchetypeHash so query binding order is deterministic within and across
// ticks regardless of Go's randomized map iteration (spec.md §4.5).
func (w *World) Archetypes() []*ArchetypeStorage {
	out := make([]*ArchetypeStorage, 0, len(w.archetypes))
	for _, a := range w.archetypes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ty < out[j].ty })
	return out
}

func (w *World) componentBit(t reflect.Type) uint32 {
	return w.registry.bit(t)
}

// Spawn allocates a new entity in the empty archetype.
func (w *World) Spawn() EntityId {
	if w.locked {
		panic(bark.AddTrace(LockedWorldError{}))
	}
	id := w.index.allocate()
	arch := w.archetypes[emptyArchetypeHash]
	row := arch.InsertEntity(id)
	w.index.set(id, entityLocation{archetype: emptyArchetypeHash, row: row})
	w.events.entitySpawned(id)
	return id
}

// Despawn removes id's row from its archetype and bumps its generation so
// the handle is detectably stale afterward.
func (w *World) Despawn(id EntityId) error {
	if w.locked {
		return LockedWorldError{}
	}
	loc, ok := w.index.resolve(id)
	if !ok {
		return StaleEntityError{ID: id}
	}
	arch := w.archetypes[loc.archetype]
	arch.Remove(loc.row)
	w.index.despawn(id)
	w.events.entityDespawned(id)
	return nil
}

// archetypeOrCreate returns the archetype for hash, building it with build
// if it does not exist yet.
func (w *World) archetypeOrCreate(hash ArchetypeHash, build func() *ArchetypeStorage) *ArchetypeStorage {
	if a, ok := w.archetypes[hash]; ok {
		return a
	}
	a := build()
	w.archetypes[hash] = a
	w.archetypeGen++
	w.events.archetypeCreated(hash)
	return a
}

// archetypeGeneration returns a counter bumped every time a new archetype
// is created. A query's cached matched-archetype list is only valid so long
// as this hasn't moved (spec.md §4.5: binding is cheap, but re-scanning
// every archetype on every tick when the archetype set hasn't changed is
// pure waste).
func (w *World) archetypeGeneration() uint64 { return w.archetypeGen }

// InsertComponent attaches v to id, migrating it into the archetype for its
// current type set ∪ {T} (creating that archetype on first use) unless id
// already carries a T column, in which case v simply overwrites it in
// place with no migration (spec.md §4.4).
func InsertComponent[T any](w *World, id EntityId, v T) error {
	if w.locked {
		return LockedWorldError{}
	}
	loc, ok := w.index.resolve(id)
	if !ok {
		return StaleEntityError{ID: id}
	}
	src := w.archetypes[loc.archetype]
	if ContainsColumn[T](src) {
		archSetComponent[T](src, loc.row, v)
		return nil
	}
	t := typeOf[T]()
	dstHash := src.ty ^ hashType(t)
	dst := w.archetypeOrCreate(dstHash, func() *ArchetypeStorage {
		return ExtendWithColumn[T](src)
	})
	newRow := src.MoveEntity(dst, loc.row)
	archSetComponent[T](dst, newRow, v)
	w.index.set(id, entityLocation{archetype: dstHash, row: newRow})
	w.events.migration(id, loc.archetype, dstHash)
	return nil
}

// RemoveComponent detaches T from id, migrating it into the archetype for
// its current type set \ {T}. A no-op if id does not carry T.
func RemoveComponent[T any](w *World, id EntityId) error {
	if w.locked {
		return LockedWorldError{}
	}
	loc, ok := w.index.resolve(id)
	if !ok {
		return StaleEntityError{ID: id}
	}
	src := w.archetypes[loc.archetype]
	if !ContainsColumn[T](src) {
		return nil
	}
	t := typeOf[T]()
	dstHash := src.ty ^ hashType(t)
	dst := w.archetypeOrCreate(dstHash, func() *ArchetypeStorage {
		return ReduceWithColumn[T](src)
	})
	newRow := src.MoveEntity(dst, loc.row)
	w.index.set(id, entityLocation{archetype: dstHash, row: newRow})
	w.events.migration(id, loc.archetype, dstHash)
	return nil
}

// GetComponent returns a pointer to id's T value, or false if id is stale
// or its archetype carries no T column (spec.md §7: a data-miss, not an
// error).
func GetComponent[T any](w *World, id EntityId) (*T, bool) {
	loc, ok := w.index.resolve(id)
	if !ok {
		return nil, false
	}
	arch := w.archetypes[loc.archetype]
	v := archGetComponent[T](arch, loc.row)
	return v, v != nil
}

// Alive reports whether id refers to a currently-live entity.
func (w *World) Alive(id EntityId) bool {
	return w.index.isLive(id)
}

// ApplyCommands drains buf's FIFO queue of deferred mutations into w.
func (w *World) ApplyCommands(buf *CommandBuffer) error {
	return buf.applyTo(w)
}

// RunStage constructs each system's parameter queries against the live
// world and invokes it in the order the stage's conflict graph schedules,
// then drains every system's command buffer in declaration order once the
// whole stage has finished (spec.md §4.4/§4.6).
func (w *World) RunStage(stage *Stage) error {
	return stage.run(w)
}
