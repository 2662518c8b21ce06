package stratum

import "testing"

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }
type Health struct{ Current, Max int }

func TestWorldSpawnStartsInEmptyArchetype(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()

	if !w.Alive(id) {
		t.Fatalf("freshly spawned entity should be alive")
	}
	loc, ok := w.index.resolve(id)
	if !ok {
		t.Fatalf("resolve() failed for a freshly spawned entity")
	}
	if loc.archetype != emptyArchetypeHash {
		t.Fatalf("new entity archetype = %#x, want empty archetype %#x", loc.archetype, emptyArchetypeHash)
	}
}

func TestInsertComponentMigratesArchetype(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()

	if err := InsertComponent(w, id, Position{X: 1, Y: 2}); err != nil {
		t.Fatalf("InsertComponent: %v", err)
	}

	loc, _ := w.index.resolve(id)
	if loc.archetype == emptyArchetypeHash {
		t.Fatalf("entity should have migrated out of the empty archetype")
	}

	got, ok := GetComponent[Position](w, id)
	if !ok {
		t.Fatalf("GetComponent should find Position after insert")
	}
	if *got != (Position{X: 1, Y: 2}) {
		t.Fatalf("GetComponent = %+v, want {1 2}", *got)
	}
}

func TestInsertComponentOverwritesWithoutMigrationWhenAlreadyPresent(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	_ = InsertComponent(w, id, Position{X: 1, Y: 1})
	before, _ := w.index.resolve(id)

	if err := InsertComponent(w, id, Position{X: 9, Y: 9}); err != nil {
		t.Fatalf("InsertComponent: %v", err)
	}

	after, _ := w.index.resolve(id)
	if before.archetype != after.archetype || before.row != after.row {
		t.Fatalf("overwriting an already-present component should not migrate the entity")
	}
	got, _ := GetComponent[Position](w, id)
	if *got != (Position{X: 9, Y: 9}) {
		t.Fatalf("GetComponent = %+v, want {9 9}", *got)
	}
}

func TestArchetypeIdentityIsOrderIndependent(t *testing.T) {
	w := NewWorld()

	a := w.Spawn()
	_ = InsertComponent(w, a, Position{})
	_ = InsertComponent(w, a, Velocity{})

	b := w.Spawn()
	_ = InsertComponent(w, b, Velocity{})
	_ = InsertComponent(w, b, Position{})

	locA, _ := w.index.resolve(a)
	locB, _ := w.index.resolve(b)
	if locA.archetype != locB.archetype {
		t.Fatalf("archetype identity should not depend on insertion order: %#x != %#x", locA.archetype, locB.archetype)
	}
}

func TestRemoveComponentMigratesBack(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	_ = InsertComponent(w, id, Position{})
	_ = InsertComponent(w, id, Velocity{})

	if err := RemoveComponent[Velocity](w, id); err != nil {
		t.Fatalf("RemoveComponent: %v", err)
	}

	if _, ok := GetComponent[Velocity](w, id); ok {
		t.Fatalf("Velocity should be gone after RemoveComponent")
	}
	if _, ok := GetComponent[Position](w, id); !ok {
		t.Fatalf("Position should survive removing Velocity")
	}
}

func TestRemoveComponentAbsentIsNoop(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	loc, _ := w.index.resolve(id)

	if err := RemoveComponent[Velocity](w, id); err != nil {
		t.Fatalf("RemoveComponent on absent type should not error, got %v", err)
	}
	after, _ := w.index.resolve(id)
	if loc.archetype != after.archetype {
		t.Fatalf("removing an absent component should not migrate the entity")
	}
}

func TestDespawnStalesId(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	_ = InsertComponent(w, id, Position{X: 1})

	if err := w.Despawn(id); err != nil {
		t.Fatalf("Despawn: %v", err)
	}
	if w.Alive(id) {
		t.Fatalf("despawned entity should not be alive")
	}
	if _, ok := GetComponent[Position](w, id); ok {
		t.Fatalf("GetComponent should miss for a despawned entity")
	}
}

func TestDespawnStaleIdReturnsError(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	_ = w.Despawn(id)

	err := w.Despawn(id)
	if _, ok := err.(StaleEntityError); !ok {
		t.Fatalf("Despawn on a stale id = %v (%T), want StaleEntityError", err, err)
	}
}

func TestGetComponentMissesForStaleId(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	_ = InsertComponent(w, id, Position{})
	_ = w.Despawn(id)

	if _, ok := GetComponent[Position](w, id); ok {
		t.Fatalf("GetComponent should miss for a stale id even at the same slot")
	}
}

func TestWorldLockedRejectsDirectMutation(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	w.lock()
	defer w.unlock()

	if err := InsertComponent(w, id, Position{}); err != (LockedWorldError{}) {
		t.Fatalf("InsertComponent while locked = %v, want LockedWorldError", err)
	}
	if err := w.Despawn(id); err != (LockedWorldError{}) {
		t.Fatalf("Despawn while locked = %v, want LockedWorldError", err)
	}
}

func TestResourcesRoundTrip(t *testing.T) {
	w := NewWorld()

	if _, ok := GetResource[int](w); ok {
		t.Fatalf("GetResource should miss before any InsertResource")
	}

	InsertResource(w, 7)
	v, ok := GetResource[int](w)
	if !ok || v != 7 {
		t.Fatalf("GetResource = (%v, %v), want (7, true)", v, ok)
	}

	RemoveResource[int](w)
	if _, ok := GetResource[int](w); ok {
		t.Fatalf("GetResource should miss after RemoveResource")
	}
}

func TestWorldEventsFireOnLifecycleTransitions(t *testing.T) {
	var spawned, despawned, migrated, created int
	w := NewWorld(WorldEvents{
		OnEntitySpawned:   func(EntityId) { spawned++ },
		OnEntityDespawned: func(EntityId) { despawned++ },
		OnMigration:       func(EntityId, ArchetypeHash, ArchetypeHash) { migrated++ },
		OnArchetypeCreated: func(ArchetypeHash) { created++ },
	})

	id := w.Spawn()
	_ = InsertComponent(w, id, Position{})
	_ = w.Despawn(id)

	if spawned != 1 || despawned != 1 || migrated != 1 || created == 0 {
		t.Fatalf("events fired spawned=%d despawned=%d migrated=%d created=%d, want 1,1,1,>0",
			spawned, despawned, migrated, created)
	}
}
