package stratum

import "testing"

func TestCommandBufferAppliesInFIFOOrder(t *testing.T) {
	w := NewWorld()
	buf := NewCommandBuffer()
	cmds := newCommands(buf)

	CommandsInsertResource[int](cmds, 1)
	CommandsInsertResource[int](cmds, 2)

	if err := buf.applyTo(w); err != nil {
		t.Fatalf("applyTo: %v", err)
	}

	v, ok := GetResource[int](w)
	if !ok || v != 2 {
		t.Fatalf("GetResource = (%v, %v), want (2, true) — later insert should win", v, ok)
	}
}

func TestCommandBufferClearsAfterSuccess(t *testing.T) {
	w := NewWorld()
	buf := NewCommandBuffer()
	cmds := newCommands(buf)
	cmds.SpawnBundle(Bundle2[Position, Velocity]{A: Position{}, B: Velocity{}})

	if err := buf.applyTo(w); err != nil {
		t.Fatalf("applyTo: %v", err)
	}
	if len(buf.ops) != 0 {
		t.Fatalf("buffer should be empty after a successful apply, has %d ops", len(buf.ops))
	}
}

func TestCommandBufferStopsOnFirstError(t *testing.T) {
	w := NewWorld()
	buf := NewCommandBuffer()
	cmds := newCommands(buf)

	stale := EntityId{index: 999, generation: 0}
	cmds.Despawn(stale)
	CommandsInsertResource[int](cmds, 1)

	err := buf.applyTo(w)
	if err == nil {
		t.Fatalf("applyTo should fail despawning an unknown entity")
	}
	if _, ok := GetResource[int](w); ok {
		t.Fatalf("the op queued after the failing one should not have run")
	}
	if len(buf.ops) != 2 {
		t.Fatalf("the failing op and everything after it should remain queued, got %d ops", len(buf.ops))
	}
}

func TestCommandsInsertAndRemoveComponent(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	buf := NewCommandBuffer()
	cmds := newCommands(buf)

	CommandsInsert(cmds, id, Position{X: 3})
	if err := buf.applyTo(w); err != nil {
		t.Fatalf("applyTo: %v", err)
	}
	if _, ok := GetComponent[Position](w, id); !ok {
		t.Fatalf("Position should be present after CommandsInsert + apply")
	}

	CommandsRemove[Position](cmds, id)
	if err := buf.applyTo(w); err != nil {
		t.Fatalf("applyTo: %v", err)
	}
	if _, ok := GetComponent[Position](w, id); ok {
		t.Fatalf("Position should be gone after CommandsRemove + apply")
	}
}
