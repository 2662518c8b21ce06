package stratum

// Bundle is a set of component values with a single insertion call. The
// world decomposes a bundle into N InsertComponent steps, each migrating
// the entity one archetype further, so the last step lands it in the
// archetype carrying every component of the bundle (spec.md §6).
type Bundle interface {
	InsertInto(w *World, id EntityId) error
}

// SpawnBundle spawns a new entity and inserts every component in b.
func SpawnBundle(w *World, b Bundle) (EntityId, error) {
	id := w.Spawn()
	if err := b.InsertInto(w, id); err != nil {
		return id, err
	}
	return id, nil
}

// Bundle2 is a ready-made Bundle for the common two-component case.
type Bundle2[A, B any] struct {
	A A
	B B
}

func (b Bundle2[A, B]) InsertInto(w *World, id EntityId) error {
	if err := InsertComponent[A](w, id, b.A); err != nil {
		return err
	}
	return InsertComponent[B](w, id, b.B)
}

// Bundle3 is a ready-made Bundle for the common three-component case.
type Bundle3[A, B, C any] struct {
	A A
	B B
	C C
}

func (b Bundle3[A, B, C]) InsertInto(w *World, id EntityId) error {
	if err := InsertComponent[A](w, id, b.A); err != nil {
		return err
	}
	if err := InsertComponent[B](w, id, b.B); err != nil {
		return err
	}
	return InsertComponent[C](w, id, b.C)
}

// Bundle4 is a ready-made Bundle for the common four-component case.
type Bundle4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

func (b Bundle4[A, B, C, D]) InsertInto(w *World, id EntityId) error {
	if err := InsertComponent[A](w, id, b.A); err != nil {
		return err
	}
	if err := InsertComponent[B](w, id, b.B); err != nil {
		return err
	}
	if err := InsertComponent[C](w, id, b.C); err != nil {
		return err
	}
	return InsertComponent[D](w, id, b.D)
}
