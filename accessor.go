package stratum

// Ref is a read-only smart wrapper over a component value reached through a
// query (spec.md §4.2/§5). Go has no borrow checker to enforce immutability
// through the pointer, but Ref's API surface only ever exposes a copy.
type Ref[T any] struct{ ptr *T }

// Value copies out the current component value.
func (r Ref[T]) Value() T { return *r.ptr }

// Mut is a read-write smart wrapper over a component value reached through a
// query; Set writes back in place so the change is visible to any later
// system reading the same row this tick.
type Mut[T any] struct{ ptr *T }

// Value copies out the current component value.
func (m Mut[T]) Value() T { return *m.ptr }

// Set overwrites the component value in place.
func (m Mut[T]) Set(v T) { *m.ptr = v }

// ComponentAccessor reaches a T value at a Cursor's current row, the direct
// adaptation of the teacher's AccessibleComponent[T].GetFromCursor
// (component_accessor.go) onto stratum's own Cursor and ArchetypeStorage
// rather than table.Accessor[T]. The teacher's matching CheckCursor has no
// home here: every query requires its slots up front (NewQuery1..4 take a
// type parameter per slot), so a bound query's archetype always carries the
// column by construction and there is no optional-component case to probe.
type ComponentAccessor[T any] struct{}

// NewAccessor builds an accessor for T. It carries no state; every method
// takes the Cursor to read from explicitly.
func NewAccessor[T any]() ComponentAccessor[T] { return ComponentAccessor[T]{} }

// GetFromCursor returns a pointer to T at the cursor's current row, or nil
// if that archetype carries no T column.
func (ComponentAccessor[T]) GetFromCursor(c *Cursor) *T {
	return archGetComponent[T](c.archetype(), c.rowIdx())
}

// Ref builds a read-only wrapper over T at the cursor's current row. If the
// archetype carries no T column the wrapper holds a nil pointer and its
// Value panics with a nil dereference — callers only reach this after a
// query has already required T.
func (a ComponentAccessor[T]) Ref(c *Cursor) Ref[T] {
	return Ref[T]{ptr: a.GetFromCursor(c)}
}

// Mut builds a read-write wrapper over T at the cursor's current row.
func (a ComponentAccessor[T]) Mut(c *Cursor) Mut[T] {
	return Mut[T]{ptr: a.GetFromCursor(c)}
}
