package stratum

import (
	"reflect"
	"sync"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// componentRegistry assigns stable bitset slots to component types so that
// ArchetypeStorage can carry a mask.Mask256 alongside its XOR-hash identity.
// The hash is the archetype's real identity (spec.md §3, invariant I2); the
// mask is a second, cheap membership test that query evaluation uses,
// mirroring the role mask.Mask plays in the teacher's own query.go.
//
// bit() both reads and lazily writes bits, and runs from Filter.matches
// inside Stage.run's per-system goroutines (stage.go) as well as from
// archetype creation. mu guards every access so two systems discovering the
// same new component type concurrently don't race on the map.
type componentRegistry struct {
	mu   sync.Mutex
	bits map[reflect.Type]uint32
	next uint32
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{bits: make(map[reflect.Type]uint32)}
}

func (r *componentRegistry) bit(t reflect.Type) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bits[t]; ok {
		return b
	}
	b := r.next
	r.next++
	r.bits[t] = b
	return b
}

// ArchetypeStorage is a columnar table for every entity sharing one exact
// component-type set. Columns are keyed by reflect.Type; the entities
// column is a parallel PageTable aligned row-for-row with every component
// column (invariant I1, spec.md §3).
type ArchetypeStorage struct {
	ty       ArchetypeHash
	bits     mask.Mask256
	rows     uint32
	next     RowIndex
	entities *PageTable[EntityId]
	columns  map[reflect.Type]erasedColumn
	registry *componentRegistry
}

// newEmptyArchetype builds the unit archetype with no component columns.
// Every World contains exactly one of these, with ty == emptyArchetypeHash.
func newEmptyArchetype(registry *componentRegistry) *ArchetypeStorage {
	return &ArchetypeStorage{
		ty:       emptyArchetypeHash,
		entities: NewPageTable[EntityId](4),
		columns:  make(map[reflect.Type]erasedColumn),
		registry: registry,
	}
}

// Ty returns the archetype's structural identity.
func (a *ArchetypeStorage) Ty() ArchetypeHash { return a.ty }

// Len returns the number of live rows.
func (a *ArchetypeStorage) Len() int { return int(a.rows) }

// ContainsColumn reports whether the archetype carries a column for T.
func ContainsColumn[T any](a *ArchetypeStorage) bool {
	_, ok := a.columns[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

func (a *ArchetypeStorage) containsType(t reflect.Type) bool {
	_, ok := a.columns[t]
	return ok
}

// ContainsType reports whether the archetype carries a column for t, for
// callers (filters, cursors) that only have a reflect.Type in hand rather
// than a compile-time type parameter.
func (a *ArchetypeStorage) ContainsType(t reflect.Type) bool {
	return a.containsType(t)
}

// InsertEntity allocates a new row at the end of the archetype and records
// the owning entity id. Component columns are left unset at this row until
// the caller populates each of them with SetComponent — the row is not
// well-formed (invariant I1) until every column is filled.
func (a *ArchetypeStorage) InsertEntity(id EntityId) RowIndex {
	row := a.next
	a.entities.Insert(row, id)
	a.next++
	a.rows++
	return row
}

// archSetComponent writes v into T's column at row. Panics if the archetype
// does not carry a column for T (spec.md §4.3: a programmer error).
func archSetComponent[T any](a *ArchetypeStorage, row RowIndex, v T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	col, ok := a.columns[t]
	if !ok {
		panic(bark.AddTrace(badArchetypeError{Type: t}))
	}
	columnAs[T](col).Insert(row, v)
}

// archGetComponent returns a pointer to T's value at row, or nil if the
// archetype carries no column for T or the row is unset.
func archGetComponent[T any](a *ArchetypeStorage, row RowIndex) *T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	col, ok := a.columns[t]
	if !ok {
		return nil
	}
	return columnAs[T](col).Get(row)
}

// Remove deletes row from every column, including the entities column, and
// decrements the row count. The row becomes a hole: later iteration skips
// it and the index is never reused within this archetype's lifetime.
func (a *ArchetypeStorage) Remove(row RowIndex) {
	for _, col := range a.columns {
		col.removeRow(row)
	}
	if _, ok := a.entities.Remove(row); ok {
		a.rows--
	}
}

// MoveEntity migrates the entity at row into dst, returning its new row
// there. For every column T present in a, move_row is invoked against dst's
// matching column if dst carries T; columns dst carries that a does not are
// left unset at the new row (the caller must fill them to restore
// invariant I1). Columns a carries that dst does not are dropped with the
// removed row.
func (a *ArchetypeStorage) MoveEntity(dst *ArchetypeStorage, row RowIndex) RowIndex {
	id, ok := a.entities.Remove(row)
	if !ok {
		panic(bark.AddTrace(badArchetypeError{}))
	}
	a.rows--
	newRow := dst.InsertEntity(id)
	for t, col := range a.columns {
		dstCol := dst.columns[t]
		col.moveRow(dstCol, row)
	}
	return newRow
}

// ExtendWithColumn returns a clone-empty archetype whose component set is
// self ∪ {T}. Panics if T is already present.
func ExtendWithColumn[T any](a *ArchetypeStorage) *ArchetypeStorage {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if a.containsType(t) {
		panic(bark.AddTrace(ComponentExistsError{Type: t}))
	}
	out := a.cloneEmpty()
	out.ty = a.ty ^ hashType(t)
	out.bits = a.bits
	out.bits.Mark(a.registry.bit(t))
	out.columns[t] = newErasedColumn(NewPageTable[T](0))
	return out
}

// ReduceWithColumn returns a clone-empty archetype whose component set is
// self \ {T}. Panics if T is absent.
func ReduceWithColumn[T any](a *ArchetypeStorage) *ArchetypeStorage {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if !a.containsType(t) {
		panic(bark.AddTrace(ComponentNotFoundError{Type: t}))
	}
	out := a.cloneEmpty()
	out.ty = a.ty ^ hashType(t)
	out.bits = a.bits
	out.bits.Unmark(a.registry.bit(t))
	delete(out.columns, t)
	return out
}

func (a *ArchetypeStorage) cloneEmpty() *ArchetypeStorage {
	cols := make(map[reflect.Type]erasedColumn, len(a.columns))
	for t, col := range a.columns {
		cols[t] = col.cloneEmpty()
	}
	return &ArchetypeStorage{
		ty:       a.ty,
		bits:     a.bits,
		entities: NewPageTable[EntityId](0),
		columns:  cols,
		registry: a.registry,
	}
}

// Clone deep-copies the archetype, including every column's data.
func (a *ArchetypeStorage) Clone() *ArchetypeStorage {
	cols := make(map[reflect.Type]erasedColumn, len(a.columns))
	for t, col := range a.columns {
		cols[t] = col.cloneColumn()
	}
	return &ArchetypeStorage{
		ty:       a.ty,
		bits:     a.bits,
		rows:     a.rows,
		next:     a.next,
		entities: a.entities.Clone(),
		columns:  cols,
		registry: a.registry,
	}
}

// EntityAt returns the entity id owning row, or the zero EntityId if the
// row is a hole.
func (a *ArchetypeStorage) EntityAt(row RowIndex) (EntityId, bool) {
	p := a.entities.Get(row)
	if p == nil {
		return EntityId{}, false
	}
	return *p, true
}

// Iter calls yield(row, entity) for every live row in ascending order.
func (a *ArchetypeStorage) Iter(yield func(row RowIndex, id EntityId) bool) {
	a.entities.Iter(func(row RowIndex, id *EntityId) bool {
		return yield(row, *id)
	})
}
