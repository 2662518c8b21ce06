package stratum

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
)

// erasedColumn is the vtable spec.md §4.2 describes: five operations that
// let ArchetypeStorage hold columns of arbitrary component types without
// becoming generic itself. This realizes design-notes option (b) — an
// interface whose methods close over the concrete T — rather than a
// hand-rolled function-pointer struct over unsafe.Pointer, since Go
// generics already give us a type-safe closure-over-T for free.
type erasedColumn interface {
	elemType() reflect.Type
	removeRow(row RowIndex)
	cloneColumn() erasedColumn
	cloneEmpty() erasedColumn
	// moveRow pulls the value at row out of this column and, if dst is a
	// column of the same T, inserts it there; otherwise the value is
	// dropped. Asymmetric by design (src may carry T while dst does not) —
	// this single path serves both extend_with_column and
	// reduce_with_column migrations.
	moveRow(dst erasedColumn, row RowIndex)
	finalize()
	len() int
}

type erasedPageTable[T any] struct {
	typ   reflect.Type
	table *PageTable[T]
}

// newErasedColumn wraps a freshly built PageTable[T] behind the erasedColumn
// interface, capturing the vtable entries for T via generic dispatch.
func newErasedColumn[T any](table *PageTable[T]) erasedColumn {
	return &erasedPageTable[T]{
		typ:   reflect.TypeOf((*T)(nil)).Elem(),
		table: table,
	}
}

func (e *erasedPageTable[T]) elemType() reflect.Type { return e.typ }

func (e *erasedPageTable[T]) removeRow(row RowIndex) {
	e.table.Remove(row)
}

func (e *erasedPageTable[T]) cloneColumn() erasedColumn {
	return &erasedPageTable[T]{typ: e.typ, table: e.table.Clone()}
}

func (e *erasedPageTable[T]) cloneEmpty() erasedColumn {
	return &erasedPageTable[T]{typ: e.typ, table: NewPageTable[T](0)}
}

func (e *erasedPageTable[T]) moveRow(dst erasedColumn, row RowIndex) {
	v, ok := e.table.Remove(row)
	if !ok {
		return
	}
	if dst == nil {
		return
	}
	target, same := dst.(*erasedPageTable[T])
	if !same {
		// Destination column is for a different type than this column
		// holds; the value is intentionally dropped (spec.md §4.2).
		return
	}
	target.table.Insert(row, v)
}

func (e *erasedPageTable[T]) finalize() {
	e.table = nil
}

func (e *erasedPageTable[T]) len() int { return e.table.Len() }

// columnAs retrieves the concrete *PageTable[T] behind an erasedColumn. The
// safety contract from spec.md §4.2 ("valid only when called with the same T
// passed to new") is enforced by a type assertion rather than trusted by
// convention, since callers already look the column up by reflect.Type —
// a mismatch here means archetype bookkeeping itself is broken, which is a
// programmer error and panics accordingly.
func columnAs[T any](col erasedColumn) *PageTable[T] {
	typed, ok := col.(*erasedPageTable[T])
	if !ok {
		panic(bark.AddTrace(badColumnTypeError{want: reflect.TypeOf((*T)(nil)).Elem(), got: col.elemType()}))
	}
	return typed.table
}
