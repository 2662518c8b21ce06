package stratum

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
)

// Filter narrows which archetypes a query binds against without granting
// access to any component column (spec.md §4.5: With/Without/Or do not
// contribute to a query's access set). Evaluation is a mask.Mask256 test
// against the archetype's bitset, the same cheap membership check the
// teacher's query.go runs with mask.Mask before falling through to the
// structural hash.
type Filter interface {
	matches(w *World, a *ArchetypeStorage) bool
}

type withFilter struct{ types []typeRef }

// With restricts a query to archetypes carrying every named component, none
// of which are added to the query's read/write access set.
func With(types ...typeRef) Filter { return withFilter{types: types} }

func (f withFilter) matches(w *World, a *ArchetypeStorage) bool {
	var want mask.Mask256
	for _, t := range f.types {
		want.Mark(w.componentBit(t.t))
	}
	return a.bits.ContainsAll(want)
}

type withoutFilter struct{ types []typeRef }

// Without restricts a query to archetypes carrying none of the named
// components.
func Without(types ...typeRef) Filter { return withoutFilter{types: types} }

func (f withoutFilter) matches(w *World, a *ArchetypeStorage) bool {
	var avoid mask.Mask256
	for _, t := range f.types {
		avoid.Mark(w.componentBit(t.t))
	}
	return a.bits.ContainsNone(avoid)
}

type orFilter struct{ filters []Filter }

// Or matches an archetype that satisfies at least one of filters.
func Or(filters ...Filter) Filter { return orFilter{filters: filters} }

func (f orFilter) matches(w *World, a *ArchetypeStorage) bool {
	for _, sub := range f.filters {
		if sub.matches(w, a) {
			return true
		}
	}
	return false
}

type andFilter struct{ filters []Filter }

// And matches an archetype that satisfies every filter.
func And(filters ...Filter) Filter { return andFilter{filters: filters} }

func (f andFilter) matches(w *World, a *ArchetypeStorage) bool {
	for _, sub := range f.filters {
		if !sub.matches(w, a) {
			return false
		}
	}
	return true
}

// typeRef carries a component type into With/Without without the call site
// needing to spell out reflect.Type; T constructs it from a compile-time
// type parameter.
type typeRef struct{ t reflect.Type }

// T marks a single component type for use in With/Without, e.g.
// With(T[Position]()).
func T[C any]() typeRef { return typeRef{t: typeOf[C]()} }
