package stratum

import (
	"fmt"
	"hash/fnv"
	"reflect"
)

// RowIndex identifies a row within a single archetype's columns.
type RowIndex = uint32

// TypeHash is the stable per-type component of an ArchetypeHash.
type TypeHash = uint64

// ArchetypeHash identifies an archetype by the unordered set of component
// types it carries. Two archetypes are equal iff their type sets are equal;
// the hash is the XOR of each member type's TypeHash, so
// hash(S ∪ {T}) == hash(S) ^ hash(T) whenever T ∉ S.
type ArchetypeHash = uint64

// EntityId is an opaque (index, generation) handle. The generation is bumped
// on despawn so stale handles are detectable without scanning storage.
type EntityId struct {
	index      uint32
	generation uint32
}

// Index returns the dense slot this id was allocated to.
func (id EntityId) Index() uint32 { return id.index }

// Generation returns the id's generation counter.
func (id EntityId) Generation() uint32 { return id.generation }

// IsNil reports whether id is the zero value, never produced by World.Spawn.
func (id EntityId) IsNil() bool { return id.index == 0 && id.generation == 0 }

func (id EntityId) String() string {
	return fmt.Sprintf("Entity(%d#%d)", id.index, id.generation)
}

var typeHashCache = map[reflect.Type]TypeHash{}

// hashType computes the stable TypeHash for T, memoizing per reflect.Type.
// The hash of the fully qualified type name is used rather than the
// reflect.Type pointer so the value is deterministic across runs (useful for
// snapshot comparisons in tests), while still being a pure function of
// compile-time type identity as spec.md §1 requires (no runtime schema).
func hashType(t reflect.Type) TypeHash {
	if h, ok := typeHashCache[t]; ok {
		return h
	}
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(t.PkgPath() + "." + t.Name() + "|" + t.String()))
	h := hasher.Sum64()
	typeHashCache[t] = h
	return h
}

// TypeHashOf returns the TypeHash for a component or resource type T.
func TypeHashOf[T any]() TypeHash {
	return hashType(reflect.TypeOf((*T)(nil)).Elem())
}

// emptyArchetypeHash is the hash of the archetype with zero component
// columns; every World always contains one.
const emptyArchetypeHash ArchetypeHash = 0

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
