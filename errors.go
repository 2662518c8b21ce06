package stratum

import (
	"fmt"
	"reflect"
)

// LockedWorldError is returned when a mutating operation is attempted while
// a stage is running; such operations must instead go through Commands.
// Spawn, which has no error result, panics with it instead.
type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is locked for the duration of the running stage"
}

// ComponentExistsError reports ExtendWithColumn called with a type the
// archetype already carries.
type ComponentExistsError struct {
	Type reflect.Type
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %s", e.Type)
}

// ComponentNotFoundError reports ReduceWithColumn called with a type the
// archetype does not carry.
type ComponentNotFoundError struct {
	Type reflect.Type
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %s", e.Type)
}

// StaleEntityError is returned when an EntityId's generation no longer
// matches the live generation recorded in the EntityIndex.
type StaleEntityError struct {
	ID EntityId
}

func (e StaleEntityError) Error() string {
	return fmt.Sprintf("entity %s is stale (despawned or reused)", e.ID)
}

// UnknownResourceError describes a lookup of a resource type that has no
// inserted value. GetResource and GetResourcePtr report that case with a
// false result rather than returning this error.
type UnknownResourceError struct {
	Type reflect.Type
}

func (e UnknownResourceError) Error() string {
	return fmt.Sprintf("no resource registered for type: %s", e.Type)
}

// badArchetypeError is a programmer error: a method naming component T was
// called against an archetype that doesn't carry T. MoveEntity also raises
// it, with a nil Type, when the row it is given holds no entity.
type badArchetypeError struct {
	Type reflect.Type
}

func (e badArchetypeError) Error() string {
	return fmt.Sprintf("set_component called on archetype missing column: %s", e.Type)
}

// badColumnTypeError is a programmer error: an erasedColumn was accessed
// with a type parameter that does not match the type it was created with.
type badColumnTypeError struct {
	want, got reflect.Type
}

func (e badColumnTypeError) Error() string {
	return fmt.Sprintf("column type mismatch: column holds %s, accessed as %s", e.got, e.want)
}

// accessConflictError is a programmer error raised when a system is built
// and its own access set self-conflicts outside a QuerySet: the same type
// requested both &C and &mut C, or &mut C twice. Conflicts between
// different systems of a stage are never an error; they only order the
// systems.
type accessConflictError struct {
	Type   reflect.Type
	Detail string
}

func (e accessConflictError) Error() string {
	return fmt.Sprintf("access conflict on %s: %s", e.Type, e.Detail)
}
