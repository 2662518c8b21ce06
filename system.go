package stratum

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
)

// accessSet is the statically-derived read/write footprint of one system's
// parameters, over both components and resources (spec.md §4.6). Stage
// scheduling intersects pairs of these to decide which systems may run
// concurrently.
type accessSet struct {
	componentsConst map[reflect.Type]struct{}
	componentsMut   map[reflect.Type]struct{}
	resourcesConst  map[reflect.Type]struct{}
	resourcesMut    map[reflect.Type]struct{}
}

func newAccessSet() *accessSet {
	return &accessSet{
		componentsConst: map[reflect.Type]struct{}{},
		componentsMut:   map[reflect.Type]struct{}{},
		resourcesConst:  map[reflect.Type]struct{}{},
		resourcesMut:    map[reflect.Type]struct{}{},
	}
}

// markComponentConst panics if t is already in this same set's write access
// — a system declaring both Query<&Health> and Query<&mut Health> across its
// parameter list is the same access-soundness violation as requesting &mut
// Health twice (spec.md §4.5/§8 S5), just approached from the read side.
// QuerySet bypasses this by validating each inner query against its own
// fresh set and merging the results with mergeFrom instead of re-deriving
// through this method.
func (a *accessSet) markComponentConst(t reflect.Type) {
	if _, ok := a.componentsMut[t]; ok {
		panic(bark.AddTrace(accessConflictError{Type: t, Detail: "component requested as both &T and &mut T by the same system"}))
	}
	a.componentsConst[t] = struct{}{}
}

// markComponentMut panics if t is already in this same set's write access or
// its read access, since a single query borrowing &mut T twice, or a system
// combining Query<&mut T> with Query<&T>, are both the bug spec.md §4.5
// names (inserting an already-present type into types_mut). QuerySet
// bypasses this by validating each inner query against its own fresh set and
// merging the results with mergeFrom instead of re-deriving through this
// method.
func (a *accessSet) markComponentMut(t reflect.Type) {
	if _, ok := a.componentsMut[t]; ok {
		panic(bark.AddTrace(accessConflictError{Type: t, Detail: "component requested &mut more than once by the same query"}))
	}
	if _, ok := a.componentsConst[t]; ok {
		panic(bark.AddTrace(accessConflictError{Type: t, Detail: "component requested as both &T and &mut T by the same system"}))
	}
	a.componentsMut[t] = struct{}{}
}

// markResourceConst mirrors markComponentConst for resources.
func (a *accessSet) markResourceConst(t reflect.Type) {
	if _, ok := a.resourcesMut[t]; ok {
		panic(bark.AddTrace(accessConflictError{Type: t, Detail: "resource requested as both Res and ResMut by the same system"}))
	}
	a.resourcesConst[t] = struct{}{}
}

// markResourceMut mirrors markComponentMut for resources.
func (a *accessSet) markResourceMut(t reflect.Type) {
	if _, ok := a.resourcesMut[t]; ok {
		panic(bark.AddTrace(accessConflictError{Type: t, Detail: "resource requested &mut more than once by the same query"}))
	}
	if _, ok := a.resourcesConst[t]; ok {
		panic(bark.AddTrace(accessConflictError{Type: t, Detail: "resource requested as both Res and ResMut by the same system"}))
	}
	a.resourcesMut[t] = struct{}{}
}

// mergeFrom folds other's access into a without re-running the self-overlap
// checks markComponentMut/markResourceMut perform — the one operation
// QuerySet needs, since its inner queries are each valid in isolation and
// only their union is reported outward (spec.md §4.5).
func (a *accessSet) mergeFrom(other *accessSet) {
	for t := range other.componentsConst {
		a.componentsConst[t] = struct{}{}
	}
	for t := range other.componentsMut {
		a.componentsMut[t] = struct{}{}
	}
	for t := range other.resourcesConst {
		a.resourcesConst[t] = struct{}{}
	}
	for t := range other.resourcesMut {
		a.resourcesMut[t] = struct{}{}
	}
}

func intersects(a, b map[reflect.Type]struct{}) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for t := range small {
		if _, ok := big[t]; ok {
			return true
		}
	}
	return false
}

// conflicts reports whether a and b may not run concurrently: any type
// either writes that the other touches at all, for both components and
// resources (the multiple-readers-xor-single-writer rule, spec.md §4.6).
func (a *accessSet) conflicts(b *accessSet) bool {
	if intersects(a.componentsMut, b.componentsMut) ||
		intersects(a.componentsMut, b.componentsConst) ||
		intersects(a.componentsConst, b.componentsMut) {
		return true
	}
	if intersects(a.resourcesMut, b.resourcesMut) ||
		intersects(a.resourcesMut, b.resourcesConst) ||
		intersects(a.resourcesConst, b.resourcesMut) {
		return true
	}
	return false
}

// queryLike is satisfied by every system-parameter type: Query1..Query4,
// QuerySet2..QuerySet4, Res, ResMut and Commands. bindNew constructs a fresh,
// live instance scoped to one system invocation, the Go-without-a-borrow-
// checker answer spec.md's design notes call "bind a query to world on each
// call" (strategy i).
type queryLike[S any] interface {
	accessConst(*accessSet)
	accessMut(*accessSet)
	bindNew(w *World, cmds *CommandBuffer) S
}

// ErasedSystem is a system reduced to its name, its statically-derived
// access set, and a closure that binds fresh parameters and runs the body
// (spec.md §4.6). Stage conflict analysis only ever touches the access set;
// run is opaque.
type ErasedSystem struct {
	Name   string
	access *accessSet
	run    func(w *World, cmds *CommandBuffer)
}

func buildAccess(parts ...func(*accessSet)) *accessSet {
	as := newAccessSet()
	for _, p := range parts {
		p(as)
	}
	return as
}

// System1 builds a system from a single parameter blueprint. The blueprint's
// own access methods determine the system's declared footprint once, at
// stage-construction time; fn receives a freshly bound copy on every stage
// run.
func System1[A queryLike[A]](name string, a A, fn func(A)) *ErasedSystem {
	return &ErasedSystem{
		Name:   name,
		access: buildAccess(a.accessConst, a.accessMut),
		run: func(w *World, cmds *CommandBuffer) {
			fn(a.bindNew(w, cmds))
		},
	}
}

// System2 builds a system from two parameter blueprints.
func System2[A queryLike[A], B queryLike[B]](name string, a A, b B, fn func(A, B)) *ErasedSystem {
	return &ErasedSystem{
		Name:   name,
		access: buildAccess(a.accessConst, a.accessMut, b.accessConst, b.accessMut),
		run: func(w *World, cmds *CommandBuffer) {
			fn(a.bindNew(w, cmds), b.bindNew(w, cmds))
		},
	}
}

// System3 builds a system from three parameter blueprints.
func System3[A queryLike[A], B queryLike[B], C queryLike[C]](name string, a A, b B, c C, fn func(A, B, C)) *ErasedSystem {
	return &ErasedSystem{
		Name: name,
		access: buildAccess(a.accessConst, a.accessMut, b.accessConst, b.accessMut,
			c.accessConst, c.accessMut),
		run: func(w *World, cmds *CommandBuffer) {
			fn(a.bindNew(w, cmds), b.bindNew(w, cmds), c.bindNew(w, cmds))
		},
	}
}

// System4 builds a system from four parameter blueprints, the arity budget
// stratum shares with Query and Bundle.
func System4[A queryLike[A], B queryLike[B], C queryLike[C], D queryLike[D]](name string, a A, b B, c C, d D, fn func(A, B, C, D)) *ErasedSystem {
	return &ErasedSystem{
		Name: name,
		access: buildAccess(a.accessConst, a.accessMut, b.accessConst, b.accessMut,
			c.accessConst, c.accessMut, d.accessConst, d.accessMut),
		run: func(w *World, cmds *CommandBuffer) {
			fn(a.bindNew(w, cmds), b.bindNew(w, cmds), c.bindNew(w, cmds), d.bindNew(w, cmds))
		},
	}
}

// Res is a read-only handle to the world resource of type T, bound fresh on
// every system invocation.
type Res[T any] struct {
	v *T
}

func (Res[T]) accessConst(as *accessSet) { as.markResourceConst(typeOf[T]()) }
func (Res[T]) accessMut(*accessSet)      {}

func (Res[T]) bindNew(w *World, _ *CommandBuffer) Res[T] {
	v, _ := GetResourcePtr[T](w)
	return Res[T]{v: v}
}

// Get returns the resource value, or false if it was never inserted.
func (r Res[T]) Get() (T, bool) {
	if r.v == nil {
		var zero T
		return zero, false
	}
	return *r.v, true
}

// ResMut is a read-write handle to the world resource of type T.
type ResMut[T any] struct {
	v *T
}

func (ResMut[T]) accessConst(*accessSet)   {}
func (ResMut[T]) accessMut(as *accessSet) { as.markResourceMut(typeOf[T]()) }

func (ResMut[T]) bindNew(w *World, _ *CommandBuffer) ResMut[T] {
	v, _ := GetResourcePtr[T](w)
	return ResMut[T]{v: v}
}

// Get returns the resource value, or false if it was never inserted.
func (r ResMut[T]) Get() (T, bool) {
	if r.v == nil {
		var zero T
		return zero, false
	}
	return *r.v, true
}

// Set overwrites the resource value in place. A no-op if it was never
// inserted — ResMut never creates a resource, it only mutates one.
func (r ResMut[T]) Set(v T) {
	if r.v != nil {
		*r.v = v
	}
}
