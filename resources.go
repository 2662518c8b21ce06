package stratum

import "reflect"

// resources is the World's singleton-by-type map (spec.md §3's
// `resources: map<TypeId, ErasedValue>`). Lifecycle is the World's lifetime
// — there is no separate registration step beyond InsertResource.
type resources struct {
	values map[reflect.Type]any
}

func newResources() resources {
	return resources{values: make(map[reflect.Type]any)}
}

// InsertResource stores v as the singleton value of type T, replacing any
// prior value of that type. Resources are boxed behind a pointer internally
// so GetResourcePtr can hand out a stable address for ResMut to write
// through.
func InsertResource[T any](w *World, v T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	w.resources.values[t] = &v
}

// GetResource returns a copy of the singleton value of type T, or false if
// none has been inserted (a data-miss condition, not a panic — spec.md §7).
func GetResource[T any](w *World) (T, bool) {
	p, ok := GetResourcePtr[T](w)
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

// GetResourcePtr returns the live address of the singleton value of type T,
// or false if none has been inserted. ResMut uses this to write through.
func GetResourcePtr[T any](w *World) (*T, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, ok := w.resources.values[t]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// RemoveResource deletes the singleton value of type T, if present.
func RemoveResource[T any](w *World) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	delete(w.resources.values, t)
}
