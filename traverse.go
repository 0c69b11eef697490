package aegis

import (
	"bytes"
	"fmt"
	"reflect"
)

// containerID identifies a container on the active path. Slices are keyed on
// their backing array and length so that a prefix of a sequence is distinct
// from the sequence itself.
type containerID struct {
	ptr uintptr
	n   int
}

// walker performs one depth-first copy of a record.
type walker struct {
	shield  *Shield
	reverse bool
	stats   stats

	// active holds the identity of every container on the current path.
	active map[containerID]struct{}
	depth  int
}

func (s *Shield) newWalker(reverse bool) *walker {
	return &walker{
		shield:  s,
		reverse: reverse,
		active:  make(map[containerID]struct{}),
	}
}

// joinPath extends a dotted path with key.
func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// identity returns the container identity of rv. Arrays and empty slices
// hold no shared storage and return the zero identity.
func identity(rv reflect.Value) containerID {
	switch rv.Kind() {
	case reflect.Map:
		return containerID{ptr: rv.Pointer(), n: -1}
	case reflect.Slice:
		if rv.Len() == 0 {
			return containerID{}
		}
		return containerID{ptr: rv.Pointer(), n: rv.Len()}
	}
	return containerID{}
}

// enter marks a container as active, failing on cycles and excess depth.
func (w *walker) enter(path string, id containerID) error {
	if limit := w.shield.maxDepth; limit > 0 && w.depth >= limit {
		return newShapeError(ErrMaxDepth, path)
	}
	if id.ptr != 0 {
		if _, ok := w.active[id]; ok {
			return newShapeError(ErrCyclicRecord, path)
		}
		w.active[id] = struct{}{}
	}
	w.depth++
	return nil
}

func (w *walker) leave(id containerID) {
	w.depth--
	if id.ptr != 0 {
		delete(w.active, id)
	}
}

// mapping copies m, transforming every leaf below it.
func (w *walker) mapping(path string, m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	id := identity(reflect.ValueOf(m))
	if err := w.enter(path, id); err != nil {
		return nil, err
	}
	defer w.leave(id)

	out := make(map[string]any, len(m))
	for key, value := range m {
		v, err := w.value(joinPath(path, key), key, value)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

// sequence copies s element by element. Elements share the sequence's path
// and name; indices never extend the path.
func (w *walker) sequence(path, name string, s []any) ([]any, error) {
	if s == nil {
		return nil, nil
	}
	id := identity(reflect.ValueOf(s))
	if err := w.enter(path, id); err != nil {
		return nil, err
	}
	defer w.leave(id)

	out := make([]any, len(s))
	for i, elem := range s {
		v, err := w.value(path, name, elem)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// value dispatches on the closed set of record value kinds.
func (w *walker) value(path, name string, v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		return w.mapping(path, val)

	case []any:
		return w.sequence(path, name, val)

	case []map[string]any:
		if val == nil {
			return val, nil
		}
		out := make([]map[string]any, len(val))
		for i, m := range val {
			c, err := w.mapping(path, m)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil

	case []string:
		if val == nil {
			return val, nil
		}
		out := make([]string, len(val))
		for i, s := range val {
			c, err := w.shield.transformLeaf(path, name, s, w.reverse, &w.stats)
			if err != nil {
				return nil, err
			}
			// Transforms of a string always yield a string.
			out[i] = c.(string)
		}
		return out, nil

	case []byte:
		// Binary blobs are opaque; hand over a private copy.
		return w.shield.transformLeaf(path, name, bytes.Clone(val), w.reverse, &w.stats)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return w.container(path, name, rv)
	}
	return w.shield.transformLeaf(path, name, v, w.reverse, &w.stats)
}

// container copies a typed mapping or sequence such as map[string]string or
// []int, keeping its Go type. Mapping keys that are not strings are
// formatted with fmt to build paths.
func (w *walker) container(path, name string, rv reflect.Value) (any, error) {
	rt := rv.Type()
	if rv.Kind() != reflect.Array && rv.IsNil() {
		return rv.Interface(), nil
	}

	// Named byte slices such as json.RawMessage stay opaque.
	if rv.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8 {
		out := reflect.MakeSlice(rt, rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface(), nil
	}

	id := identity(rv)
	if err := w.enter(path, id); err != nil {
		return nil, err
	}
	defer w.leave(id)

	switch rv.Kind() {
	case reflect.Map:
		out := reflect.MakeMapWithSize(rt, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			k := fmt.Sprint(key.Interface())
			if key.Kind() == reflect.String {
				k = key.String()
			}
			c, err := w.value(joinPath(path, k), k, iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out.SetMapIndex(key, assignable(c, rt.Elem(), iter.Value()))
		}
		return out.Interface(), nil

	case reflect.Slice:
		out := reflect.MakeSlice(rt, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			c, err := w.value(path, name, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(assignable(c, rt.Elem(), rv.Index(i)))
		}
		return out.Interface(), nil

	default:
		out := reflect.New(rt).Elem()
		for i := 0; i < rv.Len(); i++ {
			c, err := w.value(path, name, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(assignable(c, rt.Elem(), rv.Index(i)))
		}
		return out.Interface(), nil
	}
}

// assignable converts a transformed element back to the container's element
// type. A result that no longer fits falls back to the original element.
func assignable(v any, elem reflect.Type, orig reflect.Value) reflect.Value {
	if v == nil {
		return reflect.Zero(elem)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(elem) {
		return rv
	}
	if rv.Type().ConvertibleTo(elem) {
		return rv.Convert(elem)
	}
	return orig
}
