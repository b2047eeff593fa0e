package document

// Lookup walks nested objects along path and reports whether every step
// exists. A present key holding null is reported as found with a nil value.
func Lookup(v any, path ...string) (any, bool) {
	cur := v
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := obj[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Object returns the object stored at path, or nil if it is missing or not
// an object.
func Object(v any, path ...string) map[string]any {
	found, ok := Lookup(v, path...)
	if !ok {
		return nil
	}
	obj, _ := found.(map[string]any)
	return obj
}

// Array returns the array stored at path and whether it was one.
func Array(v any, path ...string) ([]any, bool) {
	found, ok := Lookup(v, path...)
	if !ok {
		return nil, false
	}
	arr, ok := found.([]any)
	return arr, ok
}

// EnsureObject returns the object under key in parent, replacing a missing or
// non-object value with a new empty object.
func EnsureObject(parent map[string]any, key string) map[string]any {
	if obj, ok := parent[key].(map[string]any); ok {
		return obj
	}
	obj := map[string]any{}
	parent[key] = obj
	return obj
}

// DeepCopy returns a copy of v that shares no objects or arrays with it.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = DeepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = DeepCopy(item)
		}
		return out
	default:
		return v
	}
}

// CopyTree deep-copies a whole tree.
func CopyTree(t Tree) Tree {
	if t == nil {
		return nil
	}
	return DeepCopy(t).(map[string]any)
}
