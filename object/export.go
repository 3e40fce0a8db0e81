package object

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/wippyai/kowtow/errors"
)

// Circular stands in for an object already being exported further up the
// current path.
const Circular = "[Circular]"

// Export converts an object graph into plain Go values: objects become
// map[string]any over their enumerable own data properties, arrays become
// []any, functions become "[Function name]", accessors "[Accessor]", and
// Undefined becomes nil. Shared references are exported once per path;
// cycles are cut with Circular. Property reads go through the reflective
// primitives, so exporting a shadow shows the shadow's view.
func Export(v Value) (any, error) {
	return exportValue(v, nil)
}

func exportValue(v Value, stack []Object) (any, error) {
	if IsUndefined(v) {
		return nil, nil
	}
	obj, ok := v.(Object)
	if !ok || obj == nil {
		return v, nil
	}
	for _, s := range stack {
		if SameValue(s, obj) {
			return Circular, nil
		}
	}
	stack = append(stack, obj)

	if IsCallable(obj) {
		name := ""
		if p, ok, err := obj.GetOwnProperty("name"); err != nil {
			return nil, err
		} else if ok {
			name, _ = p.Value.(string)
		}
		return fmt.Sprintf("[Function %s]", name), nil
	}

	if ClassOf(obj) == "Array" {
		lv, err := obj.Get("length", obj)
		if err != nil {
			return nil, err
		}
		n, _ := toLength(lv)
		out := make([]any, n)
		for i := 0; i < n; i++ {
			p, ok, err := obj.GetOwnProperty(strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			if !ok || p.IsAccessor() {
				continue
			}
			if out[i], err = exportValue(p.Value, stack); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	keys, err := obj.OwnKeys()
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		p, ok, err := obj.GetOwnProperty(k)
		if err != nil {
			return nil, err
		}
		if !ok || !p.Enumerable {
			continue
		}
		if p.IsAccessor() {
			out[k] = "[Accessor]"
			continue
		}
		if out[k], err = exportValue(p.Value, stack); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FromGo builds an object graph in realm r from decoded Go values: maps
// become objects (keys sorted), slices become arrays, primitives and existing
// objects pass through.
func FromGo(r *Realm, v any) (Value, error) {
	switch x := v.(type) {
	case nil, bool, string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return x, nil
	case Object:
		return x, nil
	case map[string]any:
		obj := r.NewObject()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child, err := FromGo(r, x[k])
			if err != nil {
				return nil, err
			}
			obj.props.Set(k, DataProperty(child))
		}
		return obj, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		return FromGo(r, m)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			child, err := FromGo(r, e)
			if err != nil {
				return nil, err
			}
			elems[i] = child
		}
		return r.NewArray(elems...), nil
	default:
		return nil, errors.New(errors.PhaseParse, errors.KindTypeMismatch).
			Type(fmt.Sprintf("%T", v)).
			Detail("unsupported Go value").
			Build()
	}
}
