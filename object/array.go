package object

import (
	"math"
	"strconv"

	"github.com/wippyai/kowtow/errors"
)

// Array is an ordinary object whose non-enumerable "length" tracks the
// highest index plus one. Writing a smaller length drops trailing elements.
type Array struct {
	*Ordinary
}

// NewArray creates an array delegating to proto holding elems.
func NewArray(proto Object, elems ...Value) *Array {
	a := &Array{Ordinary: NewOrdinary(proto)}
	a.class = "Array"
	a.self = a
	for i, e := range elems {
		a.props.Set(strconv.Itoa(i), DataProperty(e))
	}
	a.props.Set("length", Property{Value: len(elems), Writable: true})
	return a
}

// Len returns the current length.
func (a *Array) Len() int {
	p, _ := a.props.Get("length")
	n, _ := p.Value.(int)
	return n
}

// DefineOwnProperty keeps length and indices consistent.
func (a *Array) DefineOwnProperty(key Key, desc Property) error {
	cur, _ := a.props.Get("length")
	if key == "length" {
		if desc.IsAccessor() {
			return errors.Redefinition(key)
		}
		n, ok := toLength(desc.Value)
		if !ok {
			return errors.New(errors.PhaseDefine, errors.KindInvalidInput).
				Key(key).
				Value(desc.Value).
				Detail("invalid array length").
				Build()
		}
		old := a.Len()
		if n != old && !cur.Writable {
			return errors.Redefinition(key)
		}
		desc.Value = n
		if err := a.Ordinary.DefineOwnProperty(key, desc); err != nil {
			return err
		}
		for i := old - 1; i >= n; i-- {
			a.props.Delete(strconv.Itoa(i))
		}
		return nil
	}
	if idx, ok := arrayIndex(key); ok {
		if int(idx) >= a.Len() && !cur.Writable {
			return errors.Redefinition(key)
		}
		if err := a.Ordinary.DefineOwnProperty(key, desc); err != nil {
			return err
		}
		if int(idx) >= a.Len() {
			cur.Value = int(idx) + 1
			a.props.Set("length", cur)
		}
		return nil
	}
	return a.Ordinary.DefineOwnProperty(key, desc)
}

func toLength(v Value) (int, bool) {
	f, ok := ToNumber(v)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0, false
	}
	return int(f), true
}
