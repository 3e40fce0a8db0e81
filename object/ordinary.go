package object

import (
	stderrors "errors"
	"sort"
	"strconv"

	"github.com/wippyai/kowtow/errors"
	"github.com/wippyai/kowtow/internal/ordmap"
)

// Ordinary is a plain prototype-delegating object.
type Ordinary struct {
	proto      Object
	self       Object
	props      ordmap.Map[Key, Property]
	class      string
	extensible bool
}

// NewOrdinary creates an empty object delegating to proto (nil for none).
func NewOrdinary(proto Object) *Ordinary {
	o := &Ordinary{proto: proto, class: "Object", extensible: true}
	o.self = o
	return o
}

// Class returns the class tag.
func (o *Ordinary) Class() string {
	return o.class
}

// GetOwnProperty returns the own record for key.
func (o *Ordinary) GetOwnProperty(key Key) (Property, bool, error) {
	p, ok := o.props.Get(key)
	return p, ok, nil
}

// DefineOwnProperty installs desc, refusing changes to non-configurable
// properties and additions to non-extensible objects.
func (o *Ordinary) DefineOwnProperty(key Key, desc Property) error {
	cur, ok := o.props.Get(key)
	if !ok {
		if !o.extensible {
			return errors.NotExtensible(key)
		}
		o.props.Set(key, desc)
		return nil
	}
	if !cur.Configurable {
		if desc.Configurable || desc.Enumerable != cur.Enumerable || desc.IsAccessor() != cur.IsAccessor() {
			return errors.Redefinition(key)
		}
		if cur.IsAccessor() {
			if !sameInvocable(desc.Getter, cur.Getter) || !sameInvocable(desc.Setter, cur.Setter) {
				return errors.Redefinition(key)
			}
		} else if !cur.Writable && (desc.Writable || !SameValue(desc.Value, cur.Value)) {
			return errors.Redefinition(key)
		}
	}
	o.props.Set(key, desc)
	return nil
}

// HasProperty reports whether key is own or inherited.
func (o *Ordinary) HasProperty(key Key) (bool, error) {
	if o.props.Has(key) {
		return true, nil
	}
	if o.proto == nil {
		return false, nil
	}
	return o.proto.HasProperty(key)
}

// Get reads key, walking the chain. Getters run with receiver as this.
func (o *Ordinary) Get(key Key, receiver Value) (Value, error) {
	if receiver == nil {
		receiver = o.self
	}
	p, ok := o.props.Get(key)
	if !ok {
		if o.proto == nil {
			return Undefined, nil
		}
		return o.proto.Get(key, receiver)
	}
	if p.IsAccessor() {
		if p.Getter == nil {
			return Undefined, nil
		}
		return p.Getter.Call(receiver, nil)
	}
	return p.Value, nil
}

// Set assigns value along the chain; the data slot is created or updated on
// receiver.
func (o *Ordinary) Set(key Key, value Value, receiver Value) (bool, error) {
	if receiver == nil {
		receiver = o.self
	}
	own, ok := o.props.Get(key)
	if !ok {
		if o.proto != nil {
			return o.proto.Set(key, value, receiver)
		}
		own = DataProperty(Undefined)
	}
	return setWithOwnProperty(key, value, receiver, own)
}

// setWithOwnProperty finishes an assignment once the record governing key has
// been found somewhere on the chain.
func setWithOwnProperty(key Key, value Value, receiver Value, own Property) (bool, error) {
	if own.IsAccessor() {
		if own.Setter == nil {
			return false, nil
		}
		if _, err := own.Setter.Call(receiver, []Value{value}); err != nil {
			return false, err
		}
		return true, nil
	}
	if !own.Writable {
		return false, nil
	}
	recv, ok := receiver.(Object)
	if !ok || recv == nil {
		return false, nil
	}
	existing, ok, err := recv.GetOwnProperty(key)
	if err != nil {
		return false, err
	}
	desc := DataProperty(value)
	if ok {
		if existing.IsAccessor() || !existing.Writable {
			return false, nil
		}
		desc = existing
		desc.Value = value
	}
	if err := recv.DefineOwnProperty(key, desc); err != nil {
		if stderrors.Is(err, errors.ErrRedefinition) || stderrors.Is(err, errors.ErrNotExtensible) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes an own configurable property.
func (o *Ordinary) Delete(key Key) (bool, error) {
	p, ok := o.props.Get(key)
	if !ok {
		return true, nil
	}
	if !p.Configurable {
		return false, nil
	}
	o.props.Delete(key)
	return true, nil
}

// OwnKeys lists array-index keys in ascending order, then the remaining keys
// in insertion order.
func (o *Ordinary) OwnKeys() ([]Key, error) {
	keys := o.props.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		ai, aok := arrayIndex(keys[i])
		bi, bok := arrayIndex(keys[j])
		if aok && bok {
			return ai < bi
		}
		return aok && !bok
	})
	return keys, nil
}

// GetPrototypeOf returns the delegate.
func (o *Ordinary) GetPrototypeOf() (Object, error) {
	return o.proto, nil
}

// SetPrototypeOf replaces the delegate unless the object is sealed or the
// change would create a delegate cycle.
func (o *Ordinary) SetPrototypeOf(proto Object) (bool, error) {
	if SameValue(proto, o.proto) {
		return true, nil
	}
	if !o.extensible {
		return false, nil
	}
	for p := proto; p != nil; {
		if SameValue(p, o.self) {
			return false, nil
		}
		next, err := p.GetPrototypeOf()
		if err != nil {
			return false, err
		}
		p = next
	}
	o.proto = proto
	return true, nil
}

// IsExtensible reports whether new properties may be added.
func (o *Ordinary) IsExtensible() (bool, error) {
	return o.extensible, nil
}

// PreventExtensions seals the object against new properties.
func (o *Ordinary) PreventExtensions() (bool, error) {
	o.extensible = false
	return true, nil
}

// arrayIndex parses canonical array-index keys ("0", "17"; not "01" or "-1").
func arrayIndex(key Key) (uint32, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return uint32(n), true
}
