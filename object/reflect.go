package object

import (
	"github.com/wippyai/kowtow/errors"
)

func asObject(phase errors.Phase, v Value) (Object, error) {
	obj, ok := v.(Object)
	if !ok || obj == nil {
		return nil, errors.TypeMismatch(phase, nil, TypeName(v), "value is not an object")
	}
	return obj, nil
}

// Get reads key from v with v as receiver.
func Get(v Value, key Key) (Value, error) {
	obj, err := asObject(errors.PhaseRead, v)
	if err != nil {
		return nil, err
	}
	return obj.Get(key, obj)
}

// GetPath reads a chain of keys, failing on the first primitive link.
func GetPath(v Value, path ...Key) (Value, error) {
	cur := v
	for _, key := range path {
		next, err := Get(cur, key)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Set assigns value to key with v as receiver and reports whether the
// assignment took effect.
func Set(v Value, key Key, value Value) (bool, error) {
	obj, err := asObject(errors.PhaseWrite, v)
	if err != nil {
		return false, err
	}
	return obj.Set(key, value, obj)
}

// Put is a strict assignment: a refused write becomes a read-only error.
func Put(v Value, key Key, value Value) error {
	ok, err := Set(v, key, value)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ReadOnly(key)
	}
	return nil
}

// Has reports whether key is visible on v or its delegate chain.
func Has(v Value, key Key) (bool, error) {
	obj, err := asObject(errors.PhaseRead, v)
	if err != nil {
		return false, err
	}
	return obj.HasProperty(key)
}

// HasOwn reports whether v has an own property key.
func HasOwn(v Value, key Key) (bool, error) {
	_, ok, err := Describe(v, key)
	return ok, err
}

// DeleteProperty removes the own property key from v.
func DeleteProperty(v Value, key Key) (bool, error) {
	obj, err := asObject(errors.PhaseDelete, v)
	if err != nil {
		return false, err
	}
	return obj.Delete(key)
}

// DefineProperty installs desc as the own record for key on v.
func DefineProperty(v Value, key Key, desc Property) error {
	obj, err := asObject(errors.PhaseDefine, v)
	if err != nil {
		return err
	}
	return obj.DefineOwnProperty(key, desc)
}

// Describe returns the own attribute-record for key on v.
func Describe(v Value, key Key) (Property, bool, error) {
	obj, err := asObject(errors.PhaseRead, v)
	if err != nil {
		return Property{}, false, err
	}
	return obj.GetOwnProperty(key)
}

// Keys lists the own keys of v.
func Keys(v Value) ([]Key, error) {
	obj, err := asObject(errors.PhaseRead, v)
	if err != nil {
		return nil, err
	}
	return obj.OwnKeys()
}

// PrototypeOf returns the delegate of v.
func PrototypeOf(v Value) (Object, error) {
	obj, err := asObject(errors.PhaseDelegate, v)
	if err != nil {
		return nil, err
	}
	return obj.GetPrototypeOf()
}

// SetPrototypeOf replaces the delegate of v.
func SetPrototypeOf(v Value, proto Object) (bool, error) {
	obj, err := asObject(errors.PhaseDelegate, v)
	if err != nil {
		return false, err
	}
	return obj.SetPrototypeOf(proto)
}

// Call invokes fn with the given receiver.
func Call(fn Value, this Value, args ...Value) (Value, error) {
	c, ok := fn.(Invocable)
	if !ok {
		return nil, errors.NotCallable(errors.PhaseInvoke, TypeName(fn))
	}
	return c.Call(this, args)
}

// CallMethod reads name from v and invokes it with v as receiver.
func CallMethod(v Value, name Key, args ...Value) (Value, error) {
	fn, err := Get(v, name)
	if err != nil {
		return nil, err
	}
	if !IsCallable(fn) {
		return nil, errors.New(errors.PhaseInvoke, errors.KindNotCallable).
			Key(name).
			Type(TypeName(fn)).
			Detail("property is not a function").
			Build()
	}
	return Call(fn, v, args...)
}

// Construct creates an instance of fn with fn as newTarget.
func Construct(fn Value, args ...Value) (Value, error) {
	target, ok := fn.(Object)
	if !ok {
		return nil, errors.NotConstructible(TypeName(fn))
	}
	return ConstructWith(fn, target, args...)
}

// ConstructWith creates an instance of fn whose delegate comes from
// newTarget's "prototype".
func ConstructWith(fn Value, newTarget Object, args ...Value) (Value, error) {
	c, ok := fn.(Constructible)
	if !ok {
		return nil, errors.NotConstructible(TypeName(fn))
	}
	return c.Construct(args, newTarget)
}

// ObjectCreate creates an empty object delegating to proto.
func ObjectCreate(proto Object) *Ordinary {
	return NewOrdinary(proto)
}
