package object

import (
	"github.com/wippyai/kowtow/errors"
)

// Realm owns the intrinsic prototypes objects delegate to.
type Realm struct {
	ObjectPrototype   *Ordinary
	FunctionPrototype *Ordinary
	ArrayPrototype    *Ordinary
}

// NewRealm creates a realm with fresh intrinsics. ObjectPrototype delegates
// to nothing.
func NewRealm() *Realm {
	objProto := NewOrdinary(nil)
	return &Realm{
		ObjectPrototype:   objProto,
		FunctionPrototype: NewOrdinary(objProto),
		ArrayPrototype:    NewOrdinary(objProto),
	}
}

// NewObject creates an empty object delegating to ObjectPrototype.
func (r *Realm) NewObject() *Ordinary {
	return NewOrdinary(r.ObjectPrototype)
}

// NewObjectWithProto creates an empty object delegating to proto.
func (r *Realm) NewObjectWithProto(proto Object) *Ordinary {
	return NewOrdinary(proto)
}

// NewArray creates an array holding elems.
func (r *Realm) NewArray(elems ...Value) *Array {
	return NewArray(r.ArrayPrototype, elems...)
}

// NewFunction creates a callable, constructible function with a fresh
// "prototype" object whose "constructor" points back at it.
func (r *Realm) NewFunction(name string, body NativeFunc) *Function {
	f := newFunction(r.FunctionPrototype, name, FunctionPlain, body)
	f.fallback = r.ObjectPrototype
	proto := NewOrdinary(r.ObjectPrototype)
	proto.props.Set("constructor", HiddenProperty(f))
	f.props.Set("prototype", Property{Value: proto, Writable: true})
	return f
}

// NewMethod creates a callable that refuses construction and has no
// "prototype".
func (r *Realm) NewMethod(name string, body NativeFunc) *Function {
	f := newFunction(r.FunctionPrototype, name, FunctionMethod, body)
	f.fallback = r.ObjectPrototype
	return f
}

// NewClass creates a constructor-only function. With a non-nil parent the
// class delegates to parent, its prototype delegates to parent.prototype, and
// construction runs the parent first with the same newTarget before body
// runs on the resulting instance.
func (r *Realm) NewClass(name string, parent Value, body NativeFunc) (*Function, error) {
	f := newFunction(r.FunctionPrototype, name, FunctionClass, body)
	f.fallback = r.ObjectPrototype

	var protoParent Object = r.ObjectPrototype
	if parent != nil {
		pc, ok := parent.(Constructible)
		po, isObj := parent.(Object)
		if !ok || !isObj {
			return nil, errors.NotConstructible(TypeName(parent))
		}
		pp, err := po.Get("prototype", po)
		if err != nil {
			return nil, err
		}
		switch v := pp.(type) {
		case nil:
			protoParent = nil
		case Object:
			protoParent = v
		default:
			return nil, errors.TypeMismatch(errors.PhaseConstruct, []string{name}, TypeName(pp), "parent prototype is not an object")
		}
		f.parent = pc
		f.proto = po
	}

	proto := NewOrdinary(protoParent)
	proto.props.Set("constructor", HiddenProperty(f))
	f.props.Set("prototype", Property{Value: proto})
	return f, nil
}
