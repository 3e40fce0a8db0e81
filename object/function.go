package object

import (
	"fmt"

	"github.com/wippyai/kowtow/errors"
)

// NativeFunc is the Go body of a function object.
type NativeFunc func(this Value, args []Value) (Value, error)

// FunctionKind controls how a function may be used.
type FunctionKind uint8

const (
	// FunctionPlain can be called and constructed.
	FunctionPlain FunctionKind = iota
	// FunctionMethod can only be called.
	FunctionMethod
	// FunctionClass can only be constructed.
	FunctionClass
)

// Function is an ordinary object with a native body.
type Function struct {
	*Ordinary
	fallback Object
	parent   Constructible
	body     NativeFunc
	name     string
	kind     FunctionKind
}

func newFunction(proto Object, name string, kind FunctionKind, body NativeFunc) *Function {
	f := &Function{Ordinary: NewOrdinary(proto), name: name, kind: kind, body: body}
	f.class = "Function"
	f.self = f
	f.props.Set("name", Property{Value: name, Configurable: true})
	return f
}

// Name returns the function name.
func (f *Function) Name() string {
	return f.name
}

// Kind returns how the function may be used.
func (f *Function) Kind() FunctionKind {
	return f.kind
}

// Prototype returns the object stored in the "prototype" slot, if any.
func (f *Function) Prototype() Object {
	p, ok := f.props.Get("prototype")
	if !ok {
		return nil
	}
	obj, _ := p.Value.(Object)
	return obj
}

// Call runs the body with this bound to the given receiver.
func (f *Function) Call(this Value, args []Value) (Value, error) {
	if f.kind == FunctionClass {
		return nil, errors.New(errors.PhaseInvoke, errors.KindNotCallable).
			Type("class").
			Detail("class constructor %s cannot be invoked without construct", f.name).
			Build()
	}
	if f.body == nil {
		return Undefined, nil
	}
	return f.body(this, args)
}

// Construct creates an instance whose delegate is newTarget's "prototype".
// Classes with a parent let the parent build the instance first.
func (f *Function) Construct(args []Value, newTarget Object) (Value, error) {
	if f.kind == FunctionMethod {
		return nil, errors.NotConstructible(fmt.Sprintf("method %s", f.name))
	}
	if newTarget == nil {
		newTarget = f
	}

	var this Object
	if f.parent != nil {
		inst, err := f.parent.Construct(args, newTarget)
		if err != nil {
			return nil, err
		}
		obj, ok := inst.(Object)
		if !ok || obj == nil {
			return nil, errors.TypeMismatch(errors.PhaseConstruct, nil, TypeName(inst), "parent constructor returned a primitive")
		}
		this = obj
	} else {
		proto, err := instancePrototype(newTarget, f.fallback)
		if err != nil {
			return nil, err
		}
		this = NewOrdinary(proto)
	}

	if f.body == nil {
		return this, nil
	}
	res, err := f.body(this, args)
	if err != nil {
		return nil, err
	}
	if obj, ok := res.(Object); ok && obj != nil {
		return obj, nil
	}
	return this, nil
}

func instancePrototype(newTarget Object, fallback Object) (Object, error) {
	v, err := newTarget.Get("prototype", newTarget)
	if err != nil {
		return nil, err
	}
	if obj, ok := v.(Object); ok && obj != nil {
		return obj, nil
	}
	return fallback, nil
}
