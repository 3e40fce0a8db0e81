package object

// Readable is the lookup side of an object.
type Readable interface {
	// Get reads key, walking the delegate chain and calling getters with receiver.
	Get(key Key, receiver Value) (Value, error)

	// GetOwnProperty returns the own attribute-record for key without calling getters.
	GetOwnProperty(key Key) (Property, bool, error)

	// HasProperty reports whether key is visible on the object or its chain.
	HasProperty(key Key) (bool, error)
}

// Writable is the mutation side of an object.
type Writable interface {
	// Set assigns value to key; the write lands on receiver. It reports false
	// when the assignment was refused (read-only slot, missing setter).
	Set(key Key, value Value, receiver Value) (bool, error)

	// DefineOwnProperty installs desc as the own record for key.
	DefineOwnProperty(key Key, desc Property) error
}

// Deletable removes own properties.
type Deletable interface {
	// Delete removes the own property key. It reports false when the property
	// exists and is not configurable.
	Delete(key Key) (bool, error)
}

// Enumerable lists own keys.
type Enumerable interface {
	OwnKeys() ([]Key, error)
}

// Delegating covers the delegate link and extensibility.
type Delegating interface {
	GetPrototypeOf() (Object, error)
	SetPrototypeOf(proto Object) (bool, error)
	IsExtensible() (bool, error)
	PreventExtensions() (bool, error)
}

// Object is a value with identity supporting every reflective primitive.
type Object interface {
	Readable
	Writable
	Deletable
	Enumerable
	Delegating
}

// Invocable values can be called.
type Invocable interface {
	Call(this Value, args []Value) (Value, error)
}

// Constructible values can create instances. newTarget supplies the
// prototype of the new instance through its "prototype" property.
type Constructible interface {
	Construct(args []Value, newTarget Object) (Value, error)
}

// Callable is an invocable object.
type Callable interface {
	Object
	Invocable
}

// Constructor is a callable, constructible object.
type Constructor interface {
	Callable
	Constructible
}
