// Package object implements a small prototype-based dynamic object model.
//
// The model exposes the reflective primitives a copy-on-write layer needs to
// intercept: own-property lookup and definition, chain-walking get/set/has,
// deletion, own-key enumeration, delegate (prototype) links, extensibility,
// invocation and construction.
//
// # Values
//
// A Value is any Go value. nil is null, Undefined is the absent marker, and
// bool, numbers and strings are primitives. Anything implementing Object is an
// object with identity:
//
//	realm := object.NewRealm()
//	user := realm.NewObject()
//	_ = object.Put(user, "name", "Ada")
//	name, _ := object.Get(user, "name") // "Ada"
//
// # Capabilities
//
// Object is the union of Readable, Writable, Deletable, Enumerable and
// Delegating. Invocable and Constructible are optional: functions created by a
// Realm implement both, methods refuse Construct, classes refuse Call.
//
// # Receivers
//
// Get and Set take an explicit receiver, the value getters and setters see as
// this and the object a data write finally lands on. A nil receiver means the
// object itself. Writes that reach an inherited writable data property create
// an own property on the receiver, so
//
//	child := object.ObjectCreate(parent)
//	_ = object.Put(child, "x", 1)
//
// leaves parent untouched.
//
// # Identity
//
// Objects are compared by identity. Implementations must be pointer types (or
// otherwise comparable) because identity registries key maps on them.
package object
