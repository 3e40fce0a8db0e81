// Package kowtow provides lazy copy-on-write views over dynamic object graphs.
//
// A view (shadow) of an object behaves like the object for every reflective
// operation, but every write, define and delete made through it is kept in a
// per-shadow overlay. The original graph is never mutated through a view,
// and changes made to the original later remain visible wherever the view
// has not overridden them.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	kowtow/              Root package with CreateSpace and ShadowOnce
//	├── object/          Dynamic object model: properties, delegates, functions
//	├── shadow/          Space, shadow factory and interception traps
//	├── overlay/         Per-shadow write and tombstone record
//	├── registry/        Identity registry mapping originals and shadows
//	├── wasmobj/         WebAssembly module exports as callable objects
//	├── errors/          Structured error types for debugging
//	└── cmd/kowtow/      CLI for exploring shadows over YAML fixtures
//
// # Quick Start
//
//	realm := object.NewRealm()
//	root := realm.NewObject()
//	_ = object.Put(root, "name", "original")
//
//	view := kowtow.CreateSpace()
//	copy := view(root)
//
//	_ = object.Put(copy, "name", "changed")
//	v, _ := object.Get(root, "name") // "original"
//	v, _ = object.Get(copy, "name")  // "changed"
//
// # Identity
//
// Within one space every object has exactly one view: reference sharing and
// cycles survive, and passing a view back to its space returns it unchanged.
// Two spaces never share views. ShadowOnce uses a fresh space per call.
//
// # Functions and Classes
//
// Views of functions stay callable and constructible. Constructing through a
// viewed class produces instances whose delegate is the viewed prototype, so
// methods overridden on the view are picked up by those instances, and
// subclasses may extend a viewed class.
//
// # Error Handling
//
// Errors are structured with phase and kind:
//
//	err := object.DefineProperty(copy, "fixed", object.DataProperty(1))
//	if errors.IsRedefinition(err) {
//	    // the property is non-configurable on the original
//	}
//
// # Thread Safety
//
// Spaces and the objects of the model are NOT safe for concurrent use.
package kowtow
