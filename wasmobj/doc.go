// Package wasmobj exposes the exported functions of a WebAssembly core module
// as objects of the dynamic object model.
//
//	mod, err := wasmobj.Load(ctx, realm, wasmBytes, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mod.Close(ctx)
//
//	sum, err := object.CallMethod(mod.Exports(), "add", 2, 3) // 5
//
// Arguments are numbers converted per parameter type: i32 and i64 take
// integral numbers, f32 and f64 take any number. Results come back as int
// (i32), int64 (i64) or float64 (f32, f64); several results come back as an
// array and no result as Undefined.
//
// The exports object is frozen. Shadows of it may still overlay exports,
// which never reaches the module.
package wasmobj
