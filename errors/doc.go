// Package errors provides structured error types for the kowtow library.
//
// Errors are categorized by Phase (which reflective operation was running) and
// Kind (error category). The Error type carries the property key, the path of
// labels leading to the value, the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDefine, errors.KindRedefinition).
//		Key("length").
//		Path("<root>", "items").
//		Detail("property is not configurable").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Redefinition("length")
//	err := errors.NotCallable(errors.PhaseInvoke, "object")
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching is by Phase and Kind, so errors.Is(err, errors.ErrRedefinition)
// holds for every redefinition failure regardless of key.
package errors
