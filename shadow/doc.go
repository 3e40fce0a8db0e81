// Package shadow implements lazy copy-on-write views over object graphs.
//
// A Space hands out shadows. A shadow stands in for one original object:
// reads fall through to the original until the shadow is written, writes
// and deletes land in the shadow's overlay record, and the original is
// never mutated through the shadow. Objects reached through a shadow
// (property values, descriptor values, delegates) are shadowed in turn
// within the same Space, so a whole graph is virtualized one edge at a time.
//
//	sp := shadow.NewSpace()
//	view := sp.Shadow(root).(object.Object)
//
//	_ = object.Put(view, "name", "changed") // root unchanged
//	v, _ := object.Get(view, "name")        // "changed"
//
// # Identity
//
// Within one Space every original has at most one shadow, so reference
// sharing and cycles in the original graph are preserved in the view.
// Passing a shadow back to its own Space returns it unchanged. Independent
// spaces never share shadows.
//
// # Functions
//
// Shadows of invocable originals are invocable, and shadows of constructible
// originals are constructible. Calls and constructions run the original with
// the given receiver or new-target, so instances built through a shadowed
// class delegate to the shadowed prototype.
//
// # Thread Safety
//
// A Space is NOT safe for concurrent use. Use one Space per goroutine or
// guard it externally.
package shadow
