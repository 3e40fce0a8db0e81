// Package registry tracks the identity associations of one shadow space.
//
// Every shadow gets a handle in a slice-backed table. Two indexes point into
// the table: one from the original object to its handle, one from the shadow
// to its handle. Together they answer "does this original already have a
// shadow here?" and "which overlay record belongs to this shadow?".
//
//	reg := registry.New()
//	h := reg.Register(original, shadow, record, "<root>")
//
//	s, ok := reg.Reuse(original)     // existing shadow, fires EventReused
//	rec, ok := reg.RecordOf(shadow)  // overlay record
//	orig, ok := reg.OriginalOf(shadow)
//
// # Observers
//
// Observers are notified when entries are created, reused and released:
//
//	reg.Subscribe(registry.ObserverFunc(func(e registry.Event) {
//	    log.Printf("%s %s", e.Type, e.Label)
//	}))
//
// # Lifetime
//
// Entries hold strong references. They live until Release or Clear is
// called, or until the registry itself becomes unreachable.
//
// Objects used as originals or shadows must have comparable dynamic types
// (pointer types in practice); Register refuses anything else.
package registry
