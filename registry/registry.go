package registry

import (
	"reflect"
	"sync"

	"github.com/wippyai/kowtow/object"
	"github.com/wippyai/kowtow/overlay"
)

// Registry maps originals to shadows and shadows to overlay records.
type Registry struct {
	byOriginal map[object.Object]Handle
	byShadow   map[object.Object]Handle
	entries    []entry
	freeList   []Handle
	observers  []Observer
	mu         sync.RWMutex
	obsMu      sync.RWMutex
}

type entry struct {
	Entry
	valid bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byOriginal: make(map[object.Object]Handle),
		byShadow:   make(map[object.Object]Handle),
		entries:    make([]entry, 0, 64),
		freeList:   make([]Handle, 0, 16),
	}
}

// Comparable reports whether v can be used as an original or shadow. The
// check looks at the dynamic value, so a struct whose interface field holds
// a slice or map is rejected even though its type is comparable.
func Comparable(v object.Object) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Comparable()
}

// Register associates original with shadow and its record, returning the
// entry's handle. Registering an original that is already known returns the
// existing handle unchanged. It returns 0 for objects that cannot be indexed.
func (r *Registry) Register(original, shadow object.Object, rec *overlay.Record, label string) Handle {
	if !Comparable(original) || !Comparable(shadow) {
		return 0
	}

	r.mu.Lock()
	if h, ok := r.byOriginal[original]; ok {
		r.mu.Unlock()
		return h
	}

	e := entry{
		Entry: Entry{Original: original, Shadow: shadow, Record: rec, Label: label},
		valid: true,
	}

	var handle Handle
	if len(r.freeList) > 0 {
		handle = r.freeList[len(r.freeList)-1]
		r.freeList = r.freeList[:len(r.freeList)-1]
		r.entries[handle-1] = e
	} else {
		r.entries = append(r.entries, e)
		handle = Handle(len(r.entries))
	}
	r.byOriginal[original] = handle
	r.byShadow[shadow] = handle
	r.mu.Unlock()

	r.notify(Event{Entry: e.Entry, Handle: handle, Type: EventCreated})
	return handle
}

// Reuse returns the shadow already registered for original and fires
// EventReused.
func (r *Registry) Reuse(original object.Object) (object.Object, bool) {
	r.mu.RLock()
	h, e, ok := r.lookup(r.byOriginal, original)
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	r.notify(Event{Entry: e, Handle: h, Type: EventReused})
	return e.Shadow, true
}

// ShadowOf returns the shadow registered for original without firing events.
func (r *Registry) ShadowOf(original object.Object) (object.Object, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, e, ok := r.lookup(r.byOriginal, original)
	return e.Shadow, ok
}

// RecordOf returns the overlay record of shadow.
func (r *Registry) RecordOf(shadow object.Object) (*overlay.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, e, ok := r.lookup(r.byShadow, shadow)
	return e.Record, ok
}

// OriginalOf returns the original that shadow stands in for.
func (r *Registry) OriginalOf(shadow object.Object) (object.Object, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, e, ok := r.lookup(r.byShadow, shadow)
	return e.Original, ok
}

// Lookup returns the entry of shadow.
func (r *Registry) Lookup(shadow object.Object) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, e, ok := r.lookup(r.byShadow, shadow)
	return e, ok
}

// HandleOf returns the handle of the entry whose shadow is shadow.
func (r *Registry) HandleOf(shadow object.Object) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, _, ok := r.lookup(r.byShadow, shadow)
	return h, ok
}

// Contains reports whether shadow is registered.
func (r *Registry) Contains(shadow object.Object) bool {
	_, ok := r.Lookup(shadow)
	return ok
}

// Get retrieves an entry by handle.
func (r *Registry) Get(handle Handle) (Entry, bool) {
	if handle == 0 {
		return Entry{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(r.entries) {
		return Entry{}, false
	}
	e := r.entries[idx]
	if !e.valid {
		return Entry{}, false
	}
	return e.Entry, true
}

// Release drops an entry and fires EventReleased.
func (r *Registry) Release(handle Handle) bool {
	if handle == 0 {
		return false
	}

	r.mu.Lock()
	idx := handle - 1
	if int(idx) >= len(r.entries) || !r.entries[idx].valid {
		r.mu.Unlock()
		return false
	}
	e := r.entries[idx].Entry
	r.entries[idx] = entry{}
	delete(r.byOriginal, e.Original)
	delete(r.byShadow, e.Shadow)
	r.freeList = append(r.freeList, handle)
	r.mu.Unlock()

	r.notify(Event{Entry: e, Handle: handle, Type: EventReleased})
	return true
}

// Clear releases every entry.
func (r *Registry) Clear() {
	r.mu.Lock()
	var released []Event
	for i, e := range r.entries {
		if e.valid {
			released = append(released, Event{Entry: e.Entry, Handle: Handle(i + 1), Type: EventReleased})
		}
	}
	clear(r.entries)
	r.entries = r.entries[:0]
	r.freeList = r.freeList[:0]
	clear(r.byOriginal)
	clear(r.byShadow)
	r.mu.Unlock()

	for _, ev := range released {
		r.notify(ev)
	}
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byOriginal)
}

// Each iterates over live entries in handle order until fn returns false.
func (r *Registry) Each(fn func(Handle, Entry) bool) {
	r.mu.RLock()
	snapshot := make([]entry, len(r.entries))
	copy(snapshot, r.entries)
	r.mu.RUnlock()

	for i, e := range snapshot {
		if e.valid {
			if !fn(Handle(i+1), e.Entry) {
				return
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer. Observers with non-comparable types,
// such as ObserverFunc, cannot be removed.
func (r *Registry) Unsubscribe(o Observer) {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return
	}
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if reflect.TypeOf(obs) == reflect.TypeOf(o) && obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// lookup must be called with mu held.
func (r *Registry) lookup(index map[object.Object]Handle, key object.Object) (Handle, Entry, bool) {
	if !Comparable(key) {
		return 0, Entry{}, false
	}
	h, ok := index[key]
	if !ok {
		return 0, Entry{}, false
	}
	return h, r.entries[h-1].Entry, true
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.obsMu.RUnlock()

	for _, o := range observers {
		o.OnRegistryEvent(e)
	}
}
