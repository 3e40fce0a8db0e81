// Package overlay holds the per-shadow record of pending writes and
// tombstoned deletions.
package overlay

import (
	"github.com/wippyai/kowtow/internal/ordmap"
	"github.com/wippyai/kowtow/object"
)

// Record is the overlay of one shadow: writes keyed by property in
// insertion order, and the set of keys deleted relative to the original.
// A key is never both written and deleted.
//
// Record is not safe for concurrent use.
type Record struct {
	writes  ordmap.Map[object.Key, object.Property]
	deletes ordmap.Map[object.Key, struct{}]
}

// New creates an empty record.
func New() *Record {
	return &Record{}
}

// Write stores p as the overlaid record for key, clearing any tombstone.
func (r *Record) Write(key object.Key, p object.Property) {
	r.deletes.Delete(key)
	r.writes.Set(key, p)
}

// Tombstone drops any pending write for key and marks it deleted.
func (r *Record) Tombstone(key object.Key) {
	r.writes.Delete(key)
	r.deletes.Set(key, struct{}{})
}

// Forget drops a pending write for key without tombstoning it.
func (r *Record) Forget(key object.Key) {
	r.writes.Delete(key)
}

// Lookup returns the pending write for key.
func (r *Record) Lookup(key object.Key) (object.Property, bool) {
	return r.writes.Get(key)
}

// Deleted reports whether key is tombstoned.
func (r *Record) Deleted(key object.Key) bool {
	return r.deletes.Has(key)
}

// WriteKeys returns the written keys in insertion order.
func (r *Record) WriteKeys() []object.Key {
	return r.writes.Keys()
}

// DeletedKeys returns the tombstoned keys in the order they were deleted.
func (r *Record) DeletedKeys() []object.Key {
	return r.deletes.Keys()
}

// Len returns the number of writes plus tombstones.
func (r *Record) Len() int {
	return r.writes.Len() + r.deletes.Len()
}

// Reset discards every write and tombstone.
func (r *Record) Reset() {
	r.writes.Clear()
	r.deletes.Clear()
}

// Merge applies the record to an original key list: the original keys keep
// their order, written keys not already present follow in write order, and
// tombstoned keys are removed. Duplicates are dropped.
func (r *Record) Merge(keys []object.Key) []object.Key {
	out := make([]object.Key, 0, len(keys)+r.writes.Len())
	seen := make(map[object.Key]struct{}, len(keys)+r.writes.Len())
	add := func(k object.Key) {
		if _, dup := seen[k]; dup || r.deletes.Has(k) {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	for _, k := range keys {
		add(k)
	}
	r.writes.Each(func(k object.Key, _ object.Property) bool {
		add(k)
		return true
	})
	return out
}
