package registry

import (
	"github.com/wippyai/kowtow/object"
	"github.com/wippyai/kowtow/overlay"
)

// Handle is an opaque reference to an entry in the registry.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a registry lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventReused
	EventReleased
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventReused:
		return "reused"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Entry is one original/shadow association.
type Entry struct {
	Original object.Object
	Shadow   object.Object
	Record   *overlay.Record
	Label    string
}

// Event represents a registry lifecycle event.
type Event struct {
	Entry
	Handle Handle
	Type   EventType
}

// Observer receives notifications about registry events.
type Observer interface {
	OnRegistryEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnRegistryEvent calls f.
func (f ObserverFunc) OnRegistryEvent(e Event) {
	f(e)
}
