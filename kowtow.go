package kowtow

import (
	"github.com/wippyai/kowtow/object"
	"github.com/wippyai/kowtow/shadow"
)

// Func maps a value to its view in one shadow space. Non-object values are
// returned unchanged. The optional label names the view in debug logs.
type Func func(v object.Value, label ...string) object.Value

// CreateSpace creates a fresh space and returns its shadow function.
// Successive calls share nothing.
func CreateSpace() Func {
	return Bind(shadow.NewSpace())
}

// CreateSpaceWithConfig is CreateSpace with a custom space configuration.
func CreateSpaceWithConfig(cfg *shadow.Config) Func {
	return Bind(shadow.NewSpaceWithConfig(cfg))
}

// Bind returns the shadow function of an existing space.
func Bind(sp *shadow.Space) Func {
	return sp.Shadow
}

// ShadowOnce views v in a space of its own.
func ShadowOnce(v object.Value) object.Value {
	return CreateSpace()(v)
}
