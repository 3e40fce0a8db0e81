package shadow

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/kowtow/object"
	"github.com/wippyai/kowtow/overlay"
	"github.com/wippyai/kowtow/registry"
)

// RootLabel names shadows created without an explicit label.
const RootLabel = "<root>"

// Stats counts factory outcomes for a Space.
type Stats struct {
	// Created is the number of shadows built.
	Created int
	// Reused is the number of times an existing shadow was handed out.
	Reused int
}

// Space owns one identity registry. Shadows from different spaces never
// share overlay state.
//
// Space is NOT safe for concurrent use.
type Space struct {
	registry *registry.Registry
	logger   *zap.Logger
	id       string
	stats    Stats
}

// NewSpace creates a Space with the default configuration.
func NewSpace() *Space {
	return NewSpaceWithConfig(nil)
}

// NewSpaceWithConfig creates a Space with custom configuration.
func NewSpaceWithConfig(cfg *Config) *Space {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	l := cfg.Logger
	if l == nil {
		l = Logger()
	}

	sp := &Space{
		registry: registry.New(),
		logger:   l.With(zap.String("space", id)),
		id:       id,
	}
	for _, o := range cfg.Observers {
		sp.registry.Subscribe(o)
	}
	return sp
}

// ID returns the Space identifier used in logs.
func (sp *Space) ID() string {
	return sp.id
}

// Registry exposes the identity registry, mainly for observers and
// diagnostics.
func (sp *Space) Registry() *registry.Registry {
	return sp.registry
}

// Shadow returns the shadow of v in this Space. Values that are not objects
// are returned unchanged, as are shadows already belonging to this Space.
// The optional label names the shadow in logs and defaults to "<root>".
func (sp *Space) Shadow(v object.Value, label ...string) object.Value {
	name := RootLabel
	if len(label) > 0 && label[0] != "" {
		name = label[0]
	}
	return sp.shadow(v, name)
}

func (sp *Space) shadow(v object.Value, label string) object.Value {
	obj, ok := v.(object.Object)
	if !ok || obj == nil {
		return v
	}
	if !registry.Comparable(obj) {
		sp.logger.Debug("value cannot be shadowed", zap.String("label", label), zap.String("type", object.TypeName(v)))
		return v
	}
	if sp.registry.Contains(obj) {
		return v
	}
	if existing, ok := sp.registry.Reuse(obj); ok {
		sp.stats.Reused++
		sp.logger.Debug("shadow reused", zap.String("label", label))
		return existing
	}

	s := &Shadow{space: sp, target: obj, record: overlay.New(), label: label}
	var out object.Object
	switch obj.(type) {
	case object.Constructible:
		out = &constructorShadow{callableShadow{s}}
	case object.Invocable:
		out = &callableShadow{s}
	default:
		out = s
	}
	s.self = out

	sp.registry.Register(obj, out, s.record, label)
	sp.stats.Created++
	sp.logger.Debug("shadow created", zap.String("label", label), zap.Int("count", sp.stats.Created))
	return out
}

// IsShadow reports whether v is a live shadow of this Space.
func (sp *Space) IsShadow(v object.Value) bool {
	obj, ok := v.(object.Object)
	if !ok || !registry.Comparable(obj) {
		return false
	}
	return sp.registry.Contains(obj)
}

// Overlay returns the overlay record of a shadow of this Space.
func (sp *Space) Overlay(v object.Value) (*overlay.Record, bool) {
	obj, ok := v.(object.Object)
	if !ok {
		return nil, false
	}
	return sp.registry.RecordOf(obj)
}

// Original returns the object a shadow of this Space stands in for.
func (sp *Space) Original(v object.Value) (object.Object, bool) {
	obj, ok := v.(object.Object)
	if !ok {
		return nil, false
	}
	return sp.registry.OriginalOf(obj)
}

// ShadowOf returns the live shadow of an original without creating one.
func (sp *Space) ShadowOf(v object.Value) (object.Object, bool) {
	obj, ok := v.(object.Object)
	if !ok {
		return nil, false
	}
	return sp.registry.ShadowOf(obj)
}

// Release forgets one association. v may be the shadow or its original.
// The released shadow keeps its overlay but is no longer recognized, and
// shadowing the original again builds a fresh shadow.
func (sp *Space) Release(v object.Value) bool {
	obj, ok := v.(object.Object)
	if !ok || !registry.Comparable(obj) {
		return false
	}
	if s, ok := sp.registry.ShadowOf(obj); ok {
		obj = s
	}
	h, ok := sp.registry.HandleOf(obj)
	if !ok {
		return false
	}
	e, _ := sp.registry.Get(h)
	if !sp.registry.Release(h) {
		return false
	}
	sp.logger.Debug("shadow released", zap.String("label", e.Label), zap.Int("overlay", e.Record.Len()))
	return true
}

// Len returns the number of live shadows.
func (sp *Space) Len() int {
	return sp.registry.Len()
}

// Stats returns the factory counters.
func (sp *Space) Stats() Stats {
	return sp.stats
}

// Clear forgets every association. Existing shadows keep working against
// their own overlays, but the Space no longer recognizes them: shadowing an
// original again builds a fresh shadow.
func (sp *Space) Clear() {
	sp.registry.Clear()
	sp.logger.Debug("space cleared")
}
