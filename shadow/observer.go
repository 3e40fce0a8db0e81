package shadow

import (
	"go.uber.org/zap"

	"github.com/wippyai/kowtow/registry"
)

// LogObserver forwards registry events to a zap logger at debug level.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an observer logging through l (nil means the
// package logger).
func NewLogObserver(l *zap.Logger) *LogObserver {
	if l == nil {
		l = Logger()
	}
	return &LogObserver{logger: l}
}

// OnRegistryEvent implements registry.Observer.
func (o *LogObserver) OnRegistryEvent(e registry.Event) {
	size := 0
	if e.Record != nil {
		size = e.Record.Len()
	}
	o.logger.Debug("registry event",
		zap.Stringer("type", e.Type),
		zap.Uint32("handle", uint32(e.Handle)),
		zap.String("label", e.Label),
		zap.Int("overlay", size),
	)
}
