package shadow

import (
	"go.uber.org/zap"

	"github.com/wippyai/kowtow/registry"
)

// Config holds configuration for a Space.
type Config struct {
	// Logger receives debug events. Nil means the package logger.
	Logger *zap.Logger

	// Observers are subscribed to the Space's registry.
	Observers []registry.Observer

	// ID names the Space in logs. Empty means a random UUID.
	ID string
}

// DefaultConfig returns the configuration used by NewSpace.
func DefaultConfig() *Config {
	return &Config{Logger: Logger()}
}
