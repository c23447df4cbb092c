package host

import (
	"log/slog"

	"github.com/tickgate-dev/tickgate-sdk/hostfuncs"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithHostFunctions configures the executor with a host function registry.
// When omitted, the executor builds a registry with the core bundle and
// panic recovery.
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithLogger sets the structured logger plugin log lines and executor
// diagnostics are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}
