package hostfuncs

import (
	"context"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
	"github.com/tickgate-dev/tickgate-sdk/wireformat"
)

// HostFuncBundle is a pre-configured set of related host functions. Bundles
// allow registering multiple handlers at once.
type HostFuncBundle interface {
	// Handlers returns a map of handler names to ByteHandler functions.
	Handlers() map[string]ByteHandler
}

// staticBundle implements HostFuncBundle with a fixed set of handlers.
type staticBundle struct {
	handlers map[string]ByteHandler
}

func (b *staticBundle) Handlers() map[string]ByteHandler {
	return b.handlers
}

// The request/response shapes for the core functions live in wireformat;
// plugins marshal the same types on their side of the boundary.
type (
	ResolveHandleRequest  = wireformat.ResolveHandleRequest
	ResolveHandleResponse = wireformat.ResolveHandleResponse
	LogMessageRequest     = wireformat.LogMessageRequest
	LogMessageResponse    = wireformat.LogMessageResponse
)

// CoreBundle returns the handlers every Tickgate host must expose:
// get_plugin_handle and logprintf. The resolver backs handle lookups and the
// sink receives log lines.
func CoreBundle(resolver ports.HandleResolver, sink entities.LogWriter) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			"get_plugin_handle": NewJSONHandler(func(ctx context.Context, req ResolveHandleRequest) ResolveHandleResponse {
				h, ok := resolver.Resolve(entities.Address(req.Address))
				return ResolveHandleResponse{Handle: uint64(h), Found: ok}
			}),
			"logprintf": NewJSONHandler(func(ctx context.Context, req LogMessageRequest) LogMessageResponse {
				msg := req.Message
				// Plugins truncate before crossing the boundary, but the host
				// enforces its buffer limit regardless of who built the module.
				if len(msg) > entities.MaxLogMessage {
					msg = msg[:entities.MaxLogMessage]
				}
				sink(msg)
				return LogMessageResponse{Written: len(msg)}
			}),
		},
	}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []HostFuncBundle
}

func (b *compositeBundle) Handlers() map[string]ByteHandler {
	result := make(map[string]ByteHandler)
	for _, bundle := range b.bundles {
		for name, handler := range bundle.Handlers() {
			result[name] = handler
		}
	}
	return result
}

// CombineBundles merges bundles; later bundles win on name collisions.
func CombineBundles(bundles ...HostFuncBundle) HostFuncBundle {
	return &compositeBundle{bundles: bundles}
}

// WithBundle registers all handlers from a bundle.
func WithBundle(bundle HostFuncBundle) RegistryOption {
	return func(b *registryBuilder) {
		for name, handler := range bundle.Handlers() {
			if err := b.addHandler(name, handler); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithHandler registers a typed host function with automatic JSON handling.
func WithHandler[Req any, Resp any](name string, fn HostFunc[Req, Resp]) RegistryOption {
	return func(b *registryBuilder) {
		handler := NewJSONHandler(fn)
		if err := b.addHandler(name, handler); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}
