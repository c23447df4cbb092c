package ports

import "github.com/tickgate-dev/tickgate-sdk/domain/entities"

// HandleResolver maps an in-module address to the handle of the plugin that
// owns it. The host maintains the actual map; the SDK only queries it.
// A lookup the host cannot satisfy returns (NilHandle, false).
type HandleResolver interface {
	Resolve(addr entities.Address) (entities.PluginHandle, bool)
}

// HandleResolverFunc adapts a plain function to a HandleResolver.
type HandleResolverFunc func(addr entities.Address) (entities.PluginHandle, bool)

// Resolve implements HandleResolver.
func (f HandleResolverFunc) Resolve(addr entities.Address) (entities.PluginHandle, bool) {
	return f(addr)
}
