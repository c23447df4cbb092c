package plugin

import (
	"sync"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
)

// HandleCache memoizes the plugin's own handle for the lifetime of the
// process. Resolution happens at most once, on first use, even when many
// goroutines race; every caller observes the same result. A failed
// resolution is memoized too; the host's address map does not change while
// the module stays mapped, so retrying cannot succeed.
type HandleCache struct {
	resolver ports.HandleResolver
	addr     entities.Address

	once   sync.Once
	handle entities.PluginHandle
	ok     bool
}

// NewHandleCache creates a cache that will resolve addr through resolver on
// first use.
func NewHandleCache(resolver ports.HandleResolver, addr entities.Address) *HandleCache {
	return &HandleCache{resolver: resolver, addr: addr}
}

// Current returns the memoized handle, resolving it on first use.
func (c *HandleCache) Current() (entities.PluginHandle, bool) {
	c.once.Do(func() {
		c.handle, c.ok = c.resolver.Resolve(c.addr)
	})
	return c.handle, c.ok
}
