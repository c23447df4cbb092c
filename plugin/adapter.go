package plugin

import (
	"time"

	"github.com/tickgate-dev/tickgate-sdk/bridge"
	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
	"github.com/tickgate-dev/tickgate-sdk/timer"
)

// Adapter wraps a Bridge with operations that supply the cached current
// handle automatically. It adds nothing beyond argument injection: each call
// has exactly the semantics of its handle-explicit counterpart, with a
// missing handle surfacing the same way a failed operation would.
type Adapter struct {
	bridge *bridge.Bridge
	cache  *HandleCache
}

// AdapterOption configures an Adapter.
type AdapterOption func(*adapterConfig)

type adapterConfig struct {
	resolver ports.HandleResolver
	addr     entities.Address
}

// WithAnchor overrides the address resolved to obtain the current handle.
func WithAnchor(addr entities.Address) AdapterOption {
	return func(c *adapterConfig) {
		c.addr = addr
	}
}

// WithResolver overrides the resolver backing the handle cache. By default
// the bridge's own resolver is used.
func WithResolver(r ports.HandleResolver) AdapterOption {
	return func(c *adapterConfig) {
		c.resolver = r
	}
}

// NewAdapter creates an Adapter over the given bridge.
func NewAdapter(b *bridge.Bridge, opts ...AdapterOption) *Adapter {
	cfg := adapterConfig{
		resolver: b,
		addr:     AnchorAddress(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Adapter{
		bridge: b,
		cache:  NewHandleCache(cfg.resolver, cfg.addr),
	}
}

// Bridge returns the underlying handle-explicit bridge.
func (a *Adapter) Bridge() *bridge.Bridge {
	return a.bridge
}

// Handle returns the memoized current handle, resolving it on first use.
func (a *Adapter) Handle() (entities.PluginHandle, bool) {
	return a.cache.Current()
}

// Supports returns the SDK's default capability mask.
func (a *Adapter) Supports() entities.CapabilityMask {
	return a.bridge.Supports()
}

// Load initializes the current plugin with the given host data block.
// Returns false if the current handle cannot be resolved or the block is
// unusable.
func (a *Adapter) Load(block *entities.HostBlock) bool {
	h, ok := a.cache.Current()
	if !ok {
		return false
	}
	return a.bridge.Load(h, block)
}

// Unload releases the current plugin's state.
func (a *Adapter) Unload() {
	h, ok := a.cache.Current()
	if !ok {
		return
	}
	a.bridge.Unload(h)
}

// ProcessTick services the current plugin's due timers.
func (a *Adapter) ProcessTick() {
	h, ok := a.cache.Current()
	if !ok {
		return
	}
	a.bridge.ProcessTick(h)
}

// SetTimer schedules deferred work for the current plugin.
func (a *Adapter) SetTimer(interval time.Duration, repeating bool, fn timer.Callback) (timer.ID, bool) {
	h, ok := a.cache.Current()
	if !ok {
		return 0, false
	}
	return a.bridge.SetTimer(h, interval, repeating, fn)
}

// KillTimer cancels a timer created with SetTimer.
func (a *Adapter) KillTimer(id timer.ID) bool {
	h, ok := a.cache.Current()
	if !ok {
		return false
	}
	return a.bridge.KillTimer(h, id)
}

// Logprintf formats a message and emits it to the host's log.
func (a *Adapter) Logprintf(format string, args ...any) {
	a.bridge.Logprintf(format, args...)
}

// Vlogprintf is the explicit-argument-list form of Logprintf.
func (a *Adapter) Vlogprintf(format string, args []any) {
	a.bridge.Vlogprintf(format, args)
}
