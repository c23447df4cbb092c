package plugin

import (
	"sync"

	"github.com/tickgate-dev/tickgate-sdk/bridge"
	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
)

// The default adapter backs the exported entry points of a plugin binary.
// Entry-point glue (internal wasm exports, tests) goes through Entry*; plugin
// authors register their hooks with OnLoad/OnUnload/OnTick.
var (
	defaultMu      sync.RWMutex
	defaultAdapter = NewAdapter(bridge.New())
)

// Default returns the process-wide adapter.
func Default() *Adapter {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultAdapter
}

// SetDefault replaces the process-wide adapter. Called by runtime glue during
// startup, before the host issues any lifecycle call.
func SetDefault(a *Adapter) {
	defaultMu.Lock()
	defaultAdapter = a
	defaultMu.Unlock()
}

// hooks are the author-registered lifecycle callbacks.
var hooks struct {
	mu       sync.RWMutex
	onLoad   func(config map[string]any) bool
	onUnload func()
	onTick   func()
}

// OnLoad registers the author's load hook. It runs after the SDK's own load
// succeeds and receives the host block's config section; returning false
// rejects the load and rolls the SDK state back.
func OnLoad(fn func(config map[string]any) bool) {
	hooks.mu.Lock()
	hooks.onLoad = fn
	hooks.mu.Unlock()
}

// OnUnload registers the author's unload hook. It runs before the SDK
// releases its state.
func OnUnload(fn func()) {
	hooks.mu.Lock()
	hooks.onUnload = fn
	hooks.mu.Unlock()
}

// OnTick registers the author's per-tick hook. It runs after due timers have
// been serviced.
func OnTick(fn func()) {
	hooks.mu.Lock()
	hooks.onTick = fn
	hooks.mu.Unlock()
}

// EntrySupports reports the negotiation mask for the default adapter's
// plugin: the SDK default plus tick support, since the SDK always exports a
// per-tick entry point.
func EntrySupports() entities.CapabilityMask {
	return Default().Supports().With(entities.CapProcessTick)
}

// EntryLoad is the exported load entry point. The handle arrives explicitly
// from the host and is deliberately not fed into the handle cache; callers
// that want the cached handle resolve it through the host like everyone
// else.
func EntryLoad(h entities.PluginHandle, block *entities.HostBlock) bool {
	a := Default()
	if !a.Bridge().Load(h, block) {
		return false
	}

	hooks.mu.RLock()
	fn := hooks.onLoad
	hooks.mu.RUnlock()

	if fn != nil && !fn(block.Config) {
		// The author rejected the load; leave nothing behind.
		a.Bridge().Unload(h)
		return false
	}
	return true
}

// EntryUnload is the exported unload entry point.
func EntryUnload(h entities.PluginHandle) {
	hooks.mu.RLock()
	fn := hooks.onUnload
	hooks.mu.RUnlock()
	if fn != nil {
		fn()
	}
	Default().Bridge().Unload(h)
}

// EntryTick is the exported per-tick entry point.
func EntryTick(h entities.PluginHandle) {
	Default().Bridge().ProcessTick(h)

	hooks.mu.RLock()
	fn := hooks.onTick
	hooks.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
