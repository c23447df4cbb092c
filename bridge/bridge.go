// Package bridge implements the lifecycle surface of the Tickgate plugin
// protocol: capability negotiation, handle resolution, load/unload, the
// per-tick hook, and the logging bridge. Every operation takes an explicit
// plugin handle; the plugin package layers the implicit-current-handle
// convenience forms on top.
//
// The host drives these operations synchronously and is trusted to follow the
// documented protocol (load exactly once, then unload exactly once). The
// bridge does not guard against host misuse.
package bridge

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
	"github.com/tickgate-dev/tickgate-sdk/timer"
)

// Bridge is the handle-explicit core of the SDK. One Bridge serves the whole
// process; per-plugin state lives in sessions keyed by handle.
type Bridge struct {
	resolver ports.HandleResolver
	clock    ports.Clock
	fallback *slog.Logger

	mu        sync.RWMutex
	sessions  map[entities.PluginHandle]*session
	sink      entities.LogWriter
	sinkOwner entities.PluginHandle
}

// session is the state created by a successful Load and destroyed by Unload.
type session struct {
	block  *entities.HostBlock
	timers *timer.Set
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithResolver sets the host's address-to-handle resolver.
func WithResolver(r ports.HandleResolver) Option {
	return func(b *Bridge) {
		b.resolver = r
	}
}

// WithClock substitutes the clock used by per-plugin timer sets.
func WithClock(clock ports.Clock) Option {
	return func(b *Bridge) {
		b.clock = clock
	}
}

// WithFallbackLogger sets the logger used for log messages that arrive while
// no host sink is bound (before Load, or after Unload).
func WithFallbackLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.fallback = logger
	}
}

// New creates a Bridge. Without options it has no way to resolve handles
// (every lookup misses) and logs through slog's default logger.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		resolver: ports.HandleResolverFunc(func(entities.Address) (entities.PluginHandle, bool) {
			return entities.NilHandle, false
		}),
		clock:    ports.SystemClock(),
		fallback: slog.Default(),
		sessions: make(map[entities.PluginHandle]*session),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Supports returns the capability mask the SDK provides by default. Plugin
// negotiation entry points OR in the optional hooks they implement:
//
//	func Supports() entities.CapabilityMask {
//	    return b.Supports() | entities.CapProcessTick
//	}
func (b *Bridge) Supports() entities.CapabilityMask {
	return entities.DefaultSupports
}

// ResolveHandle asks the host which loaded plugin owns the given in-module
// address. Returns (NilHandle, false) if the host cannot map it. The result
// is not cached here; memoization is the plugin package's concern.
func (b *Bridge) ResolveHandle(addr entities.Address) (entities.PluginHandle, bool) {
	return b.resolver.Resolve(addr)
}

// Resolve implements ports.HandleResolver, so a Bridge can back a HandleCache
// directly.
func (b *Bridge) Resolve(addr entities.Address) (entities.PluginHandle, bool) {
	return b.ResolveHandle(addr)
}

// Load initializes per-plugin state for the given handle using the host data
// block supplied by the host. Returns false if the block is unusable, in
// which case no state survives: a following ProcessTick for the handle is a
// no-op and a later Load starts from a clean slate.
func (b *Bridge) Load(h entities.PluginHandle, block *entities.HostBlock) bool {
	if block == nil || block.Log == nil {
		return false
	}

	s := &session{
		block:  block,
		timers: timer.NewSet(timer.WithClock(b.clock)),
	}

	b.mu.Lock()
	b.sessions[h] = s
	b.sink = block.Log
	b.sinkOwner = h
	b.mu.Unlock()
	return true
}

// Unload releases everything associated with the handle. It always succeeds;
// unloading a handle that was never loaded is a no-op.
func (b *Bridge) Unload(h entities.PluginHandle) {
	b.mu.Lock()
	if s, ok := b.sessions[h]; ok {
		s.timers.Clear()
		delete(b.sessions, h)
	}
	if b.sinkOwner == h {
		b.sink = nil
		b.sinkOwner = entities.NilHandle
	}
	b.mu.Unlock()
}

// Loaded reports whether the handle currently has a session.
func (b *Bridge) Loaded(h entities.PluginHandle) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.sessions[h]
	return ok
}

// ProcessTick performs one unit of periodic work for the handle: it fires
// every timer that has come due. Called once per server tick; cost is bounded
// by the number of due timers and nothing here blocks. A handle without a
// session (never loaded, or load failed) is a no-op.
func (b *Bridge) ProcessTick(h entities.PluginHandle) {
	b.mu.RLock()
	s, ok := b.sessions[h]
	b.mu.RUnlock()
	if !ok {
		return
	}
	// Callbacks run outside all bridge locks.
	s.timers.Process()
}

// SetTimer schedules deferred work for the handle, serviced by ProcessTick.
// Returns false if the handle is not loaded.
func (b *Bridge) SetTimer(h entities.PluginHandle, interval time.Duration, repeating bool, fn timer.Callback) (timer.ID, bool) {
	b.mu.RLock()
	s, ok := b.sessions[h]
	b.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return s.timers.Add(interval, repeating, fn), true
}

// KillTimer cancels a timer previously created with SetTimer.
func (b *Bridge) KillTimer(h entities.PluginHandle, id timer.ID) bool {
	b.mu.RLock()
	s, ok := b.sessions[h]
	b.mu.RUnlock()
	if !ok {
		return false
	}
	return s.timers.Remove(id)
}
