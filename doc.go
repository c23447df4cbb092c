// Package sdk is the Tickgate SDK: everything a Go plugin needs to
// participate in a tick-driven game server's plugin protocol.
//
// The SDK is split into a handle-explicit core and a convenience layer. The
// bridge package implements the lifecycle surface the host drives: capability
// negotiation, address-to-handle resolution, load/unload, the per-tick hook,
// and the printf-style logging bridge. The plugin package wraps it with forms
// that omit the handle argument, substituting the plugin's own handle, which
// is resolved once per process and cached.
//
// A minimal plugin:
//
//	func init() {
//	    plugin.OnLoad(func(config map[string]any) bool {
//	        plugin.Default().Logprintf("loaded with %d config keys", len(config))
//	        return true
//	    })
//	    plugin.OnTick(func() {
//	        // once per server tick
//	    })
//	}
//
// This root package carries the shared config helpers and version constants.
package sdk
