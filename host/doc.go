// Package host provides the runtime environment a Tickgate server uses to
// execute WASM plugins.
//
// It abstracts the underlying WASM engine (wazero), manages plugin lifecycle
// from capability negotiation through unload, drives per-tick servicing, and
// registers the host function surface plugins call back into.
package host
