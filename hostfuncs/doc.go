// Package hostfuncs provides pure Go implementations of the host function
// surface a Tickgate server exposes to plugins. These implementations have no
// WASM runtime dependencies; any runtime that can shuttle JSON bytes across
// the boundary can use them.
package hostfuncs
