package entities

// PluginHandle is an opaque identifier the host uses to refer to one loaded
// plugin instance. Handles are resolved, never constructed: the guest obtains
// its own handle by asking the host to map an in-module address back to the
// plugin that owns it. The host owns the handle's lifetime; this SDK only
// observes it between Load and Unload.
type PluginHandle uint64

// NilHandle is the absent-handle value returned when resolution fails.
const NilHandle PluginHandle = 0

// IsNil reports whether the handle is the absent value.
func (h PluginHandle) IsNil() bool {
	return h == NilHandle
}

// Address is an address-sized value inside the plugin's own module image.
// The host can map any such address back to the owning plugin's handle.
type Address uint64
