// Package wireformat defines the JSON wire format structures for the core
// host functions shared between a Tickgate server and its plugins. These
// types are the ABI contract and must remain backward compatible.
package wireformat

// ResolveHandleRequest asks the server which plugin owns an address inside a
// loaded module image.
type ResolveHandleRequest struct {
	Address uint64 `json:"address"`
}

// ResolveHandleResponse carries the resolved handle back to the plugin.
type ResolveHandleResponse struct {
	// Handle is the owning plugin's handle, zero when not found.
	Handle uint64 `json:"handle"`

	// Found reports whether the address mapped to a loaded plugin.
	Found bool `json:"found"`
}

// LogMessageRequest carries one formatted log line from a plugin to the
// server's log.
type LogMessageRequest struct {
	Message string `json:"message"`
}

// LogMessageResponse reports how many bytes reached the server log after the
// server applied its line length limit.
type LogMessageResponse struct {
	Written int `json:"written"`
}
