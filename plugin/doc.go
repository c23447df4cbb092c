// Package plugin is the plugin-author-facing layer of the SDK. It wraps the
// handle-explicit bridge operations with convenience forms that omit the
// plugin handle, substituting the process-wide cached handle resolved from
// the module's anchor symbol on first use. The adapter injects arguments
// only; success and failure semantics are those of the underlying bridge.
package plugin
