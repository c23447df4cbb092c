package sdk

import "github.com/tickgate-dev/tickgate-sdk/domain/entities"

// Config represents the config section of the host data block a plugin
// receives at load time.
type Config map[string]interface{}

// PluginHandle is re-exported for plugin authors who only import the root
// package.
type PluginHandle = entities.PluginHandle

// CapabilityMask is re-exported for negotiation entry points.
type CapabilityMask = entities.CapabilityMask

// HostBlock is re-exported for load entry points.
type HostBlock = entities.HostBlock

// ErrorDetail is re-exported for structured error reporting.
type ErrorDetail = entities.ErrorDetail

const (
	// Version of the SDK.
	Version = "0.3.0"

	// MinHostVersion is the minimum compatible Tickgate server version.
	MinHostVersion = "0.7.0"
)
