// Package registry implements the capability schema registry a Tickgate
// server uses to validate plugin descriptors.
package registry

import (
	"fmt"
	"sync"

	"github.com/tickgate-dev/tickgate-sdk/application/schema"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
)

type registryConfig struct {
	strictMode bool // fail on duplicate registrations
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		strictMode: true,
	}
}

// RegistryOption configures a Registry instance.
type RegistryOption func(*registryConfig)

// WithStrictMode enables or disables strict mode for duplicate registrations.
// Default is true. Disable only for testing or hot reloading.
func WithStrictMode(enabled bool) RegistryOption {
	return func(c *registryConfig) {
		c.strictMode = enabled
	}
}

// Registry implements CapabilityRegistry.
type Registry struct {
	config  registryConfig
	schemas sync.Map // map[string]string (json schema)
	models  sync.Map // map[string]interface{}
}

// NewRegistry creates a new Registry with the given options.
func NewRegistry(opts ...RegistryOption) ports.CapabilityRegistry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{config: cfg}
}

// Register reflects a JSON Schema from the model struct and stores it under
// the capability kind.
func (r *Registry) Register(kind string, model interface{}) error {
	if r.config.strictMode {
		if _, exists := r.schemas.Load(kind); exists {
			return fmt.Errorf("capability %q already registered", kind)
		}
	}

	r.models.Store(kind, model)

	data, err := schema.Generate(model)
	if err != nil {
		return fmt.Errorf("failed to generate schema for %s: %w", kind, err)
	}
	r.schemas.Store(kind, string(data))
	return nil
}

// GetSchema retrieves the JSON Schema for a capability kind.
func (r *Registry) GetSchema(kind string) (string, bool) {
	v, ok := r.schemas.Load(kind)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// List returns all registered capability kind names.
func (r *Registry) List() []string {
	var keys []string
	r.schemas.Range(func(k, v interface{}) bool {
		keys = append(keys, k.(string))
		return true
	})
	return keys
}
