package entities

// Descriptor is the static description a plugin ships alongside its binary.
// The host loader parses it from YAML and validates it before the plugin is
// ever instantiated.
type Descriptor struct {
	Name         string            `json:"name" yaml:"name" validate:"required"`
	Version      string            `json:"version" yaml:"version" validate:"required"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	Capabilities []CapabilityGrant `json:"capabilities,omitempty" yaml:"capabilities,omitempty" validate:"dive"`
}

// CapabilityGrant declares one optional capability the plugin requests,
// together with its kind-specific configuration.
type CapabilityGrant struct {
	Kind   string         `json:"kind" yaml:"kind" validate:"required"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}
