package ports

// CapabilityRegistry manages JSON schemas for capability kinds the host
// understands.
type CapabilityRegistry interface {
	// Register adds a schema generated from a Go struct.
	Register(kind string, model interface{}) error

	// GetSchema retrieves the JSON Schema for a capability kind.
	GetSchema(kind string) (string, bool)

	// List returns all registered capability kind names.
	List() []string
}
