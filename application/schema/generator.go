// Package schema generates JSON Schemas for descriptor and capability
// structures.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
)

// Generate reflects a JSON Schema (Draft 2020-12) from a Go struct. Struct
// definitions are expanded inline so the result can be registered as a
// standalone schema document.
func Generate(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// DescriptorSchema returns the schema for a plugin descriptor file. Hosts can
// serve this to tooling that lints descriptors before deployment.
func DescriptorSchema() ([]byte, error) {
	return Generate(entities.Descriptor{})
}
