// Package parser reads plugin descriptor files.
package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
)

// YamlDescriptorParser implements DescriptorParser for YAML.
type YamlDescriptorParser struct{}

// NewYamlDescriptorParser creates a new YamlDescriptorParser.
func NewYamlDescriptorParser() ports.DescriptorParser {
	return &YamlDescriptorParser{}
}

// Parse unmarshals YAML bytes into a Descriptor.
func (p *YamlDescriptorParser) Parse(data []byte) (*entities.Descriptor, error) {
	var desc entities.Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor: %w", err)
	}
	return &desc, nil
}
