package ports

import "github.com/tickgate-dev/tickgate-sdk/domain/entities"

// DescriptorParser parses raw bytes into a plugin Descriptor.
type DescriptorParser interface {
	Parse(data []byte) (*entities.Descriptor, error)
}
