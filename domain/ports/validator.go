package ports

import "github.com/tickgate-dev/tickgate-sdk/domain/entities"

// DescriptorValidator validates a plugin descriptor, including each declared
// capability grant against its registered schema.
type DescriptorValidator interface {
	Validate(desc *entities.Descriptor) (*entities.ValidationResult, error)
}
