// Package validation checks plugin descriptors against registered capability
// schemas before the host instantiates anything.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
)

// DescriptorValidator validates descriptor capability grants using JSON
// schemas from a CapabilityRegistry.
type DescriptorValidator struct {
	registry ports.CapabilityRegistry
}

// NewDescriptorValidator creates a new validator.
func NewDescriptorValidator(registry ports.CapabilityRegistry) ports.DescriptorValidator {
	return &DescriptorValidator{registry: registry}
}

// Validate checks every capability grant in the descriptor against its
// registered schema. Grants with an unknown kind fail validation.
func (v *DescriptorValidator) Validate(desc *entities.Descriptor) (*entities.ValidationResult, error) {
	result := &entities.ValidationResult{Valid: true}

	for _, grant := range desc.Capabilities {
		if verr := v.validateGrant(grant); verr != nil {
			result.Errors = append(result.Errors, *verr)
		}
	}

	if len(result.Errors) > 0 {
		result.Valid = false
	}

	return result, nil
}

// ValidateStrict runs Validate and folds every failure into a single error.
// Host loaders use this to refuse a descriptor in one shot while still
// reporting all problems.
func (v *DescriptorValidator) ValidateStrict(desc *entities.Descriptor) error {
	result, err := v.Validate(desc)
	if err != nil {
		return err
	}
	if result.Valid {
		return nil
	}

	var merr *multierror.Error
	for _, ve := range result.Errors {
		merr = multierror.Append(merr, fmt.Errorf("capability %s: %s", ve.Field, ve.Message))
	}
	return merr.ErrorOrNil()
}

func (v *DescriptorValidator) validateGrant(grant entities.CapabilityGrant) *entities.ValidationError {
	schemaStr, ok := v.registry.GetSchema(grant.Kind)
	if !ok {
		return &entities.ValidationError{
			Field:   grant.Kind,
			Message: fmt.Sprintf("no schema registered for capability %s", grant.Kind),
		}
	}

	// A fresh compiler per grant keeps resource names from colliding when the
	// same validator handles many descriptors.
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(grant.Kind, strings.NewReader(schemaStr)); err != nil {
		return &entities.ValidationError{
			Field:   grant.Kind,
			Message: fmt.Sprintf("failed to add schema resource for %s: %v", grant.Kind, err),
		}
	}

	sch, err := compiler.Compile(grant.Kind)
	if err != nil {
		return &entities.ValidationError{
			Field:   grant.Kind,
			Message: fmt.Sprintf("invalid schema for %s: %v", grant.Kind, err),
		}
	}

	// Round-trip through JSON so the schema library sees plain interface{}
	// values regardless of how the config map was built.
	b, _ := json.Marshal(grant.Config)
	var obj interface{}
	if err := json.Unmarshal(b, &obj); err != nil {
		return &entities.ValidationError{
			Field:   grant.Kind,
			Message: fmt.Sprintf("failed to prepare validation object: %v", err),
		}
	}
	if obj == nil {
		obj = map[string]interface{}{}
	}

	if err := sch.Validate(obj); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &entities.ValidationError{
				Field:   grant.Kind,
				Message: ve.Error(),
			}
		}
		return &entities.ValidationError{
			Field:   grant.Kind,
			Message: err.Error(),
		}
	}

	return nil
}
