package sdk

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a package-level singleton; constructing a validator per call is
// expensive and the instance is safe for concurrent use.
var validate = validator.New()

// ValidateConfig validates a Config map against a struct with validation
// tags. The map is marshaled to JSON, unmarshaled into targetStruct, and the
// populated struct is then run through go-playground/validator.
func ValidateConfig(config Config, targetStruct interface{}) error {
	jsonBytes, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config map: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, targetStruct); err != nil {
		return fmt.Errorf("failed to unmarshal config into struct: %w", err)
	}

	if err := validate.Struct(targetStruct); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}
