package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickgate-dev/tickgate-sdk/application/validation"
	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
)

type mockRegistry struct {
	schemas map[string]string
}

func (m *mockRegistry) Register(kind string, model interface{}) error { return nil }
func (m *mockRegistry) GetSchema(kind string) (string, bool) {
	s, ok := m.schemas[kind]
	return s, ok
}
func (m *mockRegistry) List() []string { return nil }

func newTestRegistry() *mockRegistry {
	return &mockRegistry{
		schemas: map[string]string{
			"timers": `{"type": "object", "properties": {"max_timers": {"type": "integer", "minimum": 1}}}`,
			"log":    `{"type": "object", "required": ["level"], "properties": {"level": {"type": "string"}}}`,
		},
	}
}

func TestDescriptorValidator_Validate(t *testing.T) {
	validator := validation.NewDescriptorValidator(newTestRegistry())

	t.Run("valid descriptor", func(t *testing.T) {
		desc := &entities.Descriptor{
			Name:    "race-gamemode",
			Version: "1.0.0",
			Capabilities: []entities.CapabilityGrant{
				{Kind: "timers", Config: map[string]any{"max_timers": 16}},
				{Kind: "log", Config: map[string]any{"level": "info"}},
			},
		}
		res, err := validator.Validate(desc)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("no capabilities", func(t *testing.T) {
		desc := &entities.Descriptor{Name: "race-gamemode", Version: "1.0.0"}
		res, err := validator.Validate(desc)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("schema violation", func(t *testing.T) {
		desc := &entities.Descriptor{
			Name:    "race-gamemode",
			Version: "1.0.0",
			Capabilities: []entities.CapabilityGrant{
				{Kind: "log", Config: map[string]any{}}, // missing required level
			},
		}
		res, err := validator.Validate(desc)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		require.NotEmpty(t, res.Errors)
		assert.Equal(t, "log", res.Errors[0].Field)
	})

	t.Run("unknown capability kind", func(t *testing.T) {
		desc := &entities.Descriptor{
			Name:    "race-gamemode",
			Version: "1.0.0",
			Capabilities: []entities.CapabilityGrant{
				{Kind: "teleport"},
			},
		}
		res, err := validator.Validate(desc)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors[0].Message, "no schema registered for capability teleport")
	})

	t.Run("repeated validation reuses validator", func(t *testing.T) {
		desc := &entities.Descriptor{
			Name:    "race-gamemode",
			Version: "1.0.0",
			Capabilities: []entities.CapabilityGrant{
				{Kind: "timers", Config: map[string]any{"max_timers": 4}},
			},
		}
		for i := 0; i < 3; i++ {
			res, err := validator.Validate(desc)
			require.NoError(t, err)
			assert.True(t, res.Valid)
		}
	})
}

func TestDescriptorValidator_ValidateStrict(t *testing.T) {
	validator := validation.NewDescriptorValidator(newTestRegistry()).(*validation.DescriptorValidator)

	t.Run("valid returns nil", func(t *testing.T) {
		desc := &entities.Descriptor{
			Name:    "race-gamemode",
			Version: "1.0.0",
			Capabilities: []entities.CapabilityGrant{
				{Kind: "log", Config: map[string]any{"level": "warn"}},
			},
		}
		require.NoError(t, validator.ValidateStrict(desc))
	})

	t.Run("aggregates all failures", func(t *testing.T) {
		desc := &entities.Descriptor{
			Name:    "race-gamemode",
			Version: "1.0.0",
			Capabilities: []entities.CapabilityGrant{
				{Kind: "teleport"},
				{Kind: "log", Config: map[string]any{}},
			},
		}
		err := validator.ValidateStrict(desc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "teleport")
		assert.Contains(t, err.Error(), "log")
	})
}
