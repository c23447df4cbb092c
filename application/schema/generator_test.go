package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SimpleStruct(t *testing.T) {
	type TimerCapability struct {
		MaxTimers int  `json:"max_timers"`
		Repeating bool `json:"repeating"`
	}

	raw, err := Generate(TimerCapability{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	properties, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok, "properties should be a map")
	assert.Contains(t, properties, "max_timers")
	assert.Contains(t, properties, "repeating")
}

func TestGenerate_RequiredFields(t *testing.T) {
	type LogCapability struct {
		Level  string  `json:"level"`
		Target *string `json:"target,omitempty"`
	}

	raw, err := Generate(LogCapability{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	required, ok := decoded["required"].([]interface{})
	require.True(t, ok, "required should be an array")
	assert.Contains(t, required, "level")
	assert.NotContains(t, required, "target")
}

func TestGenerate_EmptyStruct(t *testing.T) {
	type Empty struct{}

	raw, err := Generate(Empty{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotEmpty(t, raw)
}

func TestDescriptorSchema(t *testing.T) {
	raw, err := DescriptorSchema()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	properties, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, properties, "name")
	assert.Contains(t, properties, "version")
	assert.Contains(t, properties, "capabilities")
}
