package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYamlDescriptorParser_Parse(t *testing.T) {
	p := NewYamlDescriptorParser()

	t.Run("full descriptor", func(t *testing.T) {
		data := []byte(`
name: race-gamemode
version: 1.2.0
description: Checkpoint racing gamemode
capabilities:
  - kind: timers
    config:
      max_timers: 16
  - kind: log
    config:
      level: info
`)
		desc, err := p.Parse(data)
		require.NoError(t, err)
		assert.Equal(t, "race-gamemode", desc.Name)
		assert.Equal(t, "1.2.0", desc.Version)
		require.Len(t, desc.Capabilities, 2)
		assert.Equal(t, "timers", desc.Capabilities[0].Kind)
		assert.Equal(t, 16, desc.Capabilities[0].Config["max_timers"])
		assert.Equal(t, "log", desc.Capabilities[1].Kind)
	})

	t.Run("minimal descriptor", func(t *testing.T) {
		desc, err := p.Parse([]byte("name: filterscript\nversion: 0.1.0\n"))
		require.NoError(t, err)
		assert.Equal(t, "filterscript", desc.Name)
		assert.Empty(t, desc.Capabilities)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := p.Parse([]byte("name: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse descriptor")
	})
}
