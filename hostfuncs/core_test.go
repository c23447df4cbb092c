package hostfuncs

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
)

func coreRegistry(t *testing.T, resolver ports.HandleResolver, lines *[]string) *HandlerRegistry {
	t.Helper()
	sink := func(message string) {
		*lines = append(*lines, message)
	}
	registry, err := NewRegistry(WithBundle(CoreBundle(resolver, sink)))
	require.NoError(t, err)
	return registry
}

func TestCoreBundle_GetPluginHandle(t *testing.T) {
	resolver := ports.HandleResolverFunc(func(addr entities.Address) (entities.PluginHandle, bool) {
		if addr == 0x1000 {
			return 7, true
		}
		return entities.NilHandle, false
	})

	var lines []string
	registry := coreRegistry(t, resolver, &lines)

	t.Run("known address", func(t *testing.T) {
		resp, err := registry.Invoke(context.Background(), "get_plugin_handle", []byte(`{"address": 4096}`))
		require.NoError(t, err)

		var decoded ResolveHandleResponse
		require.NoError(t, json.Unmarshal(resp, &decoded))
		assert.True(t, decoded.Found)
		assert.Equal(t, uint64(7), decoded.Handle)
	})

	t.Run("unknown address", func(t *testing.T) {
		resp, err := registry.Invoke(context.Background(), "get_plugin_handle", []byte(`{"address": 1}`))
		require.NoError(t, err)

		var decoded ResolveHandleResponse
		require.NoError(t, json.Unmarshal(resp, &decoded))
		assert.False(t, decoded.Found)
		assert.Equal(t, uint64(0), decoded.Handle)
	})
}

func TestCoreBundle_Logprintf(t *testing.T) {
	resolver := ports.HandleResolverFunc(func(entities.Address) (entities.PluginHandle, bool) {
		return entities.NilHandle, false
	})

	t.Run("message reaches sink", func(t *testing.T) {
		var lines []string
		registry := coreRegistry(t, resolver, &lines)

		payload, _ := json.Marshal(LogMessageRequest{Message: "player connected"})
		resp, err := registry.Invoke(context.Background(), "logprintf", payload)
		require.NoError(t, err)

		var decoded LogMessageResponse
		require.NoError(t, json.Unmarshal(resp, &decoded))
		assert.Equal(t, len("player connected"), decoded.Written)
		assert.Equal(t, []string{"player connected"}, lines)
	})

	t.Run("host enforces message limit", func(t *testing.T) {
		var lines []string
		registry := coreRegistry(t, resolver, &lines)

		long := strings.Repeat("x", entities.MaxLogMessage+100)
		payload, _ := json.Marshal(LogMessageRequest{Message: long})
		resp, err := registry.Invoke(context.Background(), "logprintf", payload)
		require.NoError(t, err)

		var decoded LogMessageResponse
		require.NoError(t, json.Unmarshal(resp, &decoded))
		assert.Equal(t, entities.MaxLogMessage, decoded.Written)
		require.Len(t, lines, 1)
		assert.Len(t, lines[0], entities.MaxLogMessage)
	})
}

func TestCombineBundles(t *testing.T) {
	resolver := ports.HandleResolverFunc(func(entities.Address) (entities.PluginHandle, bool) {
		return entities.NilHandle, false
	})
	extra := &staticBundle{handlers: map[string]ByteHandler{"server_uptime": echoHandler}}

	combined := CombineBundles(CoreBundle(resolver, func(string) {}), extra)
	handlers := combined.Handlers()
	assert.Contains(t, handlers, "get_plugin_handle")
	assert.Contains(t, handlers, "logprintf")
	assert.Contains(t, handlers, "server_uptime")
}
