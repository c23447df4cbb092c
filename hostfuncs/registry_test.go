package hostfuncs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(ctx context.Context, payload []byte) ([]byte, error) {
	return payload, nil
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	_, err := NewRegistry(
		WithByteHandler("logprintf", echoHandler),
		WithByteHandler("logprintf", echoHandler),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate handler name")
}

func TestNewRegistry_EmptyName(t *testing.T) {
	_, err := NewRegistry(WithByteHandler("", echoHandler))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestRegistry_InvokeUnknown(t *testing.T) {
	registry, err := NewRegistry(WithByteHandler("logprintf", echoHandler))
	require.NoError(t, err)

	resp, err := registry.Invoke(context.Background(), "teleport_player", nil)
	require.NoError(t, err)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(resp, &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Error)
	assert.Equal(t, 404, errResp.Code)
	assert.Contains(t, errResp.Message, "teleport_player")
}

func TestRegistry_NamesSorted(t *testing.T) {
	registry, err := NewRegistry(
		WithByteHandler("logprintf", echoHandler),
		WithByteHandler("get_plugin_handle", echoHandler),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"get_plugin_handle", "logprintf"}, registry.Names())
	assert.True(t, registry.Has("logprintf"))
	assert.False(t, registry.Has("exec_command"))
}

func TestRegistry_TypedHandler(t *testing.T) {
	type doubleRequest struct {
		N int `json:"n"`
	}
	type doubleResponse struct {
		Result int `json:"result"`
	}

	registry, err := NewRegistry(
		WithHandler("double", func(ctx context.Context, req doubleRequest) doubleResponse {
			return doubleResponse{Result: req.N * 2}
		}),
	)
	require.NoError(t, err)

	resp, err := registry.Invoke(context.Background(), "double", []byte(`{"n": 21}`))
	require.NoError(t, err)

	var decoded doubleResponse
	require.NoError(t, json.Unmarshal(resp, &decoded))
	assert.Equal(t, 42, decoded.Result)
}

func TestRegistry_HandlerSeesFunctionName(t *testing.T) {
	var seen string
	registry, err := NewRegistry(
		WithByteHandler("probe", func(ctx context.Context, payload []byte) ([]byte, error) {
			if hc, ok := ctx.(HostContext); ok {
				seen = hc.FunctionName()
			}
			return nil, nil
		}),
	)
	require.NoError(t, err)

	_, err = registry.Invoke(context.Background(), "probe", nil)
	require.NoError(t, err)
	assert.Equal(t, "probe", seen)
}
