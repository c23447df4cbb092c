package hostfuncs

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_ToJSON(t *testing.T) {
	resp := NewValidationError("bad payload")

	var decoded ErrorResponse
	require.NoError(t, json.Unmarshal(resp.ToJSON(), &decoded))
	assert.Equal(t, "VALIDATION_ERROR", decoded.Error)
	assert.Equal(t, "bad payload", decoded.Message)
	assert.Equal(t, 400, decoded.Code)
}

func TestNewPanicError(t *testing.T) {
	tests := []struct {
		name       string
		panicValue any
		wantSubstr string
	}{
		{
			name:       "error value",
			panicValue: errors.New("index out of range"),
			wantSubstr: "index out of range",
		},
		{
			name:       "string value",
			panicValue: "bad state",
			wantSubstr: "bad state",
		},
		{
			name:       "arbitrary value",
			panicValue: 42,
			wantSubstr: "panic recovered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPanicError(tt.panicValue)
			assert.Equal(t, "INTERNAL_ERROR", resp.Error)
			assert.Equal(t, 500, resp.Code)
			assert.Contains(t, resp.Message, tt.wantSubstr)
		})
	}
}

func TestNewInternalError(t *testing.T) {
	resp := NewInternalError("resolver unavailable")
	assert.Equal(t, "INTERNAL_ERROR", resp.Error)
	assert.Equal(t, 500, resp.Code)
	assert.Equal(t, "resolver unavailable", resp.Message)
}
