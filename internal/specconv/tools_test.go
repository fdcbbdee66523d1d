package specconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsToOpenAI(t *testing.T) {
	conv := New()

	t.Run("generic shape", func(t *testing.T) {
		tools := []any{
			map[string]any{
				"name":        "get_weather",
				"description": "",
				"parameters":  map[string]any{"type": "object", "properties": map[string]any{}},
			},
		}
		out, err := conv.ToolsToOpenAI(tools)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        "get_weather",
				"description": "",
				"parameters":  map[string]any{"type": "object", "properties": map[string]any{}},
			},
		}, out[0])
	})

	t.Run("anthropic shape remaps input_schema", func(t *testing.T) {
		schema := map[string]any{"type": "object", "properties": map[string]any{"city": map[string]any{"type": "string"}}}
		out, err := conv.ToolsToOpenAI([]any{
			map[string]any{"name": "get_weather", "description": "Weather lookup", "input_schema": schema},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		fn := out[0].(map[string]any)["function"].(map[string]any)
		assert.Equal(t, "get_weather", fn["name"])
		assert.Equal(t, "Weather lookup", fn["description"])
		assert.Equal(t, schema, fn["parameters"])
	})

	t.Run("openai shape passes through", func(t *testing.T) {
		tool := map[string]any{
			"type":     "function",
			"function": map[string]any{"name": "f", "parameters": map[string]any{}},
		}
		out, err := conv.ToolsToOpenAI([]any{tool})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, tool, out[0])
	})

	t.Run("missing description and parameters default", func(t *testing.T) {
		out, err := conv.ToolsToOpenAI([]any{map[string]any{"name": "bare"}})
		require.NoError(t, err)
		fn := out[0].(map[string]any)["function"].(map[string]any)
		assert.Equal(t, "", fn["description"])
		assert.Equal(t, map[string]any{}, fn["parameters"])
	})

	t.Run("nil tools is empty", func(t *testing.T) {
		out, err := conv.ToolsToOpenAI(nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("non-list tools is a contract error", func(t *testing.T) {
		_, err := conv.ToolsToOpenAI("not a list")
		require.ErrorIs(t, err, ErrInvalidShape)
	})
}

func TestToolsToAnthropic(t *testing.T) {
	conv := New()

	t.Run("generic shape", func(t *testing.T) {
		out, err := conv.ToolsToAnthropic([]any{
			map[string]any{
				"name":        "get_weather",
				"description": "",
				"parameters":  map[string]any{"type": "object", "properties": map[string]any{}},
			},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, map[string]any{
			"name":         "get_weather",
			"description":  "",
			"input_schema": map[string]any{"type": "object", "properties": map[string]any{}},
		}, out[0])
	})

	t.Run("openai shape unwraps", func(t *testing.T) {
		out, err := conv.ToolsToAnthropic([]any{
			map[string]any{
				"type": "function",
				"function": map[string]any{
					"name":        "search",
					"description": "Search things",
					"parameters":  map[string]any{"type": "object"},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, map[string]any{
			"name":         "search",
			"description":  "Search things",
			"input_schema": map[string]any{"type": "object"},
		}, out[0])
	})

	t.Run("anthropic shape passes through", func(t *testing.T) {
		tool := map[string]any{"name": "f", "input_schema": map[string]any{"type": "object"}}
		out, err := conv.ToolsToAnthropic([]any{tool})
		require.NoError(t, err)
		assert.Equal(t, tool, out[0])
	})

	t.Run("missing parameters default to empty object schema", func(t *testing.T) {
		out, err := conv.ToolsToAnthropic([]any{map[string]any{"name": "bare"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, out[0].(map[string]any)["input_schema"])
	})

	t.Run("non-list tools is a contract error", func(t *testing.T) {
		_, err := conv.ToolsToAnthropic(map[string]any{})
		require.ErrorIs(t, err, ErrInvalidShape)
	})
}

func TestTools_RoundTripIdempotence(t *testing.T) {
	conv := New()

	generic := []any{map[string]any{
		"name":        "get_weather",
		"description": "Weather",
		"parameters":  map[string]any{"type": "object", "properties": map[string]any{}},
	}}

	once, err := conv.ToolsToOpenAI(generic)
	require.NoError(t, err)
	twice, err := conv.ToolsToOpenAI(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	onceA, err := conv.ToolsToAnthropic(generic)
	require.NoError(t, err)
	twiceA, err := conv.ToolsToAnthropic(onceA)
	require.NoError(t, err)
	assert.Equal(t, onceA, twiceA)
}
