package specconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesToOpenAI(t *testing.T) {
	conv := New()

	t.Run("assistant block array splits into text and tool_calls", func(t *testing.T) {
		out, err := conv.MessagesToOpenAI([]any{
			map[string]any{
				"role": "assistant",
				"content": []any{
					map[string]any{"type": "text", "text": "Checking the weather."},
					map[string]any{"type": "tool_use", "id": "toolu_1", "name": "get_weather", "input": map[string]any{"city": "Oslo"}},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		msg := out[0].(map[string]any)
		assert.Equal(t, "assistant", msg["role"])
		assert.Equal(t, "Checking the weather.", msg["content"])
		calls := msg["tool_calls"].([]any)
		require.Len(t, calls, 1)
		assert.Equal(t, "toolu_1", calls[0].(map[string]any)["id"])
	})

	t.Run("assistant with only tool_use has null content", func(t *testing.T) {
		out, err := conv.MessagesToOpenAI([]any{
			map[string]any{
				"role": "assistant",
				"content": []any{
					map[string]any{"type": "tool_use", "id": "toolu_1", "name": "f", "input": map[string]any{}},
				},
			},
		})
		require.NoError(t, err)
		msg := out[0].(map[string]any)
		assert.Nil(t, msg["content"])
		assert.Len(t, msg["tool_calls"], 1)
	})

	t.Run("assistant multiple text blocks joined with newline", func(t *testing.T) {
		out, err := conv.MessagesToOpenAI([]any{
			map[string]any{
				"role": "assistant",
				"content": []any{
					map[string]any{"type": "text", "text": "first"},
					map[string]any{"type": "text", "text": "second"},
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond", out[0].(map[string]any)["content"])
	})

	t.Run("user tool_result blocks become tool messages before text", func(t *testing.T) {
		out, err := conv.MessagesToOpenAI([]any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": "here you go"},
					map[string]any{"type": "tool_result", "tool_use_id": "toolu_1", "content": "sunny"},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		first := out[0].(map[string]any)
		assert.Equal(t, "tool", first["role"])
		assert.Equal(t, "toolu_1", first["tool_call_id"])
		assert.Equal(t, "sunny", first["content"])
		second := out[1].(map[string]any)
		assert.Equal(t, "user", second["role"])
		assert.Equal(t, "here you go", second["content"])
	})

	t.Run("user with only tool_results emits no user message", func(t *testing.T) {
		out, err := conv.MessagesToOpenAI([]any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "tool_result", "tool_use_id": "a", "content": "1"},
					map[string]any{"type": "tool_result", "tool_use_id": "b", "content": "2"},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, raw := range out {
			assert.Equal(t, "tool", raw.(map[string]any)["role"])
		}
	})

	t.Run("plain string turns pass through", func(t *testing.T) {
		messages := []any{
			map[string]any{"role": "system", "content": "Be helpful."},
			map[string]any{"role": "user", "content": "hello"},
			map[string]any{"role": "tool", "tool_call_id": "call_1", "content": "result"},
		}
		out, err := conv.MessagesToOpenAI(messages)
		require.NoError(t, err)
		assert.Equal(t, messages, out)
	})
}

func TestMessagesToAnthropic(t *testing.T) {
	conv := New()

	t.Run("system turn is hoisted", func(t *testing.T) {
		system, out, err := conv.MessagesToAnthropic([]any{
			map[string]any{"role": "system", "content": "Be terse."},
			map[string]any{"role": "user", "content": "hi"},
		}, "default")
		require.NoError(t, err)
		assert.Equal(t, "Be terse.", system)
		require.Len(t, out, 1)
		assert.Equal(t, "user", out[0].(map[string]any)["role"])
	})

	t.Run("assistant tool_calls become tool_use blocks", func(t *testing.T) {
		_, out, err := conv.MessagesToAnthropic([]any{
			map[string]any{
				"role":    "assistant",
				"content": "Let me check.",
				"tool_calls": []any{
					map[string]any{
						"id":       "call_1",
						"type":     "function",
						"function": map[string]any{"name": "get_weather", "arguments": `{"city":"Oslo"}`},
					},
				},
			},
		}, "")
		require.NoError(t, err)
		require.Len(t, out, 1)
		blocks := out[0].(map[string]any)["content"].([]any)
		require.Len(t, blocks, 2)
		assert.Equal(t, "text", blocks[0].(map[string]any)["type"])
		toolUse := blocks[1].(map[string]any)
		assert.Equal(t, "tool_use", toolUse["type"])
		assert.Equal(t, map[string]any{"city": "Oslo"}, toolUse["input"])
	})

	t.Run("empty assistant turn is dropped", func(t *testing.T) {
		_, out, err := conv.MessagesToAnthropic([]any{
			map[string]any{"role": "assistant", "content": ""},
		}, "")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("tool results buffer into the next user turn", func(t *testing.T) {
		_, out, err := conv.MessagesToAnthropic([]any{
			map[string]any{"role": "tool", "tool_call_id": "call_a", "content": "1"},
			map[string]any{"role": "tool", "tool_call_id": "call_b", "content": "2"},
			map[string]any{"role": "user", "content": "thanks"},
		}, "")
		require.NoError(t, err)
		require.Len(t, out, 1)

		msg := out[0].(map[string]any)
		assert.Equal(t, "user", msg["role"])
		blocks := msg["content"].([]any)
		require.Len(t, blocks, 3)
		assert.Equal(t, "tool_result", blocks[0].(map[string]any)["type"])
		assert.Equal(t, "call_a", blocks[0].(map[string]any)["tool_use_id"])
		assert.Equal(t, "call_b", blocks[1].(map[string]any)["tool_use_id"])
		assert.Equal(t, map[string]any{"type": "text", "text": "thanks"}, blocks[2])
	})

	t.Run("trailing tool results flush into a synthetic user turn", func(t *testing.T) {
		_, out, err := conv.MessagesToAnthropic([]any{
			map[string]any{"role": "assistant", "content": "calling"},
			map[string]any{"role": "tool", "tool_call_id": "call_a", "content": "done"},
		}, "")
		require.NoError(t, err)
		require.Len(t, out, 2)

		last := out[1].(map[string]any)
		assert.Equal(t, "user", last["role"])
		blocks := last["content"].([]any)
		require.Len(t, blocks, 1)
		assert.Equal(t, "tool_result", blocks[0].(map[string]any)["type"])
	})

	t.Run("tool result with nil content defaults to empty string", func(t *testing.T) {
		_, out, err := conv.MessagesToAnthropic([]any{
			map[string]any{"role": "tool", "tool_call_id": "call_a"},
		}, "")
		require.NoError(t, err)
		blocks := out[0].(map[string]any)["content"].([]any)
		assert.Equal(t, "", blocks[0].(map[string]any)["content"])
	})
}

// The crux scenario: an Anthropic history converted to OpenAI and back must
// merge the pending tool results into a single user turn positioned before
// the user's text, not as separate user turns.
func TestMessages_ToolResultBufferingRoundTrip(t *testing.T) {
	conv := New()

	original := []any{
		map[string]any{
			"role": "assistant",
			"content": []any{
				map[string]any{"type": "tool_use", "id": "toolu_x", "name": "f", "input": map[string]any{"a": float64(1)}},
				map[string]any{"type": "tool_use", "id": "toolu_y", "name": "g", "input": map[string]any{}},
			},
		},
		map[string]any{
			"role": "user",
			"content": []any{
				map[string]any{"type": "tool_result", "tool_use_id": "toolu_x", "content": "10"},
				map[string]any{"type": "tool_result", "tool_use_id": "toolu_y", "content": "20"},
				map[string]any{"type": "text", "text": "thanks"},
			},
		},
	}

	asOpenAI, err := conv.MessagesToOpenAI(original)
	require.NoError(t, err)
	// assistant + two tool messages + one user text message
	require.Len(t, asOpenAI, 4)

	_, back, err := conv.MessagesToAnthropic(asOpenAI, "")
	require.NoError(t, err)
	require.Len(t, back, 2)

	user := back[1].(map[string]any)
	require.Equal(t, "user", user["role"])
	blocks := user["content"].([]any)
	require.Len(t, blocks, 3)
	assert.Equal(t, "tool_result", blocks[0].(map[string]any)["type"])
	assert.Equal(t, "toolu_x", blocks[0].(map[string]any)["tool_use_id"])
	assert.Equal(t, "tool_result", blocks[1].(map[string]any)["type"])
	assert.Equal(t, "toolu_y", blocks[1].(map[string]any)["tool_use_id"])
	assert.Equal(t, "text", blocks[2].(map[string]any)["type"])
	assert.Equal(t, "thanks", blocks[2].(map[string]any)["text"])
}
