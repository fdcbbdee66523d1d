package gateway

import (
	"github.com/specbridge/specbridge/internal/specconv"
)

// defaultMaxTokens is used when an OpenAI request omits max_tokens, which the
// Anthropic Messages API requires.
const defaultMaxTokens = 1024

// TranslateRequest converts an entire request body from source to target
// format: tool declarations, message history, the hoisted/embedded system
// prompt, and the sampling parameters both APIs share. A body already in the
// target format is returned as-is.
func TranslateRequest(conv *specconv.Converter, payload map[string]any, source, target specconv.Format) (map[string]any, error) {
	if source == target {
		return payload, nil
	}
	if target == specconv.FormatAnthropic {
		return translateToAnthropic(conv, payload)
	}
	return translateToOpenAI(conv, payload)
}

func translateToAnthropic(conv *specconv.Converter, payload map[string]any) (map[string]any, error) {
	out := map[string]any{}
	copyIfPresent(out, payload, "model", "temperature", "top_p", "stream")

	system, _ := payload["system"].(string)
	system, messages, err := conv.MessagesToAnthropic(payload["messages"], system)
	if err != nil {
		return nil, err
	}
	out["messages"] = messages
	if system != "" {
		out["system"] = system
	}

	if payload["tools"] != nil {
		tools, err := conv.ToolsToAnthropic(payload["tools"])
		if err != nil {
			return nil, err
		}
		if len(tools) > 0 {
			out["tools"] = tools
		}
	}

	if maxTokens, ok := payload["max_tokens"]; ok {
		out["max_tokens"] = maxTokens
	} else {
		out["max_tokens"] = defaultMaxTokens
	}

	switch stop := payload["stop"].(type) {
	case string:
		out["stop_sequences"] = []any{stop}
	case []any:
		out["stop_sequences"] = stop
	}

	return out, nil
}

func translateToOpenAI(conv *specconv.Converter, payload map[string]any) (map[string]any, error) {
	out := map[string]any{}
	copyIfPresent(out, payload, "model", "temperature", "top_p", "max_tokens", "stream")

	messages, err := conv.MessagesToOpenAI(payload["messages"])
	if err != nil {
		return nil, err
	}
	// The hoisted system string becomes a leading system message.
	if system, ok := payload["system"].(string); ok && system != "" {
		messages = append([]any{map[string]any{
			"role":    "system",
			"content": system,
		}}, messages...)
	}
	out["messages"] = messages

	if payload["tools"] != nil {
		tools, err := conv.ToolsToOpenAI(payload["tools"])
		if err != nil {
			return nil, err
		}
		if len(tools) > 0 {
			out["tools"] = tools
		}
	}

	if stops, ok := payload["stop_sequences"].([]any); ok && len(stops) > 0 {
		out["stop"] = stops
	}

	return out, nil
}

func copyIfPresent(dst, src map[string]any, keys ...string) {
	for _, key := range keys {
		if v, ok := src[key]; ok && v != nil {
			dst[key] = v
		}
	}
}
