package specconv

import (
	"github.com/tidwall/gjson"
)

// DetectSpec decides whether a decoded request body is OpenAI- or
// Anthropic-shaped. Rules are checked in priority order, first match wins:
//
//  1. auto-detection disabled: the runtime override if set, else the
//     configured default. No structural inspection happens.
//  2. a top-level anthropic_version key is Anthropic.
//  3. a top-level system field that is a plain string is Anthropic (OpenAI
//     carries system prompts inside the messages array).
//  4. scanning messages: a "tool" role or a truthy tool_calls key is OpenAI;
//     a content array holding a tool_use or tool_result block is Anthropic.
//  5. no signal: the runtime override if set, else OpenAI.
//
// The override is read fresh on every call, never cached from construction.
func (c *Converter) DetectSpec(payload map[string]any) Format {
	if !c.autoDetect {
		if f, ok := c.override(); ok {
			return f
		}
		return c.defaultFormat
	}

	if _, ok := payload["anthropic_version"]; ok {
		return FormatAnthropic
	}
	if _, isString := payload["system"].(string); isString {
		return FormatAnthropic
	}

	if messages, ok := payload["messages"].([]any); ok {
		for _, raw := range messages {
			msg, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if stringOf(msg, "role") == "tool" {
				return FormatOpenAI
			}
			if truthy(msg["tool_calls"]) {
				return FormatOpenAI
			}
			if blocks, ok := msg["content"].([]any); ok {
				for _, rawBlock := range blocks {
					block, ok := rawBlock.(map[string]any)
					if !ok {
						continue
					}
					switch stringOf(block, "type") {
					case "tool_use", "tool_result":
						return FormatAnthropic
					}
				}
			}
		}
	}

	if f, ok := c.override(); ok {
		return f
	}
	return FormatOpenAI
}

// DetectSpecBytes applies the DetectSpec rules directly to a raw JSON body,
// so HTTP front-ends can route a request before paying for a full decode.
func (c *Converter) DetectSpecBytes(body []byte) Format {
	if !c.autoDetect {
		if f, ok := c.override(); ok {
			return f
		}
		return c.defaultFormat
	}

	if gjson.GetBytes(body, "anthropic_version").Exists() {
		return FormatAnthropic
	}
	if system := gjson.GetBytes(body, "system"); system.Type == gjson.String {
		return FormatAnthropic
	}

	var detected Format
	gjson.GetBytes(body, "messages").ForEach(func(_, msg gjson.Result) bool {
		if msg.Get("role").Str == "tool" {
			detected = FormatOpenAI
			return false
		}
		if resultTruthy(msg.Get("tool_calls")) {
			detected = FormatOpenAI
			return false
		}
		content := msg.Get("content")
		if content.IsArray() {
			content.ForEach(func(_, block gjson.Result) bool {
				switch block.Get("type").Str {
				case "tool_use", "tool_result":
					detected = FormatAnthropic
					return false
				}
				return true
			})
		}
		return detected == ""
	})
	if detected != "" {
		return detected
	}

	if f, ok := c.override(); ok {
		return f
	}
	return FormatOpenAI
}

// resultTruthy is truthy for gjson results.
func resultTruthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	case gjson.JSON:
		if r.IsArray() {
			return len(r.Array()) > 0
		}
		return len(r.Map()) > 0
	default:
		return false
	}
}
