package specconv

// MessagesToOpenAI converts a conversation history to OpenAI's shape.
// Anthropic assistant turns are split into joined text plus tool_calls;
// tool_result blocks inside user turns become standalone "tool"-role
// messages, emitted before the remaining user text. System and tool turns
// that are already OpenAI-shaped pass through unchanged.
func (c *Converter) MessagesToOpenAI(messages any) ([]any, error) {
	list, err := asList("messages", messages)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(list))
	for _, raw := range list {
		msg, ok := raw.(map[string]any)
		if !ok {
			out = append(out, raw)
			continue
		}

		switch stringOf(msg, "role") {
		case "assistant":
			converted, err := c.assistantToOpenAI(msg)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		case "user":
			emitted, err := c.userToOpenAI(msg)
			if err != nil {
				return nil, err
			}
			out = append(out, emitted...)
		default:
			// "tool" turns are already OpenAI-shaped; unknown roles pass
			// through for forward compatibility.
			out = append(out, msg)
		}
	}
	return out, nil
}

func (c *Converter) assistantToOpenAI(msg map[string]any) (map[string]any, error) {
	blocks, isBlockArray := msg["content"].([]any)
	if !isBlockArray {
		// Plain-string content: copy through, converting any attached calls.
		converted := map[string]any{
			"role":    "assistant",
			"content": msg["content"],
		}
		if truthy(msg["tool_calls"]) {
			calls, err := c.CallsToOpenAI(msg["tool_calls"], false)
			if err != nil {
				return nil, err
			}
			converted["tool_calls"] = calls
		}
		return converted, nil
	}

	var toolUses []any
	for _, raw := range blocks {
		if block, ok := raw.(map[string]any); ok && stringOf(block, "type") == "tool_use" {
			toolUses = append(toolUses, block)
		}
	}

	converted := map[string]any{"role": "assistant"}
	if text, ok := joinTextBlocks(blocks); ok {
		converted["content"] = text
	} else {
		converted["content"] = nil
	}
	if len(toolUses) > 0 {
		calls, err := c.CallsToOpenAI(toolUses, false)
		if err != nil {
			return nil, err
		}
		converted["tool_calls"] = calls
	}
	return converted, nil
}

// userToOpenAI may emit several messages for one user turn: one "tool"-role
// message per embedded tool_result block, followed by at most one user
// message holding the remaining text.
func (c *Converter) userToOpenAI(msg map[string]any) ([]any, error) {
	blocks, isBlockArray := msg["content"].([]any)
	if !isBlockArray {
		return []any{map[string]any{
			"role":    "user",
			"content": msg["content"],
		}}, nil
	}

	var emitted []any
	var textBlocks []any
	for _, raw := range blocks {
		block, ok := raw.(map[string]any)
		if !ok {
			textBlocks = append(textBlocks, raw)
			continue
		}
		if stringOf(block, "type") == "tool_result" {
			content := block["content"]
			if content == nil {
				content = ""
			}
			emitted = append(emitted, map[string]any{
				"role":         "tool",
				"tool_call_id": stringOf(block, "tool_use_id"),
				"content":      content,
			})
			continue
		}
		textBlocks = append(textBlocks, block)
	}

	if text, ok := joinTextBlocks(textBlocks); ok && text != "" {
		emitted = append(emitted, map[string]any{
			"role":    "user",
			"content": text,
		})
	}
	return emitted, nil
}

// MessagesToAnthropic converts a conversation history to Anthropic's shape.
// System turns are hoisted out into the returned system string (overwriting
// the passed-in default). OpenAI "tool"-role messages are buffered and folded
// into the content array of the next user turn; trailing tool results with no
// following user turn flush into one final synthetic user message. This
// buffering exists because OpenAI permits a tool result to be followed
// directly by an assistant turn, while Anthropic requires tool results to
// live inside a user turn.
func (c *Converter) MessagesToAnthropic(messages any, system string) (string, []any, error) {
	list, err := asList("messages", messages)
	if err != nil {
		return system, nil, err
	}

	var pendingToolResults []any
	out := make([]any, 0, len(list))

	for _, raw := range list {
		msg, ok := raw.(map[string]any)
		if !ok {
			out = append(out, raw)
			continue
		}

		switch stringOf(msg, "role") {
		case "system":
			system = textContent(msg["content"])

		case "assistant":
			blocks, err := c.assistantToAnthropic(msg)
			if err != nil {
				return system, nil, err
			}
			if len(blocks) > 0 {
				out = append(out, map[string]any{
					"role":    "assistant",
					"content": blocks,
				})
			}

		case "tool":
			content := msg["content"]
			if content == nil {
				content = ""
			}
			pendingToolResults = append(pendingToolResults, map[string]any{
				"type":        "tool_result",
				"tool_use_id": stringOf(msg, "tool_call_id"),
				"content":     content,
			})

		case "user":
			blocks := pendingToolResults
			pendingToolResults = nil
			switch content := msg["content"].(type) {
			case string:
				if content != "" {
					blocks = append(blocks, map[string]any{
						"type": "text",
						"text": content,
					})
				}
			case []any:
				blocks = append(blocks, content...)
			}
			if len(blocks) > 0 {
				out = append(out, map[string]any{
					"role":    "user",
					"content": blocks,
				})
			}

		default:
			out = append(out, msg)
		}
	}

	if len(pendingToolResults) > 0 {
		out = append(out, map[string]any{
			"role":    "user",
			"content": pendingToolResults,
		})
	}
	return system, out, nil
}

func (c *Converter) assistantToAnthropic(msg map[string]any) ([]any, error) {
	var blocks []any
	switch content := msg["content"].(type) {
	case string:
		if content != "" {
			blocks = append(blocks, map[string]any{
				"type": "text",
				"text": content,
			})
		}
	case []any:
		blocks = append(blocks, content...)
	}

	if truthy(msg["tool_calls"]) {
		toolUses, err := c.CallsToAnthropic(msg["tool_calls"])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, toolUses...)
	}
	return blocks, nil
}

// textContent flattens message content to a plain string for the hoisted
// system prompt: strings pass through, block arrays have their text joined.
func textContent(content any) string {
	switch v := content.(type) {
	case string:
		return v
	case []any:
		text, _ := joinTextBlocks(v)
		return text
	default:
		return ""
	}
}
