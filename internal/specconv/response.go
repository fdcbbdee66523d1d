package specconv

// ResponseToOpenAI converts a completed model response to OpenAI's chat
// completion shape. A response that already is one (object=="chat.completion")
// passes through unchanged, making the conversion idempotent.
func (c *Converter) ResponseToOpenAI(resp map[string]any, model string) (map[string]any, error) {
	if resp == nil {
		resp = map[string]any{}
	}
	if stringOf(resp, "object") == "chat.completion" {
		return resp, nil
	}

	blocks, err := asList("content", resp["content"])
	if err != nil {
		return nil, err
	}

	var toolUses []any
	for _, raw := range blocks {
		if block, ok := raw.(map[string]any); ok && stringOf(block, "type") == "tool_use" {
			toolUses = append(toolUses, block)
		}
	}

	message := map[string]any{"role": "assistant"}
	if text, ok := joinTextBlocks(blocks); ok {
		message["content"] = text
	} else {
		message["content"] = nil
	}

	finishReason := "stop"
	if len(toolUses) > 0 {
		calls, err := c.CallsToOpenAI(toolUses, false)
		if err != nil {
			return nil, err
		}
		message["tool_calls"] = calls
	}
	if stringOf(resp, "stop_reason") == "tool_use" {
		finishReason = "tool_calls"
	}

	id := stringOf(resp, "id")
	if id == "" {
		id = newResponseID(chatCompletionIDPrefix)
	}
	if model == "" {
		model = stringOf(resp, "model")
	}

	usage, _ := resp["usage"].(map[string]any)
	if usage == nil {
		usage = map[string]any{}
	}
	inputTokens := intOf(usage, "input_tokens")
	outputTokens := intOf(usage, "output_tokens")

	return map[string]any{
		"id":      id,
		"object":  "chat.completion",
		"created": 0,
		"model":   model,
		"choices": []any{
			map[string]any{
				"index":         0,
				"message":       message,
				"finish_reason": finishReason,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     inputTokens,
			"completion_tokens": outputTokens,
			"total_tokens":      inputTokens + outputTokens,
		},
	}, nil
}

// ResponseToAnthropic converts a completed model response to Anthropic's
// message shape. A response that already is one (type=="message") passes
// through unchanged.
func (c *Converter) ResponseToAnthropic(resp map[string]any, model string) (map[string]any, error) {
	if resp == nil {
		resp = map[string]any{}
	}
	if stringOf(resp, "type") == "message" {
		return resp, nil
	}

	message := firstChoiceMessage(resp)

	var blocks []any
	if text, ok := message["content"].(string); ok && text != "" {
		blocks = append(blocks, map[string]any{
			"type": "text",
			"text": text,
		})
	}

	stopReason := "end_turn"
	if truthy(message["tool_calls"]) {
		toolUses, err := c.CallsToAnthropic(message["tool_calls"])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, toolUses...)
		stopReason = "tool_use"
	}
	// OpenAI signals tool use via finish_reason even when the tool_calls
	// themselves failed to parse; honor the signal either way.
	if finishReason(resp) == "tool_calls" {
		stopReason = "tool_use"
	}

	id := stringOf(resp, "id")
	if id == "" {
		id = newResponseID(messageIDPrefix)
	}
	if model == "" {
		model = stringOf(resp, "model")
	}

	usage, _ := resp["usage"].(map[string]any)
	if usage == nil {
		usage = map[string]any{}
	}

	if blocks == nil {
		blocks = []any{}
	}
	return map[string]any{
		"id":          id,
		"type":        "message",
		"role":        "assistant",
		"model":       model,
		"content":     blocks,
		"stop_reason": stopReason,
		"usage": map[string]any{
			"input_tokens":  intOf(usage, "prompt_tokens"),
			"output_tokens": intOf(usage, "completion_tokens"),
		},
	}, nil
}

// firstChoiceMessage digs out choices[0].message, tolerating any missing
// level along the way.
func firstChoiceMessage(resp map[string]any) map[string]any {
	choices, _ := resp["choices"].([]any)
	if len(choices) == 0 {
		return map[string]any{}
	}
	choice, _ := choices[0].(map[string]any)
	if choice == nil {
		return map[string]any{}
	}
	message, _ := choice["message"].(map[string]any)
	if message == nil {
		return map[string]any{}
	}
	return message
}

func finishReason(resp map[string]any) string {
	choices, _ := resp["choices"].([]any)
	if len(choices) == 0 {
		return ""
	}
	choice, _ := choices[0].(map[string]any)
	if choice == nil {
		return ""
	}
	return stringOf(choice, "finish_reason")
}
