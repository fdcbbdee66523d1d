package specconv

import (
	"encoding/json"
)

// CallsToOpenAI converts a list of tool calls to OpenAI's shape. Calls that
// are already OpenAI-shaped pass through; when streaming is true each emitted
// call additionally carries its zero-based index, as the streaming chunk
// protocol requires.
func (c *Converter) CallsToOpenAI(calls any, streaming bool) ([]any, error) {
	list, err := asList("tool_calls", calls)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(list))
	for i, raw := range list {
		call, ok := raw.(map[string]any)
		if !ok {
			out = append(out, raw)
			continue
		}

		switch {
		case stringOf(call, "type") == "function" && call["function"] != nil:
			if streaming {
				if _, hasIndex := call["index"]; !hasIndex {
					indexed := make(map[string]any, len(call)+1)
					for k, v := range call {
						indexed[k] = v
					}
					indexed["index"] = i
					out = append(out, indexed)
					continue
				}
			}
			out = append(out, call)

		case stringOf(call, "type") == "tool_use":
			id := stringOf(call, "id")
			if id == "" {
				id = NewToolCallID(openAICallIDPrefix)
			}
			converted := map[string]any{
				"id":   id,
				"type": "function",
				"function": map[string]any{
					"name":      stringOf(call, "name"),
					"arguments": encodeArguments(call["input"]),
				},
			}
			if streaming {
				converted["index"] = i
			}
			out = append(out, converted)

		default:
			id, name, args := genericCallFields(call)
			if id == "" {
				id = NewToolCallID(openAICallIDPrefix)
			}
			converted := map[string]any{
				"id":   id,
				"type": "function",
				"function": map[string]any{
					"name":      name,
					"arguments": encodeArguments(args),
				},
			}
			if streaming {
				converted["index"] = i
			}
			out = append(out, converted)
		}
	}
	return out, nil
}

// CallsToAnthropic converts a list of tool calls to Anthropic tool_use
// blocks. OpenAI-shaped calls have their JSON-string arguments decoded to a
// native object; a malformed argument string decodes to {} rather than
// failing the conversion.
func (c *Converter) CallsToAnthropic(calls any) ([]any, error) {
	list, err := asList("tool_calls", calls)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(list))
	for _, raw := range list {
		call, ok := raw.(map[string]any)
		if !ok {
			out = append(out, raw)
			continue
		}

		switch {
		case stringOf(call, "type") == "tool_use":
			out = append(out, call)

		case stringOf(call, "type") == "function":
			fn, _ := call["function"].(map[string]any)
			if fn == nil {
				fn = map[string]any{}
			}
			id := stringOf(call, "id")
			if id == "" {
				id = NewToolCallID(anthropicCallIDPrefix)
			}
			out = append(out, map[string]any{
				"type":  "tool_use",
				"id":    id,
				"name":  stringOf(fn, "name"),
				"input": decodeArguments(fn["arguments"]),
			})

		default:
			id, name, args := genericCallFields(call)
			if id == "" {
				id = NewToolCallID(anthropicCallIDPrefix)
			}
			out = append(out, map[string]any{
				"type":  "tool_use",
				"id":    id,
				"name":  name,
				"input": decodeArguments(args),
			})
		}
	}
	return out, nil
}

// genericCallFields resolves a loosely-shaped tool call: "tool" is accepted as
// a name fallback, and the argument object may live under args, parameters,
// input or arguments.
func genericCallFields(call map[string]any) (id, name string, args any) {
	name = stringOf(call, "name")
	if name == "" {
		name = stringOf(call, "tool")
	}
	for _, key := range []string{"args", "parameters", "input", "arguments"} {
		if v, ok := call[key]; ok && v != nil {
			args = v
			break
		}
	}
	return stringOf(call, "id"), name, args
}

// encodeArguments renders a tool call's arguments as the JSON string OpenAI
// expects. Strings are assumed to be JSON already and pass through.
func encodeArguments(args any) string {
	switch v := args.(type) {
	case nil:
		return "{}"
	case string:
		if v == "" {
			return "{}"
		}
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "{}"
		}
		return string(encoded)
	}
}

// decodeArguments produces the native argument object Anthropic expects.
// Decode failures normalize to an empty object, never an error.
func decodeArguments(args any) map[string]any {
	switch v := args.(type) {
	case map[string]any:
		return v
	case string:
		var decoded map[string]any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil || decoded == nil {
			return map[string]any{}
		}
		return decoded
	default:
		return map[string]any{}
	}
}
