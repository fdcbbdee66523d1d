package specconv

// toolShape classifies a tool declaration once, so the converters can
// dispatch on it instead of re-probing keys.
type toolShape int

const (
	// toolShapeFunction is OpenAI's {type:"function", function:{...}}.
	toolShapeFunction toolShape = iota
	// toolShapeAnthropic is Anthropic's flat {name, description, input_schema}.
	toolShapeAnthropic
	// toolShapeGeneric is a bare {name, description, parameters} declaration.
	toolShapeGeneric
)

func classifyTool(tool map[string]any) toolShape {
	if stringOf(tool, "type") == "function" {
		return toolShapeFunction
	}
	if _, ok := tool["input_schema"]; ok {
		return toolShapeAnthropic
	}
	return toolShapeGeneric
}

// ToolsToOpenAI converts a list of tool declarations to the OpenAI shape.
// Declarations already in the OpenAI shape pass through unchanged. Missing
// descriptions default to "" and missing parameter schemas to {}.
func (c *Converter) ToolsToOpenAI(tools any) ([]any, error) {
	list, err := asList("tools", tools)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(list))
	for _, raw := range list {
		tool, ok := raw.(map[string]any)
		if !ok {
			out = append(out, raw)
			continue
		}

		switch classifyTool(tool) {
		case toolShapeFunction:
			out = append(out, tool)
		case toolShapeAnthropic:
			schema := tool["input_schema"]
			if schema == nil {
				schema = map[string]any{}
			}
			out = append(out, wrapFunctionTool(stringOf(tool, "name"), stringOf(tool, "description"), schema))
		case toolShapeGeneric:
			schema := tool["parameters"]
			if schema == nil {
				schema = map[string]any{}
			}
			out = append(out, wrapFunctionTool(stringOf(tool, "name"), stringOf(tool, "description"), schema))
		}
	}
	return out, nil
}

// ToolsToAnthropic converts a list of tool declarations to the Anthropic
// shape. Declarations already in the Anthropic shape pass through unchanged.
func (c *Converter) ToolsToAnthropic(tools any) ([]any, error) {
	list, err := asList("tools", tools)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(list))
	for _, raw := range list {
		tool, ok := raw.(map[string]any)
		if !ok {
			out = append(out, raw)
			continue
		}

		switch classifyTool(tool) {
		case toolShapeAnthropic:
			out = append(out, tool)
		case toolShapeFunction:
			fn, _ := tool["function"].(map[string]any)
			if fn == nil {
				fn = map[string]any{}
			}
			out = append(out, map[string]any{
				"name":         stringOf(fn, "name"),
				"description":  stringOf(fn, "description"),
				"input_schema": schemaOrEmpty(fn["parameters"]),
			})
		case toolShapeGeneric:
			out = append(out, map[string]any{
				"name":         stringOf(tool, "name"),
				"description":  stringOf(tool, "description"),
				"input_schema": schemaOrEmpty(tool["parameters"]),
			})
		}
	}
	return out, nil
}

func wrapFunctionTool(name, description string, parameters any) map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        name,
			"description": description,
			"parameters":  parameters,
		},
	}
}

// schemaOrEmpty substitutes the minimal valid Anthropic input schema when the
// source declares no parameters at all.
func schemaOrEmpty(schema any) any {
	if schema == nil {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}
	return schema
}
