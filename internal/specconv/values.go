package specconv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidShape is returned when a caller passes a value that is not
// structurally usable at all (e.g. a tools field that is not a list). It is
// the only hard failure class; everything narrower is defaulted instead.
var ErrInvalidShape = errors.New("invalid input shape")

// asList coerces a decoded JSON value to a list. A nil value is treated as an
// absent optional field and yields an empty list.
func asList(name string, v any) ([]any, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return list, nil
	default:
		return nil, fmt.Errorf("%s: expected list, got %T: %w", name, v, ErrInvalidShape)
	}
}

// stringOf returns the value under key if it is a string, else "".
func stringOf(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// intOf returns the value under key as an int, tolerating the float64 that
// encoding/json produces for all numbers.
func intOf(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}

// truthy mirrors the loose presence check used throughout the wire formats:
// absent, null, false, zero, empty string and empty collections are all false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// joinTextBlocks joins the text of all {type:"text"} blocks with newlines.
// ok reports whether at least one text block was found.
func joinTextBlocks(blocks []any) (string, bool) {
	var texts []string
	for _, raw := range blocks {
		block, isMap := raw.(map[string]any)
		if !isMap {
			if s, isStr := raw.(string); isStr {
				texts = append(texts, s)
			}
			continue
		}
		if stringOf(block, "type") == "text" {
			texts = append(texts, stringOf(block, "text"))
		}
	}
	if len(texts) == 0 {
		return "", false
	}
	return strings.Join(texts, "\n"), true
}
