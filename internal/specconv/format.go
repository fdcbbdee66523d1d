package specconv

import (
	"os"
	"strings"
)

// Format identifies one of the two tool-calling wire formats.
type Format string

const (
	// FormatOpenAI is the OpenAI Chat Completions format.
	FormatOpenAI Format = "openai"
	// FormatAnthropic is the Anthropic Messages format.
	FormatAnthropic Format = "anthropic"
)

// String returns the raw format identifier.
func (f Format) String() string {
	return string(f)
}

// ParseFormat normalizes an arbitrary identifier to a known Format.
// Matching is case-insensitive; unknown or empty values report ok=false.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatOpenAI:
		return FormatOpenAI, true
	case FormatAnthropic:
		return FormatAnthropic, true
	default:
		return "", false
	}
}

// ToolAPISpecEnv is the environment variable that overrides the wire format
// at runtime. It is consulted on every detection call, never cached.
const ToolAPISpecEnv = "TOOL_API_SPEC"

// OverrideProvider supplies a runtime format override. The production
// implementation reads the process environment; tests inject static values
// so they don't have to manipulate the environment globally.
type OverrideProvider interface {
	// CurrentOverride returns the raw override value, or "" for no override.
	CurrentOverride() string
}

// EnvOverride reads the format override from the TOOL_API_SPEC environment
// variable on every call.
type EnvOverride struct{}

// CurrentOverride implements OverrideProvider.
func (EnvOverride) CurrentOverride() string {
	return os.Getenv(ToolAPISpecEnv)
}

// StaticOverride always returns a fixed override value. Useful in tests and
// when the hosting service resolves configuration itself.
type StaticOverride string

// CurrentOverride implements OverrideProvider.
func (s StaticOverride) CurrentOverride() string {
	return string(s)
}
