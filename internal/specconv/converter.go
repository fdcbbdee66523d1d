package specconv

// Converter performs bidirectional translation between the OpenAI and
// Anthropic tool-calling formats. All methods are pure functions over their
// inputs plus the static configuration held here; a single Converter is safe
// for concurrent use.
type Converter struct {
	defaultFormat Format
	autoDetect    bool
	overrides     OverrideProvider
}

// Option configures a Converter.
type Option func(*Converter)

// WithDefaultFormat sets the format assumed when detection is disabled.
func WithDefaultFormat(f Format) Option {
	return func(c *Converter) {
		c.defaultFormat = f
	}
}

// WithAutoDetect enables or disables structural format detection.
func WithAutoDetect(enabled bool) Option {
	return func(c *Converter) {
		c.autoDetect = enabled
	}
}

// WithOverrideProvider sets the runtime override source.
func WithOverrideProvider(p OverrideProvider) Option {
	return func(c *Converter) {
		c.overrides = p
	}
}

// New creates a Converter. Without options it defaults to the OpenAI format,
// auto-detection enabled, and the TOOL_API_SPEC environment override.
func New(opts ...Option) *Converter {
	c := &Converter{
		defaultFormat: FormatOpenAI,
		autoDetect:    true,
		overrides:     EnvOverride{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.overrides == nil {
		c.overrides = EnvOverride{}
	}
	return c
}

// override resolves the runtime override to a known format, reading the
// provider fresh on every call.
func (c *Converter) override() (Format, bool) {
	return ParseFormat(c.overrides.CurrentOverride())
}
