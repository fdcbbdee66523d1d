package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the gateway's environment variables. A double
// underscore separates config sections, e.g. SPECBRIDGE_SERVER__LISTEN_ADDR.
const envPrefix = "SPECBRIDGE_"

// Config is the gateway's startup configuration. The live TOOL_API_SPEC
// format override is intentionally not part of it: that one is re-read by the
// converter on every detection call.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Convert  ConvertConfig  `koanf:"convert"`
	Upstream UpstreamConfig `koanf:"upstream"`
}

type ServerConfig struct {
	ListenAddr      string `koanf:"listen_addr" validate:"required,hostname_port"`
	MaxRequestBytes int64  `koanf:"max_request_bytes" validate:"gt=0"`
	ReadTimeout     string `koanf:"read_timeout"`
	WriteTimeout    string `koanf:"write_timeout"`
	ShutdownTimeout string `koanf:"shutdown_timeout"`
}

type ConvertConfig struct {
	DefaultFormat string `koanf:"default_format" validate:"oneof=openai anthropic"`
	AutoDetect    bool   `koanf:"auto_detect"`
}

type UpstreamConfig struct {
	BaseURL        string `koanf:"base_url" validate:"required,http_url"`
	Format         string `koanf:"format" validate:"oneof=openai anthropic"`
	RequestTimeout string `koanf:"request_timeout"`
}

// Defaults applied before any file or environment values.
const (
	DefaultListenAddr      = "127.0.0.1:4000"
	DefaultMaxRequestBytes = int64(10 << 20)
	DefaultReadTimeout     = "30s"
	DefaultWriteTimeout    = "120s"
	DefaultShutdownTimeout = "5s"
	DefaultFormat          = "openai"
	DefaultUpstreamBaseURL = "https://api.anthropic.com"
	DefaultUpstreamFormat  = "anthropic"
	DefaultRequestTimeout  = "120s"
)

// Load resolves configuration from defaults, an optional TOML file, and
// SPECBRIDGE_-prefixed environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"server.listen_addr":       DefaultListenAddr,
		"server.max_request_bytes": DefaultMaxRequestBytes,
		"server.read_timeout":      DefaultReadTimeout,
		"server.write_timeout":     DefaultWriteTimeout,
		"server.shutdown_timeout":  DefaultShutdownTimeout,
		"convert.default_format":   DefaultFormat,
		"convert.auto_detect":      true,
		"upstream.base_url":        DefaultUpstreamBaseURL,
		"upstream.format":          DefaultUpstreamFormat,
		"upstream.request_timeout": DefaultRequestTimeout,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "__", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
