package config

import "fmt"

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults,
// applying all overrides, and validating. The result has every field
// populated.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	if src.Branch != nil {
		dst.Branch = src.Branch
	}
	if src.TagPrefix != nil {
		dst.TagPrefix = src.TagPrefix
	}
	if src.Remote != nil {
		dst.Remote = src.Remote
	}
	if src.RemotePush != nil {
		dst.RemotePush = src.RemotePush
	}
	if src.DeployRepo != nil {
		dst.DeployRepo = src.DeployRepo
	}
	if src.DebugDir != nil {
		dst.DebugDir = src.DebugDir
	}
}

func validate(cfg *Config) error {
	if *cfg.Branch == "" {
		return fmt.Errorf("branch must not be empty")
	}
	if *cfg.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	return nil
}
