package config

// CreateDefaultConfiguration returns a Config with all default values
// populated.
func CreateDefaultConfiguration() *Config {
	return &Config{
		Branch:     stringPtr("gh-pages"),
		TagPrefix:  stringPtr(""),
		Remote:     stringPtr("origin"),
		RemotePush: boolPtr(true),
		DeployRepo: stringPtr(""),
		DebugDir:   stringPtr("tmp"),
	}
}

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }
