// Package config provides YAML configuration loading, defaults, and merge
// semantics for mvndeploy.
package config

// Config is the root configuration for mvndeploy. All fields are pointers
// to support merge semantics during configuration building: a nil field
// keeps the value from the layer below.
type Config struct {
	// Branch is the artifact-history branch name.
	Branch *string `yaml:"branch"`

	// TagPrefix is the tag namespace prefix version labels live under.
	// Empty accepts arbitrary tags verbatim.
	TagPrefix *string `yaml:"tag-prefix"`

	// Remote names the remote that release tags and, with RemotePush,
	// the artifact branch are forwarded to.
	Remote *string `yaml:"remote"`

	// RemotePush controls whether the artifact branch is pushed onward to
	// Remote after the local publish.
	RemotePush *bool `yaml:"remote-push"`

	// DeployRepo is the path of the repository hosting the artifact
	// branch. Empty means the project repository itself.
	DeployRepo *string `yaml:"deploy-repo"`

	// DebugDir is the base directory retained workspaces are created
	// under when --debug is set.
	DebugDir *string `yaml:"debug-dir"`
}
