// Package workspace owns the ephemeral directory tree for one deployment
// run: per-revision checkout directories and the artifact-branch checkout.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultRetainDir is the base directory used for retained workspaces when
// no override is configured. It is relative to the working directory so
// retained trees stay next to the invocation for inspection.
const DefaultRetainDir = "tmp"

// Options controls workspace placement and retention.
type Options struct {
	// Debug places the workspace under RetainDir and disables cleanup.
	Debug bool

	// RetainDir is the base directory for retained workspaces.
	// Empty means DefaultRetainDir.
	RetainDir string
}

// Workspace is a scoped working directory tree. Release must be called on
// every exit path; it is a no-op for retained workspaces.
type Workspace struct {
	root     string
	retained bool
}

// Acquire creates a new workspace root. With Debug set, the root is created
// under the retain directory (created if absent) and never auto-deleted;
// MkdirTemp guarantees concurrent debug runs get distinct subdirectories.
func Acquire(opts Options) (*Workspace, error) {
	if opts.Debug {
		base := opts.RetainDir
		if base == "" {
			base = DefaultRetainDir
		}
		if err := os.MkdirAll(base, 0o755); err != nil {
			return nil, fmt.Errorf("creating retain directory: %w", err)
		}
		root, err := os.MkdirTemp(base, "deploy-")
		if err != nil {
			return nil, fmt.Errorf("creating retained workspace: %w", err)
		}
		return &Workspace{root: root, retained: true}, nil
	}

	root, err := os.MkdirTemp("", "mvndeploy-")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// Retained reports whether the workspace survives Release.
func (w *Workspace) Retained() bool {
	return w.retained
}

// Dir creates (if needed) and returns the named subdirectory of the root.
func (w *Workspace) Dir(name string) (string, error) {
	path := filepath.Join(w.root, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("creating workspace directory %s: %w", name, err)
	}
	return path, nil
}

// Path returns the path of the named subdirectory without creating it.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.root, name)
}

// Release deletes the workspace tree unless it is retained.
func (w *Workspace) Release() error {
	if w.retained {
		return nil
	}
	return os.RemoveAll(w.root)
}
