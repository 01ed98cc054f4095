// Package maven wraps the external Maven build tool. All operations pin the
// working directory to an explicit project checkout; none of them touch the
// revision store.
package maven

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mvntools/mvndeploy/internal/execx"
)

// Builder runs builds against a project checkout.
type Builder interface {
	// Package runs a package-only build, used to validate a revision
	// before any tag or artifact-branch mutation.
	Package(ctx context.Context, dir string) error

	// SetVersion stamps the project metadata in dir with the given version.
	SetVersion(ctx context.Context, dir, version string) error

	// Deploy builds with tests disabled and redirects the published output
	// into repoDir.
	Deploy(ctx context.Context, dir, repoDir string) error
}

// BuildError reports a Maven goal that exited non-zero.
type BuildError struct {
	Goal string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("maven %s failed: %v", e.Goal, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Compile-time check that CLI implements Builder.
var _ Builder = (*CLI)(nil)

// CLI invokes the mvn binary.
type CLI struct {
	runner execx.Runner
}

// NewCLI returns a Builder backed by the mvn binary.
func NewCLI(runner execx.Runner) *CLI {
	return &CLI{runner: runner}
}

func (c *CLI) Package(ctx context.Context, dir string) error {
	return c.mvn(ctx, dir, "package")
}

func (c *CLI) SetVersion(ctx context.Context, dir, version string) error {
	return c.mvn(ctx, dir, "versions:set", "newVersion="+version)
}

func (c *CLI) Deploy(ctx context.Context, dir, repoDir string) error {
	abs, err := filepath.Abs(repoDir)
	if err != nil {
		return fmt.Errorf("resolving deploy directory: %w", err)
	}
	return c.mvn(ctx, dir, "deploy",
		"altDeploymentRepository=-::default::file://"+abs,
		"maven.test.skip=true",
	)
}

// mvn runs a single goal in dir. Properties are passed as -Dkey=value
// before the goal.
func (c *CLI) mvn(ctx context.Context, dir, goal string, properties ...string) error {
	args := make([]string, 0, len(properties)+1)
	for _, p := range properties {
		args = append(args, "-D"+p)
	}
	args = append(args, goal)

	if err := c.runner.Run(ctx, dir, "mvn", args...); err != nil {
		return &BuildError{Goal: goal, Err: err}
	}
	return nil
}
