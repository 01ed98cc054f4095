// Package mvndeploy provides a public Go API for deploying Maven project
// revisions to a git artifact-history branch.
//
// Basic usage:
//
//	err := mvndeploy.Deploy(ctx, mvndeploy.Options{
//	    ProjectPath: ".",
//	    Revisions:   []string{"HEAD"},
//	})
package mvndeploy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mvntools/mvndeploy/internal/deploy"
	"github.com/mvntools/mvndeploy/internal/execx"
	"github.com/mvntools/mvndeploy/internal/git"
	"github.com/mvntools/mvndeploy/internal/maven"
	"github.com/mvntools/mvndeploy/internal/merger"
	"github.com/mvntools/mvndeploy/internal/workspace"
)

// Options configures a deployment run.
type Options struct {
	// ProjectPath is a path inside the project repository. Defaults to ".".
	ProjectPath string

	// DeployRepoPath is a path inside the repository hosting the artifact
	// branch. Empty means the project repository itself.
	DeployRepoPath string

	// Revisions to deploy, in order. Empty with no Release deploys HEAD.
	Revisions []string

	// Release tags HEAD with this version after a successful validation
	// build and deploys it along with Revisions.
	Release string

	// Branch is the artifact-history branch name. Defaults to "gh-pages".
	Branch string

	// TagPrefix is the tag namespace prefix version labels live under.
	TagPrefix string

	// Remote names the remote used for tag and branch forwarding.
	// Defaults to "origin".
	Remote string

	// RemotePush pushes the artifact branch onward to Remote.
	RemotePush bool

	// Debug retains the run's workspace directory for inspection.
	Debug bool

	// Logger receives progress output. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Deploy builds the requested revisions and publishes their artifacts to
// the artifact-history branch.
func Deploy(ctx context.Context, opts Options) error {
	if opts.ProjectPath == "" {
		opts.ProjectPath = "."
	}
	if opts.Branch == "" {
		opts.Branch = "gh-pages"
	}
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	if len(opts.Revisions) == 0 && opts.Release == "" {
		opts.Revisions = []string{"HEAD"}
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	runner := &execx.Local{}

	project, err := git.Open(opts.ProjectPath, runner)
	if err != nil {
		return fmt.Errorf("opening project repository: %w", err)
	}

	deployStore := git.Store(project)
	if opts.DeployRepoPath != "" {
		ds, err := git.Open(opts.DeployRepoPath, runner)
		if err != nil {
			return fmt.Errorf("opening deployment repository: %w", err)
		}
		deployStore = ds
	}

	ws, err := workspace.Acquire(workspace.Options{Debug: opts.Debug})
	if err != nil {
		return err
	}
	defer ws.Release()

	m := merger.New(deployStore, runner, opts.Remote)
	coordinator := deploy.New(project, maven.NewCLI(runner), m, logger, deploy.Options{
		Revisions:  opts.Revisions,
		Release:    opts.Release,
		Branch:     opts.Branch,
		TagPrefix:  opts.TagPrefix,
		Remote:     opts.Remote,
		RemotePush: opts.RemotePush,
	})
	return coordinator.Run(ctx, ws)
}
