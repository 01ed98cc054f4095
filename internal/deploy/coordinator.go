// Package deploy sequences a deployment run: optional release tagging,
// artifact-branch preparation, per-revision builds, the aggregate commit,
// and the pushes that publish it.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mvntools/mvndeploy/internal/git"
	"github.com/mvntools/mvndeploy/internal/maven"
	"github.com/mvntools/mvndeploy/internal/merger"
	"github.com/mvntools/mvndeploy/internal/natsort"
	"github.com/mvntools/mvndeploy/internal/resolver"
	"github.com/mvntools/mvndeploy/internal/workspace"
)

// Options configures one deployment run.
type Options struct {
	// Revisions to deploy, in input order.
	Revisions []string

	// Release, when set, tags HEAD with this version (behind TagPrefix)
	// after a successful validation build and appends the tag to the
	// batch.
	Release string

	// Branch is the artifact-history branch name.
	Branch string

	// TagPrefix is the tag namespace prefix version labels live under.
	// Empty accepts arbitrary tags.
	TagPrefix string

	// Remote names the remote release tags and, with RemotePush, the
	// artifact branch are forwarded to.
	Remote string

	// RemotePush pushes the artifact branch onward to Remote after the
	// local publish.
	RemotePush bool
}

// Merger is the artifact-branch surface the coordinator drives.
// *merger.Merger implements it.
type Merger interface {
	Prepare(ctx context.Context, ws *workspace.Workspace, branch string) (*merger.MergeContext, error)
	CommitAll(ctx context.Context, mctx *merger.MergeContext, message string) error
	Publish(ctx context.Context, mctx *merger.MergeContext, branch string) error
	PublishRemote(ctx context.Context, branch string) error
}

// Compile-time check that the real merger satisfies Merger.
var _ Merger = (*merger.Merger)(nil)

// Coordinator drives the deployment state machine. Execution is strictly
// sequential: every step depends on the directory state left by the
// previous one, and the artifact checkout is a single shared tree.
type Coordinator struct {
	project git.Store
	builder maven.Builder
	merger  Merger
	log     zerolog.Logger
	opts    Options
}

// New returns a Coordinator for one run. project is the repository the
// revisions come from; the merger owns the deployment repository.
func New(project git.Store, builder maven.Builder, m Merger, log zerolog.Logger, opts Options) *Coordinator {
	return &Coordinator{
		project: project,
		builder: builder,
		merger:  m,
		log:     log,
		opts:    opts,
	}
}

// Run executes the deployment. The first error aborts all remaining steps;
// nothing is committed or pushed for a partially built batch. Refs already
// pushed by the release step are not rolled back.
func (c *Coordinator) Run(ctx context.Context, ws *workspace.Workspace) error {
	revisions := append([]string(nil), c.opts.Revisions...)

	if c.opts.Release != "" {
		ref, err := c.tagRelease(ctx, ws)
		if err != nil {
			return err
		}
		revisions = append(revisions, ref)
	}

	mctx, err := c.merger.Prepare(ctx, ws, c.opts.Branch)
	if err != nil {
		return fmt.Errorf("preparing branch %s: %w", c.opts.Branch, err)
	}

	// Clone the project repository so checkouts cannot disturb its index.
	projectClone, err := c.project.MirrorCloneTo(ctx, ws.Path("project_repo"))
	if err != nil {
		return err
	}
	res := resolver.New(projectClone, c.opts.TagPrefix)

	versions := make([]string, 0, len(revisions))
	for i, rev := range revisions {
		version, err := c.buildRevision(ctx, ws, projectClone, res, mctx, i, rev)
		if err != nil {
			return err
		}
		versions = append(versions, version)
	}

	if err := c.merger.CommitAll(ctx, mctx, commitMessage(versions)); err != nil {
		return err
	}
	if err := c.merger.Publish(ctx, mctx, c.opts.Branch); err != nil {
		return fmt.Errorf("publishing %s: %w", c.opts.Branch, err)
	}
	if c.opts.RemotePush {
		if err := c.merger.PublishRemote(ctx, c.opts.Branch); err != nil {
			return fmt.Errorf("publishing %s to %s: %w", c.opts.Branch, c.opts.Remote, err)
		}
	}

	return nil
}

// tagRelease validates HEAD with a package-only build, then creates and
// pushes the release tag. The build runs first so a broken revision never
// leaves a tag behind. Returns the tag ref to append to the batch.
func (c *Coordinator) tagRelease(ctx context.Context, ws *workspace.Workspace) (string, error) {
	tag := c.opts.TagPrefix + c.opts.Release
	ref := "refs/tags/" + tag

	c.log.Info().Str("version", c.opts.Release).Msg("tagging release")

	dir, err := ws.Dir("release_checkout")
	if err != nil {
		return "", err
	}
	if err := c.project.CheckoutInto(ctx, dir, "HEAD"); err != nil {
		return "", fmt.Errorf("checking out HEAD: %w", err)
	}
	if err := c.builder.Package(ctx, dir); err != nil {
		return "", err
	}
	if err := c.project.CreateTag(ctx, tag, "HEAD"); err != nil {
		return "", fmt.Errorf("tagging %s: %w", tag, err)
	}
	if err := c.project.Push(ctx, c.opts.Remote, git.RefSpec{Src: ref}); err != nil {
		return "", fmt.Errorf("pushing tag %s: %w", tag, err)
	}

	return ref, nil
}

// buildRevision resolves, checks out, stamps and deploys one revision into
// the shared artifact checkout, returning its version label.
func (c *Coordinator) buildRevision(ctx context.Context, ws *workspace.Workspace, clone git.Store, res *resolver.Resolver, mctx *merger.MergeContext, i int, rev string) (string, error) {
	version, err := res.Resolve(ctx, rev)
	if err != nil {
		return "", err
	}

	c.log.Info().Str("revision", rev).Str("version", version).Msg("deploying version")

	dir, err := ws.Dir(fmt.Sprintf("project_checkout_%d", i))
	if err != nil {
		return "", err
	}
	if err := clone.CheckoutInto(ctx, dir, rev); err != nil {
		return "", fmt.Errorf("checking out %s: %w", rev, err)
	}
	if err := c.builder.SetVersion(ctx, dir, version); err != nil {
		return "", err
	}
	if err := c.builder.Deploy(ctx, dir, mctx.CheckoutDir); err != nil {
		return "", err
	}

	return version, nil
}

// commitMessage enumerates the deployed version labels in numeric-aware
// order.
func commitMessage(versions []string) string {
	sorted := append([]string(nil), versions...)
	natsort.Sort(sorted)

	noun := "version"
	if len(sorted) > 1 {
		noun = "versions"
	}
	return fmt.Sprintf("Deployment of %s %s.", noun, strings.Join(sorted, ", "))
}
