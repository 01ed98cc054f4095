// Package merger prepares the artifact-history branch workspace and, once
// all revisions are built, turns the accumulated checkout into a single
// commit published back to the deployment repository.
package merger

import (
	"context"
	"fmt"

	"github.com/mvntools/mvndeploy/internal/execx"
	"github.com/mvntools/mvndeploy/internal/git"
	"github.com/mvntools/mvndeploy/internal/workspace"
)

const (
	cloneDirName    = "deploy_repo"
	checkoutDirName = "deploy_checkout"
)

// MergeContext holds the scratch clone and the checkout directory artifacts
// accumulate into.
type MergeContext struct {
	// Clone is the scratch repository the final commit is created in.
	Clone git.Store

	// CheckoutDir is the work tree the builder deploys artifacts into.
	CheckoutDir string

	// Existed reports whether the artifact branch was already present.
	Existed bool
}

// Merger layers new artifacts onto the artifact-history branch of a
// deployment repository.
type Merger struct {
	deploy git.Store
	runner execx.Runner
	remote string
}

// New returns a Merger targeting the given deployment repository. remote
// names the configured remote used by PublishRemote.
func New(deploy git.Store, runner execx.Runner, remote string) *Merger {
	return &Merger{deploy: deploy, runner: runner, remote: remote}
}

// Prepare sets up the artifact-branch workspace. An existing branch is
// mirror-cloned and checked out, then the clone is soft-reset to the branch
// tip so the upcoming commit layers on the current tree. An absent branch
// starts from an empty bare clone and an empty checkout.
func (m *Merger) Prepare(ctx context.Context, ws *workspace.Workspace, branch string) (*MergeContext, error) {
	checkoutDir, err := ws.Dir(checkoutDirName)
	if err != nil {
		return nil, err
	}
	cloneDir := ws.Path(cloneDirName)

	if !m.deploy.RefExists(branch) {
		clone, err := git.InitBare(ctx, m.runner, cloneDir)
		if err != nil {
			return nil, err
		}
		return &MergeContext{Clone: clone, CheckoutDir: checkoutDir}, nil
	}

	clone, err := m.deploy.MirrorCloneTo(ctx, cloneDir)
	if err != nil {
		return nil, err
	}
	if err := clone.CheckoutInto(ctx, checkoutDir, branch); err != nil {
		return nil, fmt.Errorf("checking out %s: %w", branch, err)
	}
	if err := clone.SoftReset(ctx, branch); err != nil {
		return nil, fmt.Errorf("resetting clone to %s: %w", branch, err)
	}

	return &MergeContext{Clone: clone, CheckoutDir: checkoutDir, Existed: true}, nil
}

// CommitAll stages everything in the checkout, deletions included, and
// creates exactly one commit with the given message.
func (m *Merger) CommitAll(ctx context.Context, mctx *MergeContext, message string) error {
	return mctx.Clone.CommitAll(ctx, mctx.CheckoutDir, message)
}

// Publish pushes the new commit from the scratch clone to the deployment
// repository as the artifact branch.
func (m *Merger) Publish(ctx context.Context, mctx *MergeContext, branch string) error {
	return mctx.Clone.Push(ctx, m.deploy.GitDir(), git.RefSpec{Src: "HEAD", Dst: branch})
}

// PublishRemote pushes the artifact branch from the deployment repository
// onward to its configured remote.
func (m *Merger) PublishRemote(ctx context.Context, branch string) error {
	return m.deploy.Push(ctx, m.remote, git.RefSpec{Src: branch})
}
