package merger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvntools/mvndeploy/internal/execx"
	"github.com/mvntools/mvndeploy/internal/git"
	"github.com/mvntools/mvndeploy/internal/workspace"
)

func newWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.Acquire(workspace.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Release() })
	return ws
}

func TestPrepare_ExistingBranch(t *testing.T) {
	ws := newWorkspace(t)

	var checkouts, resets []string
	clone := &git.MockStore{
		CheckoutIntoFunc: func(_ context.Context, workTree, rev string) error {
			checkouts = append(checkouts, workTree, rev)
			return nil
		},
		SoftResetFunc: func(_ context.Context, rev string) error {
			resets = append(resets, rev)
			return nil
		},
	}
	deploy := &git.MockStore{
		RefExistsFunc: func(ref string) bool { return ref == "gh-pages" },
		MirrorCloneFunc: func(_ context.Context, dst string) (git.Store, error) {
			require.Equal(t, ws.Path("deploy_repo"), dst)
			return clone, nil
		},
	}

	m := New(deploy, &execx.MockRunner{}, "origin")
	mctx, err := m.Prepare(context.Background(), ws, "gh-pages")
	require.NoError(t, err)

	require.True(t, mctx.Existed)
	require.Same(t, git.Store(clone), mctx.Clone)
	require.Equal(t, ws.Path("deploy_checkout"), mctx.CheckoutDir)
	require.Equal(t, []string{mctx.CheckoutDir, "gh-pages"}, checkouts)
	require.Equal(t, []string{"gh-pages"}, resets)
}

func TestPrepare_AbsentBranchInitializesBare(t *testing.T) {
	ws := newWorkspace(t)

	runner := &execx.MockRunner{}
	deploy := &git.MockStore{} // RefExists defaults to false

	m := New(deploy, runner, "origin")
	mctx, err := m.Prepare(context.Background(), ws, "mvn-repo")
	require.NoError(t, err)

	require.False(t, mctx.Existed)
	require.Equal(t, ws.Path("deploy_repo"), mctx.Clone.GitDir())
	require.Equal(t, [][]string{{"git", "init", "--bare", ws.Path("deploy_repo")}}, runner.Calls)
}

func TestCommitAll_DelegatesToClone(t *testing.T) {
	var gotTree, gotMessage string
	clone := &git.MockStore{
		CommitAllFunc: func(_ context.Context, workTree, message string) error {
			gotTree, gotMessage = workTree, message
			return nil
		},
	}

	m := New(&git.MockStore{}, &execx.MockRunner{}, "origin")
	mctx := &MergeContext{Clone: clone, CheckoutDir: "/ws/deploy_checkout"}

	require.NoError(t, m.CommitAll(context.Background(), mctx, "Deployment of version 1.2."))
	require.Equal(t, "/ws/deploy_checkout", gotTree)
	require.Equal(t, "Deployment of version 1.2.", gotMessage)
}

func TestCommitAll_PropagatesNothingToCommit(t *testing.T) {
	clone := &git.MockStore{
		CommitAllFunc: func(_ context.Context, _, _ string) error {
			return git.ErrNothingToCommit
		},
	}

	m := New(&git.MockStore{}, &execx.MockRunner{}, "origin")
	err := m.CommitAll(context.Background(), &MergeContext{Clone: clone}, "msg")
	require.ErrorIs(t, err, git.ErrNothingToCommit)
}

func TestPublish_PushesHeadToBranch(t *testing.T) {
	var gotDst string
	var gotRefs []git.RefSpec
	clone := &git.MockStore{
		PushFunc: func(_ context.Context, dst string, refs ...git.RefSpec) error {
			gotDst = dst
			gotRefs = refs
			return nil
		},
	}
	deploy := &git.MockStore{
		GitDirFunc: func() string { return "/deploy/.git" },
	}

	m := New(deploy, &execx.MockRunner{}, "origin")
	mctx := &MergeContext{Clone: clone}

	require.NoError(t, m.Publish(context.Background(), mctx, "gh-pages"))
	require.Equal(t, "/deploy/.git", gotDst)
	require.Equal(t, []git.RefSpec{{Src: "HEAD", Dst: "gh-pages"}}, gotRefs)
}

func TestPublishRemote_PushesBranchToRemote(t *testing.T) {
	var gotDst string
	var gotRefs []git.RefSpec
	deploy := &git.MockStore{
		PushFunc: func(_ context.Context, dst string, refs ...git.RefSpec) error {
			gotDst = dst
			gotRefs = refs
			return nil
		},
	}

	m := New(deploy, &execx.MockRunner{}, "upstream")
	require.NoError(t, m.PublishRemote(context.Background(), "gh-pages"))
	require.Equal(t, "upstream", gotDst)
	require.Equal(t, []git.RefSpec{{Src: "gh-pages"}}, gotRefs)
}
