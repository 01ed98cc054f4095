package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvntools/mvndeploy/internal/execx"
)

func TestRefSpec_String(t *testing.T) {
	require.Equal(t, "HEAD:gh-pages", RefSpec{Src: "HEAD", Dst: "gh-pages"}.String())
	require.Equal(t, "gh-pages:gh-pages", RefSpec{Src: "gh-pages"}.String())
	require.Equal(t, "refs/tags/1.0:refs/tags/1.0", RefSpec{Src: "refs/tags/1.0"}.String())
}

func TestCLIStore_NearestTag_StripsTagsPrefix(t *testing.T) {
	runner := &execx.MockRunner{
		OutputFunc: func(_ context.Context, _, _ string, _ ...string) (string, error) {
			return "tags/v1.2^0\n", nil
		},
	}
	store := &CLIStore{gitDir: "/repo/.git", runner: runner}

	name, err := store.NearestTag(context.Background(), "HEAD")
	require.NoError(t, err)
	require.Equal(t, "v1.2^0", name)

	require.Equal(t, [][]string{{
		"git", "--git-dir=/repo/.git", "name-rev", "--no-undefined", "--name-only", "--tags", "HEAD",
	}}, runner.Calls)
}

func TestCLIStore_CheckoutInto(t *testing.T) {
	runner := &execx.MockRunner{}
	store := &CLIStore{gitDir: "/repo/.git", runner: runner}

	require.NoError(t, store.CheckoutInto(context.Background(), "/ws/project_checkout_0", "v1.2"))
	require.Equal(t, [][]string{{
		"git", "--git-dir=/repo/.git", "--work-tree=/ws/project_checkout_0", "checkout", "v1.2", ".",
	}}, runner.Calls)
}

func TestCLIStore_CommitAll_NothingToCommit(t *testing.T) {
	runner := &execx.MockRunner{
		ExitCodeFunc: func(_ context.Context, _, _ string, _ ...string) (int, error) {
			return 0, nil // staged tree identical to HEAD
		},
	}
	store := &CLIStore{gitDir: "/deploy/.git", runner: runner}

	err := store.CommitAll(context.Background(), "/ws/deploy_checkout", "msg")
	require.ErrorIs(t, err, ErrNothingToCommit)

	// add --all ran, the diff probe ran, but no commit was attempted.
	require.Len(t, runner.Calls, 2)
	require.Equal(t, "add", runner.Calls[0][3])
	require.Equal(t, "diff", runner.Calls[1][3])
}

func TestCLIStore_CommitAll_CommitsWhenTreeChanged(t *testing.T) {
	runner := &execx.MockRunner{
		ExitCodeFunc: func(_ context.Context, _, _ string, _ ...string) (int, error) {
			return 1, nil // staged changes present
		},
	}
	store := &CLIStore{gitDir: "/deploy/.git", runner: runner}

	require.NoError(t, store.CommitAll(context.Background(), "/ws/deploy_checkout", "Deployment of version 1.2."))

	require.Len(t, runner.Calls, 3)
	require.Equal(t, []string{
		"git", "--git-dir=/deploy/.git", "--work-tree=/ws/deploy_checkout",
		"commit", "--message=Deployment of version 1.2.",
	}, runner.Calls[2])
}

func TestCLIStore_Push_FormatsRefSpecs(t *testing.T) {
	runner := &execx.MockRunner{}
	store := &CLIStore{gitDir: "/clone", runner: runner}

	err := store.Push(context.Background(), "/deploy/.git",
		RefSpec{Src: "HEAD", Dst: "gh-pages"})
	require.NoError(t, err)

	err = store.Push(context.Background(), "origin", RefSpec{Src: "gh-pages"})
	require.NoError(t, err)

	require.Equal(t, [][]string{
		{"git", "--git-dir=/clone", "push", "/deploy/.git", "HEAD:gh-pages"},
		{"git", "--git-dir=/clone", "push", "origin", "gh-pages:gh-pages"},
	}, runner.Calls)
}

func TestCLIStore_SoftResetAndTag(t *testing.T) {
	runner := &execx.MockRunner{}
	store := &CLIStore{gitDir: "/clone", runner: runner}

	require.NoError(t, store.SoftReset(context.Background(), "gh-pages"))
	require.NoError(t, store.CreateTag(context.Background(), "1.3", "HEAD"))

	require.Equal(t, [][]string{
		{"git", "--git-dir=/clone", "reset", "--soft", "gh-pages"},
		{"git", "--git-dir=/clone", "tag", "1.3", "HEAD"},
	}, runner.Calls)
}

func TestMockStore_Defaults(t *testing.T) {
	var store Store = &MockStore{}

	require.Equal(t, "", store.GitDir())
	require.False(t, store.RefExists("refs/heads/gh-pages"))
	require.NoError(t, store.CheckoutInto(context.Background(), "/tmp/x", "HEAD"))

	clone, err := store.MirrorCloneTo(context.Background(), "/tmp/clone")
	require.NoError(t, err)
	require.NotNil(t, clone)
}
