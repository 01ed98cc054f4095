package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/mvntools/mvndeploy/internal/execx"
)

// Compile-time check that CLIStore implements Store.
var _ Store = (*CLIStore)(nil)

// CLIStore implements Store against a repository on disk. Read-only queries
// (discovery, ref resolution) go through go-git; mutating plumbing shells
// out to the git binary because go-git cannot drive a bare repository
// against a detached work tree, which the artifact-branch workflow relies
// on.
type CLIStore struct {
	gitDir  string
	workDir string
	runner  execx.Runner
	repo    *gogit.Repository // nil for scratch clones created at runtime
}

// Open discovers the repository containing path and returns a Store for it.
func Open(path string, runner execx.Runner) (*CLIStore, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	gitDir := path
	workDir := ""
	if wt, wtErr := r.Worktree(); wtErr == nil {
		workDir = wt.Filesystem.Root()
		gitDir = filepath.Join(workDir, ".git")
	}

	return &CLIStore{
		gitDir:  gitDir,
		workDir: workDir,
		runner:  runner,
		repo:    r,
	}, nil
}

// InitBare creates an empty bare repository at path.
func InitBare(ctx context.Context, runner execx.Runner, path string) (*CLIStore, error) {
	if err := runner.Run(ctx, "", "git", "init", "--bare", path); err != nil {
		return nil, fmt.Errorf("initializing bare repository: %w", err)
	}
	return &CLIStore{gitDir: path, runner: runner}, nil
}

func (s *CLIStore) GitDir() string {
	return s.gitDir
}

// WorkDir returns the repository's working directory, or "" for bare
// repositories.
func (s *CLIStore) WorkDir() string {
	return s.workDir
}

func (s *CLIStore) RefExists(ref string) bool {
	if s.repo != nil {
		if _, err := s.repo.Reference(plumbing.ReferenceName(ref), true); err == nil {
			return true
		}
		_, err := s.repo.ResolveRevision(plumbing.Revision(ref))
		return err == nil
	}

	code, err := s.runner.ExitCode(context.Background(), "",
		"git", "--git-dir="+s.gitDir, "rev-parse", "--verify", "--quiet", ref)
	return err == nil && code == 0
}

func (s *CLIStore) NearestTag(ctx context.Context, rev string) (string, error) {
	out, err := s.runner.Output(ctx, "",
		"git", "--git-dir="+s.gitDir, "name-rev", "--no-undefined", "--name-only", "--tags", rev)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(out)
	if name == "" {
		return "", fmt.Errorf("name-rev returned no name for %s", rev)
	}
	// Older git prints the tag with a "tags/" prefix.
	return strings.TrimPrefix(name, "tags/"), nil
}

func (s *CLIStore) CheckoutInto(ctx context.Context, workTree, rev string) error {
	return s.runner.Run(ctx, "",
		"git", "--git-dir="+s.gitDir, "--work-tree="+workTree, "checkout", rev, ".")
}

func (s *CLIStore) CreateTag(ctx context.Context, tag, rev string) error {
	return s.runner.Run(ctx, "", "git", "--git-dir="+s.gitDir, "tag", tag, rev)
}

func (s *CLIStore) SoftReset(ctx context.Context, rev string) error {
	return s.runner.Run(ctx, "", "git", "--git-dir="+s.gitDir, "reset", "--soft", rev)
}

func (s *CLIStore) MirrorCloneTo(ctx context.Context, dst string) (Store, error) {
	if err := s.runner.Run(ctx, "", "git", "clone", "--mirror", s.gitDir, dst); err != nil {
		return nil, fmt.Errorf("mirror-cloning %s: %w", s.gitDir, err)
	}
	return &CLIStore{gitDir: dst, runner: s.runner}, nil
}

func (s *CLIStore) CommitAll(ctx context.Context, workTree, message string) error {
	err := s.runner.Run(ctx, "",
		"git", "--git-dir="+s.gitDir, "--work-tree="+workTree, "add", "--all", ".")
	if err != nil {
		return err
	}

	// An unchanged index against HEAD means a no-op deploy. A failing diff
	// (for example no HEAD yet in a fresh repository) means there is
	// something to commit.
	code, err := s.runner.ExitCode(ctx, "",
		"git", "--git-dir="+s.gitDir, "--work-tree="+workTree, "diff", "--cached", "--quiet", "HEAD")
	if err == nil && code == 0 {
		return ErrNothingToCommit
	}

	return s.runner.Run(ctx, "",
		"git", "--git-dir="+s.gitDir, "--work-tree="+workTree, "commit", "--message="+message)
}

func (s *CLIStore) Push(ctx context.Context, dst string, refs ...RefSpec) error {
	args := []string{"--git-dir=" + s.gitDir, "push", dst}
	for _, ref := range refs {
		args = append(args, ref.String())
	}
	return s.runner.Run(ctx, "", "git", args...)
}
