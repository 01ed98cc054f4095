// Package git provides the revision-store abstraction for the deployment
// workflow. It defines a Store interface covering the plumbing the workflow
// needs (checkout into a detached work tree, mirror clones, soft resets,
// staged commits, refspec pushes), a CLI-backed implementation, and a
// configurable mock.
package git

import (
	"context"
	"errors"
)

// ErrNothingToCommit indicates CommitAll found the work tree unchanged from
// the branch tip. It usually signals a no-op deploy.
var ErrNothingToCommit = errors.New("nothing to commit")

// RefSpec names a source and destination ref for a push. An empty Dst
// pushes Src to a ref of the same name.
type RefSpec struct {
	Src string
	Dst string
}

func (r RefSpec) String() string {
	dst := r.Dst
	if dst == "" {
		dst = r.Src
	}
	return r.Src + ":" + dst
}

// Store provides the revision-store operations the deployment workflow
// consumes. Implementations operate on one repository, identified by its
// git directory; work trees are always passed explicitly so no operation
// depends on ambient working-directory state.
type Store interface {
	// GitDir returns the path to the repository's git directory.
	GitDir() string

	// RefExists reports whether the given ref resolves in this repository.
	RefExists(ref string) bool

	// NearestTag returns the name of the tag covering rev, as reported by
	// the store's tag-namespace search. The raw name may carry a trailing
	// disambiguation marker such as "^0"; callers are expected to strip it.
	NearestTag(ctx context.Context, rev string) (string, error)

	// CheckoutInto materializes rev's tree into the given work tree
	// without moving any branch pointer.
	CheckoutInto(ctx context.Context, workTree, rev string) error

	// CreateTag creates a tag named tag pointing at rev.
	CreateTag(ctx context.Context, tag, rev string) error

	// SoftReset repositions the current branch pointer to rev while
	// leaving index and work tree untouched.
	SoftReset(ctx context.Context, rev string) error

	// MirrorCloneTo clones this repository, full ref set, into dst and
	// returns a Store for the clone.
	MirrorCloneTo(ctx context.Context, dst string) (Store, error)

	// CommitAll stages every path in workTree, deletions included, and
	// creates exactly one commit with the given message. Returns
	// ErrNothingToCommit if the tree is unchanged from HEAD.
	CommitAll(ctx context.Context, workTree, message string) error

	// Push pushes the given refspecs to dst, which may be a repository
	// path or a configured remote name.
	Push(ctx context.Context, dst string, refs ...RefSpec) error
}
