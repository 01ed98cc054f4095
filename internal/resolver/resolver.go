// Package resolver turns revision references into version labels by
// searching the revision store's tag namespace.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mvntools/mvndeploy/internal/execx"
	"github.com/mvntools/mvndeploy/internal/git"
)

var (
	// ErrNoTag indicates no tag matching the configured namespace covers
	// the revision.
	ErrNoTag = errors.New("no matching tag found")

	// ErrUnexpectedTagFormat indicates the store returned a tag name with
	// a disambiguation marker in an unrecognized form.
	ErrUnexpectedTagFormat = errors.New("unexpected tag format")
)

// Resolver resolves revisions to version labels. With a tag prefix
// configured, only tags carrying the prefix resolve and the label is the
// remainder after the prefix; otherwise any tag resolves verbatim.
type Resolver struct {
	store     git.Store
	tagPrefix string
}

// New returns a Resolver querying the given store.
func New(store git.Store, tagPrefix string) *Resolver {
	return &Resolver{store: store, tagPrefix: tagPrefix}
}

// Resolve returns the version label for rev. The result is stable for a
// given revision and tag state.
func (r *Resolver) Resolve(ctx context.Context, rev string) (string, error) {
	name, err := r.store.NearestTag(ctx, rev)
	if err != nil {
		var exitErr *execx.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w for revision %s", ErrNoTag, rev)
		}
		return "", fmt.Errorf("resolving %s: %w", rev, err)
	}

	label, err := stripDisambiguation(name)
	if err != nil {
		return "", err
	}

	if r.tagPrefix != "" {
		rest, ok := strings.CutPrefix(label, r.tagPrefix)
		if !ok {
			return "", fmt.Errorf("%w for revision %s: tag %q lacks prefix %q", ErrNoTag, rev, label, r.tagPrefix)
		}
		label = rest
	}

	return label, nil
}

// stripDisambiguation removes the "^0" suffix newer git versions append to
// exact tag matches. Any other "^" form is not an exact tag and is
// rejected.
func stripDisambiguation(name string) (string, error) {
	i := strings.LastIndex(name, "^")
	if i < 0 {
		return name, nil
	}
	if name[i+1:] != "0" {
		return "", fmt.Errorf("%w: %q", ErrUnexpectedTagFormat, name)
	}
	return name[:i], nil
}
