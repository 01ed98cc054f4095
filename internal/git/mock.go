package git

import "context"

// Compile-time check that MockStore implements Store.
var _ Store = (*MockStore)(nil)

// MockStore is a configurable mock implementation of Store for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockStore struct {
	GitDirFunc       func() string
	RefExistsFunc    func(ref string) bool
	NearestTagFunc   func(ctx context.Context, rev string) (string, error)
	CheckoutIntoFunc func(ctx context.Context, workTree, rev string) error
	CreateTagFunc    func(ctx context.Context, tag, rev string) error
	SoftResetFunc    func(ctx context.Context, rev string) error
	MirrorCloneFunc  func(ctx context.Context, dst string) (Store, error)
	CommitAllFunc    func(ctx context.Context, workTree, message string) error
	PushFunc         func(ctx context.Context, dst string, refs ...RefSpec) error
}

func (m *MockStore) GitDir() string {
	if m.GitDirFunc != nil {
		return m.GitDirFunc()
	}
	return ""
}

func (m *MockStore) RefExists(ref string) bool {
	if m.RefExistsFunc != nil {
		return m.RefExistsFunc(ref)
	}
	return false
}

func (m *MockStore) NearestTag(ctx context.Context, rev string) (string, error) {
	if m.NearestTagFunc != nil {
		return m.NearestTagFunc(ctx, rev)
	}
	return "", nil
}

func (m *MockStore) CheckoutInto(ctx context.Context, workTree, rev string) error {
	if m.CheckoutIntoFunc != nil {
		return m.CheckoutIntoFunc(ctx, workTree, rev)
	}
	return nil
}

func (m *MockStore) CreateTag(ctx context.Context, tag, rev string) error {
	if m.CreateTagFunc != nil {
		return m.CreateTagFunc(ctx, tag, rev)
	}
	return nil
}

func (m *MockStore) SoftReset(ctx context.Context, rev string) error {
	if m.SoftResetFunc != nil {
		return m.SoftResetFunc(ctx, rev)
	}
	return nil
}

func (m *MockStore) MirrorCloneTo(ctx context.Context, dst string) (Store, error) {
	if m.MirrorCloneFunc != nil {
		return m.MirrorCloneFunc(ctx, dst)
	}
	return &MockStore{}, nil
}

func (m *MockStore) CommitAll(ctx context.Context, workTree, message string) error {
	if m.CommitAllFunc != nil {
		return m.CommitAllFunc(ctx, workTree, message)
	}
	return nil
}

func (m *MockStore) Push(ctx context.Context, dst string, refs ...RefSpec) error {
	if m.PushFunc != nil {
		return m.PushFunc(ctx, dst, refs...)
	}
	return nil
}
