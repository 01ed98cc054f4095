package maven

import "context"

// Compile-time check that MockBuilder implements Builder.
var _ Builder = (*MockBuilder)(nil)

// MockBuilder is a configurable mock implementation of Builder for testing.
// Each method is backed by a function field; nil fields succeed.
type MockBuilder struct {
	PackageFunc    func(ctx context.Context, dir string) error
	SetVersionFunc func(ctx context.Context, dir, version string) error
	DeployFunc     func(ctx context.Context, dir, repoDir string) error
}

func (m *MockBuilder) Package(ctx context.Context, dir string) error {
	if m.PackageFunc != nil {
		return m.PackageFunc(ctx, dir)
	}
	return nil
}

func (m *MockBuilder) SetVersion(ctx context.Context, dir, version string) error {
	if m.SetVersionFunc != nil {
		return m.SetVersionFunc(ctx, dir, version)
	}
	return nil
}

func (m *MockBuilder) Deploy(ctx context.Context, dir, repoDir string) error {
	if m.DeployFunc != nil {
		return m.DeployFunc(ctx, dir, repoDir)
	}
	return nil
}
