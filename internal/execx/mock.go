package execx

import "context"

// Compile-time check that MockRunner implements Runner.
var _ Runner = (*MockRunner)(nil)

// MockRunner is a configurable mock implementation of Runner for testing.
// Each method is backed by a function field. If the function field is nil,
// the method succeeds with zero values.
type MockRunner struct {
	RunFunc      func(ctx context.Context, dir, name string, args ...string) error
	OutputFunc   func(ctx context.Context, dir, name string, args ...string) (string, error)
	ExitCodeFunc func(ctx context.Context, dir, name string, args ...string) (int, error)

	// Calls records every invocation as {name, args...} in order.
	Calls [][]string
}

func (m *MockRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	m.record(name, args)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, dir, name, args...)
	}
	return nil
}

func (m *MockRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	m.record(name, args)
	if m.OutputFunc != nil {
		return m.OutputFunc(ctx, dir, name, args...)
	}
	return "", nil
}

func (m *MockRunner) ExitCode(ctx context.Context, dir, name string, args ...string) (int, error) {
	m.record(name, args)
	if m.ExitCodeFunc != nil {
		return m.ExitCodeFunc(ctx, dir, name, args...)
	}
	return 0, nil
}

func (m *MockRunner) record(name string, args []string) {
	m.Calls = append(m.Calls, append([]string{name}, args...))
}
