// Package execx runs external commands with an explicit working directory
// and surfaces non-zero exits as typed errors carrying the failed argv.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands. All operations are synchronous and
// honor context cancellation by killing the subprocess.
type Runner interface {
	// Run executes the command in dir, streaming its output through.
	// A non-zero exit is returned as *ExitError.
	Run(ctx context.Context, dir, name string, args ...string) error

	// Output executes the command in dir and returns its standard output.
	// A non-zero exit is returned as *ExitError.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)

	// ExitCode executes the command in dir with all output suppressed and
	// returns its exit status. Only failures to start the process at all
	// are returned as errors.
	ExitCode(ctx context.Context, dir, name string, args ...string) (int, error)
}

// ExitError reports a command that exited with a non-zero status.
type ExitError struct {
	Args []string
	Dir  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command failed with exit status %d: %s", e.Code, strings.Join(e.Args, " "))
}

// Compile-time check that Local implements Runner.
var _ Runner = (*Local)(nil)

// Local runs commands as subprocesses on the local machine. The zero value
// streams subprocess output to the parent's stdout and stderr.
type Local struct {
	// Stdout and Stderr override where subprocess output is streamed.
	// Nil means os.Stdout / os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

func (l *Local) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = l.stdout()
	cmd.Stderr = l.stderr()
	return l.wait(ctx, cmd, dir, name, args)
}

func (l *Local) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &out
	cmd.Stderr = l.stderr()
	if err := l.wait(ctx, cmd, dir, name, args); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (l *Local) ExitCode(ctx context.Context, dir, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("starting %s: %w", name, err)
}

func (l *Local) wait(ctx context.Context, cmd *exec.Cmd, dir, name string, args []string) error {
	err := cmd.Run()
	if err == nil {
		return nil
	}
	// A kill triggered by cancellation is reported as the context's error
	// so interruption stays distinguishable from a genuine build failure.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Args: append([]string{name}, args...),
			Dir:  dir,
			Code: exitErr.ExitCode(),
		}
	}
	return fmt.Errorf("starting %s: %w", name, err)
}

func (l *Local) stdout() io.Writer {
	if l.Stdout != nil {
		return l.Stdout
	}
	return os.Stdout
}

func (l *Local) stderr() io.Writer {
	if l.Stderr != nil {
		return l.Stderr
	}
	return os.Stderr
}
