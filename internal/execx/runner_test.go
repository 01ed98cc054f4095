package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}
}

func TestRun_Success(t *testing.T) {
	requireSh(t)

	var out bytes.Buffer
	runner := &Local{Stdout: &out, Stderr: &out}

	err := runner.Run(context.Background(), "", "sh", "-c", "echo hello")
	require.NoError(t, err)
	require.Equal(t, "hello\n", out.String())
}

func TestRun_NonZeroExit(t *testing.T) {
	requireSh(t)

	var out bytes.Buffer
	runner := &Local{Stdout: &out, Stderr: &out}

	err := runner.Run(context.Background(), "", "sh", "-c", "exit 3")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 3, exitErr.Code)
	require.Equal(t, []string{"sh", "-c", "exit 3"}, exitErr.Args)
	require.Contains(t, err.Error(), "exit status 3")
}

func TestOutput_CapturesStdout(t *testing.T) {
	requireSh(t)

	var errOut bytes.Buffer
	runner := &Local{Stderr: &errOut}

	out, err := runner.Output(context.Background(), "", "sh", "-c", "echo captured")
	require.NoError(t, err)
	require.Equal(t, "captured\n", out)
}

func TestExitCode_DoesNotError(t *testing.T) {
	requireSh(t)

	runner := &Local{}

	code, err := runner.ExitCode(context.Background(), "", "sh", "-c", "exit 7")
	require.NoError(t, err)
	require.Equal(t, 7, code)

	code, err = runner.ExitCode(context.Background(), "", "sh", "-c", "true")
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestRun_CanceledContext(t *testing.T) {
	requireSh(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &Local{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := runner.Run(ctx, "", "sh", "-c", "sleep 10")
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestRun_WorkingDirectory(t *testing.T) {
	requireSh(t)

	dir := t.TempDir()
	runner := &Local{Stderr: &bytes.Buffer{}}

	// Compare base names: the temp dir may be reported through a symlink.
	out, err := runner.Output(context.Background(), dir, "sh", "-c", "pwd")
	require.NoError(t, err)
	require.Contains(t, out, filepath.Base(dir))
}
