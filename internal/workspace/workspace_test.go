package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquire_ReleaseDeletesTree(t *testing.T) {
	ws, err := Acquire(Options{})
	require.NoError(t, err)

	dir, err := ws.Dir("project_checkout_0")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte("<project/>"), 0o644))

	require.NoError(t, ws.Release())

	_, err = os.Stat(ws.Root())
	require.True(t, os.IsNotExist(err))
}

func TestAcquire_DebugRetainsTree(t *testing.T) {
	base := filepath.Join(t.TempDir(), "retained")

	ws, err := Acquire(Options{Debug: true, RetainDir: base})
	require.NoError(t, err)
	require.True(t, ws.Retained())

	require.NoError(t, ws.Release())

	// The tree survives Release and lives under the retain directory.
	info, err := os.Stat(ws.Root())
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, base, filepath.Dir(ws.Root()))
}

func TestAcquire_DebugRunsDoNotCollide(t *testing.T) {
	base := filepath.Join(t.TempDir(), "retained")

	a, err := Acquire(Options{Debug: true, RetainDir: base})
	require.NoError(t, err)
	b, err := Acquire(Options{Debug: true, RetainDir: base})
	require.NoError(t, err)

	require.NotEqual(t, a.Root(), b.Root())
}

func TestDir_IsIdempotent(t *testing.T) {
	ws, err := Acquire(Options{})
	require.NoError(t, err)
	defer ws.Release()

	first, err := ws.Dir("deploy_checkout")
	require.NoError(t, err)
	second, err := ws.Dir("deploy_checkout")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, ws.Path("deploy_checkout"), first)
}
