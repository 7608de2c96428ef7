package searchpath

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeExecutable(tb testing.TB, dir, name string) string {
	tb.Helper()

	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	return path
}

func TestLookPath(t *testing.T) {
	toolchainDir := t.TempDir()
	otherDir := t.TempDir()

	cargo := writeExecutable(t, toolchainDir, "cargo")
	shadowed := writeExecutable(t, otherDir, "cargo")
	gcc := writeExecutable(t, otherDir, "gcc")

	t.Run("NotOnOriginalPath", func(t *testing.T) {
		_, err := LookPath("cargo", "")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrNotFound))

		var execErr *exec.Error
		require.True(t, errors.As(err, &execErr))
		require.Equal(t, "cargo", execErr.Name)
	})

	t.Run("FoundAfterPrepend", func(t *testing.T) {
		path, err := LookPath("cargo", Prepend(toolchainDir, ""))
		require.NoError(t, err)
		require.Equal(t, cargo, path)
	})

	t.Run("PrependedDirectoryWins", func(t *testing.T) {
		path, err := LookPath("cargo", Prepend(toolchainDir, otherDir))
		require.NoError(t, err)
		require.Equal(t, cargo, path)

		path, err = LookPath("cargo", Prepend(otherDir, toolchainDir))
		require.NoError(t, err)
		require.Equal(t, shadowed, path)
	})

	t.Run("LaterDirectory", func(t *testing.T) {
		path, err := LookPath("gcc", Prepend(toolchainDir, otherDir))
		require.NoError(t, err)
		require.Equal(t, gcc, path)
	})

	t.Run("ExplicitPath", func(t *testing.T) {
		path, err := LookPath(cargo, "")
		require.NoError(t, err)
		require.Equal(t, cargo, path)
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := LookPath(toolchainDir, "")
		require.Error(t, err)
	})
}

func TestLookPath_NotExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not used on Windows")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cargo"), nil, 0o644))

	_, err := LookPath("cargo", dir)
	require.Error(t, err)
}

func TestLookPath_EmptyElement(t *testing.T) {
	workDir := t.TempDir()
	writeExecutable(t, workDir, "mytool")
	t.Chdir(workDir)

	name := "mytool"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	want := "." + string(filepath.Separator) + name

	// An unset variable leaves a trailing empty element after the prepended
	// directory, and "::" puts one in the middle.
	for _, pathValue := range []string{
		Prepend(t.TempDir(), ""),
		t.TempDir() + Separator + Separator + t.TempDir(),
		".",
	} {
		path, err := LookPath("mytool", pathValue)
		require.NoError(t, err)
		require.Equal(t, want, path)

		cmd := exec.Command(path)
		require.NoError(t, cmd.Err)
		require.Equal(t, path, cmd.Path, "the resolved path must not be looked up again")
	}
}

func TestJoin(t *testing.T) {
	sep := string(filepath.Separator)

	require.Equal(t, "."+sep+"cargo", join(".", "cargo"))
	require.Equal(t, "."+sep+"cargo", join("", "cargo"))
	require.Equal(t, filepath.Join("bin", "cargo"), join("bin", "cargo"))
}

func TestExecutableExtensions(t *testing.T) {
	setCaseInsensitive(t, true)

	require.Equal(t, []string{".com", ".exe", ".bat", ".cmd"}, executableExtensions(""))
	require.Equal(t, []string{".exe", ".cmd"}, executableExtensions(".EXE;;CMD"))

	setCaseInsensitive(t, false)
	require.Nil(t, executableExtensions(".EXE"))
}

func TestLookPathExt(t *testing.T) {
	setCaseInsensitive(t, true)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cargo.ps1"), nil, 0o755))

	// The extensions come from the argument, not from the process.
	t.Setenv("PATHEXT", ".EXE")

	path, err := LookPathExt("cargo", dir, ".PS1")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "cargo.ps1"), path)

	_, err = LookPathExt("cargo", dir, ".EXE")
	require.ErrorIs(t, err, ErrNotFound)
}
