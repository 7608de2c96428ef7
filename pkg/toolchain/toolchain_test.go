package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmaxmax/paclike/pkg/searchpath"
)

type fakeTool struct {
	info Info
}

func (f *fakeTool) Info() Info { return f.info }

// isolateRegistry gives the test an empty registry and restores the global
// one afterwards.
func isolateRegistry(tb testing.TB) {
	tb.Helper()

	toolsMutex.Lock()
	prevTools, prevNames := tools, toolsNames
	tools, toolsNames = map[string]Constructor{}, nil
	toolsMutex.Unlock()

	tb.Cleanup(func() {
		toolsMutex.Lock()
		tools, toolsNames = prevTools, prevNames
		toolsMutex.Unlock()
	})
}

func constructorFor(version string, err error) Constructor {
	return func(_ context.Context, name string, searchPath SearchPath) (Tool, error) {
		if err != nil {
			return nil, err
		}
		return &fakeTool{info: Info{Name: name, Path: searchPath.Value, Version: version}}, nil
	}
}

func TestRegisterTool(t *testing.T) {
	isolateRegistry(t)

	RegisterTool("cargo", constructorFor("1.79.0", nil))

	require.PanicsWithValue(t, `toolchain: tool "cargo" is already registered`, func() {
		RegisterTool("cargo", constructorFor("1.79.0", nil))
	})
	require.PanicsWithValue(t, `toolchain: constructor provided for tool "gcc" is nil`, func() {
		RegisterTool("gcc", nil)
	})
	require.Panics(t, func() {
		RegisterTool("bin"+string(os.PathSeparator)+"gcc", constructorFor("", nil))
	})
	require.Panics(t, func() {
		RegisterTool("gcc"+string(os.PathListSeparator)+"gdb", constructorFor("", nil))
	})

	require.Equal(t, []string{"cargo"}, Names())
}

func TestNewTool(t *testing.T) {
	isolateRegistry(t)

	RegisterTool("cargo", constructorFor("1.79.0", nil))
	RegisterTool("gdb", constructorFor("", errors.New("not installed")))

	tool, err := NewTool(context.Background(), "cargo", SearchPath{Value: "/mingw64/bin"})
	require.NoError(t, err)
	require.Equal(t, Info{Name: "cargo", Path: "/mingw64/bin", Version: "1.79.0"}, tool.Info())

	_, err = NewTool(context.Background(), "gdb", SearchPath{})
	require.EqualError(t, err, `toolchain: failed to initialize tool "gdb": not installed`)

	_, err = NewTool(context.Background(), "make", SearchPath{})
	require.EqualError(t, err, `toolchain: missing tool "make", forgotten import?`)
}

func TestDetect(t *testing.T) {
	isolateRegistry(t)

	RegisterTool("cargo", constructorFor("1.79.0", nil))
	RegisterTool("gcc", constructorFor("", errors.New("not installed")))
	RegisterTool("gdb", constructorFor("14.1", nil))
	RegisterTool("rustc", constructorFor("1.79.0", nil))

	found, err := Detect(context.Background(), SearchPath{Value: "/mingw64/bin"})
	require.NoError(t, err)

	var names []string
	for _, tool := range found {
		names = append(names, tool.Info().Name)
	}
	require.Equal(t, []string{"cargo", "gdb", "rustc"}, names)
}

func TestDetect_Canceled(t *testing.T) {
	isolateRegistry(t)

	RegisterTool("cargo", constructorFor("1.79.0", nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Detect(ctx, SearchPath{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStatInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cargo")
	require.NoError(t, os.WriteFile(path, make([]byte, 42), 0o755))

	require.Equal(t, int64(42), StatInfo(Info{Path: path}).Size)
	require.Zero(t, StatInfo(Info{Path: path + ".missing"}).Size)
}

func TestSearchPath_Environ(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	t.Setenv("MYPATH", "/opt/bin")

	type test struct {
		name    string
		path    SearchPath
		wantVar string
	}

	tests := []test{
		{name: "Default", path: SearchPath{Value: "/mingw64/bin"}, wantVar: "PATH"},
		{name: "Configured", path: SearchPath{Var: "MYPATH", Value: "/mingw64/bin"}, wantVar: "MYPATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.path.Environ()

			v, ok := searchpath.Lookup(env, tt.wantVar)
			require.True(t, ok)
			require.Equal(t, "/mingw64/bin", v)

			if tt.wantVar != "PATH" {
				v, _ := searchpath.Lookup(env, "PATH")
				require.Equal(t, "/usr/bin", v, "only the configured variable is replaced")
			}

			require.Equal(t, "/usr/bin", os.Getenv("PATH"))
			require.Equal(t, "/opt/bin", os.Getenv("MYPATH"))
		})
	}
}

func TestSearchPath_LookPath(t *testing.T) {
	dir := t.TempDir()
	name := "cargo"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o755))

	path, err := SearchPath{Var: "MYPATH", Value: dir}.LookPath("cargo")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, name), path)

	_, err = SearchPath{Value: t.TempDir()}.LookPath("cargo")
	require.ErrorIs(t, err, searchpath.ErrNotFound)
}
