/*
Package gcc detects the MinGW GCC toolchain the game's native
dependencies are linked with.

It registers the gcc compiler and the gdb debugger.
*/
package gcc

import (
	"context"
	"os/exec"

	"github.com/tmaxmax/paclike/pkg/toolchain"
)

const (
	compilerName = "gcc"
	debuggerName = "gdb"
)

var execCommandContext = exec.CommandContext

func init() {
	toolchain.RegisterTool(compilerName, func(ctx context.Context, pathOrExecutableName string, searchPath toolchain.SearchPath) (toolchain.Tool, error) {
		return NewCompiler(ctx, pathOrExecutableName, searchPath)
	})
	toolchain.RegisterTool(debuggerName, func(ctx context.Context, pathOrExecutableName string, searchPath toolchain.SearchPath) (toolchain.Tool, error) {
		return NewDebugger(ctx, pathOrExecutableName, searchPath)
	})
}

func output(ctx context.Context, path string, searchPath toolchain.SearchPath, args ...string) ([]byte, error) {
	cmd := execCommandContext(ctx, path, args...)
	cmd.Env = searchPath.Environ()

	return cmd.Output()
}
