package gcc

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tmaxmax/paclike/pkg/toolchain"
)

// Compiler is a GCC C compiler.
type Compiler struct {
	info toolchain.Info
}

var _ toolchain.Tool = (*Compiler)(nil)

// NewCompiler creates a gcc compiler instance. It looks up an executable using the provided name
// on searchPath or uses the executable at the given path, if a path is specified.
func NewCompiler(ctx context.Context, pathOrExec string, searchPath toolchain.SearchPath) (*Compiler, error) {
	path, err := searchPath.LookPath(pathOrExec)
	if err != nil {
		return nil, fmt.Errorf("gcc: failed to initialize compiler: %w", err)
	}

	version, err := output(ctx, path, searchPath, "-dumpversion")
	if err != nil {
		return nil, fmt.Errorf("gcc: failed to initialize compiler: %w", err)
	}

	info := toolchain.StatInfo(toolchain.Info{
		Name:    compilerName,
		Path:    path,
		Version: string(bytes.TrimSpace(version)),
	})

	return &Compiler{info: info}, nil
}

func (c *Compiler) Info() toolchain.Info {
	return c.info
}
