/*
Package cargo detects the Rust toolchain the game is built with.

It registers the cargo build tool and the rustc compiler.
*/
package cargo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/tmaxmax/paclike/pkg/toolchain"
)

const (
	cargoName = "cargo"
	rustcName = "rustc"
)

var execCommandContext = exec.CommandContext

func init() {
	for _, name := range []string{cargoName, rustcName} {
		name := name
		toolchain.RegisterTool(name, func(ctx context.Context, pathOrExecutableName string, searchPath toolchain.SearchPath) (toolchain.Tool, error) {
			return newTool(ctx, name, pathOrExecutableName, searchPath)
		})
	}
}

// parseVersion extracts the version from the first line of a --version
// output such as "cargo 1.79.0 (ffa9cf99a 2024-06-03)".
func parseVersion(stdout []byte) string {
	fields := bytes.Fields(stdout)
	if len(fields) < 2 {
		return ""
	}
	return string(fields[1])
}

// Tool is a tool from the Rust toolchain.
type Tool struct {
	info toolchain.Info
}

var _ toolchain.Tool = (*Tool)(nil)

// NewCargo creates a cargo instance. It looks up an executable using the provided name
// on searchPath or uses the executable at the given path, if a path is specified.
func NewCargo(ctx context.Context, pathOrExec string, searchPath toolchain.SearchPath) (*Tool, error) {
	return newTool(ctx, cargoName, pathOrExec, searchPath)
}

// NewRustc creates a rustc instance, see NewCargo.
func NewRustc(ctx context.Context, pathOrExec string, searchPath toolchain.SearchPath) (*Tool, error) {
	return newTool(ctx, rustcName, pathOrExec, searchPath)
}

func newTool(ctx context.Context, name, pathOrExec string, searchPath toolchain.SearchPath) (*Tool, error) {
	path, err := searchPath.LookPath(pathOrExec)
	if err != nil {
		return nil, fmt.Errorf("cargo: failed to initialize %s: %w", name, err)
	}

	cmd := execCommandContext(ctx, path, "--version")
	cmd.Env = searchPath.Environ()

	stdout, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("cargo: failed to initialize %s: %w", name, err)
	}

	info := toolchain.StatInfo(toolchain.Info{
		Name:    name,
		Path:    path,
		Version: parseVersion(stdout),
	})

	return &Tool{info: info}, nil
}

func (t *Tool) Info() toolchain.Info {
	return t.info
}
