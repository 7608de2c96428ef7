package gcc

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tmaxmax/paclike/pkg/toolchain"
)

func parseVersion(stdout []byte) string {
	versionLineEnd := bytes.IndexAny(stdout, "\r\n")
	if versionLineEnd == -1 {
		versionLineEnd = len(stdout)
	}
	versionLine := bytes.TrimSpace(stdout[:versionLineEnd])
	return string(versionLine[bytes.LastIndexByte(versionLine, ' ')+1:])
}

// Debugger is a GDB debugger.
type Debugger struct {
	info toolchain.Info
}

var _ toolchain.Tool = (*Debugger)(nil)

// NewDebugger creates a gdb debugger instance. It looks up an executable using the provided name
// on searchPath or uses the executable at the given path, if a path is specified.
func NewDebugger(ctx context.Context, nameOrPath string, searchPath toolchain.SearchPath) (*Debugger, error) {
	path, err := searchPath.LookPath(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("gcc: failed to initialize debugger: %w", err)
	}

	stdout, err := output(ctx, path, searchPath, "--version")
	if err != nil {
		return nil, fmt.Errorf("gcc: failed to initialize debugger: %w", err)
	}

	info := toolchain.StatInfo(toolchain.Info{
		Name:    debuggerName,
		Path:    path,
		Version: parseVersion(stdout),
	})

	return &Debugger{info: info}, nil
}

func (d *Debugger) Info() toolchain.Info {
	return d.info
}
