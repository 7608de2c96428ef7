package toolchain

import (
	"context"
	"fmt"
	"sync"
)

// A Tool is a native program from the toolchain that was found on a search path.
type Tool interface {
	// Info returns some information about the tool.
	Info() Info
}

// Constructor is a function that constructs a Tool from an executable.
// It takes either a path to the executable or the executable's name as an
// argument. Names are resolved against searchPath, not against the search
// path of the current process.
type Constructor func(ctx context.Context, pathOrExecutableName string, searchPath SearchPath) (Tool, error)

var (
	tools      = map[string]Constructor{}
	toolsNames []string // provide ordered iteration for the map
	toolsMutex sync.RWMutex
)

// RegisterTool adds a Tool implementation for usage.
// If an implementation with the same name already exists or the provided
// constructor is nil, this function panics. If the name has path separators
// or path list separators, this function panics.
//
// The provided name may be used by the constructor to look up the path of the tool's executable.
func RegisterTool(name string, constructor Constructor) {
	toolsMutex.Lock()
	defer toolsMutex.Unlock()

	if !isValidImplementationName(name) {
		panic(fmt.Sprintf("toolchain: tool name %q has invalid characters", name))
	}

	if tools[name] != nil {
		panic(fmt.Sprintf("toolchain: tool %q is already registered", name))
	}

	if constructor == nil {
		panic(fmt.Sprintf("toolchain: constructor provided for tool %q is nil", name))
	}

	tools[name] = constructor
	toolsNames = append(toolsNames, name)
}

// Names returns the names of the registered tools, in registration order.
func Names() []string {
	toolsMutex.RLock()
	defer toolsMutex.RUnlock()

	return append([]string(nil), toolsNames...)
}

// NewTool looks up the executable of the tool with the given name on
// searchPath and initializes a Tool instance that uses that executable.
func NewTool(ctx context.Context, name string, searchPath SearchPath) (Tool, error) {
	toolsMutex.RLock()
	constructor := tools[name]
	toolsMutex.RUnlock()

	if constructor == nil {
		return nil, fmt.Errorf("toolchain: missing tool %q, forgotten import?", name)
	}

	tool, err := constructor(ctx, name, searchPath)
	if err != nil {
		return nil, fmt.Errorf("toolchain: failed to initialize tool %q: %w", name, err)
	}

	return tool, nil
}
