package toolchain

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Detect returns all the registered tools available on searchPath, in
// registration order. Tools are initialized concurrently; tools that fail
// to initialize are skipped. An error is returned only if ctx is done
// before all of them finish.
func Detect(ctx context.Context, searchPath SearchPath) ([]Tool, error) {
	toolsMutex.RLock()
	names := append([]string(nil), toolsNames...)
	constructors := make([]Constructor, len(names))
	for i, name := range names {
		constructors[i] = tools[name]
	}
	toolsMutex.RUnlock()

	initialized := make([]Tool, len(names))
	g, gctx := errgroup.WithContext(ctx)

	for i := range names {
		i := i
		g.Go(func() error {
			tool, err := constructors[i](gctx, names[i], searchPath)
			if err == nil {
				initialized[i] = tool
			}
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var found []Tool
	for _, tool := range initialized {
		if tool != nil {
			found = append(found, tool)
		}
	}

	return found, nil
}
