package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"

	"github.com/tmaxmax/paclike/pkg/bootstrap"
)

func main() {
	// Ctrl-C reaches the build tool through the terminal; devenv keeps
	// waiting so that it exits with the tool's status.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	code := execute(context.Background(), newRootCmd(deps{}), os.Args[1:], os.Stderr)

	signal.Stop(interrupts)
	os.Exit(code)
}

// execute runs the root command and maps its outcome to an exit status:
// the build tool's status when it ran, 1 for any other failure.
func execute(ctx context.Context, root commandRunner, args []string, stderr io.Writer) int {
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *bootstrap.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	errorStyle := lipgloss.NewRenderer(stderr).NewStyle().Foreground(lipgloss.Color("9"))
	fmt.Fprintln(stderr, errorStyle.Render(fmt.Sprintf("devenv: %v", err)))

	return 1
}

type commandRunner interface {
	SetArgs([]string)
	ExecuteContext(context.Context) error
}
