package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/docker/go-units"
	"github.com/rs/zerolog"

	"github.com/tmaxmax/paclike/pkg/config"
	"github.com/tmaxmax/paclike/pkg/logging"
	"github.com/tmaxmax/paclike/pkg/searchpath"
)

// CommandFunc creates the command that runs the tool at path. It has the
// signature of exec.CommandContext.
type CommandFunc func(ctx context.Context, path string, args ...string) *exec.Cmd

// Bootstrapper prepends a toolchain directory to the search path and
// forwards arguments to a build tool. The zero value is not usable: at
// least Dir and Tool must be set. Use New to build one from a Config.
type Bootstrapper struct {
	// Dir is the toolchain directory placed in front of the search path.
	Dir string
	// PathVar is the search path variable. Defaults to PATH.
	PathVar string
	// Tool is the name or path of the build tool.
	Tool string
	// Hints are the follow-on commands listed in the usage hint line.
	Hints []string

	// Environ is the environment the child environment is derived from.
	// Defaults to os.Environ().
	Environ []string

	// Standard streams handed to the build tool. Stdout also receives the
	// status lines and defaults to os.Stdout; a nil Stdin or Stderr is
	// connected to the null device, as with exec.Cmd.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Command defaults to exec.CommandContext.
	Command CommandFunc

	Logger zerolog.Logger
}

// New creates a Bootstrapper for the given configuration, attached to the
// standard streams of the process.
func New(cfg *config.Config) *Bootstrapper {
	return &Bootstrapper{
		Dir:     cfg.Toolchain.Dir,
		PathVar: cfg.Toolchain.PathVar,
		Tool:    cfg.Tool,
		Hints:   cfg.Hints,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Logger:  logging.GetLogger("bootstrap"),
	}
}

// ExitError is returned by Run when the build tool exits with a non-zero status.
type ExitError struct {
	// Tool that was run.
	Tool string
	// Code is the exit status of the tool. Tools terminated by a signal
	// are reported with status 1.
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("bootstrap: %s exited with status %d", e.Tool, e.Code)
}

func (b *Bootstrapper) pathVar() string {
	if b.PathVar == "" {
		return config.DefaultPathVar
	}
	return b.PathVar
}

func (b *Bootstrapper) environ() []string {
	if b.Environ == nil {
		return os.Environ()
	}
	return b.Environ
}

// SearchPath returns the extended search path value: Dir, the path list
// separator, then the previous value (empty if the variable is unset).
func (b *Bootstrapper) SearchPath() string {
	prev, _ := searchpath.Lookup(b.environ(), b.pathVar())
	return searchpath.Prepend(b.Dir, prev)
}

// Environment returns the environment the build tool runs with: the base
// environment with the search path variable set to SearchPath.
func (b *Bootstrapper) Environment() []string {
	return searchpath.Replace(b.environ(), b.pathVar(), b.SearchPath())
}

// Run prints the status lines and, if args is not empty, runs the build tool
// with args and waits for it. A non-zero exit of the tool is reported as an
// *ExitError; failing to find or start the tool is returned as is, wrapped.
func (b *Bootstrapper) Run(ctx context.Context, args []string) error {
	env := b.Environment()
	searchPath := b.SearchPath()

	b.Logger.Debug().
		Str("dir", b.Dir).
		Str("var", b.pathVar()).
		Str("value", searchPath).
		Msg("Extended search path")

	if err := b.printStatus(); err != nil {
		return fmt.Errorf("bootstrap: failed to print status: %w", err)
	}

	if len(args) == 0 {
		return nil
	}

	// The child's PATHEXT decides which files it would consider executable.
	pathExt, _ := searchpath.Lookup(env, "PATHEXT")
	path, err := searchpath.LookPathExt(b.Tool, searchPath, pathExt)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	command := b.Command
	if command == nil {
		command = exec.CommandContext
	}

	cmd := command(ctx, path, args...)
	cmd.Args[0] = b.Tool
	cmd.Env = env
	cmd.Stdin, cmd.Stdout, cmd.Stderr = b.Stdin, b.stdout(), b.Stderr

	logging.LogCommand(b.Logger, path, args)

	start := time.Now()
	err = cmd.Run()
	elapsed := units.HumanDuration(time.Since(start))

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			code = 1
		}

		b.Logger.Info().Str("tool", b.Tool).Int("status", code).Str("elapsed", elapsed).Msg("Build tool failed")
		return &ExitError{Tool: b.Tool, Code: code}
	}
	if err != nil {
		return fmt.Errorf("bootstrap: failed to run %s: %w", b.Tool, err)
	}

	b.Logger.Info().Str("tool", b.Tool).Str("elapsed", elapsed).Msg("Build tool finished")

	return nil
}

func (b *Bootstrapper) stdout() io.Writer {
	if b.Stdout == nil {
		return os.Stdout
	}
	return b.Stdout
}

func (b *Bootstrapper) printStatus() error {
	out := b.stdout()
	r := lipgloss.NewRenderer(out)
	ok := r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"})
	hint := r.NewStyle().Faint(true)

	_, err := fmt.Fprintf(out, "%s\n%s\n",
		ok.Render(ConfirmationLine(b.Dir, b.pathVar())),
		hint.Render(HintLine(b.Tool, b.Hints)))

	return err
}

// ConfirmationLine is the first status line.
func ConfirmationLine(dir, pathVar string) string {
	return fmt.Sprintf("Toolchain %s prepended to %s for this invocation.", dir, pathVar)
}

// HintLine is the second status line, listing the follow-on commands.
func HintLine(tool string, hints []string) string {
	if len(hints) == 0 {
		return fmt.Sprintf("Pass arguments to forward them to %s.", tool)
	}
	return "Next: " + strings.Join(hints, " | ")
}
