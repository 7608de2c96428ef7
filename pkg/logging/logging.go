// Package logging configures the zerolog logger shared by the paclike tools.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "paclike"

// Level maps a -v count to a log level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger based on verbosity level.
// Console output goes to stderr; records are also appended to the log file
// of the named tool under XDG_STATE_HOME. The returned function closes the
// log file, after which the global logger writes to the console only.
func SetupLogger(tool string, verbosity int) func() error {
	return setupLogger(os.Stderr, LogFilePath(tool), verbosity)
}

func setupLogger(console io.Writer, logFile string, verbosity int) func() error {
	zerolog.SetGlobalLevel(Level(verbosity))

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(console),
	}

	newLogger := func(w io.Writer) zerolog.Logger {
		logger := zerolog.New(w).With().Timestamp().Logger()
		if verbosity >= 2 {
			logger = logger.With().Caller().Logger()
		}
		return logger
	}

	logFileHandle, err := setupLogFile(logFile)
	if err != nil {
		log.Logger = newLogger(consoleWriter)
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")

		return func() error { return nil }
	}

	log.Logger = newLogger(io.MultiWriter(consoleWriter, logFileHandle))
	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")

	return func() error {
		log.Logger = newLogger(consoleWriter)
		return logFileHandle.Close()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogFilePath returns the path of the log file of the named tool.
// It respects XDG_STATE_HOME, falling back to the current directory.
func LogFilePath(tool string) string {
	if xdg.StateHome == "" {
		return tool + ".log"
	}
	return filepath.Join(xdg.StateHome, AppName, tool+".log")
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogCommand logs a command execution with its arguments
func LogCommand(logger zerolog.Logger, cmd string, args []string) {
	logger.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}
