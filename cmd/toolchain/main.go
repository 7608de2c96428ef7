package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/docker/go-units"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tmaxmax/paclike/internal/version"
	"github.com/tmaxmax/paclike/pkg/bootstrap"
	"github.com/tmaxmax/paclike/pkg/config"
	"github.com/tmaxmax/paclike/pkg/logging"
	"github.com/tmaxmax/paclike/pkg/toolchain"
	_ "github.com/tmaxmax/paclike/pkg/toolchain/cargo"
	_ "github.com/tmaxmax/paclike/pkg/toolchain/gcc"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("toolchain failed")
		fmt.Fprintln(os.Stderr, "toolchain:", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile  string
		dir         string
		verbosity   int
		printConfig bool
	)

	cmd := &cobra.Command{
		Use:   "toolchain [tool...]",
		Short: "Show the tools found on the bootstrapped search path",
		Long: `toolchain looks up the build tools, compilers and debuggers that devenv would
make available, using the same configuration, and prints their location and
version. Without arguments every known tool is looked up.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("dir") {
				overrides["toolchain.dir"] = dir
			}
			if cmd.Flags().Changed("verbose") {
				overrides["verbosity"] = verbosity
			}

			cfg, k, err := config.Load(config.LoadOptions{File: configFile, Overrides: overrides})
			if err != nil {
				return err
			}

			closeLog := logging.SetupLogger("toolchain", cfg.Verbosity)
			defer closeLog()

			if printConfig {
				out, err := config.Marshal(k)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			tools, err := findTools(cmd.Context(), searchPathFor(cfg), args)
			if err != nil {
				return err
			}

			return printTools(cmd.OutOrStdout(), tools)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file")
	flags.StringVar(&dir, "dir", config.DefaultDir, "toolchain directory prepended to the search path")
	flags.CountVarP(&verbosity, "verbose", "v", "increase verbosity")
	flags.BoolVar(&printConfig, "print-config", false, "print the effective configuration as TOML and exit")

	return cmd
}

// searchPathFor returns the search path devenv would give the build tool
// under cfg, in the variable devenv would set.
func searchPathFor(cfg *config.Config) toolchain.SearchPath {
	b := bootstrap.New(cfg)

	return toolchain.SearchPath{Var: b.PathVar, Value: b.SearchPath()}
}

// findTools initializes the named tools, or detects all registered tools
// when no names are given.
func findTools(ctx context.Context, searchPath toolchain.SearchPath, names []string) ([]toolchain.Tool, error) {
	logger := logging.GetLogger("toolchain")
	logger.Debug().
		Str("var", searchPath.Var).
		Str("searchPath", searchPath.Value).
		Strs("tools", names).
		Msg("Looking up tools")

	if len(names) == 0 {
		return toolchain.Detect(ctx, searchPath)
	}

	tools := make([]toolchain.Tool, 0, len(names))
	for _, name := range names {
		tool, err := toolchain.NewTool(ctx, name, searchPath)
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}

	return tools, nil
}

func printTools(w io.Writer, tools []toolchain.Tool) error {
	if len(tools) == 0 {
		_, err := fmt.Fprintln(w, "No tools found.")
		return err
	}

	for _, tool := range tools {
		info := tool.Info()
		if _, err := fmt.Fprintf(w, "Tool: %s\nPath: %s\nVersion: %s\nSize: %s\n\n",
			info.Name, info.Path, info.Version, units.HumanSize(float64(info.Size))); err != nil {
			return err
		}
	}

	return nil
}
