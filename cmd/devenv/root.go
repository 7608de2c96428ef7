package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmaxmax/paclike/internal/version"
	"github.com/tmaxmax/paclike/pkg/bootstrap"
	"github.com/tmaxmax/paclike/pkg/config"
	"github.com/tmaxmax/paclike/pkg/logging"
)

// deps are the collaborators tests replace. Zero values select the real ones.
type deps struct {
	command     bootstrap.CommandFunc
	setupLogger func(tool string, verbosity int) func() error
}

type rootOptions struct {
	dir        string
	pathVar    string
	tool       string
	configFile string
	verbosity  int
	printPath  bool
}

func newRootCmd(d deps) *cobra.Command {
	if d.setupLogger == nil {
		d.setupLogger = logging.SetupLogger
	}

	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "devenv [flags] [tool arguments...]",
		Short: "Run the build tool with the MinGW toolchain on the search path",
		Long: `devenv prepends the MinGW-w64 toolchain directory to the search path and
forwards its arguments, unchanged, to the build tool (cargo by default).

The extended search path is given to the build tool only: the calling shell's
environment is not modified. Without arguments devenv only reports what it
would do. Flags must come before the first tool argument; everything from the
first tool argument on, or after "--", is forwarded.

  devenv build
  devenv run --release`,
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, &opts, d)
		},
	}

	flags := cmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVar(&opts.dir, "dir", config.DefaultDir, "toolchain directory prepended to the search path")
	flags.StringVar(&opts.pathVar, "path-var", config.DefaultPathVar, "search path environment variable")
	flags.StringVar(&opts.tool, "tool", config.DefaultTool, "build tool the arguments are forwarded to")
	flags.StringVar(&opts.configFile, "config", "", "config file (default ./"+config.FileName+" or $XDG_CONFIG_HOME/paclike/"+config.FileName+")")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.BoolVar(&opts.printPath, "print-path", false, "print the extended search path and exit")

	return cmd
}

// overrides collects the flags that were set explicitly, so that unset
// flags do not shadow the config file and the environment.
func (o *rootOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	out := map[string]interface{}{}
	changed := cmd.Flags().Changed

	if changed("dir") {
		out["toolchain.dir"] = o.dir
	}
	if changed("path-var") {
		out["toolchain.path_var"] = o.pathVar
	}
	if changed("tool") {
		out["tool"] = o.tool
	}
	if changed("verbose") {
		out["verbosity"] = o.verbosity
	}

	return out
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions, d deps) error {
	cfg, _, err := config.Load(config.LoadOptions{
		File:      opts.configFile,
		Overrides: opts.overrides(cmd),
	})
	if err != nil {
		return err
	}

	closeLog := d.setupLogger("devenv", cfg.Verbosity)
	defer closeLog()

	b := bootstrap.New(cfg)
	b.Stdin, b.Stdout, b.Stderr = cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
	b.Command = d.command

	if opts.printPath {
		_, err := fmt.Fprintln(b.Stdout, b.SearchPath())
		return err
	}

	b.Logger.Info().Strs("args", args).Str("tool", cfg.Tool).Msg("Bootstrapping")

	return b.Run(cmd.Context(), args)
}
