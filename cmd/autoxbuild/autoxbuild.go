package autoxbuild

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/yaklabco/autoxbuild/cmd/autoxbuild/version"
	"github.com/yaklabco/autoxbuild/pkg/build"
	"github.com/yaklabco/autoxbuild/pkg/st"
)

const (
	shortDescription = "Build the package, bundle it, and stage the website for distribution."
	longDescription  = `autoxbuild runs three steps in order and stops at the first failure:

  1. build   the package build command (default: npm run build)
  2. bundle  the bundler (default: npx rollup -c)
  3. copy    stage the website directory (default: website -> dist/website)

Commands run with the terminal attached. A failing command's exit code
becomes autoxbuild's exit code. Steps are configured in ./autoxbuild.yaml,
the user config file, or AUTOXBUILD_* environment variables.`
)

type rootCmdOptions struct {
	runFunc func(params build.RunParams) error
}

type Option func(*rootCmdOptions)

// This is intentionally designed to be unusable from outside this package,
// as it exists purely for testing purposes.
func withRunFunc(fn func(params build.RunParams) error) Option {
	return func(opts *rootCmdOptions) {
		opts.runFunc = fn
	}
}

func NewRootCmd(ctx context.Context, opts ...Option) *cobra.Command {
	rootCmdOpts := &rootCmdOptions{
		runFunc: build.Run,
	}
	for _, opt := range opts {
		opt(rootCmdOpts)
	}

	var runParams build.RunParams
	rootCmd := &cobra.Command{
		Use:   "autoxbuild [flags]",
		Short: shortDescription,
		Long:  longDescription,
		Example: `	# Build, bundle and stage the website
	autoxbuild

	# Run against another checkout
	autoxbuild -C ../autox

	# Show what would run without running it
	autoxbuild --dryrun`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runParams.BaseCtx = cmd.Context() //nolint:fatcontext // intentionally setting context from cmd
			runParams.Stdout = os.Stdout
			runParams.Stderr = os.Stderr

			return rootCmdOpts.runFunc(runParams)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&runParams.Debug, "debug", "d", st.Debug(), "turn on debug messages")
	rootCmd.PersistentFlags().StringVarP(&runParams.Dir, "dir", "C", "", "project directory to build in")
	rootCmd.PersistentFlags().BoolVar(&runParams.DryRun, "dryrun", false, "print commands and file operations instead of executing them")
	rootCmd.PersistentFlags().BoolVarP(&runParams.Verbose, "verbose", "v", st.Verbose(), "echo every command that runs")

	// Flags that are actually commands ("pseudo-flags").
	rootCmd.PersistentFlags().BoolVar(&runParams.Init, "init", false, "write a default user config file and exit")

	return rootCmd
}

// ExecuteWithFang runs the root Cobra command with Fang-specific options.
// It accepts a context and a root Cobra command as input parameters.
// Returns an error if the command execution fails.
func ExecuteWithFang(ctx context.Context, rootCmd *cobra.Command) error {
	//nolint:wrapcheck // top-level error from cobra, wrapping not needed
	return fang.Execute(
		ctx, rootCmd, fang.WithVersion(rootCmd.Version), fang.WithoutManpage())
}
