package build

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/autoxbuild/config"
	"github.com/yaklabco/autoxbuild/internal/dryrun"
	"github.com/yaklabco/autoxbuild/pkg/fsutils"
	"github.com/yaklabco/autoxbuild/pkg/prettylog"
	"github.com/yaklabco/autoxbuild/pkg/st"
	"github.com/yaklabco/autoxbuild/pkg/ui"
)

// RunParams contains the args for invoking a run of autoxbuild.
type RunParams struct {
	BaseCtx context.Context // BaseCtx is the base context for the run, often used for cancellation.

	Stdout io.Writer // writer for status messages
	Stderr io.Writer // writer for logs, step banners and config warnings

	Dir     string // project directory; the run happens there
	DryRun  bool   // print commands and file operations instead of executing them
	Verbose bool   // echo every executed command
	Debug   bool   // turn on debug messages
	Init    bool   // write the default user config and exit
}

// Run is the entrypoint for running autoxbuild. It loads configuration for
// the project directory and runs the build, bundle and copy steps.
func Run(params RunParams) error {
	ctx := params.BaseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if params.Stdout == nil {
		params.Stdout = os.Stdout
	}
	if params.Stderr == nil {
		params.Stderr = os.Stderr
	}

	if params.Init {
		path, err := config.WriteDefaultConfig()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(params.Stdout, path, "created")

		return nil
	}

	if params.Dir != "" {
		dir, err := fsutils.TruePath(params.Dir)
		if err != nil {
			return fmt.Errorf("resolving project directory %s: %w", params.Dir, err)
		}
		if !fsutils.IsDir(dir) {
			return fmt.Errorf("project directory %s is not a directory", params.Dir)
		}
		if err := os.Chdir(dir); err != nil {
			return fmt.Errorf("changing to project directory: %w", err)
		}
	}

	cfg, err := config.Load(&config.LoadOptions{Stderr: params.Stderr})
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	debug := params.Debug || cfg.Debug
	st.SetVerbose(params.Verbose || cfg.Verbose)
	st.SetDebug(debug)
	if params.DryRun {
		dryrun.SetRequested(true)
	}

	logger := prettylog.SetupPrettyLogger(params.Stderr, debug)
	if path := cfg.ConfigFile(); path != "" {
		logger.Debug("loaded configuration", "path", path)
	}

	err = NewDriver(cfg, WithLogger(logger), WithOutput(params.Stderr)).Run(ctx)

	okStyle, failStyle := ui.StatusStyles()
	if err != nil {
		_, _ = fmt.Fprintln(params.Stderr, failStyle.Render(fmt.Sprintf("build failed (exit %d)", st.ExitStatus(err))))
		return err
	}
	_, _ = fmt.Fprintln(params.Stdout, okStyle.Render("build succeeded"))

	return nil
}
