// Package build runs the autoxbuild steps: the package build command, the
// bundler, and the website copy, strictly in that order. The first failure
// stops the run; nothing is retried or rolled back.
package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/yaklabco/autoxbuild/config"
	logkeys "github.com/yaklabco/autoxbuild/internal/log"
	"github.com/yaklabco/autoxbuild/pkg/st"
	"github.com/yaklabco/autoxbuild/pkg/ui"
	"github.com/yaklabco/autoxbuild/pkg/website"
)

// Step is one unit of work in a run. Run blocks until the work is complete.
type Step interface {
	Name() string
	Run(ctx context.Context) error
}

type stepFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (s stepFunc) Name() string                  { return s.name }
func (s stepFunc) Run(ctx context.Context) error { return s.fn(ctx) }

// StepFunc adapts a function to a named Step.
func StepFunc(name string, fn func(ctx context.Context) error) Step {
	return stepFunc{name: name, fn: fn}
}

// Driver runs steps sequentially.
type Driver struct {
	steps  []Step
	logger *log.Logger
	out    io.Writer
}

// Option configures a Driver.
type Option func(*Driver)

// WithSteps replaces the configured steps.
func WithSteps(steps ...Step) Option {
	return func(d *Driver) {
		d.steps = steps
	}
}

// WithLogger sets the logger used for step progress.
func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithOutput sets where step banners are printed. A nil writer disables them.
func WithOutput(w io.Writer) Option {
	return func(d *Driver) {
		d.out = w
	}
}

// NewDriver returns a Driver for the build, bundle and copy steps described by cfg.
func NewDriver(cfg *config.Config, opts ...Option) *Driver {
	env := cfg.EnvMap()
	driver := &Driver{
		steps: []Step{
			&CommandStep{Label: StepBuild, Command: cfg.Build, Env: env},
			&BundleStep{Command: cfg.Bundle, Env: env},
			&CopyStep{Options: website.Options{
				Src:     cfg.Website.Src,
				Dst:     cfg.Website.Dst,
				Exclude: cfg.Website.Exclude,
				Clean:   cfg.Website.Clean,
			}},
		},
		logger: log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true}),
		out:    os.Stderr,
	}
	for _, opt := range opts {
		opt(driver)
	}

	return driver
}

// StepNames lists the steps in run order.
func (d *Driver) StepNames() []string {
	return lo.Map(d.steps, func(step Step, _ int) string { return step.Name() })
}

// Run executes every step once, in order. It returns nil only when all steps
// succeed; otherwise it returns a *StepError for the first failing step and
// no later step is started.
func (d *Driver) Run(ctx context.Context) error {
	logger := d.logger.With(logkeys.RunID, uuid.NewString())
	total := len(d.steps)
	started := time.Now()

	for i, step := range d.steps {
		if d.out != nil {
			_, _ = fmt.Fprintln(d.out, ui.StepBanner(i+1, total, step.Name()))
		}

		stepStarted := time.Now()
		logger.Debug("step started", logkeys.Step, step.Name())

		if err := step.Run(ctx); err != nil {
			logger.Error("step failed",
				logkeys.Step, step.Name(),
				logkeys.ExitCode, st.ExitStatus(err),
				logkeys.Duration, time.Since(stepStarted).Round(time.Millisecond),
				logkeys.Error, err,
			)
			return &StepError{Step: step.Name(), Index: i, Err: err}
		}

		logger.Info("step finished",
			logkeys.Step, step.Name(),
			logkeys.Duration, time.Since(stepStarted).Round(time.Millisecond),
		)
	}

	logger.Info("build complete", logkeys.Duration, time.Since(started).Round(time.Millisecond))

	return nil
}
