package build

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/autoxbuild/config"
	"github.com/yaklabco/autoxbuild/pkg/st"
)

// recorder hands out fake steps that log every invocation.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) step(name string, err error) Step {
	return StepFunc(name, func(context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, name)
		return err
	})
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, call := range r.calls {
		if call == name {
			n++
		}
	}
	return n
}

func quietDriver(steps ...Step) *Driver {
	return NewDriver(config.DefaultConfig(),
		WithSteps(steps...),
		WithLogger(log.New(io.Discard)),
		WithOutput(nil),
	)
}

func TestRunAllStepsSucceed(t *testing.T) {
	rec := &recorder{}
	driver := quietDriver(
		rec.step(StepBuild, nil),
		rec.step(StepBundle, nil),
		rec.step(StepCopy, nil),
	)

	require.NoError(t, driver.Run(t.Context()))
	assert.Equal(t, []string{StepBuild, StepBundle, StepCopy}, rec.calls)
	for _, name := range []string{StepBuild, StepBundle, StepCopy} {
		assert.Equal(t, 1, rec.count(name), "step %s", name)
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	names := []string{StepBuild, StepBundle, StepCopy}

	for failing := range names {
		t.Run(names[failing], func(t *testing.T) {
			rec := &recorder{}
			sentinel := errors.New(names[failing] + " exploded")

			steps := make([]Step, 0, len(names))
			for i, name := range names {
				var err error
				if i == failing {
					err = sentinel
				}
				steps = append(steps, rec.step(name, err))
			}

			err := quietDriver(steps...).Run(t.Context())
			require.Error(t, err)
			require.ErrorIs(t, err, sentinel)

			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, names[failing], stepErr.Step)
			assert.Equal(t, failing, stepErr.Index)
			assert.Same(t, sentinel, stepErr.Err)

			// Nothing after the failing step ran, and nothing was retried.
			assert.Equal(t, names[:failing+1], rec.calls)
			assert.Equal(t, 1, rec.count(names[failing]))
		})
	}
}

func TestBuildCommandExitStopsRun(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer
	build := &CommandStep{
		Label:   StepBuild,
		Command: config.CommandConfig{Cmd: os.Args[0], Args: []string{"-helper", "-exit", "1"}},
		Stdout:  &out,
		Stderr:  &out,
	}

	err := quietDriver(build, rec.step(StepBundle, nil), rec.step(StepCopy, nil)).Run(t.Context())
	require.Error(t, err)

	assert.Empty(t, rec.calls, "bundle and copy must not run after a failed build")
	assert.Equal(t, 1, st.ExitStatus(err))
	assert.Contains(t, err.Error(), `step "build" failed`)
	assert.Contains(t, err.Error(), os.Args[0])
	assert.Contains(t, err.Error(), "failed with exit code 1")
}

func TestBuildExitCodePropagates(t *testing.T) {
	build := &CommandStep{
		Label:   StepBuild,
		Command: config.CommandConfig{Cmd: os.Args[0], Args: []string{"-helper", "-exit", "3"}},
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	err := quietDriver(build).Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, 3, st.ExitStatus(err))
}

func TestBundleFailureSkipsCopy(t *testing.T) {
	rec := &recorder{}
	bundleErr := errors.New("rollup: could not resolve entry module")

	err := quietDriver(
		rec.step(StepBuild, nil),
		rec.step(StepBundle, bundleErr),
		rec.step(StepCopy, nil),
	).Run(t.Context())

	require.ErrorIs(t, err, bundleErr)
	assert.Equal(t, []string{StepBuild, StepBundle}, rec.calls)
	assert.Zero(t, rec.count(StepCopy))
}

func TestRunLogsAndBanners(t *testing.T) {
	rec := &recorder{}
	var logs, banners bytes.Buffer
	driver := NewDriver(config.DefaultConfig(),
		WithSteps(rec.step(StepBuild, nil), rec.step(StepBundle, errors.New("boom"))),
		WithLogger(log.New(&logs)),
		WithOutput(&banners),
	)

	require.Error(t, driver.Run(t.Context()))

	assert.Contains(t, banners.String(), "[1/2]")
	assert.Contains(t, banners.String(), "[2/2]")
	assert.Contains(t, logs.String(), "step finished")
	assert.Contains(t, logs.String(), "step failed")
	assert.Contains(t, logs.String(), "run_id=")
	assert.NotContains(t, logs.String(), "build complete")
}

func TestNewDriverDefaultSteps(t *testing.T) {
	driver := NewDriver(config.DefaultConfig())
	assert.Equal(t, []string{StepBuild, StepBundle, StepCopy}, driver.StepNames())
}

func TestRunEndToEnd(t *testing.T) {
	project := t.TempDir()
	src := filepath.Join(project, "website")
	dst := filepath.Join(project, "dist", "website")
	marker := filepath.Join(project, "bundle.out")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.html"), []byte("hi"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Build = config.CommandConfig{Cmd: os.Args[0], Args: []string{"-helper"}}
	cfg.Bundle = config.CommandConfig{Cmd: os.Args[0], Args: []string{"-helper", "-touch", marker}}
	cfg.Website.Src = src
	cfg.Website.Dst = dst

	driver := NewDriver(cfg, WithLogger(log.New(io.Discard)), WithOutput(nil))
	require.NoError(t, driver.Run(t.Context()))

	assert.FileExists(t, marker, "bundle must finish before run returns")
	assert.FileExists(t, filepath.Join(dst, "index.html"))
}

func TestStepErrorWithoutExitStatus(t *testing.T) {
	err := &StepError{Step: StepCopy, Index: 2, Err: errors.New("disk full")}
	assert.Equal(t, `step "copy" failed: disk full`, err.Error())
	assert.Equal(t, 1, err.ExitStatus())
}
