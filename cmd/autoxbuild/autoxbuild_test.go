package autoxbuild

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/autoxbuild/pkg/build"
	"github.com/yaklabco/autoxbuild/pkg/st"
)

func TestNoFlagsRunsBuild(t *testing.T) {
	ctx := t.Context()
	t.Setenv(st.VerboseEnv, "")
	t.Setenv(st.DebugEnv, "")

	called := 0
	runFunc := func(params build.RunParams) error {
		called++
		assert.Empty(t, params.Dir)
		assert.False(t, params.DryRun)
		assert.False(t, params.Verbose)
		assert.False(t, params.Debug)
		assert.False(t, params.Init)
		assert.NotNil(t, params.BaseCtx)
		return nil
	}
	rootCmd := NewRootCmd(ctx, withRunFunc(runFunc))
	rootCmd.SetArgs([]string{})
	require.NoError(t, ExecuteWithFang(ctx, rootCmd))
	assert.Equal(t, 1, called)
}

func TestVerboseEnv(t *testing.T) {
	ctx := t.Context()
	t.Setenv(st.VerboseEnv, "true")
	runFunc := func(params build.RunParams) error {
		assert.True(t, params.Verbose)
		return nil
	}
	rootCmd := NewRootCmd(ctx, withRunFunc(runFunc))
	rootCmd.SetArgs([]string{})
	require.NoError(t, ExecuteWithFang(ctx, rootCmd))
}

func TestParse(t *testing.T) {
	ctx := t.Context()
	runFunc := func(params build.RunParams) error {
		assert.True(t, params.Debug)
		assert.True(t, params.Verbose)
		assert.True(t, params.DryRun)
		assert.Equal(t, "../autox", params.Dir)
		return nil
	}
	rootCmd := NewRootCmd(ctx, withRunFunc(runFunc))
	rootCmd.SetArgs([]string{"-v", "--debug", "--dryrun", "-C", "../autox"})
	require.NoError(t, ExecuteWithFang(ctx, rootCmd))
}

func TestRejectsPositionalArgs(t *testing.T) {
	ctx := t.Context()
	runFunc := func(build.RunParams) error {
		t.Fatal("run must not be called")
		return nil
	}
	rootCmd := NewRootCmd(ctx, withRunFunc(runFunc))
	rootCmd.SetArgs([]string{"deploy"})
	require.Error(t, ExecuteWithFang(ctx, rootCmd))
}

func TestRunErrorKeepsExitStatus(t *testing.T) {
	ctx := t.Context()
	runFunc := func(build.RunParams) error {
		return &build.StepError{Step: build.StepBuild, Err: st.Fatalf(2, `running "npm run build" failed with exit code 2`)}
	}
	rootCmd := NewRootCmd(ctx, withRunFunc(runFunc))
	rootCmd.SetArgs([]string{})

	err := ExecuteWithFang(ctx, rootCmd)
	require.Error(t, err)

	var stepErr *build.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 2, st.ExitStatus(err))
}
