// Package dryrun implements the conditional checks for autoxbuild's dryrun mode.
//
// Dryrun mode is on when either the env var `AUTOXBUILD_DRYRUN` holds a truthy
// value at the point of the first call to IsDryRun(), or SetRequested(true) was
// called (the `--dryrun` flag does this). In dryrun mode every external command
// is replaced by one that echoes what would have run, and file operations print
// instead of touching the filesystem.
package dryrun

import (
	"context"
	"os/exec"

	"github.com/yaklabco/autoxbuild/internal/env"
)

// RequestedEnv is the environment variable that indicates the user requested dryrun mode.
const RequestedEnv = "AUTOXBUILD_DRYRUN"

// Prefix is printed ahead of every simulated action.
const Prefix = "DRYRUN: "

// SetRequested sets the dryrun requested state to the specified boolean value.
func SetRequested(value bool) {
	mu.Lock()
	defer mu.Unlock()
	dryRunRequestedValue = value
}

// IsDryRun checks if dry-run mode was requested, either explicitly or via an environment variable.
func IsDryRun() bool {
	dryRunRequestedEnvOnce.Do(func() {
		dryRunRequestedEnvValue = env.FailsafeParseBoolEnv(RequestedEnv, false)
	})

	mu.Lock()
	defer mu.Unlock()

	return dryRunRequestedEnvValue || dryRunRequestedValue
}

// Wrap creates an *exec.Cmd to run a command or simulate it in dry-run mode.
// If not in dry-run mode, it returns exec.CommandContext(ctx, cmd, args...).
// In dry-run mode, it returns a command that prints the simulated command.
func Wrap(ctx context.Context, cmd string, args ...string) *exec.Cmd {
	if !IsDryRun() {
		return exec.CommandContext(ctx, cmd, args...) //nolint:gosec // Running configured build commands is the point.
	}

	return exec.CommandContext(ctx, "echo", append([]string{Prefix + cmd}, args...)...) //nolint:gosec // It's echo!
}
