package sh

import (
	"context"
	"io"

	"github.com/yaklabco/autoxbuild/internal/ish"
)

// PiperWith runs the given command with stdin, stdout and stderr attached to
// the given streams, adding env to the environment variables for the command.
// cmd and args may include references to environment variables in $FOO
// format, in which case these will be expanded before the command is run.
//
// If the command ran and failed, the error carries the same exit code the
// command failed with (see st.ExitStatus) and names the command.
func PiperWith(ctx context.Context, env map[string]string, stdin io.Reader, stdout, stderr io.Writer, cmd string, args ...string) error {
	return ish.Piper(ctx, env, stdin, stdout, stderr, cmd, args...)
}

// Start is the asynchronous form of PiperWith. The command runs in the
// background and its result is delivered exactly once on the returned
// channel, which is closed afterwards. Cancelling ctx kills the command.
func Start(ctx context.Context, env map[string]string, stdin io.Reader, stdout, stderr io.Writer, cmd string, args ...string) <-chan error {
	return ish.Start(ctx, env, stdin, stdout, stderr, cmd, args...)
}
