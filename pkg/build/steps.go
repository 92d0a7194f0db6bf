package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/yaklabco/autoxbuild/config"
	"github.com/yaklabco/autoxbuild/internal/log"
	"github.com/yaklabco/autoxbuild/pkg/sh"
	"github.com/yaklabco/autoxbuild/pkg/website"
)

// Step names.
const (
	StepBuild  = "build"
	StepBundle = "bundle"
	StepCopy   = "copy"
)

// stdio fills unset streams with this process's own, so child output is shown live.
func stdio(stdin io.Reader, stdout, stderr io.Writer) (io.Reader, io.Writer, io.Writer) {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdin, stdout, stderr
}

// CommandStep runs an external command synchronously. A non-zero exit is
// returned as an error naming the command and its exit code.
type CommandStep struct {
	Label   string
	Command config.CommandConfig
	Env     map[string]string

	// Nil streams are inherited from this process.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s *CommandStep) Name() string {
	return s.Label
}

func (s *CommandStep) Run(ctx context.Context) error {
	stdin, stdout, stderr := stdio(s.Stdin, s.Stdout, s.Stderr)
	slog.DebugContext(ctx, "running command", log.Step, s.Label, log.Cmd, s.Command.String())

	return sh.PiperWith(ctx, s.Env, stdin, stdout, stderr, s.Command.Cmd, s.Command.Args...)
}

// BundleStep starts the bundler in the background and waits for it to finish.
// Cancelling ctx kills the bundler; Run still waits for it to exit.
type BundleStep struct {
	Command config.CommandConfig
	Env     map[string]string

	// Nil streams are inherited from this process.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s *BundleStep) Name() string {
	return StepBundle
}

func (s *BundleStep) Run(ctx context.Context) error {
	stdin, stdout, stderr := stdio(s.Stdin, s.Stdout, s.Stderr)
	slog.DebugContext(ctx, "starting bundler", log.Cmd, s.Command.String())

	done := sh.Start(ctx, s.Env, stdin, stdout, stderr, s.Command.Cmd, s.Command.Args...)
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		<-done
		return fmt.Errorf("bundler interrupted: %w", ctx.Err())
	}
}

// CopyStep stages the website into the distribution directory.
type CopyStep struct {
	Options website.Options
}

func (s *CopyStep) Name() string {
	return StepCopy
}

func (s *CopyStep) Run(ctx context.Context) error {
	result, err := website.Copy(ctx, s.Options)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "website copied",
		log.Src, s.Options.Src, log.Dst, s.Options.Dst, log.Files, result.Files)

	return nil
}
