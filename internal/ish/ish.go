package ish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yaklabco/autoxbuild/internal/dryrun"
	"github.com/yaklabco/autoxbuild/internal/env"
	"github.com/yaklabco/autoxbuild/internal/log"
	"github.com/yaklabco/autoxbuild/pkg/st"
)

const dirPerm = 0o755

// Exec executes the command, piping its stdout and stderr to the given
// writers.
func Exec(ctx context.Context, envMap map[string]string, stdin io.Reader, stdout, stderr io.Writer, cmd string, args ...string) (bool, error) {
	expand := func(varName string) string {
		if envMap != nil {
			s2, ok := envMap[varName]
			if ok {
				return s2
			}
		}
		return os.Getenv(varName)
	}

	cmd = os.Expand(cmd, expand)

	expanded := make([]string, len(args))
	for i := range args {
		expanded[i] = os.Expand(args[i], expand)
	}

	ran, code, err := run(ctx, envMap, stdin, stdout, stderr, cmd, expanded...)
	if err == nil {
		return true, nil
	}
	if ran {
		return ran, st.Fatalf(code, `running "%s" failed with exit code %d`, commandLine(cmd, expanded), code)
	}
	return ran, fmt.Errorf(`failed to run "%s": %w`, commandLine(cmd, expanded), err)
}

func run(ctx context.Context, envMap map[string]string, stdin io.Reader, stdout, stderr io.Writer, cmd string, args ...string) (bool, int, error) {
	theCmd := dryrun.Wrap(ctx, cmd, args...)
	theCmd.Env = env.Overlay(envMap)
	theCmd.Stderr = stderr
	theCmd.Stdout = stdout
	theCmd.Stdin = stdin

	quoted := make([]string, 0, len(args))
	for i := range args {
		quoted = append(quoted, fmt.Sprintf("%q", args[i]))
	}
	if st.Verbose() {
		log.SimpleConsoleLogger.Println("exec:", cmd, strings.Join(quoted, " "))
	}
	err := theCmd.Run()

	return cmdRan(err), exitStatus(err), err
}

func commandLine(cmd string, args []string) string {
	return strings.TrimSpace(cmd + " " + strings.Join(args, " "))
}

// Start runs the command in the background. The returned channel receives
// exactly one value, the command's result, and is then closed.
func Start(ctx context.Context, envMap map[string]string, stdin io.Reader, stdout, stderr io.Writer, cmd string, args ...string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		_, err := Exec(ctx, envMap, stdin, stdout, stderr, cmd, args...)
		done <- err
	}()

	return done
}

// cmdRan examines the error to determine if it was generated as a result of a
// command running via os/exec.Command.
func cmdRan(err error) bool {
	if err == nil {
		return true
	}
	var ee *exec.ExitError
	ok := errors.As(err, &ee)
	if ok {
		return ee.Exited()
	}
	return false
}

// exitStatus returns the exit status of the error if it is an exec.ExitError
// or if it implements ExitStatus() int.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exit st.ExitStatuser
	if errors.As(err, &exit) {
		return exit.ExitStatus()
	}
	var e *exec.ExitError
	if errors.As(err, &e) {
		if ex, ok := e.Sys().(st.ExitStatuser); ok {
			return ex.ExitStatus()
		}
	}
	return 1
}

// Rm removes the given file or directory even if non-empty.
func Rm(path string) error {
	if dryrun.IsDryRun() {
		_, err := fmt.Println(dryrun.Prefix+"rm", path) //nolint:forbidigo // This is intentional console output.
		return err
	}

	err := os.RemoveAll(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return fmt.Errorf(`failed to remove %s: %w`, path, err)
}

// MkdirAll creates path and any missing parents.
func MkdirAll(path string) error {
	if dryrun.IsDryRun() {
		_, err := fmt.Println(dryrun.Prefix+"mkdir -p", path) //nolint:forbidigo // This is intentional console output.
		return err
	}

	if err := os.MkdirAll(path, dirPerm); err != nil {
		return fmt.Errorf(`failed to create %s: %w`, path, err)
	}
	return nil
}

// Copy robustly copies the source file to the destination, creating the
// destination's parent directory when it is missing.
func Copy(dst string, src string) error {
	if dryrun.IsDryRun() {
		_, err := fmt.Println(dryrun.Prefix+"cp", src, dst) //nolint:forbidigo // This is intentional console output.
		return err
	}

	from, err := os.Open(src)
	if err != nil {
		return fmt.Errorf(`can't copy %s: %w`, src, err)
	}
	defer func() { _ = from.Close() }()
	finfo, err := from.Stat()
	if err != nil {
		return fmt.Errorf(`can't stat %s: %w`, src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return fmt.Errorf(`can't create directory for %s: %w`, dst, err)
	}
	// A read-only file staged by an earlier copy can't be reopened for writing.
	if existing, statErr := os.Lstat(dst); statErr == nil && existing.Mode().IsRegular() && existing.Mode().Perm()&0o200 == 0 {
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf(`can't replace %s: %w`, dst, err)
		}
	}
	to, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, finfo.Mode())
	if err != nil {
		return fmt.Errorf(`can't copy to %s: %w`, dst, err)
	}
	_, err = io.Copy(to, from)
	if err != nil {
		_ = to.Close()
		return fmt.Errorf(`error copying %s to %s: %w`, src, dst, err)
	}
	if err := to.Close(); err != nil {
		return fmt.Errorf(`error closing %s: %w`, dst, err)
	}
	// OpenFile only applies the mode on creation.
	if err := os.Chmod(dst, finfo.Mode()); err != nil {
		return fmt.Errorf(`can't set mode on %s: %w`, dst, err)
	}
	return nil
}

// Higher-level functions

func Piper(ctx context.Context, envMap map[string]string, stdin io.Reader, stdout, stderr io.Writer, cmd string, args ...string) error {
	_, err := Exec(ctx, envMap, stdin, stdout, stderr, cmd, args...)
	return err
}
