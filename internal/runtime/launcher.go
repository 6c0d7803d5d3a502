// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	goruntime "runtime"
	"time"

	"github.com/jython/jbang-catalog/pkg/platform"
	"github.com/jython/jbang-catalog/pkg/types"
)

// statusControlCExit is STATUS_CONTROL_C_EXIT, the status of a Windows
// process ended by Ctrl-C.
const statusControlCExit uint32 = 0xC000013A

// DefaultWaitDelay bounds how long an interrupted child may keep running
// before it is killed.
const DefaultWaitDelay = 5 * time.Second

var (
	// ErrLaunchFailed is the sentinel error wrapped by LaunchError.
	ErrLaunchFailed = errors.New("cannot start launcher")

	// ErrInterrupted is returned when the wait for the child is interrupted.
	ErrInterrupted = errors.New("interrupted while waiting for the launched process")
)

type (
	// Launcher starts a program and waits for it to finish.
	Launcher interface {
		Launch(ctx context.Context, program string, args []string) (types.ExitCode, error)
	}

	// LauncherFunc adapts a function to the Launcher interface.
	LauncherFunc func(ctx context.Context, program string, args []string) (types.ExitCode, error)

	// ExecLauncher runs programs with os/exec.
	ExecLauncher struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Dir is the working directory, the current one when empty.
		Dir string
		// WaitDelay defaults to DefaultWaitDelay.
		WaitDelay time.Duration
	}

	// LaunchError is returned when the program cannot be started.
	LaunchError struct {
		Program string
		Err     error
	}
)

// Launch implements Launcher.
func (f LauncherFunc) Launch(ctx context.Context, program string, args []string) (types.ExitCode, error) {
	return f(ctx, program, args)
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot start %s: %v", e.Program, e.Err)
}

// Unwrap returns ErrLaunchFailed and the underlying cause.
func (e *LaunchError) Unwrap() []error { return []error{ErrLaunchFailed, e.Err} }

// NewExecLauncher returns a launcher wired to the process's standard streams.
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Launch implements Launcher.
func (l *ExecLauncher) Launch(ctx context.Context, program string, args []string) (types.ExitCode, error) {
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Dir = l.Dir
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.Cancel = func() error { return interrupt(cmd.Process) }
	cmd.WaitDelay = l.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	slog.Debug("launching", "program", program, "args", len(args))
	if err := cmd.Start(); err != nil {
		return types.ExitLaunchFailure, &LaunchError{Program: program, Err: err}
	}

	err := cmd.Wait()
	if ctx.Err() != nil && !exitedNormally(err) {
		return types.ExitInterrupted, ErrInterrupted
	}
	return extractExitCode(err)
}

// exitedNormally reports whether the child finished on its own with a
// status, rather than being killed or cut off by the wait delay.
func exitedNormally(err error) bool {
	if err == nil {
		return true
	}
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() >= 0
}

// extractExitCode maps the result of Wait to an exit code. A child that ran
// and failed is not an error: its status is propagated as is.
func extractExitCode(err error) (types.ExitCode, error) {
	if err == nil {
		return types.ExitSuccess, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return statusCode(types.ExitCode(exitErr.ExitCode()))
	}

	// I/O copy failures and similar.
	return types.ExitLaunchFailure, err
}

// statusCode maps a child's exit status to the code jython-cli exits with.
func statusCode(code types.ExitCode) (types.ExitCode, error) {
	if code < 0 || uint32(code) == statusControlCExit {
		// Killed by a signal, or by Ctrl-C on Windows.
		return types.ExitInterrupted, ErrInterrupted
	}
	if err := code.Validate(); err != nil {
		// Windows statuses are 32 bits wide; os.Exit passes them on as is.
		slog.Debug("propagating wide exit status", "code", code, "error", err)
	}
	return code, nil
}

func interrupt(p *os.Process) error {
	if goruntime.GOOS == platform.Windows {
		return p.Kill()
	}
	return p.Signal(os.Interrupt)
}
