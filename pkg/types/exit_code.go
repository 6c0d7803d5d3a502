// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// Exit codes reported by jython-cli itself. Any other non-zero status comes
// from the launched process and is propagated unchanged.
const (
	// ExitSuccess is returned on success and for the version query.
	ExitSuccess ExitCode = 0
	// ExitScriptRead is returned when the script file cannot be read.
	ExitScriptRead ExitCode = 1
	// ExitUnsupportedHost is returned when the host Java is older than the required minimum.
	ExitUnsupportedHost ExitCode = 2
	// ExitInterrupted is returned when the wait for the launched process is interrupted.
	ExitInterrupted ExitCode = 3
	// ExitConfigInvalid is returned when the jbang block cannot be parsed.
	ExitConfigInvalid ExitCode = 4
	// ExitLaunchFailure is returned when the launcher cannot be started.
	ExitLaunchFailure ExitCode = 5
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
