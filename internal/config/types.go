// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultJythonVersion is the Jython release launched when a script does
	// not pin one.
	DefaultJythonVersion = "2.7.4"
	// DefaultJavaFallback is used when the host Java cannot be probed.
	DefaultJavaFallback = "21"
	// DefaultJavaMinimum is the oldest host Java major version accepted.
	DefaultJavaMinimum = 8
	// DefaultLauncherProgram is the JBang executable name.
	DefaultLauncherProgram = "jbang"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the jython-cli configuration.
	Config struct {
		Jython   JythonConfig   `json:"jython" mapstructure:"jython"`
		Java     JavaConfig     `json:"java" mapstructure:"java"`
		Launcher LauncherConfig `json:"launcher" mapstructure:"launcher"`
		Blocks   BlocksConfig   `json:"blocks" mapstructure:"blocks"`
		// Debug enables diagnostic output for every run.
		Debug bool `json:"debug" mapstructure:"debug"`
	}

	// JythonConfig configures the interpreter.
	JythonConfig struct {
		// Version is used when a script has no requires-jython key.
		Version string `json:"version" mapstructure:"version"`
	}

	// JavaConfig configures the host runtime.
	JavaConfig struct {
		// Version, when set, is passed to JBang instead of the probed host version.
		Version string `json:"version" mapstructure:"version"`
		// Fallback is used when the host Java cannot be probed.
		Fallback string `json:"fallback" mapstructure:"fallback"`
		// Minimum is the oldest accepted host Java major version.
		Minimum int `json:"minimum" mapstructure:"minimum"`
	}

	// LauncherConfig configures the JBang launcher.
	LauncherConfig struct {
		// Program is the JBang executable name or path.
		Program string `json:"program" mapstructure:"program"`
		// Shim runs scripts through a generated Java shim.
		Shim bool `json:"shim" mapstructure:"shim"`
	}

	// BlocksConfig configures jbang block handling.
	BlocksConfig struct {
		// Strict turns unterminated and duplicate blocks into errors.
		Strict bool `json:"strict" mapstructure:"strict"`
	}

	// InvalidConfigError collects every invalid field.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Jython:   JythonConfig{Version: DefaultJythonVersion},
		Java:     JavaConfig{Fallback: DefaultJavaFallback, Minimum: DefaultJavaMinimum},
		Launcher: LauncherConfig{Program: DefaultLauncherProgram},
	}
}

// Validate checks values that may come from the environment, which the CUE
// schema never sees.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Jython.Version) == "" {
		errs = append(errs, errors.New("jython.version must not be empty"))
	}
	if strings.TrimSpace(c.Java.Fallback) == "" {
		errs = append(errs, errors.New("java.fallback must not be empty"))
	}
	if c.Java.Minimum < 1 {
		errs = append(errs, fmt.Errorf("java.minimum must be at least 1, got %d", c.Java.Minimum))
	}
	if strings.TrimSpace(c.Launcher.Program) == "" {
		errs = append(errs, errors.New("launcher.program must not be empty"))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is for programmatic detection.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
