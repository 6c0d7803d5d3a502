// SPDX-License-Identifier: MPL-2.0

// Package javaver probes the host Java runtime and checks its version.
package javaver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrUnsupportedVersion is the sentinel error wrapped by UnsupportedVersionError.
	ErrUnsupportedVersion = errors.New("unsupported Java version")

	// ErrInvalidVersion is returned when a version string has no major number.
	ErrInvalidVersion = errors.New("invalid Java version")

	// ErrProbeFailed is returned when the Java version cannot be determined.
	ErrProbeFailed = errors.New("cannot determine the Java version")

	versionPattern = regexp.MustCompile(`version "([^"]+)"`)
)

type (
	// Version is a Java version string such as "1.8.0_452" or "21.0.2".
	Version string

	// Prober reports the version of the host Java runtime.
	Prober interface {
		Probe(ctx context.Context) (Version, error)
	}

	// CommandProber runs "java -version". It prefers $JAVA_HOME/bin/java and
	// falls back to java on PATH.
	CommandProber struct {
		// JavaHome defaults to the JAVA_HOME environment variable.
		JavaHome string
		// Program overrides the java executable.
		Program string
	}

	// StaticProber returns a fixed version.
	StaticProber Version

	// UnsupportedVersionError is returned when the host Java is too old.
	UnsupportedVersionError struct {
		Version Version
		Minimum int
	}
)

// Error implements the error interface.
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("Java %s is not supported, version %d or later is required", e.Version, e.Minimum)
}

// Unwrap returns ErrUnsupportedVersion so callers can use errors.Is for programmatic detection.
func (e *UnsupportedVersionError) Unwrap() error { return ErrUnsupportedVersion }

// String returns the version string.
func (v Version) String() string { return string(v) }

// Major returns the feature release number: 8 for "1.8.0_452", 21 for
// "21.0.2", 17 for "17-ea".
func (v Version) Major() (int, error) {
	s := strings.TrimSpace(string(v))
	if rest, ok := strings.CutPrefix(s, "1."); ok {
		s = rest
	}
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, string(v))
	}
	major, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, string(v))
	}
	return major, nil
}

// CheckMinimum returns an UnsupportedVersionError when v is older than minimum.
func CheckMinimum(v Version, minimum int) error {
	major, err := v.Major()
	if err != nil {
		return err
	}
	if major < minimum {
		return &UnsupportedVersionError{Version: v, Minimum: minimum}
	}
	return nil
}

// Probe implements Prober.
func (s StaticProber) Probe(context.Context) (Version, error) {
	return Version(s), nil
}

// Probe implements Prober.
func (p CommandProber) Probe(ctx context.Context) (Version, error) {
	program := p.program()
	out, err := exec.CommandContext(ctx, program, "-version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s -version: %w", ErrProbeFailed, program, err)
	}
	return ParseVersionOutput(out)
}

func (p CommandProber) program() string {
	if p.Program != "" {
		return p.Program
	}
	home := p.JavaHome
	if home == "" {
		home = os.Getenv("JAVA_HOME")
	}
	if home != "" {
		java := filepath.Join(home, "bin", "java")
		if _, err := exec.LookPath(java); err == nil {
			return java
		}
	}
	return "java"
}

// ParseVersionOutput extracts the quoted version from "java -version" output.
func ParseVersionOutput(out []byte) (Version, error) {
	m := versionPattern.FindSubmatch(bytes.TrimSpace(out))
	if m == nil {
		return "", fmt.Errorf("%w: no version in java output", ErrProbeFailed)
	}
	return Version(m[1]), nil
}
