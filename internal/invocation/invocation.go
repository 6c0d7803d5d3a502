// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jython/jbang-catalog/internal/resolve"
	"github.com/jython/jbang-catalog/pkg/platform"
)

const (
	// DefaultLauncher is the JBang launcher script name.
	DefaultLauncher = "jbang"
	// DefaultMainClass is the Jython entry point.
	DefaultMainClass = "org.python.util.jython"
	// DefaultArtifact is the Maven group and artifact of the Jython runtime.
	DefaultArtifact = "org.python:jython-slim"

	// RunCommand is the JBang subcommand that runs a script or artifact.
	RunCommand = "run"
	// FlagJava selects the Java version.
	FlagJava = "--java"
	// FlagRuntimeOption passes one JVM option.
	FlagRuntimeOption = "--runtime-option"
	// FlagDeps adds one dependency to the class path.
	FlagDeps = "--deps"
	// FlagMain selects the main class.
	FlagMain = "--main"
)

type (
	// Options controls the launcher-specific parts of an invocation.
	Options struct {
		// Launcher is the launcher program name or path.
		Launcher string
		// GOOS decides the launcher script suffix.
		GOOS      string
		MainClass string
		Artifact  string
	}

	// Invocation is an assembled command line, optionally paired with the
	// shim it runs.
	Invocation struct {
		program string
		args    []string
		shim    *Shim
	}
)

// DefaultOptions returns the JBang options for goos.
func DefaultOptions(goos string) Options {
	return Options{
		Launcher:  DefaultLauncher,
		GOOS:      goos,
		MainClass: DefaultMainClass,
		Artifact:  DefaultArtifact,
	}
}

// LauncherProgram returns the launcher name with the platform script suffix.
// A launcher that already carries an extension is returned unchanged.
func (o Options) LauncherProgram() string {
	launcher := cmp.Or(o.Launcher, DefaultLauncher)
	if filepath.Ext(launcher) != "" {
		return launcher
	}
	return launcher + platform.ScriptSuffix(o.GOOS)
}

// InterpreterDependency returns the Maven coordinate of the Jython runtime.
func (o Options) InterpreterDependency(version string) string {
	return cmp.Or(o.Artifact, DefaultArtifact) + ":" + version
}

// Assemble builds the direct invocation. The order is fixed: run, Java
// version, runtime options, dependencies with the interpreter last, main
// class and artifact, then the forwarded arguments verbatim.
func Assemble(cfg resolve.EffectiveConfig, forwarded []string, opts Options) Invocation {
	interpreter := opts.InterpreterDependency(cfg.InterpreterVersion())

	args := []string{RunCommand, FlagJava, cfg.HostVersion()}
	args = appendRuntimeOptions(args, cfg)
	for _, dep := range dependencies(cfg, opts) {
		args = append(args, FlagDeps, dep)
	}
	args = append(args, FlagMain, cmp.Or(opts.MainClass, DefaultMainClass), interpreter)
	args = append(args, forwarded...)

	return Invocation{program: opts.LauncherProgram(), args: args}
}

// AssembleShim builds the invocation that runs a generated shim.
func AssembleShim(cfg resolve.EffectiveConfig, shim Shim, forwarded []string, opts Options) Invocation {
	args := []string{RunCommand}
	args = appendRuntimeOptions(args, cfg)
	args = append(args, shim.FileName)
	args = append(args, forwarded...)

	return Invocation{program: opts.LauncherProgram(), args: args, shim: &shim}
}

// Program returns the launcher program.
func (i Invocation) Program() string { return i.program }

// Args returns the arguments after the program name.
func (i Invocation) Args() []string { return slices.Clone(i.args) }

// Argv returns the program followed by its arguments.
func (i Invocation) Argv() []string {
	return append([]string{i.program}, i.args...)
}

// Shim returns the shim this invocation runs, if any.
func (i Invocation) Shim() (Shim, bool) {
	if i.shim == nil {
		return Shim{}, false
	}
	return *i.shim, true
}

// String joins the argument vector with spaces. It does not quote; use it
// for logging only.
func (i Invocation) String() string {
	return strings.Join(i.Argv(), " ")
}

// dependencies returns the configured dependencies followed by the
// interpreter dependency unless it is already listed.
func dependencies(cfg resolve.EffectiveConfig, opts Options) []string {
	deps := cfg.Dependencies()
	interpreter := opts.InterpreterDependency(cfg.InterpreterVersion())
	if !slices.Contains(deps, interpreter) {
		deps = append(deps, interpreter)
	}
	return deps
}

func appendRuntimeOptions(args []string, cfg resolve.EffectiveConfig) []string {
	for _, opt := range cfg.RuntimeOptions() {
		args = append(args, FlagRuntimeOption, opt)
	}
	return args
}
