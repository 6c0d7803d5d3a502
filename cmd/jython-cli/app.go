// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/jython/jbang-catalog/internal/app/launch"
	"github.com/jython/jbang-catalog/internal/config"
	"github.com/jython/jbang-catalog/internal/issue"
	"github.com/jython/jbang-catalog/internal/javaver"
	"github.com/jython/jbang-catalog/internal/runtime"
	"github.com/jython/jbang-catalog/pkg/types"
)

// EnvConfigFile names a config file to load instead of the default
// <config dir>/config.cue.
const EnvConfigFile = config.EnvConfigFile

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: the root command delegates every run to it.
	App struct {
		Config   ConfigProvider
		Prober   javaver.Prober
		Launcher runtime.Launcher
		// Logger is the handler behind slog in library packages.
		Logger *log.Logger
		stdout io.Writer
		stderr io.Writer
		// verbose is set once debug output is enabled for the current run.
		verbose bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can supply
	// fakes to avoid probing Java or starting processes.
	Dependencies struct {
		Config   ConfigProvider
		Prober   javaver.Prober
		Launcher runtime.Launcher
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Prober == nil {
		deps.Prober = javaver.CommandProber{}
	}
	if deps.Launcher == nil {
		deps.Launcher = runtime.NewSandboxLauncher(&runtime.ExecLauncher{Stdin: os.Stdin, Stdout: deps.Stdout, Stderr: deps.Stderr})
	}

	return &App{
		Config:   deps.Config,
		Prober:   deps.Prober,
		Launcher: deps.Launcher,
		Logger:   newLogger(deps.Stderr),
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

// Run handles one command line. A nil error means exit status 0; any other
// status is reported as an *ExitError.
func (a *App) Run(ctx context.Context, args []string) error {
	req := launch.ParseArgs(args)
	if req.VersionQuery {
		_, err := fmt.Fprintln(a.stdout, launch.ToolVersion())
		return err
	}

	cfg := a.loadConfig(ctx, req.Debug)
	a.setVerbose(req.Debug || cfg.Debug)

	svc := launch.New(launch.Dependencies{
		Config:   cfg,
		Prober:   a.Prober,
		Launcher: a.Launcher,
		Observer: &debugRenderer{w: a.stderr, onEnable: func() { a.setVerbose(true) }},
	})
	res, err := svc.Run(ctx, req)
	if err != nil {
		issueID, styled := classifyRunError(err, a.verbose)
		return &ExitError{Code: res.ExitCode, Err: newServiceError(err, issueID, styled)}
	}
	if !res.ExitCode.IsSuccess() {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}

// loadConfig reads the tool configuration. A broken config file is reported
// as a warning and the built-in defaults are used.
func (a *App) loadConfig(ctx context.Context, verbose bool) *config.Config {
	opts := config.LoadOptions{ConfigFilePath: types.FilesystemPath(os.Getenv(EnvConfigFile))}
	cfg, err := a.Config.Load(ctx, opts)
	if err == nil {
		return cfg
	}

	fmt.Fprintln(a.stderr, WarningStyle.Render("jython-cli: warning: ")+formatErrorForDisplay(err, verbose))
	if verbose {
		newServiceError(err, cmp.Or(issue.IssueOf(err), issue.ConfigLoadFailedId), "").render(a.stderr, true)
	}
	return config.DefaultConfig()
}

func (a *App) setVerbose(on bool) {
	if !on || a.verbose {
		return
	}
	a.verbose = true
	a.Logger.SetLevel(log.DebugLevel)
}

// handleError is the fang error handler. A child's own exit status is not
// an error worth printing.
func (a *App) handleError(w io.Writer, err error) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		svcErr.render(w, a.verbose)
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("jython-cli: error:"), formatErrorForDisplay(err, a.verbose))
}

// newLogger returns the stderr logger used as the slog handler. It only
// shows warnings until debug output is enabled.
func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "jython-cli",
		Level:  log.WarnLevel,
	})
}
