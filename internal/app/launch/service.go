// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	goruntime "runtime"
	"strconv"

	"github.com/jython/jbang-catalog/internal/config"
	"github.com/jython/jbang-catalog/internal/directive"
	"github.com/jython/jbang-catalog/internal/invocation"
	"github.com/jython/jbang-catalog/internal/javaver"
	"github.com/jython/jbang-catalog/internal/resolve"
	"github.com/jython/jbang-catalog/internal/runtime"
	"github.com/jython/jbang-catalog/pkg/types"
)

// ErrVersionQuery is returned by Run when given a version query, which
// callers must answer before building a Service.
var ErrVersionQuery = errors.New("version query is handled by the caller")

type (
	// Observer receives the intermediate results of a debug run. Methods are
	// called in pipeline order, before the launch.
	Observer interface {
		BlockExtracted(script string, block directive.Block)
		ConfigResolved(cfg resolve.EffectiveConfig)
		ShimWritten(path string, shim invocation.Shim)
		InvocationReady(inv invocation.Invocation)
	}

	// Dependencies are the collaborators of a Service. Nil fields get
	// production defaults.
	Dependencies struct {
		Config   *config.Config
		Prober   javaver.Prober
		Launcher runtime.Launcher
		Parser   resolve.Parser
		// Observer is only called when debug resolves true.
		Observer Observer
		// WorkDir receives the shim, the current directory when empty.
		WorkDir string
		// GOOS selects the launcher suffix, runtime.GOOS when empty.
		GOOS string
	}

	// Service runs scripts.
	Service struct {
		deps Dependencies
	}

	// Result describes a finished run.
	Result struct {
		// ExitCode is the code jython-cli should exit with, also set when
		// Run returns an error.
		ExitCode types.ExitCode
		// Invocation is the assembled command, zero when the run failed
		// before assembly.
		Invocation invocation.Invocation
	}

	nopObserver struct{}
)

// New builds a Service, filling unset dependencies with defaults.
func New(deps Dependencies) *Service {
	if deps.Config == nil {
		deps.Config = config.DefaultConfig()
	}
	if deps.Prober == nil {
		deps.Prober = javaver.CommandProber{}
	}
	if deps.Launcher == nil {
		deps.Launcher = runtime.NewExecLauncher()
	}
	if deps.Parser == nil {
		deps.Parser = resolve.TOMLParser{}
	}
	if deps.Observer == nil {
		deps.Observer = nopObserver{}
	}
	if deps.GOOS == "" {
		deps.GOOS = goruntime.GOOS
	}
	return &Service{deps: deps}
}

// Run executes req and waits for the launched process. The returned error is
// nil whenever the launcher ran, whatever its exit status.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	if req.VersionQuery {
		return Result{ExitCode: types.ExitSuccess}, ErrVersionQuery
	}
	cfg := s.deps.Config

	hostVersion, err := s.hostVersion(ctx)
	if err != nil {
		return Result{ExitCode: types.ExitUnsupportedHost}, err
	}

	var block directive.Block
	if req.ScriptPath != "" {
		block, err = directive.Jbang.ReadFile(req.ScriptPath)
		if err != nil {
			return Result{ExitCode: types.ExitScriptRead}, err
		}
		reportIssues(req.ScriptPath, block)
	}

	defaults := resolve.NewEffectiveConfig(resolve.Defaults{
		InterpreterVersion: cfg.Jython.Version,
		HostVersion:        hostVersion,
		Debug:              cfg.Debug,
	})
	resolver := resolve.Resolver{Parser: s.deps.Parser, Strict: cfg.Blocks.Strict, ForceDebug: req.Debug}
	effective, err := resolver.Resolve(block, defaults)
	if err != nil {
		return Result{ExitCode: types.ExitConfigInvalid}, fmt.Errorf("%s: %w", req.ScriptPath, err)
	}

	observer := s.observer(effective)
	if req.ScriptPath != "" {
		observer.BlockExtracted(req.ScriptPath, block)
	}
	observer.ConfigResolved(effective)

	opts := invocation.DefaultOptions(s.deps.GOOS)
	opts.Launcher = cfg.Launcher.Program

	inv := invocation.Assemble(effective, req.Forwarded, opts)
	if cfg.Launcher.Shim && block.Extracted() {
		shim, err := invocation.NewShim(effective, req.ScriptPath, opts)
		if err != nil {
			return Result{ExitCode: types.ExitLaunchFailure}, err
		}
		file, err := invocation.WriteShim(s.workDir(), shim)
		if err != nil {
			return Result{ExitCode: types.ExitLaunchFailure}, err
		}
		defer func() {
			if err := file.Remove(); err != nil {
				slog.Warn("cannot remove shim", "path", file.Path, "error", err)
			}
		}()
		observer.ShimWritten(file.Path, shim)
		inv = invocation.AssembleShim(effective, shim, req.Forwarded, opts)
	}
	observer.InvocationReady(inv)

	code, err := s.deps.Launcher.Launch(ctx, inv.Program(), inv.Args())
	return Result{ExitCode: code, Invocation: inv}, err
}

// hostVersion returns the Java version passed to JBang. An explicit
// java.version is used as is. Otherwise the host Java is probed and must meet
// java.minimum; when probing fails java.fallback is used unchecked.
func (s *Service) hostVersion(ctx context.Context) (string, error) {
	java := s.deps.Config.Java
	if java.Version != "" {
		return java.Version, nil
	}

	v, err := s.deps.Prober.Probe(ctx)
	if err != nil {
		slog.Debug("using fallback Java version", "fallback", java.Fallback, "error", err)
		return java.Fallback, nil
	}
	major, err := v.Major()
	if err != nil {
		slog.Debug("using fallback Java version", "fallback", java.Fallback, "error", err)
		return java.Fallback, nil
	}
	if err := javaver.CheckMinimum(v, java.Minimum); err != nil {
		return "", err
	}
	return strconv.Itoa(major), nil
}

func (s *Service) observer(cfg resolve.EffectiveConfig) Observer {
	if !cfg.Debug() {
		return nopObserver{}
	}
	return s.deps.Observer
}

func (s *Service) workDir() string {
	if s.deps.WorkDir != "" {
		return s.deps.WorkDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// reportIssues logs block problems. Unterminated and duplicate blocks are
// warnings; an abandoned block followed by a good one is only traced.
func reportIssues(script string, block directive.Block) {
	for _, is := range block.Issues {
		level := slog.LevelWarn
		if is.Kind == directive.IssueFenceViolation {
			level = slog.LevelDebug
		}
		slog.Log(context.Background(), level, "jbang block ignored", "script", script, "line", is.Line, "reason", is.Kind.String())
	}
}

func (nopObserver) BlockExtracted(string, directive.Block) {}
func (nopObserver) ConfigResolved(resolve.EffectiveConfig) {}
func (nopObserver) ShimWritten(string, invocation.Shim) {}
func (nopObserver) InvocationReady(invocation.Invocation) {}
