// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jython/jbang-catalog/internal/config"
	"github.com/jython/jbang-catalog/internal/issue"
	"github.com/jython/jbang-catalog/internal/javaver"
	"github.com/jython/jbang-catalog/internal/runtime"
	"github.com/jython/jbang-catalog/internal/testutil"
	"github.com/jython/jbang-catalog/pkg/types"
)

type (
	recordingLauncher struct {
		code types.ExitCode
		err  error
		argv [][]string
	}

	failingConfigProvider struct{ err error }
)

func (r *recordingLauncher) Launch(_ context.Context, program string, args []string) (types.ExitCode, error) {
	r.argv = append(r.argv, append([]string{program}, args...))
	return r.code, r.err
}

func (p failingConfigProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return nil, p.err
}

func newTestApp(t *testing.T, cfg *config.Config, launcher runtime.Launcher) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config:   config.StaticProvider{Config: cfg},
		Prober:   javaver.StaticProber("21.0.2"),
		Launcher: launcher,
		Stdout:   &stdout,
		Stderr:   &stderr,
	})
	return app, &stdout, &stderr
}

func TestApp_VersionQuery(t *testing.T) {
	t.Parallel()

	launcher := &recordingLauncher{}
	app, stdout, stderr := newTestApp(t, nil, launcher)
	app.Config = failingConfigProvider{err: errors.New("must not be loaded")}

	if err := app.Run(t.Context(), []string{"--version"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout.String() != "2.7.4.0\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "2.7.4.0\n")
	}
	if stderr.Len() != 0 || len(launcher.argv) != 0 {
		t.Errorf("version query did more than print: stderr=%q launches=%v", stderr.String(), launcher.argv)
	}
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := testutil.WriteScript(t, dir, "foo.py", "print('hi')")
	launcher := &recordingLauncher{}
	app, _, stderr := newTestApp(t, nil, launcher)

	if err := app.Run(t.Context(), []string{script, "bar"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := [][]string{{
		"jbang", "run", "--java", "21",
		"--deps", "org.python:jython-slim:2.7.4",
		"--main", "org.python.util.jython", "org.python:jython-slim:2.7.4",
		script, "bar",
	}}
	if diff := cmp.Diff(want, launcher.argv); diff != "" {
		t.Errorf("launch mismatch (-want +got):\n%s", diff)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr output: %q", stderr.String())
	}
}

func TestApp_ChildExitStatus(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t, nil, &recordingLauncher{code: 42})
	err := app.Run(t.Context(), []string{"-c", "import sys; sys.exit(42)"})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 42 || exitErr.Err != nil {
		t.Errorf("ExitError = %+v, want code 42 without a cause", exitErr)
	}
}

func TestApp_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := testutil.WriteScript(t, dir, "broken.py", "# /// jbang", "# requires-java = [", "# ///")

	tests := []struct {
		name        string
		args        []string
		launcher    *recordingLauncher
		wantCode    types.ExitCode
		wantIssueID issue.Id
	}{
		{
			name:        "missing script",
			args:        []string{filepath.Join(dir, "missing.py")},
			launcher:    &recordingLauncher{},
			wantCode:    types.ExitScriptRead,
			wantIssueID: issue.ScriptReadFailedId,
		},
		{
			name:        "invalid block",
			args:        []string{broken},
			launcher:    &recordingLauncher{},
			wantCode:    types.ExitConfigInvalid,
			wantIssueID: issue.BlockParseErrorId,
		},
		{
			name:        "launcher missing",
			args:        []string{"-c", "pass"},
			launcher:    &recordingLauncher{code: types.ExitLaunchFailure, err: &runtime.LaunchError{Program: "jbang", Err: errors.New("executable file not found in $PATH")}},
			wantCode:    types.ExitLaunchFailure,
			wantIssueID: issue.LauncherNotFoundId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app, _, _ := newTestApp(t, nil, tt.launcher)
			err := app.Run(t.Context(), tt.args)

			var exitErr *ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != tt.wantCode {
				t.Fatalf("Run() error = %v, want exit code %d", err, tt.wantCode)
			}
			var svcErr *ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("Run() error = %v, want a *ServiceError", err)
			}
			if svcErr.IssueID != tt.wantIssueID {
				t.Errorf("IssueID = %d, want %d", svcErr.IssueID, tt.wantIssueID)
			}
			if !strings.Contains(svcErr.Message, "jython-cli: error:") {
				t.Errorf("Message = %q", svcErr.Message)
			}
		})
	}
}

func TestApp_UnsupportedJava(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Java.Minimum = 17
	launcher := &recordingLauncher{}
	app, _, _ := newTestApp(t, cfg, launcher)
	app.Prober = javaver.StaticProber("11.0.2")

	err := app.Run(t.Context(), []string{"hello.py"})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitUnsupportedHost {
		t.Fatalf("Run() error = %v, want exit code %d", err, types.ExitUnsupportedHost)
	}
	if !errors.Is(err, javaver.ErrUnsupportedVersion) {
		t.Errorf("error should wrap ErrUnsupportedVersion: %v", err)
	}
	if len(launcher.argv) != 0 {
		t.Error("launcher ran with an unsupported Java")
	}
}

func TestApp_BrokenConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	launcher := &recordingLauncher{}
	app, _, stderr := newTestApp(t, nil, launcher)
	app.Config = failingConfigProvider{err: issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.cue").
		WithSuggestion("Check that the file contains valid CUE syntax").
		Wrap(errors.New("expected '}'")).
		BuildError()}

	if err := app.Run(t.Context(), []string{"-c", "pass"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(launcher.argv) != 1 {
		t.Fatalf("launcher calls = %d, want 1", len(launcher.argv))
	}
	out := stderr.String()
	for _, want := range []string{"warning", "failed to load configuration: config.cue", "valid CUE syntax"} {
		if !strings.Contains(out, want) {
			t.Errorf("stderr missing %q:\n%s", want, out)
		}
	}
}

func TestApp_DebugOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := testutil.WriteScript(t, dir, "deps.py",
		"# /// jbang",
		`# requires-jython = "2.7.2"`,
		`# dependencies = ["io.leego:banana:2.1.0"]`,
		"# ///",
	)
	app, stdout, stderr := newTestApp(t, nil, &recordingLauncher{})

	if err := app.Run(t.Context(), []string{"--cli-debug", script, "a b"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("debug output went to stdout: %q", stdout.String())
	}
	out := stderr.String()
	for _, want := range []string{
		"     1 :# /// jbang",
		`     2 :# requires-jython = "2.7.2"`,
		"jbang-toml-config-begin",
		"requires-jython = ",
		"2.7.2",
		"jbang-toml-config-end",
		"'a b'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
	if !app.verbose {
		t.Error("debug run did not switch the app to verbose")
	}
}
