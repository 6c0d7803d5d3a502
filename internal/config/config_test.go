// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jython/jbang-catalog/internal/issue"
	"github.com/jython/jbang-catalog/internal/testutil"
	"github.com/jython/jbang-catalog/pkg/platform"
)

// clearEnv removes JYTHON_CLI_* overrides inherited from the outer environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"JYTHON_CLI_JYTHON_VERSION", "JYTHON_CLI_JAVA_VERSION", "JYTHON_CLI_JAVA_FALLBACK",
		"JYTHON_CLI_JAVA_MINIMUM", "JYTHON_CLI_LAUNCHER_PROGRAM", "JYTHON_CLI_LAUNCHER_SHIM",
		"JYTHON_CLI_BLOCKS_STRICT", "JYTHON_CLI_DEBUG",
	} {
		testutil.MustUnsetenv(t, key)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	want := &Config{
		Jython:   JythonConfig{Version: "2.7.4"},
		Java:     JavaConfig{Fallback: "21", Minimum: 8},
		Launcher: LauncherConfig{Program: "jbang"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	clearEnv(t)

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: fsPath(t.TempDir())})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load() without a file mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CUEFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `
jython: version: "2.7.3"
java: {
	version: "17"
	minimum: 11
}
launcher: shim: true
blocks: strict: true
`)

	cfg, path, err := loadWithOptions(t.Context(), LoadOptions{ConfigDirPath: fsPath(dir)})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q", path)
	}

	want := &Config{
		Jython:   JythonConfig{Version: "2.7.3"},
		Java:     JavaConfig{Version: "17", Fallback: "21", Minimum: 11},
		Launcher: LauncherConfig{Program: "jbang", Shim: true},
		Blocks:   BlocksConfig{Strict: true},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown field", content: `launcher: colour: "red"`, want: "colour"},
		{name: "wrong type", content: `debug: "yes"`, want: "debug"},
		{name: "minimum out of bound", content: `java: minimum: 0`, want: "minimum"},
		{name: "bad jython version", content: `jython: version: "latest"`, want: "version"},
		{name: "syntax error", content: `java: {`, want: "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), tt.content)

			_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: fsPath(dir)})
			if err == nil {
				t.Fatal("Load() error = nil, want a schema error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("Load() error is %T, want *issue.ActionableError", err)
			}
			if ae.Operation != "load configuration" || ae.Issue != issue.ConfigLoadFailedId || len(ae.Suggestions) == 0 {
				t.Errorf("ActionableError = %+v", ae)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.cue")
	testutil.MustWriteFile(t, path, `launcher: program: "/opt/jbang/bin/jbang"`)

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigFilePath: fsPath(path)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Launcher.Program != "/opt/jbang/bin/jbang" {
		t.Errorf("Launcher.Program = %q", cfg.Launcher.Program)
	}

	_, err = NewProvider().Load(t.Context(), LoadOptions{ConfigFilePath: fsPath(filepath.Join(dir, "missing.cue"))})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `java: version: "11"`)
	t.Setenv("JYTHON_CLI_JAVA_VERSION", "17")
	t.Setenv("JYTHON_CLI_LAUNCHER_SHIM", "true")
	t.Setenv("JYTHON_CLI_DEBUG", "1")

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: fsPath(dir)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Java.Version != "17" {
		t.Errorf("Java.Version = %q, want the environment value", cfg.Java.Version)
	}
	if !cfg.Launcher.Shim || !cfg.Debug {
		t.Errorf("Launcher.Shim = %v, Debug = %v, want both true", cfg.Launcher.Shim, cfg.Debug)
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("JYTHON_CLI_LAUNCHER_PROGRAM", " ")

	_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: fsPath(t.TempDir())})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestConfigDir(t *testing.T) {
	home := t.TempDir()
	testutil.SetHomeDir(t, home)
	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("ConfigDir() = %q, want a %s directory", dir, AppName)
	}
	if runtime.GOOS == platform.Linux && dir != filepath.Join(home, ".config", AppName) {
		t.Errorf("ConfigDir() = %q, want it under %q", dir, home)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Jython.Version = ""
	cfg.Java.Minimum = 0
	cfg.Launcher.Program = "\t"

	err := cfg.Validate()
	var ice *InvalidConfigError
	if !errors.As(err, &ice) {
		t.Fatalf("Validate() error = %v, want *InvalidConfigError", err)
	}
	if len(ice.FieldErrors) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(ice.FieldErrors), ice.FieldErrors)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("error should wrap ErrInvalidConfig")
	}
}
