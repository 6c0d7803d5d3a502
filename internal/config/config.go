// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"github.com/jython/jbang-catalog/internal/issue"
	"github.com/jython/jbang-catalog/pkg/cueutil"
	"github.com/jython/jbang-catalog/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "jython-cli"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "JYTHON_CLI"
	// EnvConfigFile names a config file loaded instead of the default
	// config.cue.
	EnvConfigFile = EnvPrefix + "_CONFIG"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the directory that holds config.cue: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (default ~/.config) elsewhere, each with a jython-cli subdirectory.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	base, err := userConfigBase(runtime.GOOS)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

func userConfigBase(goos string) (string, error) {
	if goos == platform.Windows {
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming"), nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" && goos != platform.Darwin {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if goos == platform.Darwin {
		return filepath.Join(home, "Library", "Application Support"), nil
	}
	return filepath.Join(home, ".config"), nil
}

// loadWithOptions layers defaults, the config file and JYTHON_CLI_*
// variables. It returns the path of the file that was read, empty when none
// was found.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load config canceled: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := findConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		tree, err := decodeConfigFile(path)
		if err != nil {
			return nil, "", loadError("load configuration", path, err,
				"Check that the file contains valid CUE syntax",
				"Compare the keys and types with the jython, java, launcher and blocks sections")
		}
		if err := v.MergeConfigMap(tree); err != nil {
			return nil, "", fmt.Errorf("failed to merge config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", loadError("validate configuration", sourceName(path), err,
			"Check "+EnvPrefix+"_* environment variables")
	}

	return &cfg, path, nil
}

func loadError(op, resource string, cause error, suggestions ...string) error {
	ec := issue.NewErrorContext().
		WithOperation(op).
		WithResource(resource).
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(cause)
	for _, s := range suggestions {
		ec.WithSuggestion(s)
	}
	return ec.BuildError()
}

// findConfigFile returns the explicit file, which must exist, or config.cue
// in the config directory when present.
func findConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		path := opts.ConfigFilePath.String()
		if !fileExists(path) {
			return "", loadError("load configuration", path,
				fmt.Errorf("config file not found: %s", path),
				"Verify the "+EnvConfigFile+" path is correct",
				"Check that the file exists and is readable")
		}
		return path, nil
	}

	dir := opts.ConfigDirPath.String()
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	if path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt); fileExists(path) {
		return path, nil
	}
	return "", nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("jython.version", defaults.Jython.Version)
	v.SetDefault("java.version", defaults.Java.Version)
	v.SetDefault("java.fallback", defaults.Java.Fallback)
	v.SetDefault("java.minimum", defaults.Java.Minimum)
	v.SetDefault("launcher.program", defaults.Launcher.Program)
	v.SetDefault("launcher.shim", defaults.Launcher.Shim)
	v.SetDefault("blocks.strict", defaults.Blocks.Strict)
	v.SetDefault("debug", defaults.Debug)
}

// decodeConfigFile validates a CUE file against #Config and returns it as a
// map, so viper keeps its defaults for omitted keys and the environment
// still wins.
func decodeConfigFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	cctx := cuecontext.New()
	schema := cctx.CompileString(configSchema).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("internal error: config schema: %w", err)
	}

	file := cctx.CompileBytes(data, cue.Filename(path))
	if err := file.Err(); err != nil {
		return nil, cueutil.FormatError(err, path)
	}

	unified := schema.Unify(file)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, cueutil.FormatError(err, path)
	}

	var tree map[string]any
	if err := unified.Decode(&tree); err != nil {
		return nil, cueutil.FormatError(err, path)
	}
	return tree, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func sourceName(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}
