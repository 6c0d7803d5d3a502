// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"slices"

	"github.com/pelletier/go-toml/v2"
)

const (
	// KeyRequiresJython selects the interpreter version.
	KeyRequiresJython = "requires-jython"
	// KeyRequiresJava selects the host Java version.
	KeyRequiresJava = "requires-java"
	// KeyDependencies lists extra Maven coordinates.
	KeyDependencies = "dependencies"
	// KeyRuntimeOptions lists JVM options.
	KeyRuntimeOptions = "runtime-options"
	// KeyDebug turns on diagnostic output.
	KeyDebug = "debug"
	// TableJava holds host-runtime settings used by the generated shim.
	TableJava = "java"
	// TableTool holds settings scoped to jython-cli itself.
	TableTool = "jython-cli"
)

type (
	// Defaults seeds an EffectiveConfig.
	Defaults struct {
		InterpreterVersion string
		HostVersion        string
		Dependencies       []string
		RuntimeOptions     []string
		HostRuntimeOptions string
		Debug              bool
	}

	// EffectiveConfig is the resolved launch configuration. It is immutable:
	// accessors return copies and resolution always builds a new value.
	EffectiveConfig struct {
		interpreterVersion string
		hostVersion        string
		dependencies       []string
		runtimeOptions     []string
		hostRuntimeOptions string
		debug              bool
	}

	// document is the TOML shape of an EffectiveConfig.
	document struct {
		RequiresJython string    `toml:"requires-jython"`
		RequiresJava   string    `toml:"requires-java"`
		Dependencies   []string  `toml:"dependencies"`
		RuntimeOptions []string  `toml:"runtime-options"`
		Java           javaTable `toml:"java"`
		Tool           toolTable `toml:"jython-cli"`
	}

	javaTable struct {
		RuntimeOptions string `toml:"runtime-options,omitempty"`
	}

	toolTable struct {
		Debug bool `toml:"debug"`
	}
)

// NewEffectiveConfig builds a configuration from defaults.
func NewEffectiveConfig(d Defaults) EffectiveConfig {
	return EffectiveConfig{
		interpreterVersion: d.InterpreterVersion,
		hostVersion:        d.HostVersion,
		dependencies:       slices.Clone(d.Dependencies),
		runtimeOptions:     slices.Clone(d.RuntimeOptions),
		hostRuntimeOptions: d.HostRuntimeOptions,
		debug:              d.Debug,
	}
}

// InterpreterVersion returns the Jython version to launch.
func (c EffectiveConfig) InterpreterVersion() string { return c.interpreterVersion }

// HostVersion returns the Java version passed to the launcher.
func (c EffectiveConfig) HostVersion() string { return c.hostVersion }

// Dependencies returns the configured Maven coordinates in source order.
func (c EffectiveConfig) Dependencies() []string { return slices.Clone(c.dependencies) }

// RuntimeOptions returns the configured JVM options in source order.
func (c EffectiveConfig) RuntimeOptions() []string { return slices.Clone(c.runtimeOptions) }

// HostRuntimeOptions returns the [java] runtime-options string.
func (c EffectiveConfig) HostRuntimeOptions() string { return c.hostRuntimeOptions }

// Debug reports whether diagnostic output is enabled.
func (c EffectiveConfig) Debug() bool { return c.debug }

// Defaults returns the values needed to rebuild this configuration.
func (c EffectiveConfig) Defaults() Defaults {
	return Defaults{
		InterpreterVersion: c.interpreterVersion,
		HostVersion:        c.hostVersion,
		Dependencies:       c.Dependencies(),
		RuntimeOptions:     c.RuntimeOptions(),
		HostRuntimeOptions: c.hostRuntimeOptions,
		Debug:              c.debug,
	}
}

// Equal reports whether two configurations hold the same values.
func (c EffectiveConfig) Equal(o EffectiveConfig) bool {
	return c.interpreterVersion == o.interpreterVersion &&
		c.hostVersion == o.hostVersion &&
		slices.Equal(c.dependencies, o.dependencies) &&
		slices.Equal(c.runtimeOptions, o.runtimeOptions) &&
		c.hostRuntimeOptions == o.hostRuntimeOptions &&
		c.debug == o.debug
}

// TOML renders the configuration as a TOML document.
func (c EffectiveConfig) TOML() (string, error) {
	doc := document{
		RequiresJython: c.interpreterVersion,
		RequiresJava:   c.hostVersion,
		Dependencies:   c.Dependencies(),
		RuntimeOptions: c.RuntimeOptions(),
		Java:           javaTable{RuntimeOptions: c.hostRuntimeOptions},
		Tool:           toolTable{Debug: c.debug},
	}
	if doc.Dependencies == nil {
		doc.Dependencies = []string{}
	}
	if doc.RuntimeOptions == nil {
		doc.RuntimeOptions = []string{}
	}
	out, err := toml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
