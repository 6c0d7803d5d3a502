// SPDX-License-Identifier: MPL-2.0

// Package config handles jython-cli configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/jython-cli/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/jython-cli/config.cue on
// macOS, %APPDATA%\jython-cli\config.cue on Windows). The file is validated
// against the embedded #Config schema (config_schema.cue) before it is merged
// over the built-in defaults. Environment variables prefixed with JYTHON_CLI_
// override both, with dots in key names replaced by underscores
// (JYTHON_CLI_JAVA_VERSION sets java.version).
package config
