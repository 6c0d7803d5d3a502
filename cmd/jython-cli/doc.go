// SPDX-License-Identifier: MPL-2.0

// Package cmd is the jython-cli command line.
//
// The root command takes no flags of its own: flag parsing is disabled so
// every argument reaches the launch orchestrator, which recognizes
// --cli-debug and a lone --version and forwards everything else to Jython.
// Configuration is read from the jython-cli config.cue (or the file named by
// JYTHON_CLI_CONFIG) and JYTHON_CLI_* environment variables.
package cmd
