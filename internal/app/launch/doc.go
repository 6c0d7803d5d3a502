// SPDX-License-Identifier: MPL-2.0

// Package launch is the jython-cli orchestrator.
//
// ParseArgs splits the command line into the script, the forwarded
// arguments and the tool's own switches. Service.Run then checks the host
// Java, extracts the script's jbang block, resolves the effective
// configuration, assembles the JBang command (writing a shim when
// configured) and launches it. Every collaborator is injected through
// Dependencies so the pipeline can run against fakes.
package launch
