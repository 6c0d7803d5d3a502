// SPDX-License-Identifier: MPL-2.0

// Package runtime launches the assembled command as a child process.
//
// The Launcher interface is the only process boundary in jython-cli, so the
// orchestrator can be tested with a fake. ExecLauncher runs the program with
// inherited standard streams, waits for it, and maps its termination to an
// exit code:
//   - normal exit: the child's own status, nil error
//   - start failure (not found, permission denied): ErrLaunchFailed
//   - context canceled while waiting: the child is interrupted and
//     ErrInterrupted is returned
//
// SandboxLauncher wraps another Launcher so that a Flatpak-sandboxed
// jython-cli starts JBang on the host.
package runtime
