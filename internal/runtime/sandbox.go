// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"log/slog"

	"github.com/jython/jbang-catalog/pkg/platform"
	"github.com/jython/jbang-catalog/pkg/types"
)

// SandboxLauncher starts programs on the host when jython-cli runs inside a
// sandbox that can reach it. JBang and the JVM are host tools, so a
// Flatpak-packaged jython-cli must go through flatpak-spawn.
type SandboxLauncher struct {
	Launcher Launcher
	Sandbox  platform.SandboxType
}

// NewSandboxLauncher wraps l for the sandbox the process runs in.
func NewSandboxLauncher(l Launcher) SandboxLauncher {
	return SandboxLauncher{Launcher: l, Sandbox: platform.DetectSandbox()}
}

// Launch implements Launcher.
func (l SandboxLauncher) Launch(ctx context.Context, program string, args []string) (types.ExitCode, error) {
	hostProgram, hostArgs := platform.HostCommand(l.Sandbox, program, args)
	if hostProgram != program {
		slog.Debug("launching on the host", "sandbox", string(l.Sandbox), "via", hostProgram)
	}
	return l.Launcher.Launch(ctx, hostProgram, hostArgs)
}
