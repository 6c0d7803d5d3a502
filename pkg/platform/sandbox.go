// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

// SandboxType names the application sandbox jython-cli runs in.
type SandboxType string

const (
	SandboxNone    SandboxType = ""
	SandboxFlatpak SandboxType = "flatpak"
	SandboxSnap    SandboxType = "snap"
)

// flatpakSpawn is the Flatpak helper that runs a command outside the sandbox.
const flatpakSpawn = "flatpak-spawn"

// sandboxOnce must not panic: sync.OnceValue would re-panic on every call.
var sandboxOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// DetectSandbox reports the sandbox of the current process, computed once.
// A Flatpak is recognized by /.flatpak-info, a Snap by SNAP_NAME.
func DetectSandbox() SandboxType {
	return sandboxOnce()
}

// HostCommand rewrites a command so it runs on the host. JBang and the JVM
// are host tools, so inside a Flatpak the command goes through
// "flatpak-spawn --host". A Snap has no such escape and the command is
// returned unchanged, as it is outside any sandbox.
func HostCommand(st SandboxType, program string, args []string) (string, []string) {
	if st != SandboxFlatpak {
		return program, args
	}
	return flatpakSpawn, append([]string{"--host", program}, args...)
}

// detectSandboxFrom takes its environment and filesystem probes as
// parameters so tests need not touch process state. Flatpak wins over Snap.
func detectSandboxFrom(getenv func(string) string, stat func(string) error) SandboxType {
	switch {
	case stat("/.flatpak-info") == nil:
		return SandboxFlatpak
	case getenv("SNAP_NAME") != "":
		return SandboxSnap
	default:
		return SandboxNone
	}
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
