// SPDX-License-Identifier: MPL-2.0

package platform

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ScriptSuffix returns the suffix added to a launcher script name on goos.
// JBang ships a batch wrapper on Windows and a plain shell script elsewhere.
func ScriptSuffix(goos string) string {
	if goos == Windows {
		return ".cmd"
	}
	return ""
}
