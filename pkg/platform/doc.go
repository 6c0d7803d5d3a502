// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes GOOS names and the per-platform naming of launcher
// scripts so that callers never compare against string literals, and
// detects Flatpak and Snap sandboxes so that the launcher can be started on
// the host when jython-cli itself is sandboxed.
package platform
