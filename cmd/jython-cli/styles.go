// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output, tuned for dark terminals.
const (
	// ColorPrimary is purple, used for banners.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for line numbers and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for the launched command.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for the launched command line.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// bannerStyle frames the sections of debug output.
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// lineNumberStyle is for script line numbers in the block trace.
	lineNumberStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
