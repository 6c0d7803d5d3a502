// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the user. The Issue catalog holds longer Markdown guidance
// for each failure class jython-cli can report, rendered with glamour.
package issue
