// SPDX-License-Identifier: MPL-2.0

// Package cueutil formats CUE validation errors for users.
//
// CUE reports errors with a path of selectors; FormatError renders them as
// "<file>: <json-path>: <message>" lines, for example
//
//	config.cue: java.minimum: invalid value 0 (out of bound >=1)
package cueutil
