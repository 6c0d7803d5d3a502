// SPDX-License-Identifier: MPL-2.0

// Package resolve turns an extracted jbang block into the effective launch
// configuration.
//
// The block body is parsed as TOML and recognized keys are layered over
// defaults. Unknown keys are ignored. A recognized key of the wrong type is
// treated as absent, and list elements that are not strings are skipped one
// by one. Keys scoped to the tool's own [jython-cli] table win over the
// top-level key of the same name.
package resolve
