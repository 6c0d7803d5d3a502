// SPDX-License-Identifier: MPL-2.0

// Package testutil holds test helpers that fail the test on error: script
// and config fixtures (WriteScript, MustWriteFile) and environment isolation
// (MustUnsetenv, SetHomeDir).
package testutil
