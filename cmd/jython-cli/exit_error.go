// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/jython/jbang-catalog/pkg/types"
)

// ExitError carries the process exit code out of the cobra command so
// Execute can call os.Exit once. Err is nil when Code is the launched
// program's own status, which needs no message.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
