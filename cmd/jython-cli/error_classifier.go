// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/jython/jbang-catalog/internal/directive"
	"github.com/jython/jbang-catalog/internal/invocation"
	"github.com/jython/jbang-catalog/internal/issue"
	"github.com/jython/jbang-catalog/internal/javaver"
	"github.com/jython/jbang-catalog/internal/resolve"
	"github.com/jython/jbang-catalog/internal/runtime"
)

// classifyRunError maps a launch failure to an issue catalog ID and returns
// a styled one-line message for CLI rendering. An interruption has no
// catalog entry.
func classifyRunError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	switch {
	case errors.Is(err, directive.ErrScriptRead):
		issueID = issue.ScriptReadFailedId
	case errors.Is(err, resolve.ErrConfigParse):
		issueID = issue.BlockParseErrorId
	case errors.Is(err, javaver.ErrUnsupportedVersion):
		issueID = issue.UnsupportedJavaId
	case errors.Is(err, invocation.ErrShimWrite):
		issueID = issue.ShimWriteFailedId
	case errors.Is(err, runtime.ErrLaunchFailed):
		issueID = issue.LauncherNotFoundId
	}

	return issueID, fmt.Sprintf("%s %s\n", ErrorStyle.Render("jython-cli: error:"), formatErrorForDisplay(err, verbose))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
