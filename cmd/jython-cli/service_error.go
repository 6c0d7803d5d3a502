// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jython/jbang-catalog/internal/issue"
)

// ServiceError is a launch failure ready for the terminal: the one-line
// message printed for it and the catalog entry explaining it.
type ServiceError struct {
	Err     error
	IssueID issue.Id
	// Message is the styled line printed before any guidance.
	Message string
}

// newServiceError panics on a nil err; a ServiceError always wraps a cause.
func newServiceError(err error, issueID issue.Id, message string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID, Message: message}
}

func (e *ServiceError) Error() string { return e.Err.Error() }

func (e *ServiceError) Unwrap() error { return e.Err }

// render writes the message and, with guidance, the glamour-rendered
// catalog entry.
func (e *ServiceError) render(w io.Writer, guidance bool) {
	if e == nil {
		return
	}
	fmt.Fprint(w, e.Message)

	entry := issue.Get(e.IssueID)
	if !guidance || entry == nil {
		return
	}
	out, err := entry.Render("dark")
	if err != nil {
		slog.Warn("cannot render issue guidance", "issue", e.IssueID, "error", err)
		return
	}
	fmt.Fprint(w, out)
}
