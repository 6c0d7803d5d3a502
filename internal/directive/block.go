// SPDX-License-Identifier: MPL-2.0

package directive

import "fmt"

const (
	// StatusAbsent means no usable block was found.
	StatusAbsent Status = iota
	// StatusExtracted means a complete block was found and its body is usable.
	StatusExtracted
)

const (
	// IssueUnterminated marks an open marker that was never closed before end of input.
	IssueUnterminated IssueKind = iota + 1
	// IssueFenceViolation marks a line that abandoned an open block.
	IssueFenceViolation
	// IssueDuplicate marks a second complete block of the same type.
	IssueDuplicate
)

type (
	// Status tells whether a block was extracted.
	Status int

	// IssueKind classifies a problem found while scanning for a block.
	IssueKind int

	// Issue is a diagnosable problem at a given script line (1-based).
	Issue struct {
		Kind IssueKind
		Line int
	}

	// Line is a script line that belongs to the extracted block.
	Line struct {
		Number int
		Text   string
	}

	// Block is the result of one extraction pass.
	Block struct {
		Status Status
		// Body is the block content with comment prefixes stripped, joined by newlines.
		Body string
		// Start is the script line number of the open marker, 0 when absent.
		Start int
		// Lines holds the open marker, body lines and close marker as they appear in the script.
		Lines  []Line
		Issues []Issue
	}
)

// String returns a lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusExtracted:
		return "extracted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// String returns a human readable description of the issue kind.
func (k IssueKind) String() string {
	switch k {
	case IssueUnterminated:
		return "unterminated block"
	case IssueFenceViolation:
		return "block abandoned by an uncommented line"
	case IssueDuplicate:
		return "duplicate block"
	default:
		return fmt.Sprintf("issue(%d)", int(k))
	}
}

// String formats the issue as "line N: description".
func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Kind)
}

// Extracted reports whether the block carries usable configuration text.
func (b Block) Extracted() bool { return b.Status == StatusExtracted }

// Malformed reports whether the scan saw an unterminated or duplicate block.
// Fence violations alone do not make a block malformed.
func (b Block) Malformed() bool {
	for _, i := range b.Issues {
		if i.Kind == IssueUnterminated || i.Kind == IssueDuplicate {
			return true
		}
	}
	return false
}

// BodyLine maps a 1-based line of Body back to its script line number.
// It returns 0 when the block is absent or row is out of range.
func (b Block) BodyLine(row int) int {
	if !b.Extracted() || row < 1 || row > len(b.Lines)-2 {
		return 0
	}
	return b.Start + row
}

// String returns a short description such as "extracted (lines 3-7)".
func (b Block) String() string {
	if !b.Extracted() {
		return b.Status.String()
	}
	return fmt.Sprintf("%s (lines %d-%d)", b.Status, b.Start, b.Lines[len(b.Lines)-1].Number)
}
