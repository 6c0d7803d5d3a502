// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

const (
	// DefaultName is the block type read by jython-cli.
	DefaultName = "jbang"

	// CommentPrefix is stripped from every body line.
	CommentPrefix = "# "
	// OpenPrefix precedes the block type on an open marker line.
	OpenPrefix = "# /// "
	// CloseMarker ends any block.
	CloseMarker = "# ///"

	maxLineSize = 4 * 1024 * 1024
)

// ErrScriptRead is the sentinel error wrapped by ReadError.
var ErrScriptRead = errors.New("cannot read script")

// Jbang extracts "# /// jbang" blocks.
var Jbang = Extractor{Name: DefaultName}

type (
	// Extractor finds the first block of one named type.
	Extractor struct {
		Name string
	}

	// ReadError is returned when the script text cannot be read.
	ReadError struct {
		Path string
		Err  error
	}

	scanState int

	// scan holds the state of a single pass. The body buffer is replaced on
	// every open marker so nothing leaks from an abandoned block.
	scan struct {
		name   string
		state  scanState
		start  int
		body   []string
		lines  []Line
		found  *Block
		issues []Issue
	}
)

const (
	stateOutside scanState = iota
	stateInside
	stateForeign
)

// Error implements the error interface.
func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot read script: %v", e.Err)
	}
	return fmt.Sprintf("cannot read script %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrScriptRead so callers can use errors.Is for programmatic detection.
func (e *ReadError) Unwrap() error { return ErrScriptRead }

// Cause returns the underlying I/O error.
func (e *ReadError) Cause() error { return e.Err }

// OpenMarker returns the open marker line for the extractor's block type.
func (e Extractor) OpenMarker() string {
	return OpenPrefix + e.name()
}

func (e Extractor) name() string {
	if e.Name == "" {
		return DefaultName
	}
	return e.Name
}

// Extract scans lines for the first complete block of the extractor's type.
func (e Extractor) Extract(lines []string) Block {
	s := &scan{name: e.name()}
	for i, text := range lines {
		s.step(i+1, strings.TrimSuffix(text, "\r"))
	}
	return s.finish()
}

// ExtractReader reads all lines from r and extracts the block.
func (e Extractor) ExtractReader(r io.Reader) (Block, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Block{}, &ReadError{Err: err}
	}
	return e.Extract(lines), nil
}

// ReadFile reads the script at path and extracts the block.
// The whole file is read before scanning starts.
func (e Extractor) ReadFile(path string) (Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return Block{}, &ReadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	b, err := e.ExtractReader(f)
	if err != nil {
		var re *ReadError
		if errors.As(err, &re) {
			re.Path = path
		}
		return Block{}, err
	}
	return b, nil
}

func (s *scan) step(n int, text string) {
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)

	switch s.state {
	case stateInside:
		switch {
		case trimmed == CloseMarker:
			s.lines = append(s.lines, Line{Number: n, Text: text})
			s.complete()
			return
		case trimmed == OpenPrefix+s.name:
			// A nested open abandons the current block and starts a new one.
			s.violate(n)
		case isCommentLine(text, trimmed):
			s.body = append(s.body, bodyText(text))
			s.lines = append(s.lines, Line{Number: n, Text: text})
			return
		default:
			s.violate(n)
			return
		}
	case stateForeign:
		// Only our own open marker escapes an unterminated foreign block.
		if trimmed != OpenPrefix+s.name {
			if trimmed != CloseMarker && isCommentLine(text, trimmed) {
				return
			}
			s.state = stateOutside
			return
		}
	}

	name, ok := strings.CutPrefix(trimmed, OpenPrefix)
	if !ok || strings.TrimSpace(name) == "" {
		return
	}
	if strings.TrimSpace(name) != s.name {
		s.state = stateForeign
		return
	}
	s.state = stateInside
	s.start = n
	s.body = []string{}
	s.lines = []Line{{Number: n, Text: text}}
}

func (s *scan) complete() {
	s.state = stateOutside
	if s.found != nil {
		s.issues = append(s.issues, Issue{Kind: IssueDuplicate, Line: s.start})
		return
	}
	s.found = &Block{
		Status: StatusExtracted,
		Body:   strings.Join(s.body, "\n"),
		Start:  s.start,
		Lines:  s.lines,
	}
}

func (s *scan) violate(n int) {
	if s.found == nil {
		s.issues = append(s.issues, Issue{Kind: IssueFenceViolation, Line: n})
	}
	s.state = stateOutside
	s.body = nil
	s.lines = nil
}

func (s *scan) finish() Block {
	if s.state == stateInside && s.found == nil {
		s.issues = append(s.issues, Issue{Kind: IssueUnterminated, Line: s.start})
	}
	if s.found == nil {
		return Block{Status: StatusAbsent, Issues: s.issues}
	}
	b := *s.found
	b.Issues = s.issues
	return b
}

// isCommentLine reports whether a line keeps a block open: it either starts
// with the comment prefix or is a bare "#".
func isCommentLine(text, trimmed string) bool {
	return strings.HasPrefix(text, CommentPrefix) || trimmed == "#"
}

// bodyText strips the comment prefix from a body line and keeps the rest
// verbatim, trailing whitespace included. A bare "#" is an empty line.
func bodyText(text string) string {
	if rest, ok := strings.CutPrefix(text, CommentPrefix); ok {
		return rest
	}
	return ""
}
