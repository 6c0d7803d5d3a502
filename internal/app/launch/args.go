// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jython/jbang-catalog/internal/config"
)

const (
	// DebugFlag turns on diagnostic output. It is consumed, never forwarded.
	DebugFlag = "--cli-debug"
	// VersionFlag, as the only argument, prints the tool version.
	VersionFlag = "--version"
	// ScriptExt marks the argument treated as the script.
	ScriptExt = ".py"
	// FixNumber is appended to the default Jython version to form the
	// tool version.
	FixNumber = 0
)

// Request is a parsed command line.
type Request struct {
	// ScriptPath is the first argument ending in ScriptExt, empty when none.
	ScriptPath string
	// Forwarded holds every argument except DebugFlag, in order. The script
	// itself is forwarded too.
	Forwarded []string
	// Debug is set when DebugFlag was given.
	Debug bool
	// VersionQuery is set when VersionFlag is the only argument.
	VersionQuery bool
}

// ParseArgs interprets the jython-cli command line. Only DebugFlag and a
// lone VersionFlag are recognized; everything else passes through.
func ParseArgs(args []string) Request {
	if len(args) == 1 && args[0] == VersionFlag {
		return Request{VersionQuery: true}
	}

	req := Request{Forwarded: make([]string, 0, len(args))}
	for _, arg := range args {
		if arg == DebugFlag {
			req.Debug = true
			continue
		}
		if req.ScriptPath == "" && strings.HasSuffix(arg, ScriptExt) {
			req.ScriptPath = arg
		}
		req.Forwarded = append(req.Forwarded, arg)
	}
	return req
}

// Clone returns a deep copy of r.
func (r Request) Clone() Request {
	r.Forwarded = slices.Clone(r.Forwarded)
	return r
}

// ToolVersion is the string printed for a version query. It depends only on
// built-in defaults.
func ToolVersion() string {
	return fmt.Sprintf("%s.%d", config.DefaultJythonVersion, FixNumber)
}
