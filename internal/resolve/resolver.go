// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jython/jbang-catalog/internal/directive"
)

var (
	// ErrConfigParse is the sentinel error wrapped by ParseError.
	ErrConfigParse = errors.New("invalid jbang block")

	// ErrMalformedBlock is the sentinel error wrapped by MalformedBlockError.
	ErrMalformedBlock = errors.New("malformed jbang block")
)

type (
	// Parser turns block text into a tree of tables, arrays and scalars.
	Parser interface {
		Parse(text string) (map[string]any, error)
	}

	// TOMLParser parses block text as TOML.
	TOMLParser struct{}

	// Resolver layers a parsed block over defaults.
	Resolver struct {
		// Parser defaults to TOMLParser.
		Parser Parser
		// Strict turns unterminated and duplicate blocks into parse errors.
		Strict bool
		// ForceDebug is the command-line debug switch. It is the most
		// specific debug source and can only turn debug on.
		ForceDebug bool
	}

	// ParseError is returned when the block text is not valid configuration.
	ParseError struct {
		// Line and Column locate the problem in the script, 0 when unknown.
		Line   int
		Column int
		Err    error
	}

	// MalformedBlockError describes an unterminated or duplicate block.
	MalformedBlockError struct {
		Issues []directive.Issue
	}

	// rule maps key paths, in increasing specificity, onto one field.
	rule struct {
		paths [][]string
		apply func(b *EffectiveConfig, key string, v any) bool
	}
)

// rules is the precedence table. For each rule, every source is visited in
// order and every path within a source in order, so the last accepted value
// wins: later sources beat earlier ones and nested keys beat top-level keys.
var rules = []rule{
	{paths: paths(KeyRequiresJython), apply: setString(func(c *EffectiveConfig) *string { return &c.interpreterVersion })},
	{paths: paths(KeyRequiresJava), apply: setString(func(c *EffectiveConfig) *string { return &c.hostVersion })},
	{paths: paths(KeyDependencies), apply: appendStrings(func(c *EffectiveConfig) *[]string { return &c.dependencies })},
	{paths: paths(KeyRuntimeOptions), apply: appendStrings(func(c *EffectiveConfig) *[]string { return &c.runtimeOptions })},
	{paths: paths(TableJava + "." + KeyRuntimeOptions), apply: setString(func(c *EffectiveConfig) *string { return &c.hostRuntimeOptions })},
	{paths: paths(KeyDebug, TableTool+"."+KeyDebug), apply: setBool(func(c *EffectiveConfig) *bool { return &c.debug })},
}

// Parse implements Parser.
func (TOMLParser) Parse(text string) (map[string]any, error) {
	tree := map[string]any{}
	if err := toml.Unmarshal([]byte(text), &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("invalid jbang block at line %d, column %d: %v", e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("invalid jbang block at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("invalid jbang block: %v", e.Err)
}

// Unwrap returns ErrConfigParse and the underlying cause.
func (e *ParseError) Unwrap() []error { return []error{ErrConfigParse, e.Err} }

// Error implements the error interface.
func (e *MalformedBlockError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, i.String())
	}
	return fmt.Sprintf("malformed jbang block (%s)", strings.Join(parts, "; "))
}

// Unwrap returns ErrMalformedBlock so callers can use errors.Is for programmatic detection.
func (e *MalformedBlockError) Unwrap() error { return ErrMalformedBlock }

// Resolve returns the configuration for block. An absent block yields the
// defaults unchanged unless ForceDebug is set.
func (r Resolver) Resolve(block directive.Block, defaults EffectiveConfig) (EffectiveConfig, error) {
	if r.Strict && block.Malformed() {
		return EffectiveConfig{}, &ParseError{
			Line: block.Issues[0].Line,
			Err:  &MalformedBlockError{Issues: block.Issues},
		}
	}

	var sources []map[string]any
	if block.Extracted() {
		tree, err := r.parser().Parse(block.Body)
		if err != nil {
			return EffectiveConfig{}, newParseError(block, err)
		}
		sources = append(sources, tree)
	}
	if r.ForceDebug {
		sources = append(sources, map[string]any{TableTool: map[string]any{KeyDebug: true}})
	}
	if len(sources) == 0 {
		return defaults, nil
	}

	cfg := NewEffectiveConfig(defaults.Defaults())
	for _, rl := range rules {
		for _, src := range sources {
			for _, p := range rl.paths {
				v, ok := lookup(src, p)
				if !ok {
					continue
				}
				key := strings.Join(p, ".")
				if !rl.apply(&cfg, key, v) {
					slog.Debug("ignoring jbang key with unexpected type", "key", key, "type", fmt.Sprintf("%T", v))
				}
			}
		}
	}
	return cfg, nil
}

func (r Resolver) parser() Parser {
	if r.Parser == nil {
		return TOMLParser{}
	}
	return r.Parser
}

func newParseError(block directive.Block, err error) *ParseError {
	pe := &ParseError{Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		row, col := de.Position()
		if line := block.BodyLine(row); line > 0 {
			pe.Line = line
			pe.Column = col + len(directive.CommentPrefix)
		}
	}
	return pe
}

func paths(keys ...string) [][]string {
	out := make([][]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.Split(k, "."))
	}
	return out
}

func lookup(tree map[string]any, path []string) (any, bool) {
	var cur any = tree
	for _, k := range path {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = table[k]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func setString(field func(*EffectiveConfig) *string) func(*EffectiveConfig, string, any) bool {
	return func(c *EffectiveConfig, _ string, v any) bool {
		s, ok := v.(string)
		if ok {
			*field(c) = s
		}
		return ok
	}
}

func setBool(field func(*EffectiveConfig) *bool) func(*EffectiveConfig, string, any) bool {
	return func(c *EffectiveConfig, _ string, v any) bool {
		b, ok := v.(bool)
		if ok {
			*field(c) = b
		}
		return ok
	}
}

func appendStrings(field func(*EffectiveConfig) *[]string) func(*EffectiveConfig, string, any) bool {
	return func(c *EffectiveConfig, key string, v any) bool {
		items, ok := v.([]any)
		if !ok {
			return false
		}
		dst := field(c)
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				slog.Debug("skipping non-string list element", "key", key, "index", i, "type", fmt.Sprintf("%T", item))
				continue
			}
			*dst = append(*dst, s)
		}
		return true
	}
}
