// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/jython/jbang-catalog/internal/directive"
	"github.com/jython/jbang-catalog/internal/invocation"
	"github.com/jython/jbang-catalog/internal/resolve"
)

const (
	bannerTOML = "jbang-toml-config"
	bannerShim = "java-shim-file"
)

// debugRenderer prints the pipeline's intermediate results. It implements
// launch.Observer and is only called when debug resolves true.
type debugRenderer struct {
	w io.Writer
	// onEnable runs once, before the first output.
	onEnable func()
	enabled  bool
}

func (d *debugRenderer) BlockExtracted(script string, block directive.Block) {
	d.enable()
	fmt.Fprintf(d.w, "%s %s (%s)\n", bannerStyle.Render("jbang block:"), script, block.Status)
	for _, line := range block.Lines {
		fmt.Fprintf(d.w, "%s :%s\n", lineNumberStyle.Render(fmt.Sprintf("%6d", line.Number)), line.Text)
	}
	for _, is := range block.Issues {
		fmt.Fprintf(d.w, "%s %s\n", WarningStyle.Render("note:"), is)
	}
}

func (d *debugRenderer) ConfigResolved(cfg resolve.EffectiveConfig) {
	d.enable()
	text, err := cfg.TOML()
	if err != nil {
		text = fmt.Sprintf("cannot render configuration: %v\n", err)
	}
	d.section(bannerTOML, text)
}

func (d *debugRenderer) ShimWritten(path string, shim invocation.Shim) {
	d.enable()
	fmt.Fprintf(d.w, "%s %s\n", bannerStyle.Render("shim:"), path)
	d.section(bannerShim, shim.Text)
}

func (d *debugRenderer) InvocationReady(inv invocation.Invocation) {
	d.enable()
	fmt.Fprintln(d.w, CmdStyle.Render(quoteArgv(inv.Argv())))
	fmt.Fprintln(d.w)
}

func (d *debugRenderer) enable() {
	if d.enabled {
		return
	}
	d.enabled = true
	if d.onEnable != nil {
		d.onEnable()
	}
}

func (d *debugRenderer) section(name, body string) {
	fmt.Fprintln(d.w)
	fmt.Fprintln(d.w, bannerStyle.Render(banner(name, "begin")))
	fmt.Fprintln(d.w)
	fmt.Fprint(d.w, body)
	if !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(d.w)
	}
	fmt.Fprintln(d.w, bannerStyle.Render(banner(name, "end")))
	fmt.Fprintln(d.w)
}

// banner pads "name-edge" with dashes to a fixed width.
func banner(name, edge string) string {
	const width = 60
	label := name + "-" + edge
	left := 17
	right := max(width-left-len(label), 1)
	return "[ " + strings.Repeat("-", left) + label + strings.Repeat("-", right) + " ]"
}

// quoteArgv renders argv so it can be pasted into a POSIX shell.
func quoteArgv(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Arguments with NUL or invalid UTF-8 cannot be quoted.
			q = fmt.Sprintf("%q", arg)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " ")
}
