// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Issue identifiers. The zero value means "no catalog entry".
const (
	ScriptReadFailedId Id = iota + 1
	BlockParseErrorId
	UnsupportedJavaId
	LauncherNotFoundId
	ShimWriteFailedId
	ConfigLoadFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is guidance text rendered for the user.
	MarkdownMsg string

	// HttpLink is an external reference shown under "See also".
	HttpLink string

	// Issue is a catalog entry with Markdown guidance for one failure class.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

var (
	render = glamour.Render

	scriptReadFailedIssue = &Issue{
		id: ScriptReadFailedId,
		mdMsg: `
# Cannot read the script!

jython-cli reads the whole script before launching Jython, to look for a
` + "`# /// jbang`" + ` block.

## Things you can try:
- Check the path and spelling of the script argument
- Make sure the file is readable by the current user
- The script must be the first argument ending in ` + "`.py`",
	}

	blockParseErrorIssue = &Issue{
		id: BlockParseErrorId,
		mdMsg: `
# The jbang block is not valid TOML!

Every line between ` + "`# /// jbang`" + ` and ` + "`# ///`" + ` must start with ` + "`# `" + `,
and the text after the prefix must be TOML.

## Example:
~~~python
# /// jbang
# requires-jython = "2.7.4"
# requires-java = "21"
# dependencies = [
#   "io.leego:banana:2.1.0",
# ]
# ///
~~~

## Things you can try:
- Fix the TOML at the reported line
- Close the block with a ` + "`# ///`" + ` line
- Keep a single jbang block per script`,
		extLinks: []HttpLink{"https://toml.io/en/v1.0.0", "https://peps.python.org/pep-0723/"},
	}

	unsupportedJavaIssue = &Issue{
		id: UnsupportedJavaId,
		mdMsg: `
# Java is too old!

jython-cli needs Java 8 or later on the host.

## Things you can try:
- Point ` + "`JAVA_HOME`" + ` at a newer JDK
- Let JBang pick the runtime by setting ` + "`java.version`" + ` in the config file:
~~~cue
java: version: "21"
~~~`,
	}

	launcherNotFoundIssue = &Issue{
		id: LauncherNotFoundId,
		mdMsg: `
# JBang could not be started!

jython-cli runs Jython through JBang, which must be on your PATH.

## Things you can try:
- Install JBang:
~~~
$ curl -Ls https://sh.jbang.dev | bash -s - app setup
~~~
- Or point ` + "`launcher.program`" + ` at the jbang executable in the config file`,
		extLinks: []HttpLink{"https://www.jbang.dev/download/"},
	}

	shimWriteFailedIssue = &Issue{
		id: ShimWriteFailedId,
		mdMsg: `
# Cannot write the Java shim!

With ` + "`launcher.shim`" + ` enabled, jython-cli writes ` + "`<script>_py.java`" + ` in the
current directory and removes it after the run.

## Things you can try:
- Run from a writable directory
- Remove a stale shim file left by an earlier run
- Disable the shim in the config file:
~~~cue
launcher: shim: false
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file is invalid, so built-in defaults are used.

## Things you can try:
- Check the CUE syntax of the file
- Remove unknown fields; the schema is closed
- Example:
~~~cue
jython: version: "2.7.4"
java: {
	minimum:  8
	fallback: "21"
}
launcher: program: "jbang"
blocks: strict: false
~~~`,
	}

	issues = map[Id]*Issue{
		scriptReadFailedIssue.Id(): scriptReadFailedIssue,
		blockParseErrorIssue.Id():  blockParseErrorIssue,
		unsupportedJavaIssue.Id():  unsupportedJavaIssue,
		launcherNotFoundIssue.Id(): launcherNotFoundIssue,
		shimWriteFailedIssue.Id():  shimWriteFailedIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
	}
)

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw guidance text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// ExtLinks returns a copy of the external links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guidance with the glamour style at stylePath
// ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.extLinks) > 0 {
		md += "\n\n## See also:\n"
		for _, link := range i.extLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
