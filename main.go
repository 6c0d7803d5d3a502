// SPDX-License-Identifier: MPL-2.0

// jython-cli runs Jython scripts through JBang.
package main

import cmd "github.com/jython/jbang-catalog/cmd/jython-cli"

func main() {
	cmd.Execute()
}
