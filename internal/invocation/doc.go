// SPDX-License-Identifier: MPL-2.0

// Package invocation assembles the JBang command line that launches Jython.
//
// Two shapes are supported. The direct shape runs the Jython artifact with
// an explicit main class:
//
//	jbang run --java 21 [--runtime-option O]... [--deps D]... --main org.python.util.jython org.python:jython-slim:2.7.4 script.py args...
//
// The shim shape first writes a small Java source file whose JBang directives
// carry the dependencies and Java version, then runs that file:
//
//	jbang run [--runtime-option O]... script_py.java script.py args...
//
// Assembly is a pure function of the resolved configuration and the
// forwarded arguments.
package invocation
