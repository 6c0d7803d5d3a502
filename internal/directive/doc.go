// SPDX-License-Identifier: MPL-2.0

// Package directive extracts embedded metadata blocks from script comments.
//
// A block is a run of comment lines fenced by an open marker naming the block
// type and a close marker:
//
//	# /// jbang
//	# requires-jython = "2.7.4"
//	# ///
//
// Every line between the markers must carry the "# " comment prefix (a bare
// "#" is an empty line). A line that breaks the prefix abandons the block.
// Blocks of other types are skipped as a whole, so a jbang marker that appears
// inside an open "script" block is never seen as a jbang block.
//
// Only the first completed block of the requested type is returned. Unclosed
// and repeated blocks do not stop extraction; they are reported as Issues so
// callers can decide whether to warn or fail.
package directive
