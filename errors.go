// errors.go: user-facing error wrapping and caret-snippet rendering
//
// This module turns located lexer/parser/evaluation errors into readable
// snippets with a caret pointing at the offending column:
//
//	PARSE ERROR at 1:7: Unexpected token ';'
//
//	   1 | x = 1 +;
//	     |        ^
//
// The snippet includes up to one line of context before and after the
// error, numbers the lines, and places the caret under the 1-based column.
//
// The core APIs deliberately keep their plain "line:col: message" strings
// (that is the host contract); this renderer is for terminals and the REPL.
// If the error is not one of this package's located error types it is
// returned unchanged.
package gascript

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src. It recognizes *LexError, *ParseError and *EvalError;
// anything else is returned untouched.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettyErrorString(src, "LEXICAL ERROR", e.Loc, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorString(src, "PARSE ERROR", e.Loc, e.Msg))
	case *EvalError:
		return fmt.Errorf("%s", prettyErrorString(src, "EVALUATION ERROR", e.Loc, e.Msg))
	default:
		return err
	}
}

// prettyErrorString builds the snippet: a header, at most one previous and
// one next line, and a caret. Coordinates are 1-based and clamped to the
// source bounds so a stale location cannot crash rendering.
func prettyErrorString(src, header string, loc Location, msg string) string {
	lines := strings.Split(src, "\n")
	line, col := loc.Line, loc.Col
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad > len(lineTxt) {
		caretPad = len(lineTxt)
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
