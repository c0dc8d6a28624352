// Package errors formats the errors reported by the lexer and parser with
// source context: a filename:line header and a caret pointing at the
// offending column.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-es5/internal/lexer"
)

// CompilerError is a single reported error, such as a SyntaxError raised
// by the lexer/parser. Kind is free-form text printed in the header.
type CompilerError struct {
	Kind    string // "SyntaxError", "TypeError", "ReferenceError", ...
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewCompilerError constructs a CompilerError for the given source file.
func NewCompilerError(kind string, pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface with the uncolored rendering: the
// header line, plus the source line and caret when the source is known.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a caret-pointed source snippet. Color
// wraps the caret in ANSI escapes for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	loc := e.File
	if loc == "" {
		loc = "<anonymous>"
	}
	sb.WriteString(fmt.Sprintf("%s:%d: %s: %s\n", loc, e.Pos.Line, e.Kind, e.Message))

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max0(e.Pos.Column-1)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of errors, numbering each when there is more
// than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors:\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[%d/%d] ", i+1, len(errs)))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
