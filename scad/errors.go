package scad

import (
	"fmt"
	"strings"
)

// ParseError is a single parser diagnostic: a kind tag, message, location and
// a short error code (spec §4.2).
type ParseError struct {
	Code    string
	Message string
	Token   Token
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s [%s]", e.Token.Line, e.Token.Column, e.Message, e.Code)
}

// ParseErrors is an accumulated, non-empty-on-failure list of parse errors.
type ParseErrors []ParseError

func (el ParseErrors) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	if len(el) == 1 {
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more error(s))", el[0].Error(), len(el)-1)
}

// SourceError carries a message plus the source span and text needed to
// render a caret-pointing code snippet.
type SourceError struct {
	Message string
	Span    Span
	Source  string
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Span.Start.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

// FormatWithContext renders the error with the offending source line and a
// caret under the column, for user-facing display.
func (e *SourceError) FormatWithContext() string {
	if e.Source == "" || e.Span.Start.Line == 0 {
		return e.Error()
	}
	lines := strings.Split(e.Source, "\n")
	lineNum := e.Span.Start.Line
	if lineNum < 1 || lineNum > len(lines) {
		return e.Error()
	}
	line := lines[lineNum-1]
	col := e.Span.Start.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	return sb.String()
}

// NewSourceErrorf creates a SourceError with a formatted message.
func NewSourceErrorf(span Span, source string, format string, args ...interface{}) *SourceError {
	return &SourceError{Message: fmt.Sprintf(format, args...), Span: span, Source: source}
}
