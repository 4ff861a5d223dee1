// Package errs defines the evaluator's structured error model:
// EvalResult, the fixed error Kind vocabulary, and source-location
// carrying/formatting in the style of the teacher's compiler diagnostics
// (the teacher's internal/errors package).
package errs

import (
	"fmt"
	"strings"
)

// Kind is one of the fixed error categories an EvalResult can carry.
type Kind string

const (
	TypeMismatch    Kind = "typeMismatch"
	ArityError      Kind = "arityError"
	NameError       Kind = "nameError"
	NonExhaustive   Kind = "nonExhaustive"
	DivisionByZero  Kind = "divisionByZero"
	IndexOutOfRange Kind = "indexOutOfRange"
	KeyNotFound     Kind = "keyNotFound"
	FormatError     Kind = "formatError"
	UnsupportedValue Kind = "unsupportedValue"
	StructuralError Kind = "structuralError"
	PlatformError   Kind = "platformError"
	RegistryError   Kind = "registryError"
)

// Location is one stack frame of source position metadata attached to a
// node when it was compiled (file, line, column); it carries no source
// text of its own.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Error is the evaluator's single error representation: a kind, a
// human-readable message, and a location stack to which each enclosing IR
// node prepends its location as the error propagates up, so Locations[0]
// is the outermost node and the last entry the innermost.
type Error struct {
	Kind      Kind
	Message   string
	Locations []Location
}

// New creates an Error with no locations yet attached.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Format(false)
}

// WithLocation returns a copy of e with loc prepended to Locations,
// leaving e itself unmodified so a single Error can be safely shared
// across multiple call sites before a location is attached.
func (e *Error) WithLocation(loc Location) *Error {
	out := &Error{Kind: e.Kind, Message: e.Message}
	out.Locations = make([]Location, 0, len(e.Locations)+1)
	out.Locations = append(out.Locations, loc)
	out.Locations = append(out.Locations, e.Locations...)
	return out
}

// Format renders the error and its location stack in Locations order,
// outermost (most recently attached) first. When
// color is true, the kind and header use ANSI codes for terminal output.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if color {
		sb.WriteString("\033[1;31m")
	}
	fmt.Fprintf(&sb, "%s", e.Kind)
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)

	for i, loc := range e.Locations {
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("  ", i+1))
		sb.WriteString("at ")
		sb.WriteString(loc.String())
	}

	return sb.String()
}

// FormatWithSource is like Format but, given a lookup from file name to its
// source lines, additionally prints the offending line and a caret
// pointing at the column for each location that resolves to known source
// — used by the CLI when the front-end that produced the IR also supplied
// the original text (§4.3.3's "source location metadata" carries no text
// of its own, so this is strictly best-effort).
func (e *Error) FormatWithSource(source map[string][]string, color bool) string {
	var sb strings.Builder
	sb.WriteString(e.Format(color))

	for _, loc := range e.Locations {
		lines, ok := source[loc.File]
		if !ok || loc.Line < 1 || loc.Line > len(lines) {
			continue
		}
		sb.WriteString("\n")
		lineNumStr := fmt.Sprintf("%4d | ", loc.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(lines[loc.Line-1])
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(0, loc.Column-1)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
