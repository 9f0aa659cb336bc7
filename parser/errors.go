package parser

import (
	"fmt"
	"strings"

	"github.com/chesstack-dsl/chesstack/token"
)

// ErrorKind categorizes a ParseError the way the interpreter's callers
// need to distinguish them: an unknown keyword is reported differently
// from an unmatched brace.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrUnknownKeyword
	ErrBadArguments
	ErrUnmatchedBrace
	ErrUnexpectedToken
	ErrDuplicateLabel
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrUnknownKeyword:
		return "unknown keyword"
	case ErrBadArguments:
		return "bad arguments"
	case ErrUnmatchedBrace:
		return "unmatched brace"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrDuplicateLabel:
		return "duplicate label"
	default:
		return "parse error"
	}
}

// ParseError reports a script that failed parse-time validation. The
// interpreter refuses to execute a script that failed to parse; the
// host engine treats that as an empty move set.
type ParseError struct {
	Kind       ErrorKind
	Message    string
	Pos        token.Position
	Source     string
	Suggestion string // e.g. a fuzzy-matched keyword name
}

func (e *ParseError) Error() string {
	snippet := e.snippet()
	msg := fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	if snippet == "" {
		return msg
	}
	return msg + "\n" + snippet
}

// snippet renders a Rust/Clang-style caret-pointed source excerpt.
func (e *ParseError) snippet() string {
	if e.Source == "" || e.Pos.Line == 0 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > len(lines) {
		return ""
	}
	lineContent := lines[e.Pos.Line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "  --> %d:%d\n", e.Pos.Line, e.Pos.Column)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", e.Pos.Line, lineContent)
	b.WriteString("   | ")
	if e.Pos.Column > 0 && e.Pos.Column <= len(lineContent)+1 {
		b.WriteString(strings.Repeat(" ", e.Pos.Column-1) + "^")
	}
	return b.String()
}
