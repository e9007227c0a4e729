package template

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Kind classifies template errors. Each Kind is itself an error so that
// callers can match any *Error of that kind with errors.Is.
type Kind int

const (
	KindUnterminatedDelimiter Kind = iota + 1
	KindInvalidIdentifier
	KindInvalidExpression
	KindUnbalancedBlock
	KindUnknownKeyword
	KindUnexpectedEndOfInput

	KindNotIterable
	KindUndefinedVariable
	KindTypeMismatch
)

// Sentinel kinds for errors.Is.
var (
	ErrUnterminatedDelimiter error = KindUnterminatedDelimiter
	ErrInvalidIdentifier     error = KindInvalidIdentifier
	ErrInvalidExpression     error = KindInvalidExpression
	ErrUnbalancedBlock       error = KindUnbalancedBlock
	ErrUnknownKeyword        error = KindUnknownKeyword
	ErrUnexpectedEndOfInput  error = KindUnexpectedEndOfInput
	ErrNotIterable           error = KindNotIterable
	ErrUndefinedVariable     error = KindUndefinedVariable
	ErrTypeMismatch          error = KindTypeMismatch
)

var kindNames = map[Kind]string{
	KindUnterminatedDelimiter: "unterminated delimiter",
	KindInvalidIdentifier:     "invalid identifier",
	KindInvalidExpression:     "invalid expression",
	KindUnbalancedBlock:       "unbalanced block",
	KindUnknownKeyword:        "unknown keyword",
	KindUnexpectedEndOfInput:  "unexpected end of input",
	KindNotIterable:           "not iterable",
	KindUndefinedVariable:     "undefined variable",
	KindTypeMismatch:          "type mismatch",
}

func (k Kind) Error() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("template error %d", int(k))
}

// Compile reports whether errors of this kind are raised by Compile
// rather than Render.
func (k Kind) Compile() bool { return k >= KindUnterminatedDelimiter && k <= KindUnexpectedEndOfInput }

// DelimiterKind names one of the three tag forms.
type DelimiterKind int

const (
	DelimVariable DelimiterKind = iota + 1
	DelimControl
	DelimComment
)

func (d DelimiterKind) String() string {
	switch d {
	case DelimVariable:
		return "{{"
	case DelimControl:
		return "{%"
	case DelimComment:
		return "{#"
	}
	return "?"
}

// Error is a positioned compile or render failure.
type Error struct {
	Kind Kind
	Pos  Pos

	Delim    DelimiterKind // UnterminatedDelimiter
	Expected string        // UnbalancedBlock
	Found    string        // UnbalancedBlock, UnknownKeyword
	Path     string        // NotIterable, UndefinedVariable, TypeMismatch
	Detail   string

	Err error // optional cause
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Pos, e.Kind.Error())
	switch e.Kind {
	case KindUnterminatedDelimiter:
		fmt.Fprintf(&b, ": %s has no matching close", e.Delim)
	case KindUnbalancedBlock:
		fmt.Fprintf(&b, ": expected %s, found %s", orNone(e.Expected), orNone(e.Found))
	case KindUnknownKeyword:
		fmt.Fprintf(&b, " %q", e.Found)
	case KindNotIterable, KindUndefinedVariable, KindTypeMismatch:
		fmt.Fprintf(&b, " %q", e.Path)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "nothing"
	}
	return s
}

// Is matches the error's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func (e *Error) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.Error()),
		slog.Int("line", e.Pos.Line),
		slog.Int("col", e.Pos.Col),
	}
	if e.Path != "" {
		attrs = append(attrs, slog.String("path", e.Path))
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	return slog.GroupValue(attrs...)
}

// IsCompileError reports whether err came from Compile.
func IsCompileError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind.Compile()
}

// IsRenderError reports whether err came from Render.
func IsRenderError(err error) bool {
	var e *Error
	return errors.As(err, &e) && !e.Kind.Compile()
}
