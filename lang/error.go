package lang

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
)

// SyntaxError reports a grammar violation, a disallowed construct, or a
// normalized foreign failure (see normalize). It carries the source
// label, position, message, and original source text when known.
type SyntaxError struct {
	Label  string // source label, e.g. "<expression>"
	Line   int    // 1-based line of the offending token
	Col    int    // 0-based column of the offending token
	Msg    string
	Source string // original expression text
}

func newSyntaxErrorf(line, col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Line: line,
		Col:  col,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	label := e.Label
	if label == "" {
		label = DefaultSourceLabel
	}

	return fmt.Sprintf("%s:%d:%d: %s", label, e.Line, e.Col, e.Msg)
}

// Kind returns the error kind name used by normalization.
func (e *SyntaxError) Kind() string { return "SyntaxError" }

// Position returns the error's (line, column).
func (e *SyntaxError) Position() (int, int) { return e.Line, e.Col }

// LogValue implements slog.LogValuer for structured logging.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Msg),
		slog.String("label", e.Label),
		slog.Int("line", e.Line),
		slog.Int("col", e.Col),
	)
}

// Detail renders the error with the offending source line and a caret
// marking the column, suitable for terminal display.
func (e *SyntaxError) Detail() string {
	var buf strings.Builder

	buf.WriteString(e.Error())

	lines := strings.Split(e.Source, "\n")
	if e.Source == "" || e.Line < 1 || e.Line > len(lines) {
		return buf.String()
	}

	num := strconv.Itoa(e.Line)

	buf.WriteString("\n  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(lines[e.Line-1])
	buf.WriteString("\n")

	// 2 leading spaces + line number + " | "
	pad := len(num) + 5
	if e.Col > 0 {
		pad += e.Col
	}

	buf.WriteString(strings.Repeat(" ", pad))
	buf.WriteString("^")

	return buf.String()
}

// NameError reports an undefined variable or function reference, or a
// construction-time collision between caller variables and builtin
// constants (in which case it carries no position).
type NameError struct {
	Name string
	Line int
	Col  int
	Msg  string
}

// Error implements the error interface.
func (e *NameError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}

	return e.Msg
}

// Kind returns the error kind name used by normalization.
func (e *NameError) Kind() string { return "NameError" }

// Position returns the error's (line, column).
func (e *NameError) Position() (int, int) { return e.Line, e.Col }

// LogValue implements slog.LogValuer for structured logging.
func (e *NameError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Msg),
		slog.String("name", e.Name),
		slog.Int("line", e.Line),
		slog.Int("col", e.Col),
	)
}

// TypeError reports an operator or callee applied to operands of an
// unsupported type, or a call with bad arity. It is normalized into a
// SyntaxError at the Parse boundary.
type TypeError struct {
	Msg string
}

// Error implements the error interface.
func (e *TypeError) Error() string { return e.Msg }

// Kind returns the error kind name used by normalization.
func (e *TypeError) Kind() string { return "TypeError" }

// LogValue implements slog.LogValuer for structured logging.
func (e *TypeError) LogValue() slog.Value {
	return slog.GroupValue(slog.String("error", e.Msg))
}

// ValueError reports a well-typed value that a builtin cannot convert,
// such as int("abc"). It is normalized at the Parse boundary.
type ValueError struct {
	Msg string
}

// Error implements the error interface.
func (e *ValueError) Error() string { return e.Msg }

// Kind returns the error kind name used by normalization.
func (e *ValueError) Kind() string { return "ValueError" }

// LogValue implements slog.LogValuer for structured logging.
func (e *ValueError) LogValue() slog.Value {
	return slog.GroupValue(slog.String("error", e.Msg))
}

// opError is an internal failure kind for operator semantics that have
// their own taxonomy entry (division by zero, negative shift counts).
type opError struct {
	kind string
	msg  string
}

func (e *opError) Error() string { return e.msg }
func (e *opError) Kind() string  { return e.kind }

func newTypeErrorf(format string, args ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

func newValueErrorf(format string, args ...any) *ValueError {
	return &ValueError{Msg: fmt.Sprintf(format, args...)}
}

func zeroDivisionError(msg string) *opError {
	return &opError{kind: "ZeroDivisionError", msg: msg}
}

// kindOf derives the kind name prefixed onto normalized messages. Error
// types declare their kind explicitly; foreign errors fall back to
// their dynamic type name.
func kindOf(err error) string {
	if k, ok := err.(interface{ Kind() string }); ok {
		return k.Kind()
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Name() == "" || t.Name() == "errorString" {
		return "error"
	}

	return t.Name()
}

// normalize converts any evaluation failure into one of the two
// surfaced kinds. SyntaxError and NameError pass through with the
// source label and text attached; everything else becomes a
// SyntaxError whose message is prefixed with the original failure's
// kind name, positioned at the failure's own position when it carries
// one and (1, 0) otherwise.
func normalize(err error, source, label string) error {
	switch e := err.(type) {
	case *SyntaxError:
		e.Label = label
		e.Source = source

		return e

	case *NameError:
		return e
	}

	line, col := 1, 0
	if pe, ok := err.(interface{ Position() (int, int) }); ok {
		line, col = pe.Position()
	}

	return &SyntaxError{
		Label:  label,
		Line:   line,
		Col:    col,
		Msg:    kindOf(err) + ": " + err.Error(),
		Source: source,
	}
}
