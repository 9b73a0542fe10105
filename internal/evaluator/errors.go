package evaluator

import (
	"fmt"
	"strings"

	"github.com/jxlang/jx/internal/ast"
)

// ErrKind classifies an evaluation failure.
type ErrKind string

const (
	ErrFieldNotFound    ErrKind = "FieldNotFound"
	ErrTypeMismatch     ErrKind = "TypeMismatch"
	ErrTooManyArguments ErrKind = "TooManyArguments"
	ErrNoSuchParameter  ErrKind = "NoSuchParameter"
	ErrDuplicateBinding ErrKind = "DuplicateBinding"
	ErrMissingArgument  ErrKind = "MissingArgument"
	ErrUnknownParameter ErrKind = "UnknownParameter"
	ErrAssertionFailed  ErrKind = "AssertionFailed"
	ErrExplicit         ErrKind = "Explicit"
	ErrInternal         ErrKind = "Internal"
)

// StackFrame is one entry of the call trace carried by an EvalError.
type StackFrame struct {
	Name string
	At   ast.Position
}

// EvalError is the single error type produced by the evaluator. There
// is no local recovery: every EvalError aborts the enclosing
// evaluation and surfaces to the caller.
type EvalError struct {
	Kind       ErrKind
	Message    string
	At         ast.Position
	StackTrace []StackFrame
}

func (e *EvalError) Error() string {
	var sb strings.Builder
	if e.At.IsSet() {
		fmt.Fprintf(&sb, "%s: %s", e.At, e.Message)
	} else {
		sb.WriteString(e.Message)
	}
	// Innermost call last, matching the order frames were pushed.
	for i := len(e.StackTrace) - 1; i >= 0; i-- {
		frame := e.StackTrace[i]
		fmt.Fprintf(&sb, "\n  at %s (%s)", frame.Name, frame.At)
	}
	return sb.String()
}

// Is lets errors.Is match on the kind via kindError sentinels.
func (e *EvalError) Is(target error) bool {
	if k, ok := target.(kindError); ok {
		return e.Kind == ErrKind(k)
	}
	return false
}

type kindError ErrKind

func (k kindError) Error() string { return string(k) }

// KindOf returns a sentinel usable with errors.Is to test for a kind.
func KindOf(k ErrKind) error { return kindError(k) }

func newError(kind ErrKind, pos ast.Position, format string, a ...interface{}) *EvalError {
	return &EvalError{
		Kind:    kind,
		Message: fmt.Sprintf(format, a...),
		At:      pos,
	}
}

// errorWithStack attaches a copy of the current call stack.
func (i *Interp) errorWithStack(kind ErrKind, pos ast.Position, format string, a ...interface{}) *EvalError {
	err := newError(kind, pos, format, a...)
	if len(i.callStack) > 0 {
		err.StackTrace = make([]StackFrame, len(i.callStack))
		copy(err.StackTrace, i.callStack)
	}
	return err
}

// pluralSuffix returns "s" when n names are being reported, so that
// messages read "parameter x" and "parameters x, y".
func pluralSuffix(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// failIfNonEmpty raises kind for every parameter whose index is in the
// set, listed in declaration order. It is a no-op for an empty set.
func failIfNonEmpty(set bitset, kind ErrKind, pos ast.Position, names []string, format string) error {
	if set.empty() {
		return nil
	}
	var offending []string
	for idx := 0; idx < len(names); idx++ {
		if set.has(idx) {
			offending = append(offending, names[idx])
		}
	}
	return newError(kind, pos, format, pluralSuffix(len(offending)), strings.Join(offending, ", "))
}
