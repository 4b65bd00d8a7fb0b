package types

import "fmt"

// ErrKind classifies recoverable script errors
type ErrKind int

const (
	ErrNone ErrKind = iota
	ErrParse
	ErrType
	ErrArgument
	ErrUndefined
)

// String returns the error kind name used in diagnostics and conformance
// expectations
func (k ErrKind) String() string {
	switch k {
	case ErrNone:
		return "NoError"
	case ErrParse:
		return "ParseError"
	case ErrType:
		return "TypeError"
	case ErrArgument:
		return "ArgumentError"
	case ErrUndefined:
		return "UndefinedError"
	default:
		return "UnknownError"
	}
}

// ScriptError is a recoverable runtime error carried through Result. An
// undefined variable or function is an error value surfaced to the host,
// never a process exit.
type ScriptError struct {
	Kind    ErrKind
	Message string
	Line    int // 1-based line within the script source, 0 if unknown
}

func (e *ScriptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewTypeError builds a TypeError at the given line
func NewTypeError(line int, format string, args ...interface{}) *ScriptError {
	return &ScriptError{Kind: ErrType, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewArgumentError builds an ArgumentError at the given line
func NewArgumentError(line int, format string, args ...interface{}) *ScriptError {
	return &ScriptError{Kind: ErrArgument, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewUndefinedError builds an UndefinedError for a missing symbol
func NewUndefinedError(line int, name string) *ScriptError {
	return &ScriptError{Kind: ErrUndefined, Line: line, Message: fmt.Sprintf("undefined symbol %q", name)}
}
