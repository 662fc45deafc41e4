package sqlparse

import "errors"

// ErrorKind separates malformed input from grammar the parser does not cover.
type ErrorKind int

// ErrorLexical and friends classify parse failures.
const (
	ErrorLexical ErrorKind = iota
	ErrorSyntax
	ErrorNotImplemented
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorLexical:
		return "lexical error"
	case ErrorSyntax:
		return "syntax error"
	case ErrorNotImplemented:
		return "not implemented"
	default:
		return "unknown error"
	}
}

// ErrNotImplemented matches, via errors.Is, every error raised for a known
// grammar gap such as UPDATE or SELECT ... INTO.
var ErrNotImplemented = errors.New("not implemented")

// Error is returned by Scan, Parse and ParseExpression. It carries the
// position of the first failure.
type Error struct {
	Kind ErrorKind
	Diagnostic
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// Is makes errors.Is(err, ErrNotImplemented) true only for grammar gaps.
func (e *Error) Is(target error) bool {
	return target == ErrNotImplemented && e.Kind == ErrorNotImplemented
}

// AsError unwraps err to a *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
