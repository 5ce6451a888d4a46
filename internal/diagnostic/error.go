package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
)

// Code identifies a kind of failure.
type Code string

const (
	CodeUnexpectedAttribute Code = "unexpected_attribute"
	CodeDuplicateAttribute  Code = "duplicate_attribute"
	CodeMalformedAttribute  Code = "malformed_attribute"
	CodeAmbiguousType       Code = "ambiguous_type"
	CodeNamedField          Code = "named_field"
	CodeUnsupportedType     Code = "unsupported_type"
	CodeInvalidDeclaration  Code = "invalid_declaration"

	// CodeUnknownVariant is only ever a warning: a disabled name that matches
	// no variant.
	CodeUnknownVariant Code = "unknown_variant"
)

// Sentinel errors, one per Code. An *Error matches the sentinel of its code
// under errors.Is.
var (
	ErrUnexpectedAttribute = errors.New("unexpected attribute")
	ErrDuplicateAttribute  = errors.New("duplicate attribute")
	ErrMalformedAttribute  = errors.New("malformed attribute")
	ErrAmbiguousType       = errors.New("ambiguous field type")
	ErrNamedField          = errors.New("named field")
	ErrUnsupportedType     = errors.New("unsupported type")
	ErrInvalidDeclaration  = errors.New("invalid declaration")
)

var sentinels = map[Code]error{
	CodeUnexpectedAttribute: ErrUnexpectedAttribute,
	CodeDuplicateAttribute:  ErrDuplicateAttribute,
	CodeMalformedAttribute:  ErrMalformedAttribute,
	CodeAmbiguousType:       ErrAmbiguousType,
	CodeNamedField:          ErrNamedField,
	CodeUnsupportedType:     ErrUnsupportedType,
	CodeInvalidDeclaration:  ErrInvalidDeclaration,
}

// Error is a fatal, positioned failure. Generation of the declaration it
// belongs to is aborted.
type Error struct {
	Code    Code
	Pos     token.Position
	Message string
}

// Errorf creates an *Error at pos.
func Errorf(code Code, pos token.Position, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface. A valid position is prepended.
func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Message
	}

	return e.Pos.String() + ": " + e.Message
}

// Is reports whether target is the sentinel of e's code.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Code]
	return ok && sentinel == target
}

// AsError returns the *Error wrapped by err, if any.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}

	return nil, false
}
