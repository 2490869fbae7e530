package recipe

import "fmt"

// Code classifies a decode failure.
type Code int

const (
	CodeMissingOrInvalidOutput Code = iota + 1
	CodeMissingOrInvalidPredicate
	CodeUnknownPredicateType
	CodeMissingID
	CodeInvalidIdentifier
)

func (c Code) String() string {
	switch c {
	case CodeMissingOrInvalidOutput:
		return "missing or invalid output"
	case CodeMissingOrInvalidPredicate:
		return "missing or invalid predicate"
	case CodeUnknownPredicateType:
		return "unknown predicate type"
	case CodeMissingID:
		return "missing id"
	case CodeInvalidIdentifier:
		return "invalid identifier"
	default:
		return "unknown"
	}
}

// DecodeError describes why a document did not decode to a Recipe.
// errors.Is matches on Code, so callers compare against the Err* values.
type DecodeError struct {
	Code  Code
	Field string // document key the failure is about, e.g. "predicate.type"
	Value any    // offending value, when there was one
	Err   error  // underlying cause, e.g. an identifier parse error
}

// Sentinels for errors.Is.
var (
	ErrMissingOrInvalidOutput    = &DecodeError{Code: CodeMissingOrInvalidOutput}
	ErrMissingOrInvalidPredicate = &DecodeError{Code: CodeMissingOrInvalidPredicate}
	ErrUnknownPredicateType      = &DecodeError{Code: CodeUnknownPredicateType}
	ErrMissingID                 = &DecodeError{Code: CodeMissingID}
	ErrInvalidIdentifier         = &DecodeError{Code: CodeInvalidIdentifier}
)

func (e *DecodeError) Error() string {
	msg := e.Code.String()
	if e.Field != "" {
		msg += " at " + e.Field
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (%v)", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Code == e.Code
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
