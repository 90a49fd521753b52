package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/exprcst/pkg/syntax"
)

// Diagnostic categories. Every ParseError unwraps to exactly one of them.
var (
	// ErrLexical reports input the lexer could not classify, found where the
	// grammar required a token.
	ErrLexical = errors.New("unrecognized input")

	// ErrUnexpectedToken reports a token that matches no grammar alternative.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnexpectedEnd reports input that ends in the middle of an expression.
	ErrUnexpectedEnd = errors.New("unexpected end of input")
)

// ParseError is a recovered syntax error. The tree returned alongside it
// contains an Error node at Range.
type ParseError struct {
	// Cause is ErrLexical, ErrUnexpectedToken or ErrUnexpectedEnd.
	Cause error

	// Expected lists the kinds that would have been accepted.
	Expected []syntax.Kind

	// Found is the kind of the offending token. It is meaningless when
	// Cause is ErrUnexpectedEnd.
	Found syntax.Kind

	// FoundText is the text of the offending token.
	FoundText string

	// Range is the byte range of the offending token, or an empty range at
	// the end of input.
	Range syntax.Range
}

// Error implements error.
func (e *ParseError) Error() string {
	return "error at " + e.Range.String() + ": " + e.Message()
}

// Message describes the error without its location.
func (e *ParseError) Message() string {
	expected := "expected " + syntax.DescribeList(e.Expected)

	switch {
	case errors.Is(e.Cause, ErrUnexpectedEnd):
		return expected + ", but reached end of input"
	case errors.Is(e.Cause, ErrLexical):
		return expected + ", but found unrecognized input " + strconv.Quote(e.FoundText)
	default:
		return expected + ", but found " + e.Found.Describe()
	}
}

// Unwrap returns the error category.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Code returns a short stable identifier for the category.
func (e *ParseError) Code() string {
	switch {
	case errors.Is(e.Cause, ErrLexical):
		return "lexical"
	case errors.Is(e.Cause, ErrUnexpectedEnd):
		return "unexpected-end"
	default:
		return "unexpected-token"
	}
}

// JoinErrors joins a list of parse errors into one error, or nil when empty.
func JoinErrors(list []*ParseError) error {
	if len(list) == 0 {
		return nil
	}
	errs := make([]error, 0, len(list))
	for _, e := range list {
		errs = append(errs, e)
	}
	return fmt.Errorf("%d syntax error(s): %w", len(list), errors.Join(errs...))
}
