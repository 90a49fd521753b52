package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/exprcst/pkg/parser"
	"github.com/yaklabco/exprcst/pkg/syntax"
)

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		input  string
		want   string
		errs   []string
		causes []error
	}

	tests := []testCase{
		{
			name:  "unclosed parenthesis",
			input: "(1",
			want: `Root@0..2
  ParenExpr@0..2
    LParen@0..1 "("
    Number@1..2 "1"
    Error@2..2`,
			errs:   []string{"error at 2..2: expected ')', but reached end of input"},
			causes: []error{parser.ErrUnexpectedEnd},
		},
		{
			name:  "lone opening parenthesis",
			input: "(",
			want: `Root@0..1
  ParenExpr@0..1
    LParen@0..1 "("
    Error@1..1`,
			errs:   []string{"error at 1..1: expected number, identifier, '-' or '(', but reached end of input"},
			causes: []error{parser.ErrUnexpectedEnd},
		},
		{
			name:  "unclosed group ending in operator",
			input: "(1 +",
			want: `Root@0..4
  ParenExpr@0..4
    LParen@0..1 "("
    BinaryExpr@1..4
      Number@1..2 "1"
      Whitespace@2..3 " "
      Plus@3..4 "+"
      Error@4..4`,
			errs:   []string{"error at 4..4: expected number, identifier, '-' or '(', but reached end of input"},
			causes: []error{parser.ErrUnexpectedEnd},
		},
		{
			name:  "trailing operator",
			input: "1 +",
			want: `Root@0..3
  BinaryExpr@0..3
    Number@0..1 "1"
    Whitespace@1..2 " "
    Plus@2..3 "+"
    Error@3..3`,
			errs:   []string{"error at 3..3: expected number, identifier, '-' or '(', but reached end of input"},
			causes: []error{parser.ErrUnexpectedEnd},
		},
		{
			name:  "dangling prefix",
			input: "-",
			want: `Root@0..1
  PrefixExpr@0..1
    Minus@0..1 "-"
    Error@1..1`,
			errs:   []string{"error at 1..1: expected number, identifier, '-' or '(', but reached end of input"},
			causes: []error{parser.ErrUnexpectedEnd},
		},
		{
			name:  "leftover operand",
			input: "1 2",
			want: `Root@0..3
  Number@0..1 "1"
  Whitespace@1..2 " "
  Error@2..3
    Number@2..3 "2"`,
			errs:   []string{"error at 2..3: expected '+', '-', '*' or '/', but found number"},
			causes: []error{parser.ErrUnexpectedToken},
		},
		{
			name:  "unrecognized operand",
			input: "1 + @",
			want: `Root@0..5
  BinaryExpr@0..5
    Number@0..1 "1"
    Whitespace@1..2 " "
    Plus@2..3 "+"
    Whitespace@3..4 " "
    Error@4..5
      Error@4..5 "@"`,
			errs:   []string{`error at 4..5: expected number, identifier, '-' or '(', but found unrecognized input "@"`},
			causes: []error{parser.ErrLexical},
		},
		{
			name:  "stray closing parenthesis",
			input: ")",
			want: `Root@0..1
  Error@0..0
  Error@0..1
    RParen@0..1 ")"`,
			errs:   []string{"error at 0..1: expected number, identifier, '-' or '(', but found ')'"},
			causes: []error{parser.ErrUnexpectedToken},
		},
		{
			name:  "keywords have no grammar",
			input: "let x",
			want: `Root@0..5
  Error@0..5
    LetKw@0..3 "let"
    Whitespace@3..4 " "
    Ident@4..5 "x"`,
			errs:   []string{"error at 0..3: expected number, identifier, '-' or '(', but found 'let'"},
			causes: []error{parser.ErrUnexpectedToken},
		},
		{
			name:  "recovery stops at closing parenthesis",
			input: "(1 2)",
			want: `Root@0..5
  ParenExpr@0..5
    LParen@0..1 "("
    Number@1..2 "1"
    Whitespace@2..3 " "
    Error@3..4
      Number@3..4 "2"
    RParen@4..5 ")"`,
			errs:   []string{"error at 3..4: expected ')', but found number"},
			causes: []error{parser.ErrUnexpectedToken},
		},
		{
			name:  "missing operand before operator",
			input: "(*2)",
			want: `Root@0..4
  ParenExpr@0..4
    LParen@0..1 "("
    Error@1..3
      Star@1..2 "*"
      Number@2..3 "2"
    RParen@3..4 ")"`,
			errs:   []string{"error at 1..2: expected number, identifier, '-' or '(', but found '*'"},
			causes: []error{parser.ErrUnexpectedToken},
		},
		{
			name:  "two errors",
			input: "(1 + ) }",
			want: `Root@0..8
  ParenExpr@0..7
    LParen@0..1 "("
    BinaryExpr@1..5
      Number@1..2 "1"
      Whitespace@2..3 " "
      Plus@3..4 "+"
      Whitespace@4..5 " "
      Error@5..5
    RParen@5..6 ")"
    Whitespace@6..7 " "
  Error@7..8
    RBrace@7..8 "}"`,
			errs: []string{
				"error at 5..6: expected number, identifier, '-' or '(', but found ')'",
				"error at 7..8: expected '+', '-', '*' or '/', but found '}'",
			},
			causes: []error{parser.ErrUnexpectedToken, parser.ErrUnexpectedToken},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := checkTree(t, tt.input, tt.want)
			assert.False(t, res.OK())

			got := make([]string, 0, len(res.Errors()))
			for _, e := range res.Errors() {
				got = append(got, e.Error())
			}
			assert.Equal(t, tt.errs, got)

			require.Len(t, res.Errors(), len(tt.causes))
			for i, cause := range tt.causes {
				assert.ErrorIs(t, res.Errors()[i], cause)
			}
			assert.Equal(t, tt.input, res.Syntax().Text())
		})
	}
}

func TestParseError_Code(t *testing.T) {
	t.Parallel()

	codes := map[error]string{
		parser.ErrLexical:         "lexical",
		parser.ErrUnexpectedEnd:   "unexpected-end",
		parser.ErrUnexpectedToken: "unexpected-token",
	}
	for cause, code := range codes {
		e := &parser.ParseError{Cause: cause}
		assert.Equal(t, code, e.Code())
	}
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	res := parser.Parse("(1 +")
	err := res.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrUnexpectedEnd)
	assert.Contains(t, err.Error(), "syntax error(s)")

	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, []syntax.Kind{syntax.Number, syntax.Ident, syntax.Minus, syntax.LParen}, perr.Expected)

	require.NoError(t, parser.JoinErrors(nil))
}
