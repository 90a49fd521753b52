// Package lexer splits expression source text into lexemes.
//
// Tokenization is total: every byte of the input belongs to exactly one
// lexeme, and input the language does not recognize becomes an Error lexeme
// instead of failing.
package lexer

import (
	"unicode/utf8"

	"github.com/yaklabco/exprcst/pkg/syntax"
)

// Lexeme is a classified slice of the source text.
type Lexeme struct {
	// Kind classifies the lexeme.
	Kind syntax.Kind

	// Text is the exact source text, sharing memory with the input.
	Text string

	// Offset is the byte index of the first byte of Text in the input.
	Offset int
}

// Range returns the byte range the lexeme covers.
func (l Lexeme) Range() syntax.Range {
	return syntax.NewRange(l.Offset, len(l.Text))
}

// End returns the byte index just past the lexeme.
func (l Lexeme) End() int {
	return l.Offset + len(l.Text)
}

var keywords = map[string]syntax.Kind{
	"fn":  syntax.FnKw,
	"let": syntax.LetKw,
}

// punctuationKind maps single-byte operators and brackets to their kinds.
func punctuationKind(c byte) (syntax.Kind, bool) {
	switch c {
	case '+':
		return syntax.Plus, true
	case '-':
		return syntax.Minus, true
	case '*':
		return syntax.Star, true
	case '/':
		return syntax.Slash, true
	case '=':
		return syntax.Equals, true
	case '{':
		return syntax.LBrace, true
	case '}':
		return syntax.RBrace, true
	case '(':
		return syntax.LParen, true
	case ')':
		return syntax.RParen, true
	}
	return 0, false
}

// tokenizer performs a single pass over the input.
type tokenizer struct {
	text    string
	lexemes []Lexeme
	pos     int
}

// Tokenize splits text into lexemes. The result is contiguous, ordered and
// covers [0, len(text)); it is empty for empty input.
func Tokenize(text string) []Lexeme {
	if text == "" {
		return nil
	}

	const initialCapacityDivisor = 2
	tok := &tokenizer{
		text:    text,
		lexemes: make([]Lexeme, 0, len(text)/initialCapacityDivisor+1),
	}

	for tok.pos < len(tok.text) {
		tok.next()
	}

	return tok.lexemes
}

// next emits exactly one lexeme starting at the current position.
func (t *tokenizer) next() {
	start := t.pos
	c := t.text[t.pos]

	switch {
	case isWhitespace(c):
		t.pos = scan(t.text, t.pos, isWhitespace)
		t.emit(syntax.Whitespace, start)
	case c == '#':
		t.pos = scan(t.text, t.pos+1, func(b byte) bool { return b != '\n' && b != '\r' })
		t.emit(syntax.Comment, start)
	case isLetter(c):
		t.pos = scan(t.text, t.pos+1, isAlphanumeric)
		kind, ok := keywords[t.text[start:t.pos]]
		if !ok {
			kind = syntax.Ident
		}
		t.emit(kind, start)
	case isDigit(c):
		t.pos = scan(t.text, t.pos, isDigit)
		t.emit(syntax.Number, start)
	default:
		if kind, ok := punctuationKind(c); ok {
			t.pos++
			t.emit(kind, start)
			return
		}

		t.consumeUnrecognized()
		t.emit(syntax.Error, start)
	}
}

// consumeUnrecognized advances over a maximal run of runes that cannot start
// any lexeme. It always advances by at least one byte and never stops in the
// middle of a UTF-8 sequence.
func (t *tokenizer) consumeUnrecognized() {
	for t.pos < len(t.text) {
		c := t.text[t.pos]
		if c < utf8.RuneSelf && startsLexeme(c) {
			return
		}
		_, size := utf8.DecodeRuneInString(t.text[t.pos:])
		t.pos += size
	}
}

func (t *tokenizer) emit(kind syntax.Kind, start int) {
	t.lexemes = append(t.lexemes, Lexeme{
		Kind:   kind,
		Text:   t.text[start:t.pos],
		Offset: start,
	})
}

// scan returns the first index at or after pos whose byte fails pred.
func scan(text string, pos int, pred func(byte) bool) int {
	for pos < len(text) && pred(text[pos]) {
		pos++
	}
	return pos
}

func startsLexeme(c byte) bool {
	return isWhitespace(c) || c == '#' || isLetter(c) || isDigit(c) || isPunctuation(c)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphanumeric(c byte) bool {
	return isLetter(c) || isDigit(c)
}

func isPunctuation(c byte) bool {
	_, ok := punctuationKind(c)
	return ok
}
