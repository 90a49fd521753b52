// Package syntax defines the token and node kinds shared by the lexer, the
// parser and the concrete syntax tree, together with byte ranges.
package syntax

import (
	"strconv"
	"strings"
)

// Kind classifies a lexeme, a tree token or a tree node.
type Kind uint16

// Token kinds come first, in the order the lexer tries them. Node kinds follow.
const (
	Whitespace Kind = iota
	Comment

	FnKw
	LetKw
	Ident
	Number

	Plus
	Minus
	Star
	Slash
	Equals
	LBrace
	RBrace
	LParen
	RParen

	Error // unrecognized input, also used as the node kind for recovered regions

	Root
	BinaryExpr
	PrefixExpr
	ParenExpr

	kindCount
)

var kindNames = [...]string{
	Whitespace: "Whitespace",
	Comment:    "Comment",
	FnKw:       "FnKw",
	LetKw:      "LetKw",
	Ident:      "Ident",
	Number:     "Number",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Equals:     "Equals",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LParen:     "LParen",
	RParen:     "RParen",
	Error:      "Error",
	Root:       "Root",
	BinaryExpr: "BinaryExpr",
	PrefixExpr: "PrefixExpr",
	ParenExpr:  "ParenExpr",
}

// descriptions are the human-readable names used in diagnostics.
var descriptions = [...]string{
	Whitespace: "whitespace",
	Comment:    "comment",
	FnKw:       "'fn'",
	LetKw:      "'let'",
	Ident:      "identifier",
	Number:     "number",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Equals:     "'='",
	LBrace:     "'{'",
	RBrace:     "'}'",
	LParen:     "'('",
	RParen:     "')'",
	Error:      "an unrecognized token",
	Root:       "root",
	BinaryExpr: "binary expression",
	PrefixExpr: "prefix expression",
	ParenExpr:  "parenthesized expression",
}

// String returns the kind's name as used in tree dumps, e.g. "BinaryExpr".
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Describe returns the kind as it should appear in an error message.
func (k Kind) Describe() string {
	if k < kindCount {
		return descriptions[k]
	}
	return k.String()
}

// IsTrivia reports whether the kind is skipped by the parser and
// reattached to the tree by the sink.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// IsNode reports whether the kind labels interior tree nodes only.
func (k Kind) IsNode() bool {
	return k >= Root && k < kindCount
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return k < kindCount
}

// Kinds returns every declared kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind looks a kind up by its String form.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(k), true
		}
	}
	return 0, false
}

// DescribeList joins kinds for an "expected ..." message:
// "a", "a or b", "a, b or c".
func DescribeList(kinds []Kind) string {
	switch len(kinds) {
	case 0:
		return "nothing"
	case 1:
		return kinds[0].Describe()
	}

	var b strings.Builder
	for i, k := range kinds {
		switch {
		case i == 0:
		case i == len(kinds)-1:
			b.WriteString(" or ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(k.Describe())
	}
	return b.String()
}
