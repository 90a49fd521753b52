package parser

import (
	"github.com/yaklabco/exprcst/pkg/cst"
	"github.com/yaklabco/exprcst/pkg/lexer"
)

// Result is the outcome of parsing one input: a tree that reproduces the
// input exactly, plus the diagnostics recorded while building it.
type Result struct {
	lexemes []lexer.Lexeme
	events  []Event
	green   *cst.GreenNode
	errors  []*ParseError
}

// Parse parses text. It never fails: malformed input yields Error nodes in
// the tree and entries in Errors. Parse is safe for concurrent use.
func Parse(text string) *Result {
	lexemes := lexer.Tokenize(text)

	p := newParser(lexemes, len(text))
	p.root()

	return &Result{
		lexemes: lexemes,
		events:  p.events,
		green:   build(p.events, lexemes),
		errors:  p.errors,
	}
}

// Syntax returns the positioned root of the tree.
func (r *Result) Syntax() *cst.Node {
	return cst.NewRoot(r.green)
}

// Green returns the immutable tree.
func (r *Result) Green() *cst.GreenNode {
	return r.green
}

// Errors returns the recovered syntax errors in source order.
func (r *Result) Errors() []*ParseError {
	return r.errors
}

// Err joins Errors into a single error, or returns nil.
func (r *Result) Err() error {
	return JoinErrors(r.errors)
}

// OK reports whether the input parsed without diagnostics.
func (r *Result) OK() bool {
	return len(r.errors) == 0
}

// Lexemes returns the lexer output the parse was built from.
func (r *Result) Lexemes() []lexer.Lexeme {
	return r.lexemes
}

// Events returns the event log as the grammar recorded it, before deferred
// starts were resolved.
func (r *Result) Events() []Event {
	return r.events
}

// DebugTree returns the canonical dump of the tree.
func (r *Result) DebugTree() string {
	return r.Syntax().DebugString()
}
