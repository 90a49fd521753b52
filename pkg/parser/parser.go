// Package parser turns expression source text into a lossless concrete
// syntax tree.
//
// Parsing happens in three passes. The lexer splits the text into lexemes.
// The grammar walks the significant lexemes and records a flat log of
// events; a binary expression, whose start is only known after its left
// operand has been parsed, is recorded as a StartNodeAt event pointing back
// at a checkpoint. The sink resolves those deferred starts in one pass and
// replays the log into a tree, reattaching whitespace and comments.
package parser

import (
	"github.com/yaklabco/exprcst/pkg/lexer"
	"github.com/yaklabco/exprcst/pkg/syntax"
)

// parser holds the state of one grammar pass.
type parser struct {
	lexemes []lexer.Lexeme
	pos     int
	end     int
	events  []Event
	errors  []*ParseError
}

func newParser(lexemes []lexer.Lexeme, textLen int) *parser {
	return &parser{
		lexemes: lexemes,
		end:     textLen,
		events:  make([]Event, 0, len(lexemes)*2+2),
	}
}

// skipTrivia moves the cursor past whitespace and comments. Trivia is not
// recorded; the sink finds it again in the lexemes.
func (p *parser) skipTrivia() {
	for p.pos < len(p.lexemes) && p.lexemes[p.pos].Kind.IsTrivia() {
		p.pos++
	}
}

// peek returns the next significant lexeme, or false at the end of input.
func (p *parser) peek() (lexer.Lexeme, bool) {
	p.skipTrivia()
	if p.pos >= len(p.lexemes) {
		return lexer.Lexeme{}, false
	}
	return p.lexemes[p.pos], true
}

// at reports whether the next significant lexeme has the given kind.
func (p *parser) at(kind syntax.Kind) bool {
	lx, ok := p.peek()
	return ok && lx.Kind == kind
}

// atAny reports whether the next significant lexeme has one of the kinds.
func (p *parser) atAny(kinds []syntax.Kind) bool {
	lx, ok := p.peek()
	if !ok {
		return false
	}
	for _, k := range kinds {
		if lx.Kind == k {
			return true
		}
	}
	return false
}

func (p *parser) atEnd() bool {
	_, ok := p.peek()
	return !ok
}

// bump records the next significant lexeme as a token and advances past it.
func (p *parser) bump() {
	lx, ok := p.peek()
	if !ok {
		return
	}
	p.events = append(p.events, AddToken(lx.Kind, lx.Text))
	p.pos++
}

func (p *parser) checkpoint() Checkpoint {
	return Checkpoint(len(p.events))
}

func (p *parser) startNode(kind syntax.Kind) {
	p.events = append(p.events, StartNode(kind))
}

func (p *parser) startNodeAt(kind syntax.Kind, cp Checkpoint) {
	p.events = append(p.events, StartNodeAt(kind, cp))
}

func (p *parser) finishNode() {
	p.events = append(p.events, FinishNode())
}

// recoverWith records a diagnostic for the current position and wraps
// tokens up to (not including) the next synchronization token in an Error
// node. The node is empty when the cursor already sits on one or at the end
// of input. An empty node is not repeated when an inner rule has already
// recovered at the same position.
func (p *parser) recoverWith(expected []syntax.Kind, sync []syntax.Kind) {
	if !p.report(expected) && (p.atEnd() || p.atAny(sync)) {
		return
	}

	p.startNode(syntax.Error)
	for !p.atEnd() && !p.atAny(sync) {
		p.bump()
	}
	p.finishNode()
}

// report records a diagnostic describing the next significant lexeme. A
// second diagnostic for the same position is dropped, so one bad token
// produces one message even when several rules trip over it. report returns
// whether the diagnostic was recorded.
func (p *parser) report(expected []syntax.Kind) bool {
	var diag *ParseError

	lx, ok := p.peek()
	if ok {
		cause := ErrUnexpectedToken
		if lx.Kind == syntax.Error {
			cause = ErrLexical
		}
		diag = &ParseError{
			Cause:     cause,
			Expected:  expected,
			Found:     lx.Kind,
			FoundText: lx.Text,
			Range:     lx.Range(),
		}
	} else {
		diag = &ParseError{
			Cause:    ErrUnexpectedEnd,
			Expected: expected,
			Range:    syntax.Range{Start: p.end, End: p.end},
		}
	}

	if n := len(p.errors); n > 0 && p.errors[n-1].Range == diag.Range {
		return false
	}
	p.errors = append(p.errors, diag)
	return true
}
