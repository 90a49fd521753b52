package parser

import (
	"github.com/yaklabco/exprcst/pkg/cst"
	"github.com/yaklabco/exprcst/pkg/lexer"
	"github.com/yaklabco/exprcst/pkg/syntax"
)

// ResolveCheckpoints rewrites a raw event log so that it contains only
// StartNode, AddToken and FinishNode events. Each StartNodeAt is dropped
// from where it was recorded and reinserted as a StartNode in front of the
// event at its checkpoint. When several deferred starts share a checkpoint,
// the one recorded last becomes the outermost node.
//
// Checkpoints index the log as recorded, so one pass that collects the
// deferred starts per index and then copies the log is enough.
func ResolveCheckpoints(events []Event) []Event {
	pending := make([][]syntax.Kind, len(events)+1)
	deferred := 0
	for _, ev := range events {
		if ev.Kind != EventStartNodeAt {
			continue
		}
		at := min(max(int(ev.Checkpoint), 0), len(events))
		pending[at] = append(pending[at], ev.Syntax)
		deferred++
	}

	if deferred == 0 {
		return append([]Event(nil), events...)
	}

	out := make([]Event, 0, len(events))
	for i := 0; i <= len(events); i++ {
		starts := pending[i]
		for j := len(starts) - 1; j >= 0; j-- {
			out = append(out, StartNode(starts[j]))
		}
		if i < len(events) && events[i].Kind != EventStartNodeAt {
			out = append(out, events[i])
		}
	}
	return out
}

// sink replays a resolved event log into a tree.
type sink struct {
	lexemes []lexer.Lexeme
	cursor  int
	builder *cst.Builder
}

// build resolves the raw event log and assembles the green tree. Trivia
// lexemes are attached to whatever node is open when they are reached, so
// whitespace and comments after a token land in that token's node and
// leading trivia lands in the root.
func build(events []Event, lexemes []lexer.Lexeme) *cst.GreenNode {
	s := &sink{lexemes: lexemes, builder: cst.NewBuilder()}

	for _, ev := range ResolveCheckpoints(events) {
		switch ev.Kind {
		case EventStartNode:
			s.builder.StartNode(ev.Syntax)
		case EventAddToken:
			s.token(ev)
		case EventFinishNode:
			if s.builder.Depth() == 1 {
				s.flush()
			}
			s.builder.FinishNode()
		case EventStartNodeAt:
			// Removed by ResolveCheckpoints.
		}
		s.eatTrivia()
	}

	return s.builder.Finish()
}

// token emits a significant token and moves the lexeme cursor past the
// lexeme it came from.
func (s *sink) token(ev Event) {
	s.eatTrivia()
	s.builder.Token(ev.Syntax, ev.Text)
	if s.cursor < len(s.lexemes) {
		s.cursor++
	}
}

func (s *sink) eatTrivia() {
	if s.builder.Depth() == 0 {
		return
	}
	for s.cursor < len(s.lexemes) && s.lexemes[s.cursor].Kind.IsTrivia() {
		lx := s.lexemes[s.cursor]
		s.builder.Token(lx.Kind, lx.Text)
		s.cursor++
	}
}

// flush attaches every lexeme the events did not account for to the
// outermost node before it closes, so no input is lost.
func (s *sink) flush() {
	for ; s.cursor < len(s.lexemes); s.cursor++ {
		lx := s.lexemes[s.cursor]
		s.builder.Token(lx.Kind, lx.Text)
	}
}
