package parser

import (
	"strconv"

	"github.com/yaklabco/exprcst/pkg/syntax"
)

// EventKind is the type of a parse event.
type EventKind uint8

const (
	EventStartNode   EventKind = iota // open a node
	EventStartNodeAt                  // open a node retroactively, at a checkpoint
	EventAddToken                     // append a significant token
	EventFinishNode                   // close the innermost open node
)

var eventKindNames = [...]string{
	EventStartNode:   "StartNode",
	EventStartNodeAt: "StartNodeAt",
	EventAddToken:    "AddToken",
	EventFinishNode:  "FinishNode",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "EventKind(" + strconv.Itoa(int(k)) + ")"
}

// Checkpoint is the length of the event log at the moment it was taken.
type Checkpoint int

// Event is one structural step recorded by the parser. Trivia never appears
// in the log; the sink reattaches it from the lexemes.
type Event struct {
	Kind EventKind

	// Syntax is the node kind for start events and the token kind for
	// AddToken.
	Syntax syntax.Kind

	// Text is the token text for AddToken.
	Text string

	// Checkpoint is the insertion point for StartNodeAt.
	Checkpoint Checkpoint
}

// StartNode returns an event opening a node of the given kind.
func StartNode(kind syntax.Kind) Event {
	return Event{Kind: EventStartNode, Syntax: kind}
}

// StartNodeAt returns an event that opens a node of the given kind in front
// of the events recorded since cp.
func StartNodeAt(kind syntax.Kind, cp Checkpoint) Event {
	return Event{Kind: EventStartNodeAt, Syntax: kind, Checkpoint: cp}
}

// AddToken returns an event appending a token.
func AddToken(kind syntax.Kind, text string) Event {
	return Event{Kind: EventAddToken, Syntax: kind, Text: text}
}

// FinishNode returns an event closing the innermost node.
func FinishNode() Event {
	return Event{Kind: EventFinishNode}
}

// String renders the event on one line, e.g. `AddToken Number "1"`.
func (e Event) String() string {
	switch e.Kind {
	case EventStartNode:
		return e.Kind.String() + " " + e.Syntax.String()
	case EventStartNodeAt:
		return e.Kind.String() + " " + e.Syntax.String() + " @" + strconv.Itoa(int(e.Checkpoint))
	case EventAddToken:
		return e.Kind.String() + " " + e.Syntax.String() + " " + strconv.Quote(e.Text)
	default:
		return e.Kind.String()
	}
}
