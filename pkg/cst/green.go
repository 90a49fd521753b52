// Package cst implements the lossless concrete syntax tree.
//
// The tree has two layers. Green nodes and tokens are immutable, carry only
// kinds, text and widths, and are built once by a Builder. Node and Token are
// positioned views over the green layer that know their absolute offset and
// their parent; they are created on demand while navigating.
package cst

import (
	"strings"

	"github.com/yaklabco/exprcst/pkg/syntax"
)

// GreenElement is either a *GreenNode or a *GreenToken.
type GreenElement interface {
	Kind() syntax.Kind
	Width() int
	writeText(b *strings.Builder)
}

// GreenToken is a leaf holding its own copy of the source text.
type GreenToken struct {
	kind syntax.Kind
	text string
}

// NewGreenToken returns a leaf of the given kind. The text is copied so the
// tree never retains the caller's input.
func NewGreenToken(kind syntax.Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: strings.Clone(text)}
}

// Kind returns the token kind.
func (t *GreenToken) Kind() syntax.Kind { return t.kind }

// Text returns the token text.
func (t *GreenToken) Text() string { return t.text }

// Width returns the length of the token text in bytes.
func (t *GreenToken) Width() int { return len(t.text) }

func (t *GreenToken) writeText(b *strings.Builder) {
	b.WriteString(t.text)
}

// GreenNode is an interior node. Its width is the sum of its children's
// widths, computed once at construction.
type GreenNode struct {
	kind     syntax.Kind
	width    int
	children []GreenElement
}

// NewGreenNode returns a node owning children. The slice must not be
// modified afterwards.
func NewGreenNode(kind syntax.Kind, children []GreenElement) *GreenNode {
	width := 0
	for _, c := range children {
		width += c.Width()
	}
	return &GreenNode{kind: kind, width: width, children: children}
}

// Kind returns the node kind.
func (n *GreenNode) Kind() syntax.Kind { return n.kind }

// Width returns the length in bytes of all text below the node.
func (n *GreenNode) Width() int { return n.width }

// NumChildren returns the number of direct children.
func (n *GreenNode) NumChildren() int { return len(n.children) }

// Child returns the i-th direct child.
func (n *GreenNode) Child(i int) GreenElement { return n.children[i] }

// Text concatenates the text of every leaf below the node.
func (n *GreenNode) Text() string {
	var b strings.Builder
	b.Grow(n.width)
	n.writeText(&b)
	return b.String()
}

func (n *GreenNode) writeText(b *strings.Builder) {
	for _, c := range n.children {
		c.writeText(b)
	}
}
