package cst

import (
	"github.com/yaklabco/exprcst/pkg/syntax"
)

// Element is a positioned node or token.
type Element interface {
	// Kind returns the syntax kind.
	Kind() syntax.Kind

	// Range returns the absolute byte range covered by the element.
	Range() syntax.Range

	// Text returns the exact source text covered by the element.
	Text() string

	// Parent returns the enclosing node, or nil for the root.
	Parent() *Node
}

// Node is a positioned view of a GreenNode.
type Node struct {
	green  *GreenNode
	parent *Node
	offset int
}

// NewRoot returns the positioned view of a tree root at offset 0.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green}
}

// Green returns the underlying immutable node.
func (n *Node) Green() *GreenNode { return n.green }

// Kind returns the node kind.
func (n *Node) Kind() syntax.Kind { return n.green.kind }

// Range returns the absolute byte range of the node.
func (n *Node) Range() syntax.Range {
	return syntax.NewRange(n.offset, n.green.width)
}

// Text returns the text of every leaf below the node.
func (n *Node) Text() string { return n.green.Text() }

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children in source order.
func (n *Node) Children() []Element {
	out := make([]Element, 0, len(n.green.children))
	offset := n.offset
	for _, c := range n.green.children {
		out = append(out, n.wrap(c, offset))
		offset += c.Width()
	}
	return out
}

// ChildNodes returns the direct children that are nodes.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	offset := n.offset
	for _, c := range n.green.children {
		if g, ok := c.(*GreenNode); ok {
			out = append(out, &Node{green: g, parent: n, offset: offset})
		}
		offset += c.Width()
	}
	return out
}

// ChildTokens returns the direct children that are tokens, trivia included.
func (n *Node) ChildTokens() []*Token {
	var out []*Token
	offset := n.offset
	for _, c := range n.green.children {
		if g, ok := c.(*GreenToken); ok {
			out = append(out, &Token{green: g, parent: n, offset: offset})
		}
		offset += c.Width()
	}
	return out
}

// Tokens returns every leaf below the node in document order.
func (n *Node) Tokens() []*Token {
	var out []*Token
	_ = Walk(n, func(el Element) error {
		if tok, ok := el.(*Token); ok {
			out = append(out, tok)
		}
		return nil
	})
	return out
}

// TokenAt returns the leaf covering offset, or nil when offset lies outside
// the node. An offset equal to the node's end resolves to its last token.
func (n *Node) TokenAt(offset int) *Token {
	r := n.Range()
	if offset < r.Start || offset > r.End || r.IsEmpty() {
		return nil
	}
	if offset == r.End {
		offset--
	}

	cur := n
	for {
		var next *Node
		pos := cur.offset
		for _, c := range cur.green.children {
			w := c.Width()
			if offset < pos+w {
				switch g := c.(type) {
				case *GreenToken:
					return &Token{green: g, parent: cur, offset: pos}
				case *GreenNode:
					next = &Node{green: g, parent: cur, offset: pos}
				}
				break
			}
			pos += w
		}
		if next == nil {
			return nil
		}
		cur = next
	}
}

// Ancestors returns the chain of enclosing nodes, innermost first.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

func (n *Node) wrap(g GreenElement, offset int) Element {
	switch g := g.(type) {
	case *GreenNode:
		return &Node{green: g, parent: n, offset: offset}
	case *GreenToken:
		return &Token{green: g, parent: n, offset: offset}
	}
	return nil
}

// Token is a positioned view of a GreenToken.
type Token struct {
	green  *GreenToken
	parent *Node
	offset int
}

// Green returns the underlying immutable token.
func (t *Token) Green() *GreenToken { return t.green }

// Kind returns the token kind.
func (t *Token) Kind() syntax.Kind { return t.green.kind }

// Range returns the absolute byte range of the token.
func (t *Token) Range() syntax.Range {
	return syntax.NewRange(t.offset, len(t.green.text))
}

// Text returns the token text.
func (t *Token) Text() string { return t.green.text }

// Parent returns the node that contains the token.
func (t *Token) Parent() *Node { return t.parent }

// IsTrivia reports whether the token is whitespace or a comment.
func (t *Token) IsTrivia() bool { return t.green.kind.IsTrivia() }
