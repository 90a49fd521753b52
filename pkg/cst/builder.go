package cst

import "github.com/yaklabco/exprcst/pkg/syntax"

// Builder assembles a green tree from a sequence of start, token and finish
// calls. It never fails: a FinishNode without a matching StartNode is
// ignored, and Finish closes any node still open.
type Builder struct {
	stack []frame
	roots []GreenElement
}

type frame struct {
	kind     syntax.Kind
	children []GreenElement
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// StartNode opens a node; subsequent tokens and nodes become its children.
func (b *Builder) StartNode(kind syntax.Kind) {
	b.stack = append(b.stack, frame{kind: kind})
}

// Token appends a leaf to the innermost open node.
func (b *Builder) Token(kind syntax.Kind, text string) {
	b.push(NewGreenToken(kind, text))
}

// FinishNode closes the innermost open node.
func (b *Builder) FinishNode() {
	if len(b.stack) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.push(NewGreenNode(top.kind, top.children))
}

// Depth returns the number of currently open nodes.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Finish closes every open node and returns the tree. When the calls did not
// produce exactly one top-level node, the top-level elements are wrapped in
// a Root node so the result is always a single tree.
func (b *Builder) Finish() *GreenNode {
	for len(b.stack) > 0 {
		b.FinishNode()
	}

	roots := b.roots
	b.roots = nil

	if len(roots) == 1 {
		if node, ok := roots[0].(*GreenNode); ok {
			return node
		}
	}
	return NewGreenNode(syntax.Root, roots)
}

func (b *Builder) push(el GreenElement) {
	if len(b.stack) == 0 {
		b.roots = append(b.roots, el)
		return
	}
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, el)
}
