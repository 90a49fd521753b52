package cst

import (
	"strconv"
	"strings"
)

const debugIndent = "  "

// DumpStyle decorates the parts of a dump line. A nil function leaves its
// part as is, so the zero DumpStyle produces the plain debug dump.
type DumpStyle struct {
	// Kind renders the kind name of a node or token.
	Kind func(el Element, name string) string

	// Span renders the "@start..end" suffix of the kind.
	Span func(span string) string

	// Text renders the quoted text of a token.
	Text func(quoted string) string
}

func (s DumpStyle) apply(f func(string) string, part string) string {
	if f == nil {
		return part
	}
	return f(part)
}

// DebugString renders the subtree rooted at n, one element per line:
//
//	BinaryExpr@0..5
//	  Number@0..1 "1"
//	  Whitespace@1..2 " "
//
// Children are indented two spaces per level and token text is quoted with
// Go escaping. There is no trailing newline.
func (n *Node) DebugString() string {
	return strings.TrimSuffix(n.Dump(DumpStyle{}), "\n")
}

// Dump renders the subtree in the DebugString layout with every line,
// including the last, terminated by a newline and each part passed through
// style.
func (n *Node) Dump(style DumpStyle) string {
	var b strings.Builder
	writeDump(&b, n, 0, style)
	return b.String()
}

func writeDump(b *strings.Builder, n *Node, depth int, style DumpStyle) {
	writeHeader(b, n, depth, style)
	b.WriteByte('\n')

	for _, child := range n.Children() {
		if node, ok := child.(*Node); ok {
			writeDump(b, node, depth+1, style)
			continue
		}
		writeHeader(b, child, depth+1, style)
		b.WriteByte(' ')
		b.WriteString(style.apply(style.Text, strconv.Quote(child.Text())))
		b.WriteByte('\n')
	}
}

func writeHeader(b *strings.Builder, el Element, depth int, style DumpStyle) {
	for range depth {
		b.WriteString(debugIndent)
	}
	name := el.Kind().String()
	if style.Kind != nil {
		name = style.Kind(el, name)
	}
	b.WriteString(name)
	b.WriteString(style.apply(style.Span, "@"+el.Range().String()))
}

// String returns the token as it appears in a debug dump, without indentation.
func (t *Token) String() string {
	return t.Kind().String() + "@" + t.Range().String() + " " + strconv.Quote(t.Text())
}
