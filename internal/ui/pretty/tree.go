package pretty

import (
	"github.com/yaklabco/exprcst/pkg/cst"
	"github.com/yaklabco/exprcst/pkg/syntax"
)

// FormatTree renders a tree in the debug dump layout with styled kinds,
// spans and token text. With color disabled the output equals
// (*cst.Node).DebugString followed by a newline.
func (s *Styles) FormatTree(root *cst.Node) string {
	return root.Dump(cst.DumpStyle{
		Kind: s.renderKind,
		Span: func(span string) string { return s.Span.Render(span) },
		Text: func(quoted string) string { return s.Text.Render(quoted) },
	})
}

func (s *Styles) renderKind(el cst.Element, name string) string {
	kind := el.Kind()
	switch {
	case kind == syntax.Error:
		return s.ErrorNode.Render(name)
	case kind.IsTrivia():
		return s.Dim.Render(name)
	case kind.IsNode():
		return s.NodeKind.Render(name)
	default:
		return s.TokenKind.Render(name)
	}
}
