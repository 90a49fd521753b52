package cst

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/yaklabco/exprcst/pkg/syntax"
)

// Exported is a self-describing, serializable form of a subtree.
type Exported struct {
	Kind     string     `json:"kind" cbor:"1,keyasint"`
	Start    int        `json:"start" cbor:"2,keyasint"`
	End      int        `json:"end" cbor:"3,keyasint"`
	Text     *string    `json:"text,omitempty" cbor:"4,keyasint,omitempty"`
	Children []Exported `json:"children,omitempty" cbor:"5,keyasint,omitempty"`
}

// ErrInvalidExport is returned when an exported tree cannot be rebuilt.
var ErrInvalidExport = errors.New("invalid exported tree")

// Export converts the subtree rooted at n. Tokens carry Text, nodes carry
// Children.
func Export(n *Node) Exported {
	out := exportHeader(n)
	for _, child := range n.Children() {
		if node, ok := child.(*Node); ok {
			out.Children = append(out.Children, Export(node))
			continue
		}
		leaf := exportHeader(child)
		text := child.Text()
		leaf.Text = &text
		out.Children = append(out.Children, leaf)
	}
	return out
}

func exportHeader(el Element) Exported {
	r := el.Range()
	return Exported{Kind: el.Kind().String(), Start: r.Start, End: r.End}
}

// Import rebuilds a green tree from its exported form, checking kinds and
// spans along the way.
func Import(e Exported) (*GreenNode, error) {
	if e.Text != nil {
		return nil, fmt.Errorf("%w: root %s is a token", ErrInvalidExport, e.Kind)
	}
	b := NewBuilder()
	if err := importInto(b, e, e.Start); err != nil {
		return nil, err
	}
	return b.Finish(), nil
}

func importInto(b *Builder, e Exported, offset int) error {
	kind, ok := syntax.ParseKind(e.Kind)
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidExport, e.Kind)
	}
	if e.Start != offset {
		return fmt.Errorf("%w: %s starts at %d, want %d", ErrInvalidExport, e.Kind, e.Start, offset)
	}

	if e.Text != nil {
		if e.End-e.Start != len(*e.Text) {
			return fmt.Errorf("%w: %s@%d..%d has %d bytes of text", ErrInvalidExport, e.Kind, e.Start, e.End, len(*e.Text))
		}
		b.Token(kind, *e.Text)
		return nil
	}

	b.StartNode(kind)
	pos := offset
	for _, child := range e.Children {
		if err := importInto(b, child, pos); err != nil {
			return err
		}
		pos = child.End
	}
	if pos != e.End {
		return fmt.Errorf("%w: %s ends at %d but its children end at %d", ErrInvalidExport, e.Kind, e.End, pos)
	}
	b.FinishNode()
	return nil
}

// MarshalCBOR encodes the subtree rooted at n as CBOR.
func MarshalCBOR(n *Node) ([]byte, error) {
	data, err := cbor.Marshal(Export(n))
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return data, nil
}

// UnmarshalCBOR decodes a tree produced by MarshalCBOR.
func UnmarshalCBOR(data []byte) (*GreenNode, error) {
	var e Exported
	if err := cbor.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return Import(e)
}
