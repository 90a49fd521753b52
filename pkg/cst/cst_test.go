package cst_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/exprcst/pkg/cst"
	"github.com/yaklabco/exprcst/pkg/syntax"
)

// buildSum builds the tree for "1 + 2 # two".
func buildSum() *cst.Node {
	b := cst.NewBuilder()
	b.StartNode(syntax.Root)
	b.StartNode(syntax.BinaryExpr)
	b.Token(syntax.Number, "1")
	b.Token(syntax.Whitespace, " ")
	b.Token(syntax.Plus, "+")
	b.Token(syntax.Whitespace, " ")
	b.Token(syntax.Number, "2")
	b.Token(syntax.Whitespace, " ")
	b.Token(syntax.Comment, "# two")
	b.FinishNode()
	b.FinishNode()
	return cst.NewRoot(b.Finish())
}

func TestBuilder_Widths(t *testing.T) {
	t.Parallel()

	root := buildSum()
	assert.Equal(t, syntax.Root, root.Kind())
	assert.Equal(t, syntax.Range{Start: 0, End: 11}, root.Range())
	assert.Equal(t, "1 + 2 # two", root.Text())

	bin := root.ChildNodes()
	require.Len(t, bin, 1)
	assert.Equal(t, syntax.Range{Start: 0, End: 11}, bin[0].Range())
	assert.Same(t, root.Green(), bin[0].Parent().Green())
}

func TestBuilder_Total(t *testing.T) {
	t.Parallel()

	t.Run("unbalanced finish is ignored", func(t *testing.T) {
		t.Parallel()

		b := cst.NewBuilder()
		b.FinishNode()
		b.StartNode(syntax.Root)
		b.Token(syntax.Number, "7")
		b.FinishNode()
		b.FinishNode()

		root := cst.NewRoot(b.Finish())
		assert.Equal(t, "Root@0..1\n  Number@0..1 \"7\"", root.DebugString())
	})

	t.Run("open nodes are closed", func(t *testing.T) {
		t.Parallel()

		b := cst.NewBuilder()
		b.StartNode(syntax.Root)
		b.StartNode(syntax.ParenExpr)
		b.Token(syntax.LParen, "(")
		assert.Equal(t, 2, b.Depth())

		root := cst.NewRoot(b.Finish())
		assert.Equal(t, "Root@0..1\n  ParenExpr@0..1\n    LParen@0..1 \"(\"", root.DebugString())
	})

	t.Run("loose tokens are wrapped in root", func(t *testing.T) {
		t.Parallel()

		b := cst.NewBuilder()
		b.Token(syntax.Whitespace, " ")
		root := cst.NewRoot(b.Finish())
		assert.Equal(t, syntax.Root, root.Kind())
		assert.Equal(t, " ", root.Text())
	})

	t.Run("nothing gives empty root", func(t *testing.T) {
		t.Parallel()

		root := cst.NewRoot(cst.NewBuilder().Finish())
		assert.Equal(t, "Root@0..0", root.DebugString())
	})
}

func TestGreenToken_CopiesText(t *testing.T) {
	t.Parallel()

	buf := []byte("abc")
	tok := cst.NewGreenToken(syntax.Ident, string(buf[:2]))
	buf[0] = 'z'
	assert.Equal(t, "ab", tok.Text())
	assert.Equal(t, 2, tok.Width())
}

func TestNode_DebugString(t *testing.T) {
	t.Parallel()

	want := `Root@0..11
  BinaryExpr@0..11
    Number@0..1 "1"
    Whitespace@1..2 " "
    Plus@2..3 "+"
    Whitespace@3..4 " "
    Number@4..5 "2"
    Whitespace@5..6 " "
    Comment@6..11 "# two"`

	if diff := cmp.Diff(want, buildSum().DebugString()); diff != "" {
		t.Errorf("DebugString mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_Dump(t *testing.T) {
	t.Parallel()

	root := buildSum()
	assert.Equal(t, root.DebugString()+"\n", root.Dump(cst.DumpStyle{}))

	style := cst.DumpStyle{
		Kind: func(el cst.Element, name string) string {
			if el.Kind().IsTrivia() {
				return strings.ToLower(name)
			}
			return name
		},
		Span: func(span string) string { return "<" + span + ">" },
		Text: func(quoted string) string { return "[" + quoted + "]" },
	}
	want := `Root<@0..11>
  BinaryExpr<@0..11>
    Number<@0..1> ["1"]
    whitespace<@1..2> [" "]
    Plus<@2..3> ["+"]
    whitespace<@3..4> [" "]
    Number<@4..5> ["2"]
    whitespace<@5..6> [" "]
    comment<@6..11> ["# two"]
`
	if diff := cmp.Diff(want, root.Dump(style)); diff != "" {
		t.Errorf("styled dump mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_Navigation(t *testing.T) {
	t.Parallel()

	root := buildSum()
	bin := root.ChildNodes()[0]

	tokens := bin.ChildTokens()
	require.Len(t, tokens, 7)
	assert.Equal(t, syntax.Plus, tokens[2].Kind())
	assert.Equal(t, syntax.Range{Start: 2, End: 3}, tokens[2].Range())
	assert.Equal(t, syntax.BinaryExpr, tokens[2].Parent().Kind())
	assert.True(t, tokens[1].IsTrivia())
	assert.Equal(t, `Plus@2..3 "+"`, tokens[2].String())

	assert.Len(t, root.Children(), 1)
	assert.Empty(t, bin.ChildNodes())
	assert.Len(t, root.Tokens(), 7)

	ancestors := tokens[0].Parent().Ancestors()
	require.Len(t, ancestors, 1)
	assert.Equal(t, syntax.Root, ancestors[0].Kind())
}

func TestNode_TokenAt(t *testing.T) {
	t.Parallel()

	root := buildSum()

	type testCase struct {
		offset int
		want   string
	}

	tests := []testCase{
		{offset: 0, want: `Number@0..1 "1"`},
		{offset: 2, want: `Plus@2..3 "+"`},
		{offset: 8, want: `Comment@6..11 "# two"`},
		{offset: 11, want: `Comment@6..11 "# two"`},
	}

	for _, tt := range tests {
		tok := root.TokenAt(tt.offset)
		require.NotNil(t, tok, "offset %d", tt.offset)
		assert.Equal(t, tt.want, tok.String())
	}

	assert.Nil(t, root.TokenAt(12))
	assert.Nil(t, root.TokenAt(-1))
	assert.Nil(t, cst.NewRoot(cst.NewBuilder().Finish()).TokenAt(0))
}

func TestWalk(t *testing.T) {
	t.Parallel()

	root := buildSum()

	var visited []syntax.Kind
	err := cst.Walk(root, func(el cst.Element) error {
		visited = append(visited, el.Kind())
		return nil
	})
	require.NoError(t, err)

	want := []syntax.Kind{
		syntax.Root, syntax.BinaryExpr,
		syntax.Number, syntax.Whitespace, syntax.Plus, syntax.Whitespace,
		syntax.Number, syntax.Whitespace, syntax.Comment,
	}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_Stops(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0
	err := cst.Walk(buildSum(), func(el cst.Element) error {
		count++
		if el.Kind() == syntax.Plus {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 5, count)
	require.NoError(t, cst.Walk(nil, nil))
}

func TestFind(t *testing.T) {
	t.Parallel()

	root := buildSum()

	assert.Len(t, cst.FindByKind(root, syntax.BinaryExpr), 1)
	assert.Empty(t, cst.FindByKind(root, syntax.ParenExpr))

	first := cst.FindFirst(root, func(el cst.Element) bool { return el.Kind() == syntax.Number })
	require.NotNil(t, first)
	assert.Equal(t, "1", first.Text())

	trivia := cst.FindAll(root, func(el cst.Element) bool { return el.Kind().IsTrivia() })
	assert.Len(t, trivia, 4)
}

func TestExport_CBORRoundTrip(t *testing.T) {
	t.Parallel()

	root := buildSum()

	data, err := cst.MarshalCBOR(root)
	require.NoError(t, err)

	green, err := cst.UnmarshalCBOR(data)
	require.NoError(t, err)
	assert.Equal(t, root.DebugString(), cst.NewRoot(green).DebugString())
}

func TestImport_Rejects(t *testing.T) {
	t.Parallel()

	text := "1"

	type testCase struct {
		name string
		in   cst.Exported
		msg  string
	}

	tests := []testCase{
		{
			name: "unknown kind",
			in:   cst.Exported{Kind: "Statement"},
			msg:  "unknown kind",
		},
		{
			name: "token root",
			in:   cst.Exported{Kind: "Number", End: 1, Text: &text},
			msg:  "is a token",
		},
		{
			name: "text length",
			in: cst.Exported{Kind: "Root", End: 2, Children: []cst.Exported{
				{Kind: "Number", End: 2, Text: &text},
			}},
			msg: "bytes of text",
		},
		{
			name: "gap between children",
			in: cst.Exported{Kind: "Root", End: 3, Children: []cst.Exported{
				{Kind: "Number", End: 1, Text: &text},
				{Kind: "Number", Start: 2, End: 3, Text: &text},
			}},
			msg: "starts at 2, want 1",
		},
		{
			name: "end mismatch",
			in: cst.Exported{Kind: "Root", End: 4, Children: []cst.Exported{
				{Kind: "Number", End: 1, Text: &text},
			}},
			msg: "children end at 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := cst.Import(tt.in)
			require.ErrorIs(t, err, cst.ErrInvalidExport)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}
