package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/exprcst/pkg/syntax"
)

func TestKind_String(t *testing.T) {
	t.Parallel()

	for _, k := range syntax.Kinds() {
		assert.NotEmpty(t, k.String(), "kind %d has no name", int(k))
		assert.NotContains(t, k.String(), "Kind(")
	}

	assert.Equal(t, "BinaryExpr", syntax.BinaryExpr.String())
	assert.Equal(t, "Kind(999)", syntax.Kind(999).String())
}

func TestKind_IsTrivia(t *testing.T) {
	t.Parallel()

	var trivia []syntax.Kind
	for _, k := range syntax.Kinds() {
		if k.IsTrivia() {
			trivia = append(trivia, k)
		}
	}
	assert.Equal(t, []syntax.Kind{syntax.Whitespace, syntax.Comment}, trivia)
}

func TestKind_IsNode(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.Root.IsNode())
	assert.True(t, syntax.ParenExpr.IsNode())
	assert.False(t, syntax.Error.IsNode())
	assert.False(t, syntax.Number.IsNode())
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, ok := syntax.ParseKind("prefixexpr")
	assert.True(t, ok)
	assert.Equal(t, syntax.PrefixExpr, k)

	_, ok = syntax.ParseKind("Statement")
	assert.False(t, ok)
}

func TestDescribeList(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name  string
		kinds []syntax.Kind
		want  string
	}

	tests := []testCase{
		{name: "empty", want: "nothing"},
		{name: "single", kinds: []syntax.Kind{syntax.RParen}, want: "')'"},
		{name: "pair", kinds: []syntax.Kind{syntax.Number, syntax.Ident}, want: "number or identifier"},
		{
			name:  "several",
			kinds: []syntax.Kind{syntax.Number, syntax.Ident, syntax.Minus, syntax.LParen},
			want:  "number, identifier, '-' or '('",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, syntax.DescribeList(tt.kinds))
		})
	}
}

func TestRange(t *testing.T) {
	t.Parallel()

	r := syntax.NewRange(3, 4)
	assert.Equal(t, syntax.Range{Start: 3, End: 7}, r)
	assert.Equal(t, 4, r.Len())
	assert.False(t, r.IsEmpty())
	assert.True(t, r.Contains(3))
	assert.False(t, r.Contains(7))
	assert.Equal(t, "3..7", r.String())
	assert.Equal(t, syntax.Range{Start: 1, End: 7}, r.Cover(syntax.Range{Start: 1, End: 2}))
	assert.Equal(t, syntax.Range{Start: 13, End: 17}, r.Shift(10))
	assert.True(t, syntax.Range{Start: 5, End: 5}.IsEmpty())
}
