package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/exprcst/internal/ui/pretty"
	"github.com/yaklabco/exprcst/pkg/check"
	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/parser"
)

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	diag := &check.Diagnostic{
		Code:        "unexpected-token",
		Message:     "expected ')', but found number",
		Severity:    config.SeverityError,
		FilePath:    "calc.expr",
		StartLine:   2,
		StartColumn: 4,
		EndLine:     2,
		EndColumn:   6,
	}

	got := styles.FormatDiagnostic(diag, true, "(1 22)")
	want := "  calc.expr:2:4  error  expected ')', but found number  (unexpected-token)\n" +
		"        (1 22)\n" +
		"           ^^\n"
	assert.Equal(t, want, got)

	noContext := styles.FormatDiagnostic(diag, false, "(1 22)")
	assert.NotContains(t, noContext, "^")
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		line   string
		column int
		width  int
		want   string
	}{
		{
			name:   "single caret",
			line:   "1 +",
			column: 4,
			width:  0,
			want:   "        1 +\n           ^\n",
		},
		{
			name:   "tab expanded",
			line:   "\t1 ?",
			column: 4,
			width:  1,
			want:   "            1 ?\n              ^\n",
		},
		{
			name:   "width clamped to line",
			line:   "ab",
			column: 2,
			width:  10,
			want:   "        ab\n         ^\n",
		},
		{
			name:   "zero column",
			line:   "x",
			column: 0,
			width:  1,
			want:   "        x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSourceContext(tt.line, tt.column, tt.width))
		})
	}
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "custom", styles.FormatSeverity("custom"))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.expr (1 issue)", styles.FormatFileHeader("a.expr", 1))
	assert.Equal(t, "a.expr (3 issues)", styles.FormatFileHeader("a.expr", 3))
	assert.Equal(t, "a.expr", styles.FormatFileHeader("a.expr", 0))
}

func TestFormatTree_MatchesDebugString(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for _, input := range []string{"", "1 + 2 * 3", "-(a # c\n) $", "(1 +"} {
		res := parser.Parse(input)
		assert.Equal(t, res.DebugTree()+"\n", styles.FormatTree(res.Syntax()), "input %q", input)
	}
}
