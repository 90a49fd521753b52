package lexer_test

import (
	"testing"

	"github.com/yaklabco/exprcst/pkg/lexer"
	"github.com/yaklabco/exprcst/pkg/syntax"
)

// runKinds are kinds whose lexemes are maximal runs and therefore never
// appear twice in a row.
var runKinds = map[syntax.Kind]bool{
	syntax.Whitespace: true,
	syntax.Error:      true,
	syntax.Number:     true,
	syntax.Ident:      true,
}

// FuzzTokenize checks that tokenization is total and lossless.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"",
		"1 + 2",
		"-(a * 3) / b",
		"# comment only",
		"\n1\n  + 1 # Add one\n  + 10 # Add ten",
		"let x = fn { }",
		"@@@",
		"\xff\xfe",
		"1€2",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		lexemes := lexer.Tokenize(input)

		if err := lexer.Validate(lexemes, input); err != nil {
			t.Fatalf("invalid lexemes for %q: %v", input, err)
		}

		for i := 1; i < len(lexemes); i++ {
			prev, cur := lexemes[i-1], lexemes[i]
			if prev.Kind == cur.Kind && runKinds[cur.Kind] {
				t.Fatalf("adjacent %s lexemes at %d were not merged", cur.Kind, cur.Offset)
			}
		}
	})
}
