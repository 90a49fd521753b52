package lexer

import "fmt"

// Validate checks that lexemes are contiguous, non-empty, agree with text and
// cover [0, len(text)). It returns nil when the sequence is valid.
func Validate(lexemes []Lexeme, text string) error {
	pos := 0
	for i, lx := range lexemes {
		if lx.Offset != pos {
			return fmt.Errorf("lexeme %d (%s) starts at %d, want %d", i, lx.Kind, lx.Offset, pos)
		}
		if lx.Text == "" {
			return fmt.Errorf("lexeme %d (%s) at %d is empty", i, lx.Kind, lx.Offset)
		}
		end := lx.End()
		if end > len(text) {
			return fmt.Errorf("lexeme %d (%s) ends at %d, past input length %d", i, lx.Kind, end, len(text))
		}
		if text[lx.Offset:end] != lx.Text {
			return fmt.Errorf("lexeme %d (%s) text %q does not match input %q", i, lx.Kind, lx.Text, text[lx.Offset:end])
		}
		pos = end
	}

	if pos != len(text) {
		return fmt.Errorf("lexemes end at %d, input length is %d", pos, len(text))
	}

	return nil
}
