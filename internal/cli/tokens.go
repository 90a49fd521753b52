package cli

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exprcst/pkg/lexer"
)

type tokensFlags struct {
	inputFlags
	skipTrivia bool
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the lexemes of an expression",
		Long: `Tokenize an expression and print one lexeme per line as
Kind@start..end "text". Tokenizing never fails: text the tokenizer does not
recognize is reported as Error lexemes.

Examples:
  exprcst tokens -e "1 + 2"             Print every lexeme
  exprcst tokens --skip-trivia calc.expr  Omit whitespace and comments`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, flags)
		},
	}

	addInputFlags(cmd, &flags.inputFlags)
	cmd.Flags().BoolVar(&flags.skipTrivia, "skip-trivia", false, "omit whitespace and comment lexemes")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, flags *tokensFlags) (err error) {
	file, err := readSource(cmd.Context(), cmd, args, &flags.inputFlags)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if flushErr := bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("write tokens: %w", flushErr)
		}
	}()

	for _, lx := range lexer.Tokenize(file.Content) {
		if flags.skipTrivia && lx.Kind.IsTrivia() {
			continue
		}
		fmt.Fprintf(bw, "%s@%s %s\n", lx.Kind, lx.Range(), strconv.Quote(lx.Text))
	}

	return nil
}
