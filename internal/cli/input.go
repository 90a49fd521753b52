package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exprcst/internal/ui/pretty"
	"github.com/yaklabco/exprcst/pkg/check"
	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/fsutil"
	"github.com/yaklabco/exprcst/pkg/parser"
	"github.com/yaklabco/exprcst/pkg/source"
)

// Display names for inputs that have no file path.
const (
	stdinName = "<stdin>"
	exprName  = "<expr>"
)

// ErrConflictingInput is returned when both --expr and a file are given.
var ErrConflictingInput = errors.New("--expr cannot be combined with a file argument")

// inputFlags are shared by commands that read a single expression.
type inputFlags struct {
	expr string
}

func addInputFlags(cmd *cobra.Command, flags *inputFlags) {
	cmd.Flags().StringVarP(&flags.expr, "expr", "e", "", "parse the given text instead of a file")
}

// readSource resolves the single input of a command: --expr, a file path, or
// standard input when the path is "-" or absent.
func readSource(ctx context.Context, cmd *cobra.Command, args []string, flags *inputFlags) (*source.File, error) {
	if cmd.Flags().Changed("expr") {
		if len(args) > 0 {
			return nil, ErrConflictingInput
		}
		return source.NewFile(exprName, flags.expr), nil
	}

	path := fsutil.StdinPath
	if len(args) > 0 {
		path = args[0]
	}

	content, err := fsutil.ReadInput(ctx, path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	name := path
	if path == fsutil.StdinPath {
		name = stdinName
	}
	return source.NewFile(name, string(content)), nil
}

// colorMode returns the value of the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil || mode == "" {
		return "auto"
	}
	return mode
}

// writeParseErrors prints the errors of a parse to w in the layout the check
// command uses.
func writeParseErrors(w io.Writer, styles *pretty.Styles, file *source.File, errs []*parser.ParseError) error {
	if len(errs) == 0 {
		return nil
	}

	diags := check.FromParseErrors(file, errs, nil, config.SeverityError)

	var b strings.Builder
	b.WriteString(styles.FormatFileHeader(file.Path, len(diags)))
	b.WriteByte('\n')
	for i := range diags {
		b.WriteString(styles.FormatDiagnostic(&diags[i], true, file.LineText(diags[i].StartLine)))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}
	return nil
}
