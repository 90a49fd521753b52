package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exprcst/internal/logging"
	"github.com/yaklabco/exprcst/internal/ui/pretty"
	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/cst"
	"github.com/yaklabco/exprcst/pkg/parser"
)

type parseFlags struct {
	inputFlags
	format  string
	compact bool
	quiet   bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse an expression and print its syntax tree",
		Long: `Parse an expression and print its concrete syntax tree.

The tree is written to standard output and syntax errors to standard error.
A tree is always produced, even for invalid input; the command exits non-zero
when the input had errors.

Examples:
  exprcst parse -e "1 + 2 * 3"          Print the debug tree
  exprcst parse calc.expr               Parse a file
  echo "-(a)" | exprcst parse           Parse standard input
  exprcst parse --format json -e "a"    Print the tree as JSON
  exprcst parse --format cbor -e "a"    Print the tree as CBOR bytes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addInputFlags(cmd, &flags.inputFlags)
	cmd.Flags().StringVar(&flags.format, "format", string(config.TreeFormatDebug), "tree format: debug, json, cbor")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use minified JSON")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "do not print syntax errors")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	ctx := cmd.Context()
	logger := logging.Default()

	format := config.TreeFormat(flags.format)
	switch format {
	case config.TreeFormatDebug, config.TreeFormatJSON, config.TreeFormatCBOR:
	default:
		return fmt.Errorf("invalid tree format %q: must be debug, json or cbor", flags.format)
	}

	file, err := readSource(ctx, cmd, args, &flags.inputFlags)
	if err != nil {
		return err
	}

	result := parser.Parse(file.Content)
	logger.Debug("parsed expression",
		logging.FieldSource, file.Path,
		logging.FieldFormat, format,
		logging.FieldDiagnostics, len(result.Errors()),
	)

	out := cmd.OutOrStdout()
	if err := writeTree(out, result.Syntax(), format, flags.compact, colorMode(cmd)); err != nil {
		return err
	}

	if result.OK() {
		return nil
	}

	if !flags.quiet {
		errOut := cmd.ErrOrStderr()
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), errOut))
		if err := writeParseErrors(errOut, styles, file, result.Errors()); err != nil {
			return err
		}
	}

	return ErrIssuesFound
}

func writeTree(w io.Writer, root *cst.Node, format config.TreeFormat, compact bool, color string) error {
	switch format {
	case config.TreeFormatJSON:
		enc := json.NewEncoder(w)
		if !compact {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(cst.Export(root)); err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}
		return nil

	case config.TreeFormatCBOR:
		data, err := cst.MarshalCBOR(root)
		if err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
		return nil

	default:
		styles := pretty.NewStyles(pretty.IsColorEnabled(color, w))
		if _, err := io.WriteString(w, styles.FormatTree(root)); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
		return nil
	}
}
