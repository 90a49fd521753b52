package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exprcst/pkg/parser"
)

type eventsFlags struct {
	inputFlags
	resolved bool
}

func newEventsCommand() *cobra.Command {
	flags := &eventsFlags{}

	cmd := &cobra.Command{
		Use:   "events [file|-]",
		Short: "Print the parser's event log",
		Long: `Parse an expression and print the flat event log the parser recorded,
one event per line and numbered by position. StartNodeAt events show the
checkpoint they wrap from.

With --resolved, checkpoints are first rewritten into nested StartNode
events, giving the exact sequence the tree builder consumes.

Examples:
  exprcst events -e "1 + 2"             Print the raw event log
  exprcst events --resolved -e "1 + 2"  Print the log after checkpoint resolution`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cmd, args, flags)
		},
	}

	addInputFlags(cmd, &flags.inputFlags)
	cmd.Flags().BoolVar(&flags.resolved, "resolved", false, "resolve checkpoints before printing")

	return cmd
}

func runEvents(cmd *cobra.Command, args []string, flags *eventsFlags) (err error) {
	file, err := readSource(cmd.Context(), cmd, args, &flags.inputFlags)
	if err != nil {
		return err
	}

	events := parser.Parse(file.Content).Events()
	if flags.resolved {
		events = parser.ResolveCheckpoints(events)
	}

	bw := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if flushErr := bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("write events: %w", flushErr)
		}
	}()

	for i, ev := range events {
		fmt.Fprintf(bw, "%3d  %s\n", i, ev)
	}

	return nil
}
