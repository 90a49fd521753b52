// Package cli provides the Cobra command structure for exprcst.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/exprcst/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root exprcst command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "exprcst",
		Short: "A lossless concrete syntax tree toolkit for arithmetic expressions",
		Long: `exprcst parses a small arithmetic expression language into a lossless
concrete syntax tree. Every byte of the input, including whitespace, comments
and unrecognized text, is preserved in the tree, and syntax errors are reported
with precise byte ranges while parsing continues.

Use it to inspect tokens, parser events and trees, to check expression files
and fenced blocks in Markdown, and to serve diagnostics to editors over LSP.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newEventsCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLSPCommand(info))
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
