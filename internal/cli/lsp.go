package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exprcst/internal/configloader"
	"github.com/yaklabco/exprcst/internal/logging"
	"github.com/yaklabco/exprcst/internal/lsp"
	"github.com/yaklabco/exprcst/pkg/check"
)

func newLSPCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server on stdio",
		Long: `Start a Language Server Protocol server on standard input and output.

The server publishes syntax errors as diagnostics for open .expr documents and
for fenced expr blocks in Markdown documents, and answers hover requests with
the token under the cursor and its enclosing nodes. Configuration is resolved
from the working directory the same way the check command does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("get config flag: %w", err)
			}
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("get debug flag: %w", err)
			}

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
				WorkingDir:   workDir,
				ExplicitPath: configPath,
			})
			if err != nil {
				return errors.Join(ErrConfig, err)
			}

			// Standard output carries the protocol, so logs go to stderr only.
			logger := logging.Default()
			for _, warning := range loadResult.Warnings {
				logger.Warn(warning)
			}

			srv := lsp.NewServer(lsp.Options{
				Version: info.Version,
				Engine:  check.NewEngine(loadResult.Config),
				Logger:  logger,
				Debug:   debug,
			})
			if err := srv.RunStdio(); err != nil {
				return fmt.Errorf("language server: %w", err)
			}
			return nil
		},
	}
}
