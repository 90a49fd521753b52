package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exprcst/internal/configloader"
	"github.com/yaklabco/exprcst/internal/logging"
	"github.com/yaklabco/exprcst/internal/ui/pretty"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect exprcst configuration",
		Long: `Inspect the configuration exprcst resolves from defaults, configuration
files, EXPRCST_* environment variables and flags.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigEnvCommand())
	cmd.AddCommand(newConfigSchemaCommand())
	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("get config flag: %w", err)
			}

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
				WorkingDir:   workDir,
				ExplicitPath: configPath,
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrConfig, err)
			}

			for _, warning := range result.Warnings {
				logging.Default().Warn(warning)
			}

			header := "# effective configuration (defaults only)"
			if len(result.LoadedFrom) > 0 {
				header = "# effective configuration, loaded from:\n#   " + strings.Join(result.LoadedFrom, "\n#   ")
			}

			content, err := result.Config.ToYAMLWithHeader(header)
			if err != nil {
				return fmt.Errorf("render configuration: %w", err)
			}

			if _, err := cmd.OutOrStdout().Write(content); err != nil {
				return fmt.Errorf("write configuration: %w", err)
			}
			return nil
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
			return writeEnvVars(out, styles, configloader.ListEnvVars())
		},
	}
}

func writeEnvVars(w io.Writer, styles *pretty.Styles, vars []configloader.EnvVar) error {
	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var b strings.Builder
	for _, v := range vars {
		b.WriteString(styles.Bold.Render(rpad(v.Name, width)))
		b.WriteString("  ")
		b.WriteString(styles.Dim.Render(v.Description))
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write environment variables: %w", err)
	}
	return nil
}

func newConfigSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for configuration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := io.WriteString(cmd.OutOrStdout(), configloader.Schema()); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}
			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
				ExplicitPath:     args[0],
				IgnoreUserConfig: true,
				IgnoreEnv:        true,
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrConfig, err)
			}

			out := cmd.OutOrStdout()
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			fmt.Fprintf(out, "%s is valid\n", args[0])
			return nil
		},
	}
}
