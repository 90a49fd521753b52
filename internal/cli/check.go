package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exprcst/internal/configloader"
	"github.com/yaklabco/exprcst/internal/logging"
	"github.com/yaklabco/exprcst/pkg/check"
	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/reporter"
	"github.com/yaklabco/exprcst/pkg/runner"
)

type checkFlags struct {
	format         string
	ignore         []string
	extensions     []string
	severity       string
	golden         bool
	noMarkdown     bool
	followSymlinks bool
	strict         bool
	noContext      bool
	noSummary      bool
	compact        bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check expression files for syntax errors",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Check expression sources for syntax errors.

By default, checks every .expr file in the current directory and its
subdirectories, plus fenced expr code blocks in Markdown files. Specify paths
to check specific files or directories.

With golden comparison enabled, the debug tree of every expression file is
compared with a sibling golden file (calc.expr.tree by default). Use
--update-golden to write the golden files instead.

Examples:
  exprcst check                        # Check current directory
  exprcst check examples/              # Check a directory
  exprcst check calc.expr              # Check a single file
  exprcst check --golden               # Also compare golden trees
  exprcst check --update-golden        # Rewrite golden trees
  exprcst check --format json          # Output as JSON for CI`

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
	logger := logging.Default()

	// Format is CLI-only. Unset list flags stay nil, which the merge treats
	// as absent; the remaining overrides apply only when their flag was given.
	cfg.Format = config.OutputFormat(flags.format)
	cfg.Ignore = flags.ignore
	cfg.Extensions = flags.extensions
	if cmd.Flags().Changed("severity") {
		cfg.Severity = config.Severity(flags.severity)
	}
	if cmd.Flags().Changed("golden") || cfg.UpdateGolden {
		enabled := flags.golden || cfg.UpdateGolden
		cfg.Golden.Enabled = &enabled
	}
	if flags.noMarkdown {
		disabled := false
		cfg.Markdown.Enabled = &disabled
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		"severity", finalCfg.Severity,
		"markdown", finalCfg.MarkdownEnabled(),
		"golden", finalCfg.GoldenEnabled(),
		logging.FieldJobs, finalCfg.Jobs,
	)

	pipeline := check.NewPipeline(check.NewEngine(finalCfg))
	checkRunner := runner.New(pipeline)

	runOpts := runner.OptionsFromConfig(finalCfg, workDir, args)
	runOpts.FollowSymlinks = flags.followSymlinks

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := checkRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	logger.Debug("check run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesChecked, result.Stats.FilesProcessed,
		logging.FieldFilesWithErrors, result.Stats.FilesWithIssues,
		logging.FieldBlocks, result.Stats.BlocksParsed,
		logging.FieldGoldenUpdated, result.Stats.GoldenUpdated,
	)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitIssues:
		return ErrIssuesFound
	case ExitWarnings:
		return ErrWarningsFound
	}

	return nil
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "expression file extensions (default .expr)")
	cmd.Flags().StringVar(&flags.severity, "severity", string(config.SeverityError),
		"severity of syntax errors: error, warning, info")
	cmd.Flags().BoolVar(&flags.golden, "golden", false, "compare debug trees with golden files")
	cmd.Flags().BoolVar(&cfg.UpdateGolden, "update-golden", false, "write golden files instead of comparing")
	cmd.Flags().BoolVar(&flags.noMarkdown, "no-markdown", false, "skip fenced expr blocks in Markdown files")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use minified JSON")
}
