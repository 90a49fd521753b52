package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/yaklabco/exprcst/internal/cli"
	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/fsutil"
	"github.com/yaklabco/exprcst/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

// execute runs the root command with args and returns its stdout, stderr
// and error. Color is always disabled so output is plain text.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	cmd.SetIn(stdin)
	cmd.SetArgs(append(args, "--color=never"))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "exprcst" {
		t.Errorf("expected Use to be 'exprcst', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{"check", "parse", "tokens", "events", "config", "init", "lsp", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestConfigCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"show", "env", "schema", "validate"} {
		subCmd, _, err := cmd.Find([]string{"config", name})
		if err != nil {
			t.Errorf("expected config subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{
			command: "check",
			flags: []string{
				"format", "jobs", "ignore", "ext", "severity", "golden", "update-golden",
				"no-markdown", "follow-symlinks", "strict", "no-context", "no-summary", "compact",
			},
		},
		{command: "parse", flags: []string{"expr", "format", "compact", "quiet"}},
		{command: "tokens", flags: []string{"expr", "skip-trivia"}},
		{command: "events", flags: []string{"expr", "resolved"}},
		{command: "init", flags: []string{"force", "output"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			subCmd, _, err := cmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("%s command not found: %v", tt.command, err)
			}

			for _, flagName := range tt.flags {
				if subCmd.Flags().Lookup(flagName) == nil {
					t.Errorf("expected flag --%s on %s", flagName, tt.command)
				}
			}
		})
	}
}

func TestPersistentFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected persistent flag --%s", flagName)
		}
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	withCounts := func(errors, warnings, errored int) *runner.Result {
		return &runner.Result{Stats: runner.Stats{
			FilesErrored: errored,
			DiagnosticsBySeverity: map[config.Severity]int{
				config.SeverityError:   errors,
				config.SeverityWarning: warnings,
			},
		}}
	}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{name: "nil result", result: nil, want: cli.ExitSuccess},
		{name: "clean", result: withCounts(0, 0, 0), want: cli.ExitSuccess},
		{name: "errors", result: withCounts(2, 0, 0), want: cli.ExitIssues},
		{name: "unreadable file", result: withCounts(0, 0, 1), want: cli.ExitIssues},
		{name: "warnings", result: withCounts(0, 3, 0), want: cli.ExitSuccess},
		{name: "warnings strict", result: withCounts(0, 3, 0), strict: true, want: cli.ExitWarnings},
		{name: "errors beat warnings", result: withCounts(1, 3, 0), strict: true, want: cli.ExitIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromResult(tt.result, tt.strict); got != tt.want {
				t.Errorf("ExitCodeFromResult() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, nil, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	for _, want := range []string{"exprcst", "test-version", "test-commit", "test-date"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected version output to contain %q, got %q", want, stdout)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "issues", err: cli.ErrIssuesFound, want: cli.ExitIssues},
		{name: "strict warnings", err: cli.ErrWarningsFound, want: cli.ExitWarnings},
		{name: "conflicting input", err: cli.ErrConflictingInput, want: cli.ExitInvalidUsage},
		{name: "config", err: fmt.Errorf("%w: bad severity", cli.ErrConfig), want: cli.ExitConfigError},
		{name: "missing file", err: fmt.Errorf("read: %w", fsutil.ErrNotFound), want: cli.ExitIOError},
		{name: "other", err: errors.New("unknown flag: --nope"), want: cli.ExitIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCode_FromCommands(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, nil, "parse", "-e", "1", "other.expr")
	if got := cli.ExitCode(err); got != cli.ExitInvalidUsage {
		t.Errorf("conflicting input: ExitCode() = %d, want %d", got, cli.ExitInvalidUsage)
	}

	_, _, err = execute(t, nil, "config", "validate", "/nonexistent/exprcst.yml")
	if got := cli.ExitCode(err); got != cli.ExitConfigError {
		t.Errorf("missing config: ExitCode() = %d, want %d", got, cli.ExitConfigError)
	}
}
