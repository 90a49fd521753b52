package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/fsutil"
	"github.com/yaklabco/exprcst/pkg/runner"
)

var (
	// ErrIssuesFound is returned when a command found syntax errors or golden
	// mismatches. main exits non-zero without logging it again.
	ErrIssuesFound = errors.New("issues found")

	// ErrWarningsFound is returned by check --strict when only warnings were
	// reported. It wraps ErrIssuesFound.
	ErrWarningsFound = fmt.Errorf("%w: warnings in strict mode", ErrIssuesFound)

	// ErrConfig marks configuration that could not be loaded or validated.
	ErrConfig = errors.New("failed to load configuration")
)

// Exit codes for exprcst.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates the input had error-severity diagnostics.
	ExitIssues = 1

	// ExitWarnings indicates only warnings were found and strict mode is on.
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of a check run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitIssues
	}

	if strict && result.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0 {
		return ExitWarnings
	}

	return ExitSuccess
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrWarningsFound):
		return ExitWarnings
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, ErrConflictingInput):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge):
		return ExitIOError
	default:
		// Cobra reports unknown flags and bad arguments as plain errors.
		return ExitIssues
	}
}
