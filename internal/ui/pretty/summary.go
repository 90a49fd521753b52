package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (2 errors, 1 warning) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var suffix string
	if stats.GoldenUpdated > 0 {
		suffix = ", " + s.Success.Render(fmt.Sprintf("%d golden %s updated",
			stats.GoldenUpdated, plural(stats.GoldenUpdated, wordFile, wordFiles)))
	}

	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))) +
			suffix + "\n"
	}

	var severityParts []string
	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	line := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}
	line += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))

	return line + suffix + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " + s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	builder.WriteString("  Expressions:       " + s.SummaryValue.Render(strconv.Itoa(stats.BlocksParsed)) + "\n")
	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " + s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.GoldenUpdated > 0 {
		builder.WriteString("  Golden updated:    " + s.Success.Render(strconv.Itoa(stats.GoldenUpdated)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Total issues:      " + s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		builder.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(n)) + "\n")
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(n)) + "\n")
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		builder.WriteString("    Info:            " + s.Info.Render(strconv.Itoa(n)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity[config.SeverityError] > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.DiagnosticsBySeverity[config.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
