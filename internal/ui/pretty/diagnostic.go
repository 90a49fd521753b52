package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/exprcst/pkg/check"
	"github.com/yaklabco/exprcst/pkg/config"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(diag *check.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.Code.Render("("+diag.Code+")"),
	)

	if showContext && sourceLine != "" {
		width := 1
		if diag.EndLine == diag.StartLine && diag.EndColumn > diag.StartColumn {
			width = diag.EndColumn - diag.StartColumn
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn, width))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with carets under width bytes
// starting at column. Tabs are expanded to four spaces in both lines so the
// carets stay aligned.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	const (
		indent = "        "
		tab    = "    "
	)

	builder.WriteString(indent + s.SourceLine.Render(strings.ReplaceAll(line, "\t", tab)) + "\n")

	if column > 0 {
		var pad strings.Builder
		for i := 0; i < column-1 && i < len(line); i++ {
			if line[i] == '\t' {
				pad.WriteString(tab)
			} else {
				pad.WriteByte(' ')
			}
		}
		width = max(1, min(width, len(line)-(column-1)))
		builder.WriteString(indent + pad.String() + s.Caret.Render(strings.Repeat("^", width)) + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount == 1 {
		header += s.Dim.Render(" (1 issue)")
	} else if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
