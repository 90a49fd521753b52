// Package check parses expression sources and Markdown expression blocks and
// turns syntax errors and golden tree mismatches into diagnostics.
package check

import (
	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/parser"
	"github.com/yaklabco/exprcst/pkg/source"
)

// Diagnostic codes that are not parse error categories.
const (
	CodeGoldenMissing  = "golden-missing"
	CodeGoldenMismatch = "golden-mismatch"
)

// Diagnostic represents a single issue found in a file.
type Diagnostic struct {
	// Code identifies the category (e.g., "unexpected-token").
	Code string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column number where the issue ends.
	EndColumn int

	// Offset and EndOffset are the byte range within the file.
	Offset    int
	EndOffset int
}

// Start returns the start position.
func (d *Diagnostic) Start() source.Position {
	return source.Position{Line: d.StartLine, Column: d.StartColumn}
}

// End returns the end position.
func (d *Diagnostic) End() source.Position {
	return source.Position{Line: d.EndLine, Column: d.EndColumn}
}

// OffsetMapper maps an offset in parsed text to an offset in the file.
type OffsetMapper func(offset int) int

func identity(offset int) int { return offset }

// FromParseErrors converts the errors of a parse into diagnostics positioned
// in file. A nil mapper means the parsed text is the whole file.
func FromParseErrors(
	file *source.File,
	errs []*parser.ParseError,
	mapOffset OffsetMapper,
	severity config.Severity,
) []Diagnostic {
	if mapOffset == nil {
		mapOffset = identity
	}

	diags := make([]Diagnostic, 0, len(errs))
	for _, perr := range errs {
		start := mapOffset(perr.Range.Start)
		end := mapOffset(perr.Range.End)
		diags = append(diags, newDiagnostic(file, perr.Code(), perr.Message(), severity, start, end))
	}
	return diags
}

func newDiagnostic(file *source.File, code, message string, severity config.Severity, start, end int) Diagnostic {
	startPos := file.Position(start)
	endPos := file.Position(end)
	return Diagnostic{
		Code:        code,
		Message:     message,
		Severity:    severity,
		FilePath:    file.Path,
		StartLine:   startPos.Line,
		StartColumn: startPos.Column,
		EndLine:     endPos.Line,
		EndColumn:   endPos.Column,
		Offset:      start,
		EndOffset:   end,
	}
}
