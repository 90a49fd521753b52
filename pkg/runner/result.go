package runner

import (
	"github.com/yaklabco/exprcst/pkg/check"
	"github.com/yaklabco/exprcst/pkg/config"
)

// FileOutcome is the outcome of checking one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil when the file could not be processed.
	Result *check.FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// BlocksParsed counts parsed expressions, including Markdown blocks.
	BlocksParsed int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[config.Severity]int

	// GoldenUpdated is the number of golden files written.
	GoldenUpdated int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any error-severity diagnostic occurred or any
// file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0 || r.Stats.FilesErrored > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[config.Severity]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	res := outcome.Result
	r.Stats.FilesProcessed++
	r.Stats.BlocksParsed += res.Blocks
	r.Stats.DiagnosticsTotal += len(res.Diagnostics)
	if res.HasIssues() {
		r.Stats.FilesWithIssues++
	}
	if res.Golden != nil && res.Golden.Status == check.GoldenUpdated {
		r.Stats.GoldenUpdated++
	}
	for _, diag := range res.Diagnostics {
		r.Stats.DiagnosticsBySeverity[diag.Severity]++
	}
}
