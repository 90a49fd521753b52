package check

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/fsutil"
)

// GoldenStatus is the outcome of a golden comparison.
type GoldenStatus string

const (
	GoldenMatch     GoldenStatus = "match"
	GoldenMismatch  GoldenStatus = "mismatch"
	GoldenMissing   GoldenStatus = "missing"
	GoldenUpdated   GoldenStatus = "updated"
	GoldenUnchanged GoldenStatus = "unchanged"
)

// GoldenResult describes the comparison of a tree with its golden file.
type GoldenResult struct {
	// Path is the golden file path.
	Path string

	// Status is the comparison outcome.
	Status GoldenStatus

	// Line is the first differing 1-based line for a mismatch.
	Line int
}

// GoldenPath returns the golden file path for a source path.
func GoldenPath(path string, cfg *config.Config) string {
	return path + cfg.GoldenSuffix()
}

// CompareGolden compares tree with the golden file for path, or rewrites the
// golden file when cfg.UpdateGolden is set.
func CompareGolden(ctx context.Context, path, tree string, cfg *config.Config) (*GoldenResult, error) {
	golden := &GoldenResult{Path: GoldenPath(path, cfg)}

	if cfg.UpdateGolden {
		written, err := fsutil.WriteAtomicIfChanged(ctx, golden.Path, []byte(tree), 0)
		if err != nil {
			return nil, fmt.Errorf("update golden: %w", err)
		}
		golden.Status = GoldenUnchanged
		if written {
			golden.Status = GoldenUpdated
		}
		return golden, nil
	}

	want, _, err := fsutil.ReadFile(ctx, golden.Path)
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		golden.Status = GoldenMissing
		return golden, nil
	case err != nil:
		return nil, fmt.Errorf("read golden: %w", err)
	}

	// Editors commonly append a final newline; the tree dump never has one.
	line := firstDifference(strings.TrimSuffix(string(want), "\n"), tree)
	if line == 0 {
		golden.Status = GoldenMatch
		return golden, nil
	}
	golden.Status = GoldenMismatch
	golden.Line = line
	return golden, nil
}

// Diagnostic converts a missing or mismatched golden into a diagnostic at
// the start of the source. It returns false for other statuses.
func (g *GoldenResult) Diagnostic(path string) (Diagnostic, bool) {
	var msg, code string
	switch g.Status {
	case GoldenMissing:
		code = CodeGoldenMissing
		msg = "golden tree " + g.Path + " does not exist"
	case GoldenMismatch:
		code = CodeGoldenMismatch
		msg = fmt.Sprintf("parse tree differs from %s at line %d", g.Path, g.Line)
	default:
		return Diagnostic{}, false
	}

	return Diagnostic{
		Code:        code,
		Message:     msg,
		Severity:    config.SeverityError,
		FilePath:    path,
		StartLine:   1,
		StartColumn: 1,
		EndLine:     1,
		EndColumn:   1,
	}, true
}

// firstDifference returns the first 1-based line where a and b differ, or 0
// when they are equal.
func firstDifference(a, b string) int {
	if a == b {
		return 0
	}
	aLines := strings.Split(a, "\n")
	bLines := strings.Split(b, "\n")
	for i := range min(len(aLines), len(bLines)) {
		if aLines[i] != bLines[i] {
			return i + 1
		}
	}
	return min(len(aLines), len(bLines)) + 1
}
