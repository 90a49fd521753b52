package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/exprcst/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrGoldenFailure indicates a golden file could not be read or written.
	ErrGoldenFailure = errors.New("golden failure")
)

// Pipeline checks files on disk.
type Pipeline struct {
	// Engine parses and checks file content.
	Engine *Engine
}

// NewPipeline creates a Pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path, checks it, and runs the golden comparison for
// plain sources when enabled.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.Engine.CheckContent(ctx, path, content)
	if err != nil {
		return nil, err
	}

	cfg := p.Engine.Config()
	if result.Markdown || !cfg.GoldenEnabled() {
		return result, nil
	}

	golden, err := CompareGolden(ctx, path, result.Tree, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGoldenFailure, err)
	}
	result.Golden = golden
	if diag, ok := golden.Diagnostic(path); ok {
		result.Diagnostics = append([]Diagnostic{diag}, result.Diagnostics...)
	}

	return result, nil
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
