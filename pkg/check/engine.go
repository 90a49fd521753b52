package check

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/cst"
	"github.com/yaklabco/exprcst/pkg/markdown"
	"github.com/yaklabco/exprcst/pkg/parser"
	"github.com/yaklabco/exprcst/pkg/source"
)

// FileResult contains the results of checking a single file.
type FileResult struct {
	// Source is the checked file with its line index.
	Source *source.File

	// Markdown is true if the file was checked block by block.
	Markdown bool

	// Blocks is the number of expression blocks parsed. A plain source
	// counts as one block.
	Blocks int

	// Tree is the debug tree of a plain source; empty for Markdown.
	Tree string

	// Syntax is the parsed tree of a plain source; nil for Markdown.
	Syntax *cst.Node

	// Diagnostics contains all issues found, in file order.
	Diagnostics []Diagnostic

	// Golden describes the golden comparison, if one ran.
	Golden *GoldenResult
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// Engine parses file content according to a configuration.
type Engine struct {
	cfg       *config.Config
	extractor *markdown.Extractor
}

// NewEngine creates an Engine. A nil cfg uses config.NewConfig().
func NewEngine(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Engine{
		cfg:       cfg,
		extractor: markdown.New(cfg.Markdown.Languages),
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// IsMarkdown reports whether path is checked block by block.
func (e *Engine) IsMarkdown(path string) bool {
	if !e.cfg.MarkdownEnabled() {
		return false
	}
	return slices.Contains(config.DefaultMarkdownExtensions(), strings.ToLower(filepath.Ext(path)))
}

// CheckContent parses content and collects its diagnostics.
func (e *Engine) CheckContent(ctx context.Context, path string, content []byte) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check cancelled: %w", err)
	}

	file := source.NewFile(path, string(content))
	result := &FileResult{Source: file}
	severity := e.severity()

	if !e.IsMarkdown(path) {
		res := parser.Parse(file.Content)
		result.Blocks = 1
		result.Syntax = res.Syntax()
		result.Tree = res.DebugTree()
		result.Diagnostics = FromParseErrors(file, res.Errors(), nil, severity)
		return result, nil
	}

	blocks, err := e.extractor.Extract(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("extract blocks: %w", err)
	}

	result.Markdown = true
	result.Blocks = len(blocks)
	for i := range blocks {
		block := &blocks[i]
		res := parser.Parse(block.Text)
		result.Diagnostics = append(result.Diagnostics,
			FromParseErrors(file, res.Errors(), block.FileOffsetOf, severity)...)
	}

	return result, nil
}

func (e *Engine) severity() config.Severity {
	if e.cfg.Severity.IsValid() {
		return e.cfg.Severity
	}
	return config.SeverityError
}
