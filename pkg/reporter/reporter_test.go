package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/exprcst/pkg/check"
	"github.com/yaklabco/exprcst/pkg/config"
	"github.com/yaklabco/exprcst/pkg/reporter"
	"github.com/yaklabco/exprcst/pkg/runner"
)

// runDir writes files into a temp directory and checks them.
func runDir(t *testing.T, files map[string]string) (string, *runner.Result) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	cfg := config.NewConfig()
	r := runner.New(check.NewPipeline(check.NewEngine(cfg)))
	result, err := r.Run(context.Background(), runner.OptionsFromConfig(cfg, dir, nil))
	require.NoError(t, err)
	return dir, result
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{reporter.FormatText, reporter.FormatJSON, ""} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	dir, result := runDir(t, map[string]string{
		"good.expr": "1 + 2",
		"bad.expr":  "1 +\n(2",
	})

	var buf bytes.Buffer
	opts := reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
		WorkingDir:  dir,
	}

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	want := "bad.expr (1 issue)\n" +
		"  bad.expr:2:3  error  expected ')', but reached end of input  (unexpected-end)\n" +
		"        (2\n" +
		"          ^\n" +
		"\n" +
		"1 issue (1 error) in 1 file\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_FileErrorAndEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.Options{Writer: &buf, Color: "never", ShowSummary: true}

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No files to check.\n", buf.String())

	buf.Reset()
	result := &runner.Result{Files: []runner.FileOutcome{{Path: "gone.expr", Error: errors.New("file not found")}}}
	_, err = reporter.NewTextReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "gone.expr: error: file not found")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	dir, result := runDir(t, map[string]string{
		"a.expr":    "1 2",
		"b.expr":    "3",
		"readme.md": "```expr\n(\n```\n",
	})

	var buf bytes.Buffer
	count, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: dir}).
		Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Len(t, out.Files, 3)
	assert.Equal(t, "a.expr", out.Files[0].Path)
	require.Len(t, out.Files[0].Diagnostics, 1)
	diag := out.Files[0].Diagnostics[0]
	assert.Equal(t, "unexpected-token", diag.Code)
	assert.Equal(t, "error", diag.Severity)
	assert.Equal(t, 2, diag.StartOffset)
	assert.Equal(t, 3, diag.EndOffset)

	assert.Empty(t, out.Files[1].Diagnostics)
	assert.True(t, out.Files[2].Markdown)

	assert.Equal(t, 3, out.Summary.FilesChecked)
	assert.Equal(t, 2, out.Summary.FilesWithIssues)
	assert.Equal(t, 3, out.Summary.Expressions)
	assert.Equal(t, map[string]int{"error": 2}, out.Summary.BySeverity)
}
