package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/exprcst/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.SeverityError, result.Config.Severity)
	assert.Equal(t, []string{".expr"}, result.Config.Extensions)
	assert.True(t, result.Config.MarkdownEnabled())
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".exprcst.yml"), `
severity: warning
extensions: [".calc"]
markdown:
  enabled: false
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, config.SeverityWarning, result.Config.Severity)
	assert.Equal(t, []string{".calc"}, result.Config.Extensions)
	assert.False(t, result.Config.MarkdownEnabled())
	assert.Equal(t, []string{"expr"}, result.Config.Markdown.Languages, "unset keys keep defaults")
	assert.Equal(t, []string{filepath.Join(root, ".exprcst.yml")}, result.LoadedFrom)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".exprcst.yml"), "severity: info\n")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".exprcst.yml"), "severity: info\n")
	explicit := filepath.Join(root, "custom.yaml")
	writeFile(t, explicit, "golden:\n  enabled: true\n  suffix: .golden\n")

	opts := isolated(root)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.SeverityError, result.Config.Severity, "project config is skipped")
	assert.True(t, result.Config.GoldenEnabled())
	assert.Equal(t, ".golden", result.Config.GoldenSuffix())
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".exprcst.yml"), "severity: info\n")

	opts := isolated(root)
	opts.CLIConfig = &config.Config{
		Severity:     config.SeverityWarning,
		Format:       config.FormatJSON,
		Jobs:         4,
		UpdateGolden: true,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.SeverityWarning, result.Config.Severity)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, 4, result.Config.Jobs)
	assert.True(t, result.Config.GoldenEnabled())
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		content string
		msg     string
	}

	tests := []testCase{
		{name: "unknown key", content: "flavor: gfm\n", msg: "flavor"},
		{name: "bad severity", content: "severity: fatal\n", msg: "/severity"},
		{name: "wrong type", content: "markdown:\n  enabled: maybe\n", msg: "/markdown/enabled"},
		{name: "bad extension", content: "extensions: [expr]\n", msg: "/extensions/0"},
		{name: "malformed yaml", content: "extensions: [\n", msg: "parse YAML"},
		{name: "bad glob", content: "ignore: [\"[unclosed\"]\n", msg: "invalid glob pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeFile(t, filepath.Join(root, ".exprcst.yml"), tt.content)

			_, err := Load(context.Background(), isolated(root))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)

			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "expected a ValidationError, got %T", err)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "exprcst.yaml"), "# nothing here\n")

	result, err := Load(context.Background(), isolated(root))
	require.NoError(t, err)
	assert.Equal(t, config.SeverityError, result.Config.Severity)
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_UserConfig(t *testing.T) {
	// Not parallel: sets XDG_CONFIG_HOME.
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "exprcst", "config.yaml"), "severity: info\n")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".exprcst.yml"), "ignore: [\"gen/**\"]\n")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: root, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, config.SeverityInfo, result.Config.Severity)
	assert.Equal(t, []string{"gen/**"}, result.Config.Ignore)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Markdown.Languages = []string{}
	cfg.Golden.Suffix = "tree"

	result := ValidateWithFile(cfg, "x.yml")
	assert.True(t, result.Valid())
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0].Error(), "x.yml: markdown.languages")

	cfg.Jobs = -1
	cfg.Format = "xml"
	assert.Len(t, Validate(cfg).Errors, 2)
}
