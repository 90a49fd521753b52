// Package config defines the configuration types for exprcst.
// These types are plain data; loading and merging live in internal/configloader.
package config

// Severity is the severity assigned to a reported diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is one of the known values.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how check results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// TreeFormat specifies how the parse command prints a tree.
type TreeFormat string

const (
	TreeFormatDebug TreeFormat = "debug"
	TreeFormatJSON  TreeFormat = "json"
	TreeFormatCBOR  TreeFormat = "cbor"
)

// DefaultExtensions are the file extensions checked when none are configured.
func DefaultExtensions() []string {
	return []string{".expr"}
}

// DefaultMarkdownExtensions are the extensions treated as Markdown documents.
func DefaultMarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// DefaultGoldenSuffix is appended to a source path to name its golden tree.
const DefaultGoldenSuffix = ".tree"

// MarkdownConfig controls checking of expression blocks inside Markdown.
type MarkdownConfig struct {
	// Enabled turns on fenced code block extraction. Nil means enabled.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty"`

	// Languages are the fence info strings treated as expression code.
	Languages []string `mapstructure:"languages" yaml:"languages,omitempty"`
}

// GoldenConfig controls comparison of parse trees against golden files.
type GoldenConfig struct {
	// Enabled turns on golden comparison. Nil means disabled.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty"`

	// Suffix is appended to the source path to find the golden file.
	Suffix string `mapstructure:"suffix" yaml:"suffix,omitempty"`
}

// Config is the root configuration structure for exprcst.
type Config struct {
	// Extensions lists the file extensions parsed as expression sources.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Severity is the severity given to syntax errors.
	Severity Severity `mapstructure:"severity" yaml:"severity,omitempty"`

	// Markdown configures checking of fenced blocks in Markdown files.
	Markdown MarkdownConfig `mapstructure:"markdown" yaml:"markdown,omitempty"`

	// Golden configures golden tree comparison.
	Golden GoldenConfig `mapstructure:"golden" yaml:"golden,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the report format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `mapstructure:"-" yaml:"-"`

	// UpdateGolden rewrites golden files instead of comparing them.
	UpdateGolden bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	enabled := true
	disabled := false
	return &Config{
		Extensions: DefaultExtensions(),
		Severity:   SeverityError,
		Markdown: MarkdownConfig{
			Enabled:   &enabled,
			Languages: []string{"expr"},
		},
		Golden: GoldenConfig{
			Enabled: &disabled,
			Suffix:  DefaultGoldenSuffix,
		},
		Format: FormatText,
	}
}

// MarkdownEnabled reports whether Markdown files are checked.
func (c *Config) MarkdownEnabled() bool {
	return c.Markdown.Enabled == nil || *c.Markdown.Enabled
}

// GoldenEnabled reports whether golden trees are compared or updated.
func (c *Config) GoldenEnabled() bool {
	return c.UpdateGolden || (c.Golden.Enabled != nil && *c.Golden.Enabled)
}

// GoldenSuffix returns the configured golden suffix or the default.
func (c *Config) GoldenSuffix() string {
	if c.Golden.Suffix == "" {
		return DefaultGoldenSuffix
	}
	return c.Golden.Suffix
}

// AllExtensions returns the expression extensions followed by the Markdown
// extensions when Markdown checking is enabled.
func (c *Config) AllExtensions() []string {
	exts := append([]string(nil), c.Extensions...)
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	if c.MarkdownEnabled() {
		exts = append(exts, DefaultMarkdownExtensions()...)
	}
	return exts
}
